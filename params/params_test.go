// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package params_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/js-arias/slimio/params"
)

func TestParse(t *testing.T) {
	p, err := params.Parse("#seed=42;shift=1;alpha=0.01;N=1000;model=neutral drift")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	floats := map[string]float64{
		"seed":  42,
		"shift": 1,
		"alpha": 0.01,
		"N":     1000,
	}
	for k, want := range floats {
		got, ok := p.Float(k)
		if !ok {
			t.Errorf("parameter %q: expecting a numeric value", k)
			continue
		}
		if got != want {
			t.Errorf("parameter %q: got %v, want %v", k, got, want)
		}
	}

	if s, _ := p.Str("model"); s != "neutral drift" {
		t.Errorf("parameter \"model\": got %q, want %q", s, "neutral drift")
	}
	if _, ok := p.Float("model"); ok {
		t.Errorf("parameter \"model\": expecting a non-numeric value")
	}
	if _, ok := p.Str("undefined"); ok {
		t.Errorf("parameter \"undefined\": expecting undefined")
	}

	keys := []string{"N", "alpha", "model", "seed", "shift"}
	if got := p.Keys(); !reflect.DeepEqual(got, keys) {
		t.Errorf("keys: got %v, want %v", got, keys)
	}
}

func TestParseValueWithEquals(t *testing.T) {
	// only the first '=' splits the pair
	p, err := params.Parse("#expr=a=b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, _ := p.Str("expr"); s != "a=b" {
		t.Errorf("parameter \"expr\": got %q, want %q", s, "a=b")
	}
}

func TestParseError(t *testing.T) {
	tests := map[string]struct {
		line string
		err  error
	}{
		"empty":       {line: "", err: params.ErrNoMarker},
		"no marker":   {line: "seed=42", err: params.ErrNoMarker},
		"not a pair":  {line: "#seed=42;alpha", err: params.ErrBadPair},
		"only spaces": {line: "   ", err: params.ErrNoMarker},
	}

	for name, test := range tests {
		if _, err := params.Parse(test.line); !errors.Is(err, test.err) {
			t.Errorf("%s: got error %v, want %v", name, err, test.err)
		}
	}
}
