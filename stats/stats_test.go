// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package stats_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/slimio/stats"
)

var table = `#seed=1;N=1000;mu=1e-8
gen	va	vb	zbar
100	0.012	0.003	0.54
200	0.011	0.004	0.57
300	0.010	0.002	0.60
`

func TestRead(t *testing.T) {
	tab, err := stats.Read(strings.NewReader(table))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n, _ := tab.Params.Float("N"); n != 1000 {
		t.Errorf("parameter \"N\": got %v, want %v", n, 1000)
	}
	cols := []string{"gen", "va", "vb", "zbar"}
	if !reflect.DeepEqual(tab.Cols, cols) {
		t.Errorf("columns: got %v, want %v", tab.Cols, cols)
	}
	if tab.Len() != 3 {
		t.Errorf("rows: got %d, want 3", tab.Len())
	}

	want := map[string][]float64{
		"gen":  {100, 200, 300},
		"va":   {0.012, 0.011, 0.010},
		"zbar": {0.54, 0.57, 0.60},
	}
	for name, w := range want {
		col, err := tab.Column(name)
		if err != nil {
			t.Errorf("column %q: unexpected error: %v", name, err)
			continue
		}
		if !reflect.DeepEqual(col, w) {
			t.Errorf("column %q: got %v, want %v", name, col, w)
		}
	}

	if _, err := tab.Column("vg"); !errors.Is(err, stats.ErrUnknownColumn) {
		t.Errorf("column \"vg\": got error %v, want %v", err, stats.ErrUnknownColumn)
	}
}

func TestReadEmptyTable(t *testing.T) {
	tab, err := stats.Read(strings.NewReader("#seed=1\ngen\tva\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tab.Len() != 0 {
		t.Errorf("rows: got %d, want 0", tab.Len())
	}
	col, err := tab.Column("va")
	if err != nil {
		t.Fatalf("column \"va\": unexpected error: %v", err)
	}
	if col != nil {
		t.Errorf("column \"va\": got %v, want nil", col)
	}
}

func TestReadError(t *testing.T) {
	tests := map[string]struct {
		data string
		err  error
		line string
	}{
		"empty file": {data: "", err: stats.ErrMissingHeader},
		"no marker":  {data: "gen\tva\n100\t0.1\n", err: stats.ErrMissingHeader},
		"no columns": {data: "#seed=1\n", err: stats.ErrNoColumns},
		"bad value":  {data: "#seed=1\ngen\tva\n100\tx\n", line: "line 3"},
		"ragged row": {data: "#seed=1\ngen\tva\n100\t0.1\t0.2\n", line: "line 3"},
	}

	for name, test := range tests {
		tab, err := stats.Read(strings.NewReader(test.data))
		if err == nil {
			t.Errorf("%s: expecting error", name)
			continue
		}
		if tab != nil {
			t.Errorf("%s: got a table with an error", name)
		}
		if test.err != nil && !errors.Is(err, test.err) {
			t.Errorf("%s: got error %v, want %v", name, err, test.err)
		}
		if test.line != "" && !strings.Contains(err.Error(), test.line) {
			t.Errorf("%s: error %q: expecting %q", name, err, test.line)
		}
	}
}
