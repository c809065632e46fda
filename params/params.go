// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package params implements reading
// of the parameter header line
// used by SLiM output files.
//
// The header is the first line of the file,
// starts with the '#' marker,
// and stores simulation parameters
// as ';'-separated key=value pairs:
//
//	#seed=42;shift=1;alpha=0.01;N=1000;region_length=50000000
//
// There is no fixed schema:
// any key found in the header is kept,
// and values that parse as numbers
// are stored as floats.
package params

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Marker is the character that starts a parameter header line.
const Marker = '#'

// Errors returned when parsing a header line.
var (
	// ErrNoMarker is returned if the line
	// does not start with the '#' marker.
	ErrNoMarker = errors.New("params: expecting '#' marker")

	// ErrBadPair is returned if a header token
	// is not a key=value pair.
	ErrBadPair = errors.New("params: expecting 'key=value' pair")
)

// A Value is a parameter value,
// either a number or a free string.
type Value struct {
	s   string
	f   float64
	num bool
}

// Float returns the value as a float,
// and false if the value is not numeric.
func (v Value) Float() (float64, bool) {
	return v.f, v.num
}

// String returns the textual form of the value.
func (v Value) String() string {
	if v.num {
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	}
	return v.s
}

// Params is a collection of simulation parameters
// keyed by parameter name.
type Params map[string]Value

// Parse reads a parameter header line.
//
// The line must start with the '#' marker;
// each ';'-separated token is split
// on its first '=' character.
// Values are coerced to floats when possible,
// otherwise they are kept as strings
// with the surrounding spaces removed.
func Parse(line string) (Params, error) {
	line = strings.TrimSpace(line)
	if len(line) == 0 || line[0] != Marker {
		return nil, ErrNoMarker
	}

	p := make(Params)
	for _, tok := range strings.Split(line[1:], ";") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		key, val, ok := strings.Cut(tok, "=")
		if !ok {
			return nil, fmt.Errorf("%w: token %q", ErrBadPair, tok)
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			p[key] = Value{f: f, num: true}
			continue
		}
		p[key] = Value{s: val}
	}
	return p, nil
}

// Float returns the value of a numeric parameter,
// and false if the parameter is undefined
// or is not a number.
func (p Params) Float(key string) (float64, bool) {
	v, ok := p[key]
	if !ok {
		return 0, false
	}
	return v.Float()
}

// Str returns the value of a string parameter,
// and false if the parameter is undefined.
func (p Params) Str(key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	return v.String(), true
}

// Keys returns the defined parameter names,
// sorted alphabetically.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
