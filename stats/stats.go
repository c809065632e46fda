// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package stats implements reading
// of per-generation population statistics files
// produced by SLiM simulations.
//
// A statistics file starts
// with a parameter header line
// (see package params),
// followed by a tab-delimited table
// with a column name row
// and one numeric row per sampled generation:
//
//	#seed=1;N=1000
//	gen	va	vb	zbar
//	100	0.012	0.003	0.54
//	200	0.011	0.004	0.57
package stats

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/js-arias/slimio/params"
	"gonum.org/v1/gonum/mat"
)

// Errors returned when reading a statistics file.
var (
	// ErrMissingHeader is returned if the file is empty
	// or its first line lacks the '#' marker.
	ErrMissingHeader = errors.New("stats: expecting parameter header")

	// ErrNoColumns is returned if the column name row
	// is missing.
	ErrNoColumns = errors.New("stats: expecting column names")

	// ErrUnknownColumn is returned when asking
	// for an undefined column.
	ErrUnknownColumn = errors.New("stats: unknown column")
)

// A Table is the content of a statistics file:
// the simulation parameters,
// the column names,
// and the statistic values,
// with one row per sampled generation.
//
// A Table is read-only:
// it is built once per file
// and must not be modified afterwards.
type Table struct {
	Params params.Params
	Cols   []string

	// Data holds the table values.
	// It is nil if the file has no data rows.
	Data *mat.Dense
}

// Read reads a statistics file.
func Read(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	first, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	p, err := params.Parse(first)
	if err != nil {
		if errors.Is(err, params.ErrNoMarker) {
			return nil, ErrMissingHeader
		}
		return nil, fmt.Errorf("on line 1: %w", err)
	}

	// the header line is fed back to the reader,
	// to be skipped as a comment,
	// so that reported line numbers
	// match the file
	tsv := csv.NewReader(io.MultiReader(strings.NewReader(first), br))
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoColumns
	}
	if err != nil {
		return nil, fmt.Errorf("column names: %v", err)
	}
	cols := make([]string, len(head))
	for i, h := range head {
		cols[i] = strings.TrimSpace(h)
	}

	var data []float64
	rows := 0
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on line %d: %v", ln, err)
		}

		for i, f := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("on line %d: column %q: %v", ln, cols[i], err)
			}
			data = append(data, v)
		}
		rows++
	}

	t := &Table{
		Params: p,
		Cols:   cols,
	}
	if rows > 0 {
		t.Data = mat.NewDense(rows, len(cols), data)
	}
	return t, nil
}

// ReadFile reads a statistics file from a path.
func ReadFile(name string) (*Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return t, nil
}

// Column returns the values of a named column,
// one per sampled generation.
func (t *Table) Column(name string) ([]float64, error) {
	for j, c := range t.Cols {
		if c != name {
			continue
		}
		if t.Data == nil {
			return nil, nil
		}
		return mat.Col(nil, j, t.Data), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

// Len returns the number of sampled generations.
func (t *Table) Len() int {
	if t.Data == nil {
		return 0
	}
	r, _ := t.Data.Dims()
	return r
}
