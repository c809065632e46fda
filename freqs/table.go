// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package freqs

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/js-arias/slimio/params"
	"gonum.org/v1/gonum/mat"
)

// ReadTable reads a fixed-column frequency file,
// the pre-allocated SLiM output
// in which every tracked locus
// is a column of its own:
//
//	#seed=1;N=1000
//	gen	500	700	900
//	100	0.10	-1	0.25
//	200	0.12	0.05	-1
//
// The column name row gives the position of each locus;
// a negative frequency marks a locus
// that was not polymorphic at that generation
// and is stored as NaN.
//
// Loci that are polymorphic
// in at most minProp of the sampled generations
// are removed from the dataset.
//
// The resulting matrix is always dense:
// this format pre-declares its loci,
// so its width is bounded by the tracking setup
// of the simulation,
// not by the genome.
func ReadTable(r io.Reader, minProp float64) (*Dataset, error) {
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
		return nil, fmt.Errorf("%w: expecting locus positions", ErrMalformedRecord)
	}
	if err != nil {
		return nil, fmt.Errorf("locus positions: %v", err)
	}
	pos := make([]int, len(head)-1)
	for i, h := range head[1:] {
		h = strings.TrimSpace(h)
		v, err := strconv.Atoi(h)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("%w: invalid locus position %q", ErrMalformedRecord, h)
		}
		pos[i] = v
	}

	var gens []int
	var data []float64
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on line %d: %v", ln, err)
		}

		gs := strings.TrimSpace(row[0])
		gen, err := strconv.Atoi(gs)
		if err != nil || gen < 0 {
			return nil, fmt.Errorf("on line %d: %w: invalid generation %q", ln, ErrMalformedRecord, gs)
		}
		gens = append(gens, gen)

		for i, f := range row[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("on line %d: locus %d: %v", ln, pos[i], err)
			}
			if v < 0 {
				// not polymorphic at this generation
				v = math.NaN()
			} else if !(v <= 1) {
				// missing values are encoded as negatives,
				// so a literal NaN is malformed
				// and rejected here along with v > 1
				return nil, fmt.Errorf("on line %d: locus %d: %w: invalid frequency %q", ln, pos[i], ErrMalformedRecord, f)
			}
			data = append(data, v)
		}
	}

	d := &Dataset{
		Params: p,
		Gens:   gens,
		Pos:    pos,
	}
	if len(gens) == 0 || len(pos) == 0 {
		d.Pos = nil
		return d, nil
	}
	d.Freqs = mat.NewDense(len(gens), len(pos), data)
	prune(d, minProp)
	return d, nil
}

// ReadTableFile reads a fixed-column frequency file from a path.
func ReadTableFile(name string, minProp float64) (*Dataset, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := ReadTable(f, minProp)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return d, nil
}

// prune removes the loci that are polymorphic
// in at most minProp of the sampled generations.
func prune(d *Dataset, minProp float64) {
	m := d.Freqs.(*mat.Dense)
	rows, cols := m.Dims()
	minSamples := int(minProp * float64(rows))

	keep := make([]int, 0, cols)
	for j := 0; j < cols; j++ {
		n := 0
		for i := 0; i < rows; i++ {
			if !math.IsNaN(m.At(i, j)) {
				n++
			}
		}
		if n > minSamples {
			keep = append(keep, j)
		}
	}
	if len(keep) == cols {
		return
	}
	if len(keep) == 0 {
		d.Pos = nil
		d.Freqs = nil
		return
	}

	pos := make([]int, len(keep))
	kept := mat.NewDense(rows, len(keep), nil)
	for nj, j := range keep {
		pos[nj] = d.Pos[j]
		for i := 0; i < rows; i++ {
			kept.Set(i, nj, m.At(i, j))
		}
	}
	d.Pos = pos
	d.Freqs = kept
}
