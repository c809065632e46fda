// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package freqs implements reading
// of ragged mutation frequency files
// produced by SLiM simulations.
//
// A ragged frequency file starts
// with a parameter header line
// (see package params),
// followed by one line per sampled generation.
// Each line is tab-delimited:
// the first field is the generation number,
// and each remaining field is a mutation observation
// of the form 'id;position;frequency':
//
//	#seed=1;shift=1;alpha=0.01;N=1000
//	2	10;500;0.10	11;700;0.25
//	3	10;500;0.12
//
// The number of observations varies from line to line,
// and the set of positions is unknown
// until the whole file is read,
// so the reader assigns column indices
// to positions as they appear
// and collects the values in sparse form,
// building the frequency matrix
// only after the full pass.
package freqs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/js-arias/slimio/params"
	"gonum.org/v1/gonum/mat"
)

// Errors returned when reading a ragged frequency file.
var (
	// ErrMissingHeader is returned if the file is empty
	// or its first line lacks the '#' marker.
	ErrMissingHeader = errors.New("freqs: expecting parameter header")

	// ErrMalformedRecord is returned if a data line
	// cannot be parsed as a generation
	// followed by 'id;position;frequency' observations.
	ErrMalformedRecord = errors.New("freqs: malformed record")

	// ErrResourceLimit is returned if a dense matrix
	// was requested over the configured memory ceiling.
	ErrResourceLimit = errors.New("freqs: dense matrix over memory ceiling")

	// ErrCollision is returned in strict mode
	// if a generation stores two frequencies
	// for the same position.
	ErrCollision = errors.New("freqs: repeated position in a generation")
)

// Order is a keyword to indicate the ordering
// of the position axis of the frequency matrix.
type Order string

// Valid position orderings.
const (
	// Positions in the order they first appear in the file.
	FirstSeen Order = "first-seen"

	// Positions sorted by genomic coordinate.
	Sorted Order = "sorted"
)

// Layout is a keyword to indicate the representation
// used for the frequency matrix.
type Layout string

// Valid matrix layouts.
const (
	// A compressed sparse row matrix.
	// This is the default,
	// and the only layout feasible
	// when the number of distinct positions
	// grows into the tens of millions.
	SparseMatrix Layout = "sparse"

	// A dense matrix.
	// Reading fails if the matrix would be larger
	// than the memory ceiling.
	DenseMatrix Layout = "dense"
)

// DefaultCeiling is the memory ceiling
// (in bytes)
// used for dense matrices
// when Options.DenseCeiling is zero.
const DefaultCeiling = 2 << 30

// maxLineSize is the maximum size
// accepted for a single data line:
// enough for a generation
// with tens of millions of observations.
// A longer line fails the read
// with its line number reported.
const maxLineSize = 1 << 30

// Options are the reading options
// for a ragged frequency file.
//
// The zero value reads the positions in first-seen order
// into a sparse matrix,
// keeping the last frequency
// when a generation repeats a position.
type Options struct {
	// Ordering of the position axis.
	Order Order

	// Representation of the frequency matrix.
	Layout Layout

	// Memory ceiling,
	// in bytes,
	// for a dense matrix.
	// If zero,
	// DefaultCeiling is used.
	DenseCeiling int64

	// If true,
	// a repeated position within a generation
	// is an error
	// instead of a counted overwrite.
	FailOnCollision bool
}

func (opt Options) canon() (Options, error) {
	switch opt.Order {
	case "":
		opt.Order = FirstSeen
	case FirstSeen, Sorted:
	default:
		return opt, fmt.Errorf("freqs: unknown order %q", opt.Order)
	}
	switch opt.Layout {
	case "":
		opt.Layout = SparseMatrix
	case SparseMatrix, DenseMatrix:
	default:
		return opt, fmt.Errorf("freqs: unknown layout %q", opt.Layout)
	}
	if opt.DenseCeiling == 0 {
		opt.DenseCeiling = DefaultCeiling
	}
	return opt, nil
}

// A Triplet is a single mutation observation:
// the mutation identifier given by the simulator,
// the 0-based genomic position of the mutation,
// and its frequency in the population.
type Triplet struct {
	ID   int
	Pos  int
	Freq float64
}

// A Dataset is the content of a ragged frequency file:
// the simulation parameters,
// the sampled generations
// in file order,
// the position axis of the matrix,
// and the frequency matrix itself,
// with one row per generation
// and one column per distinct position.
//
// A Dataset is read-only:
// it is built once per file
// and must not be modified afterwards.
type Dataset struct {
	Params params.Params

	// Row axis:
	// generation of each sample,
	// in file order.
	Gens []int

	// Column axis:
	// the distinct genomic positions,
	// ordered as requested by Options.Order.
	Pos []int

	// Frequency matrix of len(Gens) rows
	// by len(Pos) columns.
	// It is nil if the file has no samples
	// or no observations.
	Freqs mat.Matrix

	// Number of values discarded
	// because a generation repeated a position.
	Collisions int
}

// Read reads a ragged frequency file.
//
// The read is a single pass and fails fast:
// on the first malformed line
// no dataset is returned.
func Read(r io.Reader, opt Options) (*Dataset, error) {
	opt, err := opt.canon()
	if err != nil {
		return nil, err
	}

	sc := bufio.NewScanner(r)
	// a single generation can carry
	// millions of observations
	sc.Buffer(make([]byte, 0, 1024*1024), maxLineSize)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, ErrMissingHeader
	}
	p, err := params.Parse(sc.Text())
	if err != nil {
		if errors.Is(err, params.ErrNoMarker) {
			return nil, ErrMissingHeader
		}
		return nil, fmt.Errorf("on line 1: %w", err)
	}

	ix := newIndexer()
	acc := &accumulator{}
	var gens []int
	ln := 2
	for ; sc.Scan(); ln++ {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		gen, obs, err := parseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("on line %d: %w: %q", ln, err, line)
		}

		row := len(gens)
		gens = append(gens, gen)
		for _, tr := range obs {
			acc.add(row, ix.column(tr.Pos), tr.Freq)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("on line %d: %v", ln, err)
	}

	pos := ix.positions()
	if opt.Order == Sorted {
		pos = sortAxis(pos, acc)
	}
	m, coll, err := acc.assemble(len(gens), len(pos), gens, pos, opt)
	if err != nil {
		return nil, err
	}
	return &Dataset{
		Params:     p,
		Gens:       gens,
		Pos:        pos,
		Freqs:      m,
		Collisions: coll,
	}, nil
}

// ReadFile reads a ragged frequency file from a path.
func ReadFile(name string, opt Options) (*Dataset, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := Read(f, opt)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return d, nil
}

// parseRecord parses a single data line
// into its generation
// and its mutation observations,
// in line order.
func parseRecord(line string) (gen int, obs []Triplet, err error) {
	fields := strings.Split(line, "\t")

	gs := strings.TrimSpace(fields[0])
	gen, err = strconv.Atoi(gs)
	if err != nil || gen < 0 {
		return 0, nil, fmt.Errorf("%w: invalid generation %q", ErrMalformedRecord, gs)
	}

	for _, f := range fields[1:] {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		tr, err := parseTriplet(f)
		if err != nil {
			return 0, nil, err
		}
		obs = append(obs, tr)
	}
	return gen, obs, nil
}

func parseTriplet(field string) (Triplet, error) {
	parts := strings.Split(field, ";")
	if len(parts) != 3 {
		return Triplet{}, fmt.Errorf("%w: observation %q: expecting 'id;position;frequency'", ErrMalformedRecord, field)
	}

	id, err := strconv.Atoi(parts[0])
	if err != nil || id < 0 {
		return Triplet{}, fmt.Errorf("%w: observation %q: invalid mutation id %q", ErrMalformedRecord, field, parts[0])
	}
	pos, err := strconv.Atoi(parts[1])
	if err != nil || pos < 0 {
		return Triplet{}, fmt.Errorf("%w: observation %q: invalid position %q", ErrMalformedRecord, field, parts[1])
	}
	freq, err := strconv.ParseFloat(parts[2], 64)
	// the positive form of the range check
	// also rejects NaN
	if err != nil || !(freq >= 0 && freq <= 1) {
		return Triplet{}, fmt.Errorf("%w: observation %q: invalid frequency %q", ErrMalformedRecord, field, parts[2])
	}
	return Triplet{ID: id, Pos: pos, Freq: freq}, nil
}
