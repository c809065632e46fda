// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package freqs

import (
	"fmt"
	"sort"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// An accumulator collects matrix cells
// during the pass over the file,
// as three parallel slices
// of row index,
// column index,
// and frequency value.
//
// Memory grows with the number of observations
// actually present in the file;
// the matrix itself,
// which can be several orders of magnitude larger,
// is only built at the end of the pass.
type accumulator struct {
	rows []int
	cols []int
	vals []float64
}

func (a *accumulator) add(row, col int, val float64) {
	a.rows = append(a.rows, row)
	a.cols = append(a.cols, col)
	a.vals = append(a.vals, val)
}

// sortAxis sorts the position axis
// by genomic coordinate
// and renumbers the accumulated columns
// to match the sorted axis.
func sortAxis(pos []int, a *accumulator) []int {
	sorted := make([]int, len(pos))
	copy(sorted, pos)
	sort.Ints(sorted)

	axis := make(map[int]int, len(sorted))
	for i, p := range sorted {
		axis[p] = i
	}
	newCol := make([]int, len(pos))
	for old, p := range pos {
		newCol[old] = axis[p]
	}
	for i, c := range a.cols {
		a.cols[i] = newCol[c]
	}
	return sorted
}

// dedup sorts the accumulated cells
// by row and then column,
// and resolves repeated cells
// by keeping the value that appears later
// in file order.
//
// It returns the indices of the kept cells,
// sorted by (row, column),
// the number of discarded values,
// and the cell of the first value,
// in file order,
// that was overwritten
// (-1, -1 if there is none).
func (a *accumulator) dedup() (kept []int, collisions, crow, ccol int) {
	idx := make([]int, len(a.vals))
	for i := range idx {
		idx[i] = i
	}
	// the stable sort preserves file order
	// among entries of the same cell,
	// so keeping the last entry of each run
	// is last-write-wins
	sort.SliceStable(idx, func(i, j int) bool {
		vi, vj := idx[i], idx[j]
		if a.rows[vi] != a.rows[vj] {
			return a.rows[vi] < a.rows[vj]
		}
		return a.cols[vi] < a.cols[vj]
	})

	// index of the earliest overwritten value,
	// in file order
	first := -1
	kept = make([]int, 0, len(idx))
	for i, v := range idx {
		if i+1 < len(idx) {
			n := idx[i+1]
			if a.rows[v] == a.rows[n] && a.cols[v] == a.cols[n] {
				if first < 0 || v < first {
					first = v
				}
				collisions++
				continue
			}
		}
		kept = append(kept, v)
	}
	crow, ccol = -1, -1
	if first >= 0 {
		crow, ccol = a.rows[first], a.cols[first]
	}
	return kept, collisions, crow, ccol
}

// assemble builds the frequency matrix
// from the accumulated cells.
//
// Gens and pos are the final row and column axes,
// used to report repeated cells.
// The returned matrix is nil
// if either axis is empty.
func (a *accumulator) assemble(rows, cols int, gens, pos []int, opt Options) (mat.Matrix, int, error) {
	if opt.Layout == DenseMatrix {
		if need := int64(rows) * int64(cols) * 8; need > opt.DenseCeiling {
			return nil, 0, fmt.Errorf("%w: %d x %d cells need %d bytes, ceiling is %d", ErrResourceLimit, rows, cols, need, opt.DenseCeiling)
		}
	}

	kept, coll, crow, ccol := a.dedup()
	if coll > 0 && opt.FailOnCollision {
		return nil, 0, fmt.Errorf("%w: generation %d: position %d", ErrCollision, gens[crow], pos[ccol])
	}
	if rows == 0 || cols == 0 {
		return nil, coll, nil
	}

	if opt.Layout == DenseMatrix {
		m := mat.NewDense(rows, cols, nil)
		for _, v := range kept {
			m.Set(a.rows[v], a.cols[v], a.vals[v])
		}
		return m, coll, nil
	}

	ia := make([]int, rows+1)
	ja := make([]int, 0, len(kept))
	data := make([]float64, 0, len(kept))
	for _, v := range kept {
		ia[a.rows[v]+1]++
		ja = append(ja, a.cols[v])
		data = append(data, a.vals[v])
	}
	for r := 0; r < rows; r++ {
		ia[r+1] += ia[r]
	}
	return sparse.NewCSR(rows, cols, ia, ja, data), coll, nil
}
