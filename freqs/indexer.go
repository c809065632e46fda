// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package freqs

// An indexer assigns a stable column index
// to each distinct genomic position,
// in the order in which the positions
// are first seen during the read.
//
// Positions are sparse over genomes
// of up to hundreds of millions of sites,
// so columns are numbered by discovery
// instead of by raw coordinate:
// memory grows with the number of observed positions,
// not with the genome length.
type indexer struct {
	cols map[int]int
	pos  []int
}

func newIndexer() *indexer {
	return &indexer{cols: make(map[int]int)}
}

// column returns the column index of a position,
// assigning the next free index
// if the position is new.
func (ix *indexer) column(pos int) int {
	if c, ok := ix.cols[pos]; ok {
		return c
	}
	c := len(ix.pos)
	ix.cols[pos] = c
	ix.pos = append(ix.pos, pos)
	return c
}

// positions returns the position axis,
// in first-seen order.
func (ix *indexer) positions() []int {
	return ix.pos
}
