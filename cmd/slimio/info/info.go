// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package info implements a command to print
// the basic information of a ragged frequency file.
package info

import (
	"fmt"
	"io"

	"github.com/james-bowman/sparse"
	"github.com/js-arias/command"
	"github.com/js-arias/slimio/freqs"
)

var Command = &command.Command{
	Usage: "info [--strict] <freq-file>...",
	Short: "print information about ragged frequency files",
	Long: `
Command info reads one or more ragged frequency files and prints their
simulation parameters, the sampled generations, the size of the frequency
matrix, and the number of frequency values discarded because a generation
repeats a position.

The arguments of the command are the names of the files to read.

If the flag --strict is given, a repeated position within a generation is
reported as an error.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var strict bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&strict, "strict", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting frequency file")
	}

	for _, a := range args {
		d, err := freqs.ReadFile(a, freqs.Options{FailOnCollision: strict})
		if err != nil {
			return err
		}
		printInfo(c.Stdout(), a, d)
	}
	return nil
}

func printInfo(w io.Writer, name string, d *freqs.Dataset) {
	fmt.Fprintf(w, "%s:\n", name)
	fmt.Fprintf(w, "\tparameters:\n")
	for _, k := range d.Params.Keys() {
		v, _ := d.Params.Str(k)
		fmt.Fprintf(w, "\t\t%s = %s\n", k, v)
	}

	fmt.Fprintf(w, "\tsamples: %d", len(d.Gens))
	if len(d.Gens) > 0 {
		fmt.Fprintf(w, " [generations %d-%d]", d.Gens[0], d.Gens[len(d.Gens)-1])
	}
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "\tpositions: %d", len(d.Pos))
	if len(d.Pos) > 0 {
		first, last := d.Pos[0], d.Pos[0]
		for _, p := range d.Pos {
			if p < first {
				first = p
			}
			if p > last {
				last = p
			}
		}
		fmt.Fprintf(w, " [range %d-%d]", first, last)
	}
	fmt.Fprintf(w, "\n")

	if m, ok := d.Freqs.(*sparse.CSR); ok {
		fmt.Fprintf(w, "\tobservations: %d\n", m.NNZ())
	}
	if d.Collisions > 0 {
		fmt.Fprintf(w, "\tdiscarded repeats: %d\n", d.Collisions)
	}
}
