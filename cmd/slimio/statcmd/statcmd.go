// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package statcmd implements a command to print
// a summary of a population statistics file.
package statcmd

import (
	"fmt"
	"io"
	"math"

	"github.com/js-arias/command"
	"github.com/js-arias/slimio/stats"
	"gonum.org/v1/gonum/stat"
)

var Command = &command.Command{
	Usage: "stats <stats-file>...",
	Short: "print a summary of population statistics files",
	Long: `
Command stats reads one or more population statistics files and prints the
simulation parameters and, for each statistic, its mean, standard deviation,
and range over the sampled generations.

The arguments of the command are the names of the files to read.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting statistics file")
	}

	for _, a := range args {
		t, err := stats.ReadFile(a)
		if err != nil {
			return err
		}
		if err := printSummary(c.Stdout(), a, t); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(w io.Writer, name string, t *stats.Table) error {
	fmt.Fprintf(w, "%s:\n", name)
	fmt.Fprintf(w, "\tparameters:\n")
	for _, k := range t.Params.Keys() {
		v, _ := t.Params.Str(k)
		fmt.Fprintf(w, "\t\t%s = %s\n", k, v)
	}
	fmt.Fprintf(w, "\tsamples: %d\n", t.Len())

	for _, c := range t.Cols {
		col, err := t.Column(c)
		if err != nil {
			return err
		}
		if len(col) == 0 {
			continue
		}

		mean, std := stat.MeanStdDev(col, nil)
		min, max := col[0], col[0]
		for _, v := range col {
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
		fmt.Fprintf(w, "\t%s: mean %.6g, stdev %.6g, range [%g, %g]\n", c, mean, std, min, max)
	}
	return nil
}
