// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package exportcmd implements a command to export
// a ragged frequency file
// as a fixed-column frequency table.
package exportcmd

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/slimio/freqs"
)

var Command = &command.Command{
	Usage: `export [-o|--output <file>]
	[--order <ordering>] [--strict] <freq-file>`,
	Short: "export a ragged frequency file as a table",
	Long: `
Command export reads a ragged frequency file and writes it as a tab-delimited
table in which each distinct genomic position is a column, each sampled
generation is a row, and positions without an observed frequency are zero.

The argument of the command is the name of the file to read.

By default, the output file is the input file name with a '-freq' suffix. Use
the flag --output, or -o, to set a different output file name.

By default, the columns are in the order in which each position first appears
in the input file. Use the flag --order with the value 'sorted' to sort the
columns by genomic coordinate.

If the flag --strict is given, a repeated position within a generation is
reported as an error instead of keeping the last read value.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var output string
var order string
var strict bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().StringVar(&order, "order", string(freqs.FirstSeen), "")
	c.Flags().BoolVar(&strict, "strict", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting frequency file")
	}
	name := args[0]

	d, err := freqs.ReadFile(name, freqs.Options{
		Order:           freqs.Order(order),
		FailOnCollision: strict,
	})
	if err != nil {
		return err
	}

	if output == "" {
		output = outName(name, "freq")
	}
	if err := writeTable(output, d); err != nil {
		return err
	}
	if d.Collisions > 0 {
		fmt.Fprintf(c.Stderr(), "%s: discarded repeats: %d\n", name, d.Collisions)
	}
	return nil
}

// outName builds an output file name
// by adding a suffix to the input name,
// before the extension.
func outName(name, suffix string) string {
	ext := ".tsv"
	if e := strings.LastIndex(name, "."); e > 0 {
		name, ext = name[:e], name[e:]
	}
	return name + "-" + suffix + ext
}

func writeTable(name string, d *freqs.Dataset) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	if err := table(bw, d); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", name, err)
	}
	return nil
}

func table(w io.Writer, d *freqs.Dataset) error {
	// single parameter header line,
	// so the output is a valid fixed-column frequency file
	pairs := make([]string, 0, len(d.Params))
	for _, k := range d.Params.Keys() {
		v, _ := d.Params.Str(k)
		pairs = append(pairs, k+"="+v)
	}
	fmt.Fprintf(w, "#%s\n", strings.Join(pairs, ";"))

	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'

	head := make([]string, 0, len(d.Pos)+1)
	head = append(head, "gen")
	for _, p := range d.Pos {
		head = append(head, strconv.Itoa(p))
	}
	if err := tsv.Write(head); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}

	row := make([]string, len(d.Pos)+1)
	for i, g := range d.Gens {
		row[0] = strconv.Itoa(g)
		for j := range d.Pos {
			f := 0.0
			if d.Freqs != nil {
				f = d.Freqs.At(i, j)
			}
			row[j+1] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("while writing data: %v", err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
