// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// SlimIO is a tool to inspect and export
// SLiM simulation output files.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/slimio/cmd/slimio/exportcmd"
	"github.com/js-arias/slimio/cmd/slimio/info"
	"github.com/js-arias/slimio/cmd/slimio/statcmd"
)

var app = &command.Command{
	Usage: "slimio <command> [<argument>...]",
	Short: "a tool to inspect SLiM simulation output files",
}

func init() {
	app.Add(exportcmd.Command)
	app.Add(info.Command)
	app.Add(statcmd.Command)
}

func main() {
	app.Main()
}
