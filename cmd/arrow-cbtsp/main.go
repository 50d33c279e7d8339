// Command arrow-cbtsp solves length-Constrained Bottleneck TSP
// (spec.md §2's CBTSP module) over a TSPLIB instance via the
// ConstrainedEBST driver.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/arrowtsp/arrow/internal/cliapp"
)

func main() {
	fs := flag.NewFlagSet("arrow-cbtsp", flag.ExitOnError)
	f, err := cliapp.ParseFlags(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := cliapp.LoadConfig(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := cliapp.Run(cliapp.CBTSP, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cliapp.ExitCode(err))
	}
}
