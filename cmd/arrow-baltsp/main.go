// Command arrow-baltsp solves Balanced TSP (spec.md §2's BalTSP module)
// over a TSPLIB instance, routing through the DT driver by default or
// the IB driver when -e suppresses the nested EBST pass.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/arrowtsp/arrow/internal/cliapp"
)

func main() {
	fs := flag.NewFlagSet("arrow-baltsp", flag.ExitOnError)
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

	if err := cliapp.Run(cliapp.BalTSP, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cliapp.ExitCode(err))
	}
}
