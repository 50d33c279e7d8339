// Command arrow-btsp solves plain Bottleneck TSP (spec.md §2's BTSP
// module) over a TSPLIB instance via the EBST driver.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/arrowtsp/arrow/internal/cliapp"
)

func main() {
	fs := flag.NewFlagSet("arrow-btsp", flag.ExitOnError)
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

	if err := cliapp.Run(cliapp.BTSP, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cliapp.ExitCode(err))
	}
}
