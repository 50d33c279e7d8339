// Package cliapp holds the flag parsing, config overlay, and run
// sequencing shared by cmd/arrow-btsp, cmd/arrow-cbtsp, and
// cmd/arrow-baltsp (spec.md §6.3/§6.4).
//
// Grounded on the teacher-adjacent corpus's cmd/main.go wiring shape
// (config.Load -> logger.InitWithConfig -> metrics.InitMetrics -> run)
// and the teacher's tsp/bb.go for the time-budget/node-count bookkeeping
// a driver run accumulates; flag parsing itself follows the corpus's
// scripts/deps/main.go's flat flag.String/flag.Bool/flag.Int idiom (no
// CLI-framework dependency appears anywhere in the retrieved corpus).
package cliapp

import (
	"encoding/xml"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/arrowtsp/arrow/arrowerrors"
	"github.com/arrowtsp/arrow/asym"
	"github.com/arrowtsp/arrow/config"
	"github.com/arrowtsp/arrow/costmatrix"
	"github.com/arrowtsp/arrow/driver"
	"github.com/arrowtsp/arrow/logging"
	"github.com/arrowtsp/arrow/oracle"
	"github.com/arrowtsp/arrow/subsolver"
	"github.com/arrowtsp/arrow/telemetry"
	"github.com/arrowtsp/arrow/tsplib"
	"github.com/google/uuid"
)

// Kind selects which of the three problem families a binary solves.
type Kind int

const (
	BTSP Kind = iota
	CBTSP
	BalTSP
)

// Flags is the full spec.md §6.3 flag surface, parsed once per process
// and then merged over a config.Config as the highest-priority layer.
type Flags struct {
	ProblemFile   string
	XMLPath       string
	TourPath      string
	Restarts      int
	StallCount    int
	Kicks         int
	LowerBound    int
	UpperBound    int
	BasicAttempts int
	ShakeAttempts int
	ShakeRandMin  int
	ShakeRandMax  int
	Seed          int64
	DeepCopy      bool
	Infinity      int
	ConfirmSol    bool
	SuppressEBST  bool
	FindShortTour bool
	Length        int // constrained-only feasible length cap
	SolveMSTSP    bool
	LBOnly        bool // balanced-only
	BTSPMinCost   int
	BTSPMaxCost   int
	MSTSPMinCost  int
	ConfigPath    string
}

// ParseFlags declares and parses the spec.md §6.3 flag set on fs,
// returning the populated Flags. fs is injected so tests can parse
// against a fresh FlagSet instead of flag.CommandLine.
func ParseFlags(fs *flag.FlagSet, args []string) (*Flags, error) {
	f := &Flags{}
	fs.StringVar(&f.ProblemFile, "i", "", "input TSPLIB problem file")
	fs.StringVar(&f.XMLPath, "x", "", "optional XML tally output path")
	fs.StringVar(&f.TourPath, "T", "", "optional TSPLIB tour output path")
	fs.IntVar(&f.Restarts, "r", 1, "random restarts")
	fs.IntVar(&f.StallCount, "s", 0, "stall count before a kick")
	fs.IntVar(&f.Kicks, "k", 0, "kicks per restart")
	fs.IntVar(&f.LowerBound, "l", 0, "lower bound seed")
	fs.IntVar(&f.UpperBound, "u", 0, "upper bound seed (or BTSP max cost, balanced)")
	fs.IntVar(&f.BasicAttempts, "a", 1, "basic-probe attempts")
	fs.IntVar(&f.ShakeAttempts, "b", 0, "shake attempts")
	fs.IntVar(&f.ShakeRandMin, "1", 0, "shake random range minimum")
	fs.IntVar(&f.ShakeRandMax, "2", 0, "shake random range maximum")
	fs.Int64Var(&f.Seed, "g", 0, "RNG seed")
	fs.BoolVar(&f.DeepCopy, "d", false, "deep-copy the cost matrix before mutating transforms")
	fs.IntVar(&f.Infinity, "I", 1<<30, "sentinel value standing in for infinity")
	fs.BoolVar(&f.ConfirmSol, "c", false, "re-verify the returned tour against the base matrix")
	fs.BoolVar(&f.SuppressEBST, "e", false, "suppress the EBST pass (IB/DT only)")
	fs.BoolVar(&f.FindShortTour, "S", false, "prefer the shortest feasible tour among ties")
	fs.IntVar(&f.Length, "L", 0, "feasible length cap (constrained) or lower-bound-only flag (balanced)")
	fs.BoolVar(&f.SolveMSTSP, "m", false, "solve the maximum scatter TSP companion problem")
	fs.IntVar(&f.BTSPMinCost, "t", 0, "BTSP minimum cost seed (balanced)")
	fs.IntVar(&f.MSTSPMinCost, "v", 0, "MSTSP minimum cost seed (balanced)")
	fs.StringVar(&f.ConfigPath, "C", "", "optional YAML config overlay path")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	f.BTSPMaxCost = f.UpperBound
	f.LBOnly = f.Length < 0

	return f, nil
}

// LoadConfig loads defaults/YAML/env via config.Loader, then overlays
// any CLI flag the caller actually set (flags win, per spec.md §6.3).
func LoadConfig(f *Flags) (*config.Config, error) {
	opts := []config.LoaderOption{}
	if f.ConfigPath != "" {
		opts = append(opts, config.WithConfigPaths(f.ConfigPath))
	}

	cfg, err := config.NewLoader(opts...).Load()
	if err != nil {
		return nil, err
	}

	cfg.Input.ProblemFile = f.ProblemFile
	cfg.Input.XMLPath = f.XMLPath
	cfg.Input.TourPath = f.TourPath
	cfg.Search = config.SearchConfig{
		Restarts:      f.Restarts,
		StallCount:    f.StallCount,
		Kicks:         f.Kicks,
		LowerBound:    f.LowerBound,
		UpperBound:    f.UpperBound,
		BasicAttempts: f.BasicAttempts,
		ShakeAttempts: f.ShakeAttempts,
		ShakeRandMin:  f.ShakeRandMin,
		ShakeRandMax:  f.ShakeRandMax,
		Seed:          f.Seed,
		DeepCopy:      f.DeepCopy,
		Infinity:      f.Infinity,
		ConfirmSol:    f.ConfirmSol,
		SuppressEBST:  f.SuppressEBST,
		FindShortTour: f.FindShortTour,
		Length:        f.Length,
		SolveMSTSP:    f.SolveMSTSP,
		LBOnly:        f.LBOnly,
		BTSPMinCost:   f.BTSPMinCost,
		BTSPMaxCost:   f.BTSPMaxCost,
		MSTSPMinCost:  f.MSTSPMinCost,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Tally is the CLI's stdout/XML summary of one run (spec.md §6.4).
type Tally struct {
	XMLName     xml.Name `xml:"tally"`
	RunID       string   `xml:"run_id"`
	Kind        string   `xml:"kind"`
	Found       bool     `xml:"found"`
	MinCost     int      `xml:"min_cost"`
	MaxCost     int      `xml:"max_cost"`
	Length      int      `xml:"length"`
	OptimalFlag bool     `xml:"optimal"`
	BinSteps    int      `xml:"bin_search_steps"`
	Attempts    int      `xml:"subsolver_attempts"`
	ElapsedMS   int64    `xml:"elapsed_ms"`
}

// Run loads the problem named by cfg.Input.ProblemFile, dispatches it to
// the driver named by kind, and writes the tally/XML/tour outputs.
func Run(kind Kind, cfg *config.Config) error {
	runID := uuid.NewString()
	log := logging.WithRun(runID)

	start := time.Now()

	f, err := os.Open(cfg.Input.ProblemFile)
	if err != nil {
		return fmt.Errorf("cliapp.Run: opening problem file: %w", err)
	}
	defer f.Close()

	problem, err := tsplib.ReadProblem(f)
	if err != nil {
		return fmt.Errorf("cliapp.Run: %w", err)
	}

	base := problem.Matrix
	var reduced bool
	if !base.Symmetric() {
		base, err = asym.Reduce(problem.Matrix)
		if err != nil {
			return fmt.Errorf("cliapp.Run: asym reduction: %w", err)
		}
		reduced = true
	}

	pi, err := costmatrix.NewProblemInfo(base)
	if err != nil {
		return fmt.Errorf("cliapp.Run: %w", err)
	}

	reg := telemetry.New("arrow", kindLabel(kind))
	rng := rand.New(rand.NewSource(cfg.Search.Seed))
	subCfg := subsolver.Config{
		RandomRestarts: cfg.Search.Restarts,
		StallCount:     cfg.Search.StallCount,
		Kicks:          cfg.Search.Kicks,
		Seed:           cfg.Search.Seed,
	}
	budget := driver.NewBudget(0)
	oc := oracle.New()

	log.Info("starting run", "kind", kindLabel(kind), "problem", cfg.Input.ProblemFile, "n", base.Size())

	var (
		res   oracle.FeasResult
		stats driver.Stats
	)

	switch kind {
	case BTSP:
		res, stats, err = driver.EBST(driver.EBSTConfig{
			Base:            base,
			Oracle:          oc,
			Info:            pi,
			LowerBoundIdx:   floorIdx(pi, cfg.Search.LowerBound),
			UpperBoundIdx:   pi.Len() - 1,
			Mode:            subsolver.LinKernighan,
			SubsolverConfig: subCfg,
			Attempts:        cfg.Search.BasicAttempts,
			RNG:             rng,
			Budget:          budget,
			Telemetry:       reg,
			Name:            "btsp",
		})
	case CBTSP:
		res, stats, err = driver.ConstrainedEBST(driver.ConstrainedEBSTConfig{
			EBSTConfig: driver.EBSTConfig{
				Base:            base,
				Oracle:          oc,
				Info:            pi,
				LowerBoundIdx:   floorIdx(pi, cfg.Search.LowerBound),
				UpperBoundIdx:   pi.Len() - 1,
				Mode:            subsolver.LinKernighan,
				SubsolverConfig: subCfg,
				Attempts:        cfg.Search.BasicAttempts,
				RNG:             rng,
				Budget:          budget,
				Telemetry:       reg,
				Name:            "cbtsp",
			},
			FeasibleLength: cfg.Search.Length,
		})
	case BalTSP:
		if cfg.Search.SuppressEBST {
			res, stats, err = driver.IB(driver.IBConfig{
				Base:            base,
				Oracle:          oc,
				Info:            pi,
				LowIdx:          floorIdx(pi, cfg.Search.BTSPMinCost),
				MaxIdx:          pi.Len() - 1,
				Mode:            subsolver.LinKernighan,
				SubsolverConfig: subCfg,
				Attempts:        cfg.Search.BasicAttempts,
				RNG:             rng,
				Budget:          budget,
				Telemetry:       reg,
				Name:            "baltsp_ib",
			})
		} else {
			res, stats, err = driver.DT(driver.DTConfig{
				Base:            base,
				Oracle:          oc,
				Info:            pi,
				LowIdx:          floorIdx(pi, cfg.Search.BTSPMinCost),
				HighIdx:         pi.Len() - 1,
				MaxIdx:          pi.Len() - 1,
				LowerBound:      cfg.Search.LowerBound,
				MSTSPMinCost:    cfg.Search.MSTSPMinCost,
				Asymmetric:      reduced,
				Mode:            subsolver.LinKernighan,
				SubsolverConfig: subCfg,
				Attempts:        cfg.Search.BasicAttempts,
				RNG:             rng,
				Budget:          budget,
				Telemetry:       reg,
				Name:            "baltsp_dt",
			})
		}
	default:
		return errors.New("cliapp.Run: unknown problem kind")
	}
	if err != nil {
		return fmt.Errorf("cliapp.Run: driver failed: %w", err)
	}

	outTour := res.Tour
	if reduced && res.Found {
		outTour, err = asym.Recover(res.Tour, problem.Matrix.Size())
		if err != nil {
			return fmt.Errorf("cliapp.Run: recovering asymmetric tour: %w", err)
		}
	}

	tally := Tally{
		RunID:       runID,
		Kind:        kindLabel(kind),
		Found:       res.Found,
		OptimalFlag: res.OptimalFlag,
		BinSteps:    stats.BinSearchSteps,
		Attempts:    stats.SubsolverAttempts,
		ElapsedMS:   time.Since(start).Milliseconds(),
	}
	if res.Found {
		tally.MinCost = base.TourMinCost(res.Tour)
		tally.MaxCost = base.TourMaxCost(res.Tour)
		tally.Length = res.Length
	}

	if err := writeTally(os.Stdout, tally); err != nil {
		return err
	}
	if cfg.Input.XMLPath != "" {
		if err := writeXML(cfg.Input.XMLPath, tally); err != nil {
			return err
		}
	}
	if cfg.Input.TourPath != "" && res.Found {
		if err := writeTour(cfg.Input.TourPath, problem.Name, outTour); err != nil {
			return err
		}
	}

	log.Info("run complete", "found", res.Found, "elapsed_ms", tally.ElapsedMS)

	if !res.Found {
		return fmt.Errorf("cliapp.Run: %w", arrowerrors.ErrNoTour)
	}

	return nil
}

// floorIdx clamps costmatrix.ProblemInfo.IndexOfFloor's -1 ("cost below
// every entry") to 0, since every driver here seeds its search at index
// 0 or above.
func floorIdx(pi *costmatrix.ProblemInfo, cost int) int {
	idx := pi.IndexOfFloor(cost)
	if idx < 0 {
		return 0
	}

	return idx
}

// ExitCode maps err's arrowerrors.Kind to a process exit code, so
// cmd/arrow-* entry points can select one without inspecting message
// text (package arrowerrors' stated purpose for the Kind taxonomy). err is
// assumed non-nil; callers only reach this after Run has already
// returned an error.
func ExitCode(err error) int {
	switch arrowerrors.Kindof(err) {
	case arrowerrors.KindInputFormat:
		return 2
	case arrowerrors.KindInfeasible:
		return 1
	case arrowerrors.KindSubsolverFailure:
		return 3
	case arrowerrors.KindInvariantViolation:
		return 4
	case arrowerrors.KindOutOfMemory:
		return 5
	default:
		return 1
	}
}

func kindLabel(k Kind) string {
	switch k {
	case BTSP:
		return "btsp"
	case CBTSP:
		return "cbtsp"
	case BalTSP:
		return "baltsp"
	default:
		return "unknown"
	}
}

func writeTally(w io.Writer, t Tally) error {
	_, err := fmt.Fprintf(w, "run=%s kind=%s found=%t min=%d max=%d length=%d optimal=%t steps=%d attempts=%d elapsed_ms=%d\n",
		t.RunID, t.Kind, t.Found, t.MinCost, t.MaxCost, t.Length, t.OptimalFlag, t.BinSteps, t.Attempts, t.ElapsedMS)

	return err
}

func writeXML(path string, t Tally) error {
	data, err := xml.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("cliapp.writeXML: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

func writeTour(path, name string, tour []int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cliapp.writeTour: %w", err)
	}
	defer f.Close()

	return tsplib.WriteTour(f, name, tour)
}
