package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/limaJavier/logicgrid/internal/metrics"
	"github.com/limaJavier/logicgrid/pkg/bdd"
	"github.com/limaJavier/logicgrid/pkg/compiler"
	"github.com/limaJavier/logicgrid/pkg/model"
	"github.com/limaJavier/logicgrid/pkg/sat"
	"github.com/limaJavier/logicgrid/pkg/solution"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var backends = map[string]func(engine *bdd.Engine, timeout time.Duration) solution.Backend{
	"bdd": func(engine *bdd.Engine, _ time.Duration) solution.Backend {
		return solution.NewBDDBackend(engine)
	},
	"gini": func(engine *bdd.Engine, timeout time.Duration) solution.Backend {
		return solution.NewSATBackend(engine, "gini", sat.NewGiniSolver(timeout))
	},
	"kissat":        external("kissat", sat.NewKissatSolver),
	"cadical":       external("cadical", sat.NewCadicalSolver),
	"cryptominisat": external("cryptominisat", sat.NewCryptominisatSolver),
	"minisat":       external("minisat", sat.NewMinisatSolver),
	"glucosesimp":   external("glucosesimp", sat.NewGlucoseSimpSolver),
	"slime":         external("slime", sat.NewSlimeSolver),
	"ortoolsat":     external("ortoolsat", sat.NewOrtoolsatSolver),
}

func external(name string, solver func() sat.SATSolver) func(*bdd.Engine, time.Duration) solution.Backend {
	return func(engine *bdd.Engine, _ time.Duration) solution.Backend {
		return solution.NewSATBackend(engine, name, solver())
	}
}

// searchBackend solves the puzzle by backtracking over its clues instead of the compiled formula
const searchBackend = "search"

func backendNames() []string {
	names := append(lo.Keys(backends), searchBackend)
	slices.Sort(names)
	return names
}

type solveOptions struct {
	file    string
	backend string
	format  string
	workers int
	all     int
	count   bool
	metrics bool
	timeout time.Duration
}

func addSolveFlags(flags *pflag.FlagSet, o *solveOptions) {
	flags.StringVar(&o.backend, "backend", "bdd", fmt.Sprintf("backend used to find a solution, one of: %v", strings.Join(backendNames(), ", ")))
	flags.StringVar(&o.format, "format", "table", "output format, \"table\" or \"json\"")
	flags.IntVar(&o.workers, "workers", runtime.GOMAXPROCS(0), "goroutines used to compile the puzzle; 1 compiles sequentially")
	flags.IntVarP(&o.all, "all", "a", 0, "print up to this many solutions instead of one (bdd or search)")
	flags.BoolVarP(&o.count, "count", "c", false, "print the number of solutions")
	flags.BoolVar(&o.metrics, "metrics", false, "dump compilation metrics in the Prometheus text format")
	flags.DurationVar(&o.timeout, "timeout", 0, "time limit for the gini backend; 0 means no limit")
}

func (o *solveOptions) validate() error {
	if !slices.Contains(backendNames(), o.backend) {
		return fmt.Errorf("%v is not a valid backend", o.backend)
	} else if o.format != "table" && o.format != "json" {
		return fmt.Errorf("%v is not a valid format", o.format)
	} else if o.workers <= 0 {
		return fmt.Errorf("workers must be positive: %v", o.workers)
	} else if o.all < 0 {
		return fmt.Errorf("all must not be negative: %v", o.all)
	} else if o.all > 0 && o.backend != "bdd" && o.backend != searchBackend {
		return fmt.Errorf("the %v backend finds a single solution; use bdd or search to enumerate", o.backend)
	}
	return nil
}

func (a *app) newSolveCmd() *cobra.Command {
	o := &solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solves the puzzle described by a JSON or YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.file == "" {
				return errors.New("an input file must be specified")
			}
			puzzle, err := model.PuzzleFromFile(o.file)
			if err != nil {
				return fmt.Errorf("cannot parse input file: %w", err)
			}
			return a.solve(cmd.Context(), puzzle, o)
		},
	}
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "path to the puzzle file")
	addSolveFlags(cmd.Flags(), o)
	return cmd
}

func (a *app) solve(ctx context.Context, puzzle model.Puzzle, o *solveOptions) error {
	if err := o.validate(); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	compiled, err := compiler.New(puzzle, compiler.WithWorkers(o.workers))
	if err != nil {
		return fmt.Errorf("invalid puzzle: %w", err)
	}
	formula, err := compiled.Compile(ctx)
	if err != nil {
		return fmt.Errorf("an error occurred during compilation: %w", err)
	}

	if o.count {
		fmt.Fprintf(a.stdout, "Solutions: %v\n", compiled.Engine().SatCount(formula))
	}

	var solutions [][]solution.Record
	if o.backend == searchBackend {
		limit := max(o.all, 1)
		if solutions = solution.Search(puzzle, limit); len(solutions) == 0 {
			err = solution.ErrNoSolution
		}
	} else if o.all > 0 {
		solutions, err = solution.Enumerate(compiled.Engine(), puzzle.Domain, formula, o.all)
	} else {
		backend := backends[o.backend](compiled.Engine(), o.timeout)
		var records []solution.Record
		records, err = solution.Extract(backend, puzzle.Domain, formula)
		solutions = [][]solution.Record{records}
	}

	switch {
	case errors.Is(err, solution.ErrNoSolution):
		fmt.Fprintln(a.stdout, "Not satisfiable")
		a.status = statusUnsatisfiable
		return a.dumpMetrics(o)
	case err != nil:
		return fmt.Errorf("an error occurred while solving: %w", err)
	}

	a.status = statusSatisfiable
	for _, records := range solutions {
		if !solution.Verify(records, puzzle) {
			log.WithField("puzzle", puzzle.Name).Warn("solution does not satisfy the puzzle")
			a.status = statusUnverified
		}
	}

	if err := a.render(puzzle.Domain, solutions, o.format); err != nil {
		return err
	}
	return a.dumpMetrics(o)
}

func (a *app) render(domain model.Domain, solutions [][]solution.Record, format string) error {
	if format == "json" {
		output, err := json.MarshalIndent(lo.Map(solutions, func(records []solution.Record, _ int) []map[string]string {
			return recordsToMaps(domain, records)
		}), "", "  ")
		if err != nil {
			return fmt.Errorf("an error occurred while building output json: %w", err)
		}
		fmt.Fprintln(a.stdout, string(output))
		return nil
	}

	for i, records := range solutions {
		if len(solutions) > 1 {
			fmt.Fprintf(a.stdout, "Solution %v\n", i+1)
		}
		fmt.Fprintln(a.stdout, renderTable(domain, records))
	}
	return nil
}

func (a *app) dumpMetrics(o *solveOptions) error {
	if !o.metrics {
		return nil
	}
	return metrics.WriteText(a.stdout)
}

func recordsToMaps(domain model.Domain, records []solution.Record) []map[string]string {
	return lo.Map(records, func(record solution.Record, _ int) map[string]string {
		entry := map[string]string{"object": fmt.Sprint(int(record.Object) + 1)}
		for property, label := range record.Labels {
			entry[domain.Properties[property].Name] = label
		}
		return entry
	})
}
