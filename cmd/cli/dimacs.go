package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/limaJavier/logicgrid/pkg/compiler"
	"github.com/limaJavier/logicgrid/pkg/model"
	"github.com/limaJavier/logicgrid/pkg/puzzles"
	"github.com/limaJavier/logicgrid/pkg/sat"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func (a *app) newDimacsCmd() *cobra.Command {
	var (
		file    string
		out     string
		workers int
	)
	cmd := &cobra.Command{
		Use:   "dimacs",
		Short: "Compiles a puzzle and exports its formula in the DIMACS-CNF format",
		Long: `Compiles a puzzle and exports its formula in the DIMACS-CNF format.
Variable i+1 of the CNF is bit i of the variable pool, laid out object-major,
then property, then bit (most-significant first). Without --file the builtin
Einstein puzzle is exported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			puzzle := puzzles.Einstein()
			if file != "" {
				var err error
				if puzzle, err = model.PuzzleFromFile(file); err != nil {
					return fmt.Errorf("cannot parse input file: %w", err)
				}
			}

			compiled, err := compiler.New(puzzle, compiler.WithWorkers(workers))
			if err != nil {
				return fmt.Errorf("invalid puzzle: %w", err)
			}
			formula, err := compiled.Compile(cmd.Context())
			if err != nil {
				return fmt.Errorf("an error occurred during compilation: %w", err)
			}

			instance, err := sat.FromFormula(compiled.Engine(), formula)
			if err != nil {
				return fmt.Errorf("an error occurred while converting to CNF: %w", err)
			}
			log.WithFields(log.Fields{
				"variables": instance.Variables,
				"clauses":   len(instance.Clauses),
			}).Debug("formula exported")

			if out == "" {
				return instance.WriteDIMACS(a.stdout)
			}
			output, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("an error occurred while creating the output file: %w", err)
			}
			return errors.Join(instance.WriteDIMACS(output), output.Close())
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the puzzle file")
	cmd.Flags().StringVarP(&out, "out", "o", "", "path to the file where the CNF will be written; if empty, it'll be written into the Standard Output")
	cmd.Flags().IntVar(&workers, "workers", runtime.GOMAXPROCS(0), "goroutines used to compile the puzzle")
	return cmd
}
