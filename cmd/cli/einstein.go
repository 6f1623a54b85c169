package main

import (
	"github.com/limaJavier/logicgrid/pkg/puzzles"

	"github.com/spf13/cobra"
)

func (a *app) newEinsteinCmd() *cobra.Command {
	o := &solveOptions{}
	cmd := &cobra.Command{
		Use:   "einstein",
		Short: "Solves the builtin Einstein puzzle: who owns the zebra?",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.solve(cmd.Context(), puzzles.Einstein(), o)
		},
	}
	addSolveFlags(cmd.Flags(), o)
	return cmd
}
