package main

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/limaJavier/logicgrid/pkg/sat"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Exit-code of 10 stands for satisfiable, 20 for unsatisfiable and 15 for a solution that failed verification
const (
	statusSatisfiable   = 10
	statusUnverified    = 15
	statusUnsatisfiable = 20
)

type app struct {
	stdout io.Writer
	status int
	debug  bool
}

func main() {
	setConfigPath()

	status, err := execute(os.Args[1:], os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(status)
}

// execute runs the command line args, returning the exit status the command settled on
func execute(args []string, stdout io.Writer) (int, error) {
	a := &app{stdout: stdout}
	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	if err := root.Execute(); err != nil {
		return 0, err
	}
	return a.status, nil
}

func (a *app) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "logicgrid",
		Short:         "Solves logic-grid puzzles by compiling their clues into a boolean formula",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.debug {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "use debug log level")

	cmd.AddCommand(a.newSolveCmd(), a.newEinsteinCmd(), a.newDimacsCmd())
	return cmd
}

// setConfigPath points the external solvers to the config.json next to the executable, if any
func setConfigPath() {
	execPath, err := os.Executable()
	if err != nil {
		log.Fatalf("cannot determine executable path: %v", err)
	}

	configPath := path.Join(path.Dir(execPath), "config.json")
	if _, err := os.Stat(configPath); err != nil {
		log.WithField("path", configPath).Debug("no solver config, using PATH")
		return
	}
	sat.ConfigPath = configPath
}
