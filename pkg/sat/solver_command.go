package sat

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// commandSolver runs an external solver that prints its model as competition-format "v" lines.
// The instance is fed through standard input unless fileInput is set, in which case it is
// passed as the last argument.
type commandSolver struct {
	name      string
	args      []string
	fileInput bool
}

func NewKissatSolver() SATSolver {
	return &commandSolver{name: "kissat", args: []string{"-q", "--relaxed"}}
}

func NewCadicalSolver() SATSolver {
	return &commandSolver{name: "cadical", args: []string{"-q"}}
}

func NewCryptominisatSolver() SATSolver {
	return &commandSolver{name: "cryptominisat5", args: []string{"--verb=0"}}
}

func NewSlimeSolver() SATSolver {
	return &commandSolver{name: "slime", fileInput: true}
}

func NewOrtoolsatSolver() SATSolver {
	return &commandSolver{name: "ortoolsat", fileInput: true}
}

func (solver *commandSolver) Solve(sat SAT) (SATSolution, error) {
	path, err := getExecutablePath(solver.name)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(path, solver.args...)
	if solver.fileInput {
		input, err := writeTempDIMACS(sat)
		if err != nil {
			return nil, err
		}
		defer os.Remove(input)
		cmd.Args = append(cmd.Args, input)
	} else {
		cmd.Stdin = strings.NewReader(sat.ToDIMACS())
	}

	output, satisfiable, err := run(solver.name, cmd)
	if err != nil || !satisfiable {
		return nil, err
	}
	solution, err := parseSolution(output)
	if err != nil {
		return nil, fmt.Errorf("cannot read %v model: %w", solver.name, err)
	}
	return solution, nil
}
