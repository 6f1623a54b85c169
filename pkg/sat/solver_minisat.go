package sat

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// modelFileSolver runs a MiniSat-style solver that reads the instance from a file and writes
// its model to a second one
type modelFileSolver struct {
	name string
}

func NewMinisatSolver() SATSolver {
	return &modelFileSolver{name: "minisat"}
}

func NewGlucoseSimpSolver() SATSolver {
	return &modelFileSolver{name: "glucose-simp"}
}

func (solver *modelFileSolver) Solve(sat SAT) (SATSolution, error) {
	path, err := getExecutablePath(solver.name)
	if err != nil {
		return nil, err
	}

	input, err := writeTempDIMACS(sat)
	if err != nil {
		return nil, err
	}
	defer os.Remove(input)

	outputFile, err := os.CreateTemp("", solver.name+"_output-*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	outputFile.Close()
	defer os.Remove(outputFile.Name())

	cmd := exec.Command(path, "-verb=0", input, outputFile.Name())
	if _, satisfiable, err := run(solver.name, cmd); err != nil || !satisfiable {
		return nil, err
	}

	output, err := os.ReadFile(outputFile.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to read output file: %w", err)
	}
	return solver.parseSolution(string(output))
}

// parseSolution reads the model file: an optional "SAT"/"UNSAT" header line followed by
// the literals
func (solver *modelFileSolver) parseSolution(solverOutput string) (SATSolution, error) {
	lines := strings.Split(strings.TrimSpace(solverOutput), "\n")
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "UNSAT" {
		return nil, nil
	}
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "SAT" {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%v wrote an empty model", solver.name)
	}
	return parseLiterals(strings.Join(lines, " "))
}
