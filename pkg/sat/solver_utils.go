package sat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// ConfigPath points to a JSON object mapping "<solver>Path" keys to executables
var ConfigPath = "config.json"

var (
	ErrSolverUnavailable = errors.New("solver executable not found")
	ErrMalformedOutput   = errors.New("invalid literal in solver output")
)

// Exit-code of 10 stands for satisfiable and exit-code 20 stands for unsatisfiable
const (
	exitSatisfiable   = 10
	exitUnsatisfiable = 20
)

// parseSolution reads the literals of every "v" line of a competition-format output
func parseSolution(solverOutput string) (SATSolution, error) {
	lines := lo.Filter(strings.Split(solverOutput, "\n"), func(line string, _ int) bool {
		return len(line) > 0 && line[0] == 'v'
	})
	return parseLiterals(strings.Join(lo.Map(lines, func(line string, _ int) string { return line[1:] }), " "))
}

// parseLiterals reads a whitespace separated literal list, dropping the 0 terminators
func parseLiterals(line string) (SATSolution, error) {
	solution := make(SATSolution, 0)
	for _, valueStr := range strings.Fields(line) {
		value, err := strconv.ParseInt(valueStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedOutput, err)
		} else if value != 0 {
			solution = append(solution, value)
		}
	}
	return solution, nil
}

// getExecutablePath resolves solver's executable from ConfigPath, falling back to the
// solver's name on PATH
func getExecutablePath(solver string) (string, error) {
	if content, err := os.ReadFile(ConfigPath); err == nil {
		var inputJson map[string]any
		if err := json.Unmarshal(content, &inputJson); err != nil {
			return "", fmt.Errorf("cannot read %v: %w", ConfigPath, err)
		}

		var config map[string]string
		if err := mapstructure.Decode(inputJson, &config); err != nil {
			return "", fmt.Errorf("cannot decode %v: %w", ConfigPath, err)
		}

		if path, ok := config[solver+"Path"]; ok {
			return path, nil
		}
	}

	path, err := exec.LookPath(solver)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSolverUnavailable, solver)
	}
	return path, nil
}

// run executes cmd and reports whether the instance was satisfiable
func run(name string, cmd *exec.Cmd) (stdout string, satisfiable bool, err error) {
	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err = cmd.Run()
	if cmd.ProcessState == nil {
		return "", false, fmt.Errorf("cannot start %v: %w", name, err)
	}

	switch code := cmd.ProcessState.ExitCode(); {
	case code == exitUnsatisfiable:
		return "", false, nil
	case err != nil && code != exitSatisfiable:
		return "", false, fmt.Errorf("an error occurred during %v execution: %v : %v", name, err, stderr.String())
	}
	return stdOut.String(), true, nil
}

// writeTempDIMACS stores sat in a temporary file, returning its name
func writeTempDIMACS(sat SAT) (string, error) {
	file, err := os.CreateTemp("", "dimacs-*.cnf")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	if err := sat.WriteDIMACS(file); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", fmt.Errorf("failed to write DIMACS to temporary file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("failed to close temporary file: %w", err)
	}
	return file.Name(), nil
}
