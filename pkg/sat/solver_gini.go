package sat

import (
	"fmt"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

type giniSolver struct {
	timeout time.Duration
}

// NewGiniSolver returns an in-process solver. A positive timeout bounds the search.
func NewGiniSolver(timeout time.Duration) SATSolver {
	return &giniSolver{timeout: timeout}
}

func (solver *giniSolver) Solve(sat SAT) (SATSolution, error) {
	g := gini.NewVc(int(sat.Variables), len(sat.Clauses))
	for _, clause := range sat.Clauses {
		if len(clause) == 0 {
			return nil, nil
		}
		for _, literal := range clause {
			g.Add(z.Dimacs2Lit(int(literal)))
		}
		g.Add(z.LitNull)
	}

	var result int
	if solver.timeout > 0 {
		result = g.Try(solver.timeout)
	} else {
		result = g.Solve()
	}

	switch result {
	case 1:
		solution := make(SATSolution, 0, sat.Variables)
		for variable := 1; variable <= int(sat.Variables); variable++ {
			literal := -int64(variable)
			// Variables in no clause are unknown to gini and stay false
			if z.Var(variable) <= g.MaxVar() && g.Value(z.Dimacs2Lit(variable)) {
				literal = -literal
			}
			solution = append(solution, literal)
		}
		return solution, nil
	case -1:
		return nil, nil
	default:
		return nil, fmt.Errorf("gini gave up after %v", solver.timeout)
	}
}
