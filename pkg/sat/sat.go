package sat

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/limaJavier/logicgrid/pkg/bdd"

	"github.com/samber/lo"
)

// SATSolution lists one signed literal per variable; a positive literal means true
type SATSolution []int64

type SAT struct {
	Variables uint64
	Clauses   [][]int64
}

// SATSolver solves a CNF instance. An unsatisfiable instance yields a nil solution and a nil error.
type SATSolver interface {
	Solve(SAT) (SATSolution, error)
}

func (s SAT) ToDIMACS() string {
	var builder strings.Builder
	_ = s.WriteDIMACS(&builder)
	return builder.String()
}

func (s SAT) WriteDIMACS(writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "p cnf %d %d\n", s.Variables, len(s.Clauses)); err != nil {
		return err
	}
	for _, clause := range s.Clauses {
		var line strings.Builder
		for _, literal := range clause {
			fmt.Fprintf(&line, "%d ", literal)
		}
		line.WriteString("0\n")
		if _, err := io.WriteString(writer, line.String()); err != nil {
			return err
		}
	}
	return nil
}

// FromFormula converts a formula over engine's variables into an equisatisfiable CNF. Variable
// i of the engine is DIMACS variable i+1; every decision node of the formula's diagram gets one
// more variable n, defined by n <-> ite(x, high, low), and the root's variable is asserted.
// Projecting a model onto the first engine.Varnum() variables gives a model of the formula.
func FromFormula(engine *bdd.Engine, formula bdd.Formula) (SAT, error) {
	varnum := uint64(engine.Varnum())
	switch engine.ID(formula) {
	case bdd.TrueID:
		return SAT{Variables: varnum}, nil
	case bdd.FalseID:
		return SAT{Variables: varnum, Clauses: [][]int64{{}}}, nil
	}

	nodes, err := engine.Nodes(formula)
	if err != nil {
		return SAT{}, err
	}
	slices.SortFunc(nodes, func(a, b bdd.Node) int { return cmp.Compare(a.ID, b.ID) })

	auxiliaries := make(map[int]int64, len(nodes))
	for i, node := range nodes {
		auxiliaries[node.ID] = int64(varnum) + int64(i) + 1
	}
	term := func(id int) literal {
		switch id {
		case bdd.TrueID:
			return literal{constant: true, value: true}
		case bdd.FalseID:
			return literal{constant: true}
		}
		return literal{variable: auxiliaries[id]}
	}

	instance := SAT{
		Variables: varnum + uint64(len(nodes)),
		Clauses:   make([][]int64, 0, 4*len(nodes)+1),
	}
	for _, node := range nodes {
		n := literal{variable: auxiliaries[node.ID]}
		x := literal{variable: int64(node.Variable) + 1}
		low, high := term(node.Low), term(node.High)

		instance.addClause(n.not(), x.not(), high)
		instance.addClause(n.not(), x, low)
		instance.addClause(n, x.not(), high.not())
		instance.addClause(n, x, low.not())
	}
	instance.Clauses = append(instance.Clauses, []int64{auxiliaries[engine.ID(formula)]})

	return instance, nil
}

// literal is either a signed DIMACS variable or a Boolean constant
type literal struct {
	variable int64
	constant bool
	value    bool
}

func (l literal) not() literal {
	if l.constant {
		return literal{constant: true, value: !l.value}
	}
	return literal{variable: -l.variable}
}

// addClause appends the disjunction of literals: a true constant drops the clause and false
// constants are left out
func (s *SAT) addClause(literals ...literal) {
	clause := make([]int64, 0, len(literals))
	for _, l := range literals {
		if l.constant && l.value {
			return
		} else if !l.constant {
			clause = append(clause, l.variable)
		}
	}
	s.Clauses = append(s.Clauses, clause)
}

// Assignment turns a solution into one boolean per variable. Variables the solution leaves
// out are false.
func (solution SATSolution) Assignment(variables uint64) []bool {
	assignment := make([]bool, variables)
	for _, literal := range solution {
		if literal > 0 && uint64(literal) <= variables {
			assignment[literal-1] = true
		}
	}
	return assignment
}

// Satisfied reports whether solution is consistent and satisfies every clause of s
func (s SAT) Satisfied(solution SATSolution) bool {
	// Make sure there are no duplicates nor contradictions
	literals := make(map[int64]bool)
	for _, literal := range solution {
		if literals[literal] || literals[-literal] {
			return false
		}
		literals[literal] = true
	}

	return lo.EveryBy(s.Clauses, func(clause []int64) bool {
		return lo.SomeBy(clause, func(literal int64) bool { return literals[literal] })
	})
}
