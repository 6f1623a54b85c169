package solution

import (
	"time"

	"github.com/limaJavier/logicgrid/internal/metrics"
	"github.com/limaJavier/logicgrid/pkg/bdd"
	"github.com/limaJavier/logicgrid/pkg/model"
	"github.com/limaJavier/logicgrid/pkg/sat"

	log "github.com/sirupsen/logrus"
)

// Backend finds one satisfying assignment of a formula: one boolean per engine variable.
// An unsatisfiable formula yields a nil assignment and a nil error.
type Backend interface {
	Name() string
	Assignment(formula bdd.Formula) ([]bool, error)
}

type bddBackend struct {
	engine *bdd.Engine
}

// NewBDDBackend reads an assignment straight off the formula's diagram
func NewBDDBackend(engine *bdd.Engine) Backend {
	return &bddBackend{engine: engine}
}

func (backend *bddBackend) Name() string { return "bdd" }

func (backend *bddBackend) Assignment(formula bdd.Formula) ([]bool, error) {
	assignment, ok := backend.engine.OneSat(formula)
	if !ok {
		return nil, nil
	}
	return assignment, nil
}

type satBackend struct {
	engine *bdd.Engine
	name   string
	solver sat.SATSolver
}

// NewSATBackend converts the formula to CNF and hands it to solver
func NewSATBackend(engine *bdd.Engine, name string, solver sat.SATSolver) Backend {
	return &satBackend{engine: engine, name: name, solver: solver}
}

func (backend *satBackend) Name() string { return backend.name }

func (backend *satBackend) Assignment(formula bdd.Formula) ([]bool, error) {
	instance, err := sat.FromFormula(backend.engine, formula)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"backend":   backend.name,
		"variables": instance.Variables,
		"clauses":   len(instance.Clauses),
	}).Debug("formula converted to CNF")

	solution, err := backend.solver.Solve(instance)
	if err != nil || solution == nil {
		return nil, err
	}
	// Node variables follow the engine's and are not part of the assignment
	return solution.Assignment(uint64(backend.engine.Varnum())), nil
}

// Extract obtains one assignment of formula from backend and decodes it
func Extract(backend Backend, domain model.Domain, formula bdd.Formula) ([]Record, error) {
	start := time.Now()
	assignment, err := backend.Assignment(formula)
	metrics.SolveDuration.WithLabelValues(backend.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	} else if assignment == nil {
		return nil, ErrNoSolution
	}
	return Decode(domain, assignment)
}

// Enumerate decodes up to limit distinct solutions of formula; a non-positive limit means all
func Enumerate(engine *bdd.Engine, domain model.Domain, formula bdd.Formula, limit int) ([][]Record, error) {
	assignments := engine.AllSat(formula, limit)
	if len(assignments) == 0 {
		return nil, ErrNoSolution
	}

	solutions := make([][]Record, 0, len(assignments))
	for _, assignment := range assignments {
		records, err := Decode(domain, assignment)
		if err != nil {
			return nil, err
		}
		solutions = append(solutions, records)
	}
	return solutions, nil
}
