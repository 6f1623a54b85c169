package bdd

import (
	"errors"
	"fmt"
	"math/big"
	"slices"
	"sync"

	"github.com/dalzilio/rudd"
	"github.com/samber/lo"
)

// Formula is a canonical handle to a Boolean function. Two formulas built by the same
// Engine are logically equivalent if and only if Equal reports true for them.
type Formula = rudd.Node

const (
	defaultNodesize  = 10000
	defaultCachesize = 3000
)

var errStop = errors.New("stop enumeration")

// Engine wraps a rudd BDD kernel with a fixed universe of independent variables.
// The kernel is not safe for concurrent use, so every operation takes the engine's lock;
// the returned Formula handles are immutable and may be shared freely.
type Engine struct {
	mutex     sync.Mutex
	kernel    *rudd.BDD
	variables []Formula
}

type Option func(*engineConfig)

type engineConfig struct {
	nodesize  int
	cachesize int
}

// WithNodesize sets the initial size of the node table
func WithNodesize(size int) Option {
	return func(config *engineConfig) { config.nodesize = size }
}

// WithCachesize sets the size of the operation caches
func WithCachesize(size int) Option {
	return func(config *engineConfig) { config.cachesize = size }
}

// NewEngine declares varnum fresh Boolean variables, indexed from 0 to varnum-1
func NewEngine(varnum int, options ...Option) (*Engine, error) {
	if varnum <= 0 {
		return nil, fmt.Errorf("variable count must be positive: %v", varnum)
	}

	config := engineConfig{nodesize: defaultNodesize, cachesize: defaultCachesize}
	for _, option := range options {
		option(&config)
	}

	kernel, err := rudd.New(varnum, rudd.Nodesize(config.nodesize), rudd.Cachesize(config.cachesize))
	if err != nil {
		return nil, fmt.Errorf("cannot initialize bdd kernel: %w", err)
	}

	variables := make([]Formula, varnum)
	for i := range varnum {
		variables[i] = kernel.Ithvar(i)
	}

	return &Engine{
		kernel:    kernel,
		variables: variables,
	}, nil
}

// Varnum returns the size of the variable universe
func (engine *Engine) Varnum() int {
	return len(engine.variables)
}

// Variables returns the declared variables in index order. The slice is a copy.
func (engine *Engine) Variables() []Formula {
	variables := make([]Formula, len(engine.variables))
	copy(variables, engine.variables)
	return variables
}

func (engine *Engine) True() Formula {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()
	return engine.kernel.True()
}

func (engine *Engine) False() Formula {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()
	return engine.kernel.False()
}

// And returns the conjunction of formulas; the empty conjunction is True
func (engine *Engine) And(formulas ...Formula) Formula {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	result := engine.kernel.True()
	for _, formula := range formulas {
		result = engine.kernel.And(result, formula)
	}
	return result
}

// Or returns the disjunction of formulas; the empty disjunction is False
func (engine *Engine) Or(formulas ...Formula) Formula {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	result := engine.kernel.False()
	for _, formula := range formulas {
		result = engine.kernel.Or(result, formula)
	}
	return result
}

func (engine *Engine) Not(formula Formula) Formula {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()
	return engine.kernel.Not(formula)
}

// Xor returns the exclusive disjunction of a and b
func (engine *Engine) Xor(a, b Formula) Formula {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()
	return engine.kernel.Or(
		engine.kernel.And(a, engine.kernel.Not(b)),
		engine.kernel.And(engine.kernel.Not(a), b),
	)
}

func (engine *Engine) Equal(a, b Formula) bool {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()
	return engine.kernel.Equal(a, b)
}

// IsFalse reports whether formula is unsatisfiable
func (engine *Engine) IsFalse(formula Formula) bool {
	return engine.Equal(formula, engine.False())
}

// SatCount returns the number of satisfying assignments over the whole variable universe
func (engine *Engine) SatCount(formula Formula) *big.Int {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()
	return engine.kernel.Satcount(formula)
}

// Node is a decision node of a formula's diagram. Low and High are the ids of the successors
// taken when Variable is false and true; FalseID and TrueID stand for the constants.
type Node struct {
	ID       int
	Variable int
	Low      int
	High     int
}

const (
	FalseID = 0
	TrueID  = 1
)

// ID returns the id of formula's root node
func (engine *Engine) ID(formula Formula) int {
	return *formula
}

// Nodes returns every decision node reachable from formula, in no particular order. Constant
// formulas have none.
func (engine *Engine) Nodes(formula Formula) ([]Node, error) {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	nodes := make([]Node, 0)
	err := engine.kernel.Allnodes(func(id, level, low, high int) error {
		nodes = append(nodes, Node{ID: id, Variable: level, Low: low, High: high})
		return nil
	}, formula)
	if err != nil {
		return nil, fmt.Errorf("cannot walk formula: %w", err)
	}
	return nodes, nil
}

// Cubes calls yield on every cube of formula, one per path to True. A cube holds one entry
// per variable: 0 (false), 1 (true) or -1 (don't care). The slice passed to yield must not be
// retained. Returning an error from yield stops the enumeration and the error is returned.
// The engine is not locked while yield runs.
func (engine *Engine) Cubes(formula Formula, yield func(cube []int) error) error {
	nodes, err := engine.Nodes(formula)
	if err != nil {
		return err
	}

	diagram := lo.SliceToMap(nodes, func(node Node) (int, Node) { return node.ID, node })
	cube := make([]int, engine.Varnum())
	for i := range cube {
		cube[i] = -1
	}
	return walk(diagram, engine.ID(formula), cube, yield)
}

func walk(diagram map[int]Node, id int, cube []int, yield func(cube []int) error) error {
	switch id {
	case FalseID:
		return nil
	case TrueID:
		return yield(cube)
	}

	node := diagram[id]
	for value, successor := range [2]int{node.Low, node.High} {
		if successor == FalseID {
			continue
		}
		cube[node.Variable] = value
		err := walk(diagram, successor, cube, yield)
		cube[node.Variable] = -1
		if err != nil {
			return err
		}
	}
	return nil
}

// OneSat returns one satisfying assignment of formula, with don't-care variables set to
// false. The second result is false when formula is unsatisfiable.
func (engine *Engine) OneSat(formula Formula) ([]bool, bool) {
	var assignment []bool
	err := engine.Cubes(formula, func(cube []int) error {
		assignment = make([]bool, len(cube))
		for i, value := range cube {
			assignment[i] = value == 1
		}
		return errStop
	})
	if assignment == nil || (err != nil && !errors.Is(err, errStop)) {
		return nil, false
	}
	return assignment, true
}

// AllSat returns up to limit distinct satisfying assignments, expanding don't-care
// variables false first. A non-positive limit means no limit.
func (engine *Engine) AllSat(formula Formula, limit int) [][]bool {
	assignments := make([][]bool, 0)
	full := func() bool { return limit > 0 && len(assignments) >= limit }

	err := engine.Cubes(formula, func(cube []int) error {
		assignment := make([]bool, len(cube))
		var expand func(variable int) bool
		expand = func(variable int) bool {
			if full() {
				return false
			} else if variable == len(cube) {
				assignments = append(assignments, slices.Clone(assignment))
				return true
			} else if cube[variable] >= 0 {
				assignment[variable] = cube[variable] == 1
				return expand(variable + 1)
			}

			for _, value := range [2]bool{false, true} {
				assignment[variable] = value
				if !expand(variable + 1) {
					return false
				}
			}
			return true
		}

		if !expand(0) || full() {
			return errStop
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		return nil
	}
	return assignments
}
