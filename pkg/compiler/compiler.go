package compiler

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/limaJavier/logicgrid/internal/metrics"
	"github.com/limaJavier/logicgrid/pkg/bdd"
	"github.com/limaJavier/logicgrid/pkg/model"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Compiler turns a puzzle into a single formula: one constraint per clue, plus uniqueness
// (unless the puzzle allows repeats) and the value upper bound.
type Compiler struct {
	puzzle   model.Puzzle
	workers  int
	engine   *bdd.Engine
	encoder  *Encoder
	builder  *Builder
	topology Topology
}

type Option func(*Compiler)

// WithWorkers bounds the number of goroutines generating constraints; 1 compiles sequentially
func WithWorkers(workers int) Option {
	return func(compiler *Compiler) { compiler.workers = workers }
}

func New(puzzle model.Puzzle, options ...Option) (*Compiler, error) {
	if err := puzzle.Validate(); err != nil {
		return nil, err
	}

	compiler := &Compiler{
		puzzle:  puzzle,
		workers: runtime.GOMAXPROCS(0),
	}
	for _, option := range options {
		option(compiler)
	}
	if compiler.workers <= 0 {
		return nil, fmt.Errorf("workers must be positive: %v", compiler.workers)
	}

	engine, err := bdd.NewEngine(puzzle.Domain.Variables())
	if err != nil {
		return nil, err
	}

	compiler.engine = engine
	compiler.encoder = NewEncoder(engine, engine.Variables(), puzzle.Domain)
	compiler.builder = NewBuilder(engine)
	compiler.topology = NewTopology(puzzle.Layout())
	return compiler, nil
}

func (compiler *Compiler) Puzzle() model.Puzzle { return compiler.puzzle }
func (compiler *Compiler) Engine() *bdd.Engine  { return compiler.engine }
func (compiler *Compiler) Encoder() *Encoder    { return compiler.encoder }
func (compiler *Compiler) Builder() *Builder    { return compiler.builder }
func (compiler *Compiler) Topology() Topology   { return compiler.topology }

// Constraints returns every constraint the puzzle compiles to
func (compiler *Compiler) Constraints() []Constraint {
	constraints := make([]Constraint, 0, len(compiler.puzzle.Clues)+2)
	for _, clue := range compiler.puzzle.Clues {
		constraints = append(constraints, compiler.clueConstraint(clue))
	}

	if !compiler.puzzle.Repeats {
		if compiler.workers == 1 {
			constraints = append(constraints, Unique())
		} else {
			constraints = append(constraints, UniqueParallel(compiler.workers))
		}
	}
	// Uniqueness compares raw bits, so invalid codes must always be excluded
	constraints = append(constraints, UpperBound())

	return constraints
}

func (compiler *Compiler) clueConstraint(clue model.Clue) Constraint {
	switch clue.Kind {
	case model.ClueExists:
		return Exists(clue.Values...)
	case model.ClueFixed:
		return Fixed(clue.Object, clue.Values[0])
	case model.ClueNeighbor:
		return Directional(compiler.topology, clue.Offset, clue.Values[0], clue.Values[1])
	case model.ClueAdjacent:
		return Adjacent(compiler.topology, clue.Values[0], clue.Values[1], clue.Offsets...)
	default:
		log.Panicf("unknown clue kind \"%v\"", clue.Kind)
		return Constraint{}
	}
}

// Compile conjoins every constraint into the compiler's builder and returns the result.
// Constraints are generated on up to workers goroutines; ctx only stops scheduling new ones.
func (compiler *Compiler) Compile(ctx context.Context) (bdd.Formula, error) {
	start := time.Now()
	defer func() { metrics.CompileDuration.Observe(time.Since(start).Seconds()) }()

	constraints := compiler.Constraints()

	if compiler.workers == 1 {
		for _, constraint := range constraints {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			constraint.Apply(compiler.encoder, compiler.builder)
		}
	} else {
		group, ctx := errgroup.WithContext(ctx)
		group.SetLimit(compiler.workers)
		for _, constraint := range constraints {
			group.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				constraint.ApplyConcurrent(compiler.encoder, compiler.builder)
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return nil, err
		}
	}

	log.WithFields(log.Fields{
		"puzzle":      compiler.puzzle.Name,
		"constraints": len(constraints),
		"variables":   compiler.engine.Varnum(),
		"elapsed":     time.Since(start),
	}).Debug("puzzle compiled")

	return compiler.builder.Result(), nil
}
