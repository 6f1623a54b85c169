package compiler

import (
	"sync"

	"github.com/limaJavier/logicgrid/internal/metrics"
	"github.com/limaJavier/logicgrid/pkg/bdd"
)

// Builder accumulates the conjunction of every condition added to it. It starts as True and
// is only ever strengthened, except through SetFormula.
type Builder struct {
	engine  *bdd.Engine
	mutex   sync.Mutex
	formula bdd.Formula
}

func NewBuilder(engine *bdd.Engine) *Builder {
	return &Builder{
		engine:  engine,
		formula: engine.True(),
	}
}

// AddCondition conjoins formula into the accumulated state. It must not be called
// concurrently with any other method; use AddConditionConcurrent for that.
func (builder *Builder) AddCondition(formula bdd.Formula) {
	builder.formula = builder.engine.And(builder.formula, formula)
	metrics.Conditions.Inc()
}

// AddConditionConcurrent has the same effect as AddCondition and may be called from several
// goroutines at once. Read, conjunction and write-back happen under a single lock.
func (builder *Builder) AddConditionConcurrent(formula bdd.Formula) {
	builder.mutex.Lock()
	defer builder.mutex.Unlock()
	builder.AddCondition(formula)
}

// SetFormula replaces the accumulated state
func (builder *Builder) SetFormula(formula bdd.Formula) {
	builder.mutex.Lock()
	defer builder.mutex.Unlock()
	builder.formula = formula
}

// Result returns the conjunction of every condition added so far
func (builder *Builder) Result() bdd.Formula {
	builder.mutex.Lock()
	defer builder.mutex.Unlock()
	return builder.formula
}
