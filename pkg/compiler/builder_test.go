package compiler

import (
	"sync"
	"testing"

	"github.com/limaJavier/logicgrid/pkg/bdd"
	"github.com/limaJavier/logicgrid/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderStartsTrue(t *testing.T) {
	engine, err := bdd.NewEngine(2)
	require.NoError(t, err)

	builder := NewBuilder(engine)

	assert.True(t, engine.Equal(engine.True(), builder.Result()))
}

func TestBuilderConcurrentMatchesSequential(t *testing.T) {
	//** Arrange
	domain := uniformDomain(6, 2, 6)
	encoder := newTestEncoder(t, domain)
	engine := encoder.Engine()

	conditions := make([]bdd.Formula, 0)
	for object := range domain.Objects {
		conditions = append(conditions, engine.Not(encoder.ValueFormula(model.Object(object), model.Val{Prop: 1, Idx: object})))
	}
	conditions = append(conditions, Exists(model.Val{Prop: 0, Idx: 1}, model.Val{Prop: 1, Idx: 2}).Formula(encoder))
	conditions = append(conditions, UpperBound().Formula(encoder))

	sequential := NewBuilder(engine)
	concurrent := NewBuilder(engine)

	//** Act
	for _, condition := range conditions {
		sequential.AddCondition(condition)
	}

	var wait sync.WaitGroup
	for _, condition := range conditions {
		wait.Add(1)
		go func() {
			defer wait.Done()
			concurrent.AddConditionConcurrent(condition)
		}()
	}
	wait.Wait()

	//** Assert
	assert.True(t, engine.Equal(sequential.Result(), concurrent.Result()))
}

func TestBuilderPartialResult(t *testing.T) {
	engine, err := bdd.NewEngine(3)
	require.NoError(t, err)
	variables := engine.Variables()
	builder := NewBuilder(engine)

	builder.AddCondition(variables[0])
	partial := builder.Result()
	builder.AddCondition(variables[1])

	assert.True(t, engine.Equal(variables[0], partial))
	assert.True(t, engine.Equal(engine.And(variables[0], variables[1]), builder.Result()))
}

func TestBuilderSetFormula(t *testing.T) {
	engine, err := bdd.NewEngine(2)
	require.NoError(t, err)
	variables := engine.Variables()
	builder := NewBuilder(engine)
	builder.AddCondition(engine.False())

	builder.SetFormula(variables[1])
	builder.AddCondition(variables[0])

	assert.True(t, engine.Equal(engine.And(variables[0], variables[1]), builder.Result()))
}
