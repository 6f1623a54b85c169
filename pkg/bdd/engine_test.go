package bdd

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, varnum int) *Engine {
	engine, err := NewEngine(varnum)
	require.NoError(t, err)
	return engine
}

func TestNewEngineRejectsEmptyUniverse(t *testing.T) {
	_, err := NewEngine(0)
	assert.Error(t, err)
}

func TestIdentityElements(t *testing.T) {
	//** Arrange
	engine := newTestEngine(t, 3)
	x := engine.Variables()[0]

	//** Assert
	assert.True(t, engine.Equal(engine.And(), engine.True()))
	assert.True(t, engine.Equal(engine.Or(), engine.False()))
	assert.True(t, engine.Equal(engine.And(x, engine.True()), x))
	assert.True(t, engine.Equal(engine.Or(x, engine.False()), x))
	assert.True(t, engine.IsFalse(engine.And(x, engine.Not(x))))
}

func TestXor(t *testing.T) {
	engine := newTestEngine(t, 2)
	vars := engine.Variables()
	a, b := vars[0], vars[1]

	xor := engine.Xor(a, b)

	assert.True(t, engine.Equal(xor, engine.Or(engine.And(a, engine.Not(b)), engine.And(engine.Not(a), b))))
	assert.True(t, engine.IsFalse(engine.And(xor, a, b)))
	assert.True(t, engine.IsFalse(engine.And(xor, engine.Not(a), engine.Not(b))))
	assert.Equal(t, big.NewInt(2), engine.SatCount(xor))
}

func TestSatCountCoversWholeUniverse(t *testing.T) {
	engine := newTestEngine(t, 5)
	x := engine.Variables()[2]

	assert.Equal(t, big.NewInt(16), engine.SatCount(x))
	assert.Equal(t, big.NewInt(32), engine.SatCount(engine.True()))
	assert.Equal(t, big.NewInt(0), engine.SatCount(engine.False()))
}

func TestOneSat(t *testing.T) {
	engine := newTestEngine(t, 3)
	vars := engine.Variables()

	t.Run("Satisfiable formula", func(t *testing.T) {
		formula := engine.And(vars[0], engine.Not(vars[2]))

		assignment, ok := engine.OneSat(formula)

		require.True(t, ok)
		require.Len(t, assignment, 3)
		assert.True(t, assignment[0])
		assert.False(t, assignment[2])
	})

	t.Run("Unsatisfiable formula", func(t *testing.T) {
		assignment, ok := engine.OneSat(engine.False())

		assert.False(t, ok)
		assert.Nil(t, assignment)
	})
}

func TestAllSat(t *testing.T) {
	engine := newTestEngine(t, 3)
	x := engine.Variables()[0]

	all := engine.AllSat(x, 0)
	limited := engine.AllSat(x, 3)

	assert.Len(t, all, 4)
	assert.Len(t, limited, 3)
	seen := make(map[[3]bool]bool)
	for _, assignment := range all {
		assert.True(t, assignment[0])
		key := [3]bool{assignment[0], assignment[1], assignment[2]}
		assert.False(t, seen[key], "duplicated assignment %v", assignment)
		seen[key] = true
	}
	assert.Empty(t, engine.AllSat(engine.False(), 0))
}

func TestAllSatWithManyDontCares(t *testing.T) {
	for _, varnum := range []int{64, 70} {
		//** Arrange
		engine := newTestEngine(t, varnum)
		x := engine.Variables()[1]

		//** Act
		unrestricted := engine.AllSat(engine.True(), 3)
		restricted := engine.AllSat(x, 2)

		//** Assert
		require.Len(t, unrestricted, 3)
		assert.Len(t, unrestricted[0], varnum)
		assert.Equal(t, []bool{false, false, true}, []bool{unrestricted[0][varnum-1], unrestricted[1][varnum-2], unrestricted[1][varnum-1]})
		assert.True(t, unrestricted[2][varnum-2])
		require.Len(t, restricted, 2)
		assert.True(t, restricted[0][1])
		assert.True(t, restricted[1][1])
		assert.True(t, restricted[1][varnum-1])
	}
}

func TestCubesStopsOnError(t *testing.T) {
	//** Arrange
	engine := newTestEngine(t, 4)
	vars := engine.Variables()
	formula := engine.Or(engine.And(vars[0], vars[1]), engine.And(engine.Not(vars[0]), vars[2]), vars[3])
	stop := errors.New("stop")
	calls := 0

	//** Act
	err := engine.Cubes(formula, func(cube []int) error {
		calls++
		return stop
	})

	//** Assert
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestCubes(t *testing.T) {
	engine := newTestEngine(t, 3)
	vars := engine.Variables()
	formula := engine.Or(vars[0], vars[2])

	var cubes [][]int
	err := engine.Cubes(formula, func(cube []int) error {
		cubes = append(cubes, append([]int(nil), cube...))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, -1, 1}, {1, -1, -1}}, cubes)
}

func TestNodes(t *testing.T) {
	engine := newTestEngine(t, 3)
	vars := engine.Variables()
	formula := engine.And(vars[0], engine.Not(vars[2]))

	nodes, err := engine.Nodes(formula)
	require.NoError(t, err)
	constant, err := engine.Nodes(engine.True())
	require.NoError(t, err)

	require.Len(t, nodes, 2)
	assert.Empty(t, constant)
	assert.Equal(t, TrueID, engine.ID(engine.True()))
	assert.Equal(t, FalseID, engine.ID(engine.False()))
	root := nodes[0]
	if root.ID != engine.ID(formula) {
		root = nodes[1]
	}
	assert.Equal(t, 0, root.Variable)
	assert.Equal(t, FalseID, root.Low)
}
