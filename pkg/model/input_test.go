package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDirectory = "../../test/puzzles/"

func TestPuzzleFromYaml(t *testing.T) {
	//** Act
	puzzle, err := PuzzleFromFile(testDirectory + "einstein.yaml")

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, "einstein", puzzle.Name)
	assert.False(t, puzzle.Repeats)
	assert.Equal(t, 5, puzzle.Domain.Objects)
	assert.Equal(t, 5, puzzle.Domain.PropertyCount())
	assert.Equal(t, 3, puzzle.Domain.Bits())
	require.Len(t, puzzle.Clues, 15)

	neighbor := puzzle.Clues[3]
	assert.Equal(t, ClueNeighbor, neighbor.Kind)
	assert.Equal(t, Right, neighbor.Offset)
	assert.Equal(t, []Value{Val{Prop: 1, Idx: 1}, Val{Prop: 1, Idx: 2}}, neighbor.Values)

	fixed := puzzle.Clues[8]
	assert.Equal(t, ClueFixed, fixed.Kind)
	assert.Equal(t, Object(0), fixed.Object)
	assert.Equal(t, "The Norwegian lives in the first house", fixed.Text)
}

func TestPuzzleFromJson(t *testing.T) {
	puzzle, err := PuzzleFromFile(testDirectory + "ring.json")

	require.NoError(t, err)
	assert.True(t, puzzle.Repeats)
	assert.Equal(t, TopologySpec{Width: 4, Height: 1, WrapX: true}, puzzle.Topology)
	require.Len(t, puzzle.Clues, 3)
	assert.Equal(t, Object(3), puzzle.Clues[0].Object)
	assert.Equal(t, Offset{DX: 1}, puzzle.Clues[1].Offset)
	assert.Equal(t, []Offset{Right, Left}, puzzle.Clues[2].Offsets)
}

func TestProcessRawPuzzleErrors(t *testing.T) {
	base := func() RawPuzzle {
		return RawPuzzle{
			Objects: 3,
			Properties: []RawProperty{
				{Name: "color", Values: []string{"red", "green", "blue"}},
			},
		}
	}

	scenarios := map[string]func(*RawPuzzle){
		"unknown value": func(raw *RawPuzzle) {
			raw.Clues = []RawClue{{Kind: "exists", Values: []string{"color=pink"}}}
		},
		"malformed reference": func(raw *RawPuzzle) {
			raw.Clues = []RawClue{{Kind: "exists", Values: []string{"red"}}}
		},
		"unknown kind": func(raw *RawPuzzle) {
			raw.Clues = []RawClue{{Kind: "between", Values: []string{"color=red"}}}
		},
		"fixed object out of range": func(raw *RawPuzzle) {
			raw.Clues = []RawClue{{Kind: "fixed", Object: 3, Values: []string{"color=red"}}}
		},
		"zero offset": func(raw *RawPuzzle) {
			raw.Clues = []RawClue{{Kind: "neighbor", Offset: []int{0, 0}, Values: []string{"color=red", "color=blue"}}}
		},
		"three coordinates": func(raw *RawPuzzle) {
			raw.Clues = []RawClue{{Kind: "neighbor", Offset: []int{1, 0, 0}, Values: []string{"color=red", "color=blue"}}}
		},
		"topology mismatch": func(raw *RawPuzzle) {
			raw.Topology = RawTopology{Width: 2, Height: 2}
		},
	}

	for name, mutate := range scenarios {
		t.Run(name, func(t *testing.T) {
			raw := base()
			mutate(&raw)

			_, err := ProcessRawPuzzle(raw)

			assert.Error(t, err)
		})
	}
}

func TestLayoutDefaultsToLine(t *testing.T) {
	puzzle := Puzzle{Domain: colorsAndShapes()}

	assert.Equal(t, TopologySpec{Width: 3, Height: 1}, puzzle.Layout())
	assert.NoError(t, puzzle.Validate())
}
