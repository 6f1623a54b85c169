package solution

import (
	"testing"

	"github.com/limaJavier/logicgrid/pkg/model"

	"github.com/stretchr/testify/assert"
)

func threeHouses() (model.Puzzle, []Record) {
	domain := model.Domain{Objects: 3, Properties: []model.PropertySpec{
		{Name: "color", Values: []string{"red", "green", "blue"}},
		{Name: "pet", Values: []string{"dog", "cat", "fish"}},
	}}
	red, green, blue := model.Val{Prop: 0, Idx: 0}, model.Val{Prop: 0, Idx: 1}, model.Val{Prop: 0, Idx: 2}
	dog, cat := model.Val{Prop: 1, Idx: 0}, model.Val{Prop: 1, Idx: 1}

	puzzle := model.Puzzle{
		Domain: domain,
		Clues: []model.Clue{
			{Kind: model.ClueExists, Values: []model.Value{red, dog}},
			{Kind: model.ClueFixed, Object: 2, Values: []model.Value{blue}},
			{Kind: model.ClueNeighbor, Offset: model.Right, Values: []model.Value{red, green}},
			{Kind: model.ClueAdjacent, Values: []model.Value{cat, blue}},
		},
	}

	// red dog, green cat, blue fish
	records := []Record{
		{Object: 0, Values: []model.Val{red, dog}},
		{Object: 1, Values: []model.Val{green, cat}},
		{Object: 2, Values: []model.Val{blue, {Prop: 1, Idx: 2}}},
	}
	return puzzle, records
}

func TestVerify(t *testing.T) {
	puzzle, records := threeHouses()

	assert.True(t, Verify(records, puzzle))
}

func TestVerifyRejects(t *testing.T) {
	t.Run("Broken clue", func(t *testing.T) {
		puzzle, records := threeHouses()
		// Swap pets of the first two houses: no red dog anymore
		records[0].Values[1], records[1].Values[1] = records[1].Values[1], records[0].Values[1]

		assert.False(t, Verify(records, puzzle))
	})

	t.Run("Shared value", func(t *testing.T) {
		puzzle, records := threeHouses()
		puzzle.Clues = nil
		records[1].Values[1] = records[0].Values[1]

		assert.False(t, Verify(records, puzzle))

		puzzle.Repeats = true
		assert.True(t, Verify(records, puzzle))
	})

	t.Run("Value out of range", func(t *testing.T) {
		puzzle, records := threeHouses()
		records[2].Values[1] = model.Val{Prop: 1, Idx: 3}

		assert.False(t, Verify(records, puzzle))
	})

	t.Run("Missing record", func(t *testing.T) {
		puzzle, records := threeHouses()

		assert.False(t, Verify(records[:2], puzzle))
	})

	t.Run("Neighbor without wraparound", func(t *testing.T) {
		puzzle, records := threeHouses()
		// The blue house is left of the red one only on a wrapped line
		puzzle.Clues = []model.Clue{{Kind: model.ClueNeighbor, Offset: model.Left, Values: []model.Value{records[0].Values[0], records[2].Values[0]}}}

		assert.False(t, Verify(records, puzzle))

		puzzle.Topology = model.TopologySpec{Width: 3, Height: 1, WrapX: true}
		assert.True(t, Verify(records, puzzle))
	})
}
