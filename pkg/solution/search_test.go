package solution

import (
	"context"
	"testing"

	"github.com/limaJavier/logicgrid/pkg/model"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchMatchesCompiledFormula(t *testing.T) {
	for _, file := range []string{"einstein.yaml", "ring.json"} {
		t.Run(file, func(t *testing.T) {
			//** Arrange
			puzzle, err := model.PuzzleFromFile(testDirectory + file)
			require.NoError(t, err)
			compiled := compile(t, puzzle)
			formula, err := compiled.Compile(context.Background())
			require.NoError(t, err)
			enumerated, err := Enumerate(compiled.Engine(), puzzle.Domain, formula, 0)
			require.NoError(t, err)

			//** Act
			searched := Search(puzzle, 0)

			//** Assert
			require.Len(t, searched, len(enumerated))
			assert.Equal(t, compiled.Engine().SatCount(formula).Int64(), int64(len(searched)))
			for _, records := range searched {
				assert.True(t, Verify(records, puzzle))
			}
			if len(searched) == 1 {
				if diff := cmp.Diff(enumerated[0], searched[0]); diff != "" {
					t.Errorf("Search() mismatch (-compiled +searched):\n%s", diff)
				}
			}
		})
	}
}

func TestSearchLimit(t *testing.T) {
	puzzle, err := model.PuzzleFromFile(testDirectory + "ring.json")
	require.NoError(t, err)

	assert.Len(t, Search(puzzle, 1), 1)
	assert.Len(t, Search(puzzle, 3), 3)
}

func TestSearchUnsatisfiable(t *testing.T) {
	puzzle, records := threeHouses()
	// Red and blue can never be held by the same house
	puzzle.Clues = append(puzzle.Clues, model.Clue{
		Kind:   model.ClueExists,
		Values: []model.Value{records[0].Values[0], records[2].Values[0]},
	})

	assert.Empty(t, Search(puzzle, 0))
}

func TestSearchWithoutClues(t *testing.T) {
	puzzle, _ := threeHouses()
	puzzle.Clues = nil

	// Two independent permutations of three values
	assert.Len(t, Search(puzzle, 0), 6*6)

	puzzle.Repeats = true
	assert.Len(t, Search(puzzle, 0), 9*9*9)
}
