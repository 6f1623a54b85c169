package solution

import (
	"github.com/limaJavier/logicgrid/pkg/compiler"
	"github.com/limaJavier/logicgrid/pkg/model"

	"github.com/samber/lo"
)

// Verify re-checks decoded records against the puzzle directly, without any formula
func Verify(records []Record, puzzle model.Puzzle) bool {
	domain := puzzle.Domain
	if len(records) != domain.ObjectCount() {
		return false
	}

	//** Check shape and value ranges
	for object, record := range records {
		if record.Object != model.Object(object) || len(record.Values) != domain.PropertyCount() {
			return false
		}
		for property, value := range record.Values {
			if value.Prop != model.Property(property) || !domain.Contains(value) {
				return false
			}
		}
	}

	//** Check that no two objects share a value
	if !puzzle.Repeats {
		for property := range domain.PropertyCount() {
			values := lo.Map(records, func(record Record, _ int) int { return record.Values[property].Idx })
			if len(lo.Uniq(values)) != len(values) {
				return false
			}
		}
	}

	//** Check every clue
	topology := compiler.NewTopology(puzzle.Layout())
	return lo.EveryBy(puzzle.Clues, func(clue model.Clue) bool {
		return holds(clue, records, topology)
	})
}

func holds(clue model.Clue, records []Record, topology compiler.Topology) bool {
	switch clue.Kind {
	case model.ClueExists:
		return lo.SomeBy(records, func(record Record) bool {
			return lo.EveryBy(clue.Values, record.Holds)
		})
	case model.ClueFixed:
		return records[clue.Object].Holds(clue.Values[0])
	case model.ClueNeighbor:
		return neighbors(records, topology, clue.Offset, clue.Values[0], clue.Values[1])
	case model.ClueAdjacent:
		offsets := clue.Offsets
		if len(offsets) == 0 {
			offsets = topology.Directions()
		}
		return lo.SomeBy(offsets, func(offset model.Offset) bool {
			return neighbors(records, topology, offset, clue.Values[0], clue.Values[1])
		})
	default:
		return false
	}
}

// neighbors reports whether some object holding first has, at offset, a neighbor holding second
func neighbors(records []Record, topology compiler.Topology, offset model.Offset, first, second model.Value) bool {
	return lo.SomeBy(records, func(record Record) bool {
		if !record.Holds(first) {
			return false
		}
		neighbor, ok := topology.Neighbor(record.Object, offset)
		return ok && records[neighbor].Holds(second)
	})
}
