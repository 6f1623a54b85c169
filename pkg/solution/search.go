package solution

import (
	"github.com/limaJavier/logicgrid/pkg/compiler"
	"github.com/limaJavier/logicgrid/pkg/model"
)

const unassigned = -1

// Search enumerates up to limit solutions of puzzle by backtracking over the slots, without
// compiling any formula. A non-positive limit means all.
//
// Slots are assigned property by property. After every assignment, each clue must still be
// satisfiable by some completion of the partial assignment; otherwise the branch is pruned.
func Search(puzzle model.Puzzle, limit int) [][]Record {
	state := searchState{
		puzzle:   puzzle,
		topology: compiler.NewTopology(puzzle.Layout()),
		limit:    limit,
		codes:    make([][]int, puzzle.Domain.ObjectCount()),
	}
	for object := range state.codes {
		state.codes[object] = make([]int, puzzle.Domain.PropertyCount())
		for property := range state.codes[object] {
			state.codes[object][property] = unassigned
		}
	}

	state.search(0)
	return state.solutions
}

type searchState struct {
	puzzle    model.Puzzle
	topology  compiler.Topology
	limit     int
	codes     [][]int
	solutions [][]Record
}

func (state *searchState) search(slot int) bool {
	domain := state.puzzle.Domain
	if slot >= domain.ObjectCount()*domain.PropertyCount() {
		state.solutions = append(state.solutions, state.records())
		return state.limit > 0 && len(state.solutions) >= state.limit
	}

	property, object := slot/domain.ObjectCount(), slot%domain.ObjectCount()
	for code := range domain.ValueCount() {
		if !state.puzzle.Repeats && state.taken(model.Val{Prop: model.Property(property), Idx: code}) {
			continue
		}

		state.codes[object][property] = code
		if state.consistent() && state.search(slot+1) {
			return true
		}
	}
	state.codes[object][property] = unassigned
	return false
}

func (state *searchState) records() []Record {
	domain := state.puzzle.Domain
	records := make([]Record, domain.ObjectCount())
	for object, codes := range state.codes {
		records[object] = Record{
			Object: model.Object(object),
			Values: make([]model.Val, len(codes)),
			Labels: make([]string, len(codes)),
		}
		for property, code := range codes {
			records[object].Values[property] = model.Val{Prop: model.Property(property), Idx: code}
			records[object].Labels[property] = domain.Properties[property].Values[code]
		}
	}
	return records
}

// taken reports whether some object already holds value
func (state *searchState) taken(value model.Value) bool {
	for _, codes := range state.codes {
		if codes[value.Property()] == value.Index() {
			return true
		}
	}
	return false
}

// possibly reports whether object holds value or may still be assigned it
func (state *searchState) possibly(object model.Object, value model.Value) bool {
	code := state.codes[object][value.Property()]
	if code != unassigned {
		return code == value.Index()
	}
	return state.puzzle.Repeats || !state.taken(value)
}

func (state *searchState) consistent() bool {
	for _, clue := range state.puzzle.Clues {
		if !state.satisfiable(clue) {
			return false
		}
	}
	return true
}

func (state *searchState) satisfiable(clue model.Clue) bool {
	switch clue.Kind {
	case model.ClueExists:
		for object := range state.codes {
			if state.possiblyAll(model.Object(object), clue.Values) {
				return true
			}
		}
		return false
	case model.ClueFixed:
		return state.possibly(clue.Object, clue.Values[0])
	case model.ClueNeighbor:
		return state.neighbors(clue.Offset, clue.Values[0], clue.Values[1])
	case model.ClueAdjacent:
		offsets := clue.Offsets
		if len(offsets) == 0 {
			offsets = state.topology.Directions()
		}
		for _, offset := range offsets {
			if state.neighbors(offset, clue.Values[0], clue.Values[1]) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (state *searchState) possiblyAll(object model.Object, values []model.Value) bool {
	for _, value := range values {
		if !state.possibly(object, value) {
			return false
		}
	}
	// Two values of the same property are never held together
	for i := range values {
		for j := i + 1; j < len(values); j++ {
			if values[i].Property() == values[j].Property() && values[i].Index() != values[j].Index() {
				return false
			}
		}
	}
	return true
}

func (state *searchState) neighbors(offset model.Offset, first, second model.Value) bool {
	for object := range state.codes {
		neighbor, ok := state.topology.Neighbor(model.Object(object), offset)
		if ok && state.possibly(model.Object(object), first) && state.possibly(neighbor, second) {
			return true
		}
	}
	return false
}
