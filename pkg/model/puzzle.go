package model

import (
	"fmt"
)

type ClueKind string

const (
	// Some object holds all the clue's values at once
	ClueExists ClueKind = "exists"
	// The clue's object holds the clue's value
	ClueFixed ClueKind = "fixed"
	// The object holding the first value has, at the clue's offset, a neighbor holding the second one
	ClueNeighbor ClueKind = "neighbor"
	// Like ClueNeighbor, for any of several offsets (all axis directions by default)
	ClueAdjacent ClueKind = "adjacent"
)

// Offset is a coordinate displacement on the puzzle's topology
type Offset struct {
	DX, DY int
}

var (
	Left  = Offset{DX: -1}
	Right = Offset{DX: 1}
	Up    = Offset{DY: -1}
	Down  = Offset{DY: 1}
)

type Clue struct {
	Kind    ClueKind
	Object  Object
	Values  []Value
	Offset  Offset
	Offsets []Offset
	Text    string
}

// TopologySpec arranges objects on a Width x Height grid (row-major); a line is a grid of height 1.
// Each axis may independently wrap around.
type TopologySpec struct {
	Width, Height int
	WrapX, WrapY  bool
}

type Puzzle struct {
	Name     string
	// Repeats allows two objects to share a value of the same property
	Repeats  bool
	Domain   Domain
	Topology TopologySpec
	Clues    []Clue
}

// Layout returns the puzzle's topology, defaulting to a line of all objects
func (puzzle Puzzle) Layout() TopologySpec {
	topology := puzzle.Topology
	if topology.Width == 0 && topology.Height == 0 {
		topology.Width, topology.Height = puzzle.Domain.Objects, 1
	} else if topology.Height == 0 {
		topology.Height = 1
	}
	return topology
}

func (puzzle Puzzle) Validate() error {
	if err := puzzle.Domain.Validate(); err != nil {
		return fmt.Errorf("invalid domain: %w", err)
	}

	topology := puzzle.Layout()
	if topology.Width <= 0 || topology.Height <= 0 || topology.Width*topology.Height != puzzle.Domain.Objects {
		return fmt.Errorf("topology %vx%v does not arrange %v objects", topology.Width, topology.Height, puzzle.Domain.Objects)
	}

	for i, clue := range puzzle.Clues {
		if err := puzzle.validateClue(clue); err != nil {
			return fmt.Errorf("invalid clue #%v (%v): %w", i+1, clue.Kind, err)
		}
	}
	return nil
}

func (puzzle Puzzle) validateClue(clue Clue) error {
	for _, value := range clue.Values {
		if !puzzle.Domain.Contains(value) {
			return fmt.Errorf("value %v:%v is not part of the domain", value.Property(), value.Index())
		}
	}

	switch clue.Kind {
	case ClueExists:
		if len(clue.Values) == 0 {
			return fmt.Errorf("at least one value is required")
		}
	case ClueFixed:
		if len(clue.Values) != 1 {
			return fmt.Errorf("exactly one value is required, got %v", len(clue.Values))
		} else if clue.Object < 0 || int(clue.Object) >= puzzle.Domain.Objects {
			return fmt.Errorf("object %v is out of range", clue.Object)
		}
	case ClueNeighbor:
		if len(clue.Values) != 2 {
			return fmt.Errorf("exactly two values are required, got %v", len(clue.Values))
		} else if clue.Offset == (Offset{}) {
			return fmt.Errorf("offset must not be zero")
		}
	case ClueAdjacent:
		if len(clue.Values) != 2 {
			return fmt.Errorf("exactly two values are required, got %v", len(clue.Values))
		}
		for _, offset := range clue.Offsets {
			if offset == (Offset{}) {
				return fmt.Errorf("offsets must not be zero")
			}
		}
	default:
		return fmt.Errorf("unknown clue kind")
	}
	return nil
}
