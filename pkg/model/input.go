package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type RawProperty struct {
	Name   string
	Values []string
}

type RawTopology struct {
	Width  int
	Height int
	WrapX  bool
	WrapY  bool
}

type RawClue struct {
	Kind    string
	Text    string
	Object  int
	Values  []string // "property=value"
	Offset  []int    // [dx] or [dx, dy]
	Offsets [][]int
}

type RawPuzzle struct {
	Name       string
	Objects    int
	Repeats    bool
	Properties []RawProperty
	Topology   RawTopology
	Clues      []RawClue
}

// PuzzleFromFile reads a puzzle description from a JSON or YAML file (chosen by extension)
func PuzzleFromFile(file string) (Puzzle, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Puzzle{}, fmt.Errorf("cannot read puzzle file: %w", err)
	}

	var input map[string]any
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &input)
	default:
		err = json.Unmarshal(bytes, &input)
	}
	if err != nil {
		return Puzzle{}, fmt.Errorf("cannot parse puzzle file: %w", err)
	}

	var rawPuzzle RawPuzzle
	if err := mapstructure.Decode(input, &rawPuzzle); err != nil {
		return Puzzle{}, fmt.Errorf("cannot decode puzzle: %w", err)
	}
	return ProcessRawPuzzle(rawPuzzle)
}

func ProcessRawPuzzle(rawPuzzle RawPuzzle) (Puzzle, error) {
	puzzle := Puzzle{
		Name:    rawPuzzle.Name,
		Repeats: rawPuzzle.Repeats,
		Domain: Domain{
			Objects: rawPuzzle.Objects,
			Properties: lo.Map(rawPuzzle.Properties, func(property RawProperty, _ int) PropertySpec {
				return PropertySpec(property)
			}),
		},
		Topology: TopologySpec(rawPuzzle.Topology),
	}

	if err := puzzle.Domain.Validate(); err != nil {
		return Puzzle{}, fmt.Errorf("invalid domain: %w", err)
	}

	for i, rawClue := range rawPuzzle.Clues {
		clue, err := processRawClue(puzzle.Domain, rawClue)
		if err != nil {
			return Puzzle{}, fmt.Errorf("invalid clue #%v: %w", i+1, err)
		}
		puzzle.Clues = append(puzzle.Clues, clue)
	}

	if err := puzzle.Validate(); err != nil {
		return Puzzle{}, err
	}
	return puzzle, nil
}

func processRawClue(domain Domain, rawClue RawClue) (Clue, error) {
	clue := Clue{
		Kind:   ClueKind(strings.ToLower(rawClue.Kind)),
		Object: Object(rawClue.Object),
		Text:   rawClue.Text,
	}

	for _, reference := range rawClue.Values {
		property, value, ok := strings.Cut(reference, "=")
		if !ok {
			return Clue{}, fmt.Errorf("value reference \"%v\" must have the form property=value", reference)
		}
		val, err := domain.Lookup(strings.TrimSpace(property), strings.TrimSpace(value))
		if err != nil {
			return Clue{}, err
		}
		clue.Values = append(clue.Values, val)
	}

	if rawClue.Offset != nil {
		offset, err := parseOffset(rawClue.Offset)
		if err != nil {
			return Clue{}, err
		}
		clue.Offset = offset
	}

	for _, rawOffset := range rawClue.Offsets {
		offset, err := parseOffset(rawOffset)
		if err != nil {
			return Clue{}, err
		}
		clue.Offsets = append(clue.Offsets, offset)
	}

	return clue, nil
}

func parseOffset(rawOffset []int) (Offset, error) {
	switch len(rawOffset) {
	case 1:
		return Offset{DX: rawOffset[0]}, nil
	case 2:
		return Offset{DX: rawOffset[0], DY: rawOffset[1]}, nil
	default:
		return Offset{}, fmt.Errorf("offset must have one or two coordinates: %v", rawOffset)
	}
}
