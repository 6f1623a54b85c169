// Package puzzles holds builtin puzzles whose values are statically typed enumerations
package puzzles

import "github.com/limaJavier/logicgrid/pkg/model"

const (
	PropertyNationality model.Property = iota
	PropertyColor
	PropertyPet
	PropertyDrink
	PropertySmoke
)

const Houses = 5

type Nationality int

const (
	English Nationality = iota
	Swede
	Dane
	Norwegian
	German
)

func (Nationality) Property() model.Property { return PropertyNationality }
func (value Nationality) Index() int         { return int(value) }

type Color int

const (
	Red Color = iota
	Green
	White
	Yellow
	Blue
)

func (Color) Property() model.Property { return PropertyColor }
func (value Color) Index() int         { return int(value) }

type Pet int

const (
	Dog Pet = iota
	Bird
	Cat
	Horse
	Zebra
)

func (Pet) Property() model.Property { return PropertyPet }
func (value Pet) Index() int         { return int(value) }

type Drink int

const (
	Tea Drink = iota
	Coffee
	Milk
	Beer
	Water
)

func (Drink) Property() model.Property { return PropertyDrink }
func (value Drink) Index() int         { return int(value) }

type Smoke int

const (
	PallMall Smoke = iota
	Dunhill
	Blend
	BlueMaster
	Prince
)

func (Smoke) Property() model.Property { return PropertySmoke }
func (value Smoke) Index() int         { return int(value) }

// EinsteinDomain returns the five houses and their five properties, labeled in enumeration order
func EinsteinDomain() model.Domain {
	return model.Domain{
		Objects: Houses,
		Properties: []model.PropertySpec{
			{Name: "nationality", Values: []string{"english", "swede", "dane", "norwegian", "german"}},
			{Name: "color", Values: []string{"red", "green", "white", "yellow", "blue"}},
			{Name: "pet", Values: []string{"dog", "bird", "cat", "horse", "zebra"}},
			{Name: "drink", Values: []string{"tea", "coffee", "milk", "beer", "water"}},
			{Name: "smoke", Values: []string{"pall-mall", "dunhill", "blend", "blue-master", "prince"}},
		},
	}
}

// Einstein returns the classic puzzle: five houses in a row, fifteen clues, one solution
func Einstein() model.Puzzle {
	exists := func(text string, values ...model.Value) model.Clue {
		return model.Clue{Kind: model.ClueExists, Text: text, Values: values}
	}
	fixed := func(text string, house model.Object, value model.Value) model.Clue {
		return model.Clue{Kind: model.ClueFixed, Text: text, Object: house, Values: []model.Value{value}}
	}
	nextTo := func(text string, first, second model.Value) model.Clue {
		return model.Clue{Kind: model.ClueAdjacent, Text: text, Values: []model.Value{first, second}}
	}

	return model.Puzzle{
		Name:     "einstein",
		Domain:   EinsteinDomain(),
		Topology: model.TopologySpec{Width: Houses, Height: 1},
		Clues: []model.Clue{
			exists("The Englishman lives in the red house", English, Red),
			exists("The Swede keeps dogs", Swede, Dog),
			exists("The Dane drinks tea", Dane, Tea),
			{
				Kind:   model.ClueNeighbor,
				Text:   "The green house is immediately left of the white house",
				Offset: model.Right,
				Values: []model.Value{Green, White},
			},
			exists("The green house's owner drinks coffee", Green, Coffee),
			exists("The Pall Mall smoker keeps birds", PallMall, Bird),
			exists("The owner of the yellow house smokes Dunhill", Yellow, Dunhill),
			fixed("The man in the center house drinks milk", 2, Milk),
			fixed("The Norwegian lives in the first house", 0, Norwegian),
			nextTo("The Blend smoker lives next to the cat owner", Blend, Cat),
			nextTo("The horse keeper lives next to the Dunhill smoker", Horse, Dunhill),
			exists("The Blue Master smoker drinks beer", BlueMaster, Beer),
			exists("The German smokes Prince", German, Prince),
			nextTo("The Norwegian lives next to the blue house", Norwegian, Blue),
			nextTo("The Blend smoker has a neighbor who drinks water", Blend, Water),
		},
	}
}
