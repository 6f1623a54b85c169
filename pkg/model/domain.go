package model

import (
	"fmt"
	"math/bits"

	"github.com/samber/lo"
)

// Object is the zero-based index of one of the entities being configured (e.g. a house)
type Object int

// Property is the zero-based index of a characteristic every object has exactly one value of
type Property int

// Value is implemented by every value enumeration. Each enumeration belongs to exactly one
// property, so the property of a value is known from its type.
type Value interface {
	Property() Property
	Index() int
}

// Val is the dynamic Value used when the domain is only known at run time
type Val struct {
	Prop Property
	Idx  int
}

func (val Val) Property() Property { return val.Prop }
func (val Val) Index() int         { return val.Idx }

// ValOf converts any Value into its dynamic form
func ValOf(value Value) Val {
	return Val{Prop: value.Property(), Idx: value.Index()}
}

type PropertySpec struct {
	Name   string
	Values []string
}

// Domain fixes the puzzle's cardinalities and labels
type Domain struct {
	Objects    int
	Properties []PropertySpec
}

// Bits returns the number of bits needed to encode values indices 0..values-1 (at least 1)
func Bits(values int) int {
	if values <= 2 {
		return 1
	}
	return bits.Len(uint(values - 1))
}

func (domain Domain) ObjectCount() int   { return domain.Objects }
func (domain Domain) PropertyCount() int { return len(domain.Properties) }

// ValueCount returns V, the cardinality shared by every property's value domain
func (domain Domain) ValueCount() int {
	if len(domain.Properties) == 0 {
		return 0
	}
	return len(domain.Properties[0].Values)
}

func (domain Domain) Bits() int {
	return Bits(domain.ValueCount())
}

// Variables returns the size of the variable pool: objects * properties * bits
func (domain Domain) Variables() int {
	return domain.Objects * len(domain.Properties) * domain.Bits()
}

func (domain Domain) Validate() error {
	if domain.Objects <= 0 {
		return fmt.Errorf("object count must be positive: %v", domain.Objects)
	} else if len(domain.Properties) == 0 {
		return fmt.Errorf("at least one property must be declared")
	}

	values := domain.ValueCount()
	if values == 0 {
		return fmt.Errorf("property \"%v\" has no values", domain.Properties[0].Name)
	}

	for _, property := range domain.Properties {
		if len(property.Values) != values {
			return fmt.Errorf("property \"%v\" has %v values, expected %v", property.Name, len(property.Values), values)
		}
		if duplicates := lo.FindDuplicates(property.Values); len(duplicates) > 0 {
			return fmt.Errorf("property \"%v\" has duplicated values: %v", property.Name, duplicates)
		}
	}

	if duplicates := lo.FindDuplicates(lo.Map(domain.Properties, func(property PropertySpec, _ int) string {
		return property.Name
	})); len(duplicates) > 0 {
		return fmt.Errorf("duplicated properties: %v", duplicates)
	}

	return nil
}

// Contains reports whether value belongs to the domain
func (domain Domain) Contains(value Value) bool {
	property := int(value.Property())
	return property >= 0 && property < len(domain.Properties) &&
		value.Index() >= 0 && value.Index() < len(domain.Properties[property].Values)
}

// Label returns the human-readable name of a value
func (domain Domain) Label(value Value) string {
	if !domain.Contains(value) {
		return fmt.Sprintf("<%v:%v>", value.Property(), value.Index())
	}
	return domain.Properties[value.Property()].Values[value.Index()]
}

// Lookup resolves a property and value by name
func (domain Domain) Lookup(property, value string) (Val, error) {
	_, propertyIndex, ok := lo.FindIndexOf(domain.Properties, func(spec PropertySpec) bool { return spec.Name == property })
	if !ok {
		return Val{}, fmt.Errorf("unknown property \"%v\"", property)
	}

	valueIndex := lo.IndexOf(domain.Properties[propertyIndex].Values, value)
	if valueIndex < 0 {
		return Val{}, fmt.Errorf("unknown value \"%v\" for property \"%v\"", value, property)
	}

	return Val{Prop: Property(propertyIndex), Idx: valueIndex}, nil
}
