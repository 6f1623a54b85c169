package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func colorsAndShapes() Domain {
	return Domain{
		Objects: 3,
		Properties: []PropertySpec{
			{Name: "color", Values: []string{"red", "green", "blue"}},
			{Name: "shape", Values: []string{"circle", "square", "star"}},
		},
	}
}

func TestBits(t *testing.T) {
	scenarios := map[int]int{1: 1, 2: 1, 3: 2, 4: 2, 5: 3, 8: 3, 9: 4, 16: 4, 17: 5}
	for values, expected := range scenarios {
		assert.Equal(t, expected, Bits(values), "values: %v", values)
	}
}

func TestDomainCardinalities(t *testing.T) {
	domain := colorsAndShapes()

	assert.NoError(t, domain.Validate())
	assert.Equal(t, 3, domain.ObjectCount())
	assert.Equal(t, 2, domain.PropertyCount())
	assert.Equal(t, 3, domain.ValueCount())
	assert.Equal(t, 2, domain.Bits())
	assert.Equal(t, 12, domain.Variables())
}

func TestDomainValidate(t *testing.T) {
	t.Run("Mismatched cardinalities", func(t *testing.T) {
		domain := colorsAndShapes()
		domain.Properties[1].Values = domain.Properties[1].Values[:2]
		assert.Error(t, domain.Validate())
	})

	t.Run("Duplicated values", func(t *testing.T) {
		domain := colorsAndShapes()
		domain.Properties[0].Values[2] = "red"
		assert.Error(t, domain.Validate())
	})

	t.Run("Duplicated properties", func(t *testing.T) {
		domain := colorsAndShapes()
		domain.Properties[1].Name = "color"
		assert.Error(t, domain.Validate())
	})

	t.Run("No objects", func(t *testing.T) {
		domain := colorsAndShapes()
		domain.Objects = 0
		assert.Error(t, domain.Validate())
	})
}

func TestDomainLookup(t *testing.T) {
	domain := colorsAndShapes()

	value, err := domain.Lookup("shape", "star")
	require.NoError(t, err)
	assert.Equal(t, Val{Prop: 1, Idx: 2}, value)
	assert.Equal(t, "star", domain.Label(value))
	assert.True(t, domain.Contains(value))

	_, err = domain.Lookup("size", "big")
	assert.Error(t, err)
	_, err = domain.Lookup("shape", "triangle")
	assert.Error(t, err)
	assert.False(t, domain.Contains(Val{Prop: 0, Idx: 3}))
}
