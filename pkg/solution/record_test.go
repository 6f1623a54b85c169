package solution

import (
	"errors"
	"testing"

	"github.com/limaJavier/logicgrid/pkg/model"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func colorsAndShapes() model.Domain {
	return model.Domain{
		Objects: 2,
		Properties: []model.PropertySpec{
			{Name: "color", Values: []string{"red", "green", "blue"}},
			{Name: "shape", Values: []string{"circle", "square", "star"}},
		},
	}
}

func TestDecode(t *testing.T) {
	//** Arrange
	domain := colorsAndShapes()
	// blue square, red star
	assignment := []bool{
		true, false,
		false, true,
		false, false,
		true, false,
	}

	//** Act
	records, err := Decode(domain, assignment)

	//** Assert
	require.NoError(t, err)
	expected := []Record{
		{Object: 0, Values: []model.Val{{Prop: 0, Idx: 2}, {Prop: 1, Idx: 1}}, Labels: []string{"blue", "square"}},
		{Object: 1, Values: []model.Val{{Prop: 0, Idx: 0}, {Prop: 1, Idx: 2}}, Labels: []string{"red", "star"}},
	}
	if diff := cmp.Diff(expected, records); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, records[1].Holds(model.Val{Prop: 1, Idx: 2}))
	assert.False(t, records[1].Holds(model.Val{Prop: 1, Idx: 0}))
	assert.Equal(t, model.Val{Prop: 0, Idx: 2}, records[0].Value(0))
}

func TestDecodeLengthMismatch(t *testing.T) {
	_, err := Decode(colorsAndShapes(), make([]bool, 7))

	var decodeError *DecodeError
	require.True(t, errors.As(err, &decodeError))
	assert.ErrorIs(t, err, ErrLengthMismatch)
	assert.Equal(t, 7, decodeError.Length)
	assert.Equal(t, 8, decodeError.Expected)
	assert.NotErrorIs(t, err, ErrNoSolution)
}

func TestDecodeInvalidCode(t *testing.T) {
	//** Arrange
	assignment := make([]bool, 8)
	// Object 1, shape: code 3 with only three values
	assignment[6], assignment[7] = true, true

	//** Act
	_, err := Decode(colorsAndShapes(), assignment)

	//** Assert
	var decodeError *DecodeError
	require.True(t, errors.As(err, &decodeError))
	assert.ErrorIs(t, err, ErrInvalidCode)
	assert.Equal(t, model.Object(1), decodeError.Object)
	assert.Equal(t, model.Property(1), decodeError.Property)
	assert.Equal(t, 3, decodeError.Code)
	assert.Contains(t, err.Error(), "code 3")
}
