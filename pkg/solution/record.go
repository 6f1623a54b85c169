package solution

import (
	"errors"
	"fmt"

	"github.com/limaJavier/logicgrid/pkg/model"
)

var (
	// ErrNoSolution is returned when the formula has no satisfying assignment
	ErrNoSolution = errors.New("formula is unsatisfiable")

	ErrLengthMismatch = errors.New("assignment length does not match the domain")
	ErrInvalidCode    = errors.New("decoded code exceeds the value count")
)

// DecodeError reports an assignment that cannot be mapped back onto the domain
type DecodeError struct {
	Err      error
	Object   model.Object
	Property model.Property
	Code     int
	Length   int
	Expected int
}

func (err *DecodeError) Error() string {
	if errors.Is(err.Err, ErrLengthMismatch) {
		return fmt.Sprintf("%v: got %v variables, expected %v", err.Err, err.Length, err.Expected)
	}
	return fmt.Sprintf("%v: object %v, property %v holds code %v", err.Err, err.Object, err.Property, err.Code)
}

func (err *DecodeError) Unwrap() error {
	return err.Err
}

// Record is the decoded configuration of one object: one value per property
type Record struct {
	Object model.Object
	Values []model.Val
	Labels []string
}

// Value returns the value the record holds for property
func (record Record) Value(property model.Property) model.Val {
	return record.Values[property]
}

// Holds reports whether the record holds value
func (record Record) Holds(value model.Value) bool {
	return int(value.Property()) < len(record.Values) && record.Values[value.Property()].Idx == value.Index()
}

// Decode maps a full assignment (one boolean per variable, in indexer order) back to one
// record per object
func Decode(domain model.Domain, assignment []bool) ([]Record, error) {
	if expected := domain.Variables(); len(assignment) != expected {
		return nil, &DecodeError{Err: ErrLengthMismatch, Length: len(assignment), Expected: expected}
	}

	indexer := model.NewIndexer(domain)
	bits := domain.Bits()
	records := make([]Record, domain.ObjectCount())
	for object := range domain.ObjectCount() {
		record := Record{
			Object: model.Object(object),
			Values: make([]model.Val, domain.PropertyCount()),
			Labels: make([]string, domain.PropertyCount()),
		}

		for property := range domain.PropertyCount() {
			// Most-significant bit first
			code := 0
			for bit := range bits {
				code <<= 1
				if assignment[indexer.Index(model.Object(object), model.Property(property), bit)] {
					code |= 1
				}
			}

			if code >= domain.ValueCount() {
				return nil, &DecodeError{
					Err:      ErrInvalidCode,
					Object:   model.Object(object),
					Property: model.Property(property),
					Code:     code,
				}
			}

			record.Values[property] = model.Val{Prop: model.Property(property), Idx: code}
			record.Labels[property] = domain.Properties[property].Values[code]
		}
		records[object] = record
	}
	return records, nil
}
