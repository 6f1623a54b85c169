package compiler

import (
	"github.com/limaJavier/logicgrid/internal/metrics"
	"github.com/limaJavier/logicgrid/pkg/bdd"
	"github.com/limaJavier/logicgrid/pkg/model"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	KindExists      = "exists"
	KindFixed       = "fixed"
	KindDirectional = "directional"
	KindAdjacent    = "adjacent"
	KindUnique      = "unique"
	KindUpperBound  = "upper-bound"
)

// Constraint generates one formula fragment over an encoder. Generators only read the
// encoder; the fragment reaches an accumulator through Apply or ApplyConcurrent.
type Constraint struct {
	Kind     string
	generate func(encoder *Encoder) bdd.Formula
}

func (constraint Constraint) Formula(encoder *Encoder) bdd.Formula {
	metrics.Constraints.WithLabelValues(constraint.Kind).Inc()
	return constraint.generate(encoder)
}

func (constraint Constraint) Apply(encoder *Encoder, builder *Builder) {
	builder.AddCondition(constraint.Formula(encoder))
}

func (constraint Constraint) ApplyConcurrent(encoder *Encoder, builder *Builder) {
	builder.AddConditionConcurrent(constraint.Formula(encoder))
}

// Exists states that some object holds every one of values at once. Two values of the same
// property can never be held together, in which case the constraint is False.
func Exists(values ...model.Value) Constraint {
	return Constraint{
		Kind: KindExists,
		generate: func(encoder *Encoder) bdd.Formula {
			engine := encoder.Engine()
			disjuncts := lo.Map(lo.Range(encoder.Domain().ObjectCount()), func(object int, _ int) bdd.Formula {
				return engine.And(lo.Map(values, func(value model.Value, _ int) bdd.Formula {
					return encoder.ValueFormula(model.Object(object), value)
				})...)
			})
			return engine.Or(disjuncts...)
		},
	}
}

// Fixed states that object holds value
func Fixed(object model.Object, value model.Value) Constraint {
	return Constraint{
		Kind: KindFixed,
		generate: func(encoder *Encoder) bdd.Formula {
			return encoder.ValueFormula(object, value)
		},
	}
}

// Directional states that the object holding first has, at offset, a neighbor holding second.
// Objects without a neighbor at offset contribute nothing.
func Directional(topology Topology, offset model.Offset, first, second model.Value) Constraint {
	return Constraint{
		Kind: KindDirectional,
		generate: func(encoder *Encoder) bdd.Formula {
			return directional(encoder, topology, offset, first, second)
		},
	}
}

// Adjacent is the union of Directional over offsets, which default to the topology's unit
// directions
func Adjacent(topology Topology, first, second model.Value, offsets ...model.Offset) Constraint {
	if len(offsets) == 0 {
		offsets = topology.Directions()
	}
	return Constraint{
		Kind: KindAdjacent,
		generate: func(encoder *Encoder) bdd.Formula {
			return encoder.Engine().Or(lo.Map(offsets, func(offset model.Offset, _ int) bdd.Formula {
				return directional(encoder, topology, offset, first, second)
			})...)
		},
	}
}

func directional(encoder *Encoder, topology Topology, offset model.Offset, first, second model.Value) bdd.Formula {
	if topology.Size() != encoder.Domain().ObjectCount() {
		log.Panicf("topology arranges %v objects, domain has %v", topology.Size(), encoder.Domain().ObjectCount())
	}

	engine := encoder.Engine()
	disjuncts := make([]bdd.Formula, 0, topology.Size())
	for object := range topology.Size() {
		neighbor, ok := topology.Neighbor(model.Object(object), offset)
		if !ok {
			continue
		}
		disjuncts = append(disjuncts, engine.And(
			encoder.ValueFormula(model.Object(object), first),
			encoder.ValueFormula(neighbor, second),
		))
	}
	return engine.Or(disjuncts...)
}

// Distinct states that two objects' raw bit-vectors for property differ in at least one bit
func Distinct(encoder *Encoder, first, second model.Object, property model.Property) bdd.Formula {
	engine := encoder.Engine()
	firstBits, secondBits := encoder.BitVars(first, property), encoder.BitVars(second, property)
	return engine.Or(lo.Map(firstBits, func(bit bdd.Formula, i int) bdd.Formula {
		return engine.Xor(bit, secondBits[i])
	})...)
}

// Unique states that no two objects share a value of any property. It compares raw bits,
// so it is only sound together with UpperBound when the value count is not a power of two.
func Unique() Constraint {
	return Constraint{
		Kind: KindUnique,
		generate: func(encoder *Encoder) bdd.Formula {
			objects, properties := encoder.Domain().ObjectCount(), encoder.Domain().PropertyCount()
			fragments := make([]bdd.Formula, 0, properties*objects*(objects-1)/2)
			for property := range properties {
				for first := range objects {
					for second := first + 1; second < objects; second++ {
						fragments = append(fragments, Distinct(encoder, model.Object(first), model.Object(second), model.Property(property)))
					}
				}
			}
			return encoder.Engine().And(fragments...)
		},
	}
}

// UniqueParallel builds the same formula as Unique. Every (property, first object) task
// conjoins its own pairs into a local fragment; fragments are folded once all tasks finish.
// A non-positive workers means no limit.
func UniqueParallel(workers int) Constraint {
	return Constraint{
		Kind: KindUnique,
		generate: func(encoder *Encoder) bdd.Formula {
			engine := encoder.Engine()
			objects, properties := encoder.Domain().ObjectCount(), encoder.Domain().PropertyCount()
			fragments := make([]bdd.Formula, properties*objects)

			var group errgroup.Group
			if workers > 0 {
				group.SetLimit(workers)
			}
			for property := range properties {
				for first := range objects {
					group.Go(func() error {
						pairs := make([]bdd.Formula, 0, objects-first-1)
						for second := first + 1; second < objects; second++ {
							pairs = append(pairs, Distinct(encoder, model.Object(first), model.Object(second), model.Property(property)))
						}
						fragments[property*objects+first] = engine.And(pairs...)
						return nil
					})
				}
			}
			_ = group.Wait() // tasks never fail

			return engine.And(fragments...)
		},
	}
}

// UpperBound excludes, for every slot, the codes from the value count up to 2^bits - 1
func UpperBound() Constraint {
	return Constraint{
		Kind: KindUpperBound,
		generate: func(encoder *Encoder) bdd.Formula {
			engine := encoder.Engine()
			domain := encoder.Domain()
			exclusions := make([]bdd.Formula, 0)
			for object := range domain.ObjectCount() {
				for property := range domain.PropertyCount() {
					exclusions = append(exclusions, bound(encoder, model.Object(object), model.Property(property)))
				}
			}
			return engine.And(exclusions...)
		},
	}
}

func bound(encoder *Encoder, object model.Object, property model.Property) bdd.Formula {
	engine := encoder.Engine()
	bits := encoder.BitVars(object, property)
	exclusions := make([]bdd.Formula, 0)
	for code := encoder.Domain().ValueCount(); code < 1<<len(bits); code++ {
		exclusions = append(exclusions, engine.Not(encoder.NumToBin(code, bits)))
	}
	return engine.And(exclusions...)
}
