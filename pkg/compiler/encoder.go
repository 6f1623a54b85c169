package compiler

import (
	"github.com/limaJavier/logicgrid/pkg/bdd"
	"github.com/limaJavier/logicgrid/pkg/model"

	log "github.com/sirupsen/logrus"
)

// Encoder groups a flat pool of Boolean variables into [object][property][bit] slots and
// owns the table of value formulas: for every (object, property, value) the conjunction of
// bit literals that holds exactly when the object's property takes that value.
// The encoder is immutable after construction and safe for concurrent reads.
type Encoder struct {
	engine  *bdd.Engine
	domain  model.Domain
	indexer model.Indexer
	bits    [][][]bdd.Formula
	values  [][][]bdd.Formula
}

// NewEncoder partitions pool according to domain. It panics if the pool's size does not match
// objects * properties * bits, since that is a wiring error rather than a runtime condition.
func NewEncoder(engine *bdd.Engine, pool []bdd.Formula, domain model.Domain) *Encoder {
	if err := domain.Validate(); err != nil {
		log.Panicf("invalid domain: %v", err)
	}
	if len(pool) != domain.Variables() {
		log.Panicf("pool holds %v variables, domain requires %v", len(pool), domain.Variables())
	}

	encoder := &Encoder{
		engine:  engine,
		domain:  domain,
		indexer: model.NewIndexer(domain),
	}

	objects, properties, width, values := domain.ObjectCount(), domain.PropertyCount(), domain.Bits(), domain.ValueCount()

	encoder.bits = make([][][]bdd.Formula, objects)
	for object := range objects {
		encoder.bits[object] = make([][]bdd.Formula, properties)
		for property := range properties {
			encoder.bits[object][property] = make([]bdd.Formula, width)
			for bit := range width {
				encoder.bits[object][property][bit] = pool[encoder.indexer.Index(model.Object(object), model.Property(property), bit)]
			}
		}
	}

	encoder.values = make([][][]bdd.Formula, objects)
	for object := range objects {
		encoder.values[object] = make([][]bdd.Formula, properties)
		for property := range properties {
			encoder.values[object][property] = make([]bdd.Formula, values)
			for value := range values {
				encoder.values[object][property][value] = encoder.NumToBin(value, encoder.bits[object][property])
			}
		}
	}

	return encoder
}

func (encoder *Encoder) Engine() *bdd.Engine    { return encoder.engine }
func (encoder *Encoder) Domain() model.Domain   { return encoder.domain }
func (encoder *Encoder) Indexer() model.Indexer { return encoder.indexer }

// BitVars returns the raw bit variables of a slot, most-significant bit first
func (encoder *Encoder) BitVars(object model.Object, property model.Property) []bdd.Formula {
	encoder.checkObject(object)
	if property < 0 || int(property) >= encoder.domain.PropertyCount() {
		log.Panicf("property %v is out of range", property)
	}
	return encoder.bits[object][property]
}

// ValueFormula returns the cached formula stating that object's property (inferred from the
// value's type) equals value
func (encoder *Encoder) ValueFormula(object model.Object, value model.Value) bdd.Formula {
	encoder.checkObject(object)
	if !encoder.domain.Contains(value) {
		log.Panicf("value %v:%v is not part of the domain", value.Property(), value.Index())
	}
	return encoder.values[object][value.Property()][value.Index()]
}

// NumToBin returns the conjunction of bit literals encoding n, most-significant bit first.
// Bit i is taken positively if the corresponding bit of n is 1 and negated otherwise.
func (encoder *Encoder) NumToBin(n int, bits []bdd.Formula) bdd.Formula {
	if len(bits) == 0 {
		log.Panicf("cannot encode %v over an empty bit-vector", n)
	}
	if n < 0 || n >= 1<<len(bits) {
		log.Panicf("%v does not fit in %v bits", n, len(bits))
	}

	literals := make([]bdd.Formula, len(bits))
	for i, bit := range bits {
		if n&(1<<(len(bits)-1-i)) != 0 {
			literals[i] = bit
		} else {
			literals[i] = encoder.engine.Not(bit)
		}
	}
	return encoder.engine.And(literals...)
}

func (encoder *Encoder) checkObject(object model.Object) {
	if object < 0 || int(object) >= encoder.domain.ObjectCount() {
		log.Panicf("object %v is out of range", object)
	}
}
