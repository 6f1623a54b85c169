package model

// Indexer gives a unique variable index to every (object, property, bit) slot and vice versa.
// Slots are laid out object-major, then property, then bit (most-significant bit first).
type Indexer interface {
	// Returns the zero-based variable index of a slot
	Index(object Object, property Property, bit int) int
	// Returns the slot of a zero-based variable index
	Attributes(index int) (object Object, property Property, bit int)
}

func NewIndexer(domain Domain) Indexer {
	return &indexerImplementation{
		properties: domain.PropertyCount(),
		bits:       domain.Bits(),
	}
}

type indexerImplementation struct {
	properties int
	bits       int
}

func (indexer *indexerImplementation) Index(object Object, property Property, bit int) int {
	return (int(object)*indexer.properties+int(property))*indexer.bits + bit
}

func (indexer *indexerImplementation) Attributes(index int) (object Object, property Property, bit int) {
	bit = index % indexer.bits
	index = index / indexer.bits

	property = Property(index % indexer.properties)
	index = index / indexer.properties

	object = Object(index)

	return object, property, bit
}
