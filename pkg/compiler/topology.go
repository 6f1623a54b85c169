package compiler

import (
	"github.com/limaJavier/logicgrid/pkg/model"

	log "github.com/sirupsen/logrus"
)

// Topology lays objects out row-major on a width x height grid; a line is a grid of height 1.
//
// A neighbor is found by adding an offset to an object's coordinates. An out-of-range
// coordinate is wrapped modulo the axis extent if that axis wraps; otherwise there is no
// neighbor. When an offset leaves the grid on both axes, both axes must wrap for the
// neighbor to exist.
type Topology struct {
	width, height int
	wrapX, wrapY  bool
}

func NewTopology(spec model.TopologySpec) Topology {
	if spec.Width <= 0 || spec.Height <= 0 {
		log.Panicf("invalid topology dimensions %vx%v", spec.Width, spec.Height)
	}
	return Topology{width: spec.Width, height: spec.Height, wrapX: spec.WrapX, wrapY: spec.WrapY}
}

func Line(objects int, wrap bool) Topology {
	return NewTopology(model.TopologySpec{Width: objects, Height: 1, WrapX: wrap})
}

func Grid(width, height int, wrapX, wrapY bool) Topology {
	return NewTopology(model.TopologySpec{Width: width, Height: height, WrapX: wrapX, WrapY: wrapY})
}

func (topology Topology) Size() int {
	return topology.width * topology.height
}

func (topology Topology) Coordinates(object model.Object) (x, y int) {
	return int(object) % topology.width, int(object) / topology.width
}

func (topology Topology) Object(x, y int) model.Object {
	return model.Object(y*topology.width + x)
}

// Neighbor returns the object found at offset from object, if any
func (topology Topology) Neighbor(object model.Object, offset model.Offset) (model.Object, bool) {
	if object < 0 || int(object) >= topology.Size() {
		log.Panicf("object %v is out of the topology's range", object)
	}

	x, y := topology.Coordinates(object)
	x, y = x+offset.DX, y+offset.DY

	outX := x < 0 || x >= topology.width
	outY := y < 0 || y >= topology.height
	if (outX && !topology.wrapX) || (outY && !topology.wrapY) {
		return 0, false
	}

	return topology.Object(modulo(x, topology.width), modulo(y, topology.height)), true
}

// Directions returns the unit offsets along every non-degenerate axis
func (topology Topology) Directions() []model.Offset {
	directions := []model.Offset{model.Left, model.Right}
	if topology.height > 1 {
		directions = append(directions, model.Up, model.Down)
	}
	return directions
}

func modulo(a, n int) int {
	return ((a % n) + n) % n
}
