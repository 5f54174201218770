/*package geom contains the small amount of geometry needed by the boundary
managers: coordinate axes and axis-aligned regions used for membership tests.*/
package geom

import (
	"fmt"
	"math"
)

// Axis labels one of the three coordinate directions.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis converts an axis name into an Axis.
func ParseAxis(name string) (Axis, error) {
	switch name {
	case "x":
		return X, nil
	case "y":
		return Y, nil
	case "z":
		return Z, nil
	}
	return -1, fmt.Errorf("'%s' is not a valid axis. Only 'x', 'y', and 'z' are valid.", name)
}

// Next returns the axis following a in cyclic x -> y -> z order.
func (a Axis) Next() Axis {
	return (a + 1) % 3
}

// Region is an axis-aligned box. It is used only for membership tests and is
// never stored per-particle. Dimensions that should be unbounded (e.g. the z
// axis of a 2D setup) use -Inf and +Inf.
type Region struct {
	Min, Max [3]float64
}

// NewRegion creates a Region and rejects boxes with zero or negative extent
// along any dimension.
func NewRegion(min, max [3]float64) (Region, error) {
	r := Region{ Min: min, Max: max }
	if err := r.Check(); err != nil {
		return Region{ }, err
	}
	return r, nil
}

// Unbounded returns the interval used for dimensions a region should not
// constrain.
func Unbounded() (min, max float64) {
	return math.Inf(-1), math.Inf(1)
}

// Check returns an error if the region has zero or negative extent along any
// dimension. NaN bounds are also rejected.
func (r Region) Check() error {
	for dim := 0; dim < 3; dim++ {
		if !(r.Max[dim] > r.Min[dim]) {
			return fmt.Errorf(
				"Region has min = %g and max = %g along the %s axis, but "+
					"max must be larger than min.",
				r.Min[dim], r.Max[dim], Axis(dim),
			)
		}
	}
	return nil
}

// Contains returns true if x is inside the region. Both faces of every
// dimension are inclusive, so the test is deterministic for particles sitting
// exactly on a boundary.
func (r Region) Contains(x [3]float64) bool {
	for dim := 0; dim < 3; dim++ {
		if x[dim] < r.Min[dim] || x[dim] > r.Max[dim] {
			return false
		}
	}
	return true
}

// Extent returns the width of the region along the given axis.
func (r Region) Extent(a Axis) float64 {
	return r.Max[a] - r.Min[a]
}
