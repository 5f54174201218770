package lib

/* setup.go builds the initial particle collections and boundary managers
from processed Args. These are the two factories of the setup contract: the
first supplies attribute-populated collections, the second wires the
configured inlet and outlet entities over them. */

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/sphgate/lib/boundary"
	"github.com/phil-mansfield/sphgate/lib/particles"
)

// CreateParticles builds the initial collections: an exit-plane row (2D) or
// grid (3D) of inlet particles sitting at the inlet's downstream boundary,
// and empty fluid and outlet collections. The inlet buffer itself is filled
// later, when the Inlet replicates this template.
func CreateParticles(args *Args) *particles.Registry {
	reg := particles.NewRegistry()
	inlet := reg.Array(particles.RoleInlet)

	a := args.Inlet.Axis
	b := a.Next()
	c := b.Next()
	region := args.Inlet.Region

	v := [3]float64{ }
	v[a] = args.Inlet.Speed

	bCoords := planeCoords(region.Min[b], region.Max[b], args.Inlet.PlaneSpacing)
	cCoords := []float64{ 0 }
	if args.Dim == 3 {
		cCoords = planeCoords(region.Min[c], region.Max[c], args.Inlet.PlaneSpacing)
	}

	for _, cx := range cCoords {
		for _, bx := range bCoords {
			x := [3]float64{ }
			x[a] = region.Max[a]
			x[b] = bx
			x[c] = cx
			inlet.Append(reg.NewParticle(
				x, v, args.Inlet.Mass, args.Inlet.H, args.Inlet.Rho,
			))
		}
	}

	return reg
}

// CreateBoundaries builds the configured inlet and outlet entities over the
// collections in reg. The returned slices are ordered the way the solver
// must process them: inlets first.
func CreateBoundaries(
	args *Args, reg *particles.Registry,
) ([]*boundary.Inlet, []*boundary.Outlet, error) {
	in, err := boundary.NewInlet(
		reg, args.Inlet.Region, args.Inlet.Axis,
		args.Inlet.Spacing, args.Inlet.Layers,
	)
	if err != nil { return nil, nil, err }

	out, err := boundary.NewOutlet(reg, args.Outlet.Region, args.Outlet.Axis)
	if err != nil { return nil, nil, err }

	return []*boundary.Inlet{ in }, []*boundary.Outlet{ out }, nil
}

// planeCoords returns evenly spaced coordinates covering [min, max] with a
// step as close to spacing as an integer particle count allows.
func planeCoords(min, max, spacing float64) []float64 {
	n := int(math.Round((max-min)/spacing)) + 1
	if n < 2 {
		return []float64{ min }
	}
	return floats.Span(make([]float64, n), min, max)
}
