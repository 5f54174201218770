package boundary

import (
	"github.com/phil-mansfield/sphgate/lib/geom"
	"github.com/phil-mansfield/sphgate/lib/particles"
)

// Outlet lets fluid particles flow unobstructed through a receiving region
// and disposes of them once they exit the domain. Fluid particles entering
// the region are converted to the outlet collection; outlet particles
// crossing the region's downstream face are deleted outright, discarding
// their mass, momentum, and all other state.
type Outlet struct {
	fluid, outlet *particles.Array
	region        geom.Region
	axis          geom.Axis
	captured      []int
	exited        []int
}

// NewOutlet creates an outlet covering region with outflow along axis.
// Regions with zero or negative extent are rejected: a zero-width outlet
// could capture and delete a particle in the same step.
func NewOutlet(
	reg *particles.Registry, region geom.Region, axis geom.Axis,
) (*Outlet, error) {
	if err := region.Check(); err != nil {
		return nil, configErrorf("Invalid outlet region: %s", err.Error())
	}
	return &Outlet{
		fluid:  reg.Array(particles.RoleFluid),
		outlet: reg.Array(particles.RoleOutlet),
		region: region, axis: axis,
	}, nil
}

// Region returns the capture region covered by the outlet.
func (out *Outlet) Region() geom.Region { return out.region }

// Update converts every fluid particle inside the outlet region to the
// outlet collection, then deletes every outlet particle strictly beyond the
// region's downstream face along the outflow axis. Because only fluid-role
// particles are tested for capture and only outlet-role particles for
// removal, a particle converts at most once per step; and since capture is
// inclusive of the downstream face while removal is strictly beyond it, a
// particle is never captured and deleted in the same step.
func (out *Outlet) Update() error {
	// Capture fluid particles that entered the region.
	x := out.fluid.X()
	captured := out.captured[:0]
	for i := range x {
		if out.region.Contains(x[i]) {
			captured = append(captured, i)
		}
	}
	out.captured = captured

	if len(captured) > 0 {
		err := particles.Transfer(out.fluid, out.outlet, captured)
		if err != nil { return err }
	}

	// Hard-remove outlet particles that left through the downstream face.
	// This is a set difference with compaction, not a transfer: the records
	// are gone from the simulation entirely.
	x = out.outlet.X()
	xFar := out.region.Max[out.axis]

	exited := out.exited[:0]
	for i := range x {
		if x[i][out.axis] > xFar {
			exited = append(exited, i)
		}
	}
	out.exited = exited

	if len(exited) > 0 {
		if err := out.outlet.Remove(exited); err != nil { return err }
	}

	return nil
}

// ExtraDT returns zero: an outlet imposes no timestep bound.
func (out *Outlet) ExtraDT() float64 { return 0 }
