package boundary

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/sphgate/lib/geom"
	"github.com/phil-mansfield/sphgate/lib/particles"
)

// Inlet maintains a steady supply of fluid particles entering the domain
// along a fixed inflow direction. At construction it captures the particles
// already in the inlet collection as an immutable template (the "exit plane"
// row) and stacks layer copies of it upstream until the buffer region is
// full. Each Update promotes the particles that crossed the downstream
// boundary into the fluid collection and re-injects fresh replicas at the
// upstream end, so the buffer never depletes and the inlet count stays
// constant for as long as the simulation runs.
type Inlet struct {
	reg           *particles.Registry
	inlet, fluid  *particles.Array
	region        geom.Region
	axis          geom.Axis
	spacing       float64
	layers        int
	template      []particles.Particle
	crossed       []int
	speed         []float64
}

// NewInlet creates an inlet covering region, flowing along axis, built from
// layers copies of the template spaced spacing apart. The template is the
// current content of the registry's inlet collection, which the caller
// populates with the exit-plane particle row before constructing the Inlet.
// Layer 0 is that row itself; layers-1 further copies are stacked along the
// negative inflow direction.
func NewInlet(
	reg *particles.Registry, region geom.Region, axis geom.Axis,
	spacing float64, layers int,
) (*Inlet, error) {
	if err := region.Check(); err != nil {
		return nil, configErrorf("Invalid inlet region: %s", err.Error())
	}
	if spacing <= 0 {
		return nil, configErrorf(
			"Inlet layer spacing is %g, but must be positive.", spacing,
		)
	}
	if layers < 1 {
		return nil, configErrorf(
			"Inlet layer count is %d, but must be at least 1.", layers,
		)
	}

	inlet := reg.Array(particles.RoleInlet)
	if inlet.Len() == 0 {
		return nil, configErrorf(
			"The inlet template is empty: the inlet collection must hold " +
				"the exit-plane particle row before the inlet is created.",
		)
	}

	template := make([]particles.Particle, inlet.Len())
	for i := range template {
		template[i] = inlet.At(i)
	}

	in := &Inlet{
		reg: reg, inlet: inlet, fluid: reg.Array(particles.RoleFluid),
		region: region, axis: axis, spacing: spacing, layers: layers,
		template: template,
	}

	// Stack the upstream layers. Layer 0 is the template row itself.
	for i := 1; i < layers; i++ {
		for _, p := range template {
			x := p.X
			x[axis] -= float64(i) * spacing
			inlet.Append(reg.NewParticle(x, p.V, p.M, p.H, p.Rho))
		}
	}

	return in, nil
}

// Region returns the buffer region covered by the inlet.
func (in *Inlet) Region() geom.Region { return in.region }

// Update promotes every inlet particle that crossed the inlet's downstream
// boundary into the fluid collection, and re-injects a fresh replica one
// region length upstream of each promoted particle. A particle sitting
// exactly on the boundary counts as having crossed, so floating-point
// equality can never make it dwell forever. Only motion along the inflow
// axis triggers promotion.
func (in *Inlet) Update() error {
	x := in.inlet.X()
	xExit := in.region.Max[in.axis]

	idx := in.crossed[:0]
	for i := range x {
		if x[i][in.axis] >= xExit {
			idx = append(idx, i)
		}
	}
	in.crossed = idx
	if len(idx) == 0 { return nil }

	// Records have to be captured before Transfer compacts the source.
	promoted := make([]particles.Particle, len(idx))
	for j, i := range idx {
		promoted[j] = in.inlet.At(i)
	}

	if err := particles.Transfer(in.inlet, in.fluid, idx); err != nil {
		return err
	}

	// Refill on vacancy: each promoted particle vacates the upstream-most
	// lattice slot on its flow line, one region length behind it. The fresh
	// replica keeps the template attributes (which the promoted record still
	// carries) and gets a new ID.
	length := in.region.Extent(in.axis)
	for _, p := range promoted {
		xNew := p.X
		xNew[in.axis] -= length
		in.inlet.Append(in.reg.NewParticle(xNew, p.V, p.M, p.H, p.Rho))
	}

	return nil
}

// ExtraDT bounds the timestep so that no inlet particle can travel more than
// one layer spacing per step, which would skip lattice slots. Returns zero if
// the inlet imposes no bound, i.e. when nothing is moving along the inflow
// axis.
func (in *Inlet) ExtraDT() float64 {
	v := in.inlet.V()
	if len(v) == 0 { return 0 }

	speed := in.speed[:0]
	for i := range v {
		speed = append(speed, math.Abs(v[i][in.axis]))
	}
	in.speed = speed

	vMax := floats.Max(speed)
	if vMax == 0 { return 0 }
	return in.spacing / vMax
}
