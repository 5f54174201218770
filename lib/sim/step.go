/*package sim drives the per-step sequence of an open-boundary simulation:
integrate each role's particles, then update the inlets, then the outlets.
The force-free steppers here are enough for pure advection problems; a full
SPH code would plug force-responding steppers into the same interface.*/
package sim

import (
	"github.com/phil-mansfield/sphgate/lib/particles"
)

// Stepper advances the particles of one collection across a timestep. The
// two methods are the two position updates of a predict-evaluate-correct
// cycle, so different roles can use different stepping semantics while
// staying in lockstep with one another.
type Stepper interface {
	// Predict performs the first half-step position update.
	Predict(ar *particles.Array, dt float64)
	// Correct performs the second half-step position update, after forces
	// (if any) have been evaluated at the predicted positions.
	Correct(ar *particles.Array, dt float64)
}

// Type assertion
var _ Stepper = OpenBoundaryStep{ }

// OpenBoundaryStep moves particles with their current velocity and applies
// no force response. It is the stepper used for inlet and outlet particles,
// which must cross their regions undisturbed, and for fluid particles in
// force-free demos.
type OpenBoundaryStep struct{ }

func (OpenBoundaryStep) Predict(ar *particles.Array, dt float64) {
	advect(ar, dt/2)
}

func (OpenBoundaryStep) Correct(ar *particles.Array, dt float64) {
	advect(ar, dt/2)
}

func advect(ar *particles.Array, dt float64) {
	x, v := ar.X(), ar.V()
	for i := range x {
		for dim := 0; dim < 3; dim++ {
			x[i][dim] += v[i][dim] * dt
		}
	}
}
