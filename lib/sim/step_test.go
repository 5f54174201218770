package sim

import (
	"testing"

	"github.com/phil-mansfield/sphgate/lib/eq"
	"github.com/phil-mansfield/sphgate/lib/particles"
)

func TestOpenBoundaryStepAdvects(t *testing.T) {
	ar := particles.NewArray(particles.RoleInlet)
	ar.Append(particles.Particle{
		ID: 1, X: [3]float64{ -0.5, 0.25, 0 }, V: [3]float64{ 0.25, -0.5, 1 },
		M: 0.1, H: 0.15, Rho: 1.0,
	})

	// Every value here is a power of two, so the advection is exact.
	step := OpenBoundaryStep{ }
	step.Predict(ar, 0.5)
	step.Correct(ar, 0.5)

	want := [][3]float64{ { -0.375, 0, 0.5 } }
	if !eq.Vec64s(ar.X(), want) {
		t.Errorf("Expected x = %v after one step, got %v.", want, ar.X())
	}

	// Velocity is untouched: this stepper has no force response.
	if !eq.Vec64s(ar.V(), [][3]float64{ { 0.25, -0.5, 1 } }) {
		t.Errorf("Expected v to be unchanged, got %v.", ar.V())
	}
}

func TestOpenBoundaryStepEmptyArray(t *testing.T) {
	ar := particles.NewArray(particles.RoleFluid)
	step := OpenBoundaryStep{ }
	step.Predict(ar, 0.5)
	step.Correct(ar, 0.5)
	if ar.Len() != 0 {
		t.Errorf("Stepping an empty collection created particles.")
	}
}
