package sim

import (
	"fmt"
	"log"
	"path/filepath"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/sphgate/lib/boundary"
	"github.com/phil-mansfield/sphgate/lib/particles"
	"github.com/phil-mansfield/sphgate/lib/snapshot"
)

// Config holds the solver's runtime parameters.
type Config struct {
	// DT and TF are the timestep and final time.
	DT, TF float64
	// Adaptive shrinks the timestep to the bounds reported by the boundary
	// managers' ExtraDT, when they report any.
	Adaptive bool
	// CheckInvariants runs the O(n) collection-disjointness check after
	// every step. Meant for debugging runs.
	CheckInvariants bool
	// OutputDir and OutputInterval control snapshot output. Snapshots are
	// disabled when OutputInterval is zero.
	OutputDir      string
	OutputInterval int
	// LogInterval is the number of steps between progress lines. Zero
	// disables progress logging.
	LogInterval int
}

// Solver runs the fixed per-step sequence of an open-boundary simulation:
// predict and correct every role's positions, update every inlet, update
// every outlet. Inlets always run before outlets, which guarantees that a
// particle promoted to fluid this step cannot be captured by an outlet until
// it has moved again.
type Solver struct {
	reg      *particles.Registry
	steppers [particles.NumRoles]Stepper
	inlets   []*boundary.Inlet
	outlets  []*boundary.Outlet
	config   Config

	step int
	t    float64
}

// NewSolver creates a Solver over the given collections and boundary
// managers. Roles without an explicit stepper fall back to OpenBoundaryStep.
func NewSolver(
	reg *particles.Registry, steppers map[particles.Role]Stepper,
	inlets []*boundary.Inlet, outlets []*boundary.Outlet, config Config,
) (*Solver, error) {
	if config.DT <= 0 {
		return nil, fmt.Errorf("The timestep is %g, but must be positive.",
			config.DT)
	}
	if config.TF < 0 {
		return nil, fmt.Errorf("The final time is %g, but must not be "+
			"negative.", config.TF)
	}

	s := &Solver{
		reg: reg, inlets: inlets, outlets: outlets, config: config,
	}
	for r := particles.Role(0); r < particles.NumRoles; r++ {
		if st, ok := steppers[r]; ok {
			s.steppers[r] = st
		} else {
			s.steppers[r] = OpenBoundaryStep{ }
		}
	}

	return s, nil
}

// T returns the current simulation time.
func (s *Solver) T() float64 { return s.t }

// StepCount returns the number of completed steps.
func (s *Solver) StepCount() int { return s.step }

// Step advances the simulation by one timestep.
func (s *Solver) Step() error {
	dt := s.config.DT
	if s.config.Adaptive {
		for _, in := range s.inlets {
			if extra := in.ExtraDT(); extra > 0 && extra < dt {
				dt = extra
			}
		}
	}

	for r := particles.Role(0); r < particles.NumRoles; r++ {
		s.steppers[r].Predict(s.reg.Array(r), dt)
	}
	for r := particles.Role(0); r < particles.NumRoles; r++ {
		s.steppers[r].Correct(s.reg.Array(r), dt)
	}

	// Inlets before outlets. See the package comment in lib/boundary.
	for _, in := range s.inlets {
		if err := in.Update(); err != nil { return err }
	}
	for _, out := range s.outlets {
		if err := out.Update(); err != nil { return err }
	}

	if s.config.CheckInvariants {
		if err := s.reg.CheckDisjoint(); err != nil { return err }
	}

	s.step++
	s.t += dt

	return nil
}

// Run steps the simulation until the final time, writing snapshots and
// progress lines at the configured intervals.
func (s *Solver) Run() error {
	for s.t < s.config.TF {
		if err := s.Step(); err != nil { return err }

		if s.config.LogInterval > 0 && s.step%s.config.LogInterval == 0 {
			d := s.Diagnostics()
			log.Printf(
				"step %6d  t = %8.4f  inlet %5d  fluid %5d  outlet %5d  total mass %.6g",
				s.step, s.t, d.N[particles.RoleInlet],
				d.N[particles.RoleFluid], d.N[particles.RoleOutlet],
				d.TotalMass,
			)
		}

		if s.config.OutputInterval > 0 && s.step%s.config.OutputInterval == 0 {
			fname := filepath.Join(
				s.config.OutputDir, fmt.Sprintf("snap_%06d.sgp", s.step),
			)
			err := snapshot.Write(fname, s.reg, s.step, s.t)
			if err != nil { return err }
		}
	}
	return nil
}

// Diagnostics summarises the particle populations: per-role and total counts,
// total mass, and total momentum. Useful for checking the conservation
// properties of the boundary bookkeeping from the outside.
type Diagnostics struct {
	N         [particles.NumRoles]int
	TotalN    int
	TotalMass float64
	Momentum  [3]float64
}

// Diagnostics computes the current population summary.
func (s *Solver) Diagnostics() Diagnostics {
	d := Diagnostics{ }
	for r := particles.Role(0); r < particles.NumRoles; r++ {
		ar := s.reg.Array(r)
		d.N[r] = ar.Len()
		d.TotalN += ar.Len()
		d.TotalMass += floats.Sum(ar.M())

		m, v := ar.M(), ar.V()
		for i := range v {
			for dim := 0; dim < 3; dim++ {
				d.Momentum[dim] += m[i] * v[i][dim]
			}
		}
	}
	return d
}
