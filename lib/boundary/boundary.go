/*package boundary implements open-boundary handling for particle
simulations: inlets that keep a buffer of ghost particles flowing into the
domain and promote them to fluid as they cross the exit plane, and outlets
that absorb fluid particles and delete them once they leave the domain.

Both managers are driven externally, once per simulation step, after the
integrator has advanced particle positions. They never integrate positions
themselves; they only inspect the result, convert particle roles, and resize
collections. Within one step every inlet must be updated before any outlet is,
so that a freshly promoted fluid particle cannot be captured and deleted
before it has moved.*/
package boundary

import (
	"fmt"
)

// Manager is the contract shared by inlets and outlets. The external stepping
// loop calls Update once per step, after integrating particle positions, in a
// fixed order: all inlets first, then all outlets.
type Manager interface {
	// Update inspects the integrated particle positions and performs this
	// boundary's role conversions and removals. Errors are bookkeeping bugs
	// (see particles.InvariantError), not runtime conditions.
	Update() error

	// ExtraDT returns an additional timestep bound imposed by the boundary,
	// or zero if it imposes none.
	ExtraDT() float64
}

// Type assertions
var (
	_ Manager = &Inlet{ }
	_ Manager = &Outlet{ }
)

// ConfigError reports a malformed inlet or outlet configuration: an inverted
// or zero-width region, non-positive spacing, a replica count below one, or
// an empty template. It is returned by constructors, so a misconfigured
// boundary fails before any Update is callable.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

func configErrorf(format string, a ...interface{}) *ConfigError {
	return &ConfigError{ fmt.Sprintf(format, a...) }
}
