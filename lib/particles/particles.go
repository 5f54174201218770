/*package particles manages the per-role particle collections of a simulation
with open boundaries. Each collection is a struct-of-arrays Array owning the
particles of exactly one Role, and a Registry maps every Role to its Array so
that lookups are resolved once at setup instead of by name strings at every
step.*/
package particles

import (
	"fmt"
)

// Role classifies a particle and determines which manager may mutate it.
// A particle has exactly one role at a time, given by the Array it lives in.
type Role int

const (
	RoleInlet Role = iota
	RoleFluid
	RoleOutlet
	NumRoles
)

func (r Role) String() string {
	switch r {
	case RoleInlet:
		return "inlet"
	case RoleFluid:
		return "fluid"
	case RoleOutlet:
		return "outlet"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// ParseRole converts a role name into a Role.
func ParseRole(name string) (Role, error) {
	switch name {
	case "inlet":
		return RoleInlet, nil
	case "fluid":
		return RoleFluid, nil
	case "outlet":
		return RoleOutlet, nil
	}
	return -1, fmt.Errorf("'%s' is not a valid role. Only 'inlet', 'fluid', and 'outlet' are valid.", name)
}

// Particle is the full attribute record of a single particle. ID is unique
// across every collection in the owning Registry and is stable for the
// particle's whole lifetime, including role transfers.
type Particle struct {
	ID        uint64
	X, V      [3]float64
	M, H, Rho float64
}

// Array is an ordered, resizable collection of particles with a single role.
// Attributes are stored as parallel arrays so integrators can sweep over
// positions and velocities without assembling records.
type Array struct {
	role      Role
	id        []uint64
	x, v      [][3]float64
	m, h, rho []float64
}

// NewArray creates an empty collection for the given role.
func NewArray(role Role) *Array {
	return &Array{ role: role }
}

func (ar *Array) Role() Role { return ar.role }
func (ar *Array) Len() int { return len(ar.id) }

// X returns the position array. Integrators mutate it in place.
func (ar *Array) X() [][3]float64 { return ar.x }

// V returns the velocity array. Integrators mutate it in place.
func (ar *Array) V() [][3]float64 { return ar.v }

func (ar *Array) IDs() []uint64 { return ar.id }
func (ar *Array) M() []float64 { return ar.m }
func (ar *Array) H() []float64 { return ar.h }
func (ar *Array) Rho() []float64 { return ar.rho }

// Append adds a particle record to the end of the collection.
func (ar *Array) Append(p Particle) {
	ar.id = append(ar.id, p.ID)
	ar.x = append(ar.x, p.X)
	ar.v = append(ar.v, p.V)
	ar.m = append(ar.m, p.M)
	ar.h = append(ar.h, p.H)
	ar.rho = append(ar.rho, p.Rho)
}

// At returns a copy of the i-th particle's record.
func (ar *Array) At(i int) Particle {
	return Particle{
		ID: ar.id[i], X: ar.x[i], V: ar.v[i],
		M: ar.m[i], H: ar.h[i], Rho: ar.rho[i],
	}
}

// Remove deletes the particles at the given indices and compacts the
// collection so no index gaps are left. The relative order of the surviving
// particles is unchanged. idx must be sorted in increasing order and must not
// contain duplicates or out-of-range values.
func (ar *Array) Remove(idx []int) error {
	if err := checkIndices(idx, ar.Len()); err != nil { return err }
	if len(idx) == 0 { return nil }

	n, k := 0, 0
	for i := 0; i < ar.Len(); i++ {
		if k < len(idx) && idx[k] == i {
			k++
			continue
		}
		ar.id[n] = ar.id[i]
		ar.x[n] = ar.x[i]
		ar.v[n] = ar.v[i]
		ar.m[n] = ar.m[i]
		ar.h[n] = ar.h[i]
		ar.rho[n] = ar.rho[i]
		n++
	}

	ar.id = ar.id[:n]
	ar.x = ar.x[:n]
	ar.v = ar.v[:n]
	ar.m = ar.m[:n]
	ar.h = ar.h[:n]
	ar.rho = ar.rho[:n]

	return nil
}

// checkIndices validates an index set before any mutation happens, so that
// Remove and Transfer never leave a collection half-updated.
func checkIndices(idx []int, n int) error {
	for k, i := range idx {
		if i < 0 || i >= n {
			return invariantErrorf(
				"Index %d is out of range for a collection with %d particles.",
				i, n,
			)
		}
		if k > 0 && idx[k-1] >= i {
			return invariantErrorf(
				"Index array %d is not sorted and duplicate-free.", idx,
			)
		}
	}
	return nil
}

// InvariantError reports a particle-bookkeeping state that the update logic
// should never produce: a count mismatch after a transfer, an ID owned by two
// collections, or a malformed index set. It always indicates a bug in the
// calling code rather than a recoverable runtime condition.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string { return e.Msg }

func invariantErrorf(format string, a ...interface{}) *InvariantError {
	return &InvariantError{ fmt.Sprintf(format, a...) }
}
