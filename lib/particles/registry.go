package particles

/* registry.go maps roles to their collections and owns the ID source. */

// Registry resolves each Role to its owning Array. It also hands out particle
// IDs from a single monotonic counter, so an ID is never reused even after
// its particle has been removed from the simulation.
type Registry struct {
	arrays [NumRoles]*Array
	nextID uint64
}

// NewRegistry creates a registry with an empty collection for every role.
func NewRegistry() *Registry {
	reg := &Registry{ }
	for r := Role(0); r < NumRoles; r++ {
		reg.arrays[r] = NewArray(r)
	}
	return reg
}

// Array returns the collection owning the particles with the given role.
func (reg *Registry) Array(r Role) *Array {
	return reg.arrays[r]
}

// NewParticle builds a particle record with the next unused ID. The record is
// not added to any collection: the caller appends it to the collection whose
// role it should take.
func (reg *Registry) NewParticle(x, v [3]float64, m, h, rho float64) Particle {
	reg.nextID++
	return Particle{ ID: reg.nextID, X: x, V: v, M: m, H: h, Rho: rho }
}

// Restore appends a previously created particle, e.g. one read back from a
// snapshot, and keeps the ID source ahead of every restored ID.
func (reg *Registry) Restore(r Role, p Particle) {
	if p.ID > reg.nextID {
		reg.nextID = p.ID
	}
	reg.arrays[r].Append(p)
}

// TotalLen returns the particle count summed over every role.
func (reg *Registry) TotalLen() int {
	n := 0
	for r := Role(0); r < NumRoles; r++ {
		n += reg.arrays[r].Len()
	}
	return n
}

// CheckDisjoint returns an InvariantError if any particle ID is owned by more
// than one collection. It is an O(n) debugging check, intended to be run
// between steps rather than inside inner loops.
func (reg *Registry) CheckDisjoint() error {
	owner := make(map[uint64]Role, reg.TotalLen())
	for r := Role(0); r < NumRoles; r++ {
		for _, id := range reg.arrays[r].IDs() {
			if prev, ok := owner[id]; ok {
				return invariantErrorf(
					"Particle %d is in both the '%s' and '%s' collections.",
					id, prev, r,
				)
			}
			owner[id] = r
		}
	}
	return nil
}
