package snapshot

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/phil-mansfield/sphgate/lib/eq"
	"github.com/phil-mansfield/sphgate/lib/particles"
)

func TestWriteReadRoundTrip(t *testing.T) {
	reg := particles.NewRegistry()
	for i := 0; i < 7; i++ {
		p := reg.NewParticle(
			[3]float64{ float64(i) * 0.25, 1, 0 },
			[3]float64{ 0.25, 0, 0 }, 0.125, 0.1875, 1.0,
		)
		reg.Array(particles.RoleInlet).Append(p)
	}
	for i := 0; i < 3; i++ {
		p := reg.NewParticle(
			[3]float64{ 0.5, float64(i), 0 }, [3]float64{ 0.25, 0, 0 },
			0.125, 0.1875, 1.0,
		)
		reg.Array(particles.RoleFluid).Append(p)
	}
	// The outlet collection stays empty: empty blocks must round-trip too.

	fname := filepath.Join(t.TempDir(), "snap_000042.sgp")
	if err := Write(fname, reg, 42, 2.625); err != nil {
		t.Fatalf("Write failed: %s", err.Error())
	}

	reg2, hd, err := Read(fname)
	if err != nil {
		t.Fatalf("Read failed: %s", err.Error())
	}

	if hd.Step != 42 || hd.T != 2.625 {
		t.Errorf("Expected header step 42 at t = 2.625, got %d at %g.",
			hd.Step, hd.T)
	}

	for r := particles.Role(0); r < particles.NumRoles; r++ {
		ar, ar2 := reg.Array(r), reg2.Array(r)
		if int64(ar.Len()) != hd.N[r] {
			t.Errorf("Expected %d '%s' particles in the header, got %d.",
				ar.Len(), r, hd.N[r])
		}
		if !eq.Uint64s(ar.IDs(), ar2.IDs()) {
			t.Errorf("'%s' IDs changed: %v -> %v.", r, ar.IDs(), ar2.IDs())
		}
		if !eq.Vec64s(ar.X(), ar2.X()) || !eq.Vec64s(ar.V(), ar2.V()) {
			t.Errorf("'%s' positions or velocities changed.", r)
		}
		if !eq.Float64s(ar.M(), ar2.M()) || !eq.Float64s(ar.H(), ar2.H()) ||
			!eq.Float64s(ar.Rho(), ar2.Rho()) {
			t.Errorf("'%s' scalar attributes changed.", r)
		}
	}

	// The restored registry must hand out IDs beyond the checkpointed ones.
	p := reg2.NewParticle([3]float64{ }, [3]float64{ }, 0.125, 0.1875, 1.0)
	if p.ID <= 10 {
		t.Errorf("Expected a fresh ID above 10 after the restore, got %d.",
			p.ID)
	}
}

func TestReadRejectsForeignFiles(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "not_a_snapshot")
	err := ioutil.WriteFile(
		fname, []byte("definitely not a snapshot file"), 0644,
	)
	if err != nil {
		t.Fatal(err.Error())
	}

	if _, _, err := Read(fname); err == nil {
		t.Errorf("Expected Read to reject a file without the magic number.")
	}
}
