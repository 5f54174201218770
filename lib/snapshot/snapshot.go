/*package snapshot writes and reads compressed checkpoints of the particle
collections. A snapshot stores the full attribute record of every particle in
every role, so a simulation restored from one continues with identical
bookkeeping state. The on-disk format is a small fixed header followed by one
zstd-compressed block per role, all little-endian.*/
package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/DataDog/zstd"

	"github.com/phil-mansfield/sphgate/lib/particles"
)

const (
	// MagicNumber is an arbitrary number at the start of all snapshot files
	// which should help identify when the code is run on something else by
	// accident.
	MagicNumber = 0xf100dba7
	Version     = 1

	compressionLevel = 1
)

var byteOrder = binary.LittleEndian

// Header describes a snapshot without its particle data.
type Header struct {
	Step int64
	T    float64
	N    [particles.NumRoles]int64
}

// Write stores every collection in reg to fname, along with the step count
// and simulation time it was taken at.
func Write(fname string, reg *particles.Registry, step int, t float64) error {
	f, err := os.Create(fname)
	if err != nil { return err }
	defer f.Close()

	hd := Header{ Step: int64(step), T: t }
	for r := particles.Role(0); r < particles.NumRoles; r++ {
		hd.N[r] = int64(reg.Array(r).Len())
	}

	if err := binary.Write(f, byteOrder, uint32(MagicNumber)); err != nil {
		return err
	}
	if err := binary.Write(f, byteOrder, uint32(Version)); err != nil {
		return err
	}
	if err := binary.Write(f, byteOrder, &hd); err != nil { return err }

	for r := particles.Role(0); r < particles.NumRoles; r++ {
		block, err := roleBlock(reg.Array(r))
		if err != nil { return err }

		comp, err := zstd.CompressLevel(nil, block, compressionLevel)
		if err != nil { return err }

		if err := binary.Write(f, byteOrder, int64(len(comp))); err != nil {
			return err
		}
		if _, err := f.Write(comp); err != nil { return err }
	}

	return nil
}

// Read restores the collections stored in fname into a fresh Registry. The
// registry's ID source is advanced past every restored ID, so particles
// created after a restart never collide with checkpointed ones.
func Read(fname string) (*particles.Registry, Header, error) {
	hd := Header{ }

	b, err := ioutil.ReadFile(fname)
	if err != nil { return nil, hd, err }
	rd := bytes.NewReader(b)

	var magic, version uint32
	if err := binary.Read(rd, byteOrder, &magic); err != nil {
		return nil, hd, err
	}
	if magic != MagicNumber {
		return nil, hd, fmt.Errorf(
			"%s is not a snapshot file: magic number is 0x%x, not 0x%x.",
			fname, magic, uint32(MagicNumber),
		)
	}
	if err := binary.Read(rd, byteOrder, &version); err != nil {
		return nil, hd, err
	}
	if version != Version {
		return nil, hd, fmt.Errorf(
			"%s has snapshot version %d, but this code reads version %d.",
			fname, version, Version,
		)
	}
	if err := binary.Read(rd, byteOrder, &hd); err != nil {
		return nil, hd, err
	}

	reg := particles.NewRegistry()
	for r := particles.Role(0); r < particles.NumRoles; r++ {
		var compLen int64
		if err := binary.Read(rd, byteOrder, &compLen); err != nil {
			return nil, hd, err
		}

		comp := make([]byte, compLen)
		if _, err := io.ReadFull(rd, comp); err != nil { return nil, hd, err }

		block, err := zstd.Decompress(nil, comp)
		if err != nil { return nil, hd, err }

		err = restoreRole(reg, r, int(hd.N[r]), block)
		if err != nil { return nil, hd, err }
	}

	return reg, hd, nil
}

// roleBlock serialises one collection into a raw byte block: IDs, flattened
// positions, flattened velocities, then the scalar fields.
func roleBlock(ar *particles.Array) ([]byte, error) {
	buf := &bytes.Buffer{ }

	if err := binary.Write(buf, byteOrder, ar.IDs()); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, byteOrder, flatten(ar.X())); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, byteOrder, flatten(ar.V())); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, byteOrder, ar.M()); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, byteOrder, ar.H()); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, byteOrder, ar.Rho()); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// restoreRole parses a raw role block and appends its particles to reg.
func restoreRole(
	reg *particles.Registry, r particles.Role, n int, block []byte,
) error {
	want := n * (8 + 3*8 + 3*8 + 8 + 8 + 8)
	if len(block) != want {
		return fmt.Errorf(
			"The '%s' block holds %d bytes, but %d particles need %d.",
			r, len(block), n, want,
		)
	}
	rd := bytes.NewReader(block)

	id := make([]uint64, n)
	x, v := make([]float64, 3*n), make([]float64, 3*n)
	m, h, rho := make([]float64, n), make([]float64, n), make([]float64, n)
	for _, dst := range []interface{}{ id, x, v, m, h, rho } {
		if err := binary.Read(rd, byteOrder, dst); err != nil { return err }
	}

	for i := 0; i < n; i++ {
		reg.Restore(r, particles.Particle{
			ID: id[i],
			X:  [3]float64{ x[3*i], x[3*i+1], x[3*i+2] },
			V:  [3]float64{ v[3*i], v[3*i+1], v[3*i+2] },
			M:  m[i], H: h[i], Rho: rho[i],
		})
	}

	return nil
}

// flatten unpacks vectors into a scalar array, since encoding/binary writes
// primitive slices without reflection overhead.
func flatten(x [][3]float64) []float64 {
	out := make([]float64, 3*len(x))
	for i := range x {
		out[3*i], out[3*i+1], out[3*i+2] = x[i][0], x[i][1], x[i][2]
	}
	return out
}
