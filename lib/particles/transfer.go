package particles

/* transfer.go contains the role-transfer primitive shared by the inlet and
outlet managers. */

// Transfer moves the particles at the given indices from src to dst. The
// selected records are appended to dst in their original relative order and
// then removed from src with compaction, so the two collection sizes change
// by the same amount and no attribute is lost or duplicated.
//
// All validation happens before the first mutation: if Transfer returns a
// non-nil error because of a bad index set, neither collection has been
// touched. A count mismatch after the move returns an InvariantError, which
// indicates a bug rather than a recoverable condition.
//
// idx must be sorted in increasing order without duplicates.
func Transfer(src, dst *Array, idx []int) error {
	if src == dst {
		return invariantErrorf(
			"Transfer source and destination are the same '%s' collection.",
			src.Role(),
		)
	}
	if err := checkIndices(idx, src.Len()); err != nil { return err }

	nSrc, nDst := src.Len(), dst.Len()

	for _, i := range idx {
		dst.Append(src.At(i))
	}
	// Cannot fail: idx was validated above and src hasn't changed size.
	if err := src.Remove(idx); err != nil { return err }

	if src.Len()+dst.Len() != nSrc+nDst {
		return invariantErrorf(
			"Transfer of %d particles from '%s' to '%s' changed the total "+
				"count from %d to %d.",
			len(idx), src.Role(), dst.Role(),
			nSrc+nDst, src.Len()+dst.Len(),
		)
	}

	return nil
}
