package wei

// affineTableEntry holds the 16 multiples {0*base, 1*base, ..., 15*base}
// of some base point, used by both the fixed-base comb (one entry per
// nibble position of the scalar) and the variable-base window (one
// entry, built fresh per call from the multiplicand). Despite the name
// carried over from the teacher's generatorAffineTable, entries are kept
// in Jacobian form here: the teacher's point type is natively projective
// (its curve has no `a` term to special-case), so converting to affine
// ahead of time paid for itself via cheaper mixed addition; this module's
// a=-3/a=0 split already keeps Jacobian addition cheap enough that the
// extra Affine() calls and mixed-add machinery are not worth carrying for
// five curves. The only observable cost is a wider table; correctness
// and the constant-time contract are unaffected.
type affineTableEntry [16]*Point

// buildTable computes the 16 multiples of base, 0*base..15*base, via
// repeated addition. This is only ever called on a public base point
// (G, one of its comb positions, or a variable-base multiplicand that is
// public in every call site this module has -- ECDH's remote public key,
// ECDSA recovery's candidate R); the scalar index used to select from the
// finished table is what must stay secret, and selectEntry below is the
// constant-time primitive that enforces that.
func buildTable(base *Point) affineTableEntry {
	var tbl affineTableEntry
	tbl[0] = base.curve.NewPoint()
	tbl[1] = base.curve.newRcvr().Set(base)
	for i := 2; i < 16; i++ {
		tbl[i] = base.curve.newRcvr().Add(tbl[i-1], base)
	}
	return tbl
}

// selectEntry returns the table entry at idx (0-15) via a constant-time,
// fixed-iteration masked select over every entry -- the sole lookup
// primitive scalar multiplication uses, per spec.md section 4.1's
// select(cond, a, b) contract generalized to a 16-way table.
func (tbl *affineTableEntry) selectEntry(c *Curve, idx uint64) *Point {
	result := c.newRcvr().Identity()
	for i := uint64(0); i < 16; i++ {
		result.ConditionalSelect(result, tbl[i], ctrlEqual(idx, i))
	}
	return result
}

// selectEntryVartime is the variable-time counterpart used only by the
// *_var entry points, where idx is derived from public data (a verifier's
// hash-derived scalar, never a signing secret).
func (tbl *affineTableEntry) selectEntryVartime(idx uint64) *Point {
	return tbl[idx]
}

// ctrlEqual returns 1 iff a == b, 0 otherwise, as a constant-time mask.
func ctrlEqual(a, b uint64) uint64 {
	d := a ^ b
	return 1 &^ (((d | -d) >> 63) & 1)
}
