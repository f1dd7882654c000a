package edwards

// affineTableEntry holds the 16 multiples {0*base, 1*base, ..., 15*base}
// of some base point, the same nibble-indexed table wei/table.go uses for
// Weierstrass curves, reused here verbatim for Ed25519's single extended
// twisted-Edwards point type.
type affineTableEntry [16]*Point

// buildTable computes the 16 multiples of base, 0*base..15*base, via
// repeated addition. Only ever called on a public base point (the
// generator, one of its comb positions, or the peer public key a
// verifier multiplies by); the nibble used to select from the finished
// table is what must stay secret, and selectEntry is the constant-time
// primitive that enforces that.
func buildTable(base *Point) affineTableEntry {
	var tbl affineTableEntry
	tbl[0] = base.curve.NewPoint()
	tbl[1] = base.curve.NewPoint().Set(base)
	for i := 2; i < 16; i++ {
		tbl[i] = base.curve.NewPoint().Add(tbl[i-1], base)
	}
	return tbl
}

// selectEntry returns the table entry at idx (0-15) via a constant-time,
// fixed-iteration masked select over every entry.
func (tbl *affineTableEntry) selectEntry(c *Curve, idx uint64) *Point {
	result := c.NewPoint()
	for i := uint64(0); i < 16; i++ {
		result.ConditionalSelect(result, tbl[i], ctrlEqual(idx, i))
	}
	return result
}

// selectEntryVartime is the variable-time counterpart used only by the
// *Vartime entry points, where idx is derived from public data.
func (tbl *affineTableEntry) selectEntryVartime(idx uint64) *Point {
	return tbl[idx]
}

// ctrlEqual returns 1 iff a == b, 0 otherwise, as a constant-time mask.
func ctrlEqual(a, b uint64) uint64 {
	d := a ^ b
	return 1 &^ (((d | -d) >> 63) & 1)
}

// buildBaseTable precomputes one affineTableEntry per nibble position of
// the scalar field's byte width, mirroring wei's buildBaseTable: position
// 0 holds {0..15}*B, position 1 holds {0..15}*(16*B), and so on. Built
// once at package init by repeated doubling of the base point.
func (c *Curve) buildBaseTable() {
	nibbles := 2 * c.ScalarSize()

	b := c.NewPoint().Generator()
	c.baseTable = make([]affineTableEntry, nibbles)
	c.baseTable[0] = buildTable(b)

	pos := c.NewPoint().Set(b)
	for i := 1; i < nibbles; i++ {
		pos = c.NewPoint().Double(pos)
		pos = c.NewPoint().Double(pos)
		pos = c.NewPoint().Double(pos)
		pos = c.NewPoint().Double(pos)
		c.baseTable[i] = buildTable(pos)
	}
}
