package wei

// This file implements spec.md section 4.5's three scalar-multiplication
// routines -- mul_g (ScalarBaseMult), mul (ScalarMult), and
// mul_double_var (MulDoubleVartime) -- generalizing
// internal/legacyref/point_mul.go's single-curve, 4-bit-window
// implementation to any registered [Curve], plus secp256k1's GLV
// endomorphism split from internal/legacyref/point_mul_glv.go.

// buildBaseTable precomputes one affineTableEntry per nibble (4-bit)
// position of the scalar field's byte width: position 0 holds
// {0..15}*G, position 1 holds {0..15}*(16*G), and so on up to the most
// significant nibble. This is the fixed-base comb table spec.md section
// 4.5 calls for (window width 4); SPEC_FULL.md section 4.5 documents the
// choice of one independent table per nibble position, built once at
// package init by repeated doubling of the base point, over a true
// bit-interleaved comb, as the simpler of the two constructions spec.md
// section 9 sanctions ("shipping precomputed tables... is acceptable").
func (c *Curve) buildBaseTable() {
	nibbles := 2 * c.ScalarSize()

	g := c.newRcvr().Generator()
	c.baseTable = make([]affineTableEntry, nibbles)
	c.baseTable[0] = buildTable(g)

	pos := c.newRcvr().Set(g)
	for i := 1; i < nibbles; i++ {
		pos = c.newRcvr().Double(pos)
		pos = c.newRcvr().Double(pos)
		pos = c.newRcvr().Double(pos)
		pos = c.newRcvr().Double(pos)
		c.baseTable[i] = buildTable(pos)
	}
}

// ScalarBaseMult sets v = s*G and returns v, in constant time.
func (v *Point) ScalarBaseMult(s *Scalar) *Point {
	return v.scalarBaseMult(s, false)
}

// ScalarBaseMultVartime sets v = s*G and returns v, in variable time.
// Restricted to callers operating on public scalars (ephemeral-key
// generation during testing, or batched precomputation); signing must
// use [Point.ScalarBaseMult].
func (v *Point) ScalarBaseMultVartime(s *Scalar) *Point {
	return v.scalarBaseMult(s, true)
}

func (v *Point) scalarBaseMult(s *Scalar, vartime bool) *Point {
	c := s.curve
	tbl := c.baseTable
	v.curve = c
	v.Identity()

	// Sign-blinding (spec.md section 5): the constant-time path walks
	// the comb table on s+r instead of s, then removes the precomputed
	// r*G offset at the end. r*G is itself the product of the scalar
	// modulus's group structure, so (s+r mod n)*G - r*G == s*G exactly,
	// regardless of whether s+r wrapped around n.
	walked := s
	var unblind *Point
	if !vartime {
		c.ensureBlind()
		walked = c.NewScalar().Add(s, c.blind.r)
		unblind = c.blind.rG
	}

	idx := len(tbl) - 1
	for _, b := range walked.Bytes() {
		hi, lo := uint64(b>>4), uint64(b&0xf)
		if vartime {
			v.Add(v, tbl[idx].selectEntryVartime(hi))
			idx--
			v.Add(v, tbl[idx].selectEntryVartime(lo))
			idx--
			continue
		}
		v.Add(v, tbl[idx].selectEntry(c, hi))
		idx--
		v.Add(v, tbl[idx].selectEntry(c, lo))
		idx--
	}
	if unblind != nil {
		v.Subtract(v, unblind)
	}
	return v
}

// ScalarMult sets v = s*p and returns v, in constant time, via a 4-bit
// windowed ladder built fresh from p on every call.
func (v *Point) ScalarMult(s *Scalar, p *Point) *Point {
	return v.scalarMult(s, p, false)
}

// ScalarMultVartime sets v = s*p and returns v, in variable time.
// Restricted to public-data call sites (verification, public-key
// recovery candidates).
func (v *Point) ScalarMultVartime(s *Scalar, p *Point) *Point {
	return v.scalarMult(s, p, true)
}

func (v *Point) scalarMult(s *Scalar, p *Point, vartime bool) *Point {
	tbl := buildTable(p)
	c := p.curve
	v.curve = c
	v.Identity()

	for i, b := range s.Bytes() {
		if i != 0 {
			v.Double(v)
			v.Double(v)
			v.Double(v)
			v.Double(v)
		}
		hi, lo := uint64(b>>4), uint64(b&0xf)
		if vartime {
			v.Add(v, tbl.selectEntryVartime(hi))
			v.Double(v)
			v.Double(v)
			v.Double(v)
			v.Double(v)
			v.Add(v, tbl.selectEntryVartime(lo))
			continue
		}
		v.Add(v, tbl.selectEntry(c, hi))
		v.Double(v)
		v.Double(v)
		v.Double(v)
		v.Double(v)
		v.Add(v, tbl.selectEntry(c, lo))
	}
	return v
}

// MulDoubleVartime sets v = k1*G + k2*p and returns v, in variable time.
// This is the ECDSA verification hot path; spec.md section 4.5
// allows either the Joint Sparse Form or Shamir's trick for this -- this
// implementation uses Shamir's trick with a 2-bit joint index (precompute
// {O, p, G, G+p}, consume 1 bit of each scalar per step), the simpler of
// the two sanctioned alternatives. On a curve with an endomorphism
// (secp256k1) it takes the GLV path in [Point.mulDoubleVartimeGLV].
func (v *Point) MulDoubleVartime(k1 *Scalar, k2 *Scalar, p *Point) *Point {
	c := p.curve
	if c.endomorphism != nil {
		return v.mulDoubleVartimeGLV(k1, k2, p)
	}

	g := c.newRcvr().Generator()
	gp := c.newRcvr().Add(g, p)
	// tbl[2*b1+b0] = b1*G + b0*p.
	tbl := [4]*Point{c.NewPoint(), p, g, gp}

	bits1, bits0 := k1.bitsMSBFirst(), k2.bitsMSBFirst()
	v.curve = c
	v.Identity()
	for i := range bits1 {
		v.Double(v)
		idx := (bits1[i] << 1) | bits0[i]
		if idx != 0 {
			v.Add(v, tbl[idx])
		}
	}
	return v
}

// bitsMSBFirst returns s's bits, most significant first, each bit padded
// to the scalar modulus's full bit width so that two scalars' bit slices
// can be zipped together positionally by [Point.MulDoubleVartime].
func (s *Scalar) bitsMSBFirst() []uint64 {
	raw := s.Bytes()
	bitLen := 8 * len(raw)
	out := make([]uint64, bitLen)
	for i, b := range raw {
		for j := 0; j < 8; j++ {
			out[8*i+j] = uint64((b >> (7 - j)) & 1)
		}
	}
	return out
}

// mulDoubleVartimeGLV extends Shamir's trick to four scalars after
// splitting both k1 (against G) and k2 (against p) via the secp256k1
// endomorphism, exactly as internal/legacyref/point_mul_glv.go's
// scalarMultVartimeGLV does for a single scalar-point pair, applied here
// to both terms of the double multiplication.
func (v *Point) mulDoubleVartimeGLV(k1, k2 *Scalar, p *Point) *Point {
	c := p.curve
	g := c.newRcvr().Generator()

	g1, g2 := c.glvSplitVartime(k1, g)
	p1, p2 := c.glvSplitVartime(k2, p)

	// Shamir's trick over four scalar-point pairs using a 16-entry
	// table indexed by the joint 4-bit window (one bit per pair).
	bases := [4]*Point{g1.base, g2.base, p1.base, p2.base}
	scalars := [4]*Scalar{g1.scalar, g2.scalar, p1.scalar, p2.scalar}

	var tbl [16]*Point
	tbl[0] = c.NewPoint()
	for mask := 1; mask < 16; mask++ {
		lsb := mask & -mask
		bit := 0
		for lsb>>uint(bit) != 1 {
			bit++
		}
		tbl[mask] = c.newRcvr().Add(tbl[mask^lsb], bases[bit])
	}

	bitLists := [4][]uint64{
		scalars[0].bitsMSBFirst(),
		scalars[1].bitsMSBFirst(),
		scalars[2].bitsMSBFirst(),
		scalars[3].bitsMSBFirst(),
	}

	v.curve = c
	v.Identity()
	for i := range bitLists[0] {
		v.Double(v)
		idx := bitLists[0][i] | (bitLists[1][i] << 1) | (bitLists[2][i] << 2) | (bitLists[3][i] << 3)
		if idx != 0 {
			v.Add(v, tbl[idx])
		}
	}
	return v
}

// splitPoint bundles a GLV sub-scalar with the (possibly negated) point
// it multiplies, both already sign-adjusted to the shorter
// representative by glvSplitVartime.
type splitPoint struct {
	scalar *Scalar
	base   *Point
}

// glvSplitVartime decomposes k*p into k1*p + k2*(beta*p) following
// internal/legacyref/point_mul_glv.go's splitVartime, generalized to any
// Curve carrying a non-nil endomorphism (only secp256k1, in this
// module's registry). Returns the two sub-scalar/point pairs, each
// negated together when the sub-scalar's canonical representative
// exceeds n/2, to keep the bit length (and therefore the Shamir's-trick
// loop count) minimal.
func (c *Curve) glvSplitVartime(k *Scalar, p *Point) (splitPoint, splitPoint) {
	e := c.endomorphism

	pPrime := c.newRcvr()
	pPrime.x.Multiply(p.x, e.beta)
	pPrime.y.Set(p.y)
	pPrime.z.Set(p.z)
	pPrime.isValid = p.isValid

	k1, k2 := c.splitScalarVartime(k)

	p1 := c.newRcvr().Set(p)
	if k1.IsGreaterThanHalfN() == 1 {
		k1.Negate(k1)
		p1.Negate(p1)
	}
	if k2.IsGreaterThanHalfN() == 1 {
		k2.Negate(k2)
		pPrime.Negate(pPrime)
	}

	return splitPoint{k1, p1}, splitPoint{k2, pPrime}
}

// splitScalarVartime computes (k1, k2) such that k = k1 + k2*lambda mod n,
// via internal/legacyref/point_mul_glv.go's balanced-length-two
// representation (Hankerson-Menezes-Vanstone, Algorithm 3.74), using the
// curve's precomputed lattice-basis constants. Runs in variable time over
// math/big, matching the teacher's own vartime label for this step.
func (c *Curve) splitScalarVartime(k *Scalar) (*Scalar, *Scalar) {
	e := c.endomorphism

	kBig := bigFromScalar(k)
	c1 := bigDiv(mulBig(bigFromElement(e.b2), kBig), c.scalarModulusBig())
	c2 := bigDiv(mulBig(bigFromElement(e.negB1), kBig), c.scalarModulusBig())

	k2 := c.NewScalar().Multiply(scalarFromBig(c, c1), &Scalar{curve: c, e: e.negB1})
	tmp := c.NewScalar().Multiply(scalarFromBig(c, c2), &Scalar{curve: c, e: e.negB2})
	k2.Add(k2, tmp)

	k1 := c.NewScalar().Multiply(k2, &Scalar{curve: c, e: e.negLambda})
	k1.Add(k, k1)

	return k1, k2
}
