package edwards

// This file implements spec.md section 4.5's three scalar-multiplication
// routines for Ed25519, generalizing wei/mul.go's comb/window/Shamir's
// trick machinery from Jacobian Weierstrass points to extended
// twisted-Edwards points. Ed25519 has no efficient endomorphism, so
// there is no GLV split here -- only the plain (non-GLV) paths wei/mul.go
// also uses for its four NIST curves.

// ScalarBaseMult sets v = s*B and returns v, in constant time.
func (v *Point) ScalarBaseMult(s *Scalar) *Point {
	return v.scalarBaseMult(s, false)
}

// ScalarBaseMultVartime sets v = s*B and returns v, in variable time.
// Restricted to callers operating on public scalars.
func (v *Point) ScalarBaseMultVartime(s *Scalar) *Point {
	return v.scalarBaseMult(s, true)
}

func (v *Point) scalarBaseMult(s *Scalar, vartime bool) *Point {
	c := s.curve
	tbl := c.baseTable
	v.curve = c
	v.Identity()

	idx := len(tbl) - 1
	for _, b := range s.bytesBE() {
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
	return v
}

// ScalarMult sets v = s*p and returns v, in constant time, via a 4-bit
// windowed ladder built fresh from p on every call.
func (v *Point) ScalarMult(s *Scalar, p *Point) *Point {
	return v.scalarMult(s, p, false)
}

// ScalarMultVartime sets v = s*p and returns v, in variable time.
func (v *Point) ScalarMultVartime(s *Scalar, p *Point) *Point {
	return v.scalarMult(s, p, true)
}

func (v *Point) scalarMult(s *Scalar, p *Point, vartime bool) *Point {
	tbl := buildTable(p)
	c := p.curve
	v.curve = c
	v.Identity()

	for i, b := range s.bytesBE() {
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

// MulDoubleVartime sets v = k1*B + k2*p and returns v, in variable time.
// This is EdDSA verification's hot path (spec.md section 4.7: check
// [S]*B == R + [k]*pub), using the same 2-bit joint window Shamir's
// trick as wei.Point.MulDoubleVartime's non-GLV path.
func (v *Point) MulDoubleVartime(k1, k2 *Scalar, p *Point) *Point {
	c := p.curve

	b := c.NewPoint().Generator()
	bp := c.NewPoint().Add(b, p)
	// tbl[2*b1+b0] = b1*B + b0*p.
	tbl := [4]*Point{c.NewPoint(), p, b, bp}

	bits1, bits0 := bitsMSBFirst(k1), bitsMSBFirst(k2)
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

// bitsMSBFirst returns s's bits, most significant first, over the full
// scalar modulus bit width, matching wei.Scalar.bitsMSBFirst's zipping
// contract for MulDoubleVartime's joint window.
func bitsMSBFirst(s *Scalar) []uint64 {
	raw := s.bytesBE()
	bitLen := 8 * len(raw)
	out := make([]uint64, bitLen)
	for i, b := range raw {
		for j := 0; j < 8; j++ {
			out[8*i+j] = uint64((b >> (7 - j)) & 1)
		}
	}
	return out
}
