package montfield

import "math/big"

// SqrtMethod selects which square root algorithm a [Modulus] uses. It is
// a property of the prime, fixed at curve-registration time -- never a
// runtime decision based on secret data.
type SqrtMethod int

const (
	// SqrtMethod3Mod4 uses the x^((p+1)/4) shortcut, valid when p = 4k+3.
	// P-256, P-384, P-521, and secp256k1 all satisfy this.
	SqrtMethod3Mod4 SqrtMethod = iota
	// SqrtMethodTonelliShanks is the general algorithm, needed whenever
	// p = 4k+1. Among the curves this module supports, only P-224's
	// prime has this form (see SPEC_FULL.md section 9, open question 4).
	SqrtMethodTonelliShanks
)

// sqrtParams caches what Tonelli-Shanks needs: p-1 = q * 2^s with q odd,
// plus a fixed non-residue z and z^q (only populated for
// SqrtMethodTonelliShanks moduli).
type sqrtParams struct {
	method  SqrtMethod
	exp3mod4 *big.Int // (p+1)/4, used by SqrtMethod3Mod4
	q        *big.Int // odd part of p-1
	s        uint     // p-1 = q * 2^s
	zq       *Element // a fixed quadratic non-residue raised to q
}

// SetSqrtMethod finalizes the square root strategy for m. It MUST be
// called once, after [NewModulus], before any [Element.Sqrt] call on
// elements bound to m. nonResidue is only consulted (and MUST be a
// quadratic non-residue mod m) when method is SqrtMethodTonelliShanks.
func (m *Modulus) SetSqrtMethod(method SqrtMethod, nonResidue int64) {
	sp := &sqrtParams{method: method}
	switch method {
	case SqrtMethod3Mod4:
		sp.exp3mod4 = new(big.Int).Rsh(new(big.Int).Add(m.bigN, big.NewInt(1)), 2)
	case SqrtMethodTonelliShanks:
		pMinus1 := new(big.Int).Sub(m.bigN, big.NewInt(1))
		s := uint(0)
		q := new(big.Int).Set(pMinus1)
		for q.Bit(0) == 0 {
			q.Rsh(q, 1)
			s++
		}
		sp.q, sp.s = q, s

		z := m.NewElement()
		zBytes := make([]byte, m.ByteLen())
		big.NewInt(nonResidue).FillBytes(zBytes)
		pad := make([]byte, 8*m.k-len(zBytes))
		z.mod = m
		_ = m.SetCanonicalBytes(z, append(pad, zBytes...))
		sp.zq = m.NewElement().PowPublic(z, q)
	default:
		panic("montfield: unknown sqrt method")
	}
	m.sqrt = sp
}

// Sqrt sets fe = sqrt(a) and returns 1 iff a is a quadratic residue
// (i.e. a square root exists), 0 otherwise (in which case fe is set to
// zero). The returned root, when it exists, is not sign-normalized; the
// caller (ECDSA point decompression, EdDSA decoding) is responsible for
// any parity tie-break, per spec.md section 4.1.
func (fe *Element) Sqrt(a *Element) (*Element, uint64) {
	sp := a.mod.sqrt
	if sp == nil {
		panic("montfield: SetSqrtMethod was never called for this modulus")
	}

	var root *Element
	switch sp.method {
	case SqrtMethod3Mod4:
		root = a.mod.NewElement().PowPublic(a, sp.exp3mod4)
	default:
		root = tonelliShanks(a, sp)
	}

	check := a.mod.NewElement().Square(root)
	isSquare := check.Equal(a)

	zero := a.mod.NewElement().Zero()
	fe.ConditionalSelect(zero, root, isSquare)
	return fe, isSquare
}

// tonelliShanks is the textbook Tonelli-Shanks algorithm. It runs in
// variable time in the number of algorithm iterations (bounded by s, a
// public per-curve constant -- P-224 is the only modulus this applies
// to, and only ever for point decompression of public data), matching
// the "verified by squaring" pattern spec.md section 4.1 describes for
// the p = 1 mod 4 case.
func tonelliShanks(a *Element, sp *sqrtParams) *Element {
	mod := a.mod
	m := sp.s
	c := mod.NewElement().Set(sp.zq)
	t := mod.NewElement().PowPublic(a, sp.q)
	r := mod.NewElement().PowPublic(a, new(big.Int).Rsh(new(big.Int).Add(sp.q, big.NewInt(1)), 1))

	one := mod.NewElement().One()
	for t.Equal(one) == 0 {
		// Find the least i, 0 < i < m, such that t^(2^i) == 1.
		i := uint(0)
		tt := mod.NewElement().Set(t)
		for tt.Equal(one) == 0 && i < m {
			tt.Square(tt)
			i++
		}
		if i == m {
			// No such i: a is zero or a non-residue. Sqrt's squaring
			// check rejects (or, for zero, accepts) the returned r.
			break
		}

		b := mod.NewElement().Set(c)
		for j := uint(0); j < m-i-1; j++ {
			b.Square(b)
		}

		m = i
		c.Square(b)
		t.Multiply(t, c)
		r.Multiply(r, b)
	}
	return r
}
