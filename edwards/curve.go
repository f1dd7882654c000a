// Package edwards implements the twisted Edwards group law, scalar
// arithmetic, and scalar multiplication for Ed25519, the one curve in
// this family spec.md section 1 registers.
//
// This generalizes the teacher library's Jacobian-Weierstrass [wei.Curve]
// shape (comb-table base-point multiplication, 4-bit windowed variable
// point multiplication, a constant-time [Curve]/Point API) to extended
// twisted-Edwards coordinates, using internal/edfe's radix-51 field
// (grounded on filippo.io/edwards25519's field.Element) in place of
// internal/montfield for the curve's own field, and the unified
// Hisil-Wong-Carter-Dawson addition/doubling formulas spec.md section
// 4.4 names in place of wei's Jacobian Weierstrass group law.
package edwards

import (
	"go.eccore.dev/eccore/internal/curveparams"
	"go.eccore.dev/eccore/internal/edfe"
	"go.eccore.dev/eccore/internal/montfield"
)

// Curve bundles a twisted Edwards curve's field constants, scalar
// modulus, and base point. Immutable once built by [newCurve] and safe
// for concurrent use; the module registers exactly one instance, [Ed25519].
type Curve struct {
	Name string

	scalar *montfield.Modulus // bound to L

	a, d  *edfe.Element
	twoD  *edfe.Element // 2*d, precomputed for Point.Add's hwcd-3 formula
	bx, by *edfe.Element

	baseTable []affineTableEntry
}

// Ed25519 is the registered Ed25519 curve context.
var Ed25519 = newCurve(curveparams.Ed25519)

func newCurve(p *curveparams.EdwardsParams) *Curve {
	scalarBytes := bigBytesPadded(p.L, 32)
	scalar := montfield.NewModulus(scalarBytes)

	c := &Curve{
		Name:   "Ed25519",
		scalar: scalar,
		a:      feFromBig(p.A),
		d:      feFromBig(p.D),
		by:     feFromBig(p.By),
	}
	c.twoD = new(edfe.Element).Add(c.d, c.d)

	// Recover Bx from By via the same isqrt used for point decoding:
	// a*x^2 + y^2 = 1 + d*x^2*y^2  =>  x^2 = (y^2-1)/(d*y^2-a).
	y2 := new(edfe.Element).Square(c.by)
	u := new(edfe.Element).Subtract(y2, new(edfe.Element).One())
	v := new(edfe.Element).Multiply(c.d, y2)
	v.Subtract(v, c.a)
	x, _ := new(edfe.Element).Isqrt(u, v)
	// Canonical encoding picks the non-negative (even) square root for
	// the base point, matching RFC 8032's published generator.
	negX := new(edfe.Element).Negate(x)
	x.ConditionalSelect(x, negX, x.IsOdd())
	c.bx = x

	c.buildBaseTable()

	return c
}

func bigBytesPadded(v interface{ Bytes() []byte }, width int) []byte {
	raw := v.Bytes()
	if len(raw) >= width {
		return raw
	}
	padded := make([]byte, width)
	copy(padded[width-len(raw):], raw)
	return padded
}

func feFromBig(v interface{ Bytes() []byte }) *edfe.Element {
	raw := bigBytesPadded(v, 32)
	// edfe.Element.SetBytes expects a little-endian 32-byte string;
	// curveparams stores big-endian big.Int encodings.
	le := make([]byte, 32)
	for i, b := range raw {
		le[31-i] = b
	}
	return new(edfe.Element).SetBytes(le)
}

// ScalarModulus returns L, Ed25519's group order.
func (c *Curve) ScalarModulus() *montfield.Modulus { return c.scalar }
