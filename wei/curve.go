// Package wei implements the short-Weierstrass group law, scalar
// multiplication, and scalar/point serialization shared by the five
// curves this module's ECDSA package supports: P-224, P-256, P-384,
// P-521, and secp256k1.
//
// This generalizes the teacher library's single hard-coded secp256k1
// curve (gitlab.com/yawning/secp256k1-voi.git's root package) into a
// [Curve] value parameterized
// by [curveparams.WeierstrassParams], while keeping its Jacobian-point
// API shape (Identity/Generator/Add/Double/ScalarMult/ScalarBaseMult)
// and its GLV-accelerated double-scalar multiply for the one curve
// (secp256k1) that has an efficient endomorphism.
package wei

import (
	"math/big"

	"go.eccore.dev/eccore/internal/curveparams"
	"go.eccore.dev/eccore/internal/montfield"
)

// Curve bundles a short-Weierstrass curve's field, scalar field, and
// public parameters needed for group law, scalar multiplication, and
// point/scalar serialization. A Curve is immutable once built by
// [NewCurve] and safe for concurrent use, except that [Curve.Randomize]
// replaces its blinding pair.
type Curve struct {
	Name string

	field  *montfield.Modulus
	scalar *montfield.Modulus

	a, b    *montfield.Element // curve coefficients, in the field's domain
	aMinus3 bool

	gx, gy *montfield.Element

	endomorphism *glvParams

	baseTable []affineTableEntry

	// halfN is floor(n/2) as a big-endian byte string padded to the
	// scalar modulus's limb width, used by Scalar.IsGreaterThanHalfN.
	halfN []byte

	// blind holds the sign-blinding pair described in spec.md section 5,
	// seeded by [Curve.ensureBlind] in [NewCurve] and mutated afterwards
	// only by [Curve.Randomize].
	blind *blindState
}

// glvParams holds the secp256k1-only GLV lattice-basis constants,
// converted into the curve's own field/scalar Elements at registration
// time, grounded on point_mul_glv.go's negLambda/beta/negB1/b2/negB2.
// beta lives in the field; the rest are scalars (elements of the
// curve's scalar modulus), used by [Curve.glvSplitVartime].
type glvParams struct {
	beta      *montfield.Element
	negLambda *montfield.Element
	negB1     *montfield.Element
	b2        *montfield.Element
	negB2     *montfield.Element
}

// curves are the five registered curve instances, built once at package
// init from internal/curveparams.
var (
	P224      = NewCurve(curveparams.P224)
	P256      = NewCurve(curveparams.P256)
	P384      = NewCurve(curveparams.P384)
	P521      = NewCurve(curveparams.P521)
	Secp256k1 = NewCurve(curveparams.Secp256k1)
)

// NewCurve builds a [Curve] from its public parameters. This runs the
// handful of math/big and modular-inverse operations NewModulus/element
// construction need, and is intended to run once per curve at package
// init, never per-operation.
func NewCurve(p *curveparams.WeierstrassParams) *Curve {
	byteLen := (p.BitSize + 7) / 8
	limbLen := 8 * ((byteLen + 7) / 8)

	field := montfield.NewModulus(bigBytes(p.P, limbLen))
	scalar := montfield.NewModulus(bigBytes(p.N, limbLen))

	if p.TonelliShanks {
		field.SetSqrtMethod(montfield.SqrtMethodTonelliShanks, p.NonResidue)
	} else {
		field.SetSqrtMethod(montfield.SqrtMethod3Mod4, 0)
	}

	c := &Curve{
		Name:    p.Name,
		field:   field,
		scalar:  scalar,
		aMinus3: p.AMinus3,
	}

	c.a = feFromBig(field, p.A)
	c.b = feFromBig(field, p.B)
	c.gx = feFromBig(field, p.Gx)
	c.gy = feFromBig(field, p.Gy)

	if p.Endomorphism != nil {
		e := p.Endomorphism
		c.endomorphism = &glvParams{
			beta:      feFromBig(field, e.Beta),
			negLambda: feFromBig(scalar, e.NegLambda),
			negB1:     feFromBig(scalar, e.NegB1),
			b2:        feFromBig(scalar, e.B2),
			negB2:     feFromBig(scalar, e.NegB2),
		}
	}

	limbLenScalar := 8 * scalar.Limbs()
	halfNBig := new(big.Int).Rsh(p.N, 1)
	c.halfN = bigBytes(halfNBig, limbLenScalar)

	c.buildBaseTable()
	c.ensureBlind()

	return c
}

func bigBytes(v interface{ Bytes() []byte }, limbLen int) []byte {
	raw := v.Bytes()
	if len(raw) >= limbLen {
		return raw
	}
	padded := make([]byte, limbLen)
	copy(padded[limbLen-len(raw):], raw)
	return padded
}

func feFromBig(mod *montfield.Modulus, v interface{ Bytes() []byte }) *montfield.Element {
	limbLen := 8 * mod.Limbs()
	raw := v.Bytes()
	padded := make([]byte, limbLen)
	copy(padded[limbLen-len(raw):], raw)

	fe := mod.NewElement()
	mod.SetCanonicalBytes(fe, padded)
	return fe
}

// FieldModulus returns the curve's field modulus.
func (c *Curve) FieldModulus() *montfield.Modulus { return c.field }

// ScalarModulus returns the curve's scalar (group order) modulus.
func (c *Curve) ScalarModulus() *montfield.Modulus { return c.scalar }
