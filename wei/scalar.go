package wei

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"

	"go.eccore.dev/eccore/internal/disalloweq"
	"go.eccore.dev/eccore/internal/montfield"
	"go.eccore.dev/eccore/internal/mpn"
)

// Scalar is an integer modulo a curve's group order n. All arguments
// and receivers are allowed to alias. The zero value is NOT usable; use
// [Curve.NewScalar]. Grounded on internal/legacyref/scalar.go, with the
// fiat-crypto-generated field element replaced by a [montfield.Element]
// bound to the curve's scalar modulus.
type Scalar struct {
	curve *Curve
	e     *montfield.Element

	_ disalloweq.DisallowEqual
}

// NewScalar returns a new zero Scalar bound to c.
func (c *Curve) NewScalar() *Scalar {
	return &Scalar{curve: c, e: c.scalar.NewElement()}
}

// Zero sets s = 0 and returns s.
func (s *Scalar) Zero() *Scalar { s.e.Zero(); return s }

// One sets s = 1 and returns s.
func (s *Scalar) One() *Scalar { s.e.One(); return s }

// Set sets s = a and returns s.
func (s *Scalar) Set(a *Scalar) *Scalar {
	s.curve = a.curve
	s.e.Set(a.e)
	return s
}

// Add sets s = a + b and returns s.
func (s *Scalar) Add(a, b *Scalar) *Scalar { s.curve = a.curve; s.e.Add(a.e, b.e); return s }

// Subtract sets s = a - b and returns s.
func (s *Scalar) Subtract(a, b *Scalar) *Scalar { s.curve = a.curve; s.e.Subtract(a.e, b.e); return s }

// Negate sets s = -a and returns s.
func (s *Scalar) Negate(a *Scalar) *Scalar { s.curve = a.curve; s.e.Negate(a.e); return s }

// Multiply sets s = a * b and returns s.
func (s *Scalar) Multiply(a, b *Scalar) *Scalar { s.curve = a.curve; s.e.Multiply(a.e, b.e); return s }

// Invert sets s = a^-1 mod n and returns s.
func (s *Scalar) Invert(a *Scalar) *Scalar { s.curve = a.curve; s.e.InvertFermat(a.e); return s }

// ConditionalSelect sets s = a iff ctrl == 0, s = b otherwise.
func (s *Scalar) ConditionalSelect(a, b *Scalar, ctrl uint64) *Scalar {
	s.curve = a.curve
	s.e.ConditionalSelect(a.e, b.e, ctrl)
	return s
}

// ConditionalNegate sets s = a iff ctrl == 0, s = -a otherwise.
func (s *Scalar) ConditionalNegate(a *Scalar, ctrl uint64) *Scalar {
	neg := a.curve.NewScalar().Negate(a)
	return s.ConditionalSelect(a, neg, ctrl)
}

// Equal returns 1 iff s == a, 0 otherwise.
func (s *Scalar) Equal(a *Scalar) uint64 { return s.e.Equal(a.e) }

// IsZero returns 1 iff s == 0, 0 otherwise.
func (s *Scalar) IsZero() uint64 { return s.e.IsZero() }

// IsOdd returns 1 iff s, as a canonical integer, is odd.
func (s *Scalar) IsOdd() uint64 { return s.e.IsOdd() }

// Bytes returns the canonical big-endian encoding of s, padded up to the
// curve's scalar limb width (see [Curve.ScalarSize]).
func (s *Scalar) Bytes() []byte { return s.e.Bytes() }

// SetCanonicalBytes sets s = src, where src is a big-endian encoding
// padded to the scalar modulus's limb width. If src's value is >= n, s is
// set to src reduced mod n and the second return value is 1; otherwise
// it is 0.
func (c *Curve) SetCanonicalBytes(s *Scalar, src []byte) (*Scalar, uint64) {
	s.curve = c
	didReduce := c.scalar.SetCanonicalBytes(s.e, src)
	return s, didReduce
}

// ScalarSize returns the byte width used by Scalar.Bytes / SetCanonicalBytes.
func (c *Curve) ScalarSize() int { return 8 * c.scalar.Limbs() }

// IsGreaterThanHalfN returns 1 iff s > n/2, used by low-S normalization
// and by the GLV split's shorter-representative tie-break (see
// internal/legacyref/point_mul_glv.go).
func (s *Scalar) IsGreaterThanHalfN() uint64 {
	k := s.curve.scalar.Limbs()
	var x, half, diff mpn.Limbs
	mpn.SetBytesBE(&x, s.e.Bytes(), k)
	mpn.SetBytesBE(&half, s.curve.halfN, k)
	borrow := mpn.Sub(&diff, &x, &half, k)
	// borrow == 1 -> x < half -> not greater.
	// borrow == 0 && diff == 0 -> x == half -> not greater.
	return (1 &^ borrow) & (1 &^ mpn.IsZero(&diff, k))
}

// ScalarFromWideBytes implements spec.md section 4.2's ECDSA
// `import_wide`: b may be longer than the scalar's byte width (as a hash
// digest typically is); this takes the leftmost bitlen(n) bits per
// SEC1 section 4.1.3 step 5, then reduces mod n. Unlike
// [Curve.SetCanonicalBytes], this never fails -- it is used to turn a
// message digest into the integer z that ECDSA signs, which is always
// well-defined regardless of its magnitude relative to n.
func (c *Curve) ScalarFromWideBytes(b []byte) *Scalar {
	bitLen := c.scalar.BitLen()
	v := new(big.Int).SetBytes(b)
	if excess := len(b)*8 - bitLen; excess > 0 {
		v.Rsh(v, uint(excess))
	}
	v.Mod(v, c.scalar.BigInt())
	return mustScalarFromBigInt(c, v)
}

var errScalarOutOfRange = errors.New("wei: scalar out of range")

// NewScalarFromBigInt returns a new Scalar equal to v if 0 <= v < n, and
// an error otherwise. The RFC 6979 nonce generator relies on that error
// to reject out-of-range candidates.
func (c *Curve) NewScalarFromBigInt(v *big.Int) (*Scalar, error) {
	if v.Sign() < 0 || v.Cmp(c.scalar.BigInt()) >= 0 {
		return nil, errScalarOutOfRange
	}
	return mustScalarFromBigInt(c, v), nil
}

func mustScalarFromBigInt(c *Curve, v *big.Int) *Scalar {
	limbLen := c.ScalarSize()
	raw := v.Bytes()
	padded := make([]byte, limbLen)
	copy(padded[limbLen-len(raw):], raw)
	s := c.NewScalar()
	c.SetCanonicalBytes(s, padded)
	return s
}

// NewRandomScalar returns a uniformly random non-zero Scalar bound to c,
// read from rng (crypto/rand.Reader if nil). This mirrors the teacher's
// reliance on crypto/rand for ephemeral key / blinding material.
func (c *Curve) NewRandomScalar(rng io.Reader) (*Scalar, error) {
	if rng == nil {
		rng = rand.Reader
	}
	byteLen := c.scalar.ByteLen()
	limbLen := c.ScalarSize()
	buf := make([]byte, limbLen)
	for {
		if _, err := io.ReadFull(rng, buf[limbLen-byteLen:]); err != nil {
			return nil, err
		}
		excess := 8*byteLen - c.scalar.BitLen()
		if excess > 0 {
			buf[limbLen-byteLen] &= byte(0xff >> uint(excess))
		}

		s := c.NewScalar()
		_, didReduce := c.SetCanonicalBytes(s, buf)
		if didReduce == 0 && s.IsZero() == 0 {
			return s, nil
		}
	}
}
