package edwards

import (
	"crypto/rand"
	"io"
	"math/big"

	"go.eccore.dev/eccore/internal/disalloweq"
	"go.eccore.dev/eccore/internal/montfield"
)

// Scalar is an integer modulo L, Ed25519's group order, generalizing
// wei.Scalar to this curve's own scalar field. Unlike wei.Scalar's
// big-endian convention, Scalar's byte encoding is little-endian
// throughout, matching RFC 8032's encoding of private scalars and
// signature S values. All arguments and receivers are allowed to alias.
// The zero value is NOT usable; use [Curve.NewScalar].
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

// Set sets s = a and returns s.
func (s *Scalar) Set(a *Scalar) *Scalar {
	s.curve = a.curve
	s.e.Set(a.e)
	return s
}

// Add sets s = a + b and returns s.
func (s *Scalar) Add(a, b *Scalar) *Scalar { s.curve = a.curve; s.e.Add(a.e, b.e); return s }

// Negate sets s = -a and returns s.
func (s *Scalar) Negate(a *Scalar) *Scalar { s.curve = a.curve; s.e.Negate(a.e); return s }

// Multiply sets s = a * b and returns s.
func (s *Scalar) Multiply(a, b *Scalar) *Scalar { s.curve = a.curve; s.e.Multiply(a.e, b.e); return s }

// Equal returns 1 iff s == a, 0 otherwise.
func (s *Scalar) Equal(a *Scalar) uint64 { return s.e.Equal(a.e) }

// IsZero returns 1 iff s == 0, 0 otherwise.
func (s *Scalar) IsZero() uint64 { return s.e.IsZero() }

// ConditionalSelect sets s = a iff ctrl == 0, s = b otherwise.
func (s *Scalar) ConditionalSelect(a, b *Scalar, ctrl uint64) *Scalar {
	s.curve = a.curve
	s.e.ConditionalSelect(a.e, b.e, ctrl)
	return s
}

// Bytes returns s's canonical 32-byte little-endian encoding, the
// representation RFC 8032 uses for both a private scalar and a
// signature's S component.
func (s *Scalar) Bytes() []byte { return s.e.BytesLE() }

// bytesBE returns s's canonical encoding, most significant byte first,
// used only internally by scalar multiplication's nibble walk (table.go,
// mul.go), which is endianness-agnostic and standardized on the
// big-endian convention wei.Point's scalar multiplication already uses.
func (s *Scalar) bytesBE() []byte { return s.e.Bytes() }

// ScalarSize returns the byte width of Scalar's canonical encoding.
func (c *Curve) ScalarSize() int { return 8 * c.scalar.Limbs() }

// SetCanonicalBytes sets s = src, a 32-byte little-endian encoding. If
// src's integer value is >= L, it is reduced and the return is 1 (not
// canonical); RFC 8032 decoding of S must reject on this, while decoding
// a plain private scalar does not (clamping already guarantees range).
func (c *Curve) SetCanonicalBytes(s *Scalar, src []byte) (*Scalar, uint64) {
	s.curve = c
	didReduce := c.scalar.SetCanonicalBytes(s.e, reverseBytes(src))
	return s, didReduce
}

// ScalarFromWideBytes reduces an arbitrary-length little-endian integer
// (a SHA-512 digest, per RFC 8032 sections 5.1.5 and 5.1.6) modulo L.
// Grounded on wei.Curve.ScalarFromWideBytes's big.Int-based wide reduce,
// the same non-hot-path shortcut used there for ECDSA's digest-to-scalar
// step; DESIGN.md records why both packages reach for math/big here
// rather than a constant-time Barrett reduction.
func (c *Curve) ScalarFromWideBytes(b []byte) *Scalar {
	v := new(big.Int).SetBytes(reverseBytes(b))
	v.Mod(v, c.scalar.BigInt())
	return c.scalarFromBigInt(v)
}

func (c *Curve) scalarFromBigInt(v *big.Int) *Scalar {
	width := c.ScalarSize()
	be := make([]byte, width)
	raw := v.Bytes()
	copy(be[width-len(raw):], raw)

	s := c.NewScalar()
	c.scalar.SetCanonicalBytes(s.e, be)
	return s
}

// NewRandomScalar returns a uniformly random Scalar bound to c, read
// from rng (crypto/rand.Reader if nil). Ed25519 signing never calls
// this -- both the key scalar and the per-signature nonce are derived
// deterministically from a seed via SHA-512 -- but it is kept for
// callers that want an ephemeral Ed25519-curve scalar outside the
// signature protocol (e.g. testing the group law directly).
func (c *Curve) NewRandomScalar(rng io.Reader) (*Scalar, error) {
	if rng == nil {
		rng = rand.Reader
	}
	buf := make([]byte, 2*c.ScalarSize())
	if _, err := io.ReadFull(rng, buf); err != nil {
		return nil, err
	}
	return c.ScalarFromWideBytes(buf), nil
}

// reverseBytes returns a new slice with src's bytes in reverse order,
// converting between wei's big-endian scalar convention (which table.go
// and mul.go's nibble walk are written against) and Ed25519's
// little-endian wire format.
func reverseBytes(src []byte) []byte {
	out := make([]byte, len(src))
	for i, b := range src {
		out[len(src)-1-i] = b
	}
	return out
}
