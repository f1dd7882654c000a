// Package ecdh implements raw (X9.63-style) Diffie-Hellman key agreement
// over the five short-Weierstrass curves this module registers,
// generalizing internal/legacyref/secec/secec.go's PrivateKey.ECDH (a
// single hard-coded secp256k1 implementation) to any [wei.Curve].
//
// Every curve context sufficient for ECDSA signing is equally sufficient
// for ECDH -- both need nothing beyond scalar multiplication and point
// encode/decode -- so this package reuses [ecdsa.Curve]'s key types
// rather than inventing a parallel PrivateKey/PublicKey pair.
package ecdh

import (
	"errors"
	"io"

	"go.eccore.dev/eccore/ecdsa"
)

// ErrIdentityResult is returned when a Diffie-Hellman exchange produces
// the point at infinity, which SEC 1, Version 2.0, Section 3.3.1
// requires be rejected as a degenerate shared secret (it arises only
// when the peer's public key is the negation of n-1 copies of the
// local private scalar's multiple -- in practice, a malicious or
// corrupted peer key).
var ErrIdentityResult = errors.New("ecdh: shared secret is the point at infinity")

// PrivateKey is an ECDH private key, identical in representation to an
// [ecdsa.PrivateKey] -- the same scalar is valid for both protocols over
// a given curve, exactly as the teacher's secec.PrivateKey serves both.
type PrivateKey = ecdsa.PrivateKey

// PublicKey is an ECDH public key.
type PublicKey = ecdsa.PublicKey

// GenerateKey generates a new PrivateKey bound to c.
func GenerateKey(c *ecdsa.Curve, rand io.Reader) (*PrivateKey, error) {
	return c.GenerateKey(rand)
}

// X performs a Diffie-Hellman exchange between priv and remote, and
// returns the shared secret as the SEC1 encoding of the x-coordinate of
// priv.scalar * remote.point, per SEC 1, Version 2.0, Section 3.3.1 and
// Section 2.3.5. The result is never the point at infinity.
func X(priv *PrivateKey, remote *PublicKey) ([]byte, error) {
	shared := priv.Curve().NewPoint().ScalarMult(priv.Scalar(), remote.Point())
	if shared.IsIdentity() != 0 {
		return nil, ErrIdentityResult
	}

	x, _, _ := shared.Affine()
	return fieldElementBytes(priv.Curve(), x), nil
}

func fieldElementBytes(c *ecdsa.Curve, fe interface{ Bytes() []byte }) []byte {
	raw := fe.Bytes()
	want := c.FieldModulus().ByteLen()
	if len(raw) == want {
		return raw
	}
	return raw[len(raw)-want:]
}
