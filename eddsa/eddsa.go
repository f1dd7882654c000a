// Package eddsa implements PureEdDSA signing and verification over
// Ed25519 (RFC 8032), generalizing this module's ECDSA package's
// PrivateKey/PublicKey shape to Ed25519's seed-based key derivation
// instead of a raw scalar, following spec.md section 4.7.
//
// Unlike ecdsa.PrivateKey, which stores a scalar directly, an Ed25519
// private key is a 32-byte seed: SHA-512(seed) splits into a clamped
// scalar a and a nonce prefix, per RFC 8032 section 5.1.5. Both are
// derived once at key-construction time and cached, matching the way
// golang.org/x/crypto/ed25519 and crypto/ed25519 store the expanded
// 64-byte private key rather than re-hashing the seed on every Sign.
package eddsa

import (
	"crypto/rand"
	"crypto/sha512"
	"errors"
	"io"

	"go.eccore.dev/eccore/edwards"
)

// SeedSize is the length of an Ed25519 private key seed.
const SeedSize = 32

// PublicKeySize is the length of an Ed25519 public key encoding.
const PublicKeySize = 32

// SignatureSize is the length of an Ed25519 signature.
const SignatureSize = 64

// Errors returned by NewPrivateKeyFromSeed, NewPublicKey, and Verify.
var (
	ErrInvalidSeed      = errors.New("eddsa: seed must be 32 bytes")
	ErrInvalidPublicKey = errors.New("eddsa: invalid public key encoding")
	ErrInvalidSignature = errors.New("eddsa: malformed signature")
	ErrSignatureMismatch = errors.New("eddsa: signature does not verify")
)

// PrivateKey is an Ed25519 private key: a 32-byte seed plus the scalar
// and nonce-prefix RFC 8032 section 5.1.5 derives from it.
type PrivateKey struct {
	seed   [SeedSize]byte
	a      *edwards.Scalar // clamped private scalar, reduced mod L
	prefix [32]byte
	pub    *PublicKey
}

// PublicKey is an Ed25519 public key: the encoding of a*B.
type PublicKey struct {
	point   *edwards.Point
	encoded [PublicKeySize]byte
}

// GenerateKey generates a new PrivateKey, reading its seed from rand
// (crypto/rand.Reader if nil).
func GenerateKey(rnd io.Reader) (*PrivateKey, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	var seed [SeedSize]byte
	if _, err := io.ReadFull(rnd, seed[:]); err != nil {
		return nil, err
	}
	return NewPrivateKeyFromSeed(seed[:])
}

// NewPrivateKeyFromSeed derives a PrivateKey from a 32-byte seed,
// following RFC 8032 section 5.1.5 steps 1-3: hash the seed with
// SHA-512, clamp the low half into a scalar a, and keep the high half
// as the nonce-generation prefix.
func NewPrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != SeedSize {
		return nil, ErrInvalidSeed
	}

	h := sha512.Sum512(seed)
	clamp(h[:32])

	a := edwards.Ed25519.ScalarFromWideBytes(h[:32])

	k := &PrivateKey{a: a}
	copy(k.seed[:], seed)
	copy(k.prefix[:], h[32:])

	pt := edwards.Ed25519.NewPoint().ScalarBaseMult(a)
	k.pub = &PublicKey{point: pt}
	copy(k.pub.encoded[:], pt.Encode())

	return k, nil
}

// clamp applies RFC 8032 section 5.1.5's bit fixup to a 32-byte scalar
// buffer in place: clear the low 3 bits (cofactor-8 clearing), clear the
// top bit, and set the second-highest bit (fixing the scalar's bit
// length so every Ed25519 implementation's variable-time ladders run
// the same number of steps regardless of the seed).
func clamp(b []byte) {
	b[0] &= 0xf8
	b[31] &= 0x7f
	b[31] |= 0x40
}

// Seed returns k's 32-byte seed.
func (k *PrivateKey) Seed() []byte {
	out := make([]byte, SeedSize)
	copy(out, k.seed[:])
	return out
}

// Public returns k's corresponding public key.
func (k *PrivateKey) Public() *PublicKey { return k.pub }

// Bytes returns pub's 32-byte RFC 8032 encoding.
func (pub *PublicKey) Bytes() []byte {
	out := make([]byte, PublicKeySize)
	copy(out, pub.encoded[:])
	return out
}

// Point returns a copy of the curve point underlying pub.
func (pub *PublicKey) Point() *edwards.Point { return edwards.Ed25519.NewPoint().Set(pub.point) }

// NewPublicKey decodes a 32-byte Ed25519 public key encoding.
func NewPublicKey(b []byte) (*PublicKey, error) {
	if len(b) != PublicKeySize {
		return nil, ErrInvalidPublicKey
	}
	pt, err := edwards.Ed25519.Decode(edwards.Ed25519.NewPoint(), b)
	if err != nil {
		return nil, ErrInvalidPublicKey
	}
	pub := &PublicKey{point: pt}
	copy(pub.encoded[:], b)
	return pub, nil
}
