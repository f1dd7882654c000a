package eddsa

import (
	"crypto/sha512"

	"go.eccore.dev/eccore/edwards"
)

// Sign signs msg following RFC 8032 section 5.1.6's PureEdDSA algorithm:
// r = SHA-512(prefix || msg) mod L, R = r*B, k = SHA-512(R || pub || msg)
// mod L, S = (r + k*a) mod L. The returned signature is encode(R) || S,
// 64 bytes total.
//
// r is derived from k's private prefix exactly as the ephemeral nonce in
// ECDSA is derived from the private key, so R = r*B uses the
// constant-time [edwards.Point.ScalarBaseMult] rather than its vartime
// counterpart -- a timing leak on r is a key-recovery primitive, the
// same reasoning ecdsa.Sign applies to its RFC 6979 nonce.
func (k *PrivateKey) Sign(msg []byte) []byte {
	c := edwards.Ed25519

	rh := sha512.New()
	rh.Write(k.prefix[:])
	rh.Write(msg)
	r := c.ScalarFromWideBytes(rh.Sum(nil))

	R := c.NewPoint().ScalarBaseMult(r)
	REnc := R.Encode()

	kh := sha512.New()
	kh.Write(REnc)
	kh.Write(k.pub.encoded[:])
	kh.Write(msg)
	kChallenge := c.ScalarFromWideBytes(kh.Sum(nil))

	s := c.NewScalar().Multiply(kChallenge, k.a)
	s.Add(r, s)

	sig := make([]byte, 0, SignatureSize)
	sig = append(sig, REnc...)
	sig = append(sig, s.Bytes()...)
	return sig
}
