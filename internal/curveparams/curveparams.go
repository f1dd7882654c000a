// Package curveparams holds the static, public parameter sets for every
// curve this module registers: the five short-Weierstrass curves
// (P-224, P-256, P-384, P-521, secp256k1) and the twisted Edwards curve
// Ed25519. This is the "Curve registry" component from spec.md section
// 2 (~4% share): nothing here is secret or derived from runtime input.
//
// Primes are built from their well-known closed forms via math/big
// rather than transcribed as raw hex, to avoid silent transcription
// errors in a 224-to-521 bit constant; group orders, which have no
// closed form, are transcribed from their standard published values
// (FIPS 186-4 / SEC 2).
package curveparams

import "math/big"

// WeierstrassParams describes one short-Weierstrass curve y^2 = x^3 + ax + b
// over GF(p), with base point (Gx, Gy) generating a group of prime order N.
type WeierstrassParams struct {
	Name    string
	P, N    *big.Int
	A, B    *big.Int
	Gx, Gy  *big.Int
	BitSize int // bit length of P (and, within a couple of bits, of N)

	// AMinus3 is true iff a == p-3, enabling the specialized Jacobian
	// doubling formulas wei/point.go's doubleJacobian uses for the four
	// NIST curves.
	AMinus3 bool

	// Endomorphism is non-nil only for secp256k1, where the GLV
	// decomposition applies.
	Endomorphism *Endomorphism

	// TonelliShanks is true iff P == 1 mod 4, requiring the general
	// square-root algorithm rather than the x^((p+1)/4) shortcut.
	// Of the five curves here, only P-224's prime has this form --
	// see SPEC_FULL.md's open-question notes on this, which correct
	// spec.md's listing of which curves need which algorithm.
	TonelliShanks bool
	// NonResidue is a fixed quadratic non-residue mod P, only
	// meaningful when TonelliShanks is true.
	NonResidue int64
}

// Endomorphism holds the GLV lattice-basis constants for a curve with an
// efficiently computable endomorphism, exactly as used by
// point_mul_glv.go in the teacher tree.
type Endomorphism struct {
	Beta     *big.Int // beta, such that (x,y) -> (beta*x, y) is mult-by-lambda
	NegLambda *big.Int
	NegB1    *big.Int
	B2       *big.Int
	NegB2    *big.Int
}

func hex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("curveparams: bad hex constant: " + s)
	}
	return n
}

func pow2(n uint) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), n)
}

// P224 is the NIST P-224 (secp224r1) curve.
var P224 = func() *WeierstrassParams {
	p := new(big.Int).Add(new(big.Int).Sub(pow2(224), pow2(96)), big.NewInt(1))
	return &WeierstrassParams{
		Name:    "P-224",
		P:       p,
		N:       hex("ffffffffffffffffffffffffffff16a2e0b8f03e13dd29455c5c2a3d"),
		A:       new(big.Int).Sub(p, big.NewInt(3)),
		B:       hex("b4050a850c04b3abf54132565044b0b7d7bfd8ba270b39432355ffb4"),
		Gx:      hex("b70e0cbd6bb4bf7f321390b94a03c1d356c21122343280d6115c1d21"),
		Gy:      hex("bd376388b5f723fb4c22dfe6cd4375a05a07476444d5819985007e34"),
		BitSize:       224,
		AMinus3:       true,
		TonelliShanks: true,
		NonResidue:    11,
	}
}()

// P256 is the NIST P-256 (secp256r1, prime256v1) curve.
var P256 = func() *WeierstrassParams {
	p := new(big.Int).Sub(new(big.Int).Add(new(big.Int).Add(pow2(256), pow2(192)), pow2(96)), new(big.Int).Add(pow2(224), big.NewInt(1)))
	// p = 2^256 - 2^224 + 2^192 + 2^96 - 1, rewritten to avoid a
	// negative intermediate: (2^256 + 2^192 + 2^96) - (2^224 + 1).
	return &WeierstrassParams{
		Name:    "P-256",
		P:       p,
		N:       hex("ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551"),
		A:       new(big.Int).Sub(p, big.NewInt(3)),
		B:       hex("5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b"),
		Gx:      hex("6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296"),
		Gy:      hex("4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5"),
		BitSize: 256,
		AMinus3: true,
	}
}()

// P384 is the NIST P-384 (secp384r1) curve.
var P384 = func() *WeierstrassParams {
	p := new(big.Int).Sub(new(big.Int).Sub(new(big.Int).Sub(pow2(384), pow2(128)), pow2(96)), new(big.Int).Sub(big.NewInt(1), pow2(32)))
	// p = 2^384 - 2^128 - 2^96 + 2^32 - 1
	return &WeierstrassParams{
		Name:    "P-384",
		P:       p,
		N:       hex("ffffffffffffffffffffffffffffffffffffffffffffffffc7634d81f4372ddf581a0db248b0a77aecec196accc52973"),
		A:       new(big.Int).Sub(p, big.NewInt(3)),
		B:       hex("b3312fa7e23ee7e4988e056be3f82d19181d9c6efe8141120314088f5013875ac656398d8a2ed19d2a85c8edd3ec2aef"),
		Gx:      hex("aa87ca22be8b05378eb1c71ef320ad746e1d3b628ba79b9859f741e082542a385502f25dbf55296c3a545e3872760ab7"),
		Gy:      hex("3617de4a96262c6f5d9e98bf9292dc29f8f41dbd289a147ce9da3113b5f0b8c00a60b1ce1d7e819d7a431d7c90ea0e5f"),
		BitSize: 384,
		AMinus3: true,
	}
}()

// P521 is the NIST P-521 (secp521r1) curve.
var P521 = func() *WeierstrassParams {
	p := new(big.Int).Sub(pow2(521), big.NewInt(1))
	return &WeierstrassParams{
		Name:    "P-521",
		P:       p,
		N:       hex("01fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffa51868783bf2f966b7fcc0148f709a5d03bb5c9b8899c47aebb6fb71e91386409"),
		A:       new(big.Int).Sub(p, big.NewInt(3)),
		B:       hex("0051953eb9618e1c9a1f929a21a0b68540eea2da725b99b315f3b8b489918ef109e156193951ec7e937b1652c0bd3bb1bf073573df883d2c34f1ef451fd46b503f00"),
		Gx:      hex("00c6858e06b70404e9cd9e3ecb662395b4429c648139053fb521f828af606b4d3dbaa14b5e77efe75928fe1dc127a2ffa8de3348b3c1856a429bf97e7e31c2e5bd66"),
		Gy:      hex("011839296a789a3bc0045c8a5fb42c7d1bd998f54449579b446817afbd17273e662c97ee72995ef42640c550b9013fad0761353c7086a272c24088be94769fd16650"),
		BitSize: 521,
		AMinus3: true,
	}
}()

// Secp256k1 is the curve used by Bitcoin/Ethereum-family chains, the
// teacher library's only curve, now one of six this module registers.
var Secp256k1 = func() *WeierstrassParams {
	p := new(big.Int).Sub(new(big.Int).Sub(pow2(256), pow2(32)), big.NewInt(977))
	return &WeierstrassParams{
		Name: "secp256k1",
		P:    p,
		N:    hex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"),
		A:    big.NewInt(0),
		B:    big.NewInt(7),
		Gx:   hex("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"),
		Gy:   hex("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"),
		BitSize: 256,
		AMinus3: false,
		Endomorphism: &Endomorphism{
			Beta:      hex("7ae96a2b657c07106e64479eac3434e99cf0497512f58995c1396c28719501ee"),
			NegLambda: hex("ac9c52b33fa3cf1f5ad9e3fd77ed9ba4a880b9fc8ec739c2e0cfc810b51283cf"),
			NegB1:     hex("e4437ed6010e88286f547fa90abfe4c3"),
			B2:        hex("3086d221a7d46bcde86c90e49284eb15"),
			NegB2:     hex("fffffffffffffffffffffffffffffffe8a280ac50774346dd765cda83db1562c"),
		},
	}
}()

// All is every registered Weierstrass curve, used by tests and by the
// ecdsa/ecdh packages' curve-agnostic table-driven coverage.
var All = []*WeierstrassParams{P224, P256, P384, P521, Secp256k1}

// EdwardsParams describes Ed25519: a*x^2+y^2 = 1+d*x^2*y^2 over
// GF(2^255-19), base point B generating a subgroup of prime order L.
type EdwardsParams struct {
	P, L   *big.Int
	D      *big.Int
	A      *big.Int // always -1 for Ed25519
	Bx, By *big.Int
}

// Ed25519 is computed rather than transcribed: d = -121665/121666 mod p
// (RFC 8032 section 5.1) and B's x-coordinate is recovered from y = 4/5
// via the same isqrt construction point decoding uses, so the constant
// and the decoder that must agree with it are derived from the same
// formula instead of two independently-transcribed literals.
var Ed25519 = func() *EdwardsParams {
	p := new(big.Int).Sub(pow2(255), big.NewInt(19))
	l := new(big.Int).Add(pow2(252), hex("14def9dea2f79cd65812631a5cf5d3ed"))

	inv121666 := new(big.Int).ModInverse(big.NewInt(121666), p)
	d := new(big.Int).Mod(new(big.Int).Mul(big.NewInt(-121665), inv121666), p)

	inv5 := new(big.Int).ModInverse(big.NewInt(5), p)
	y := new(big.Int).Mod(new(big.Int).Mul(big.NewInt(4), inv5), p)

	return &EdwardsParams{
		P:  p,
		L:  l,
		D:  d,
		A:  new(big.Int).Mod(big.NewInt(-1), p),
		By: y,
		// Bx is filled in by the edwards package at init time, via
		// the same Isqrt recover_x used for point decoding -- see
		// edwards.newCurve.
	}
}()
