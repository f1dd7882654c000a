// Package edfe implements constant-time arithmetic modulo the Ed25519
// field prime p = 2^255 - 19, using the classic radix-2^51 (5-limb)
// representation.
//
// This is the pseudo-Mersenne-prime backend spec.md section 4.1 and
// section 9 describe as an alternative to the Montgomery-domain backend
// in internal/montfield. It is grounded on
// _examples/other_examples/a141b329_FiloSottile-edwards25519__field-fe.go.go
// (filippo.io/edwards25519's field.Element, itself backed by fiat-crypto
// generated code): the public API shape (Zero/One/Add/Subtract/Negate/
// Multiply/Square/Invert/Select/Bytes/SetBytes) and the exact addition
// chains for Invert and Pow22523 are carried over; the limb arithmetic
// itself (CarryMul/CarryAdd/...) is hand-written instead of fiat-crypto
// generated, for the same reason internal/montfield hand-writes CIOS
// Montgomery multiplication rather than depending on per-prime codegen.
package edfe

import "math/bits"

const mask51 = (1 << 51) - 1

// Element is a field element modulo 2^255-19, stored as five 51-bit
// limbs, least significant first. Limbs are kept "loose" (allowed up to
// roughly 54 bits) between operations and only forced canonical by
// Bytes/SetBytes. The zero value is a valid zero element.
type Element struct {
	l [5]uint64
}

// pTimes2 is 2*p, limb-wise (2*(2^51-19), 2*(2^51-1) x4), used so that
// Negate's per-limb subtraction never borrows.
var pTimes2 = [5]uint64{
	4503599627370458,
	4503599627370494,
	4503599627370494,
	4503599627370494,
	4503599627370494,
}

// Zero sets v = 0 and returns v.
func (v *Element) Zero() *Element {
	v.l = [5]uint64{}
	return v
}

// One sets v = 1 and returns v.
func (v *Element) One() *Element {
	v.l = [5]uint64{1, 0, 0, 0, 0}
	return v
}

// Set sets v = a and returns v.
func (v *Element) Set(a *Element) *Element {
	v.l = a.l
	return v
}

func carryNormalize(l *[5]uint64) {
	c := l[0] >> 51
	l[0] &= mask51
	l[1] += c
	c = l[1] >> 51
	l[1] &= mask51
	l[2] += c
	c = l[2] >> 51
	l[2] &= mask51
	l[3] += c
	c = l[3] >> 51
	l[3] &= mask51
	l[4] += c
	c = l[4] >> 51
	l[4] &= mask51
	l[0] += c * 19
	c = l[0] >> 51
	l[0] &= mask51
	l[1] += c
}

// Add sets v = a + b and returns v.
func (v *Element) Add(a, b *Element) *Element {
	for i := range v.l {
		v.l[i] = a.l[i] + b.l[i]
	}
	carryNormalize(&v.l)
	return v
}

// Subtract sets v = a - b and returns v.
func (v *Element) Subtract(a, b *Element) *Element {
	var t Element
	for i := range v.l {
		t.l[i] = a.l[i] + pTimes2[i] - b.l[i]
	}
	carryNormalize(&t.l)
	*v = t
	return v
}

// Negate sets v = -a and returns v.
func (v *Element) Negate(a *Element) *Element {
	var zero Element
	return v.Subtract(&zero, a)
}

// u128 is a 128-bit accumulator built from two uint64s, used for the
// widened products CIOS-style field multiplication needs.
type u128 struct {
	hi, lo uint64
}

func (x *u128) addMul(a, b uint64) {
	hi, lo := bits.Mul64(a, b)
	var c uint64
	x.lo, c = bits.Add64(x.lo, lo, 0)
	x.hi, _ = bits.Add64(x.hi, hi, c)
}

func (x *u128) addSmall(c uint64) {
	var carry uint64
	x.lo, carry = bits.Add64(x.lo, c, 0)
	x.hi += carry
}

func (x u128) carryOut() uint64 {
	return (x.hi << 13) | (x.lo >> 51)
}

func (x u128) low51() uint64 {
	return x.lo & mask51
}

// Multiply sets v = a * b and returns v.
func (v *Element) Multiply(a, b *Element) *Element {
	a0, a1, a2, a3, a4 := a.l[0], a.l[1], a.l[2], a.l[3], a.l[4]
	b0, b1, b2, b3, b4 := b.l[0], b.l[1], b.l[2], b.l[3], b.l[4]

	a1_19, a2_19, a3_19, a4_19 := a1*19, a2*19, a3*19, a4*19

	var acc [5]u128
	acc[0].addMul(a0, b0)
	acc[0].addMul(a1_19, b4)
	acc[0].addMul(a2_19, b3)
	acc[0].addMul(a3_19, b2)
	acc[0].addMul(a4_19, b1)

	acc[1].addMul(a0, b1)
	acc[1].addMul(a1, b0)
	acc[1].addMul(a2_19, b4)
	acc[1].addMul(a3_19, b3)
	acc[1].addMul(a4_19, b2)

	acc[2].addMul(a0, b2)
	acc[2].addMul(a1, b1)
	acc[2].addMul(a2, b0)
	acc[2].addMul(a3_19, b4)
	acc[2].addMul(a4_19, b3)

	acc[3].addMul(a0, b3)
	acc[3].addMul(a1, b2)
	acc[3].addMul(a2, b1)
	acc[3].addMul(a3, b0)
	acc[3].addMul(a4_19, b4)

	acc[4].addMul(a0, b4)
	acc[4].addMul(a1, b3)
	acc[4].addMul(a2, b2)
	acc[4].addMul(a3, b1)
	acc[4].addMul(a4, b0)

	v.l = reduceAcc(&acc)
	return v
}

// Square sets v = a * a and returns v.
func (v *Element) Square(a *Element) *Element {
	return v.Multiply(a, a)
}

func reduceAcc(acc *[5]u128) [5]uint64 {
	var out [5]uint64

	c := acc[0].carryOut()
	out[0] = acc[0].low51()
	acc[1].addSmall(c)

	c = acc[1].carryOut()
	out[1] = acc[1].low51()
	acc[2].addSmall(c)

	c = acc[2].carryOut()
	out[2] = acc[2].low51()
	acc[3].addSmall(c)

	c = acc[3].carryOut()
	out[3] = acc[3].low51()
	acc[4].addSmall(c)

	c = acc[4].carryOut()
	out[4] = acc[4].low51()

	out[0] += c * 19
	c = out[0] >> 51
	out[0] &= mask51
	out[1] += c

	return out
}

// ConditionalSelect sets v = a iff ctrl == 0, v = b iff ctrl == 1.
func (v *Element) ConditionalSelect(a, b *Element, ctrl uint64) *Element {
	mask := -ctrl
	for i := range v.l {
		v.l[i] = a.l[i] ^ (mask & (a.l[i] ^ b.l[i]))
	}
	return v
}

// reduceFull brings v's limbs into [0, p) canonical range; used only by
// Bytes/Equal/IsZero/IsOdd, which need a fully-reduced representative.
func (v *Element) reduceFull() [5]uint64 {
	l := v.l
	carryNormalize(&l)
	carryNormalize(&l)

	// l might be in [p, 2^255), compare against p and subtract if so.
	// p limbs: (2^51-19, 2^51-1, 2^51-1, 2^51-1, 2^51-1).
	var t [5]uint64
	t[0] = l[0] + 19
	c := t[0] >> 51
	t[0] &= mask51
	t[1] = l[1] + c
	c = t[1] >> 51
	t[1] &= mask51
	t[2] = l[2] + c
	c = t[2] >> 51
	t[2] &= mask51
	t[3] = l[3] + c
	c = t[3] >> 51
	t[3] &= mask51
	t[4] = l[4] + c
	// If t[4]'s top bit (bit 51, the overflow out of the fifth limb)
	// is set, l >= p and t (which is l + 19 - p, i.e. l - p, reduced)
	// is the canonical value; otherwise l already was canonical.
	overflow := t[4] >> 51
	t[4] &= mask51

	mask := -overflow
	var out [5]uint64
	for i := range out {
		out[i] = l[i] ^ (mask & (l[i] ^ t[i]))
	}
	return out
}

// Equal returns 1 iff v == a, 0 otherwise.
func (v *Element) Equal(a *Element) uint64 {
	va, aa := v.reduceFull(), a.reduceFull()
	var acc uint64
	for i := range va {
		acc |= va[i] ^ aa[i]
	}
	return 1 &^ (((acc | -acc) >> 63) & 1)
}

// IsZero returns 1 iff v == 0, 0 otherwise.
func (v *Element) IsZero() uint64 {
	var zero Element
	return v.Equal(&zero)
}

// IsOdd returns 1 iff v, as a canonical integer, is odd.
func (v *Element) IsOdd() uint64 {
	return v.reduceFull()[0] & 1
}

// SetBytes sets v from a 32-byte little-endian encoding, ignoring the
// top bit of the last byte (it carries the Ed25519 sign bit and is not
// part of the field element's value), and returns v. Non-canonical
// inputs (value in [p, 2^255)) are accepted and reduced, matching
// RFC 8032's lax decoding for the x/y field elements themselves (the
// *point* encoding's canonicity check is separate -- see the edwards
// package).
func (v *Element) SetBytes(src []byte) *Element {
	var b [32]byte
	copy(b[:], src)
	b[31] &= 0x7f

	v.l[0] = leUint64(b[0:8]) & mask51
	v.l[1] = (leUint64(b[6:14]) >> 3) & mask51
	v.l[2] = (leUint64(b[12:20]) >> 6) & mask51
	v.l[3] = (leUint64(b[19:27]) >> 1) & mask51
	v.l[4] = (leUint64(b[24:32]) >> 12) & mask51
	return v
}

// Bytes returns the canonical 32-byte little-endian encoding of v.
func (v *Element) Bytes() []byte {
	l := v.reduceFull()

	t0 := l[0] | (l[1] << 51)
	t1 := (l[1] >> 13) | (l[2] << 38)
	t2 := (l[2] >> 26) | (l[3] << 25)
	t3 := (l[3] >> 39) | (l[4] << 12)

	var out [32]byte
	putLeUint64(out[0:8], t0)
	putLeUint64(out[8:16], t1)
	putLeUint64(out[16:24], t2)
	putLeUint64(out[24:32], t3)
	return out[:]
}

func putLeUint64(b []byte, v uint64) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	b[4] = byte(v >> 32)
	b[5] = byte(v >> 40)
	b[6] = byte(v >> 48)
	b[7] = byte(v >> 56)
}

func leUint64(b []byte) uint64 {
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

// Invert sets v = a^-1 mod p, and returns v. If a == 0, v = 0. This uses
// the same 254-squaring, 11-multiply addition chain as curve25519 (and
// as filippo.io/edwards25519's field.Element.Invert).
func (v *Element) Invert(a *Element) *Element {
	var z2, z9, z11, z2_5_0, z2_10_0, z2_20_0, z2_50_0, z2_100_0, t Element

	z2.Square(a)
	t.Square(&z2)
	t.Square(&t)
	z9.Multiply(&t, a)
	z11.Multiply(&z9, &z2)
	t.Square(&z11)
	z2_5_0.Multiply(&t, &z9)

	t.Square(&z2_5_0)
	for i := 0; i < 4; i++ {
		t.Square(&t)
	}
	z2_10_0.Multiply(&t, &z2_5_0)

	t.Square(&z2_10_0)
	for i := 0; i < 9; i++ {
		t.Square(&t)
	}
	z2_20_0.Multiply(&t, &z2_10_0)

	t.Square(&z2_20_0)
	for i := 0; i < 19; i++ {
		t.Square(&t)
	}
	t.Multiply(&t, &z2_20_0)

	t.Square(&t)
	for i := 0; i < 9; i++ {
		t.Square(&t)
	}
	z2_50_0.Multiply(&t, &z2_10_0)

	t.Square(&z2_50_0)
	for i := 0; i < 49; i++ {
		t.Square(&t)
	}
	z2_100_0.Multiply(&t, &z2_50_0)

	t.Square(&z2_100_0)
	for i := 0; i < 99; i++ {
		t.Square(&t)
	}
	t.Multiply(&t, &z2_100_0)

	t.Square(&t)
	for i := 0; i < 49; i++ {
		t.Square(&t)
	}
	t.Multiply(&t, &z2_50_0)

	t.Square(&t)
	t.Square(&t)
	t.Square(&t)
	t.Square(&t)
	t.Square(&t)

	return v.Multiply(&t, &z11)
}

// Pow22523 sets v = a^((p-5)/8) and returns v, the exponent EdDSA's
// isqrt construction needs.
func (v *Element) Pow22523(a *Element) *Element {
	var t0, t1, t2 Element

	t0.Square(a)
	t1.Square(&t0)
	t1.Square(&t1)
	t1.Multiply(a, &t1)
	t0.Multiply(&t0, &t1)
	t0.Square(&t0)
	t0.Multiply(&t1, &t0)
	t1.Square(&t0)
	for i := 1; i < 5; i++ {
		t1.Square(&t1)
	}
	t0.Multiply(&t1, &t0)
	t1.Square(&t0)
	for i := 1; i < 10; i++ {
		t1.Square(&t1)
	}
	t1.Multiply(&t1, &t0)
	t2.Square(&t1)
	for i := 1; i < 20; i++ {
		t2.Square(&t2)
	}
	t1.Multiply(&t2, &t1)
	t1.Square(&t1)
	for i := 1; i < 10; i++ {
		t1.Square(&t1)
	}
	t0.Multiply(&t1, &t0)
	t1.Square(&t0)
	for i := 1; i < 50; i++ {
		t1.Square(&t1)
	}
	t1.Multiply(&t1, &t0)
	t2.Square(&t1)
	for i := 1; i < 100; i++ {
		t2.Square(&t2)
	}
	t1.Multiply(&t2, &t1)
	t1.Square(&t1)
	for i := 1; i < 50; i++ {
		t1.Square(&t1)
	}
	t0.Multiply(&t1, &t0)
	t0.Square(&t0)
	t0.Square(&t0)
	return v.Multiply(&t0, a)
}

var sqrtM1 = &Element{l: [5]uint64{1718705420411056, 234908883556509, 2233514472574048, 2117202627021982, 765476049583133}}

// Isqrt sets r = sqrt(u/v) and returns (r, 1) when u/v is a square, or
// (r, 0) with r set per the RFC 8032 non-square fallback (r =
// sqrt(-1) * sqrt(u/-v)) otherwise -- this is spec.md section 4.1's
// isqrt(u,v), needed by Ed25519 point decoding.
func (r *Element) Isqrt(u, v *Element) (*Element, uint64) {
	var t0, v2, uv3, uv7, cand Element

	v2.Square(v)
	uv3.Multiply(u, t0.Multiply(&v2, v))
	uv7.Multiply(&uv3, t0.Square(&v2))
	cand.Multiply(&uv3, t0.Pow22523(&uv7))

	var check, uNeg, uNegI Element
	check.Multiply(v, t0.Square(&cand))
	uNeg.Negate(u)
	uNegI.Multiply(&uNeg, sqrtM1)

	isCorrect := check.Equal(u)
	isFlipped := check.Equal(&uNeg)
	isFlippedI := check.Equal(&uNegI)

	var rPrime Element
	rPrime.Multiply(&cand, sqrtM1)
	cand.ConditionalSelect(&cand, &rPrime, isFlipped|isFlippedI)

	r.Set(&cand)
	return r, isCorrect | isFlipped
}
