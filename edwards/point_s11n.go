package edwards

import (
	"errors"

	"go.eccore.dev/eccore/internal/edfe"
)

// errInvalidEncoding is returned by [Curve.Decode] for any malformed
// point encoding: non-canonical y (y >= p), a (y^2-1)/(d*y^2+1) that is
// not a square, or the x=0-with-sign-bit-set case RFC 8032 section 5.1.3
// singles out as non-canonical.
var errInvalidEncoding = errors.New("edwards: malformed point encoding")

// Encode returns v's 32-byte RFC 8032 encoding: y, little-endian, with
// the high bit of the last byte set to x's sign (its least-significant
// bit, i.e. parity).
func (v *Point) Encode() []byte {
	x, y := v.affineXY()
	out := y.Bytes()
	if x.IsOdd() == 1 {
		out[31] |= 0x80
	} else {
		out[31] &^= 0x80
	}
	return out
}

// Decode sets v to the point encoded by src, a 32-byte RFC 8032
// encoding, and returns v, an error. On failure v is left set to the
// identity.
func (c *Curve) Decode(v *Point, src []byte) (*Point, error) {
	v.curve = c
	if len(src) != 32 {
		v.Identity()
		return v, errInvalidEncoding
	}

	signBit := src[31] >> 7
	yBytes := make([]byte, 32)
	copy(yBytes, src)
	yBytes[31] &^= 0x80

	y := new(edfe.Element).SetBytes(yBytes)
	if !canonicalLE(yBytes) {
		v.Identity()
		return v, errInvalidEncoding
	}

	y2 := new(edfe.Element).Square(y)
	u := new(edfe.Element).Subtract(y2, new(edfe.Element).One())
	vv := new(edfe.Element).Multiply(c.d, y2)
	vv.Subtract(vv, c.a)

	x, isSquare := new(edfe.Element).Isqrt(u, vv)
	if isSquare == 0 {
		v.Identity()
		return v, errInvalidEncoding
	}

	isZero := x.IsZero()
	if isZero == 1 && signBit == 1 {
		v.Identity()
		return v, errInvalidEncoding
	}

	negX := new(edfe.Element).Negate(x)
	// ConditionalSelect(a, b, ctrl) keeps a when ctrl == 0; we want negX
	// exactly when x's current parity does NOT already match signBit.
	mismatch := 1 ^ ctrlEqual(uint64(signBit), x.IsOdd())
	x.ConditionalSelect(x, negX, mismatch)

	v.x.Set(x)
	v.y.Set(y)
	v.z.One()
	v.t.Multiply(x, y)
	return v, nil
}

// pBigEndian is p = 2^255-19's big-endian byte encoding: 0x7f, thirty
// 0xff bytes, then 0xed.
var pBigEndian = func() [32]byte {
	var p [32]byte
	p[0] = 0x7f
	for i := 1; i < 31; i++ {
		p[i] = 0xff
	}
	p[31] = 0xed
	return p
}()

// canonicalLE reports whether le, a little-endian field-element byte
// string, represents a value strictly less than p = 2^255-19. RFC 8032
// section 5.1.3 requires non-canonical y encodings (y >= p) be rejected
// outright rather than silently reduced.
func canonicalLE(le []byte) bool {
	for i := 0; i < 32; i++ {
		a, b := le[31-i], pBigEndian[i]
		if a != b {
			return a < b
		}
	}
	return false
}
