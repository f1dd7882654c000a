package ecdsa

import (
	"errors"
	"math/big"

	"go.eccore.dev/eccore/wei"
)

// Signature is a parsed (r, s, recoveryID) ECDSA signature. recoveryID's
// bit 0 is the y-parity of the ephemeral point R, and bit 1 records
// whether x(R) had to be corrected by +n to recover the exact x
// coordinate (SPEC_FULL.md's Open Question resolution #3) -- always 0
// in this module's five curves except in the (never observed in
// practice) case the bit exists to cover.
type Signature struct {
	R, S       *wei.Scalar
	RecoveryID byte
}

// Sign signs hash (the output of hashing a larger message with c's hash
// function, or any digest at least as long) with k, using RFC 6979
// deterministic nonce generation (rfc6979.go) in place of the teacher's
// randomized hedge, per SPEC_FULL.md section 4.6. s is always normalized
// to the lower half of [1, n), as secec/ecdsa.go's sign does.
func (k *PrivateKey) Sign(hash []byte) (*Signature, error) {
	c := k.curve
	if len(hash) == 0 {
		return nil, ErrInvalidDigest
	}

	e := c.ScalarFromWideBytes(hash)
	gen := newRFC6979Generator(c, k.scalar, hash)

	var r, s *wei.Scalar
	var recoveryID byte
	attempts := 0
	for {
		attempts++
		if attempts > maxNonceAttempts {
			return nil, ErrNonceExhausted
		}

		kNonce, ok := gen.Next()
		if !ok {
			return nil, ErrNonceExhausted
		}

		R := c.NewPoint().ScalarBaseMult(kNonce)
		rX, rYIsOdd, err := pointXAndParity(c, R)
		if err != nil {
			// R is never the identity for a nonzero nonce on a
			// prime-order curve; this is unreachable in practice.
			return nil, err
		}

		rCandidate := c.NewScalar()
		_, didReduce := c.SetCanonicalBytes(rCandidate, padBytes(rX, c.ScalarSize()))
		if rCandidate.IsZero() != 0 {
			continue
		}
		r = rCandidate

		kInv := c.NewScalar().Invert(kNonce)
		s = c.NewScalar().Multiply(r, k.scalar)
		s.Add(s, e)
		s.Multiply(s, kInv)
		if s.IsZero() != 0 {
			continue
		}

		recoveryID = (byte(didReduce&1) << 1) | boolToByte(rYIsOdd)
		break
	}

	negateS := s.IsGreaterThanHalfN()
	s.ConditionalNegate(s, negateS)
	recoveryID ^= byte(negateS)

	return &Signature{R: r, S: s, RecoveryID: recoveryID}, nil
}

// Verify reports whether sig is a valid signature of hash under k,
// following SEC 1, Version 2.0, Section 4.1.4.
func (k *PublicKey) Verify(hash []byte, sig *Signature) bool {
	return verify(k, hash, sig.R, sig.S) == nil
}

func verify(q *PublicKey, hBytes []byte, r, s *wei.Scalar) error {
	c := q.curve
	if r.IsZero() != 0 || s.IsZero() != 0 {
		return ErrInvalidScalar
	}

	e := c.ScalarFromWideBytes(hBytes)

	sInv := c.NewScalar().Invert(s)
	u1 := c.NewScalar().Multiply(e, sInv)
	u2 := c.NewScalar().Multiply(r, sInv)

	R := c.NewPoint().MulDoubleVartime(u1, u2, q.point)
	if R.IsIdentity() != 0 {
		return ErrRIsIdentity
	}

	// x(R') mod n, via a direct reduction (exactly how r was built in
	// Sign) rather than ScalarFromWideBytes: that helper's bits2int
	// right-shift is only correct for a hash digest whose bit length may
	// exceed n's, not for a field element whose byte width can itself
	// exceed n's bit length (P-521: 528-bit x vs. a 521-bit n).
	x, _, _ := R.Affine()
	v := c.NewScalar()
	c.SetCanonicalBytes(v, padBytes(fieldElementBytes(c, x), c.ScalarSize()))
	if v.Equal(r) != 1 {
		return ErrSignatureMismatch
	}
	return nil
}

// Recover recovers the public key used to produce sig over hash,
// following SEC 1, Version 2.0, Section 4.1.6, using sig.RecoveryID to
// pick the correct candidate R directly rather than testing all four.
func (c *Curve) Recover(hash []byte, sig *Signature) (*PublicKey, error) {
	if sig.RecoveryID > 3 {
		return nil, ErrRecoveryIDRange
	}
	if sig.R.IsZero() != 0 || sig.S.IsZero() != 0 {
		return nil, ErrInvalidScalar
	}

	R, err := recoverPoint(c, sig.R, sig.RecoveryID)
	if err != nil {
		return nil, err
	}

	e := c.ScalarFromWideBytes(hash)
	negE := c.NewScalar().Negate(e)

	rInv := c.NewScalar().Invert(sig.R)
	u1 := c.NewScalar().Multiply(negE, rInv)
	u2 := c.NewScalar().Multiply(sig.S, rInv)

	Q := c.NewPoint().MulDoubleVartime(u1, u2, R)
	return c.NewPublicKeyFromPoint(Q)
}

func recoverPoint(c *Curve, r *wei.Scalar, recoveryID byte) (*wei.Point, error) {
	xBig := new(big.Int).SetBytes(r.Bytes())
	if recoveryID&2 != 0 {
		xBig.Add(xBig, c.ScalarModulus().BigInt())
		if xBig.Cmp(c.FieldModulus().BigInt()) >= 0 {
			return nil, errors.New("ecdsa: invalid recovery id: x overflow out of range")
		}
	}

	byteLen := c.FieldModulus().ByteLen()
	xBytes := make([]byte, byteLen)
	raw := xBig.Bytes()
	copy(xBytes[byteLen-len(raw):], raw)

	prefix := byte(0x02)
	if recoveryID&1 != 0 {
		prefix = 0x03
	}
	enc := append([]byte{prefix}, xBytes...)

	pt, err := c.Import(c.NewPoint(), enc)
	if err != nil {
		return nil, ErrInvalidScalar
	}
	return pt, nil
}

// pointXAndParity returns R's x coordinate (as a fixed-width byte
// string) and the parity of its y coordinate. R must not be the
// identity.
func pointXAndParity(c *Curve, R *wei.Point) ([]byte, bool, error) {
	if R.IsIdentity() != 0 {
		return nil, false, ErrRIsIdentity
	}
	x, y, _ := R.Affine()
	return fieldElementBytes(c, x), y.IsOdd() == 1, nil
}

func fieldElementBytes(c *Curve, fe interface{ Bytes() []byte }) []byte {
	raw := fe.Bytes()
	want := c.FieldModulus().ByteLen()
	if len(raw) == want {
		return raw
	}
	return raw[len(raw)-want:]
}

// padBytes left-pads src with zeros up to width bytes; src is never
// longer than width for the field/scalar pairs this package handles.
func padBytes(src []byte, width int) []byte {
	if len(src) == width {
		return src
	}
	out := make([]byte, width)
	copy(out[width-len(src):], src)
	return out
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
