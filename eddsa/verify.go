package eddsa

import (
	"crypto/sha512"

	"go.eccore.dev/eccore/edwards"
)

// Verify reports whether sig is a valid Ed25519 signature of msg under
// pub, following RFC 8032 section 5.1.7: decode R and S (S must be a
// fully-reduced scalar, R need not decode to a small-order point -- this
// module does not implement the optional cofactor-8 check some
// deployments add), recompute k, and check [S]*B == R + [k]*pub via
// [edwards.Point.MulDoubleVartime]. Comparing in the group (via
// Point.Equal's cross-multiplied projective check) rather than
// re-encoding R rejects signature malleability in R's encoding, per
// spec.md section 4.7.
func Verify(pub *PublicKey, msg, sig []byte) bool {
	return verify(pub, msg, sig) == nil
}

func verify(pub *PublicKey, msg, sig []byte) error {
	if len(sig) != SignatureSize {
		return ErrInvalidSignature
	}
	c := edwards.Ed25519

	R, err := c.Decode(c.NewPoint(), sig[:32])
	if err != nil {
		return ErrInvalidSignature
	}

	s := c.NewScalar()
	if _, didReduce := c.SetCanonicalBytes(s, sig[32:64]); didReduce != 0 {
		return ErrInvalidSignature
	}

	kh := sha512.New()
	kh.Write(sig[:32])
	kh.Write(pub.encoded[:])
	kh.Write(msg)
	k := c.ScalarFromWideBytes(kh.Sum(nil))

	negK := c.NewScalar().Negate(k)
	candidate := c.NewPoint().MulDoubleVartime(s, negK, pub.point)
	if candidate.Equal(R) != 1 {
		return ErrSignatureMismatch
	}
	return nil
}
