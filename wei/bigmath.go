package wei

import "math/big"

// This file holds the handful of math/big helpers
// [Curve.splitScalarVartime] needs to run the GLV lattice-reduction
// division step. All of it operates on public curve constants and a
// public-by-the-time-it-matters scalar (see glvSplitVartime's callers),
// exactly as internal/legacyref/point_mul_glv.go's splitVartime does.

func bigFromElement(e interface{ Bytes() []byte }) *big.Int {
	return new(big.Int).SetBytes(e.Bytes())
}

func bigFromScalar(s *Scalar) *big.Int {
	return new(big.Int).SetBytes(s.Bytes())
}

func mulBig(a, b *big.Int) *big.Int {
	return new(big.Int).Mul(a, b)
}

func bigDiv(a, b *big.Int) *big.Int {
	return new(big.Int).Div(a, b)
}

func (c *Curve) scalarModulusBig() *big.Int {
	return c.scalar.BigInt()
}

func scalarFromBig(c *Curve, v *big.Int) *Scalar {
	limbLen := c.ScalarSize()
	raw := v.Bytes()
	padded := make([]byte, limbLen)
	copy(padded[limbLen-len(raw):], raw)
	s := c.NewScalar()
	c.SetCanonicalBytes(s, padded)
	return s
}
