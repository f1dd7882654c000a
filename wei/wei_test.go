package wei

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"go.eccore.dev/eccore/internal/curveparams"
)

func TestGeneratorOnCurve(t *testing.T) {
	for _, c := range []*Curve{P224, P256, P384, P521, Secp256k1} {
		g := c.NewPoint().Generator()
		require.Equal(t, uint64(0), g.IsIdentity(), "%s: generator is not identity", c.Name)

		x, y, ok := g.Affine()
		require.Equal(t, uint64(1), ok, "%s: generator is not identity (affine)", c.Name)
		require.Equal(t, uint64(1), c.IsOnCurve(x, y), "%s: generator on curve", c.Name)
	}
}

func TestDoubleEqualsAdd(t *testing.T) {
	for _, c := range []*Curve{P224, P256, P384, P521, Secp256k1} {
		g := c.NewPoint().Generator()
		dbl := c.NewPoint().Double(g)
		add := c.NewPoint().Add(g, g)
		require.Equal(t, uint64(1), dbl.Equal(add), "%s: Double(G) == Add(G, G)", c.Name)
	}
}

func TestAddNegateIsIdentity(t *testing.T) {
	for _, c := range []*Curve{P224, P256, P384, P521, Secp256k1} {
		g := c.NewPoint().Generator()
		negG := c.NewPoint().Negate(g)
		sum := c.NewPoint().Add(g, negG)
		require.Equal(t, uint64(1), sum.IsIdentity(), "%s: G + (-G) == identity", c.Name)
	}
}

func TestAddIdentity(t *testing.T) {
	for _, c := range []*Curve{P224, P256, Secp256k1} {
		g := c.NewPoint().Generator()
		o := c.NewPoint().Identity()

		require.Equal(t, uint64(1), c.NewPoint().Add(g, o).Equal(g), "%s: G + O == G", c.Name)
		require.Equal(t, uint64(1), c.NewPoint().Add(o, g).Equal(g), "%s: O + G == G", c.Name)
	}
}

func TestScalarMultMatchesRepeatedAdd(t *testing.T) {
	for _, c := range []*Curve{P256, Secp256k1} {
		g := c.NewPoint().Generator()

		five := c.NewScalar()
		c.SetCanonicalBytes(five, beScalarBytes(c, 5))

		viaMul := c.NewPoint().ScalarMult(five, g)

		viaAdd := c.NewPoint().Identity()
		for i := 0; i < 5; i++ {
			viaAdd.Add(viaAdd, g)
		}
		require.Equal(t, uint64(1), viaMul.Equal(viaAdd), "%s: 5*G via ScalarMult == 5*G via repeated Add", c.Name)
	}
}

func TestScalarBaseMultMatchesScalarMult(t *testing.T) {
	for _, c := range []*Curve{P224, P256, P384, P521, Secp256k1} {
		g := c.NewPoint().Generator()

		s, err := c.NewRandomScalar(rand.Reader)
		require.NoError(t, err)

		viaBase := c.NewPoint().ScalarBaseMult(s)
		viaGeneric := c.NewPoint().ScalarMult(s, g)
		require.Equal(t, uint64(1), viaBase.Equal(viaGeneric), "%s: ScalarBaseMult == ScalarMult(s, G)", c.Name)
	}
}

func TestConstantAndVartimeAgree(t *testing.T) {
	for _, c := range []*Curve{P256, Secp256k1} {
		g := c.NewPoint().Generator()

		s, err := c.NewRandomScalar(rand.Reader)
		require.NoError(t, err)

		ct := c.NewPoint().ScalarBaseMult(s)
		vt := c.NewPoint().ScalarBaseMultVartime(s)
		require.Equal(t, uint64(1), ct.Equal(vt), "%s: ScalarBaseMult == ScalarBaseMultVartime", c.Name)

		ct2 := c.NewPoint().ScalarMult(s, g)
		vt2 := c.NewPoint().ScalarMultVartime(s, g)
		require.Equal(t, uint64(1), ct2.Equal(vt2), "%s: ScalarMult == ScalarMultVartime", c.Name)
	}
}

func TestMulDoubleVartime(t *testing.T) {
	for _, c := range []*Curve{P256, Secp256k1} {
		g := c.NewPoint().Generator()

		k1, err := c.NewRandomScalar(rand.Reader)
		require.NoError(t, err)
		k2, err := c.NewRandomScalar(rand.Reader)
		require.NoError(t, err)

		p, err := c.NewRandomScalar(rand.Reader)
		require.NoError(t, err)
		pPoint := c.NewPoint().ScalarMult(p, g)

		got := c.NewPoint().MulDoubleVartime(k1, k2, pPoint)

		want := c.NewPoint().Add(
			c.NewPoint().ScalarBaseMultVartime(k1),
			c.NewPoint().ScalarMultVartime(k2, pPoint),
		)
		require.Equal(t, uint64(1), got.Equal(want), "%s: MulDoubleVartime(k1, k2, P) == k1*G + k2*P", c.Name)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, c := range []*Curve{P224, P256, P384, P521, Secp256k1} {
		g := c.NewPoint().Generator()

		s, err := c.NewRandomScalar(rand.Reader)
		require.NoError(t, err)
		p := c.NewPoint().ScalarMult(s, g)

		for _, compressed := range []bool{true, false} {
			enc := p.Export(compressed)
			dec, err := c.Import(c.NewPoint(), enc)
			require.NoError(t, err, "%s compressed=%v", c.Name, compressed)
			require.Equal(t, uint64(1), dec.Equal(p), "%s compressed=%v: Import(Export(p)) == p", c.Name, compressed)
		}
	}
}

func TestEncodeDecodeInfinity(t *testing.T) {
	c := P256
	o := c.NewPoint().Identity()
	enc := o.Export(true)
	require.Equal(t, []byte{0x00}, enc)

	dec, err := c.Import(c.NewPoint(), enc)
	require.NoError(t, err)
	require.Equal(t, uint64(1), dec.IsIdentity())
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	c := P256
	_, err := c.Import(c.NewPoint(), make([]byte, 3))
	require.Error(t, err, "wrong-length encoding must be rejected")
}

func TestDecodeRejectsOutOfRangeX(t *testing.T) {
	c := P256
	// 0x02 prefix followed by all-0xff bytes: x >= p, must be rejected.
	enc := make([]byte, c.CompressedSize())
	enc[0] = 0x02
	for i := 1; i < len(enc); i++ {
		enc[i] = 0xff
	}
	_, err := c.Import(c.NewPoint(), enc)
	require.Error(t, err, "x >= p must be rejected")
}

func TestDecodeParityBits(t *testing.T) {
	c := P256
	g := c.NewPoint().Generator()
	x, y, _ := g.Affine()
	require.Equal(t, uint64(1), c.IsOnCurve(x, y))

	enc := g.Export(true)
	// Flip the parity bit; the decoded point must still be on-curve but
	// must not equal G (the other root is -G's y, matched on x).
	flipped := append([]byte(nil), enc...)
	flipped[0] ^= 0x01

	dec, err := c.Import(c.NewPoint(), flipped)
	require.NoError(t, err)
	require.NotEqual(t, uint64(1), dec.Equal(g), "flipped parity bit must not decode to G")

	negG := c.NewPoint().Negate(g)
	require.Equal(t, uint64(1), dec.Equal(negG), "flipped parity bit decodes to -G")
}

// TestP256DoubleGeneratorVector checks the published compressed encoding
// of 2*G for P-256 against spec.md section 8's group-law vector.
func TestP256DoubleGeneratorVector(t *testing.T) {
	c := P256
	g := c.NewPoint().Generator()
	twoG := c.NewPoint().Double(g)

	want, err := hex.DecodeString("037cf27b188d034f7e8a52380304b51ac3c08969e277f21b35a60b48fc47669978")
	require.NoError(t, err)
	require.Equal(t, want, twoG.Export(true), "2*G compressed encoding")

	threeG := c.NewPoint().Add(twoG, g)
	want3, err := hex.DecodeString("025ecbe4d1a6330a44c8f7ef951d4bf165e6c6b721efada985fb41661bc6e7fd6c")
	require.NoError(t, err)
	require.Equal(t, want3, threeG.Export(true), "(2*G)+G compressed encoding")
}

func TestSecp256k1GLVMatchesGeneric(t *testing.T) {
	c := Secp256k1
	g := c.NewPoint().Generator()

	s, err := c.NewRandomScalar(rand.Reader)
	require.NoError(t, err)

	viaGLV := c.NewPoint().MulDoubleVartime(c.NewScalar(), s, g)

	// Generic ladder, independent of the GLV split path: double-and-add
	// over the scalar's bits, bypassing the GLV split and windowing entirely.
	acc := c.NewPoint().Identity()
	for _, bit := range s.bitsMSBFirst() {
		acc.Double(acc)
		if bit == 1 {
			acc.Add(acc, g)
		}
	}
	require.Equal(t, uint64(1), viaGLV.Equal(acc), "GLV-accelerated MulDoubleVartime(0, s, G) agrees with plain double-and-add")
}

func TestRandomizeDoesNotAffectResult(t *testing.T) {
	// A fresh Curve instance, so Randomize doesn't mutate the shared P256
	// blinding state other tests in this file rely on.
	c := NewCurve(curveparams.P256)

	s, err := c.NewRandomScalar(rand.Reader)
	require.NoError(t, err)

	before := c.NewPoint().ScalarBaseMult(s)

	entropy := make([]byte, 32)
	_, err = rand.Read(entropy)
	require.NoError(t, err)
	require.NoError(t, c.Randomize(entropy))

	after := c.NewPoint().ScalarBaseMult(s)
	require.Equal(t, uint64(1), before.Equal(after), "blinding must not change ScalarBaseMult's result")
}

func beScalarBytes(c *Curve, v uint64) []byte {
	buf := make([]byte, c.ScalarSize())
	for i := 0; i < 8; i++ {
		buf[len(buf)-1-i] = byte(v >> (8 * i))
	}
	return buf
}
