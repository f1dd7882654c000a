package montfield

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// p256 is NIST P-256's prime, used throughout as a representative
// Montgomery-friendly modulus.
var p256 = func() *Modulus {
	p, _ := new(big.Int).SetString("ffffffff00000001000000000000000000000000ffffffffffffffffffffffff", 16)
	b := make([]byte, 32)
	p.FillBytes(b)
	m := NewModulus(b)
	m.SetSqrtMethod(SqrtMethod3Mod4, 0)
	return m
}()

func elementFromInt64(m *Modulus, v int64) *Element {
	b := make([]byte, 8*m.Limbs())
	big.NewInt(v).FillBytes(b[8*m.Limbs()-8:])
	e := m.NewElement()
	m.SetCanonicalBytes(e, b)
	return e
}

func TestAddSubtractRoundTrip(t *testing.T) {
	a := elementFromInt64(p256, 12345)
	b := elementFromInt64(p256, 6789)

	sum := p256.NewElement().Add(a, b)
	back := p256.NewElement().Subtract(sum, b)
	require.Equal(t, uint64(1), back.Equal(a))
}

func TestMultiplyByOneIsIdentity(t *testing.T) {
	a := elementFromInt64(p256, 424242)
	one := p256.NewElement().One()

	got := p256.NewElement().Multiply(a, one)
	require.Equal(t, uint64(1), got.Equal(a))
}

func TestSquareMatchesMultiply(t *testing.T) {
	a := elementFromInt64(p256, 7)
	sq := p256.NewElement().Square(a)
	mul := p256.NewElement().Multiply(a, a)
	require.Equal(t, uint64(1), sq.Equal(mul))
}

func TestNegateRoundTrip(t *testing.T) {
	a := elementFromInt64(p256, 99)
	neg := p256.NewElement().Negate(a)
	sum := p256.NewElement().Add(a, neg)
	require.Equal(t, uint64(1), sum.IsZero())
}

func TestInvertFermat(t *testing.T) {
	a := elementFromInt64(p256, 7)
	inv := p256.NewElement().InvertFermat(a)
	product := p256.NewElement().Multiply(a, inv)
	require.Equal(t, uint64(1), product.Equal(p256.NewElement().One()))
}

func TestInvertZeroIsZero(t *testing.T) {
	zero := p256.NewElement().Zero()
	inv := p256.NewElement().InvertFermat(zero)
	require.Equal(t, uint64(1), inv.IsZero())
}

func TestConditionalSelect(t *testing.T) {
	a := elementFromInt64(p256, 1)
	b := elementFromInt64(p256, 2)

	got := p256.NewElement().ConditionalSelect(a, b, 0)
	require.Equal(t, uint64(1), got.Equal(a))

	got.ConditionalSelect(a, b, 1)
	require.Equal(t, uint64(1), got.Equal(b))
}

func TestBytesRoundTrip(t *testing.T) {
	a := elementFromInt64(p256, 0xdeadbeef)
	b := p256.NewElement()
	didReduce := p256.SetCanonicalBytes(b, a.Bytes())
	require.Equal(t, uint64(0), didReduce)
	require.Equal(t, uint64(1), b.Equal(a))
}

func TestSetCanonicalBytesRejectsOutOfRange(t *testing.T) {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = 0xff
	}
	e := p256.NewElement()
	didReduce := p256.SetCanonicalBytes(e, raw)
	require.Equal(t, uint64(1), didReduce, "0xff...ff exceeds p256 and must be reported as reduced")
}

func TestSqrt3Mod4(t *testing.T) {
	a := elementFromInt64(p256, 4)
	root, isSquare := p256.NewElement().Sqrt(a)
	require.Equal(t, uint64(1), isSquare)

	sq := p256.NewElement().Square(root)
	require.Equal(t, uint64(1), sq.Equal(a))
}

func TestSqrtNonResidue(t *testing.T) {
	// -1 is a non-residue mod a p = 3 mod 4 prime.
	negOne := p256.NewElement().Negate(p256.NewElement().One())
	_, isSquare := p256.NewElement().Sqrt(negOne)
	require.Equal(t, uint64(0), isSquare)
}

func TestSqrtTonelliShanks(t *testing.T) {
	// P-224's prime is 1 mod 4; build a standalone modulus for it here
	// rather than importing internal/curveparams, to keep this package's
	// tests free of a dependency on its sibling.
	p, _ := new(big.Int).SetString("ffffffffffffffffffffffffffffffff000000000000000000000001", 16)
	b := make([]byte, 28+4) // pad to a multiple of 8 bytes (4 limbs)
	p.FillBytes(b[len(b)-28:])
	m := NewModulus(b)
	m.SetSqrtMethod(SqrtMethodTonelliShanks, 11) // 11 is a QNR mod P-224's prime

	a := elementFromInt64(m, 9)
	root, isSquare := m.NewElement().Sqrt(a)
	require.Equal(t, uint64(1), isSquare)

	sq := m.NewElement().Square(root)
	require.Equal(t, uint64(1), sq.Equal(a))
}

func TestPow2k(t *testing.T) {
	a := elementFromInt64(p256, 3)
	got := p256.NewElement().Pow2k(a, 3)

	want := p256.NewElement().Set(a)
	for i := 0; i < 3; i++ {
		want.Square(want)
	}
	require.Equal(t, uint64(1), got.Equal(want))
}
