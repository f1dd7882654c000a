package curveparams

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWeierstrassBasePointOnCurve(t *testing.T) {
	for _, p := range All {
		// y^2 == x^3 + a*x + b mod P
		lhs := new(big.Int).Exp(p.Gy, big.NewInt(2), p.P)

		rhs := new(big.Int).Exp(p.Gx, big.NewInt(3), p.P)
		ax := new(big.Int).Mul(p.A, p.Gx)
		rhs.Add(rhs, ax)
		rhs.Add(rhs, p.B)
		rhs.Mod(rhs, p.P)

		require.Equal(t, 0, lhs.Cmp(rhs), "%s: base point must satisfy the curve equation", p.Name)
	}
}

func TestWeierstrassAMinus3Flag(t *testing.T) {
	for _, p := range All {
		wantAMinus3 := new(big.Int).Sub(p.P, big.NewInt(3))
		got := p.A.Cmp(wantAMinus3) == 0
		require.Equal(t, got, p.AMinus3, "%s: AMinus3 flag must match a == p-3", p.Name)
	}
}

func TestWeierstrassOrderDiffersFromField(t *testing.T) {
	// N and P are close in magnitude (Hasse's bound) but N is never
	// exactly P; this is a sanity check against transcription errors
	// that would collapse the two.
	for _, p := range All {
		require.NotEqual(t, 0, p.N.Cmp(p.P), "%s: N must differ from P", p.Name)
		require.Positive(t, p.N.BitLen(), "%s: N must be non-zero", p.Name)
	}
}

func TestWeierstrassBitSizeMatchesPrime(t *testing.T) {
	for _, p := range All {
		// P-224/256/384/521's primes all have exactly BitSize bits;
		// secp256k1's too (256-bit prime).
		require.Equal(t, p.BitSize, p.P.BitLen(), "%s: BitSize must match P.BitLen()", p.Name)
	}
}

func TestPMod4Classification(t *testing.T) {
	for _, p := range All {
		mod4 := new(big.Int).Mod(p.P, big.NewInt(4))
		wantTonelliShanks := mod4.Cmp(big.NewInt(1)) == 0
		require.Equal(t, wantTonelliShanks, p.TonelliShanks, "%s: TonelliShanks flag must match P mod 4", p.Name)
	}
}

func TestSecp256k1EndomorphismRelation(t *testing.T) {
	e := Secp256k1.Endomorphism
	require.NotNil(t, e)

	// beta is a primitive cube root of unity mod p: beta^3 == 1 and
	// beta != 1.
	betaCubed := new(big.Int).Exp(e.Beta, big.NewInt(3), Secp256k1.P)
	require.Equal(t, 0, betaCubed.Cmp(big.NewInt(1)), "beta^3 must be 1 mod p")
	require.NotEqual(t, 0, e.Beta.Cmp(big.NewInt(1)), "beta must not be 1")

	// lambda (recovered as N - NegLambda mod N) is a primitive cube root
	// of unity mod n too.
	lambda := new(big.Int).Sub(Secp256k1.N, e.NegLambda)
	lambda.Mod(lambda, Secp256k1.N)
	lambdaCubed := new(big.Int).Exp(lambda, big.NewInt(3), Secp256k1.N)
	require.Equal(t, 0, lambdaCubed.Cmp(big.NewInt(1)), "lambda^3 must be 1 mod n")
}

func TestEd25519DerivedConstants(t *testing.T) {
	ed := Ed25519

	// d == -121665/121666 mod p, by construction; re-derive and compare.
	inv121666 := new(big.Int).ModInverse(big.NewInt(121666), ed.P)
	want := new(big.Int).Mod(new(big.Int).Mul(big.NewInt(-121665), inv121666), ed.P)
	require.Equal(t, 0, ed.D.Cmp(want), "d must equal -121665/121666 mod p")

	// By == 4/5 mod p.
	inv5 := new(big.Int).ModInverse(big.NewInt(5), ed.P)
	wantY := new(big.Int).Mod(new(big.Int).Mul(big.NewInt(4), inv5), ed.P)
	require.Equal(t, 0, ed.By.Cmp(wantY), "By must equal 4/5 mod p")

	require.Equal(t, 0, ed.A.Cmp(new(big.Int).Sub(ed.P, big.NewInt(1))), "a must be p-1 (i.e. -1 mod p)")
}
