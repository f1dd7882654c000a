package ecdsa

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

const testMessage = "Most lawyers couldn't recognize a Ponzi scheme if they were having dinner with Charles Ponzi."

func hashMsgForTests(b []byte) []byte {
	h := sha256.Sum256(b)
	return h[:]
}

var allCurves = []*Curve{P224, P256, P384, P521, Secp256k1}

func TestSignVerifyRoundTrip(t *testing.T) {
	hash := hashMsgForTests([]byte(testMessage))

	for _, c := range allCurves {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			priv, err := c.GenerateKey(rand.Reader)
			require.NoError(t, err, "GenerateKey")

			sig, err := priv.Sign(hash)
			require.NoError(t, err, "Sign")
			require.LessOrEqual(t, byte(sig.RecoveryID), byte(3), "RecoveryID in range")

			ok := priv.PublicKey().Verify(hash, sig)
			require.True(t, ok, "Verify")

			// A corrupted signature must not verify.
			corrupted := &Signature{R: sig.R, S: c.NewScalar().Add(sig.S, c.NewScalar().One()), RecoveryID: sig.RecoveryID}
			require.False(t, priv.PublicKey().Verify(hash, corrupted), "Verify - corrupted s")

			// A corrupted digest must not verify.
			tmpHash := bytes.Clone(hash)
			tmpHash[0] ^= 0x69
			require.False(t, priv.PublicKey().Verify(tmpHash, sig), "Verify - corrupted hash")
		})
	}
}

func TestSignIsDeterministic(t *testing.T) {
	hash := hashMsgForTests([]byte(testMessage))

	for _, c := range allCurves {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			priv, err := c.GenerateKey(rand.Reader)
			require.NoError(t, err, "GenerateKey")

			sig1, err := priv.Sign(hash)
			require.NoError(t, err, "Sign 1")
			sig2, err := priv.Sign(hash)
			require.NoError(t, err, "Sign 2")

			require.EqualValues(t, sig1.R.Bytes(), sig2.R.Bytes(), "r should be identical (RFC 6979)")
			require.EqualValues(t, sig1.S.Bytes(), sig2.S.Bytes(), "s should be identical (RFC 6979)")
		})
	}
}

func TestLowS(t *testing.T) {
	hash := hashMsgForTests([]byte(testMessage))

	for _, c := range allCurves {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			priv, err := c.GenerateKey(rand.Reader)
			require.NoError(t, err, "GenerateKey")

			sig, err := priv.Sign(hash)
			require.NoError(t, err, "Sign")
			require.Zero(t, sig.S.IsGreaterThanHalfN(), "s must be normalized to the lower half of [1, n)")
		})
	}
}

func TestRecover(t *testing.T) {
	hash := hashMsgForTests([]byte(testMessage))

	for _, c := range allCurves {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			priv, err := c.GenerateKey(rand.Reader)
			require.NoError(t, err, "GenerateKey")

			sig, err := priv.Sign(hash)
			require.NoError(t, err, "Sign")

			recovered, err := c.Recover(hash, sig)
			require.NoError(t, err, "Recover")
			require.True(t, recovered.Point().Equal(priv.PublicKey().Point()) == 1, "recovered key should match")
		})
	}
}

func TestASN1RoundTrip(t *testing.T) {
	hash := hashMsgForTests([]byte(testMessage))

	for _, c := range allCurves {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			priv, err := c.GenerateKey(rand.Reader)
			require.NoError(t, err, "GenerateKey")

			sig, err := priv.Sign(hash)
			require.NoError(t, err, "Sign")

			der := sig.MarshalASN1()
			parsed, err := c.ParseASN1Signature(der)
			require.NoError(t, err, "ParseASN1Signature")
			require.True(t, priv.PublicKey().Verify(hash, parsed), "re-parsed signature should verify")

			pubDER := priv.PublicKey().MarshalASN1PublicKey()
			parsedPub, err := c.ParseASN1PublicKey(pubDER)
			require.NoError(t, err, "ParseASN1PublicKey")
			require.True(t, parsedPub.Point().Equal(priv.PublicKey().Point()) == 1, "re-parsed public key should match")
		})
	}
}

func TestInvalidPrivateKey(t *testing.T) {
	for _, c := range allCurves {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			zero := make([]byte, c.ScalarSize())
			_, err := c.NewPrivateKey(zero)
			require.Error(t, err, "the zero scalar is not a valid private key")
		})
	}
}
