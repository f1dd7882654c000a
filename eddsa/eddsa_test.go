package eddsa

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

const testMessage = "Most lawyers couldn't recognize a Ponzi scheme if they were having dinner with Charles Ponzi."

func TestSignVerifyRoundTrip(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	require.NoError(t, err, "GenerateKey")

	msg := []byte(testMessage)
	sig := priv.Sign(msg)
	require.Len(t, sig, SignatureSize)

	require.True(t, Verify(priv.Public(), msg, sig), "Verify")

	corrupted := append([]byte(nil), sig...)
	corrupted[63] ^= 0x01
	require.False(t, Verify(priv.Public(), msg, corrupted), "Verify - corrupted S")

	tmpMsg := append([]byte(nil), msg...)
	tmpMsg[0] ^= 0x69
	require.False(t, Verify(priv.Public(), tmpMsg, sig), "Verify - corrupted msg")

	otherPriv, err := GenerateKey(rand.Reader)
	require.NoError(t, err)
	require.False(t, Verify(otherPriv.Public(), msg, sig), "Verify - wrong key")
}

func TestSignIsDeterministic(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	require.NoError(t, err)

	msg := []byte(testMessage)
	sig1 := priv.Sign(msg)
	sig2 := priv.Sign(msg)
	require.Equal(t, sig1, sig2, "PureEdDSA signing must be deterministic")
}

func TestPublicKeyEncodeDecodeRoundTrip(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	require.NoError(t, err)

	enc := priv.Public().Bytes()
	require.Len(t, enc, PublicKeySize)

	pub, err := NewPublicKey(enc)
	require.NoError(t, err)
	require.Equal(t, enc, pub.Bytes())
}

func TestInvalidSeedLength(t *testing.T) {
	_, err := NewPrivateKeyFromSeed(make([]byte, 31))
	require.ErrorIs(t, err, ErrInvalidSeed)
}

func TestInvalidSignatureLength(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	require.NoError(t, err)
	require.False(t, Verify(priv.Public(), []byte(testMessage), make([]byte, 63)))
}

// TestEmptyMessage exercises RFC 8032's simplest boundary case: signing
// and verifying the empty message.
func TestEmptyMessage(t *testing.T) {
	priv, err := GenerateKey(rand.Reader)
	require.NoError(t, err)

	sig := priv.Sign(nil)
	require.Len(t, sig, SignatureSize)
	require.True(t, Verify(priv.Public(), nil, sig))
}

// TestSeedDerivationIsDeterministic checks that the same seed always
// derives the same key pair, since RFC 8032 key generation has no
// randomized component beyond the seed itself.
func TestSeedDerivationIsDeterministic(t *testing.T) {
	var seed [SeedSize]byte
	for i := range seed {
		seed[i] = byte(i)
	}

	priv1, err := NewPrivateKeyFromSeed(seed[:])
	require.NoError(t, err)
	priv2, err := NewPrivateKeyFromSeed(seed[:])
	require.NoError(t, err)

	require.Equal(t, priv1.Public().Bytes(), priv2.Public().Bytes())

	sig1 := priv1.Sign([]byte(testMessage))
	sig2 := priv2.Sign([]byte(testMessage))
	require.Equal(t, sig1, sig2)
}
