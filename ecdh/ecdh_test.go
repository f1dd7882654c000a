package ecdh

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"go.eccore.dev/eccore/ecdsa"
)

var allCurves = []*ecdsa.Curve{ecdsa.P224, ecdsa.P256, ecdsa.P384, ecdsa.P521, ecdsa.Secp256k1}

func TestDiffieHellman(t *testing.T) {
	for _, c := range allCurves {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			alice, err := GenerateKey(c, rand.Reader)
			require.NoError(t, err, "GenerateKey - Alice")
			bob, err := GenerateKey(c, rand.Reader)
			require.NoError(t, err, "GenerateKey - Bob")

			aliceShared, err := X(alice, bob.PublicKey())
			require.NoError(t, err, "X - Alice")
			bobShared, err := X(bob, alice.PublicKey())
			require.NoError(t, err, "X - Bob")

			require.True(t, bytes.Equal(aliceShared, bobShared), "shared secrets must match")
		})
	}
}
