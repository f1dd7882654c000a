package ecdsa

import (
	"crypto/hmac"
	"hash"
	"math/big"

	"go.eccore.dev/eccore/wei"
)

// maxNonceAttempts bounds both the outer r=0/s=0 resample loop in sign.go
// and rfc6979Generator's own out-of-range resample loop, per spec.md
// section 4.8: "cap retries at a finite bound (256 suffices) and surface
// a nonce-generation failure if exceeded." Either loop exhausting this
// bound indicates the DRBG itself is broken -- both are astronomically
// unlikely (on the order of 2^-(8*qlen) per attempt) for a sound hash.
const maxNonceAttempts = 256

// rfc6979Generator implements RFC 6979 section 3.2's HMAC-DRBG,
// generalizing the teacher's randomized cSHAKE256 hedge
// (internal/legacyref/secec/ecdsa.go's mitigateDebianAndSony) into the
// deterministic construction spec.md section 4.6 calls for. A single
// generator instance walks the DRBG's retry chain (section 3.2.h.3)
// across repeated [rfc6979Generator.Next] calls, so a rejected candidate
// (r == 0 or s == 0, checked by the caller) resamples from the DRBG's
// advanced state rather than regenerating the same candidate forever.
type rfc6979Generator struct {
	c    *Curve
	newH func() hash.Hash
	k, v []byte
	qlen int

	started bool
}

// newRFC6979Generator runs RFC 6979 section 3.2 steps a-f: derive the
// initial (K, V) HMAC-DRBG state from the private scalar and message
// digest.
func newRFC6979Generator(c *Curve, priv *wei.Scalar, hBytes []byte) *rfc6979Generator {
	qlen := c.ScalarModulus().BitLen()
	newH := c.newHash

	x := int2octets(priv.Bytes(), c.ScalarModulus().ByteLen())
	h1 := bits2octets(c, hBytes, qlen)

	hashSize := newH().Size()
	v := make([]byte, hashSize)
	for i := range v {
		v[i] = 0x01
	}
	k := make([]byte, hashSize)

	mac := hmac.New(newH, k)
	mac.Write(v)
	mac.Write([]byte{0x00})
	mac.Write(x)
	mac.Write(h1)
	k = mac.Sum(nil)

	mac = hmac.New(newH, k)
	mac.Write(v)
	v = mac.Sum(nil)

	mac = hmac.New(newH, k)
	mac.Write(v)
	mac.Write([]byte{0x01})
	mac.Write(x)
	mac.Write(h1)
	k = mac.Sum(nil)

	mac = hmac.New(newH, k)
	mac.Write(v)
	v = mac.Sum(nil)

	return &rfc6979Generator{c: c, newH: newH, k: k, v: v, qlen: qlen}
}

// advance implements RFC 6979 section 3.2.h.3's resample step:
// K = HMAC_K(V || 0x00), V = HMAC_K(V).
func (g *rfc6979Generator) advance() {
	mac := hmac.New(g.newH, g.k)
	mac.Write(g.v)
	mac.Write([]byte{0x00})
	g.k = mac.Sum(nil)

	mac = hmac.New(g.newH, g.k)
	mac.Write(g.v)
	g.v = mac.Sum(nil)
}

// Next returns the next deterministic candidate nonce from the DRBG
// chain, or ok == false if no in-range candidate turned up within
// maxNonceAttempts resamples. The first call after construction uses the
// (K, V) state newRFC6979Generator already derived; every call after
// that (i.e. every candidate the caller rejected as r == 0 or s == 0)
// advances the chain first, so Next never repeats a rejected candidate.
func (g *rfc6979Generator) Next() (*wei.Scalar, bool) {
	for attempt := 0; attempt < maxNonceAttempts; attempt++ {
		if g.started {
			g.advance()
		}
		g.started = true

		var t []byte
		for len(t)*8 < g.qlen {
			mac := hmac.New(g.newH, g.k)
			mac.Write(g.v)
			g.v = mac.Sum(nil)
			t = append(t, g.v...)
		}

		candidate, err := g.c.NewScalarFromBigInt(bits2int(t, g.qlen))
		if err == nil && candidate.IsZero() == 0 {
			return candidate, true
		}
		// t >= n (or, vanishingly unlikely, t == 0): RFC 6979's own
		// out-of-range resample, counted against the same bound.
	}
	return nil, false
}

// bits2int implements RFC 6979 section 2.3.2: interpret b as a big-endian
// integer and, if it is longer than qlen bits, keep only the leftmost
// qlen bits.
func bits2int(b []byte, qlen int) *big.Int {
	v := new(big.Int).SetBytes(b)
	if excess := len(b)*8 - qlen; excess > 0 {
		v.Rsh(v, uint(excess))
	}
	return v
}

// int2octets implements RFC 6979 section 2.3.3: encode v as a fixed
// rlen-byte (the byte length of n) big-endian string. v is either a
// limb-padded scalar encoding, whose extra leading zero bytes are
// dropped, or a shorter big.Int encoding, which is left-padded.
func int2octets(v []byte, rlen int) []byte {
	if len(v) >= rlen {
		return v[len(v)-rlen:]
	}
	out := make([]byte, rlen)
	copy(out[rlen-len(v):], v)
	return out
}

// bits2octets implements RFC 6979 section 2.3.4: bits2int the input,
// reduce mod n (the one step bits2int alone doesn't do), then int2octets
// the result. hBytes is the raw message digest (not yet reduced).
func bits2octets(c *Curve, hBytes []byte, qlen int) []byte {
	z := bits2int(hBytes, qlen)
	z.Mod(z, c.ScalarModulus().BigInt())
	return int2octets(z.Bytes(), c.ScalarModulus().ByteLen())
}
