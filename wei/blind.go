package wei

import "crypto/rand"

// blindState is a curve's sign-blinding pair: a random scalar r and the
// precomputed point r*G, as spec.md section 5 describes ("a blinding
// pair (scalar r and point r*G) for sign-blinding"). [Point.ScalarBaseMult]
// folds this in so the comb-table walk consumes s+r rather than s
// directly, masking the secret scalar's value from whatever fixed
// sequence of table lookups a side channel might otherwise observe.
type blindState struct {
	r  *Scalar
	rG *Point
}

// Randomize reseeds c's blinding pair from entropy. spec.md section 5
// requires this mutation have no effect on verification outcomes, and
// requires callers to serialize calls to Randomize against concurrent
// use of [Point.ScalarBaseMult] on c -- this matches the teacher's own
// division of labor, where construction never takes an io.Reader and
// only the signing entry points do.
func (c *Curve) Randomize(entropy []byte) error {
	r, err := c.NewRandomScalar(newEntropyReader(entropy))
	if err != nil {
		return err
	}
	c.blind = &blindState{
		r:  r,
		rG: c.newRcvr().ScalarBaseMultVartime(r),
	}
	return nil
}

// ensureBlind seeds c's blinding pair from crypto/rand if it is not set
// yet. [NewCurve] calls it once, so callers that never call
// [Curve.Randomize] explicitly still get blinded signing by default, and
// blinded operations never write to c.
func (c *Curve) ensureBlind() {
	if c.blind != nil {
		return
	}
	r, err := c.NewRandomScalar(rand.Reader)
	if err != nil {
		// crypto/rand failing here means the OS entropy source is
		// broken; there is no safe fallback for secret-dependent work.
		panic("wei: failed to seed blinding state: " + err.Error())
	}
	c.blind = &blindState{
		r:  r,
		rG: c.newRcvr().ScalarBaseMultVartime(r),
	}
}

// newEntropyReader turns a fixed entropy buffer into an io.Reader usable
// by [Curve.NewRandomScalar]'s rejection-sampling loop: entropy is
// expanded with crypto/rand on retry rather than repeating, since a
// short caller-supplied buffer must never be reused verbatim across
// resamples.
func newEntropyReader(entropy []byte) *entropyReader {
	return &entropyReader{seed: entropy}
}

type entropyReader struct {
	seed []byte
	used bool
}

func (r *entropyReader) Read(p []byte) (int, error) {
	if !r.used && len(r.seed) >= len(p) {
		r.used = true
		return copy(p, r.seed), nil
	}
	return rand.Read(p)
}
