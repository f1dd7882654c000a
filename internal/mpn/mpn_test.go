package mpn

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddSubRoundTrip(t *testing.T) {
	var x, y Limbs
	x[0], x[1] = 0xffffffffffffffff, 1
	y[0], y[1] = 1, 0

	var sum Limbs
	carry := Add(&sum, &x, &y, 2)
	require.Equal(t, uint64(0), carry)
	require.Equal(t, uint64(0), sum[0])
	require.Equal(t, uint64(2), sum[1])

	var back Limbs
	borrow := Sub(&back, &sum, &y, 2)
	require.Equal(t, uint64(0), borrow)
	require.Equal(t, x, back)
}

func TestSubBorrow(t *testing.T) {
	var x, y, z Limbs
	x[0] = 1
	y[0] = 2

	borrow := Sub(&z, &x, &y, 1)
	require.Equal(t, uint64(1), borrow, "1 - 2 must borrow")
}

func TestSelect(t *testing.T) {
	var a, b, z Limbs
	a[0], a[1] = 1, 2
	b[0], b[1] = 3, 4

	Select(&z, &a, &b, 2, 0)
	require.Equal(t, a, z, "ctrl==0 selects a")

	Select(&z, &a, &b, 2, 1)
	require.Equal(t, b, z, "ctrl==1 selects b")
}

func TestIsZero(t *testing.T) {
	var z Limbs
	require.Equal(t, uint64(1), IsZero(&z, 3))

	z[2] = 1
	require.Equal(t, uint64(0), IsZero(&z, 3))
	// Limb 2 lies outside the first two significant limbs.
	require.Equal(t, uint64(1), IsZero(&z, 2))
}

func TestEqual(t *testing.T) {
	var x, y Limbs
	x[0], x[1] = 5, 6
	y[0], y[1] = 5, 6
	require.Equal(t, uint64(1), Equal(&x, &y, 2))

	y[1] = 7
	require.Equal(t, uint64(0), Equal(&x, &y, 2))
}

func TestCondSubtract(t *testing.T) {
	var x, y, z Limbs
	x[0] = 10
	y[0] = 3

	CondSubtract(&z, &x, &y, 1)
	require.Equal(t, uint64(7), z[0], "x >= y: subtracts")

	x[0], y[0] = 3, 10
	CondSubtract(&z, &x, &y, 1)
	require.Equal(t, uint64(3), z[0], "x < y: leaves x unchanged")
}

func TestBytesBERoundTrip(t *testing.T) {
	src := []byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18,
	}
	var x Limbs
	SetBytesBE(&x, src, 2)
	require.Equal(t, src, BytesBE(&x, 2))
}

func TestBytesLERoundTrip(t *testing.T) {
	src := []byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18,
	}
	var x Limbs
	SetBytesLE(&x, src, 2)
	require.Equal(t, src, BytesLE(&x, 2))
}

func TestBytesBEIsBigEndian(t *testing.T) {
	var x Limbs
	x[0] = 1 // least-significant limb
	got := BytesBE(&x, 2)
	want := make([]byte, 16)
	want[15] = 1
	require.Equal(t, want, got)
}
