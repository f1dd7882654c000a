package wei

// This file implements spec.md section 4.3's Import/Export and section 6's
// SEC1 byte encodings, generalizing
// internal/legacyref/point_s11n.go's single-curve compressed/uncompressed
// point codec to any registered [Curve].

const (
	prefixInfinity     = 0x00
	prefixCompressed0  = 0x02
	prefixCompressed1  = 0x03
	prefixUncompressed = 0x04
)

// CompressedSize returns the length of c's SEC1 compressed point
// encoding, 1 + ceil(log2(p)/8) bytes.
func (c *Curve) CompressedSize() int { return 1 + c.field.ByteLen() }

// UncompressedSize returns the length of c's SEC1 uncompressed point
// encoding, 1 + 2*ceil(log2(p)/8) bytes.
func (c *Curve) UncompressedSize() int { return 1 + 2*c.field.ByteLen() }

// Export returns v's SEC1 encoding: the single 0x00 byte for the point at
// infinity, `0x04 || x || y` when compressed is false, or
// `(0x02|y_parity) || x` when compressed is true.
func (v *Point) Export(compressed bool) []byte {
	assertPointsValid(v)
	if v.IsIdentity() == 1 {
		return []byte{prefixInfinity}
	}

	x, y, _ := v.Affine()
	xBytes := feFixedBytes(v.curve.field, x)

	if compressed {
		prefix := byte(prefixCompressed0)
		if y.IsOdd() == 1 {
			prefix = prefixCompressed1
		}
		return append([]byte{prefix}, xBytes...)
	}

	yBytes := feFixedBytes(v.curve.field, y)
	out := make([]byte, 0, 1+len(xBytes)+len(yBytes))
	out = append(out, prefixUncompressed)
	out = append(out, xBytes...)
	out = append(out, yBytes...)
	return out
}

// Import sets v = the point encoded by src, and returns v and an error
// (nil on success). On failure v is left set to the identity.
func (c *Curve) Import(v *Point, src []byte) (*Point, error) {
	v.curve = c
	byteLen := c.field.ByteLen()

	switch {
	case len(src) == 1 && src[0] == prefixInfinity:
		v.Identity()
		return v, nil

	case len(src) == 1+byteLen && (src[0] == prefixCompressed0 || src[0] == prefixCompressed1):
		x := c.field.NewElement()
		if didReduce := c.field.SetCanonicalBytes(x, padToLimbs(c.field, src[1:])); didReduce != 0 {
			v.Identity()
			return v, errInvalidEncoding
		}

		rhs := c.field.NewElement()
		x2 := c.field.NewElement().Square(x)
		rhs.Multiply(x2, x)
		ax := c.field.NewElement().Multiply(c.a, x)
		rhs.Add(rhs, ax)
		rhs.Add(rhs, c.b)

		y, isSquare := c.field.NewElement().Sqrt(rhs)
		if isSquare == 0 {
			v.Identity()
			return v, errInvalidEncoding
		}
		wantOdd := uint64(src[0] & 1)
		yNeg := c.field.NewElement().Negate(y)
		y.ConditionalSelect(yNeg, y, ctrlEqual(wantOdd, y.IsOdd()))

		v.x.Set(x)
		v.y.Set(y)
		v.z.One()
		v.isValid = true
		return v, nil

	case len(src) == 1+2*byteLen && src[0] == prefixUncompressed:
		x := c.field.NewElement()
		y := c.field.NewElement()
		if didReduce := c.field.SetCanonicalBytes(x, padToLimbs(c.field, src[1:1+byteLen])); didReduce != 0 {
			v.Identity()
			return v, errInvalidEncoding
		}
		if didReduce := c.field.SetCanonicalBytes(y, padToLimbs(c.field, src[1+byteLen:])); didReduce != 0 {
			v.Identity()
			return v, errInvalidEncoding
		}
		if c.IsOnCurve(x, y) == 0 {
			v.Identity()
			return v, errInvalidEncoding
		}

		v.x.Set(x)
		v.y.Set(y)
		v.z.One()
		v.isValid = true
		return v, nil
	}

	v.Identity()
	return v, errInvalidEncoding
}

// feFixedBytes returns fe's canonical encoding at the field's byte length
// (montfield.Element.Bytes returns the limb-aligned width; this trims the
// extra leading zero bytes down to the field's minimal byte length, e.g.
// 72 to 66 bytes for P-521).
func feFixedBytes(mod interface {
	ByteLen() int
}, fe interface{ Bytes() []byte },
) []byte {
	raw := fe.Bytes()
	want := mod.ByteLen()
	if len(raw) == want {
		return raw
	}
	return raw[len(raw)-want:]
}

// padToLimbs left-pads src up to the field's limb-aligned width (a
// multiple of 8 bytes), the format montfield.Modulus.SetCanonicalBytes
// requires, returning an error-free copy -- callers have already checked
// src's length against the field's minimal byte length.
func padToLimbs(mod interface {
	ByteLen() int
	Limbs() int
}, src []byte,
) []byte {
	limbLen := 8 * mod.Limbs()
	if len(src) == limbLen {
		return src
	}
	padded := make([]byte, limbLen)
	copy(padded[limbLen-len(src):], src)
	return padded
}
