package edwards

import (
	"go.eccore.dev/eccore/internal/disalloweq"
	"go.eccore.dev/eccore/internal/edfe"
)

// Point is an Ed25519 group element in extended twisted-Edwards
// coordinates (X:Y:Z:T), with x = X/Z, y = Y/Z, x*y = T/Z, following
// spec.md section 3's `xge` (extended group element). The zero value is
// NOT usable; use [Curve.NewPoint].
//
// All arguments and receivers are allowed to alias, matching wei.Point's
// contract.
type Point struct {
	curve *Curve
	x, y, z, t *edfe.Element

	_ disalloweq.DisallowEqual
}

// NewPoint returns a new Point bound to c, set to the identity.
func (c *Curve) NewPoint() *Point {
	return (&Point{curve: c, x: new(edfe.Element), y: new(edfe.Element), z: new(edfe.Element), t: new(edfe.Element)}).Identity()
}

// Identity sets v to the neutral element (0, 1) and returns v.
func (v *Point) Identity() *Point {
	v.x.Zero()
	v.y.One()
	v.z.One()
	v.t.Zero()
	return v
}

// Generator sets v to the base point B and returns v.
func (v *Point) Generator() *Point {
	c := v.curve
	v.x.Set(c.bx)
	v.y.Set(c.by)
	v.z.One()
	v.t.Multiply(c.bx, c.by)
	return v
}

// Set sets v = p and returns v.
func (v *Point) Set(p *Point) *Point {
	v.curve = p.curve
	v.x.Set(p.x)
	v.y.Set(p.y)
	v.z.Set(p.z)
	v.t.Set(p.t)
	return v
}

// Negate sets v = -p and returns v.
func (v *Point) Negate(p *Point) *Point {
	v.curve = p.curve
	v.x.Negate(p.x)
	v.y.Set(p.y)
	v.z.Set(p.z)
	v.t.Negate(p.t)
	return v
}

// ConditionalSelect sets v = a iff ctrl == 0, v = b otherwise.
func (v *Point) ConditionalSelect(a, b *Point, ctrl uint64) *Point {
	v.curve = a.curve
	v.x.ConditionalSelect(a.x, b.x, ctrl)
	v.y.ConditionalSelect(a.y, b.y, ctrl)
	v.z.ConditionalSelect(a.z, b.z, ctrl)
	v.t.ConditionalSelect(a.t, b.t, ctrl)
	return v
}

// IsIdentity returns 1 iff v is the neutral element.
func (v *Point) IsIdentity() uint64 {
	x, y := v.affineXY()
	zero := new(edfe.Element).Zero()
	one := new(edfe.Element).One()
	return x.Equal(zero) & y.Equal(one)
}

// Equal returns 1 iff v and p represent the same point.
func (v *Point) Equal(p *Point) uint64 {
	// X1*Z2 == X2*Z1 and Y1*Z2 == Y2*Z1.
	var l, r edfe.Element
	l.Multiply(v.x, p.z)
	r.Multiply(p.x, v.z)
	xEq := l.Equal(&r)

	l.Multiply(v.y, p.z)
	r.Multiply(p.y, v.z)
	yEq := l.Equal(&r)

	return xEq & yEq
}

func (v *Point) affineXY() (*edfe.Element, *edfe.Element) {
	zInv := new(edfe.Element).Invert(v.z)
	x := new(edfe.Element).Multiply(v.x, zInv)
	y := new(edfe.Element).Multiply(v.y, zInv)
	return x, y
}

// Add sets v = p + q, using the unified (doubling-safe) addition law for
// twisted Edwards curves with a = -1, add-2008-hwcd-3, valid without
// exceptional cases for any p, q (including p == q or p == -q) because
// Ed25519's d is a non-square mod p, making the curve's addition law
// complete.
func (v *Point) Add(p, q *Point) *Point {
	var a, b, cc, d, e edfe.Element

	a.Subtract(p.y, p.x)
	b.Subtract(q.y, q.x)
	a.Multiply(&a, &b)

	b.Add(p.y, p.x)
	e.Add(q.y, q.x)
	b.Multiply(&b, &e)

	cc.Multiply(p.t, q.t)
	cc.Multiply(&cc, v.curve.twoD)

	d.Multiply(p.z, q.z)
	d.Add(&d, &d)

	e.Subtract(&b, &a)
	f := new(edfe.Element).Subtract(&d, &cc)
	g := new(edfe.Element).Add(&d, &cc)
	h := new(edfe.Element).Add(&b, &a)

	v.x.Multiply(&e, f)
	v.y.Multiply(g, h)
	v.t.Multiply(&e, h)
	v.z.Multiply(f, g)
	return v
}

// Subtract sets v = p - q.
func (v *Point) Subtract(p, q *Point) *Point {
	neg := v.curve.NewPoint().Negate(q)
	return v.Add(p, neg)
}

// Double sets v = 2p, using dbl-2008-hwcd (the specialized doubling
// formula for a = -1), faster than routing through [Point.Add].
func (v *Point) Double(p *Point) *Point {
	var a, b, cc, hh, e, g, f, h edfe.Element

	a.Square(p.x)
	b.Square(p.y)
	cc.Square(p.z)
	cc.Add(&cc, &cc)
	hh.Add(p.x, p.y)
	e.Square(&hh)
	e.Subtract(&e, &a)
	e.Subtract(&e, &b)
	g.Negate(&a)
	g.Add(&g, &b)
	f.Subtract(&g, &cc)
	h.Negate(&a)
	h.Subtract(&h, &b)

	v.x.Multiply(&e, &f)
	v.y.Multiply(&g, &h)
	v.t.Multiply(&e, &h)
	v.z.Multiply(&f, &g)
	return v
}
