package geom

import "cogentcore.org/core/math32"

// CatmullRom is an open centripetal Catmull-Rom spline through its control
// points. Parameters are spread evenly over the control points, not over
// arc length.
type CatmullRom struct {
	Points []math32.Vector3
}

// cubicPoly holds the coefficients of one axis of one segment.
type cubicPoly struct {
	c0, c1, c2, c3 float32
}

func hermite(x0, x1, t0, t1 float32) cubicPoly {
	return cubicPoly{
		c0: x0,
		c1: t0,
		c2: -3*x0 + 3*x1 - 2*t0 - t1,
		c3: 2*x0 - 2*x1 + t0 + t1,
	}
}

func nonuniform(x0, x1, x2, x3, dt0, dt1, dt2 float32) cubicPoly {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	return hermite(x1, x2, t1*dt1, t2*dt1)
}

func (c cubicPoly) at(t float32) float32 {
	t2 := t * t
	return c.c0 + c.c1*t + c.c2*t2 + c.c3*t2*t
}

func distSq(a, b math32.Vector3) float32 {
	d := a.Sub(b)
	return d.Dot(d)
}

// Point evaluates the curve at t in [0, 1].
func (c *CatmullRom) Point(t float32) math32.Vector3 {
	pts := c.Points
	l := len(pts)
	switch l {
	case 0:
		return math32.Vector3{}
	case 1:
		return pts[0]
	}

	p := float32(l-1) * t
	idx := int(math32.Floor(p))
	w := p - float32(idx)
	if idx >= l-1 {
		idx, w = l-2, 1
	}
	if idx < 0 {
		idx, w = 0, 0
	}

	var p0, p3 math32.Vector3
	if idx > 0 {
		p0 = pts[idx-1]
	} else {
		// extrapolate before the first point
		p0 = pts[0].Sub(pts[1]).Add(pts[0])
	}
	p1, p2 := pts[idx], pts[idx+1]
	if idx+2 < l {
		p3 = pts[idx+2]
	} else {
		p3 = pts[l-1].Sub(pts[l-2]).Add(pts[l-1])
	}

	dt0 := math32.Pow(distSq(p0, p1), 0.25)
	dt1 := math32.Pow(distSq(p1, p2), 0.25)
	dt2 := math32.Pow(distSq(p2, p3), 0.25)
	if dt1 < 1e-4 {
		dt1 = 1
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}

	px := nonuniform(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2)
	py := nonuniform(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2)
	pz := nonuniform(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2)
	return math32.Vec3(px.at(w), py.at(w), pz.at(w))
}

// Tangent returns the unit tangent at t by central difference.
func (c *CatmullRom) Tangent(t float32) math32.Vector3 {
	const delta = 1e-4
	t1 := max(t-delta, 0)
	t2 := min(t+delta, 1)
	return c.Point(t2).Sub(c.Point(t1)).Normal()
}
