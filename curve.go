package potrace

import "math"

// SegmentKind distinguishes the two kinds of curve segments.
type SegmentKind int

const (
	// Corner is a segment of two straight lines through an angular point.
	Corner SegmentKind = iota + 1
	// Bezier is a cubic Bézier segment.
	Bezier
)

func (k SegmentKind) String() string {
	switch k {
	case Corner:
		return "Corner"
	case Bezier:
		return "Bezier"
	default:
		return "InvalidSegmentKind"
	}
}

// Segment is one segment of a traced curve. A segment starts at the end
// point of its predecessor. For a Bézier, C0 and C1 are the two control
// points and End is the end point. For a Corner, the segment runs straight
// from the start to C1 and from C1 to End, and C0 is unused.
type Segment struct {
	Kind SegmentKind
	C0   Point
	C1   Point
	End  Point
}

// Curve is a closed curve of corner and Bézier segments. The end point of
// the last segment is the start point of the first.
type Curve struct {
	Segments []Segment
}

// Start returns the start point of the curve, which coincides with the end
// point of its last segment.
func (c Curve) Start() Point {
	if len(c.Segments) == 0 {
		return Point{}
	}
	return c.Segments[len(c.Segments)-1].End
}

// Tessellate samples the curve into a polyline. Each Bézier segment
// contributes res+1 points, evaluated at parameters i/res by third-degree
// forward differences so that the first point is exactly the segment start;
// each corner segment contributes its two joint points. res must be at
// least 1.
func (c Curve) Tessellate(res int) []Point {
	if res < 1 {
		panic("potrace: tessellation resolution must be at least 1")
	}
	var out []Point
	start := c.Start()
	for _, seg := range c.Segments {
		switch seg.Kind {
		case Corner:
			out = append(out, seg.C1, seg.End)
		case Bezier:
			out = sampleBezier(out, start, seg.C0, seg.C1, seg.End, res)
		}
		start = seg.End
	}
	return out
}

// sampleBezier appends res+1 samples of the cubic p0 p1 p2 p3 to dst,
// stepping the polynomial with forward differences rather than evaluating it
// afresh at every parameter.
func sampleBezier(dst []Point, p0, p1, p2, p3 Point, res int) []Point {
	h := 1 / float64(res)

	// polynomial coefficients: f(t) = at³ + bt² + ct + d
	ax := -p0.X + 3*p1.X - 3*p2.X + p3.X
	bx := 3*p0.X - 6*p1.X + 3*p2.X
	cx := -3*p0.X + 3*p1.X
	ay := -p0.Y + 3*p1.Y - 3*p2.Y + p3.Y
	by := 3*p0.Y - 6*p1.Y + 3*p2.Y
	cy := -3*p0.Y + 3*p1.Y

	// forward differences of f at 0 with step h
	d1x := ((ax*h+bx)*h + cx) * h
	d1y := ((ay*h+by)*h + cy) * h
	d2x := (6*ax*h + 2*bx) * h * h
	d2y := (6*ay*h + 2*by) * h * h
	d3x := 6 * ax * h * h * h
	d3y := 6 * ay * h * h * h

	p := p0
	dst = append(dst, p)
	for range res {
		p.X += d1x
		p.Y += d1y
		d1x += d2x
		d1y += d2y
		d2x += d3x
		d2y += d3y
		dst = append(dst, p)
	}
	return dst
}

// bezierPoint evaluates the cubic p0 p1 p2 p3 at parameter t.
func bezierPoint(t float64, p0, p1, p2, p3 Point) Point {
	s := 1 - t
	return Point{
		X: s*s*s*p0.X + 3*s*s*t*p1.X + 3*t*t*s*p2.X + t*t*t*p3.X,
		Y: s*s*s*p0.Y + 3*s*s*t*p1.Y + 3*t*t*s*p2.Y + t*t*t*p3.Y,
	}
}

// bezierTangentAt returns the parameter t in [0, 1] at which the convex
// cubic p0 p1 p2 p3 is tangent to the direction q1−q0, or −1 if there is no
// such parameter.
func bezierTangentAt(p0, p1, p2, p3, q0, q1 Point) float64 {
	// the cross product of the derivative with q1−q0 is quadratic in t
	A := cprod(p0, p1, q0, q1)
	B := cprod(p1, p2, q0, q1)
	C := cprod(p2, p3, q0, q1)

	a := A - 2*B + C
	b := -2*A + 2*B
	c := A

	d := b*b - 4*a*c
	if a == 0 || d < 0 {
		return -1
	}
	s := math.Sqrt(d)

	r1 := (-b + s) / (2 * a)
	r2 := (-b - s) / (2 * a)

	switch {
	case r1 >= 0 && r1 <= 1:
		return r1
	case r2 >= 0 && r2 <= 1:
		return r2
	default:
		return -1
	}
}

// privSegment is a curve segment together with the per-vertex state the
// smoothing and optimization stages exchange.
type privSegment struct {
	kind   SegmentKind
	c      [3]Point // control points; c[2] is the end point
	vertex Point    // adjusted polygon vertex this segment ends near
	alpha  float64  // shape parameter; cropped to [0.55, 1] for smoothed Bézier joins
	alpha0 float64  // shape parameter before cropping
	beta   float64  // split ratio between this vertex and the next
}

// privCurve is the internal form of a curve during the smoothing and
// optimization stages.
type privCurve struct {
	seg []privSegment
}

// public converts the finished internal curve to the exported form.
func (c *privCurve) public() Curve {
	segs := make([]Segment, len(c.seg))
	for i, s := range c.seg {
		segs[i] = Segment{
			Kind: s.kind,
			C0:   s.c[0],
			C1:   s.c[1],
			End:  s.c[2],
		}
	}
	return Curve{Segments: segs}
}
