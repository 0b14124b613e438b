package potrace

import "math"

// Stage 5: curve optimization. Maximal chains of Bézier segments that turn
// the same way and bend by less than 179 degrees in total are replaced by a
// single Bézier, when one fits within the tolerance.

// the cosine of 179 degrees
const cos179 = -0.999847695156391

// opti is a candidate replacement for a chain of curve segments.
type opti struct {
	pen   float64  // penalty
	c     [2]Point // the two control points of the replacement
	t, s  float64  // curve parameters of the chain's endpoints
	alpha float64  // overall shape parameter
}

// optiPenalty tries to fit a single Bézier from the midpoint join after
// segment i to the one after segment j (cyclically, i before j). It reports
// whether such a curve stays within opttolerance of the segments and corners
// it replaces, and if so returns its parameters and penalty.
func (a *analysis) optiPenalty(i, j int, opttolerance float64, convc []int, areac []float64) (opti, bool) {
	curve := a.curve.seg
	m := len(curve)

	// a full loop can never be a single Bézier
	if i == j {
		return opti{}, false
	}

	// the chain must be corner-free, turn consistently, and bend by less
	// than 179 degrees in total
	i1 := mod(i+1, m)
	k1 := i1
	conv := convc[k1]
	if conv == 0 {
		return opti{}, false
	}
	d := curve[i].vertex.Distance(curve[i1].vertex)
	for k := k1; k != j; k = k1 {
		k1 = mod(k+1, m)
		k2 := mod(k+2, m)
		if convc[k1] != conv {
			return opti{}, false
		}
		if sign(cprod(curve[i].vertex, curve[i1].vertex, curve[k1].vertex, curve[k2].vertex)) != conv {
			return opti{}, false
		}
		if iprod1(curve[i].vertex, curve[i1].vertex, curve[k1].vertex, curve[k2].vertex) <
			d*curve[k1].vertex.Distance(curve[k2].vertex)*cos179 {
			return opti{}, false
		}
	}

	// the chain to be replaced runs from p0 to p3
	p0 := curve[mod(i, m)].c[2]
	p1 := curve[mod(i+1, m)].vertex
	p2 := curve[mod(j, m)].vertex
	p3 := curve[mod(j, m)].c[2]

	// the signed area under the chain
	area := areac[j] - areac[i]
	area -= dpara(curve[0].vertex, curve[i].c[2], curve[j].c[2]) / 2
	if i >= j {
		area += areac[m]
	}

	// Find the intersection o of the edges p0p1 and p2p3, with t and s
	// such that o = p0+t·(p1−p0) = p3+s·(p2−p3), and let A be the area of
	// the triangle (p0, o, p3). The candidate Bézier reproduces the
	// chain's area when its control arms are scaled by alpha below.
	A1 := dpara(p0, p1, p2)
	A2 := dpara(p0, p1, p3)
	A3 := dpara(p0, p2, p3)
	A4 := A1 + A3 - A2 // dpara(p1, p2, p3)

	if A2 == A1 { // parallel edges
		return opti{}, false
	}

	t := A3 / (A3 - A4)
	s := A2 / (A2 - A1)
	A := A2 * t / 2

	if A == 0 { // degenerate
		return opti{}, false
	}

	R := area / A
	alpha := 2 - math.Sqrt(4-R/0.3)

	res := opti{
		c:     [2]Point{p0.Lerp(p1, t*alpha), p3.Lerp(p2, s*alpha)},
		t:     t,
		s:     s,
		alpha: alpha,
	}
	p1 = res.c[0]
	p2 = res.c[1] // the candidate curve is now (p0, p1, p2, p3)

	// the candidate must pass near every edge it replaces, at the
	// parameter where it is tangent to the edge's direction
	for k := mod(i+1, m); k != j; k = k1 {
		k1 = mod(k+1, m)
		t := bezierTangentAt(p0, p1, p2, p3, curve[k].vertex, curve[k1].vertex)
		if t < -0.5 {
			return opti{}, false
		}
		pt := bezierPoint(t, p0, p1, p2, p3)
		d := curve[k].vertex.Distance(curve[k1].vertex)
		if d == 0 {
			return opti{}, false
		}
		d1 := dpara(curve[k].vertex, curve[k1].vertex, pt) / d
		if math.Abs(d1) > opttolerance {
			return opti{}, false
		}
		if iprod(curve[k].vertex, curve[k1].vertex, pt) < 0 ||
			iprod(curve[k1].vertex, curve[k].vertex, pt) < 0 {
			return opti{}, false
		}
		res.pen += d1 * d1
	}

	// likewise for every corner join it replaces, allowing for how far
	// the original curve pulls away from the vertex
	for k := i; k != j; k = k1 {
		k1 = mod(k+1, m)
		t := bezierTangentAt(p0, p1, p2, p3, curve[k].c[2], curve[k1].c[2])
		if t < -0.5 {
			return opti{}, false
		}
		pt := bezierPoint(t, p0, p1, p2, p3)
		d := curve[k].c[2].Distance(curve[k1].c[2])
		if d == 0 {
			return opti{}, false
		}
		d1 := dpara(curve[k].c[2], curve[k1].c[2], pt) / d
		d2 := dpara(curve[k].c[2], curve[k1].c[2], curve[k1].vertex) / d
		d2 *= 0.75 * curve[k1].alpha
		if d2 < 0 {
			d1 = -d1
			d2 = -d2
		}
		if d1 < d2-opttolerance {
			return opti{}, false
		}
		if d1 < d2 {
			res.pen += (d1 - d2) * (d1 - d2)
		}
	}

	return res, true
}

// optimizeCurve computes a.ocurve from a.curve, fusing chains of segments
// where optiPenalty allows it. Like the polygon stage, the dynamic program
// minimizes the segment count first and the penalty second, anchored at
// segment 0.
func (a *analysis) optimizeCurve(opttolerance float64) {
	curve := a.curve.seg
	m := len(curve)

	var (
		pt   = make([]int, m+1)     // best predecessor
		pen  = make([]float64, m+1) // best penalty
		leng = make([]int, m+1)     // best length
		opt  = make([]opti, m+1)
	)

	// convexity of each Bézier join: +1 left turn, −1 right turn,
	// 0 corner
	convc := make([]int, m)
	for i := range m {
		if curve[i].kind == Bezier {
			convc[i] = sign(dpara(curve[mod(i-1, m)].vertex, curve[i].vertex, curve[mod(i+1, m)].vertex))
		}
	}

	// running signed area under the curve, for constant-time area of any
	// chain
	area := 0.0
	areac := make([]float64, m+1)
	p0 := curve[0].vertex
	for i := range m {
		i1 := mod(i+1, m)
		if curve[i1].kind == Bezier {
			alpha := curve[i1].alpha
			area += 0.3 * alpha * (4 - alpha) * dpara(curve[i].c[2], curve[i1].vertex, curve[i1].c[2]) / 2
			area += dpara(p0, curve[i].c[2], curve[i1].c[2]) / 2
		}
		areac[i+1] = area
	}

	pt[0] = -1
	pen[0] = 0
	leng[0] = 0

	for j := 1; j <= m; j++ {
		pt[j] = j - 1
		pen[j] = pen[j-1]
		leng[j] = leng[j-1] + 1

		for i := j - 2; i >= 0; i-- {
			o, ok := a.optiPenalty(i, mod(j, m), opttolerance, convc, areac)
			if !ok {
				break
			}
			if leng[j] > leng[i]+1 || (leng[j] == leng[i]+1 && pen[j] > pen[i]+o.pen) {
				pt[j] = i
				pen[j] = pen[i] + o.pen
				leng[j] = leng[i] + 1
				opt[j] = o
			}
		}
	}

	om := leng[m]
	a.ocurve.seg = make([]privSegment, om)
	s := make([]float64, om)
	t := make([]float64, om)

	j := m
	for i := om - 1; i >= 0; i-- {
		if pt[j] == j-1 {
			a.ocurve.seg[i] = curve[mod(j, m)]
			s[i], t[i] = 1, 1
		} else {
			a.ocurve.seg[i] = privSegment{
				kind:   Bezier,
				c:      [3]Point{opt[j].c[0], opt[j].c[1], curve[mod(j, m)].c[2]},
				vertex: curve[mod(j, m)].c[2].Lerp(curve[mod(j, m)].vertex, opt[j].s),
				alpha:  opt[j].alpha,
				alpha0: opt[j].alpha,
			}
			s[i] = opt[j].s
			t[i] = opt[j].t
		}
		j = pt[j]
	}

	// the split ratio weighs each vertex's share against its successor's
	for i := range om {
		a.ocurve.seg[i].beta = s[i] / (s[i] + t[mod(i+1, om)])
	}
}
