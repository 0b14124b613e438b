package potrace

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestTessellateCounts(t *testing.T) {
	// a closed two-segment curve: a Bézier bulge and a corner back
	c := Curve{Segments: []Segment{
		{Kind: Bezier, C0: Pt(1, 2), C1: Pt(3, 2), End: Pt(4, 0)},
		{Kind: Corner, C1: Pt(2, -1), End: Pt(0, 0)},
	}}

	for _, res := range []int{1, 2, 10} {
		pts := c.Tessellate(res)
		if want := (res + 1) + 2; len(pts) != want {
			t.Errorf("res %d: got %d points, want %d", res, len(pts), want)
		}
	}
}

func TestTessellateEndpoints(t *testing.T) {
	c := Curve{Segments: []Segment{
		{Kind: Bezier, C0: Pt(1, 2), C1: Pt(3, 2), End: Pt(4, 0)},
		{Kind: Corner, C1: Pt(2, -1), End: Pt(0, 0)},
	}}

	for _, res := range []int{1, 4, 64} {
		pts := c.Tessellate(res)

		// the first Bézier sample is bit-identical to the curve start
		if pts[0] != c.Start() {
			t.Errorf("res %d: first sample %v, want exactly %v", res, pts[0], c.Start())
		}
		// the last Bézier sample reaches the segment end within
		// accumulated rounding
		last := pts[res]
		end := c.Segments[0].End
		if d := last.Distance(end); d > float64(res)*1e-12 {
			t.Errorf("res %d: last sample %v misses %v by %g", res, last, end, d)
		}
	}
}

func TestTessellateMatchesEval(t *testing.T) {
	// forward differences agree with direct polynomial evaluation
	p0, p1, p2, p3 := Pt(0, 0), Pt(1, 3), Pt(4, 3), Pt(5, -1)
	const res = 17
	pts := sampleBezier(nil, p0, p1, p2, p3, res)

	want := make([]Point, 0, res+1)
	for i := 0; i <= res; i++ {
		want = append(want, bezierPoint(float64(i)/res, p0, p1, p2, p3))
	}
	diff(t, want, pts, cmpopts.EquateApprox(0, 1e-9))
}

func TestTessellateInvalidResolution(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Tessellate(0) did not panic")
		}
	}()
	Curve{}.Tessellate(0)
}

func TestBezierTangentAt(t *testing.T) {
	// an arch is horizontal exactly at its apex; for these control
	// points the cross-product quadratic is 3t²+2t−2
	p0, p1, p2, p3 := Pt(0, 0), Pt(1, 2), Pt(3, 3), Pt(4, 0)
	tt := bezierTangentAt(p0, p1, p2, p3, Pt(0, 0), Pt(1, 0))
	if want := (-1 + math.Sqrt(7)) / 3; math.Abs(tt-want) > 1e-12 {
		t.Errorf("tangent parameter = %g, want %g", tt, want)
	}

	// no parameter is tangent to the vertical through the arch
	if got := bezierTangentAt(p0, p1, p2, p3, Pt(0, 0), Pt(0, 1)); got != -1 {
		t.Errorf("vertical tangent parameter = %g, want -1", got)
	}
}
