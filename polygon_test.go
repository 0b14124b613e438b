package potrace

import (
	"math"
	"testing"
)

func TestPenaltyStraightEdge(t *testing.T) {
	a := squareAnalysis(t)

	// points 0..16 are colinear, so the chord has zero deviation
	if pen := a.penalty(0, 16); pen != 0 {
		t.Errorf("penalty(0, 16) = %g, want 0", pen)
	}

	// a chord cutting the corner at index 16 must be penalized
	if pen := a.penalty(8, 24); pen <= 0 {
		t.Errorf("penalty(8, 24) = %g, want > 0", pen)
	}

	// the wrapping edge ending at n is the closing edge of the square
	n := len(a.pt)
	if pen := a.penalty(48, n); pen != 0 {
		t.Errorf("penalty(48, %d) = %g, want 0", n, pen)
	}
}

func TestPenaltyMatchesDirect(t *testing.T) {
	a := squareAnalysis(t)

	// the closed form equals chord length times the root mean squared
	// distance of the spanned points from the chord's line
	direct := func(i, j int) float64 {
		pi := a.pt[i].Point()
		pj := a.pt[mod(j, len(a.pt))].Point()
		chord := pj.Sub(pi).Hypot()
		var sum float64
		for k := i; k <= j; k++ {
			p := a.pt[mod(k, len(a.pt))].Point()
			d := dpara(pi, pj, p) / chord
			sum += d * d
		}
		return chord * math.Sqrt(sum/float64(j+1-i))
	}

	for _, edge := range [][2]int{{0, 16}, {8, 24}, {3, 40}, {48, 64}} {
		got := a.penalty(edge[0], edge[1])
		want := direct(edge[0], edge[1])
		if math.Abs(got-want) > 1e-9*(1+want) {
			t.Errorf("penalty(%d, %d) = %g, want %g", edge[0], edge[1], got, want)
		}
	}
}

func TestOptimalPolygonSquare(t *testing.T) {
	a := squareAnalysis(t)
	a.computeLon()
	a.optimalPolygon()

	// the unique zero-penalty polygon through point 0 is the four
	// geometric corners
	diff(t, []int{0, 16, 32, 48}, a.po)
}

func TestOptimalPolygonEdgesStraight(t *testing.T) {
	// on an arbitrary blob, every polygon edge must be a straight
	// subpath, i.e. stay within lon's reach
	bm := mustBitmap(t, 48, 48)
	bm.SetRect(10, 10, 38, 30)
	bm.SetRect(20, 10, 30, 40)
	plist := decomposeAll(t, bm, TurnMinority)
	if len(plist) != 1 {
		t.Fatalf("got %d paths, want 1", len(plist))
	}

	a := newAnalysis(plist[0])
	a.computeSums()
	a.computeLon()
	a.optimalPolygon()

	n := len(a.pt)
	m := len(a.po)
	if m < 4 {
		t.Fatalf("polygon has %d vertices, want at least 4", m)
	}
	for i := range m {
		from := a.po[i]
		to := a.po[mod(i+1, m)]
		if from == to {
			t.Fatalf("degenerate polygon edge at %d", i)
		}
		// the edge may reach one point short of the straight subpath
		// starting just before from, and always to the next point
		reach := max(mod(a.lon[mod(from-1, n)]-1-from, n), 1)
		if d := mod(to-from, n); d > reach {
			t.Errorf("edge %d→%d spans %d points, beyond the straight reach %d", from, to, d, reach)
		}
	}
	// indices are strictly increasing with at most one wrap
	wraps := 0
	for i := range m {
		if a.po[mod(i+1, m)] < a.po[i] {
			wraps++
		}
	}
	if wraps > 1 {
		t.Errorf("polygon indices wrap %d times, want at most once", wraps)
	}
	if a.po[0] < 0 || a.po[m-1] >= n {
		t.Errorf("polygon indices out of range: %v", a.po)
	}
}
