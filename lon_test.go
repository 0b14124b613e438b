package potrace

import "testing"

// squareAnalysis returns the analysis state of a traced 16×16 square, with
// the moment sums already computed. The contour has 64 points with corners
// at indices 0, 16, 32, and 48.
func squareAnalysis(t *testing.T) *analysis {
	t.Helper()
	bm := mustBitmap(t, 32, 32)
	bm.SetRect(8, 8, 24, 24)
	plist := decomposeAll(t, bm, TurnMinority)
	if len(plist) != 1 {
		t.Fatalf("got %d paths, want 1", len(plist))
	}
	a := newAnalysis(plist[0])
	a.computeSums()
	return a
}

func TestComputeSums(t *testing.T) {
	a := squareAnalysis(t)

	if a.sums[0] != (sums{}) {
		t.Errorf("sums[0] = %v, want zero", a.sums[0])
	}
	// each prefix difference is one point's contribution
	for i, p := range a.pt {
		x := p.X - a.x0
		y := p.Y - a.y0
		d := sums{
			x:  a.sums[i+1].x - a.sums[i].x,
			y:  a.sums[i+1].y - a.sums[i].y,
			x2: a.sums[i+1].x2 - a.sums[i].x2,
			xy: a.sums[i+1].xy - a.sums[i].xy,
			y2: a.sums[i+1].y2 - a.sums[i].y2,
		}
		if want := (sums{x: x, y: y, x2: x * x, xy: x * y, y2: y * y}); d != want {
			t.Fatalf("sums[%d+1]−sums[%d] = %+v, want %+v", i, i, d, want)
		}
	}
}

func TestComputeLon(t *testing.T) {
	a := squareAnalysis(t)
	a.computeLon()
	n := len(a.pt)

	for i := range n {
		if a.lon[i] == i {
			t.Fatalf("lon[%d] = %d does not advance", i, i)
		}
		if a.lon[i] < 0 || a.lon[i] >= n {
			t.Fatalf("lon[%d] = %d out of range", i, a.lon[i])
		}
	}

	// from each corner, the straight subpath spans at least the whole
	// following edge
	for _, c := range []int{0, 16, 32, 48} {
		if got := mod(a.lon[c]-c, n); got < 16 {
			t.Errorf("lon[%d] spans %d points, want at least 16", c, got)
		}
	}

	// points on an edge see at furthest a point just past the next corner:
	// a straight line cannot span two full edges of the square
	for i := range n {
		if got := mod(a.lon[i]-i, n); got > 34 {
			t.Errorf("lon[%d] spans %d points, too far for a square", i, got)
		}
	}
}

func TestComputeLonZigzag(t *testing.T) {
	// a 2-wide staircase; diagonal straight subpaths must span multiple
	// steps
	bm := mustBitmap(t, 32, 32)
	for i := 0; i < 6; i++ {
		bm.SetRect(2+2*i, 2+2*i, 2+2*i+4, 2+2*i+4)
	}
	plist := decomposeAll(t, bm, TurnRight)
	if len(plist) != 1 {
		t.Fatalf("got %d paths, want 1 (staircase should be connected)", len(plist))
	}
	a := newAnalysis(plist[0])
	a.computeSums()
	a.computeLon()

	n := len(a.pt)
	longest := 0
	for i := range n {
		longest = max(longest, mod(a.lon[i]-i, n))
	}
	// the diagonal flank must admit straight subpaths far longer than a
	// single staircase step
	if longest < 8 {
		t.Errorf("longest straight subpath spans %d points, want at least 8", longest)
	}
}
