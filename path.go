package potrace

import "iter"

// Path is one closed contour of a trace. Paths form a tree: every contour is
// a child of the innermost contour enclosing it, children of one parent are
// linked through their Sibling fields, and Next visits the whole trace in the
// order Potrace's backends consume it (each foreground path immediately
// followed by the holes inside it).
type Path struct {
	pt []IntPoint

	// Area is the number of pixels enclosed by the contour. It saturates
	// instead of overflowing; it is only used for despeckling.
	Area int

	// Sign is true if the contour encloses foreground pixels and false if
	// it encloses a hole.
	Sign bool

	// Curve is the final traced outline of the contour.
	Curve Curve

	ChildList *Path
	Sibling   *Path
	Next      *Path
}

// Points returns the raw contour as extracted from the raster: a closed
// sequence of pixel corners, consecutive points one unit step apart. The
// slice is owned by the path and must not be modified.
func (p *Path) Points() []IntPoint {
	return p.pt
}

// Children returns an iterator over the paths directly enclosed by p.
func (p *Path) Children() iter.Seq[*Path] {
	return func(yield func(*Path) bool) {
		for c := p.ChildList; c != nil; c = c.Sibling {
			if !yield(c) {
				return
			}
		}
	}
}

// sums holds cumulative coordinate moments of a contour prefix, relative to
// the contour's first point.
type sums struct {
	x, y       int
	x2, xy, y2 int
}

// analysis carries one path's intermediate state through the five tracing
// stages. Fields are released as soon as no later stage needs them.
type analysis struct {
	pt     []IntPoint
	x0, y0 int // origin for sums, pt[0]

	sums []sums // len(pt)+1 entries, dropped after vertex adjustment
	lon  []int  // longest straight subpath table, dropped after polygon
	po   []int  // optimal polygon, indices into pt

	curve  privCurve // vertex-adjusted, then smoothed curve
	ocurve privCurve // optimized curve, empty unless stage 5 ran
}

func newAnalysis(p *Path) *analysis {
	return &analysis{
		pt: p.pt,
		x0: p.pt[0].X,
		y0: p.pt[0].Y,
	}
}

// computeSums fills the moment prefix sums used for O(1) range statistics in
// the polygon and vertex-adjustment stages. Sums over a wrapping range
// [a, b] are recovered as sums[b+1]−sums[a]+r·sums[n], with r the number of
// forward wraps.
func (a *analysis) computeSums() {
	a.sums = make([]sums, len(a.pt)+1)
	for i, p := range a.pt {
		x := p.X - a.x0
		y := p.Y - a.y0
		s := &a.sums[i+1]
		s.x = a.sums[i].x + x
		s.y = a.sums[i].y + y
		s.x2 = a.sums[i].x2 + x*x
		s.xy = a.sums[i].xy + x*y
		s.y2 = a.sums[i].y2 + y*y
	}
}
