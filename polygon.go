package potrace

import "math"

// Stage 2: the optimal polygon. Among all polygons whose edges are straight
// subpaths of the contour, pick one with the fewest vertices, and among
// those one with the least total penalty.

// penalty returns the penalty of a polygon edge from point i to point j:
// the chord length times the root mean squared distance of the contour
// points i..j from the chord's line, computed in constant time from the
// moment sums.
func (a *analysis) penalty(i, j int) float64 {
	pt := a.pt
	n := len(pt)

	// the edge may wrap around the end of the contour at most once
	r := 0
	if j >= n {
		j -= n
		r = 1
	}

	var x, y, x2, xy, y2, k float64
	if r == 0 {
		x = float64(a.sums[j+1].x - a.sums[i].x)
		y = float64(a.sums[j+1].y - a.sums[i].y)
		x2 = float64(a.sums[j+1].x2 - a.sums[i].x2)
		xy = float64(a.sums[j+1].xy - a.sums[i].xy)
		y2 = float64(a.sums[j+1].y2 - a.sums[i].y2)
		k = float64(j + 1 - i)
	} else {
		x = float64(a.sums[j+1].x - a.sums[i].x + a.sums[n].x)
		y = float64(a.sums[j+1].y - a.sums[i].y + a.sums[n].y)
		x2 = float64(a.sums[j+1].x2 - a.sums[i].x2 + a.sums[n].x2)
		xy = float64(a.sums[j+1].xy - a.sums[i].xy + a.sums[n].xy)
		y2 = float64(a.sums[j+1].y2 - a.sums[i].y2 + a.sums[n].y2)
		k = float64(j + 1 - i + n)
	}

	px := float64(pt[i].X+pt[j].X)/2 - float64(a.x0)
	py := float64(pt[i].Y+pt[j].Y)/2 - float64(a.y0)
	ey := float64(pt[j].X - pt[i].X)
	ex := -float64(pt[j].Y - pt[i].Y)

	cx := (x2-2*x*px)/k + px*px
	cxy := (xy-x*py-y*px)/k + px*py
	cy := (y2-2*y*py)/k + py*py

	return math.Sqrt(ex*ex*cx + 2*ex*ey*cxy + ey*ey*cy)
}

// optimalPolygon fills a.po with the indices of the chosen polygon's
// vertices. The polygon is anchored at point 0; the cyclic problem is not
// solved exactly, matching the reference algorithm.
func (a *analysis) optimalPolygon() {
	n := len(a.pt)
	var (
		pen   = make([]float64, n+1) // penalty vector
		prev  = make([]int, n+1)     // best predecessor
		clip0 = make([]int, n)       // longest segment forward
		clip1 = make([]int, n+1)     // longest segment backward
		seg0  = make([]int, n+1)     // forward segment bounds
		seg1  = make([]int, n+1)     // backward segment bounds
	)

	// clip0[i] is the furthest j such that the edge (i, j) is straight,
	// non-cyclic
	for i := range n {
		c := mod(a.lon[mod(i-1, n)]-1, n)
		if c == i {
			c = mod(i+1, n)
		}
		if c < i {
			clip0[i] = n
		} else {
			clip0[i] = c
		}
	}

	// j ≤ clip0[i] iff clip1[j] ≤ i, for i, j in 0..n
	j := 1
	for i := range n {
		for j <= clip0[i] {
			clip1[j] = i
			j++
		}
	}

	// seg0[j] is the longest path from 0 with j segments
	i := 0
	for j = 0; i < n; j++ {
		seg0[j] = i
		i = clip0[i]
	}
	seg0[j] = n
	m := j

	// seg1[j] is the longest path to n with m−j segments
	i = n
	for j = m; j > 0; j-- {
		seg1[j] = i
		i = clip1[i]
	}
	seg1[0] = 0

	// Find the shortest path with m segments, minimizing the penalty.
	// The outer two loops jointly run at most n iterations; the inner
	// loop is short in practice, so this behaves near-linearly.
	pen[0] = 0
	for j = 1; j <= m; j++ {
		for i = seg1[j]; i <= seg0[j]; i++ {
			best := -1.0
			for k := seg0[j-1]; k >= clip1[i]; k-- {
				thispen := a.penalty(k, i) + pen[k]
				if best < 0 || thispen < best {
					prev[i] = k
					best = thispen
				}
			}
			pen[i] = best
		}
	}

	a.po = make([]int, m)
	for i, j = n, m-1; i > 0; j-- {
		i = prev[i]
		a.po[j] = i
	}
}
