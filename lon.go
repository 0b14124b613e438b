package potrace

// Stage 1: longest straight subpaths.
//
// Straightness is a triplewise property: a straight line passes through the
// pixel squares i0..in iff one passes through i, j, k for all
// i0 ≤ i < j < k ≤ in. That makes it enough to track, per start point, a
// pair of direction constraints that future offsets must satisfy, and only
// at points where the contour changes direction.

// it suffices that this is larger than any contour length
const infty = 10000000

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// computeLon fills a.lon: for each i, lon[i] is the furthest index (in the
// cyclic sense) such that a straight line fits all contour points from i to
// lon[i].
func (a *analysis) computeLon() {
	pt := a.pt
	n := len(pt)
	pivk := make([]int, n)

	// nc[i] is the next corner after i: the first index whose outgoing
	// step differs in both components from the step at i. The contour
	// extraction guarantees a direction change at index 0, so working
	// backwards from n-1 is safe.
	nc := make([]int, n)
	k := 0
	for i := n - 1; i >= 0; i-- {
		if pt[i].X != pt[k].X && pt[i].Y != pt[k].Y {
			k = i + 1
		}
		nc[i] = k
	}

	for i := n - 1; i >= 0; i-- {
		pivk[i] = a.pivot(i, nc)
	}

	// clean up: lon[i] is the largest k such that i' < k ≤ pivk[i'] for
	// all i ≤ i' < k
	a.lon = make([]int, n)
	j := pivk[n-1]
	a.lon[n-1] = j
	for i := n - 2; i >= 0; i-- {
		if cyclic(i+1, pivk[i], j) {
			j = pivk[i]
		}
		a.lon[i] = j
	}
	for i := n - 1; cyclic(mod(i+1, n), j, a.lon[i]); i-- {
		a.lon[i] = j
	}
}

// pivot returns the furthest k such that all points strictly between i and k
// lie on a straight line from i to k. It walks the corners after i,
// tightening a pair of cross-product constraints, until a corner violates
// them or all four axis directions have been seen.
func (a *analysis) pivot(i int, nc []int) int {
	pt := a.pt
	n := len(pt)

	var ct [4]int
	dir := (3 + 3*(pt[mod(i+1, n)].X-pt[i].X) + (pt[mod(i+1, n)].Y - pt[i].Y)) / 2
	ct[dir]++

	var constraint [2]IntPoint
	k := nc[i]
	k1 := i
	for {
		dir = (3 + 3*sign(pt[k].X-pt[k1].X) + sign(pt[k].Y-pt[k1].Y)) / 2
		ct[dir]++

		// a straight subpath uses at most three of the four directions
		if ct[0] != 0 && ct[1] != 0 && ct[2] != 0 && ct[3] != 0 {
			return k1
		}

		cur := pt[k].Sub(pt[i])
		if constraint[0].Cross(cur) < 0 || constraint[1].Cross(cur) > 0 {
			break
		}

		if abs(cur.X) > 1 || abs(cur.Y) > 1 {
			var off IntPoint
			if cur.Y >= 0 && (cur.Y > 0 || cur.X < 0) {
				off.X = cur.X + 1
			} else {
				off.X = cur.X - 1
			}
			if cur.X <= 0 && (cur.X < 0 || cur.Y < 0) {
				off.Y = cur.Y + 1
			} else {
				off.Y = cur.Y - 1
			}
			if constraint[0].Cross(off) >= 0 {
				constraint[0] = off
			}
			if cur.Y <= 0 && (cur.Y < 0 || cur.X < 0) {
				off.X = cur.X + 1
			} else {
				off.X = cur.X - 1
			}
			if cur.X >= 0 && (cur.X > 0 || cur.Y < 0) {
				off.Y = cur.Y + 1
			} else {
				off.Y = cur.Y - 1
			}
			if constraint[1].Cross(off) <= 0 {
				constraint[1] = off
			}
		}

		k1 = k
		k = nc[k1]
		if !cyclic(k, i, k1) {
			break
		}
	}

	// k1 was the last corner satisfying the constraints and k is the
	// first one violating them; find the last point along k1..k that
	// still satisfies them. With ca + j·cb = constraint[0]×cur and
	// cc + j·cd = constraint[1]×cur, that is the largest j with
	// ca + j·cb ≥ 0 and cc + j·cd ≤ 0, solvable in integers.
	dk := IntPoint{
		X: sign(pt[k].X - pt[k1].X),
		Y: sign(pt[k].Y - pt[k1].Y),
	}
	cur := pt[k1].Sub(pt[i])

	ca := constraint[0].Cross(cur)
	cb := constraint[0].Cross(dk)
	cc := constraint[1].Cross(cur)
	cd := constraint[1].Cross(dk)

	j := infty
	if cb < 0 {
		j = floorDiv(ca, -cb)
	}
	if cd > 0 {
		j = min(j, floorDiv(-cc, cd))
	}
	return mod(k1+j, n)
}
