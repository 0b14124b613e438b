package potrace

import "math"

// Stage 3: vertex adjustment. Each polygon edge gets an "optimal" line
// through the contour points it spans; each polygon vertex is then moved to
// the point of its surrounding unit square that minimizes the summed squared
// distance to the two adjacent lines.

// pointSlope returns the center and direction of the optimal line through
// the contour points i..j: the centroid, and the principal eigenvector of
// the coordinate covariance over the range. i and j may lie outside [0, n);
// they are reduced cyclically.
func (a *analysis) pointSlope(i, j int) (ctr Point, dir Vec2) {
	n := len(a.pt)

	r := 0 // number of full wraps from i to j
	for j >= n {
		j -= n
		r++
	}
	for i >= n {
		i -= n
		r--
	}
	for j < 0 {
		j += n
		r--
	}
	for i < 0 {
		i += n
		r++
	}

	x := float64(a.sums[j+1].x - a.sums[i].x + r*a.sums[n].x)
	y := float64(a.sums[j+1].y - a.sums[i].y + r*a.sums[n].y)
	x2 := float64(a.sums[j+1].x2 - a.sums[i].x2 + r*a.sums[n].x2)
	xy := float64(a.sums[j+1].xy - a.sums[i].xy + r*a.sums[n].xy)
	y2 := float64(a.sums[j+1].y2 - a.sums[i].y2 + r*a.sums[n].y2)
	k := float64(j + 1 - i + r*n)

	ctr = Pt(x/k, y/k)

	cxx := (x2 - x*x/k) / k
	cxy := (xy - x*y/k) / k
	cyy := (y2 - y*y/k) / k

	// larger eigenvalue of the covariance matrix
	lambda2 := (cxx + cyy + math.Sqrt((cxx-cyy)*(cxx-cyy)+4*cxy*cxy)) / 2

	cxx -= lambda2
	cyy -= lambda2
	var l float64
	if math.Abs(cxx) >= math.Abs(cyy) {
		l = math.Hypot(cxx, cxy)
		if l != 0 {
			dir = Vec2{X: -cxy / l, Y: cxx / l}
		}
	} else {
		l = math.Hypot(cyy, cxy)
		if l != 0 {
			dir = Vec2{X: -cyy / l, Y: cxy / l}
		}
	}
	if l == 0 {
		// the eigenvalues coincide, e.g. for a range of four points
		// around a corner; any direction minimizes equally
		dir = Vec2{}
	}
	return ctr, dir
}

// quadForm is an affine quadratic form, represented as a symmetric 3×3
// matrix. Its value at (x, y) is v^T Q v with v = (x, y, 1)^T.
type quadForm [3][3]float64

func (Q *quadForm) eval(w Point) float64 {
	v := [3]float64{w.X, w.Y, 1}
	sum := 0.0
	for i := range 3 {
		for j := range 3 {
			sum += v[i] * Q[i][j] * v[j]
		}
	}
	return sum
}

// adjustVertices computes the adjusted position of every polygon vertex and
// stores them in a.curve. For sign=false paths the vertex order is reversed
// on the way, so that all curves downstream wind the same way around
// foreground.
func (a *analysis) adjustVertices(sign bool) {
	po := a.po
	m := len(po)
	pt := a.pt
	n := len(pt)

	ctr := make([]Point, m)
	dir := make([]Vec2, m)
	q := make([]quadForm, m)

	a.curve.seg = make([]privSegment, m)

	for i := range m {
		j := po[mod(i+1, m)]
		j = mod(j-po[i], n) + po[i]
		ctr[i], dir[i] = a.pointSlope(po[i], j)
	}

	// represent each line as a singular quadratic form measuring the
	// squared distance from it
	for i := range m {
		d := dir[i].Dot(dir[i])
		if d == 0 {
			continue
		}
		v := [3]float64{
			dir[i].Y,
			-dir[i].X,
			dir[i].X*ctr[i].Y - dir[i].Y*ctr[i].X,
		}
		for l := range 3 {
			for k := range 3 {
				q[i][l][k] = v[l] * v[k] / d
			}
		}
	}

	// Instead of intersecting consecutive lines exactly, minimize the sum
	// of their quadratic forms over the unit square centered on the
	// original vertex, keeping the adjusted vertex close to the contour.
	for i := range m {
		// the vertex, relative to the sums origin
		s := Pt(float64(pt[po[i]].X-a.x0), float64(pt[po[i]].Y-a.y0))

		j := mod(i-1, m)

		var Q quadForm
		for l := range 3 {
			for k := range 3 {
				Q[l][k] = q[j][l][k] + q[i][l][k]
			}
		}

		var w Point
		for {
			det := Q[0][0]*Q[1][1] - Q[0][1]*Q[1][0]
			if det != 0 {
				w = Pt(
					(-Q[0][2]*Q[1][1]+Q[1][2]*Q[0][1])/det,
					(Q[0][2]*Q[1][0]-Q[1][2]*Q[0][0])/det,
				)
				break
			}

			// the matrix is singular, the lines are parallel; add an
			// orthogonal axis through the center of the square and
			// try again
			var v [3]float64
			if Q[0][0] > Q[1][1] {
				v[0] = -Q[0][1]
				v[1] = Q[0][0]
			} else if Q[1][1] != 0 {
				v[0] = -Q[1][1]
				v[1] = Q[1][0]
			} else {
				v[0] = 1
				v[1] = 0
			}
			d := v[0]*v[0] + v[1]*v[1]
			v[2] = -v[1]*s.Y - v[0]*s.X
			for l := range 3 {
				for k := range 3 {
					Q[l][k] += v[l] * v[k] / d
				}
			}
		}

		if math.Abs(w.X-s.X) <= 0.5 && math.Abs(w.Y-s.Y) <= 0.5 {
			a.setVertex(i, m, sign, w.Translate(Vec2{float64(a.x0), float64(a.y0)}))
			continue
		}

		// the interior minimum lies outside the unit square; minimize
		// along the four edges and at the four corners
		minv := Q.eval(s)
		xmin, ymin := s.X, s.Y

		if Q[0][0] != 0 {
			for z := range 2 {
				// minimize along the horizontal edges
				w.Y = s.Y - 0.5 + float64(z)
				w.X = -(Q[0][1]*w.Y + Q[0][2]) / Q[0][0]
				if math.Abs(w.X-s.X) <= 0.5 {
					if cand := Q.eval(w); cand < minv {
						minv = cand
						xmin, ymin = w.X, w.Y
					}
				}
			}
		}
		if Q[1][1] != 0 {
			for z := range 2 {
				// minimize along the vertical edges
				w.X = s.X - 0.5 + float64(z)
				w.Y = -(Q[1][0]*w.X + Q[1][2]) / Q[1][1]
				if math.Abs(w.Y-s.Y) <= 0.5 {
					if cand := Q.eval(w); cand < minv {
						minv = cand
						xmin, ymin = w.X, w.Y
					}
				}
			}
		}
		for l := range 2 {
			for k := range 2 {
				w = Pt(s.X-0.5+float64(l), s.Y-0.5+float64(k))
				if cand := Q.eval(w); cand < minv {
					minv = cand
					xmin, ymin = w.X, w.Y
				}
			}
		}

		a.setVertex(i, m, sign, Pt(xmin+float64(a.x0), ymin+float64(a.y0)))
	}
}

// setVertex writes an adjusted vertex, reversing the winding of sign=false
// paths by storing vertex i at slot m−i−1. This is the only place winding
// is reversed.
func (a *analysis) setVertex(i, m int, sign bool, v Point) {
	if sign {
		a.curve.seg[i].vertex = v
	} else {
		a.curve.seg[m-i-1].vertex = v
	}
}
