package potrace

import "math"

// Stage 4: smoothing and corner analysis. Every vertex of the adjusted
// polygon becomes either a pointed corner or a Bézier join, depending on how
// far the curve would have to deviate from the vertex to round it off.

func (a *analysis) smooth(alphamax float64) {
	curve := a.curve.seg
	m := len(curve)

	for i := range m {
		j := mod(i+1, m)
		k := mod(i+2, m)
		p4 := curve[k].vertex.Midpoint(curve[j].vertex)

		var alpha float64
		denom := ddenom(curve[i].vertex, curve[k].vertex)
		if denom != 0 {
			dd := math.Abs(dpara(curve[i].vertex, curve[j].vertex, curve[k].vertex) / denom)
			if dd > 1 {
				alpha = 1 - 1/dd
			}
			alpha = alpha / 0.75
		} else {
			alpha = 4.0 / 3
		}
		curve[j].alpha0 = alpha // before cropping

		if alpha >= alphamax { // pointed corner
			curve[j].kind = Corner
			curve[j].c[1] = curve[j].vertex
			curve[j].c[2] = p4
		} else {
			alpha = min(max(alpha, 0.55), 1)
			p2 := curve[i].vertex.Lerp(curve[j].vertex, 0.5+0.5*alpha)
			p3 := curve[k].vertex.Lerp(curve[j].vertex, 0.5+0.5*alpha)
			curve[j].kind = Bezier
			curve[j].c[0] = p2
			curve[j].c[1] = p3
			curve[j].c[2] = p4
		}
		curve[j].alpha = alpha
		curve[j].beta = 0.5
	}
}
