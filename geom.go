package potrace

import (
	"fmt"
	"math"
)

// Point is a point in the plane, usually measured in pixel units on the
// corner grid of the traced raster.
type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

// Sub computes pt−o.
func (pt Point) Sub(o Point) Vec2 {
	return Vec2{
		X: pt.X - o.X,
		Y: pt.Y - o.Y,
	}
}

// Translate computes pt+o.
func (pt Point) Translate(o Vec2) Point {
	return Point{
		X: pt.X + o.X,
		Y: pt.Y + o.Y,
	}
}

// Lerp linearly interpolates between two points.
func (pt Point) Lerp(o Point, t float64) Point {
	return Point{
		X: pt.X + t*(o.X-pt.X),
		Y: pt.Y + t*(o.Y-pt.Y),
	}
}

// Midpoint returns the midpoint of two points.
func (pt Point) Midpoint(o Point) Point {
	return Point{
		X: 0.5 * (pt.X + o.X),
		Y: 0.5 * (pt.Y + o.Y),
	}
}

// Distance returns the euclidean distance between two points.
func (pt Point) Distance(o Point) float64 {
	x := pt.X - o.X
	y := pt.Y - o.Y
	return math.Hypot(x, y)
}

// Vec2 is a vector in the plane.
type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) String() string {
	return fmt.Sprintf("⟨%g, %g⟩", v.X, v.Y)
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the cross product of v and o.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Hypot returns the magnitude of the vector.
func (v Vec2) Hypot() float64 {
	return math.Hypot(v.X, v.Y)
}

// IntPoint is a point on the integer corner grid.
type IntPoint struct {
	X int
	Y int
}

// Sub computes pt−o.
func (pt IntPoint) Sub(o IntPoint) IntPoint {
	return IntPoint{
		X: pt.X - o.X,
		Y: pt.Y - o.Y,
	}
}

// Cross returns the cross product of pt and o, treated as vectors.
func (pt IntPoint) Cross(o IntPoint) int {
	return pt.X*o.Y - pt.Y*o.X
}

// Point converts pt to a [Point].
func (pt IntPoint) Point() Point {
	return Point{
		X: float64(pt.X),
		Y: float64(pt.Y),
	}
}

// dpara returns (p1−p0)×(p2−p0), twice the signed area of the triangle
// p0 p1 p2.
func dpara(p0, p1, p2 Point) float64 {
	return p1.Sub(p0).Cross(p2.Sub(p0))
}

// cprod returns (p1−p0)×(p3−p2).
func cprod(p0, p1, p2, p3 Point) float64 {
	return p1.Sub(p0).Cross(p3.Sub(p2))
}

// iprod returns (p1−p0)·(p2−p0).
func iprod(p0, p1, p2 Point) float64 {
	return p1.Sub(p0).Dot(p2.Sub(p0))
}

// iprod1 returns (p1−p0)·(p3−p2).
func iprod1(p0, p1, p2, p3 Point) float64 {
	return p1.Sub(p0).Dot(p3.Sub(p2))
}

// dorthInfty returns a direction 90 degrees counterclockwise from p2−p0,
// quantized to one of the eight major wind directions.
func dorthInfty(p0, p2 Point) Vec2 {
	return Vec2{
		X: -float64(sign(p2.Y - p0.Y)),
		Y: float64(sign(p2.X - p0.X)),
	}
}

// ddenom and dpara are related as follows: the unit square centered at p1
// intersects the line p0p2 iff |dpara(p0, p1, p2)| ≤ ddenom(p0, p2).
func ddenom(p0, p2 Point) float64 {
	r := dorthInfty(p0, p2)
	return r.Y*(p2.X-p0.X) - r.X*(p2.Y-p0.Y)
}

func sign[T int | float64](x T) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// mod computes a mod n with the result in [0, n), also for negative a.
func mod(a, n int) int {
	switch {
	case a >= n:
		return a % n
	case a >= 0:
		return a
	default:
		return n - 1 - (-1-a)%n
	}
}

// floorDiv computes the floor of a/n.
func floorDiv(a, n int) int {
	if a >= 0 {
		return a / n
	}
	return -1 - (-1-a)/n
}

// cyclic reports whether a ≤ b < c in a cyclic sense (mod n).
func cyclic(a, b, c int) bool {
	if a <= c {
		return a <= b && b < c
	}
	return a <= b || b < c
}
