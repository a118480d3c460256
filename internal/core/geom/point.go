// Package geom holds the small amount of 2D vector math shared by the camera,
// the raycaster and the AI. Coordinates are in map units, one unit per grid cell.
package geom

import "math"

// Point represents a 2D point or vector in map space
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p*s.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the z component of the 3D cross product of p and q.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// LenSq returns the squared length of p.
func (p Point) LenSq() float64 {
	return p.X*p.X + p.Y*p.Y
}

// Len returns the length of p.
func (p Point) Len() float64 {
	return math.Sqrt(p.LenSq())
}

// Normalize returns the unit vector along p. ok is false for a zero-length (or
// non-finite) vector, in which case the zero Point is returned.
func (p Point) Normalize() (Point, bool) {
	l := p.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Point{}, false
	}
	return Point{X: p.X / l, Y: p.Y / l}, true
}

// Rotate rotates p counter-clockwise by angle radians.
func (p Point) Rotate(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// Perp returns p rotated a quarter turn clockwise: (y, -x).
func (p Point) Perp() Point {
	return Point{X: p.Y, Y: -p.X}
}

// Cell returns the grid cell containing p.
func (p Point) Cell() (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

// Distance calculates the Euclidean distance between two points
func Distance(a, b Point) float64 {
	return b.Sub(a).Len()
}
