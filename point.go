package geom

import (
	xfixed "golang.org/x/image/math/fixed"
)

// Point is a path vertex in fixed-point device coordinates.
type Point struct {
	X, Y Fixed
}

// Pt is a convenience function to create a Point.
func Pt(x, y Fixed) Point {
	return Point{X: x, Y: y}
}

// PtFromFloat64 converts double-precision coordinates to a fixed-point
// vertex, clamping out-of-range input to the representable extremes.
func PtFromFloat64(x, y float64) Point {
	return Point{X: FromFloat64Clamped(x), Y: FromFloat64Clamped(y)}
}

// Float64s returns the exact real coordinates of p.
func (p Point) Float64s() (x, y float64) {
	return p.X.Float64(), p.Y.Float64()
}

// Vec2 returns p as a double-precision vector.
func (p Point) Vec2() Vec2 {
	return Vec2{X: p.X.Float64(), Y: p.Y.Float64()}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// ToPoint26_6 converts p to the 26.6 fixed-point point format used by
// golang.org/x/image rasterizers.
func (p Point) ToPoint26_6() xfixed.Point26_6 {
	return xfixed.Point26_6{X: p.X.ToInt26_6(), Y: p.Y.ToInt26_6()}
}

// PointFromPoint26_6 converts a 26.6 fixed-point point to a Point.
func PointFromPoint26_6(p xfixed.Point26_6) Point {
	return Point{X: FromInt26_6(p.X), Y: FromInt26_6(p.Y)}
}
