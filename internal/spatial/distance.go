package spatial

import (
	"math"
)

// BearingOffset rotates atan2 angles so that 0 points "up" on the glyph
const BearingOffset = math.Pi / 2

// Bearing calculates the angle in radians from (cx, cy) to (ex, ey)
// The result is atan2(dy, dx) shifted by BearingOffset and lies in (-π/2, 3π/2]
// Coincident points yield BearingOffset
func Bearing(cx, cy, ex, ey float64) float64 {
	dy := ey - cy
	dx := ex - cx
	return math.Atan2(dy, dx) + BearingOffset
}

// BearingBetween calculates the bearing from a to b
func BearingBetween(a, b Point) float64 {
	return Bearing(a.X, a.Y, b.X, b.Y)
}

// Distance calculates the euclidean distance between two points
func Distance(a, b Point) float64 {
	return b.Sub(a).Norm()
}

// LocalOffset converts a bearing and a distance back into a planar offset
// The y axis is negated because glyph space grows upwards
func LocalOffset(bearing, dist float64) Point {
	return Point{
		X: math.Sin(bearing) * dist,
		Y: -math.Cos(bearing) * dist,
	}
}
