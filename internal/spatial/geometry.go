package spatial

import (
	"github.com/golang/geo/r2"
)

// Point represents a planar position in data coordinates
type Point = r2.Point

// Centroid calculates the arithmetic mean of a set of points
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}

	return Point{
		X: sumX / float64(len(points)),
		Y: sumY / float64(len(points)),
	}
}

// Extent calculates the bounding rectangle of a set of points
// An empty input yields an empty rectangle
func Extent(points []Point) r2.Rect {
	rect := r2.EmptyRect()
	for _, p := range points {
		rect = rect.AddPoint(p)
	}
	return rect
}

// MaxDistance returns the largest distance from center to any of the points
func MaxDistance(center Point, points []Point) float64 {
	maxDist := 0.0
	for _, p := range points {
		if d := Distance(center, p); d > maxDist {
			maxDist = d
		}
	}
	return maxDist
}
