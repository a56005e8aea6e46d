package viz

import (
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/jengzang/movetank-go/internal/config"
	"github.com/jengzang/movetank-go/internal/spatial"
)

// LinearScale maps a domain interval onto a range interval
type LinearScale struct {
	Domain r1.Interval
	Range  r1.Interval
	Clamp  bool
}

// Apply maps v; a degenerate domain maps everything to the range midpoint
func (s LinearScale) Apply(v float64) float64 {
	span := s.Domain.Hi - s.Domain.Lo
	if span == 0 || math.IsNaN(span) {
		return s.Range.Center()
	}
	t := (v - s.Domain.Lo) / span
	if s.Clamp {
		t = math.Max(0, math.Min(1, t))
	}
	return s.Range.Lo + t*(s.Range.Hi-s.Range.Lo)
}

// Viewport maps dataset coordinates to pixels
type Viewport struct {
	X LinearScale
	Y LinearScale
}

// NewViewport fits the environment extent into the drawing area minus its margin
func NewViewport(env r2.Rect, cfg config.ViewportConfig) Viewport {
	return Viewport{
		X: LinearScale{Domain: env.X, Range: r1.Interval{Lo: cfg.Margin, Hi: cfg.Width - cfg.Margin}},
		Y: LinearScale{Domain: env.Y, Range: r1.Interval{Lo: cfg.Margin, Hi: cfg.Height - cfg.Margin}},
	}
}

// Project maps a dataset point to pixels
func (v Viewport) Project(p spatial.Point) spatial.Point {
	return spatial.Point{X: v.X.Apply(p.X), Y: v.Y.Apply(p.Y)}
}

// PopulationScale sizes glyph rings by cluster population
// [1, population] maps to [outerRing, outerRing*animalScale], clamped
func PopulationScale(population int, cfg config.GlyphConfig) LinearScale {
	return LinearScale{
		Domain: r1.Interval{Lo: 1, Hi: float64(population)},
		Range:  r1.Interval{Lo: cfg.OuterRing, Hi: cfg.OuterRing * cfg.AnimalScale},
		Clamp:  true,
	}
}
