package viz

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/jengzang/movetank-go/internal/stats"
)

// Fixed colors
const (
	Black        = "#000000"
	White        = "#ffffff"
	OutlierColor = "#000000" // Animals with a negative cluster label
	ExitColor    = "#ce1256" // Fading clusters
	HoverColor   = "#e31a1c"
)

// Blues is the 9-step sequential scheme of link strengths
var Blues = []string{
	"#f7fbff", "#deebf7", "#c6dbef", "#9ecae1", "#6baed6",
	"#4292c6", "#2171b5", "#08519c", "#08306b",
}

// Diverging is the 9-stop blue to red scheme of feature values
var Diverging = []string{
	"#2166ac", "#4393c3", "#92c5de", "#d1e5f0", "#f7f7f7",
	"#fddbc7", "#f4a582", "#d6604d", "#b2182b",
}

// Tableau10 is the categorical scheme of cluster labels
var Tableau10 = []string{
	"#4e79a7", "#f28e2c", "#e15759", "#76b7b2", "#59a14f",
	"#edc949", "#af7aa1", "#ff9da7", "#9c755f", "#bab0ab",
}

// ClusterColor returns the categorical color of a cluster label
func ClusterColor(label int) string {
	if label < 0 {
		return OutlierColor
	}
	return Tableau10[label%len(Tableau10)]
}

// ThresholdScale maps a value to the color of the first domain step above it
// Values beyond the last step take the last color
type ThresholdScale struct {
	Domain []float64
	Range  []string
}

// Color returns the color of v
func (s ThresholdScale) Color(v float64) string {
	if len(s.Range) == 0 {
		return Black
	}
	i := sort.Search(len(s.Domain), func(i int) bool { return s.Domain[i] > v })
	if i >= len(s.Range) {
		i = len(s.Range) - 1
	}
	return s.Range[i]
}

// NetworkLinkScale colors network links: steps at k*max/11 for k < 10
func NetworkLinkScale(max float64) ThresholdScale {
	domain := make([]float64, 10)
	for k := range domain {
		domain[k] = float64(k) * (max / 11)
	}
	return ThresholdScale{Domain: domain, Range: Blues}
}

// GlyphLinkScale colors glyph arcs and links: steps every max/9 from 0
func GlyphLinkScale(max float64) ThresholdScale {
	return ThresholdScale{Domain: stats.Steps(0, max, max/9), Range: Blues}
}

// FeatureScale interpolates the diverging scheme over a feature extent
// The domain is split into steps of (max-min)/9; values outside clamp
type FeatureScale struct {
	Domain []float64
	Range  []string
}

// NewFeatureScale builds the scale of a feature extent
func NewFeatureScale(lo, hi float64) FeatureScale {
	return FeatureScale{Domain: stats.Steps(lo, hi, (hi-lo)/9), Range: Diverging}
}

// Color returns the interpolated color of v
func (s FeatureScale) Color(v float64) string {
	n := len(s.Domain)
	if n > len(s.Range) {
		n = len(s.Range)
	}
	if n < 2 || math.IsNaN(v) {
		return s.Range[len(s.Range)/2]
	}
	if v <= s.Domain[0] {
		return s.Range[0]
	}
	if v >= s.Domain[n-1] {
		return s.Range[n-1]
	}
	i := sort.Search(n, func(i int) bool { return s.Domain[i] > v }) - 1
	t := (v - s.Domain[i]) / (s.Domain[i+1] - s.Domain[i])
	return Lerp(s.Range[i], s.Range[i+1], t)
}

// Lerp interpolates two "#rrggbb" colors in RGB space
func Lerp(a, b string, t float64) string {
	ar, ag, ab := parseHex(a)
	br, bg, bb := parseHex(b)
	mix := func(x, y int) int {
		return int(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return fmt.Sprintf("#%02x%02x%02x", mix(ar, br), mix(ag, bg), mix(ab, bb))
}

func parseHex(c string) (int, int, int) {
	if len(c) != 7 || c[0] != '#' {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(c[1:], 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
