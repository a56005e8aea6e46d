package models

// NoFeature is the feature channel meaning "uncolored"
const NoFeature = "black"

// FrameParams holds the control values read once per drawn frame
type FrameParams struct {
	Time        int     `form:"time" json:"time"`
	Threshold   float64 `form:"threshold" json:"threshold"`     // Minimum displayed strength (max - weight)
	Clustering  bool    `form:"clustering" json:"clustering"`   // Collapse animals into clusters
	Granularity int     `form:"granularity" json:"granularity"` // Selects the c-<k> column
	Feature     string  `form:"feature" json:"feature"`         // Feature channel or NoFeature
	ArcWidth    float64 `form:"arcWidth" json:"arc_width"`      // Angular bin width in radians
}

// Colored reports whether a feature color channel is active
func (p FrameParams) Colored() bool {
	return p.Feature != "" && p.Feature != NoFeature
}
