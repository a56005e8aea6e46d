package models

import "github.com/jengzang/movetank-go/internal/spatial"

// ArcSample is one directional relationship observation
// Before binning it holds a single position; after binning it is the aggregate of a bucket
type ArcSample struct {
	Node      string          `json:"node"`                 // Source animal id
	Group     string          `json:"cluster_id,omitempty"` // Owning cluster id under clustering
	Members   int             `json:"num,omitempty"`        // Population of the owning cluster
	Angle     float64         `json:"arc"`                  // Bearing in radians
	Value     float64         `json:"val"`                  // max - weight
	Positions []spatial.Point `json:"pos"`
}

// Owner returns the id samples are grouped by
func (s *ArcSample) Owner() string {
	if s.Group != "" {
		return s.Group
	}
	return s.Node
}

// Link is a drawable relationship between two positions
type Link struct {
	Source string        `json:"node1"`
	Target string        `json:"node2"`
	Start  spatial.Point `json:"start"`
	End    spatial.Point `json:"end"`
	Value  float64       `json:"val"`
}
