package models

import (
	"strconv"

	"github.com/jengzang/movetank-go/internal/spatial"
)

// Cluster is the abstraction of at least two animals sharing a non-negative label
type Cluster struct {
	ID                  string        `json:"cluster_id"` // "c-" + label
	Label               int           `json:"label"`
	Granularity         int           `json:"granularity"`
	Centroid            spatial.Point `json:"centroid"`
	AverageSpeed        float64       `json:"average_speed"`
	AverageAcceleration float64       `json:"average_acceleration"`
	Direction           float64       `json:"direction"`
	Num                 int           `json:"num"`
	Movers              []Record      `json:"-"`
	MoverIDs            []string      `json:"movers_id"`
}

// ClusterID synthesizes the id of a cluster label
func ClusterID(label int) string {
	return ClusterPrefix + strconv.Itoa(label)
}

// Contains reports whether the animal is a member of the cluster
func (c *Cluster) Contains(animalID string) bool {
	for _, id := range c.MoverIDs {
		if id == animalID {
			return true
		}
	}
	return false
}

// Feature looks up an aggregated attribute by column name
func (c *Cluster) Feature(name string) (float64, bool) {
	switch name {
	case FeatureX:
		return c.Centroid.X, true
	case FeatureY:
		return c.Centroid.Y, true
	case FeatureDirection:
		return c.Direction, true
	case FeatureAverageSpeed:
		return c.AverageSpeed, true
	case FeatureAverageAcceleration:
		return c.AverageAcceleration, true
	}
	return 0, false
}

// Entity is one top-level item of a frame: either a cluster or a single animal
type Entity struct {
	Cluster *Cluster
	Record  *Record
}

// IsCluster reports whether the entity wraps a cluster
func (e Entity) IsCluster() bool {
	return e.Cluster != nil
}

// ID returns the cluster id or the animal id
func (e Entity) ID() string {
	if e.Cluster != nil {
		return e.Cluster.ID
	}
	return e.Record.AnimalID
}

// Feature looks up a colorable attribute of the entity
func (e Entity) Feature(name string) (float64, bool) {
	if e.Cluster != nil {
		return e.Cluster.Feature(name)
	}
	return e.Record.Feature(name)
}
