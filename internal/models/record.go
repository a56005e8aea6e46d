package models

import (
	"math"
	"sort"
	"strconv"

	"github.com/jengzang/movetank-go/internal/spatial"
)

// Column prefixes of the flat dataset layout
const (
	ClusterPrefix = "c-" // c-<k>: cluster label at granularity k
	WeightPrefix  = "m-" // m-<id>: edge weight towards animal id
)

// Built-in feature names
const (
	FeatureX                   = "x"
	FeatureY                   = "y"
	FeatureDirection           = "direction"
	FeatureAverageSpeed        = "average_speed"
	FeatureAverageAcceleration = "average_acceleration"
)

// Record represents one animal at one time step
type Record struct {
	AnimalID            string             `json:"animal_id"`
	Time                int                `json:"time"`
	X                   float64            `json:"x"`
	Y                   float64            `json:"y"`
	Direction           float64            `json:"direction"` // Heading in degrees
	AverageSpeed        float64            `json:"average_speed"`
	AverageAcceleration float64            `json:"average_acceleration"`
	Clusters            map[int]int        `json:"clusters,omitempty"` // Granularity -> label, negative = outlier
	Weights             map[string]float64 `json:"weights,omitempty"`  // Target animal id -> stored weight
	Features            map[string]float64 `json:"features,omitempty"` // Remaining numeric columns
}

// Position returns the true position of the animal
func (r *Record) Position() spatial.Point {
	return spatial.Point{X: r.X, Y: r.Y}
}

// Label returns the cluster label at the given granularity
func (r *Record) Label(granularity int) (int, bool) {
	label, ok := r.Clusters[granularity]
	return label, ok
}

// Weight returns the stored weight towards target
// Missing and NaN weights are reported as absent
func (r *Record) Weight(target string) (float64, bool) {
	w, ok := r.Weights[target]
	if !ok || math.IsNaN(w) {
		return 0, false
	}
	return w, true
}

// Feature looks up a numeric attribute by column name
func (r *Record) Feature(name string) (float64, bool) {
	switch name {
	case FeatureX:
		return r.X, true
	case FeatureY:
		return r.Y, true
	case FeatureDirection:
		return r.Direction, true
	case FeatureAverageSpeed:
		return r.AverageSpeed, true
	case FeatureAverageAcceleration:
		return r.AverageAcceleration, true
	}

	if len(name) > len(ClusterPrefix) && name[:len(ClusterPrefix)] == ClusterPrefix {
		if k, err := strconv.Atoi(name[len(ClusterPrefix):]); err == nil {
			label, ok := r.Label(k)
			return float64(label), ok
		}
	}

	v, ok := r.Features[name]
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// ClusterColumn returns the column name of a granularity, e.g. "c-2"
func ClusterColumn(granularity int) string {
	return ClusterPrefix + strconv.Itoa(granularity)
}

// Frame is the set of records sharing one time value
type Frame []Record

// IDs returns the animal ids of the frame in frame order
func (f Frame) IDs() []string {
	ids := make([]string, len(f))
	for i := range f {
		ids[i] = f[i].AnimalID
	}
	return ids
}

// Lookup returns the record of an animal
func (f Frame) Lookup(animalID string) (*Record, bool) {
	for i := range f {
		if f[i].AnimalID == animalID {
			return &f[i], true
		}
	}
	return nil, false
}

// PositionIndex maps animal ids to their effective position in a frame
type PositionIndex map[string]spatial.Point

// Clone returns an independent copy of the index
func (p PositionIndex) Clone() PositionIndex {
	out := make(PositionIndex, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Keys returns the ids of the index in sorted order
func (p PositionIndex) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
