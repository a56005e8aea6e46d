// Package relations derives the directional relationships between animals of a frame.
//
// Stored weights are dissimilarities: the displayed strength of a pair is
// max - weight, where max is the upper bound of the dataset's weight extent.
package relations

import (
	"github.com/jengzang/movetank-go/internal/dataset"
	"github.com/jengzang/movetank-go/internal/models"
	"github.com/jengzang/movetank-go/internal/spatial"
)

// Filter selects the relationships that are drawn
type Filter struct {
	Max       float64 // Upper bound of the weight extent
	Threshold float64 // Minimum strength, inclusive
}

// Strength returns the displayed strength of the relationship from src to target
// The second result is false when the weight is absent or below the threshold
func (f Filter) Strength(src *models.Record, target string) (float64, bool) {
	w, ok := src.Weight(target)
	if !ok {
		return 0, false
	}
	v := f.Max - w
	return v, v >= f.Threshold
}

// Skip reports whether a target id should be ignored
type Skip func(id string) bool

// SamplesFrom emits the arc samples of one source record
// origin is the effective position of the source, ids are the candidate targets
func SamplesFrom(src *models.Record, origin spatial.Point, ids []string, positions models.PositionIndex, f Filter, skip Skip) []models.ArcSample {
	var samples []models.ArcSample
	for _, id := range ids {
		if id == src.AnimalID || (skip != nil && skip(id)) {
			continue
		}
		value, ok := f.Strength(src, id)
		if !ok {
			continue
		}
		target, ok := positions[id]
		if !ok {
			continue
		}
		samples = append(samples, models.ArcSample{
			Node:      src.AnimalID,
			Angle:     spatial.BearingBetween(origin, target),
			Value:     value,
			Positions: []spatial.Point{origin},
		})
	}
	return samples
}

// Samples emits the arc samples of every animal in the snapshot
func Samples(snap *dataset.Snapshot, f Filter) []models.ArcSample {
	var samples []models.ArcSample
	for i := range snap.Frame {
		src := &snap.Frame[i]
		origin := snap.Positions[src.AnimalID]
		samples = append(samples, SamplesFrom(src, origin, snap.IDs, snap.Positions, f, nil)...)
	}
	return samples
}

// LinksFrom emits the drawable links of one source record
// The links are labelled with sourceKey and start at start
func LinksFrom(src *models.Record, sourceKey string, start spatial.Point, ids []string, positions models.PositionIndex, f Filter, skip Skip) []models.Link {
	var links []models.Link
	for _, id := range ids {
		if id == src.AnimalID || (skip != nil && skip(id)) {
			continue
		}
		value, ok := f.Strength(src, id)
		if !ok {
			continue
		}
		end, ok := positions[id]
		if !ok {
			continue
		}
		links = append(links, models.Link{
			Source: sourceKey,
			Target: id,
			Start:  start,
			End:    end,
			Value:  value,
		})
	}
	return links
}

// Links emits one link per passing ordered pair between true positions
func Links(snap *dataset.Snapshot, f Filter) []models.Link {
	var links []models.Link
	for i := range snap.Frame {
		src := &snap.Frame[i]
		start := snap.Positions[src.AnimalID]
		links = append(links, LinksFrom(src, src.AnimalID, start, snap.IDs, snap.Positions, f, nil)...)
	}
	return links
}
