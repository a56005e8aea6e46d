// Package cluster collapses the animals of a frame into spatial clusters.
package cluster

import (
	"sort"

	"github.com/jengzang/movetank-go/internal/analysis/relations"
	"github.com/jengzang/movetank-go/internal/dataset"
	"github.com/jengzang/movetank-go/internal/models"
	"github.com/jengzang/movetank-go/internal/spatial"
	"github.com/jengzang/movetank-go/internal/stats"
)

// MinMembers is the smallest group that forms a cluster
const MinMembers = 2

// Abstraction is the (possibly) clustered view of one frame
type Abstraction struct {
	Snapshot    *dataset.Snapshot
	Clustered   bool
	Granularity int
	Entities    []models.Entity      // Top-level drawable items
	Clusters    []*models.Cluster    // Real clusters, ascending label
	Positions   models.PositionIndex // Effective positions; members sit on their centroid
	Owners      map[string]string    // Animal id -> cluster id for clustered animals
}

// Flat returns the unclustered view: every animal is its own entity at its true position
func Flat(snap *dataset.Snapshot) *Abstraction {
	a := &Abstraction{
		Snapshot:  snap,
		Entities:  make([]models.Entity, 0, len(snap.Frame)),
		Positions: snap.Positions,
		Owners:    map[string]string{},
	}
	for i := range snap.Frame {
		a.Entities = append(a.Entities, models.Entity{Record: &snap.Frame[i]})
	}
	return a
}

// Abstract partitions the frame by the c-<granularity> label
// Groups of at least MinMembers animals with a non-negative label become
// clusters; singletons, outliers and unlabelled animals pass through.
// Entities are ordered by ascending label, outlier labels after the others,
// unlabelled animals last
func Abstract(snap *dataset.Snapshot, granularity int) *Abstraction {
	a := &Abstraction{
		Snapshot:    snap,
		Clustered:   true,
		Granularity: granularity,
		Positions:   snap.Positions.Clone(),
		Owners:      make(map[string]string),
	}

	groups := make(map[int][]*models.Record)
	var labels []int
	var unlabelled []*models.Record
	for i := range snap.Frame {
		rec := &snap.Frame[i]
		label, ok := rec.Label(granularity)
		if !ok {
			unlabelled = append(unlabelled, rec)
			continue
		}
		if _, seen := groups[label]; !seen {
			labels = append(labels, label)
		}
		groups[label] = append(groups[label], rec)
	}
	sort.SliceStable(labels, func(i, j int) bool {
		li, lj := labels[i], labels[j]
		if (li < 0) != (lj < 0) {
			return li >= 0
		}
		return li < lj
	})

	for _, label := range labels {
		members := groups[label]
		if len(members) < MinMembers || label < 0 {
			for _, rec := range members {
				a.Entities = append(a.Entities, models.Entity{Record: rec})
			}
			continue
		}

		c := aggregate(label, granularity, members)
		for _, id := range c.MoverIDs {
			a.Positions[id] = c.Centroid
			a.Owners[id] = c.ID
		}
		a.Clusters = append(a.Clusters, c)
		a.Entities = append(a.Entities, models.Entity{Cluster: c})
	}

	for _, rec := range unlabelled {
		a.Entities = append(a.Entities, models.Entity{Record: rec})
	}
	return a
}

// aggregate computes the representative attributes of a group
func aggregate(label, granularity int, members []*models.Record) *models.Cluster {
	n := len(members)
	points := make([]spatial.Point, n)
	speeds := make([]float64, n)
	accelerations := make([]float64, n)
	directions := make([]float64, n)

	c := &models.Cluster{
		ID:          models.ClusterID(label),
		Label:       label,
		Granularity: granularity,
		Num:         n,
		Movers:      make([]models.Record, n),
		MoverIDs:    make([]string, n),
	}
	for i, rec := range members {
		points[i] = rec.Position()
		speeds[i] = rec.AverageSpeed
		accelerations[i] = rec.AverageAcceleration
		directions[i] = rec.Direction
		c.Movers[i] = *rec
		c.MoverIDs[i] = rec.AnimalID
	}

	c.Centroid = spatial.Centroid(points)
	c.AverageSpeed = stats.Mean(speeds)
	c.AverageAcceleration = stats.Mean(accelerations)
	c.Direction = stats.Mean(directions)
	return c
}

// Samples emits the arc samples of every top-level entity
// Cluster samples start at the centroid, are owned by the cluster id and
// never point at other members of the same cluster
func (a *Abstraction) Samples(f relations.Filter) []models.ArcSample {
	ids := a.Snapshot.IDs

	var samples []models.ArcSample
	for _, e := range a.Entities {
		if !e.IsCluster() {
			rec := e.Record
			samples = append(samples, relations.SamplesFrom(rec, a.Positions[rec.AnimalID], ids, a.Positions, f, nil)...)
			continue
		}

		c := e.Cluster
		for i := range c.Movers {
			group := relations.SamplesFrom(&c.Movers[i], c.Centroid, ids, a.Positions, f, c.Contains)
			for j := range group {
				group[j].Group = c.ID
				group[j].Members = c.Num
			}
			samples = append(samples, group...)
		}
	}
	return samples
}

// LinksOf returns the live links of one top-level entity between effective positions
func (a *Abstraction) LinksOf(e models.Entity, f relations.Filter) []models.Link {
	ids := a.Snapshot.IDs
	if !e.IsCluster() {
		rec := e.Record
		return relations.LinksFrom(rec, rec.AnimalID, a.Positions[rec.AnimalID], ids, a.Positions, f, nil)
	}

	c := e.Cluster
	var links []models.Link
	for i := range c.Movers {
		links = append(links, relations.LinksFrom(&c.Movers[i], c.ID, c.Centroid, ids, a.Positions, f, c.Contains)...)
	}
	return links
}

// Find returns the top-level entity with the given id
func (a *Abstraction) Find(id string) (models.Entity, bool) {
	for _, e := range a.Entities {
		if e.ID() == id {
			return e, true
		}
	}
	return models.Entity{}, false
}
