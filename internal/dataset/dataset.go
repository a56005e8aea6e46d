package dataset

import (
	"errors"
	"log"
	"math"
	"sort"
	"sync"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/jengzang/movetank-go/internal/models"
	"github.com/jengzang/movetank-go/internal/stats"
)

// ErrEmpty is returned when a dataset is built from no records
var ErrEmpty = errors.New("dataset contains no records")

// Dataset is the immutable, time-grouped movement data of one load
type Dataset struct {
	records       []models.Record
	frames        map[int]models.Frame
	times         []int
	weight        r1.Interval
	environment   r2.Rect
	granularities []int
	numClusters   int

	mu       sync.Mutex
	features map[string]r1.Interval
}

// New groups the records by time and computes the dataset-wide extents
func New(records []models.Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	d := &Dataset{
		records:     records,
		frames:      make(map[int]models.Frame),
		weight:      r1.EmptyInterval(),
		environment: r2.EmptyRect(),
		features:    make(map[string]r1.Interval),
	}

	granularities := make(map[int]struct{})
	for _, r := range records {
		if _, ok := d.frames[r.Time]; !ok {
			d.times = append(d.times, r.Time)
		}
		d.frames[r.Time] = append(d.frames[r.Time], r)

		d.environment = d.environment.AddPoint(r.Position())

		for _, w := range r.Weights {
			if !math.IsNaN(w) {
				d.weight = d.weight.AddPoint(w)
			}
		}
		for k, label := range r.Clusters {
			granularities[k] = struct{}{}
			if label > d.numClusters {
				d.numClusters = label
			}
		}
	}

	sort.Ints(d.times)
	for k := range granularities {
		d.granularities = append(d.granularities, k)
	}
	sort.Ints(d.granularities)

	log.Printf("[Dataset] Grouped %d records into %d frames (%d granularities, weights %v)",
		len(records), len(d.times), len(d.granularities), d.weight)
	return d, nil
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.records)
}

// Frame returns the records of one time step
func (d *Dataset) Frame(time int) (models.Frame, bool) {
	f, ok := d.frames[time]
	return f, ok
}

// Times returns the available time steps in ascending order
func (d *Dataset) Times() []int {
	return d.times
}

// TimeRange returns the first and last time step
func (d *Dataset) TimeRange() (int, int) {
	return d.times[0], d.times[len(d.times)-1]
}

// Next returns the time step following t, wrapping to the first one after the last
func (d *Dataset) Next(t int) int {
	i := sort.SearchInts(d.times, t+1)
	if i >= len(d.times) {
		return d.times[0]
	}
	return d.times[i]
}

// Population returns the number of animals in the first frame
func (d *Dataset) Population() int {
	return len(d.frames[d.times[0]])
}

// WeightExtent returns the [min, max] of all stored edge weights
func (d *Dataset) WeightExtent() r1.Interval {
	return d.weight
}

// WeightMax returns the upper weight bound used to invert weights into strengths
// Datasets without weights fall back to 1
func (d *Dataset) WeightMax() float64 {
	if d.weight.IsEmpty() || d.weight.Hi == 0 {
		return 1
	}
	return d.weight.Hi
}

// EnvironmentExtent returns the bounding rectangle of all positions
func (d *Dataset) EnvironmentExtent() r2.Rect {
	return d.environment
}

// NumClusters returns the largest cluster label of any granularity
func (d *Dataset) NumClusters() int {
	return d.numClusters
}

// Granularities returns the k of every c-<k> column in ascending order
func (d *Dataset) Granularities() []int {
	return d.granularities
}

// NumClusterings returns the highest selectable granularity index
func (d *Dataset) NumClusterings() int {
	return len(d.granularities) - 1
}

// FeatureExtent returns the [min, max] of a feature over the whole dataset
// Extents are computed once per name and cached for the lifetime of the dataset
func (d *Dataset) FeatureExtent(name string) (r1.Interval, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if ext, ok := d.features[name]; ok {
		return ext, !ext.IsEmpty()
	}

	values := make([]float64, 0, len(d.records))
	for i := range d.records {
		if v, ok := d.records[i].Feature(name); ok {
			values = append(values, v)
		}
	}
	ext := stats.Extent(values)
	d.features[name] = ext
	return ext, !ext.IsEmpty()
}

// Features returns the names of all colorable features
func (d *Dataset) Features() []string {
	names := []string{
		models.FeatureAverageSpeed,
		models.FeatureAverageAcceleration,
		models.FeatureDirection,
	}

	extra := make(map[string]struct{})
	for i := range d.records {
		for name := range d.records[i].Features {
			extra[name] = struct{}{}
		}
	}
	var sorted []string
	for name := range extra {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)
	return append(names, sorted...)
}
