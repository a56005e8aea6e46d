package relations

import (
	"math"
	"sort"

	"github.com/jengzang/movetank-go/internal/models"
	"github.com/jengzang/movetank-go/internal/stats"
)

// Angular domain of the bins, matching the range of spatial.Bearing
const (
	BinLo = -math.Pi / 2
	BinHi = 1.5 * math.Pi
)

// BinCount returns the number of buckets of the given width
func BinCount(width float64) int {
	if width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return 0
	}
	return int(math.Ceil((BinHi - BinLo) / width))
}

// Bucket returns the [lo, hi] bounds of bucket k
// The last bucket is clipped to BinHi
func Bucket(k int, width float64) (float64, float64) {
	lo := BinLo + float64(k)*width
	hi := math.Min(BinLo+float64(k+1)*width, BinHi)
	return lo, hi
}

// bucketOf returns the bucket index of an angle, or -1 outside the domain
// The top bucket is closed so BinHi itself is kept
func bucketOf(angle, width float64, n int) int {
	if math.IsNaN(angle) || angle < BinLo || angle > BinHi {
		return -1
	}
	k := int(math.Floor((angle - BinLo) / width))
	if k >= n {
		k = n - 1
	}
	return k
}

// Bin collapses samples of one owner into fixed-width angular buckets
// Every non-empty bucket yields one sample at the bucket midpoint with the
// median value and all contributing positions; output is ordered by angle
func Bin(samples []models.ArcSample, width float64) []models.ArcSample {
	n := BinCount(width)
	if n == 0 || len(samples) == 0 {
		return nil
	}

	buckets := make(map[int][]int)
	for i := range samples {
		k := bucketOf(samples[i].Angle, width, n)
		if k < 0 {
			continue
		}
		buckets[k] = append(buckets[k], i)
	}

	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	binned := make([]models.ArcSample, 0, len(keys))
	for _, k := range keys {
		members := buckets[k]
		first := samples[members[0]]

		values := make([]float64, 0, len(members))
		agg := models.ArcSample{
			Node:    first.Node,
			Group:   first.Group,
			Members: first.Members,
		}
		for _, i := range members {
			values = append(values, samples[i].Value)
			agg.Positions = append(agg.Positions, samples[i].Positions...)
		}

		lo, hi := Bucket(k, width)
		agg.Angle = lo + (hi-lo)/2
		agg.Value = stats.Median(values)
		binned = append(binned, agg)
	}
	return binned
}

// Group splits samples by owner (cluster id, or animal id outside clusters)
func Group(samples []models.ArcSample) map[string][]models.ArcSample {
	grouped := make(map[string][]models.ArcSample)
	for _, s := range samples {
		owner := s.Owner()
		grouped[owner] = append(grouped[owner], s)
	}
	return grouped
}

// BinAll groups samples by owner and bins every group
func BinAll(samples []models.ArcSample, width float64) map[string][]models.ArcSample {
	grouped := Group(samples)
	for owner, group := range grouped {
		grouped[owner] = Bin(group, width)
	}
	return grouped
}
