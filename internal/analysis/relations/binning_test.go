package relations

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jengzang/movetank-go/internal/models"
	"github.com/jengzang/movetank-go/internal/spatial"
)

const width = 0.2

func sample(angle, value float64) models.ArcSample {
	return models.ArcSample{
		Node:      "A",
		Angle:     angle,
		Value:     value,
		Positions: []spatial.Point{{X: angle, Y: value}},
	}
}

func TestBinCount(t *testing.T) {
	if got := BinCount(width); got != 32 {
		t.Errorf("expected 32 bins, got %d", got)
	}
	if got := BinCount(0); got != 0 {
		t.Errorf("expected 0 bins for zero width, got %d", got)
	}
	if Bin([]models.ArcSample{sample(0, 1)}, -1) != nil {
		t.Error("expected nil for a negative width")
	}
}

func TestBinAggregatesBucket(t *testing.T) {
	samples := []models.ArcSample{
		sample(0.0, 1),
		sample(1.0, 4),
		sample(0.01, 3),
		sample(0.02, 8),
	}

	binned := Bin(samples, width)
	if len(binned) != 2 {
		t.Fatalf("expected 2 buckets, got %d: %+v", len(binned), binned)
	}

	first := binned[0]
	if first.Value != 3 {
		t.Errorf("expected median 3, got %v", first.Value)
	}
	if want := BinLo + 7.5*width; math.Abs(first.Angle-want) > 1e-9 {
		t.Errorf("expected midpoint %v, got %v", want, first.Angle)
	}
	if len(first.Positions) != 3 {
		t.Errorf("expected 3 contributing positions, got %d", len(first.Positions))
	}

	second := binned[1]
	if second.Value != 4 {
		t.Errorf("expected value 4, got %v", second.Value)
	}
	if want := BinLo + 12.5*width; math.Abs(second.Angle-want) > 1e-9 {
		t.Errorf("expected midpoint %v, got %v", want, second.Angle)
	}
}

func TestBinClosedTopBucket(t *testing.T) {
	binned := Bin([]models.ArcSample{sample(BinHi, 2), sample(5, 1)}, width)
	if len(binned) != 1 {
		t.Fatalf("expected only the in-domain sample to be kept, got %d", len(binned))
	}

	lo, hi := Bucket(BinCount(width)-1, width)
	if hi != BinHi {
		t.Errorf("expected last bucket to be clipped to %v, got %v", BinHi, hi)
	}
	if want := lo + (hi-lo)/2; math.Abs(binned[0].Angle-want) > 1e-9 {
		t.Errorf("expected clipped midpoint %v, got %v", want, binned[0].Angle)
	}
}

func TestBinIsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var samples []models.ArcSample
	for i := 0; i < 300; i++ {
		angle := BinLo + rng.Float64()*(BinHi-BinLo)
		samples = append(samples, sample(angle, rng.Float64()*10))
	}

	once := Bin(samples, width)
	twice := Bin(once, width)

	if len(once) != len(twice) {
		t.Fatalf("expected %d buckets after rebinning, got %d", len(once), len(twice))
	}
	for i := range once {
		if math.Abs(once[i].Angle-twice[i].Angle) > 1e-12 {
			t.Errorf("bucket %d: angle changed from %v to %v", i, once[i].Angle, twice[i].Angle)
		}
		if once[i].Value != twice[i].Value {
			t.Errorf("bucket %d: value changed from %v to %v", i, once[i].Value, twice[i].Value)
		}
		if len(once[i].Positions) != len(twice[i].Positions) {
			t.Errorf("bucket %d: positions changed", i)
		}
	}
}

func TestBinBoundsPrimitiveCount(t *testing.T) {
	var samples []models.ArcSample
	for i := 0; i < 1000; i++ {
		angle := BinLo + float64(i)/1000*(BinHi-BinLo)
		samples = append(samples, sample(angle, 1))
	}
	for _, w := range []float64{0.1, 0.2, 0.5, 1} {
		if got := len(Bin(samples, w)); got > BinCount(w) {
			t.Errorf("width %v: expected at most %d buckets, got %d", w, BinCount(w), got)
		}
	}
}

func TestBinAllGroupsByOwner(t *testing.T) {
	samples := []models.ArcSample{
		sample(0, 1),
		{Node: "B", Group: "c-1", Angle: 0, Value: 2},
		{Node: "C", Group: "c-1", Angle: 0.01, Value: 4},
	}

	grouped := BinAll(samples, width)
	if len(grouped) != 2 {
		t.Fatalf("expected 2 owners, got %d", len(grouped))
	}
	if arcs := grouped["c-1"]; len(arcs) != 1 || arcs[0].Value != 3 {
		t.Errorf("expected one cluster arc with median 3, got %+v", arcs)
	}
	if arcs := grouped["A"]; len(arcs) != 1 {
		t.Errorf("expected one arc for A, got %+v", arcs)
	}
}
