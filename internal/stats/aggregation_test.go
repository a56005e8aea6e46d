package stats

import (
	"math"
	"testing"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"odd", []float64{5, 1, 3}, 3},
		{"even", []float64{4, 1, 3, 2}, 2.5},
		{"ties", []float64{7, 7, 1}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Median(tt.values); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMedianDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Median(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input was modified: %v", values)
	}
}

func TestMean(t *testing.T) {
	if got := Mean([]float64{0, 2, 1}); got != 1 {
		t.Errorf("expected 1, got %v", got)
	}
	if got := Mean(nil); got != 0 {
		t.Errorf("expected 0 for empty input, got %v", got)
	}
}

func TestExtentSkipsNaN(t *testing.T) {
	ext := Extent([]float64{3, math.NaN(), -2, 8})
	if ext.Lo != -2 || ext.Hi != 8 {
		t.Errorf("expected [-2, 8], got %v", ext)
	}
	if !Extent(nil).IsEmpty() {
		t.Error("expected empty extent")
	}
}

func TestSteps(t *testing.T) {
	got := Steps(0, 9, 1)
	if len(got) != 9 {
		t.Fatalf("expected 9 steps, got %d", len(got))
	}
	if got[0] != 0 || got[8] != 8 {
		t.Errorf("unexpected steps %v", got)
	}

	if Steps(1, 1, 0) != nil {
		t.Error("expected no steps for a zero step")
	}
	if Steps(5, 1, 1) != nil {
		t.Error("expected no steps for an inverted range")
	}
}
