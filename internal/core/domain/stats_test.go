package domain

import (
	"math"
	"testing"
)

func TestStats(t *testing.T) {
	values := []float64{4, 1, 3, 2}

	if got := Mean(values); got != 2.5 {
		t.Errorf("Mean: want 2.5, got %v", got)
	}
	if got := Max(values); got != 4 {
		t.Errorf("Max: want 4, got %v", got)
	}
	wantStd := math.Sqrt(1.25)
	if got := StdDev(values); math.Abs(got-wantStd) > 1e-9 {
		t.Errorf("StdDev: want %v, got %v", wantStd, got)
	}

	if Mean(nil) != 0 || Max(nil) != 0 || StdDev(nil) != 0 {
		t.Error("empty input should yield zeros")
	}
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		p      float64
		want   float64
	}{
		{"empty", nil, 80, 0},
		{"single value", []float64{7}, 80, 7},
		{"min", []float64{1, 2, 3}, 0, 1},
		{"max", []float64{1, 2, 3}, 100, 3},
		{"median", []float64{1, 2, 3, 4}, 50, 2.5},
		{"p80 interpolated", []float64{1, 2, 3, 4, 5, 6}, 80, 5},
		{"unsorted input", []float64{3, 1, 2}, 50, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Percentile(tc.values, tc.p); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("want %v, got %v", tc.want, got)
			}
		})
	}
}
