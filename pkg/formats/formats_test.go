package formats

import (
	"math"
	"testing"
)

func TestRaster_At(t *testing.T) {
	r := &Raster{Width: 3, Height: 2, Values: []float64{1, 2, 3, 4, 5, 6}}

	if got := r.At(2, 1); got != 6 {
		t.Errorf("At(2, 1) = %f, expected 6", got)
	}
	if got := r.At(0, 1); got != 4 {
		t.Errorf("At(0, 1) = %f, expected 4", got)
	}

	for _, p := range [][2]int{{-1, 0}, {3, 0}, {0, 2}, {0, -1}} {
		if got := r.At(p[0], p[1]); !math.IsNaN(got) {
			t.Errorf("At(%d, %d) = %f, expected NaN", p[0], p[1], got)
		}
	}
}

func TestRaster_NoDataCount(t *testing.T) {
	r := &Raster{Width: 2, Height: 2, Values: []float64{1, math.NaN(), math.NaN(), 4}}

	if got := r.NoDataCount(); got != 2 {
		t.Errorf("expected 2 no-data cells, got %d", got)
	}
}
