package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/terraflood/internal/grid"
)

func TestResampledShape(t *testing.T) {
	tests := []struct {
		name               string
		rows, cols, detail int
		wantRows, wantCols int
	}{
		{"full detail", 200, 100, 100, 200, 100},
		{"half", 200, 100, 50, 100, 50},
		{"wide", 100, 200, 50, 50, 100},
		{"square quarter", 400, 400, 25, 100, 100},
		{"floor at ten", 1000, 20, 1, 500, 10},
		{"small grid kept", 12, 12, 10, 10, 10},
		{"too small to shrink", 9, 40, 10, 9, 40},
		{"min side reached", 10, 10, 1, 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, c := ResampledShape(tc.rows, tc.cols, tc.detail)
			assert.Equal(t, tc.wantRows, r)
			assert.Equal(t, tc.wantCols, c)
		})
	}
}

func TestResample_PreservesAspect(t *testing.T) {
	g := filledGrid(300, 150, func(r, c int) float64 { return 0 })

	out := Resample(g, 20)
	require.Equal(t, 60, out.Rows)
	require.Equal(t, 30, out.Cols)
	assert.InDelta(t, float64(g.Rows)/float64(g.Cols), float64(out.Rows)/float64(out.Cols), 1e-9)
}

func TestResample_FullDetailReturnsInput(t *testing.T) {
	g := grid.New(20, 20)
	assert.Same(t, g, Resample(g, 100))
}

func TestResample_CornersAndRamp(t *testing.T) {
	g := filledGrid(101, 41, func(r, c int) float64 { return float64(10*r + c) })

	out := Resample(g, 50)
	require.Equal(t, 50, out.Rows)
	require.Equal(t, 20, out.Cols)

	// Corner samples coincide with the input corners.
	assert.InDelta(t, g.At(0, 0), out.At(0, 0), 1e-9)
	assert.InDelta(t, g.At(100, 40), out.At(49, 19), 1e-9)

	// A linear surface is reproduced exactly by bilinear sampling.
	for i := 0; i < out.Rows; i++ {
		for j := 0; j < out.Cols; j++ {
			y := float64(i) * 100 / 49
			x := float64(j) * 40 / 19
			assert.InDelta(t, 10*y+x, out.At(i, j), 1e-9)
		}
	}
}

func TestSampleBilinear(t *testing.T) {
	g, err := grid.FromRows([][]float64{{0, 10}, {20, 30}})
	require.NoError(t, err)

	assert.InDelta(t, 15.0, SampleBilinear(g, 0.5, 0.5), 1e-12)
	assert.InDelta(t, 5.0, SampleBilinear(g, 0, 0.5), 1e-12)
	assert.InDelta(t, 30.0, SampleBilinear(g, 3, 3), 1e-12, "out-of-range samples clamp to the edge")
}
