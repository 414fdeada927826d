package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the valid cells of a grid.
type Stats struct {
	Rows   int
	Cols   int
	Valid  int
	NoData int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64 // population standard deviation
}

// String returns a one-line summary.
func (s Stats) String() string {
	return fmt.Sprintf("%dx%d valid=%d nodata=%d min=%.2f max=%.2f mean=%.2f std=%.2f",
		s.Rows, s.Cols, s.Valid, s.NoData, s.Min, s.Max, s.Mean, s.StdDev)
}

// Stats computes elevation statistics over the cells that are not NaN.
func (g *Grid) Stats() Stats {
	valid := g.ValidValues()
	s := Stats{
		Rows:   g.Rows,
		Cols:   g.Cols,
		Valid:  len(valid),
		NoData: len(g.Data) - len(valid),
	}
	if len(valid) == 0 {
		return s
	}

	s.Min = floats.Min(valid)
	s.Max = floats.Max(valid)
	s.Mean, s.StdDev = PopulationMeanStd(valid)
	return s
}

// ValidValues returns a copy of all non-NaN samples.
func (g *Grid) ValidValues() []float64 {
	out := make([]float64, 0, len(g.Data))
	for _, v := range g.Data {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// PopulationMeanStd returns the mean and population standard deviation of xs.
// Both are zero for an empty slice.
func PopulationMeanStd(xs []float64) (mean, std float64) {
	n := len(xs)
	if n == 0 {
		return 0, 0
	}
	if n == 1 {
		return xs[0], 0
	}
	mean, std = stat.MeanStdDev(xs, nil)
	// stat.MeanStdDev returns the unbiased sample estimate.
	std *= math.Sqrt(float64(n-1) / float64(n))
	return mean, std
}
