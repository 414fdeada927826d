package terrain

import (
	"math"

	"github.com/Faultbox/terraflood/internal/grid"
)

// Smooth blends g with a Gaussian-blurred copy of itself:
// blend*g + (1-blend)*blur(g). Sigma is min(rows, cols)/200, at least 1,
// and the kernel is truncated at four sigma with mirrored edges.
func Smooth(g *grid.Grid, blend float64) *grid.Grid {
	sigma := math.Max(1, float64(min(g.Rows, g.Cols))/200)
	kernel := gaussianKernel(sigma)

	tmp := make([]float64, len(g.Data))
	blurred := make([]float64, len(g.Data))

	// Horizontal pass
	for r := 0; r < g.Rows; r++ {
		row := g.Data[r*g.Cols : (r+1)*g.Cols]
		for c := 0; c < g.Cols; c++ {
			tmp[r*g.Cols+c] = convolveAt(kernel, g.Cols, c, func(i int) float64 { return row[i] })
		}
	}

	// Vertical pass
	for c := 0; c < g.Cols; c++ {
		for r := 0; r < g.Rows; r++ {
			blurred[r*g.Cols+c] = convolveAt(kernel, g.Rows, r, func(i int) float64 { return tmp[i*g.Cols+c] })
		}
	}

	out := grid.New(g.Rows, g.Cols)
	for i, v := range g.Data {
		out.Data[i] = blend*v + (1-blend)*blurred[i]
	}
	return out
}

// gaussianKernel returns normalized weights for offsets -radius..radius.
func gaussianKernel(sigma float64) []float64 {
	radius := int(4*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)
	var sum float64
	for i := range kernel {
		x := float64(i - radius)
		kernel[i] = math.Exp(-x * x / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

func convolveAt(kernel []float64, n, center int, sample func(int) float64) float64 {
	radius := len(kernel) / 2
	var acc float64
	for k, w := range kernel {
		acc += w * sample(reflectIndex(center+k-radius, n))
	}
	return acc
}

// reflectIndex mirrors i into [0, n) about the outer cell edges
// (d c b a | a b c d | d c b a).
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}
