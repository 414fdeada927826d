// Package formats provides parsers for digital elevation model file formats.
//
// Every parser produces a Raster: a single band of float64 samples in
// row-major order with NaN marking cells that carry no data.
package formats

import "math"

// Raster is one decoded elevation band.
type Raster struct {
	Width  int
	Height int
	Values []float64 // Width*Height samples, row-major, NaN = no data
}

// At returns the sample at column x, row y.
// Returns NaN if coordinates are out of bounds.
func (r *Raster) At(x, y int) float64 {
	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return math.NaN()
	}
	return r.Values[y*r.Width+x]
}

// NoDataCount returns how many samples are NaN.
func (r *Raster) NoDataCount() int {
	n := 0
	for _, v := range r.Values {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}
