// Package grid provides the elevation grid, regions and boolean masks shared
// by the terrain and flood engines.
package grid

import (
	"errors"
	"fmt"
	"math"
)

// Grid errors.
var (
	ErrEmptyRegion = errors.New("region is empty after clipping to grid")
	ErrShape       = errors.New("data length does not match grid shape")
)

// Grid is a rows x cols elevation raster in one contiguous row-major buffer.
// NaN marks cells without data.
type Grid struct {
	Rows int
	Cols int
	Data []float64
}

// New creates a zero-filled grid. Panics if either dimension is below 1.
func New(rows, cols int) *Grid {
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("grid: invalid dimensions %dx%d", rows, cols))
	}
	return &Grid{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// FromSlice wraps data as a rows x cols grid without copying.
func FromSlice(rows, cols int, data []float64) (*Grid, error) {
	if rows < 1 || cols < 1 || len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %dx%d with %d values", ErrShape, rows, cols, len(data))
	}
	return &Grid{Rows: rows, Cols: cols, Data: data}, nil
}

// FromRows copies a slice of equally sized rows into a new grid.
func FromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrShape)
	}
	g := New(len(rows), len(rows[0]))
	for r, row := range rows {
		if len(row) != g.Cols {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrShape, r, len(row), g.Cols)
		}
		copy(g.Data[r*g.Cols:], row)
	}
	return g, nil
}

// Index returns the offset of (row, col) in Data.
func (g *Grid) Index(row, col int) int {
	return row*g.Cols + col
}

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < g.Rows && col < g.Cols
}

// At returns the height at (row, col).
// Returns NaN if coordinates are out of bounds.
func (g *Grid) At(row, col int) float64 {
	if !g.InBounds(row, col) {
		return math.NaN()
	}
	return g.Data[row*g.Cols+col]
}

// Set stores v at (row, col). Out-of-bounds writes are ignored.
func (g *Grid) Set(row, col int, v float64) {
	if g.InBounds(row, col) {
		g.Data[row*g.Cols+col] = v
	}
}

// ClampRow clamps row into [0, Rows-1].
func (g *Grid) ClampRow(row int) int {
	return clampInt(row, 0, g.Rows-1)
}

// ClampCol clamps col into [0, Cols-1].
func (g *Grid) ClampCol(col int) int {
	return clampInt(col, 0, g.Cols-1)
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	data := make([]float64, len(g.Data))
	copy(data, g.Data)
	return &Grid{Rows: g.Rows, Cols: g.Cols, Data: data}
}

// Crop returns a copy of the cells covered by region after clipping it to
// the grid.
func (g *Grid) Crop(region Region) (*Grid, error) {
	clipped := region.Clip(g.Rows, g.Cols)
	if clipped.Empty() {
		return nil, fmt.Errorf("%w: %v on %dx%d grid", ErrEmptyRegion, region, g.Rows, g.Cols)
	}

	out := New(clipped.Height, clipped.Width)
	for r := 0; r < clipped.Height; r++ {
		src := g.Index(clipped.Y+r, clipped.X)
		copy(out.Data[r*out.Cols:(r+1)*out.Cols], g.Data[src:src+clipped.Width])
	}
	return out, nil
}

// Region is a pixel window: X and Width run along columns, Y and Height
// along rows.
type Region struct {
	X, Y          int
	Width, Height int
}

// String returns the region as "x,y,w,h".
func (r Region) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", r.X, r.Y, r.Width, r.Height)
}

// Empty reports whether the region covers no cells.
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Clip intersects the region with a rows x cols grid.
func (r Region) Clip(rows, cols int) Region {
	x0 := clampInt(r.X, 0, cols)
	y0 := clampInt(r.Y, 0, rows)
	x1 := clampInt(r.X+r.Width, 0, cols)
	y1 := clampInt(r.Y+r.Height, 0, rows)
	return Region{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
