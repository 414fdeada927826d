package terrain

import (
	"math"

	"github.com/Faultbox/terraflood/internal/grid"
)

// minResampleSide is the smallest side a resampled grid may have.
const minResampleSide = 10

// Resample shrinks g for a detail level below 100 with bilinear
// interpolation. Both sides scale by the same factor, detail/100, raised
// when needed so the short side keeps at least 10 cells. If no reduction
// results, g itself is returned.
func Resample(g *grid.Grid, detail int) *grid.Grid {
	rows, cols := ResampledShape(g.Rows, g.Cols, detail)
	if rows == g.Rows && cols == g.Cols {
		return g
	}

	out := grid.New(rows, cols)

	// Column sample positions are shared by every output row.
	colPos := make([]float64, cols)
	for j := range colPos {
		colPos[j] = alignedCoord(j, cols, g.Cols)
	}

	for i := 0; i < rows; i++ {
		y := alignedCoord(i, rows, g.Rows)
		for j := 0; j < cols; j++ {
			out.Data[i*cols+j] = SampleBilinear(g, y, colPos[j])
		}
	}

	return out
}

// ResampledShape returns the grid shape Resample produces for detail.
func ResampledShape(rows, cols, detail int) (int, int) {
	detail = ClampDetail(detail)
	if detail >= MaxDetail {
		return rows, cols
	}

	shortSide, longSide := min(rows, cols), max(rows, cols)
	scale := math.Max(float64(detail)/100, float64(minResampleSide)/float64(shortSide))
	if scale >= 1 {
		return rows, cols
	}

	longT := max(minResampleSide, int(math.Floor(float64(longSide)*scale)))
	shortT := max(minResampleSide, int(math.Round(float64(longT)*float64(shortSide)/float64(longSide))))

	if rows >= cols {
		return longT, shortT
	}
	return shortT, longT
}

// alignedCoord maps output index i of n onto [0, in-1] so that the first
// and last samples coincide with the input corners.
func alignedCoord(i, n, in int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) * float64(in-1) / float64(n-1)
}

// SampleBilinear returns the height at fractional (row, col), clamped to the
// grid.
func SampleBilinear(g *grid.Grid, row, col float64) float64 {
	row = clampf(row, 0, float64(g.Rows-1))
	col = clampf(col, 0, float64(g.Cols-1))

	r0 := int(row)
	c0 := int(col)
	r1 := min(r0+1, g.Rows-1)
	c1 := min(c0+1, g.Cols-1)
	fr := row - float64(r0)
	fc := col - float64(c0)

	// Lerp along each row edge, then between them.
	top := g.Data[r0*g.Cols+c0]*(1-fc) + g.Data[r0*g.Cols+c1]*fc
	bottom := g.Data[r1*g.Cols+c0]*(1-fc) + g.Data[r1*g.Cols+c1]*fc
	return top*(1-fr) + bottom*fr
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
