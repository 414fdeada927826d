package hydro

import (
	"math"

	"github.com/Faultbox/terraflood/internal/grid"
)

// sampleBand samples g at opts.Stations points along the dam centerline,
// each at offsets -Thickness, 0 and +Thickness along the perpendicular.
// It returns the lowest and highest sampled heights. NaN samples are
// skipped; if every sample is NaN both results are 0.
func sampleBand(g *grid.Grid, spec DamSpec, opts Options) (lo, hi float64) {
	dx := spec.End.X - spec.Start.X
	dy := spec.End.Y - spec.Start.Y
	length := math.Hypot(dx, dy)
	var px, py float64
	if length > 0 {
		px, py = -dy/length, dx/length
	}

	stations := max(opts.Stations, 2)
	lo, hi = math.Inf(1), math.Inf(-1)
	for i := 0; i < stations; i++ {
		t := float64(i) / float64(stations-1)
		cx := spec.Start.X + dx*t
		cy := spec.Start.Y + dy*t
		for j := -1; j <= 1; j++ {
			off := float64(j) * opts.Thickness
			h := sampleAt(g, cx+px*off, cy+py*off)
			if math.IsNaN(h) {
				continue
			}
			lo = math.Min(lo, h)
			hi = math.Max(hi, h)
		}
	}

	if math.IsInf(lo, 1) {
		return 0, 0
	}
	return lo, hi
}

// sampleAt returns the height of the cell nearest below normalized (x, y),
// indexing with dim-1 so both 0 and 1 land on edge cells.
func sampleAt(g *grid.Grid, x, y float64) float64 {
	col := g.ClampCol(int(x * float64(g.Cols-1)))
	row := g.ClampRow(int(y * float64(g.Rows-1)))
	return g.Data[row*g.Cols+col]
}
