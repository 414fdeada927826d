package terrain

import (
	"github.com/Faultbox/terraflood/internal/grid"
	"github.com/Faultbox/terraflood/pkg/math"
)

// DefaultHeightScale converts source height units to world Y.
const DefaultHeightScale = 0.00003

// Frame maps grid space to world space. The longer grid side spans one world
// unit centred on the origin, the shorter side proportionally less, and
// heights are multiplied by HeightScale. Normalized coordinates u (columns,
// world X) and v (rows, world Z) run from 0 to 1 across the grid.
type Frame struct {
	Rows        int
	Cols        int
	ScaleX      float32
	ScaleZ      float32
	HeightScale float32
}

// NewFrame returns the frame for a rows x cols grid.
func NewFrame(rows, cols int, heightScale float64) Frame {
	longest := float32(max(rows, cols))
	return Frame{
		Rows:        rows,
		Cols:        cols,
		ScaleX:      float32(cols) / longest,
		ScaleZ:      float32(rows) / longest,
		HeightScale: float32(heightScale),
	}
}

// FrameFor returns the frame for g.
func FrameFor(g *grid.Grid, heightScale float64) Frame {
	return NewFrame(g.Rows, g.Cols, heightScale)
}

// World maps normalized (u, v) and a source height to a world position.
func (f Frame) World(u, v, h float64) math.Vec3 {
	return math.Vec3{
		X: (float32(u) - 0.5) * f.ScaleX,
		Y: float32(h) * f.HeightScale,
		Z: (float32(v) - 0.5) * f.ScaleZ,
	}
}

// Cell maps a grid cell and a source height to a world position.
func (f Frame) Cell(row, col int, h float64) math.Vec3 {
	return f.World(unit(col, f.Cols), unit(row, f.Rows), h)
}

// WorldToNormalized inverts World on the ground plane.
func (f Frame) WorldToNormalized(p math.Vec3) (u, v float64) {
	if f.ScaleX != 0 {
		u = float64(p.X/f.ScaleX + 0.5)
	}
	if f.ScaleZ != 0 {
		v = float64(p.Z/f.ScaleZ + 0.5)
	}
	return u, v
}

// WorldY returns the world Y of a source height.
func (f Frame) WorldY(h float64) float32 {
	return float32(h) * f.HeightScale
}

// unit maps index i of n evenly spaced samples onto [0, 1].
func unit(i, n int) float64 {
	if n <= 1 {
		return 0.5
	}
	return float64(i) / float64(n-1)
}
