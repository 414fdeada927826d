package terrain

import (
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/terraflood/internal/grid"
	"github.com/Faultbox/terraflood/internal/logger"
)

// DefaultMinSide is the fewest rows or columns decimation keeps.
const DefaultMinSide = 50

// MeshOptions controls terrain mesh generation.
type MeshOptions struct {
	MinSide        int
	HeightScale    float64
	Scheme         ColorScheme
	Isolines       bool
	IsolineSpacing float64
}

// DefaultMeshOptions returns the standard mesh settings without colours.
func DefaultMeshOptions() MeshOptions {
	return MeshOptions{
		MinSide:        DefaultMinSide,
		HeightScale:    DefaultHeightScale,
		Scheme:         ColorNone,
		IsolineSpacing: 100,
	}
}

// DecimationFactor returns the row/column stride for a detail level: 1 at
// detail 100 up to 4 at detail 1.
func DecimationFactor(detail int) int {
	return 1 + (MaxDetail-ClampDetail(detail))/25
}

// BuildMesh builds a triangle-strip mesh from g.
//
// Rows and columns are decimated by DecimationFactor but never below
// MinSide (or the grid size when smaller). Samples are spread evenly so the
// grid edges are always kept. Each pair of sampled rows forms one strip;
// consecutive strips are joined by two degenerate indices, giving
// 2*C*(R-1) + 2*(R-2) indices for R x C samples.
func BuildMesh(g *grid.Grid, detail int, opts MeshOptions) (*Mesh, error) {
	if g == nil {
		return nil, ErrNoTerrain
	}
	if opts.MinSide <= 0 {
		opts.MinSide = DefaultMinSide
	}
	if opts.HeightScale <= 0 {
		opts.HeightScale = DefaultHeightScale
	}

	factor := DecimationFactor(detail)
	rowPicks := evenPicks(g.Rows, sampledCount(g.Rows, factor, opts.MinSide))
	colPicks := evenPicks(g.Cols, sampledCount(g.Cols, factor, opts.MinSide))
	R, C := len(rowPicks), len(colPicks)

	frame := FrameFor(g, opts.HeightScale)
	mesh := &Mesh{
		Positions: make([]float32, 0, R*C*3),
		Indices:   make([]uint32, 0, StripIndexCount(R, C)),
		Topology:  TriangleStrip,
		Bounds:    emptyBounds(),
		Rows:      R,
		Cols:      C,
	}

	var colorize *Colorizer
	if opts.Scheme != ColorNone {
		s := g.Stats()
		colorize = &Colorizer{
			Scheme:         opts.Scheme,
			Min:            s.Min,
			Max:            s.Max,
			Isolines:       opts.Isolines,
			IsolineSpacing: opts.IsolineSpacing,
		}
		mesh.Colors = make([]float32, 0, R*C*3)
	}

	for i, r := range rowPicks {
		for j, c := range colPicks {
			h := g.Data[r*g.Cols+c]
			if math.IsNaN(h) {
				h = 0
			}
			p := frame.World(unit(j, C), unit(i, R), h)
			mesh.Positions = append(mesh.Positions, p.X, p.Y, p.Z)
			mesh.Bounds.extend(p.X, p.Y, p.Z)
			if colorize != nil {
				rgb := colorize.Color(h)
				mesh.Colors = append(mesh.Colors, rgb[0], rgb[1], rgb[2])
			}
		}
	}

	mesh.Indices = appendStripIndices(mesh.Indices, R, C)

	logger.Debug("terrain mesh built",
		zap.Int("detail", detail),
		zap.Int("factor", factor),
		zap.Int("rows", R),
		zap.Int("cols", C),
		zap.Int("indices", len(mesh.Indices)))

	return mesh, nil
}

// StripIndexCount returns the number of strip indices for R x C samples.
func StripIndexCount(R, C int) int {
	if R < 2 {
		return 0
	}
	return 2*C*(R-1) + 2*(R-2)
}

func appendStripIndices(idx []uint32, R, C int) []uint32 {
	for i := 0; i < R-1; i++ {
		for j := 0; j < C; j++ {
			idx = append(idx, uint32(i*C+j), uint32((i+1)*C+j))
		}
		// Degenerate join to the start of the next strip.
		if i < R-2 {
			idx = append(idx, uint32((i+1)*C+C-1), uint32((i+1)*C))
		}
	}
	return idx
}

// sampledCount returns how many of n rows or columns a mesh keeps.
func sampledCount(n, factor, minSide int) int {
	return max(min(n, minSide), n/factor)
}

// evenPicks returns m indices spread evenly over [0, n-1].
func evenPicks(n, m int) []int {
	if m <= 1 {
		return []int{0}
	}
	picks := make([]int, m)
	for k := range picks {
		picks[k] = int(math.Round(float64(k) * float64(n-1) / float64(m-1)))
	}
	return picks
}
