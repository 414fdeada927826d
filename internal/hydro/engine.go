package hydro

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/terraflood/internal/grid"
	"github.com/Faultbox/terraflood/internal/logger"
	"github.com/Faultbox/terraflood/internal/terrain"
	"github.com/Faultbox/terraflood/internal/water"
)

// Engine holds at most one dam. Creating a dam replaces the previous one.
// An Engine is not safe for concurrent use.
type Engine struct {
	opts    Options
	current *Dam
}

// NewEngine creates an engine with the given options. Stations below 2 and
// zero CrestFactor, WaterFactor or HeightScale fall back to DefaultOptions.
// A negative Thickness falls back too; a zero Thickness samples the
// centerline only.
func NewEngine(opts Options) *Engine {
	def := DefaultOptions()
	if opts.Stations < 2 {
		opts.Stations = def.Stations
	}
	if opts.CrestFactor == 0 {
		opts.CrestFactor = def.CrestFactor
	}
	if opts.WaterFactor == 0 {
		opts.WaterFactor = def.WaterFactor
	}
	if opts.HeightScale <= 0 {
		opts.HeightScale = def.HeightScale
	}
	if opts.Thickness < 0 {
		opts.Thickness = def.Thickness
	}
	return &Engine{opts: opts}
}

// Options returns the engine options.
func (e *Engine) Options() Options {
	return e.opts
}

// CreateDam places a dam on g and floods the indicated side.
//
// The flood covers cells strictly below the water height that lie strictly
// on the indicator's side of the dam line, are not under the dam, and are
// 4-connected to the indicator cell. An indicator outside that region
// yields an empty flood, not an error.
//
// On error the current dam is left unchanged.
func (e *Engine) CreateDam(g *grid.Grid, spec DamSpec) (*Dam, error) {
	if g == nil {
		return nil, ErrNoTerrain
	}
	if spec.Start == spec.End {
		return nil, fmt.Errorf("%w: %s", ErrDegenerateDam, spec.Start)
	}

	rows, cols := g.Rows, g.Cols
	a := spec.Start.Cell(rows, cols)
	b := spec.End.Cell(rows, cols)
	ind := spec.Indicator.Cell(rows, cols)

	indSide := sideOf(a, b, ind.Row, ind.Col)
	if a != b && indSide == 0 {
		return nil, fmt.Errorf("%w: indicator %s", ErrIndicatorOnDam, spec.Indicator)
	}

	damMask := DamMask(rows, cols, a, b)
	base, top := sampleBand(g, spec, e.opts)
	crest := e.crestHeight(top)
	level := e.waterHeight(crest)

	candidate := grid.NewMask(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := r*cols + c
			// NaN heights compare false and stay dry.
			if damMask.Bits[i] || !(g.Data[i] < level) {
				continue
			}
			candidate.Bits[i] = sideOf(a, b, r, c)*indSide > 0
		}
	}

	flood := FloodFill(candidate, ind)
	frame := terrain.FrameFor(g, e.opts.HeightScale)
	flooded := flood.Count()

	dam := &Dam{
		Spec:       spec,
		Start:      a,
		End:        b,
		Indicator:  ind,
		BaseHeight: base,
		Mesh:       BuildDamMesh(frame, spec, base, crest, e.opts.Thickness),
		Flood: FloodResult{
			Mask:            flood,
			DamMask:         damMask,
			CrestHeight:     crest,
			WaterHeight:     level,
			FloodedCells:    flooded,
			FloodedFraction: flood.Fraction(),
			WaterMesh:       water.BuildSurface(flood, frame, level),
		},
	}
	e.current = dam

	logger.Debug("dam created",
		zap.Stringer("start", spec.Start),
		zap.Stringer("end", spec.End),
		zap.Stringer("indicator", spec.Indicator),
		zap.Int("dam_cells", damMask.Count()),
		zap.Float64("crest", crest),
		zap.Float64("water", level),
		zap.Int("flooded", flooded),
		zap.Int("water_triangles", water.TriangleCount(dam.Flood.WaterMesh)))

	return dam, nil
}

// Clear removes the current dam.
func (e *Engine) Clear() {
	e.current = nil
}

// Current returns the current dam, or nil.
func (e *Engine) Current() *Dam {
	return e.current
}

// Stats returns the current dam summary, or nil when there is no dam.
func (e *Engine) Stats() *DamStats {
	if e.current == nil {
		return nil
	}
	return e.current.Stats()
}

// crestHeight raises the crest above top by (CrestFactor-1) of its
// magnitude, so terrain below zero still gets a crest above its highest
// sample.
func (e *Engine) crestHeight(top float64) float64 {
	return top + (e.opts.CrestFactor-1)*math.Abs(top)
}

// waterHeight keeps the water (1-WaterFactor) of the crest's magnitude
// below the crest.
func (e *Engine) waterHeight(crest float64) float64 {
	return crest - (1-e.opts.WaterFactor)*math.Abs(crest)
}
