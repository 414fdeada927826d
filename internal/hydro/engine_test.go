package hydro

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/terraflood/internal/grid"
	"github.com/Faultbox/terraflood/internal/terrain"
)

// blockGrid is a flat 10x10 plane with a central 3x3 block at height 100.
func blockGrid() *grid.Grid {
	g := grid.New(10, 10)
	for r := 3; r <= 5; r++ {
		for c := 3; c <= 5; c++ {
			g.Set(r, c, 100)
		}
	}
	return g
}

func wavyGrid(rows, cols int) *grid.Grid {
	g := grid.New(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.Set(r, c, 50+40*math.Sin(float64(r)/3)*math.Cos(float64(c)/4))
		}
	}
	return g
}

func mustSpec(t *testing.T, start, end, ind Point) DamSpec {
	t.Helper()
	spec, err := NewDamSpec(start, end, ind)
	require.NoError(t, err)
	return spec
}

func TestCreateDam_BlockScenario(t *testing.T) {
	e := NewEngine(DefaultOptions())
	spec := mustSpec(t, Point{0.45, 0}, Point{0.45, 1}, Point{0.1, 0.5})

	dam, err := e.CreateDam(blockGrid(), spec)
	require.NoError(t, err)

	assert.InDelta(t, 120.0, dam.Flood.CrestHeight, 1e-9)
	assert.InDelta(t, 114.0, dam.Flood.WaterHeight, 1e-9)
	assert.Equal(t, 0.0, dam.BaseHeight)
	assert.InDelta(t, 120.0, e.Stats().Height, 1e-9)

	// Every low-side cell (columns 0-3) is below 114, including the raised
	// block cells at column 3.
	flood := dam.Flood.Mask
	for r := 0; r < 10; r++ {
		for c := 0; c < 10; c++ {
			assert.Equal(t, c < 4, flood.Get(r, c), "cell (%d,%d)", r, c)
		}
	}
	assert.Equal(t, 40, dam.Flood.FloodedCells)
	assert.InDelta(t, 0.4, dam.Flood.FloodedFraction, 1e-12)

	// Dam occupies column 4 top to bottom.
	assert.Equal(t, 10, dam.Flood.DamMask.Count())
	for r := 0; r < 10; r++ {
		assert.True(t, dam.Flood.DamMask.Get(r, 4))
	}

	require.NotNil(t, dam.Flood.WaterMesh)
	assert.Equal(t, 40, dam.Flood.WaterMesh.VertexCount())
	assert.Len(t, dam.Flood.WaterMesh.Indices, 9*3*6)
}

func TestCreateDam_Invariants(t *testing.T) {
	g := wavyGrid(40, 60)
	e := NewEngine(DefaultOptions())
	spec := mustSpec(t, Point{0.1, 0.2}, Point{0.9, 0.7}, Point{0.3, 0.8})

	dam, err := e.CreateDam(g, spec)
	require.NoError(t, err)
	require.Greater(t, dam.Flood.FloodedCells, 0)

	indSide := sideOf(dam.Start, dam.End, dam.Indicator.Row, dam.Indicator.Col)
	m := dam.Flood.Mask
	for i, set := range m.Bits {
		if !set {
			continue
		}
		r, c := i/m.Cols, i%m.Cols
		assert.Less(t, g.At(r, c), dam.Flood.WaterHeight, "containment at (%d,%d)", r, c)
		assert.False(t, dam.Flood.DamMask.Get(r, c), "dam cell flooded at (%d,%d)", r, c)
		assert.Greater(t, sideOf(dam.Start, dam.End, r, c)*indSide, 0, "side at (%d,%d)", r, c)
	}
	assert.LessOrEqual(t, dam.Flood.WaterHeight, dam.Flood.CrestHeight)
}

func TestCreateDam_BelowSeaLevel(t *testing.T) {
	g := grid.New(10, 10)
	for i := range g.Data {
		g.Data[i] = -50
	}
	e := NewEngine(DefaultOptions())
	spec := mustSpec(t, Point{0.45, 0}, Point{0.45, 1}, Point{0.1, 0.5})

	dam, err := e.CreateDam(g, spec)
	require.NoError(t, err)

	assert.InDelta(t, -40.0, dam.Flood.CrestHeight, 1e-9)
	assert.InDelta(t, -42.0, dam.Flood.WaterHeight, 1e-9)
	assert.Greater(t, dam.Flood.CrestHeight, -50.0, "crest above the terrain")
	assert.LessOrEqual(t, dam.Flood.WaterHeight, dam.Flood.CrestHeight)
	assert.Equal(t, 40, dam.Flood.FloodedCells)
	assert.NotNil(t, dam.Flood.WaterMesh)
}

func TestNewEngine_Defaults(t *testing.T) {
	def := DefaultOptions()

	got := NewEngine(Options{}).Options()
	assert.Equal(t, def.Stations, got.Stations)
	assert.Equal(t, def.CrestFactor, got.CrestFactor)
	assert.Equal(t, def.WaterFactor, got.WaterFactor)
	assert.Equal(t, def.HeightScale, got.HeightScale)
	assert.Equal(t, 0.0, got.Thickness, "zero thickness samples the centerline")

	got = NewEngine(Options{Thickness: -1, Stations: 1}).Options()
	assert.Equal(t, def.Thickness, got.Thickness)
	assert.Equal(t, def.Stations, got.Stations)
}

func TestCreateDam_Idempotent(t *testing.T) {
	g := wavyGrid(30, 30)
	spec := mustSpec(t, Point{0.5, 0}, Point{0.5, 1}, Point{0.2, 0.4})

	first, err := NewEngine(DefaultOptions()).CreateDam(g, spec)
	require.NoError(t, err)
	second, err := NewEngine(DefaultOptions()).CreateDam(g, spec)
	require.NoError(t, err)

	assert.Equal(t, first.Flood.Mask.Bits, second.Flood.Mask.Bits)
	assert.Equal(t, first.Flood.CrestHeight, second.Flood.CrestHeight)
}

func TestCreateDam_NoTerrain(t *testing.T) {
	e := NewEngine(DefaultOptions())
	spec := mustSpec(t, Point{0.45, 0}, Point{0.45, 1}, Point{0.1, 0.5})
	prev, err := e.CreateDam(blockGrid(), spec)
	require.NoError(t, err)

	_, err = e.CreateDam(nil, spec)
	assert.ErrorIs(t, err, ErrNoTerrain)
	assert.ErrorIs(t, err, terrain.ErrNoTerrain)
	assert.Same(t, prev, e.Current(), "failed call must not change state")
}

func TestCreateDam_NoTerrainOnEmptyEngine(t *testing.T) {
	e := NewEngine(DefaultOptions())
	_, err := e.CreateDam(nil, DamSpec{Start: Point{0, 0}, End: Point{1, 1}})
	assert.ErrorIs(t, err, ErrNoTerrain)
	assert.Nil(t, e.Current())
	assert.Nil(t, e.Stats())
}

func TestCreateDam_Degenerate(t *testing.T) {
	e := NewEngine(DefaultOptions())
	_, err := e.CreateDam(blockGrid(), DamSpec{Start: Point{0.5, 0.5}, End: Point{0.5, 0.5}})
	assert.ErrorIs(t, err, ErrDegenerateDam)

	_, err = NewDamSpec(Point{0.2, 0.2}, Point{0.2, 0.2}, Point{0, 0})
	assert.ErrorIs(t, err, ErrDegenerateDam)
}

func TestCreateDam_IndicatorOnDam(t *testing.T) {
	e := NewEngine(DefaultOptions())
	spec := mustSpec(t, Point{0.45, 0}, Point{0.45, 1}, Point{0.1, 0.5})
	prev, err := e.CreateDam(blockGrid(), spec)
	require.NoError(t, err)

	onLine := mustSpec(t, Point{0.45, 0}, Point{0.45, 1}, Point{0.46, 0.3})
	_, err = e.CreateDam(blockGrid(), onLine)
	assert.ErrorIs(t, err, ErrIndicatorOnDam)
	assert.Same(t, prev, e.Current())
}

func TestCreateDam_SameCellEndpoints(t *testing.T) {
	e := NewEngine(DefaultOptions())
	spec := mustSpec(t, Point{0.41, 0.5}, Point{0.42, 0.5}, Point{0.1, 0.1})

	dam, err := e.CreateDam(blockGrid(), spec)
	require.NoError(t, err)

	assert.Equal(t, dam.Start, dam.End)
	assert.Equal(t, 0, dam.Flood.FloodedCells)
	assert.Nil(t, dam.Flood.WaterMesh)
	assert.NotNil(t, dam.Mesh)
}

func TestCreateDam_IndicatorOnHighGround(t *testing.T) {
	g := grid.New(10, 10)
	for r := 0; r < 10; r++ {
		g.Set(r, 0, 1000)
	}
	// Dam samples only low ground, so the ridge is above the water line.
	spec := mustSpec(t, Point{0.55, 0}, Point{0.55, 1}, Point{0.01, 0.5})

	dam, err := NewEngine(DefaultOptions()).CreateDam(g, spec)
	require.NoError(t, err)
	assert.Equal(t, 0, dam.Flood.FloodedCells)
	assert.Nil(t, dam.Flood.WaterMesh)
}

func TestCreateDam_ReplacesAndClears(t *testing.T) {
	e := NewEngine(DefaultOptions())
	g := blockGrid()

	first, err := e.CreateDam(g, mustSpec(t, Point{0.45, 0}, Point{0.45, 1}, Point{0.1, 0.5}))
	require.NoError(t, err)
	second, err := e.CreateDam(g, mustSpec(t, Point{0, 0.45}, Point{1, 0.45}, Point{0.5, 0.9}))
	require.NoError(t, err)

	assert.NotSame(t, first, e.Current())
	assert.Same(t, second, e.Current())

	e.Clear()
	assert.Nil(t, e.Current())
	assert.Nil(t, e.Stats())
}

func TestBuildDamMesh(t *testing.T) {
	frame := terrain.NewFrame(10, 10, terrain.DefaultHeightScale)
	spec := DamSpec{Start: Point{0.2, 0.5}, End: Point{0.8, 0.5}}

	mesh := BuildDamMesh(frame, spec, 10, 120, 0.005)

	assert.Equal(t, terrain.Triangles, mesh.Topology)
	assert.Equal(t, 24, mesh.VertexCount())
	assert.Len(t, mesh.Indices, 36)
	for _, idx := range mesh.Indices {
		assert.Less(t, idx, uint32(24))
	}

	assert.InDelta(t, 10*terrain.DefaultHeightScale, mesh.Bounds.Min[1], 1e-9)
	assert.InDelta(t, 120*terrain.DefaultHeightScale, mesh.Bounds.Max[1], 1e-9)
	assert.InDelta(t, -0.3, mesh.Bounds.Min[0], 1e-6)
	assert.InDelta(t, 0.3, mesh.Bounds.Max[0], 1e-6)
	// Horizontal dam: thickness extends along Z.
	assert.InDelta(t, -0.005, mesh.Bounds.Min[2], 1e-6)
	assert.InDelta(t, 0.005, mesh.Bounds.Max[2], 1e-6)
}

func TestPointCell_Clamps(t *testing.T) {
	assert.Equal(t, Cell{Row: 9, Col: 4}, Point{0.99, 1}.Cell(10, 5))
	assert.Equal(t, Cell{Row: 0, Col: 0}, Point{-0.2, -1}.Cell(10, 5))
	assert.Equal(t, Cell{Row: 5, Col: 2}, Point{0.5, 0.5}.Cell(10, 5))
}

func TestSampleBand(t *testing.T) {
	g := blockGrid()
	spec := DamSpec{Start: Point{0.45, 0}, End: Point{0.45, 1}}

	lo, hi := sampleBand(g, spec, DefaultOptions())
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 100.0, hi)

	g.Data[0] = math.NaN()
	spec = DamSpec{Start: Point{0, 0}, End: Point{0, 0.01}}
	opts := DefaultOptions()
	opts.Thickness = 0
	lo, hi = sampleBand(g, spec, opts)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 0.0, hi)
}

func TestSampleAt_ClampsToGrid(t *testing.T) {
	g := grid.New(4, 5)
	g.Set(0, 0, 1)
	g.Set(3, 4, 2)

	assert.Equal(t, 1.0, sampleAt(g, -0.5, -2))
	assert.Equal(t, 2.0, sampleAt(g, 1.5, 3))
	assert.Equal(t, 2.0, sampleAt(g, 1, 1))
}
