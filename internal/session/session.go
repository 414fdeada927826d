// Package session ties terrain loading, processing, meshing and dam
// placement into one stateful API for a viewer.
//
// A Session is not safe for concurrent use.
package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/terraflood/internal/camera"
	"github.com/Faultbox/terraflood/internal/config"
	"github.com/Faultbox/terraflood/internal/grid"
	"github.com/Faultbox/terraflood/internal/hydro"
	"github.com/Faultbox/terraflood/internal/logger"
	"github.com/Faultbox/terraflood/internal/picking"
	"github.com/Faultbox/terraflood/internal/terrain"
	"github.com/Faultbox/terraflood/pkg/math"
)

// ErrDetailLevel is returned for a detail level outside [MinDetail, MaxDetail].
var ErrDetailLevel = errors.New("detail level out of range")

// Recorder persists placed dams.
type Recorder interface {
	RecordDam(source string, detail, rows, cols int, dam *hydro.Dam) error
}

// Option configures a Session.
type Option func(*Session)

// WithRecorder records every dam the session creates.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// Session holds the loaded terrain, its processed form, the terrain mesh,
// the current dam and the camera.
type Session struct {
	procOpts terrain.ProcessOptions
	meshOpts terrain.MeshOptions
	engine   *hydro.Engine
	cam      *camera.OrbitCamera
	recorder Recorder
	picks    hydro.PointCollector

	source    string
	detail    int
	raw       *grid.Grid // as loaded, never modified
	processed *grid.Grid
	mesh      *terrain.Mesh
}

// New creates a session from cfg. A nil cfg uses config.Default.
func New(cfg *config.Config, opts ...Option) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}
	scheme, err := terrain.ParseColorScheme(cfg.Mesh.ColorScheme)
	if err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}

	s := &Session{
		procOpts: terrain.ProcessOptions{
			OutlierThreshold: cfg.Terrain.OutlierThreshold,
			Smooth:           cfg.Terrain.Smooth,
			SmoothBlend:      cfg.Terrain.SmoothBlend,
		},
		meshOpts: terrain.MeshOptions{
			MinSide:        cfg.Mesh.MinSide,
			HeightScale:    cfg.Mesh.HeightScale,
			Scheme:         scheme,
			Isolines:       cfg.Mesh.Isolines,
			IsolineSpacing: cfg.Mesh.IsolineSpacing,
		},
		engine: hydro.NewEngine(hydro.Options{
			Thickness:   cfg.Dam.Thickness,
			Stations:    cfg.Dam.Stations,
			CrestFactor: cfg.Dam.CrestFactor,
			WaterFactor: cfg.Dam.WaterFactor,
			HeightScale: cfg.Mesh.HeightScale,
		}),
		cam:    newCamera(cfg.Camera),
		detail: cfg.Terrain.DetailLevel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func newCamera(cc config.CameraConfig) *camera.OrbitCamera {
	c := camera.NewOrbitCamera()
	c.FOV = cc.FOV
	c.Near = cc.Near
	c.Far = cc.Far
	c.MinDistance = cc.MinDistance
	c.MaxDistance = cc.MaxDistance
	c.OrbitSensitivity = cc.OrbitSensitivity
	c.ZoomStep = cc.ZoomStep
	c.PanSpeed = cc.PanSpeed
	c.Distance = cc.Distance
	return c
}

// LoadTerrain loads the raster at path, optionally cropped to region, and
// processes it at the current detail level. Any dam, pending picks and
// terrain mesh are discarded. On error the session is unchanged.
func (s *Session) LoadTerrain(path string, region *grid.Region) error {
	g, err := terrain.Load(path, region)
	if err != nil {
		return err
	}

	s.source = path
	s.raw = g
	s.reprocess()
	s.cam.Reset()

	logger.Info("terrain loaded",
		zap.String("path", path),
		zap.Int("rows", g.Rows),
		zap.Int("cols", g.Cols),
		zap.Int("detail", s.detail))
	return nil
}

// SetTerrain installs an in-memory grid as if it had been loaded from
// source.
func (s *Session) SetTerrain(source string, g *grid.Grid) error {
	if g == nil {
		return terrain.ErrNoTerrain
	}
	s.source = source
	s.raw = g.Clone()
	s.reprocess()
	s.cam.Reset()
	return nil
}

// SetDetailLevel changes the detail level and reprocesses the loaded
// terrain from the raw grid. The dam is cleared because cell positions
// change with the grid shape.
func (s *Session) SetDetailLevel(level int) error {
	if level < terrain.MinDetail || level > terrain.MaxDetail {
		return fmt.Errorf("%w: %d", ErrDetailLevel, level)
	}
	if level == s.detail {
		return nil
	}
	s.detail = level
	if s.raw != nil {
		s.reprocess()
		logger.Debug("detail level changed",
			zap.Int("detail", level),
			zap.Int("rows", s.processed.Rows),
			zap.Int("cols", s.processed.Cols))
	}
	return nil
}

// reprocess rebuilds the processed grid from raw and drops everything
// derived from the old one.
func (s *Session) reprocess() {
	s.processed = terrain.Process(s.raw, s.detail, s.procOpts)
	s.mesh = nil
	s.engine.Clear()
	s.picks.Reset()
}

// DetailLevel returns the current detail level.
func (s *Session) DetailLevel() int {
	return s.detail
}

// Source returns the path of the loaded terrain.
func (s *Session) Source() string {
	return s.source
}

// Terrain returns the processed grid, or nil when nothing is loaded.
func (s *Session) Terrain() *grid.Grid {
	return s.processed
}

// RawTerrain returns the grid as loaded.
func (s *Session) RawTerrain() *grid.Grid {
	return s.raw
}

// Frame returns the world layout of the processed grid.
func (s *Session) Frame() (terrain.Frame, error) {
	if s.processed == nil {
		return terrain.Frame{}, terrain.ErrNoTerrain
	}
	return terrain.FrameFor(s.processed, s.meshOpts.HeightScale), nil
}

// BuildTerrainMesh builds the terrain mesh for the current detail level,
// keeps it for TerrainMesh and frames the camera on it. A grid that was
// already resampled for the detail level is meshed without further
// decimation.
func (s *Session) BuildTerrainMesh() (*terrain.Mesh, error) {
	if s.processed == nil {
		return nil, terrain.ErrNoTerrain
	}
	m, err := terrain.BuildMesh(s.processed, s.meshDetail(), s.meshOpts)
	if err != nil {
		return nil, err
	}
	s.mesh = m

	b := m.Bounds
	s.cam.FitToBounds(
		math.Vec3{X: b.Min[0], Y: b.Min[1], Z: b.Min[2]},
		math.Vec3{X: b.Max[0], Y: b.Max[1], Z: b.Max[2]},
	)
	return m, nil
}

// meshDetail is the detail level handed to the mesh builder.
func (s *Session) meshDetail() int {
	if s.processed.Rows != s.raw.Rows || s.processed.Cols != s.raw.Cols {
		return terrain.MaxDetail
	}
	return s.detail
}

// TerrainMesh returns the last built terrain mesh, or nil.
func (s *Session) TerrainMesh() *terrain.Mesh {
	return s.mesh
}

// TerrainStats summarizes the processed grid.
func (s *Session) TerrainStats() (grid.Stats, error) {
	if s.processed == nil {
		return grid.Stats{}, terrain.ErrNoTerrain
	}
	return s.processed.Stats(), nil
}

// CreateDam places a dam on the processed grid, replacing any previous
// one. A recorder failure is logged and does not fail the call.
func (s *Session) CreateDam(spec hydro.DamSpec) (*hydro.Dam, error) {
	if s.processed == nil {
		return nil, hydro.ErrNoTerrain
	}
	dam, err := s.engine.CreateDam(s.processed, spec)
	if err != nil {
		return nil, err
	}

	if s.recorder != nil {
		err := s.recorder.RecordDam(s.source, s.detail, s.processed.Rows, s.processed.Cols, dam)
		if err != nil {
			logger.Warn("failed to record dam", zap.Error(err))
		}
	}
	return dam, nil
}

// ClearDam removes the current dam.
func (s *Session) ClearDam() {
	s.engine.Clear()
}

// Dam returns the current dam, or nil.
func (s *Session) Dam() *hydro.Dam {
	return s.engine.Current()
}

// DamStats returns the current dam summary, or nil when there is no dam.
func (s *Session) DamStats() *hydro.DamStats {
	return s.engine.Stats()
}

// Camera returns the session camera.
func (s *Session) Camera() *camera.OrbitCamera {
	return s.cam
}

// PickPoint casts a ray through a viewport pixel and returns the
// normalized grid point it hits.
func (s *Session) PickPoint(screenX, screenY, viewportW, viewportH float32) (hydro.Point, bool) {
	if viewportW <= 0 || viewportH <= 0 {
		return hydro.Point{}, false
	}
	frame, err := s.Frame()
	if err != nil {
		return hydro.Point{}, false
	}
	s.cam.SetAspectRatio(viewportW / viewportH)
	ray := picking.ScreenToRay(screenX, screenY, viewportW, viewportH, s.cam.ViewProjection().Inverse())

	p, ok := picking.PickTerrain(ray, s.processed, frame)
	if !ok {
		return hydro.Point{}, false
	}
	u, v := frame.WorldToNormalized(p)
	return hydro.Point{X: u, Y: v}, true
}

// NextPick returns which point the next AddPick call supplies.
func (s *Session) NextPick() hydro.PickStage {
	return s.picks.Next()
}

// AddPick records a dam point. The third pick creates the dam and starts
// a new round; the dam is nil before that. A rejected dam also starts a
// new round.
func (s *Session) AddPick(p hydro.Point) (*hydro.Dam, error) {
	if s.processed == nil {
		return nil, hydro.ErrNoTerrain
	}
	stage, err := s.picks.Add(p)
	if err != nil {
		return nil, err
	}
	logger.Debug("point picked", zap.Stringer("point", p), zap.Stringer("next", stage))
	if stage != hydro.PickComplete {
		return nil, nil
	}

	spec, err := s.picks.Spec()
	s.picks.Reset()
	if err != nil {
		return nil, err
	}
	return s.CreateDam(spec)
}
