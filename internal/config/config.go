// Package config handles terraflood configuration loading and management.
package config

import (
	"fmt"

	"go.uber.org/multierr"
)

// Config holds all engine settings.
type Config struct {
	Terrain TerrainConfig `yaml:"terrain"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Dam     DamConfig     `yaml:"dam"`
	Camera  CameraConfig  `yaml:"camera"`
	Store   StoreConfig   `yaml:"store"`
	Logging LoggingConfig `yaml:"logging"`
}

// TerrainConfig holds cleaning and resampling settings.
type TerrainConfig struct {
	DetailLevel      int     `yaml:"detail_level"`      // 1..100, 100 = clean only
	OutlierThreshold float64 `yaml:"outlier_threshold"` // z-score above which a cell is an outlier
	Smooth           bool    `yaml:"smooth"`
	SmoothBlend      float64 `yaml:"smooth_blend"` // weight of the original when smoothing
}

// MeshConfig holds terrain mesh settings.
type MeshConfig struct {
	MinSide        int     `yaml:"min_side"`
	HeightScale    float64 `yaml:"height_scale"`
	ColorScheme    string  `yaml:"color_scheme"` // green-gray, yellow-red or none
	Isolines       bool    `yaml:"isolines"`
	IsolineSpacing float64 `yaml:"isoline_spacing"`
}

// DamConfig holds dam geometry settings.
type DamConfig struct {
	Thickness   float64 `yaml:"thickness"` // normalized units
	Stations    int     `yaml:"stations"`
	CrestFactor float64 `yaml:"crest_factor"`
	WaterFactor float64 `yaml:"water_factor"`
}

// CameraConfig holds orbit camera settings.
type CameraConfig struct {
	FOV              float32 `yaml:"fov"`
	Near             float32 `yaml:"near"`
	Far              float32 `yaml:"far"`
	Distance         float32 `yaml:"distance"`
	MinDistance      float32 `yaml:"min_distance"`
	MaxDistance      float32 `yaml:"max_distance"`
	OrbitSensitivity float32 `yaml:"orbit_sensitivity"`
	ZoomStep         float32 `yaml:"zoom_step"`
	PanSpeed         float32 `yaml:"pan_speed"`
}

// StoreConfig holds results store settings.
type StoreConfig struct {
	Path string `yaml:"path"` // empty disables recording
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			DetailLevel:      100,
			OutlierThreshold: 3.0,
			Smooth:           false,
			SmoothBlend:      0.7,
		},
		Mesh: MeshConfig{
			MinSide:        50,
			HeightScale:    0.00003,
			ColorScheme:    "green-gray",
			Isolines:       false,
			IsolineSpacing: 100,
		},
		Dam: DamConfig{
			Thickness:   0.005,
			Stations:    20,
			CrestFactor: 1.2,
			WaterFactor: 0.95,
		},
		Camera: CameraConfig{
			FOV:              45,
			Near:             0.01,
			Far:              1000,
			Distance:         2,
			MinDistance:      0.1,
			MaxDistance:      10,
			OrbitSensitivity: 0.1,
			ZoomStep:         0.08,
			PanSpeed:         0.001,
		},
		Store: StoreConfig{
			Path: "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error

	if c.Terrain.DetailLevel < 1 || c.Terrain.DetailLevel > 100 {
		err = multierr.Append(err, fmt.Errorf("terrain.detail_level %d outside [1,100]", c.Terrain.DetailLevel))
	}
	if c.Terrain.OutlierThreshold <= 0 {
		err = multierr.Append(err, fmt.Errorf("terrain.outlier_threshold must be positive, got %g", c.Terrain.OutlierThreshold))
	}
	if c.Terrain.SmoothBlend < 0 || c.Terrain.SmoothBlend > 1 {
		err = multierr.Append(err, fmt.Errorf("terrain.smooth_blend %g outside [0,1]", c.Terrain.SmoothBlend))
	}
	if c.Mesh.MinSide < 2 {
		err = multierr.Append(err, fmt.Errorf("mesh.min_side must be at least 2, got %d", c.Mesh.MinSide))
	}
	if c.Mesh.HeightScale <= 0 {
		err = multierr.Append(err, fmt.Errorf("mesh.height_scale must be positive, got %g", c.Mesh.HeightScale))
	}
	switch c.Mesh.ColorScheme {
	case "green-gray", "yellow-red", "none":
	default:
		err = multierr.Append(err, fmt.Errorf("mesh.color_scheme %q unknown", c.Mesh.ColorScheme))
	}
	if c.Mesh.Isolines && c.Mesh.IsolineSpacing <= 0 {
		err = multierr.Append(err, fmt.Errorf("mesh.isoline_spacing must be positive, got %g", c.Mesh.IsolineSpacing))
	}
	if c.Dam.Thickness < 0 {
		err = multierr.Append(err, fmt.Errorf("dam.thickness must not be negative, got %g", c.Dam.Thickness))
	}
	if c.Dam.Stations < 2 {
		err = multierr.Append(err, fmt.Errorf("dam.stations must be at least 2, got %d", c.Dam.Stations))
	}
	if c.Dam.WaterFactor <= 0 {
		err = multierr.Append(err, fmt.Errorf("dam.water_factor must be positive, got %g", c.Dam.WaterFactor))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		err = multierr.Append(err, fmt.Errorf("camera clip range [%g,%g] invalid", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.MinDistance <= 0 || c.Camera.MaxDistance < c.Camera.MinDistance {
		err = multierr.Append(err, fmt.Errorf("camera distance range [%g,%g] invalid", c.Camera.MinDistance, c.Camera.MaxDistance))
	}

	return err
}
