// Package store persists dam runs in a SQLite database through gorm.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Faultbox/terraflood/internal/hydro"
	"github.com/Faultbox/terraflood/internal/logger"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("dam run not found")

// DamRun is one recorded dam placement.
type DamRun struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time

	Source      string `gorm:"index"`
	Rows        int
	Cols        int
	DetailLevel int

	StartX     float64
	StartY     float64
	EndX       float64
	EndY       float64
	IndicatorX float64
	IndicatorY float64

	CrestHeight     float64
	BaseHeight      float64
	WaterHeight     float64
	FloodedCells    int
	FloodedFraction float64
}

// String implements fmt.Stringer.
func (r DamRun) String() string {
	return fmt.Sprintf("#%d %s detail=%d crest=%.1f water=%.1f flooded=%d (%.2f%%)",
		r.ID, filepath.Base(r.Source), r.DetailLevel, r.CrestHeight, r.WaterHeight,
		r.FloodedCells, r.FloodedFraction*100)
}

// NewDamRun captures a dam placed on a rows x cols grid.
func NewDamRun(source string, detail, rows, cols int, dam *hydro.Dam) *DamRun {
	st := dam.Stats()
	return &DamRun{
		Source:          source,
		Rows:            rows,
		Cols:            cols,
		DetailLevel:     detail,
		StartX:          dam.Spec.Start.X,
		StartY:          dam.Spec.Start.Y,
		EndX:            dam.Spec.End.X,
		EndY:            dam.Spec.End.Y,
		IndicatorX:      dam.Spec.Indicator.X,
		IndicatorY:      dam.Spec.Indicator.Y,
		CrestHeight:     st.Height,
		BaseHeight:      st.BaseHeight,
		WaterHeight:     st.WaterHeight,
		FloodedCells:    st.FloodedCells,
		FloodedFraction: st.FloodedFraction,
	}
}

// Spec returns the dam specification the run was created from.
func (r *DamRun) Spec() hydro.DamSpec {
	return hydro.DamSpec{
		Start:     hydro.Point{X: r.StartX, Y: r.StartY},
		End:       hydro.Point{X: r.EndX, Y: r.EndY},
		Indicator: hydro.Point{X: r.IndicatorX, Y: r.IndicatorY},
	}
}

// Store is a dam run database.
type Store struct {
	db *gorm.DB
}

// Open opens or creates the database at path and migrates the schema.
// MemoryPath gives a database that lives until Close.
func Open(path string) (*Store, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	// Every new connection to :memory: is a fresh database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&DamRun{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate store: %w", err)
	}

	logger.Debug("store opened", zap.String("path", path))
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Record inserts run and fills in its ID and timestamp.
func (s *Store) Record(run *DamRun) error {
	if err := s.db.Create(run).Error; err != nil {
		return fmt.Errorf("record dam run: %w", err)
	}
	logger.Debug("dam run recorded", zap.Uint("id", run.ID), zap.String("source", run.Source))
	return nil
}

// RecordDam stores a dam placed on a rows x cols grid loaded from source.
func (s *Store) RecordDam(source string, detail, rows, cols int, dam *hydro.Dam) error {
	return s.Record(NewDamRun(source, detail, rows, cols, dam))
}

// List returns the most recent runs first. limit <= 0 returns all runs.
func (s *Store) List(limit int) ([]DamRun, error) {
	q := s.db.Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var runs []DamRun
	if err := q.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("list dam runs: %w", err)
	}
	return runs, nil
}

// Get returns the run with the given ID.
func (s *Store) Get(id uint) (*DamRun, error) {
	var run DamRun
	err := s.db.First(&run, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get dam run %d: %w", id, err)
	}
	return &run, nil
}
