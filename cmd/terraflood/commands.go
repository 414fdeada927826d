package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/terraflood/internal/config"
	"github.com/Faultbox/terraflood/internal/export"
	"github.com/Faultbox/terraflood/internal/hydro"
	"github.com/Faultbox/terraflood/internal/logger"
	"github.com/Faultbox/terraflood/internal/session"
	"github.com/Faultbox/terraflood/internal/store"
	"github.com/Faultbox/terraflood/internal/terrain"
)

// openSession creates a session, attaches the store when one is configured
// and loads path. The returned func closes the store.
func openSession(cfg *config.Config, path, region string, detail int) (*session.Session, func(), error) {
	reg, err := parseRegion(region)
	if err != nil {
		return nil, nil, err
	}

	var opts []session.Option
	closeFn := func() {}
	if cfg.Store.Path != "" {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, session.WithRecorder(st))
		closeFn = func() {
			if err := st.Close(); err != nil {
				logger.Warn("failed to close store", zap.Error(err))
			}
		}
	}

	s, err := session.New(cfg, opts...)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	if detail != 0 {
		if err := s.SetDetailLevel(detail); err != nil {
			closeFn()
			return nil, nil, err
		}
	}
	if err := s.LoadTerrain(path, reg); err != nil {
		closeFn()
		return nil, nil, err
	}
	return s, closeFn, nil
}

func cmdInfo(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	region := fs.String("region", "", "Crop to x,y,w,h (pixels)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: terraflood info <file> [-region x,y,w,h]")
	}

	s, closeFn, err := openSession(cfg, fs.Arg(0), *region, 0)
	if err != nil {
		return err
	}
	defer closeFn()

	raw := s.RawTerrain().Stats()
	processed, err := s.TerrainStats()
	if err != nil {
		return err
	}

	fmt.Printf("File:      %s\n", fs.Arg(0))
	fmt.Printf("Raw:       %s\n", raw)
	fmt.Printf("Processed: %s (detail %d)\n", processed, s.DetailLevel())
	return nil
}

func cmdMesh(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("mesh", flag.ExitOnError)
	detail := fs.Int("detail", 0, "Detail level (1-100)")
	region := fs.String("region", "", "Crop to x,y,w,h (pixels)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: terraflood mesh <file> [-detail N] [-region x,y,w,h]")
	}

	s, closeFn, err := openSession(cfg, fs.Arg(0), *region, *detail)
	if err != nil {
		return err
	}
	defer closeFn()

	m, err := s.BuildTerrainMesh()
	if err != nil {
		return err
	}

	g := s.Terrain()
	fmt.Printf("Grid:       %dx%d (detail %d, decimation %d)\n",
		g.Rows, g.Cols, s.DetailLevel(), terrain.DecimationFactor(s.DetailLevel()))
	fmt.Printf("Sampled:    %dx%d\n", m.Rows, m.Cols)
	fmt.Printf("Vertices:   %d\n", m.VertexCount())
	fmt.Printf("Indices:    %d (%s)\n", len(m.Indices), m.Topology)
	fmt.Printf("Bounds:     %v .. %v\n", m.Bounds.Min, m.Bounds.Max)
	return nil
}

func cmdFlood(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("flood", flag.ExitOnError)
	damFlag := fs.String("dam", "", "Dam endpoints x1,y1,x2,y2 (normalized)")
	atFlag := fs.String("at", "", "Point on the side to flood x,y (normalized)")
	detail := fs.Int("detail", 0, "Detail level (1-100)")
	region := fs.String("region", "", "Crop to x,y,w,h (pixels)")
	geojsonPath := fs.String("geojson", "", "Write GeoJSON to this file")
	previewPath := fs.String("preview", "", "Write PNG preview to this file")
	size := fs.String("size", "", "Preview size WxH")
	fs.Parse(args)

	if fs.NArg() < 1 || *damFlag == "" || *atFlag == "" {
		return fmt.Errorf("usage: terraflood flood <file> -dam x1,y1,x2,y2 -at x,y [options]")
	}

	start, end, err := parseDam(*damFlag)
	if err != nil {
		return fmt.Errorf("-dam: %w", err)
	}
	at, err := parsePoint(*atFlag)
	if err != nil {
		return fmt.Errorf("-at: %w", err)
	}
	w, h, err := parseSize(*size)
	if err != nil {
		return fmt.Errorf("-size: %w", err)
	}
	spec, err := hydro.NewDamSpec(start, end, at)
	if err != nil {
		return err
	}

	s, closeFn, err := openSession(cfg, fs.Arg(0), *region, *detail)
	if err != nil {
		return err
	}
	defer closeFn()

	dam, err := s.CreateDam(spec)
	if err != nil {
		return err
	}

	st := dam.Stats()
	fmt.Printf("Dam:        %s -> %s (cells %v -> %v)\n", spec.Start, spec.End, dam.Start, dam.End)
	fmt.Printf("Base:       %.2f\n", st.BaseHeight)
	fmt.Printf("Crest:      %.2f\n", st.Height)
	fmt.Printf("Water:      %.2f\n", st.WaterHeight)
	fmt.Printf("Flooded:    %d cells (%.2f%%)\n", st.FloodedCells, st.FloodedFraction*100)

	if *geojsonPath != "" {
		data, err := export.FloodGeoJSON(dam)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*geojsonPath, data, 0644); err != nil {
			return fmt.Errorf("write geojson: %w", err)
		}
		fmt.Printf("GeoJSON:    %s\n", *geojsonPath)
	}

	if *previewPath != "" {
		scheme, err := terrain.ParseColorScheme(cfg.Mesh.ColorScheme)
		if err != nil {
			return err
		}
		img, err := export.Preview(s.Terrain(), dam, export.PreviewOptions{Width: w, Height: h, Scheme: scheme})
		if err != nil {
			return err
		}
		f, err := os.Create(*previewPath)
		if err != nil {
			return fmt.Errorf("create preview: %w", err)
		}
		defer f.Close()
		if err := export.WritePNG(f, img); err != nil {
			return err
		}
		fmt.Printf("Preview:    %s\n", *previewPath)
	}
	return nil
}

func cmdHistory(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	limit := fs.Int("n", 20, "Show the N most recent runs (0 = all)")
	fs.Parse(args)

	if cfg.Store.Path == "" {
		return fmt.Errorf("no store configured (use --store or store.path)")
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List(*limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}
	for _, r := range runs {
		fmt.Printf("%s  %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"), r)
	}
	return nil
}
