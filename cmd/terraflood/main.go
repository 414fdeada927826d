// terraflood is a CLI for inspecting elevation rasters and simulating dams.
package main

import (
	"fmt"
	"os"

	"github.com/Faultbox/terraflood/internal/config"
	"github.com/Faultbox/terraflood/internal/logger"
)

func main() {
	// Global flags come before the command.
	config.ParseFlags()
	args := config.Args()

	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	switch command {
	case "info":
		err = cmdInfo(cfg, args[1:])
	case "mesh":
		err = cmdMesh(cfg, args[1:])
	case "flood":
		err = cmdFlood(cfg, args[1:])
	case "history", "hist":
		err = cmdHistory(cfg, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`terraflood - terrain flooding simulator

Usage:
  terraflood [global options] <command> [options]

Global options:
  --config <file>    Config file (default: ./terraflood.yaml or the user config dir)
  --debug            Enable debug logging
  --detail <1-100>   Terrain detail level
  --store <file>     Record dams in this SQLite database
  --smooth           Smooth terrain after cleaning

Commands:
  info <file> [-region x,y,w,h]                   Show raster size and elevation stats
  mesh <file> [-detail N] [-region x,y,w,h]       Build the terrain mesh and report its size
  flood <file> -dam x1,y1,x2,y2 -at x,y [options] Place a dam and report the flood
  history [-n N]                                  List recorded dams

Flood options:
  -detail N          Detail level for this run
  -region x,y,w,h    Crop the raster before processing (pixels)
  -geojson <file>    Write dam line and flood footprint as GeoJSON
  -preview <file>    Write a PNG preview
  -size WxH          Preview size (default: grid size)

Points are normalized grid coordinates in [0,1]: x along columns, y along rows.

Examples:
  terraflood info N45E006.hgt
  terraflood --detail 50 mesh N45E006.hgt
  terraflood flood valley.asc -dam 0.4,0.1,0.6,0.3 -at 0.3,0.1 -preview flood.png
  terraflood --store runs.db history -n 5`)
}
