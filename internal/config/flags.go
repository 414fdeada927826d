package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagDetail = flag.Int("detail", 0, "Terrain detail level (1-100)")
	flagStore  = flag.String("store", "", "Path to results database")
	flagSmooth = flag.Bool("smooth", false, "Apply Gaussian smoothing after cleaning")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments left after ParseFlags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagDetail > 0 {
		cfg.Terrain.DetailLevel = *flagDetail
	}
	if *flagStore != "" {
		cfg.Store.Path = *flagStore
	}
	if *flagSmooth {
		cfg.Terrain.Smooth = true
	}
}
