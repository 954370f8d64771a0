package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"AstroEngine/internal/firdaria"
	"AstroEngine/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Chart struct {
		File string `yaml:"file"`
	} `yaml:"chart"`
	Dignity struct {
		Version     string `yaml:"version"`
		OverlayFile string `yaml:"overlay_file"`
	} `yaml:"dignity"`
	Firdaria struct {
		Diurnal   firdaria.Sequence `yaml:"diurnal"`
		Nocturnal firdaria.Sequence `yaml:"nocturnal"`
	} `yaml:"firdaria"`
	ZR struct {
		HorizonYears float64 `yaml:"horizon_years"`
		Depth        int     `yaml:"depth"`
	} `yaml:"zr"`
	Antiscia struct {
		Orb float64 `yaml:"orb"`
	} `yaml:"antiscia"`
	Schedule struct {
		WatchCron string `yaml:"watch_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ASTRO_CHART_FILE"); v != "" {
		cfg.Chart.File = v
	}
	if v := os.Getenv("ASTRO_DIGNITY_VERSION"); v != "" {
		cfg.Dignity.Version = v
	}
	if v := os.Getenv("ASTRO_ZR_DEPTH"); v != "" {
		if depth, err := strconv.Atoi(v); err == nil {
			cfg.ZR.Depth = depth
		}
	}
	if v := os.Getenv("CRON_WATCH"); v != "" {
		cfg.Schedule.WatchCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Dignity.Version == "" {
		cfg.Dignity.Version = "standard-1"
	}
	if len(cfg.Firdaria.Diurnal) == 0 {
		cfg.Firdaria.Diurnal = defaultDiurnal()
	}
	if len(cfg.Firdaria.Nocturnal) == 0 {
		cfg.Firdaria.Nocturnal = defaultNocturnal()
	}
	if cfg.ZR.HorizonYears == 0 {
		cfg.ZR.HorizonYears = 100
	}
	if cfg.ZR.Depth == 0 {
		cfg.ZR.Depth = 2
	}
	if cfg.Antiscia.Orb == 0 {
		cfg.Antiscia.Orb = 1.0
	}
	if cfg.Schedule.WatchCron == "" {
		cfg.Schedule.WatchCron = "0 0 6 * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/astro_engine.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Chart.File == "" {
		return fmt.Errorf("chart.file is required")
	}
	if err := c.Firdaria.Diurnal.Validate(); err != nil {
		return fmt.Errorf("firdaria.diurnal: %w", err)
	}
	if err := c.Firdaria.Nocturnal.Validate(); err != nil {
		return fmt.Errorf("firdaria.nocturnal: %w", err)
	}
	if c.ZR.Depth < 1 || c.ZR.Depth > 4 {
		return fmt.Errorf("zr.depth must be between 1 and 4")
	}
	if c.Antiscia.Orb < 0 {
		return fmt.Errorf("antiscia.orb must not be negative")
	}
	return nil
}

// defaultDiurnal is the canonical day-chart lord sequence with the
// lunar nodes appended.
func defaultDiurnal() firdaria.Sequence {
	return firdaria.Sequence{
		{Planet: model.Sun, Years: 10},
		{Planet: model.Venus, Years: 8},
		{Planet: model.Mercury, Years: 13},
		{Planet: model.Moon, Years: 9},
		{Planet: model.Saturn, Years: 11},
		{Planet: model.Jupiter, Years: 12},
		{Planet: model.Mars, Years: 7},
		{Planet: model.NorthNode, Years: 3},
		{Planet: model.SouthNode, Years: 2},
	}
}

// defaultNocturnal starts the same cycle from the Moon.
func defaultNocturnal() firdaria.Sequence {
	return firdaria.Sequence{
		{Planet: model.Moon, Years: 9},
		{Planet: model.Saturn, Years: 11},
		{Planet: model.Jupiter, Years: 12},
		{Planet: model.Mars, Years: 7},
		{Planet: model.NorthNode, Years: 3},
		{Planet: model.SouthNode, Years: 2},
		{Planet: model.Sun, Years: 10},
		{Planet: model.Venus, Years: 8},
		{Planet: model.Mercury, Years: 13},
	}
}
