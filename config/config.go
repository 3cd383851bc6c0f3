// Package config loads the service configuration from YAML.
//
// ${VAR} references in the file are expanded from the environment before
// parsing. PORT and NODE_PORT override server.port when set.
package config

import "time"

// Config is the root configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Catalog     CatalogConfig     `yaml:"catalog"`
	Search      SearchConfig      `yaml:"search"`
	Aggregation AggregationConfig `yaml:"aggregation"`
	Log         LogConfig         `yaml:"log"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Mode            string        `yaml:"mode"` // gin mode: release, debug, test
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// CatalogConfig locates the instrument catalog. An empty path uses the
// embedded dataset.
type CatalogConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // json or csv
}

type SearchConfig struct {
	Backend string `yaml:"backend"` // bleve or memory
	Size    int    `yaml:"size"`
}

type AggregationConfig struct {
	// RevenueGrowthDenominator is "sector" (divide by member count) or
	// "reported" (divide by members reporting a value).
	RevenueGrowthDenominator string `yaml:"revenue_growth_denominator"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}
