package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultHost                     = ""
	DefaultPort                     = 3000
	DefaultMode                     = "release"
	DefaultReadTimeout              = 10 * time.Second
	DefaultWriteTimeout             = 10 * time.Second
	DefaultShutdownTimeout          = 30 * time.Second
	DefaultCatalogFormat            = "json"
	DefaultSearchBackend            = "bleve"
	DefaultSearchSize               = 25
	DefaultRevenueGrowthDenominator = "sector"
	DefaultLogLevel                 = "info"
	DefaultLogFormat                = "text"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Mode == "" {
		c.Server.Mode = DefaultMode
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if c.Catalog.Format == "" {
		c.Catalog.Format = DefaultCatalogFormat
	}

	if c.Search.Backend == "" {
		c.Search.Backend = DefaultSearchBackend
	}
	if c.Search.Size == 0 {
		c.Search.Size = DefaultSearchSize
	}

	if c.Aggregation.RevenueGrowthDenominator == "" {
		c.Aggregation.RevenueGrowthDenominator = DefaultRevenueGrowthDenominator
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}
