package config

import (
	"errors"
	"fmt"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port: %d out of range", c.Server.Port))
	}
	switch c.Server.Mode {
	case "release", "debug", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode: unknown mode %q", c.Server.Mode))
	}

	switch c.Catalog.Format {
	case "json", "csv":
	default:
		errs = append(errs, fmt.Errorf("catalog.format: unknown format %q", c.Catalog.Format))
	}

	switch c.Search.Backend {
	case "bleve", "memory":
	default:
		errs = append(errs, fmt.Errorf("search.backend: unknown backend %q", c.Search.Backend))
	}
	if c.Search.Size < 0 {
		errs = append(errs, fmt.Errorf("search.size: must not be negative"))
	}

	switch c.Aggregation.RevenueGrowthDenominator {
	case "sector", "reported":
	default:
		errs = append(errs, fmt.Errorf("aggregation.revenue_growth_denominator: unknown value %q", c.Aggregation.RevenueGrowthDenominator))
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
