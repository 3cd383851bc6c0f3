package cmd

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/subcommands"

	"stock-query/aggregate"
	"stock-query/config"
	"stock-query/loader"
	"stock-query/search"
	"stock-query/watchlist"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&serveCmd{}, "server")

	c.Register(&stockCmd{}, "query")
	c.Register(&sectorsCmd{}, "query")
	c.Register(&searchCmd{}, "query")
}

var configPath = flag.String("config", "", "Path to the YAML configuration file (defaults apply when empty)")
var envFile = flag.String("env-file", ".env", "Optional .env file loaded before the configuration")

// app holds the engines built from one configuration.
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	catalog    *search.Catalog
	engine     *search.Engine
	sectors    *aggregate.Engine
	watchlists *watchlist.Store
	closers    []func() error
}

func (a *app) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
}

// loadApp reads the configuration and builds every engine over the catalog.
func loadApp() (*app, error) {
	if err := config.LoadDotEnv(*envFile); err != nil {
		return nil, err
	}
	cfg, err := config.LoadAndValidate(*configPath, config.NewEnvSource())
	if err != nil {
		return nil, err
	}
	logger := config.NewLogger(cfg.Log, os.Stderr)
	slog.SetDefault(logger)
	return newApp(cfg, logger)
}

func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	stocks, err := loader.Load(cfg.Catalog.Path, cfg.Catalog.Format)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	catalog, err := search.NewCatalog(stocks)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	logger.Info("catalog loaded", "stocks", catalog.Len(), "path", cfg.Catalog.Path)

	a := &app{cfg: cfg, logger: logger, catalog: catalog}

	var engine search.SearchEngine
	switch cfg.Search.Backend {
	case "memory":
		engine = search.NewInMemoryEngine(catalog)
	default:
		index, err := search.NewBleveEngine(catalog, cfg.Search.Size, logger)
		if err != nil {
			return nil, fmt.Errorf("build search index: %w", err)
		}
		a.closers = append(a.closers, index.Close)
		engine = index
	}

	denominator, err := aggregate.ParseDenominator(cfg.Aggregation.RevenueGrowthDenominator)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.engine = search.NewEngine(catalog, engine)
	a.sectors = aggregate.NewEngine(catalog, denominator)
	a.watchlists = watchlist.NewStore(catalog, watchlist.WithLogger(logger))
	return a, nil
}
