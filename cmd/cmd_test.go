package cmd

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-query/config"
	"stock-query/models"
)

func testApp(t *testing.T, mutate func(*config.Config)) *app {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Validate())

	a, err := newApp(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestNewAppBleveBackend(t *testing.T) {
	a := testApp(t, nil)

	results, err := a.engine.SearchStocks("microsoft")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "MSFT", results[0].Symbol)
	assert.Len(t, a.closers, 1)
}

func TestNewAppMemoryBackendReportedDenominator(t *testing.T) {
	a := testApp(t, func(cfg *config.Config) {
		cfg.Search.Backend = "memory"
		cfg.Aggregation.RevenueGrowthDenominator = "reported"
	})
	assert.Empty(t, a.closers)

	energy, err := a.sectors.Sector("energy")
	require.NoError(t, err)
	assert.InDelta(t, -0.002, energy.AverageRevenuegrowth, 1e-12)
}

func TestNewAppBadCatalogPath(t *testing.T) {
	cfg := config.Default()
	cfg.Catalog.Path = "/does/not/exist.json"

	_, err := newApp(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "load catalog")
}

func TestUSD(t *testing.T) {
	assert.Equal(t, "$1,234.57", usd(1234.567))
	assert.Equal(t, "$3,846,819,807,232.00", usd(3846819807232))
	assert.Equal(t, "$0.00", usd(0))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "6.10%", percent(0.061))
	assert.Equal(t, "-0.20%", percent(-0.002))
}

func TestRenderSectors(t *testing.T) {
	a := testApp(t, nil)
	energy, err := a.sectors.Sector("Energy")
	require.NoError(t, err)

	var buf bytes.Buffer
	renderSectors(&buf, []*models.SectorAggregate{energy})

	out := buf.String()
	assert.Contains(t, out, "Energy")
	assert.Contains(t, out, "Oil & Gas Integrated")
	assert.Contains(t, out, "$736,549,666,816.00")
}

func TestRenderStock(t *testing.T) {
	a := testApp(t, nil)
	stock, err := a.engine.GetStock("aapl")
	require.NoError(t, err)

	var buf bytes.Buffer
	renderStock(&buf, stock)

	assert.Contains(t, buf.String(), "Apple Inc.")
	assert.Contains(t, buf.String(), "$254.49")
	assert.Contains(t, buf.String(), "6.10%")
}
