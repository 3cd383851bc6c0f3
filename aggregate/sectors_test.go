package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-query/loader"
	"stock-query/models"
	"stock-query/search"
)

func ptr[T any](v T) *T { return &v }

func testCatalog(t *testing.T) *search.Catalog {
	t.Helper()
	catalog, err := search.NewCatalog([]models.Stock{
		{Symbol: "XOM", Longname: "Exxon Mobil Corporation", Sector: "Energy", Industry: "Oil & Gas Integrated", Marketcap: ptr(400.0), Fulltimeemployees: ptr(int64(60)), Revenuegrowth: ptr(0.2)},
		{Symbol: "CVX", Longname: "Chevron Corporation", Sector: "Energy", Industry: "Oil & Gas Integrated", Marketcap: ptr(200.0)},
		{Symbol: "SLB", Longname: "Schlumberger Limited", Sector: "Energy", Industry: "Oil & Gas Equipment & Services", Fulltimeemployees: ptr(int64(30)), Revenuegrowth: ptr(0.1)},
		{Symbol: "NEE", Longname: "NextEra Energy, Inc.", Sector: "Utilities", Marketcap: ptr(150.0), Revenuegrowth: ptr(-0.05)},
		{Symbol: "NOSEC", Longname: "No Sector Corp."},
	})
	require.NoError(t, err)
	return catalog
}

func TestSectors(t *testing.T) {
	engine := NewEngine(testCatalog(t), DenominatorSector)

	sectors := engine.Sectors()
	require.Len(t, sectors, 2)

	energy := sectors[0]
	assert.Equal(t, "Energy", energy.Sector)
	assert.Equal(t, 3, energy.Count)
	assert.Equal(t, 600.0, energy.TotalMarketcap)
	assert.Equal(t, 200.0, energy.AverageMarketcap)
	assert.Equal(t, int64(90), energy.TotalEmployees)
	assert.Equal(t, 30.0, energy.AverageEmployees)
	assert.InDelta(t, 0.3, energy.TotalRevenuegrowth, 1e-12)
	assert.InDelta(t, 0.1, energy.AverageRevenuegrowth, 1e-12)
	assert.Equal(t, 2, energy.RevenuegrowthReported)
	assert.Equal(t, map[string]int{"Oil & Gas Integrated": 2, "Oil & Gas Equipment & Services": 1}, energy.Industries)
	require.Len(t, energy.Companies, 3)
	assert.Equal(t, "SLB", energy.Companies[2].Symbol)
	assert.Nil(t, energy.Companies[2].Marketcap)

	utilities := sectors[1]
	assert.Equal(t, 1, utilities.Count)
	assert.Empty(t, utilities.Industries)
}

func TestSectorsReportedDenominator(t *testing.T) {
	engine := NewEngine(testCatalog(t), DenominatorReported)

	energy, err := engine.Sector("energy")
	require.NoError(t, err)
	assert.InDelta(t, 0.15, energy.AverageRevenuegrowth, 1e-12)
	assert.Equal(t, 200.0, energy.AverageMarketcap)
}

func TestSectorLookup(t *testing.T) {
	engine := NewEngine(testCatalog(t), "")

	agg, err := engine.Sector("UTILITIES")
	require.NoError(t, err)
	assert.Equal(t, "Utilities", agg.Sector)

	_, err = engine.Sector("Healthcare")
	require.ErrorIs(t, err, models.ErrNotFound)
	var e *models.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "Healthcare", e.Details["sector"])
}

func TestSectorsInvariants(t *testing.T) {
	stocks, err := loader.Default()
	require.NoError(t, err)
	catalog, err := search.NewCatalog(stocks)
	require.NoError(t, err)

	for _, denominator := range []Denominator{DenominatorSector, DenominatorReported} {
		for _, agg := range NewEngine(catalog, denominator).Sectors() {
			assert.Equal(t, agg.Count, len(agg.Companies), agg.Sector)
			require.Positive(t, agg.Count)
			assert.Equal(t, agg.TotalMarketcap/float64(agg.Count), agg.AverageMarketcap, agg.Sector)
			assert.Equal(t, float64(agg.TotalEmployees)/float64(agg.Count), agg.AverageEmployees, agg.Sector)
			assert.LessOrEqual(t, agg.RevenuegrowthReported, agg.Count)
		}
	}
}

func TestSectorsRecomputedPerCall(t *testing.T) {
	engine := NewEngine(testCatalog(t), DenominatorSector)

	first := engine.Sectors()
	first[0].Count = 999
	second := engine.Sectors()
	assert.Equal(t, 3, second[0].Count)
}

func TestParseDenominator(t *testing.T) {
	d, err := ParseDenominator("")
	require.NoError(t, err)
	assert.Equal(t, DenominatorSector, d)

	d, err = ParseDenominator("reported")
	require.NoError(t, err)
	assert.Equal(t, DenominatorReported, d)

	_, err = ParseDenominator("median")
	assert.Error(t, err)
}
