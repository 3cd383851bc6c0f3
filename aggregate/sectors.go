// Package aggregate computes per-sector rollups over the catalog.
package aggregate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"stock-query/models"
	"stock-query/search"
)

// Denominator selects how the average revenue growth is computed.
type Denominator string

const (
	// DenominatorSector divides the revenue-growth total by the sector's full
	// member count, including members that report no revenue growth. This is
	// the historical behavior and understates the average when values are missing.
	DenominatorSector Denominator = "sector"
	// DenominatorReported divides by the number of members that report a value.
	DenominatorReported Denominator = "reported"
)

// ParseDenominator validates a configured denominator; empty means DenominatorSector.
func ParseDenominator(s string) (Denominator, error) {
	switch Denominator(s) {
	case "", DenominatorSector:
		return DenominatorSector, nil
	case DenominatorReported:
		return DenominatorReported, nil
	}
	return "", fmt.Errorf("unknown revenue growth denominator %q", s)
}

// Engine groups catalog records by sector. Aggregates are recomputed on
// every call.
type Engine struct {
	catalog     *search.Catalog
	denominator Denominator
}

func NewEngine(catalog *search.Catalog, denominator Denominator) *Engine {
	if denominator == "" {
		denominator = DenominatorSector
	}
	return &Engine{catalog: catalog, denominator: denominator}
}

type accumulator struct {
	agg           *models.SectorAggregate
	marketcap     decimal.Decimal
	revenueGrowth decimal.Decimal
}

// Sectors computes every sector aggregate, in order of first appearance in
// the catalog. Records without a sector are skipped.
func (e *Engine) Sectors() []*models.SectorAggregate {
	var order []string
	groups := make(map[string]*accumulator)

	for _, stock := range e.catalog.All() {
		if stock.Sector == "" {
			continue
		}
		acc, ok := groups[stock.Sector]
		if !ok {
			acc = &accumulator{agg: &models.SectorAggregate{
				Sector:     stock.Sector,
				Companies:  []models.CompanyRef{},
				Industries: map[string]int{},
			}}
			groups[stock.Sector] = acc
			order = append(order, stock.Sector)
		}

		agg := acc.agg
		agg.Count++
		acc.marketcap = acc.marketcap.Add(decimal.NewFromFloat(stock.MarketcapOrZero()))
		agg.TotalEmployees += stock.EmployeesOrZero()
		if stock.Revenuegrowth != nil {
			acc.revenueGrowth = acc.revenueGrowth.Add(decimal.NewFromFloat(*stock.Revenuegrowth))
			agg.RevenuegrowthReported++
		}

		agg.Companies = append(agg.Companies, models.CompanyRef{
			Symbol:    stock.Symbol,
			Name:      stock.Longname,
			Marketcap: stock.Marketcap,
			Industry:  stock.Industry,
		})
		if stock.Industry != "" {
			agg.Industries[stock.Industry]++
		}
	}

	out := make([]*models.SectorAggregate, 0, len(order))
	for _, name := range order {
		acc := groups[name]
		agg := acc.agg

		agg.TotalMarketcap = acc.marketcap.InexactFloat64()
		agg.TotalRevenuegrowth = acc.revenueGrowth.InexactFloat64()
		agg.AverageMarketcap = average(agg.TotalMarketcap, agg.Count)
		agg.AverageEmployees = average(float64(agg.TotalEmployees), agg.Count)

		growthCount := agg.Count
		if e.denominator == DenominatorReported {
			growthCount = agg.RevenuegrowthReported
		}
		agg.AverageRevenuegrowth = average(agg.TotalRevenuegrowth, growthCount)

		out = append(out, agg)
	}
	return out
}

// Sector returns the aggregate whose name equals sector ignoring case.
func (e *Engine) Sector(sector string) (*models.SectorAggregate, error) {
	want := models.CanonicalCategory(sector)
	for _, agg := range e.Sectors() {
		if models.CanonicalCategory(agg.Sector) == want {
			return agg, nil
		}
	}
	return nil, models.NewError(models.KindNotFound, "Sector not found").With("sector", sector)
}

// average is total/count, or 0 when count is 0.
func average(total float64, count int) float64 {
	if count <= 0 {
		return 0
	}
	return total / float64(count)
}
