package search

import (
	"slices"
	"strconv"
	"strings"

	"stock-query/models"
)

// SearchEngine ranks catalog records against a free-text query.
type SearchEngine interface {
	Search(query string) ([]*models.Stock, error)
}

// InMemoryEngine matches symbol prefixes and name substrings without an index.
type InMemoryEngine struct {
	catalog *Catalog
}

func NewInMemoryEngine(catalog *Catalog) *InMemoryEngine {
	return &InMemoryEngine{catalog: catalog}
}

func (e *InMemoryEngine) Search(query string) ([]*models.Stock, error) {
	var exact, prefix, contains []*models.Stock
	q := strings.ToLower(strings.TrimSpace(query))
	for _, stock := range e.catalog.All() {
		symbol := strings.ToLower(stock.Symbol)
		switch {
		case symbol == q:
			exact = append(exact, stock)
		case strings.HasPrefix(symbol, q):
			prefix = append(prefix, stock)
		case strings.Contains(strings.ToLower(stock.Longname), q),
			strings.Contains(strings.ToLower(stock.Industry), q),
			strings.Contains(strings.ToLower(stock.Sector), q):
			contains = append(contains, stock)
		}
	}
	return slices.Concat(exact, prefix, contains), nil
}

// Filters selects and projects catalog records. Zero-valued fields are unset.
// SymbolsGiven marks a symbol filter that was requested even if every entry
// in it was blank; such a filter matches nothing.
type Filters struct {
	Symbols          []string
	SymbolsGiven     bool
	All              bool
	Sector           string
	State            string
	IncludeMarketcap bool
	IncludeSector    bool
	IncludeIndustry  bool
}

func (f Filters) applied() bool {
	return len(f.Symbols) > 0 || f.SymbolsGiven || f.Sector != "" || f.State != ""
}

// DefaultCompareProperties are returned by CompareStocks when the caller
// names none.
var DefaultCompareProperties = []string{"Longname", "Symbol", "Sector", "Industry", "Marketcap"}

// Engine answers stock lookups and filtered queries over a Catalog.
type Engine struct {
	catalog *Catalog
	search  SearchEngine
}

func NewEngine(catalog *Catalog, search SearchEngine) *Engine {
	return &Engine{catalog: catalog, search: search}
}

func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// QueryStocks returns the projection of every record matching all applied
// filters. With no filters, or with All set, every record matches. Applied
// filters that match nothing fail with notFound rather than an empty list.
func (e *Engine) QueryStocks(f Filters) ([]models.StockSummary, error) {
	var symbols map[string]bool
	if !f.All && (len(f.Symbols) > 0 || f.SymbolsGiven) {
		symbols = make(map[string]bool, len(f.Symbols))
		for _, s := range f.Symbols {
			symbols[models.CanonicalSymbol(s)] = true
		}
	}
	sector := models.CanonicalCategory(f.Sector)
	state := models.CanonicalCategory(f.State)

	results := []models.StockSummary{}
	for _, stock := range e.catalog.All() {
		if symbols != nil && !symbols[stock.Symbol] {
			continue
		}
		if sector != "" && models.CanonicalCategory(stock.Sector) != sector {
			continue
		}
		if state != "" && models.CanonicalCategory(stock.State) != state {
			continue
		}
		results = append(results, project(stock, f))
	}

	if len(results) == 0 && (f.All || f.applied()) {
		return nil, models.NewError(models.KindNotFound, "No matching stocks found")
	}
	return results, nil
}

func project(stock *models.Stock, f Filters) models.StockSummary {
	summary := stock.Summary()
	if f.IncludeMarketcap {
		summary.Marketcap = stock.Marketcap
	}
	if f.IncludeSector {
		sector := stock.Sector
		summary.Sector = &sector
	}
	if f.IncludeIndustry {
		industry := stock.Industry
		summary.Industry = &industry
	}
	return summary
}

// GetStock returns the full record for ticker.
func (e *Engine) GetStock(ticker string) (*models.Stock, error) {
	symbol := models.CanonicalSymbol(ticker)
	if symbol == "" {
		return nil, models.NewError(models.KindMissingParams, "Missing required query parameter: ticker")
	}
	stock, ok := e.catalog.Lookup(symbol)
	if !ok {
		return nil, models.NewError(models.KindNotFound, "Stock symbol not found").With("ticker", symbol)
	}
	return stock, nil
}

// CompareStocks lays the requested properties of two or more records side by
// side, keyed stock1..stockN in request order. Properties a record lacks are
// left out of its entry.
func (e *Engine) CompareStocks(symbols []string, properties []string) (map[string]map[string]any, error) {
	if len(symbols) == 0 {
		return nil, models.NewError(models.KindMissingParams, "Missing required query parameter: stocks")
	}
	if len(symbols) < 2 {
		return nil, models.NewError(models.KindInsufficientStocks, "At least 2 stock symbols are required for comparison")
	}
	if len(properties) == 0 {
		properties = DefaultCompareProperties
	}

	stocks := make([]*models.Stock, len(symbols))
	var missing []string
	for i, symbol := range symbols {
		stock, ok := e.catalog.Lookup(symbol)
		if !ok {
			missing = append(missing, models.CanonicalSymbol(symbol))
			continue
		}
		stocks[i] = stock
	}
	if len(missing) > 0 {
		return nil, models.NewError(models.KindNotFound, "One or more stock symbols not found").With("notFoundSymbols", missing)
	}

	comparison := make(map[string]map[string]any, len(stocks))
	for i, stock := range stocks {
		entry := make(map[string]any, len(properties))
		for _, prop := range properties {
			if v, ok := stock.Property(strings.TrimSpace(prop)); ok {
				entry[strings.TrimSpace(prop)] = v
			}
		}
		comparison["stock"+strconv.Itoa(i+1)] = entry
	}
	return comparison, nil
}

// SearchStocks runs a free-text query through the configured search engine.
func (e *Engine) SearchStocks(query string) ([]models.StockSummary, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewError(models.KindMissingParams, "Missing required query parameter: q")
	}
	stocks, err := e.search.Search(query)
	if err != nil {
		return nil, err
	}
	results := make([]models.StockSummary, 0, len(stocks))
	for _, stock := range stocks {
		results = append(results, project(stock, Filters{IncludeSector: true}))
	}
	return results, nil
}
