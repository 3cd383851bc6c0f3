package search

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"stock-query/models"
)

// DefaultSearchSize caps the number of hits a query returns.
const DefaultSearchSize = 25

// BleveEngine is a full-text index over the catalog held in memory.
type BleveEngine struct {
	index     bleve.Index
	catalog   *Catalog
	maxWeight float64
	size      int
	logger    *slog.Logger
}

// indexedStock is the document shape stored in the index.
type indexedStock struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
	Summary  string `json:"summary"`
}

// NewBleveEngine indexes every catalog record. size <= 0 uses DefaultSearchSize.
func NewBleveEngine(catalog *Catalog, size int, logger *slog.Logger) (*BleveEngine, error) {
	if size <= 0 {
		size = DefaultSearchSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	batch := index.NewBatch()
	var maxWeight float64
	for _, stock := range catalog.All() {
		doc := indexedStock{
			Symbol:   strings.ToLower(stock.Symbol),
			Name:     stock.Longname,
			Sector:   stock.Sector,
			Industry: stock.Industry,
			Summary:  stock.Longbusinesssummary,
		}
		if err := batch.Index(stock.Symbol, doc); err != nil {
			return nil, fmt.Errorf("failed to add to batch: %w", err)
		}
		maxWeight = max(maxWeight, stock.Weight)
	}
	if err := index.Batch(batch); err != nil {
		return nil, fmt.Errorf("failed to execute batch: %w", err)
	}
	logger.Info("search index built", "documents", catalog.Len())

	return &BleveEngine{
		index:     index,
		catalog:   catalog,
		maxWeight: maxWeight,
		size:      size,
		logger:    logger,
	}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	stockMapping := bleve.NewDocumentMapping()

	// Symbols are matched whole; the standard analyzer would split BRK-B.
	symbolFieldMapping := bleve.NewTextFieldMapping()
	symbolFieldMapping.Analyzer = keyword.Name
	stockMapping.AddFieldMappingsAt("symbol", symbolFieldMapping)

	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Store = false
	stockMapping.AddFieldMappingsAt("name", textFieldMapping)
	stockMapping.AddFieldMappingsAt("sector", textFieldMapping)
	stockMapping.AddFieldMappingsAt("industry", textFieldMapping)
	stockMapping.AddFieldMappingsAt("summary", textFieldMapping)

	indexMapping.DefaultMapping = stockMapping
	return indexMapping
}

// Search ranks hits by text relevance blended with index weight:
// final = text*0.7 + popularity*0.3, where popularity is the record's weight
// relative to the heaviest record in the catalog.
func (e *BleveEngine) Search(q string) ([]*models.Stock, error) {
	q = strings.TrimSpace(q)
	lower := strings.ToLower(q)

	exactQuery := bleve.NewTermQuery(lower)
	exactQuery.SetField("symbol")
	exactQuery.SetBoost(10.0)

	prefixQuery := bleve.NewPrefixQuery(lower)
	prefixQuery.SetField("symbol")
	prefixQuery.SetBoost(5.0)

	nameMatchQuery := bleve.NewMatchQuery(q)
	nameMatchQuery.SetField("name")
	nameMatchQuery.SetBoost(3.0)

	wildcardName := bleve.NewWildcardQuery("*" + lower + "*")
	wildcardName.SetField("name")
	wildcardName.SetBoost(1.5)

	industryQuery := bleve.NewMatchQuery(q)
	industryQuery.SetField("industry")
	industryQuery.SetBoost(1.0)

	sectorQuery := bleve.NewMatchQuery(q)
	sectorQuery.SetField("sector")
	sectorQuery.SetBoost(1.0)

	summaryQuery := bleve.NewMatchQuery(q)
	summaryQuery.SetField("summary")
	summaryQuery.SetBoost(0.5)

	queries := []query.Query{exactQuery, prefixQuery, nameMatchQuery, wildcardName, industryQuery, sectorQuery, summaryQuery}
	searchRequest := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(queries...))
	searchRequest.Size = e.size

	searchResults, err := e.index.Search(searchRequest)
	if err != nil {
		e.logger.Error("search failed", "query", q, "error", err)
		return nil, fmt.Errorf("search %q: %w", q, err)
	}

	type scoredStock struct {
		stock *models.Stock
		score float64
	}
	scored := make([]scoredStock, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		stock, ok := e.catalog.Lookup(hit.ID)
		if !ok {
			continue
		}
		scored = append(scored, scoredStock{
			stock: stock,
			score: hit.Score*0.7 + e.popularity(stock)*0.3,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	results := make([]*models.Stock, len(scored))
	for i, s := range scored {
		results[i] = s.stock
	}
	return results, nil
}

func (e *BleveEngine) popularity(stock *models.Stock) float64 {
	if e.maxWeight <= 0 {
		return 0
	}
	return stock.Weight / e.maxWeight
}

func (e *BleveEngine) Close() error {
	return e.index.Close()
}
