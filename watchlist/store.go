// Package watchlist holds user-defined named subsets of the catalog for the
// lifetime of the process.
//
// A Store is safe for concurrent use. The store lock covers the name table,
// so "name is free, so create it" is atomic; each watchlist has its own lock
// covering its stock list, so appends to different watchlists do not contend.
// Watchlists are never deleted, so an entry found under the store lock stays
// valid after that lock is released.
package watchlist

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"stock-query/models"
	"stock-query/search"
)

type entry struct {
	mu      sync.Mutex
	list    models.Watchlist
	symbols map[string]bool
}

// Store maps watchlist names to watchlists. Names are case-sensitive.
type Store struct {
	catalog *search.Catalog
	logger  *slog.Logger
	now     func() time.Time

	mu    sync.RWMutex
	lists map[string]*entry
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for mutation events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore returns an empty store resolving tickers against catalog.
func NewStore(catalog *search.Catalog, opts ...Option) *Store {
	s := &Store{
		catalog: catalog,
		logger:  slog.Default(),
		now:     time.Now,
		lists:   make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CanonicalName is the stored form of a watchlist name. Every entry point
// looks names up in this form.
func CanonicalName(name string) string {
	return strings.TrimSpace(name)
}

// Create adds a watchlist named name holding the valid tickers in input
// order. Tickers missing from the catalog do not fail the call; they are
// reported in the result's warning.
func (s *Store) Create(name string, tickers models.Tickers) (*models.CreateResult, error) {
	name = CanonicalName(name)
	if name == "" {
		return nil, models.NewError(models.KindMissingParams, "Missing required parameter: name")
	}

	e := &entry{symbols: make(map[string]bool, len(tickers))}
	var invalid []string
	seenInvalid := make(map[string]bool)
	for _, symbol := range tickers {
		symbol = models.CanonicalSymbol(symbol)
		if e.symbols[symbol] || seenInvalid[symbol] {
			continue
		}
		stock, ok := s.catalog.Lookup(symbol)
		if !ok {
			seenInvalid[symbol] = true
			invalid = append(invalid, symbol)
			continue
		}
		e.symbols[symbol] = true
		e.list.Stocks = append(e.list.Stocks, stock)
	}
	if e.list.Stocks == nil {
		e.list.Stocks = []*models.Stock{}
	}

	s.mu.Lock()
	if _, exists := s.lists[name]; exists {
		s.mu.Unlock()
		return nil, models.NewError(models.KindDuplicateName,
			"A watchlist with this name already exists. Use addToWatchlist to add stocks.").With("name", name)
	}
	e.list.ID = uuid.NewString()
	e.list.Name = name
	e.list.CreatedAt = s.now()
	summary := summarize(&e.list)
	s.lists[name] = e
	s.mu.Unlock()

	s.logger.Debug("watchlist created", "name", name, "stocks", summary.StockCount, "invalid", len(invalid))

	result := &models.CreateResult{
		Message:   fmt.Sprintf("Watchlist '%s' created successfully", name),
		Watchlist: summary,
	}
	if len(invalid) > 0 {
		result.Warning = "The following tickers were not found and were skipped: " + strings.Join(invalid, ", ")
		result.InvalidTickers = invalid
	}
	return result, nil
}

// Add appends tickers to an existing watchlist. Symbols already present are
// reported as duplicates and tickers unknown to the catalog as invalid;
// neither fails the call.
func (s *Store) Add(name string, tickers models.Tickers) (*models.AddResult, error) {
	name = CanonicalName(name)
	if name == "" || len(tickers) == 0 {
		return nil, models.NewError(models.KindMissingParams, "Missing required parameters: name and tickers")
	}

	s.mu.RLock()
	e, ok := s.lists[name]
	s.mu.RUnlock()
	if !ok {
		return nil, models.NewError(models.KindNotFound, "Watchlist not found").With("name", name)
	}

	result := &models.AddResult{Watchlist: name, Added: []models.StockSummary{}}

	e.mu.Lock()
	for _, symbol := range tickers {
		symbol = models.CanonicalSymbol(symbol)
		if e.symbols[symbol] {
			result.Duplicates = append(result.Duplicates, symbol)
			continue
		}
		stock, ok := s.catalog.Lookup(symbol)
		if !ok {
			result.InvalidTickers = append(result.InvalidTickers, symbol)
			continue
		}
		e.symbols[symbol] = true
		e.list.Stocks = append(e.list.Stocks, stock)
		result.Added = append(result.Added, stock.Summary())
	}
	result.StockCount = len(e.list.Stocks)
	e.mu.Unlock()

	result.AddedCount = len(result.Added)
	result.Message = fmt.Sprintf("Added %d stock(s) to watchlist '%s'", result.AddedCount, name)

	s.logger.Debug("watchlist updated", "name", name, "added", result.AddedCount,
		"duplicates", len(result.Duplicates), "invalid", len(result.InvalidTickers))
	return result, nil
}

// Get returns a snapshot of the named watchlist.
func (s *Store) Get(name string) (*models.Watchlist, error) {
	name = CanonicalName(name)
	s.mu.RLock()
	e, ok := s.lists[name]
	s.mu.RUnlock()
	if !ok {
		return nil, models.NewError(models.KindNotFound, "Watchlist not found").With("name", name)
	}
	return e.snapshot(), nil
}

// All returns a snapshot of every watchlist keyed by name.
func (s *Store) All() map[string]*models.Watchlist {
	s.mu.RLock()
	entries := make(map[string]*entry, len(s.lists))
	for name, e := range s.lists {
		entries[name] = e
	}
	s.mu.RUnlock()

	out := make(map[string]*models.Watchlist, len(entries))
	for name, e := range entries {
		out[name] = e.snapshot()
	}
	return out
}

// Len reports how many watchlists exist.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lists)
}

func (e *entry) snapshot() *models.Watchlist {
	e.mu.Lock()
	defer e.mu.Unlock()
	list := e.list
	list.Stocks = append([]*models.Stock{}, e.list.Stocks...)
	return &list
}

func summarize(list *models.Watchlist) models.WatchlistSummary {
	stocks := make([]models.StockSummary, len(list.Stocks))
	for i, stock := range list.Stocks {
		stocks[i] = stock.Summary()
	}
	return models.WatchlistSummary{
		ID:         list.ID,
		Name:       list.Name,
		StockCount: len(list.Stocks),
		Stocks:     stocks,
		CreatedAt:  list.CreatedAt,
	}
}
