package search

import (
	"fmt"

	"stock-query/models"
)

// Catalog is the read-only set of instrument records, indexed by symbol.
// It is built once at startup and needs no locking.
type Catalog struct {
	stocks   []*models.Stock
	bySymbol map[string]*models.Stock
}

// NewCatalog copies stocks into a catalog, keeping source order. Symbols must
// be unique after canonicalization.
func NewCatalog(stocks []models.Stock) (*Catalog, error) {
	c := &Catalog{
		stocks:   make([]*models.Stock, 0, len(stocks)),
		bySymbol: make(map[string]*models.Stock, len(stocks)),
	}
	for i := range stocks {
		stock := stocks[i]
		stock.Symbol = models.CanonicalSymbol(stock.Symbol)
		if stock.Symbol == "" {
			return nil, fmt.Errorf("record %d has no symbol", i)
		}
		if _, ok := c.bySymbol[stock.Symbol]; ok {
			return nil, fmt.Errorf("duplicate symbol %s", stock.Symbol)
		}
		c.stocks = append(c.stocks, &stock)
		c.bySymbol[stock.Symbol] = &stock
	}
	return c, nil
}

// Lookup finds a record by symbol, ignoring case.
func (c *Catalog) Lookup(symbol string) (*models.Stock, bool) {
	s, ok := c.bySymbol[models.CanonicalSymbol(symbol)]
	return s, ok
}

// All returns every record in load order. Callers must not modify the records.
func (c *Catalog) All() []*models.Stock {
	return c.stocks
}

func (c *Catalog) Len() int {
	return len(c.stocks)
}
