package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Watchlist is a named, ordered set of catalog records. Stocks point at
// catalog records and never repeat a symbol.
type Watchlist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Stocks    []*Stock  `json:"stocks"`
	CreatedAt time.Time `json:"createdAt"`
}

// WatchlistSummary is the compact form returned when a watchlist is created.
type WatchlistSummary struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	StockCount int            `json:"stockCount"`
	Stocks     []StockSummary `json:"stocks"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// CreateResult is returned by a successful watchlist creation. Warning lists
// tickers that did not resolve against the catalog.
type CreateResult struct {
	Message        string           `json:"message"`
	Watchlist      WatchlistSummary `json:"watchlist"`
	Warning        string           `json:"warning,omitempty"`
	InvalidTickers []string         `json:"invalidTickers,omitempty"`
}

// AddResult reports the outcome of appending tickers to a watchlist.
type AddResult struct {
	Message        string         `json:"message"`
	Watchlist      string         `json:"watchlist"`
	AddedCount     int            `json:"addedCount"`
	Added          []StockSummary `json:"added"`
	Duplicates     []string       `json:"duplicates,omitempty"`
	InvalidTickers []string       `json:"invalidTickers,omitempty"`
	StockCount     int            `json:"stockCount"`
}

// Tickers is a ticker list accepted either as a JSON array of strings or as a
// comma-separated string. Values are trimmed and uppercased; blanks are dropped.
type Tickers []string

// UnmarshalJSON accepts ["AAPL","MSFT"] or "AAPL, MSFT".
func (t *Tickers) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = NormalizeTickers(list)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = ParseTickers(s)
	return nil
}

// ParseTickers splits a comma-separated ticker string.
func ParseTickers(s string) Tickers {
	return NormalizeTickers(strings.Split(s, ","))
}

// NormalizeTickers canonicalizes a list of raw tickers.
func NormalizeTickers(raw []string) Tickers {
	out := make(Tickers, 0, len(raw))
	for _, r := range raw {
		if sym := CanonicalSymbol(r); sym != "" {
			out = append(out, sym)
		}
	}
	return out
}

// CanonicalSymbol is the lookup form of a ticker symbol.
func CanonicalSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// CanonicalCategory is the comparison form of sector, industry and state names.
func CanonicalCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
