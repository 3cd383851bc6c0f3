package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickersUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Tickers
	}{
		{"list", `["aapl", " msft "]`, Tickers{"AAPL", "MSFT"}},
		{"comma string", `"aapl, msft,,nvda"`, Tickers{"AAPL", "MSFT", "NVDA"}},
		{"single string", `"goog"`, Tickers{"GOOG"}},
		{"empty string", `""`, Tickers{}},
		{"list with blanks", `["", " "]`, Tickers{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Tickers
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTickersUnmarshalRejectsOtherShapes(t *testing.T) {
	var got Tickers
	assert.Error(t, json.Unmarshal([]byte(`42`), &got))
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &got))
}

func TestErrorKinds(t *testing.T) {
	err := fmt.Errorf("lookup: %w", NewError(KindNotFound, "Stock symbol not found"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrMissingParams))
	assert.True(t, IsKind(err, KindNotFound))

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "Stock symbol not found", e.Message)
}

func TestErrorWithDoesNotMutate(t *testing.T) {
	base := NewError(KindNotFound, "Sector not found")
	withSector := base.With("sector", "Energy")

	assert.Nil(t, base.Details)
	assert.Equal(t, "Energy", withSector.Details["sector"])
}

func TestStockProperty(t *testing.T) {
	mcap := 3.5e12
	s := &Stock{Symbol: "AAPL", Longname: "Apple Inc.", Marketcap: &mcap}

	v, ok := s.Property("Marketcap")
	assert.True(t, ok)
	assert.Equal(t, mcap, v)

	_, ok = s.Property("Revenuegrowth")
	assert.False(t, ok)

	_, ok = s.Property("NoSuchField")
	assert.False(t, ok)

	assert.Equal(t, int64(0), s.EmployeesOrZero())
}
