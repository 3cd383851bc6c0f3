package watchlist

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-query/models"
	"stock-query/search"
)

var fixedNow = time.Date(2024, 12, 20, 15, 4, 5, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	catalog, err := search.NewCatalog([]models.Stock{
		{Symbol: "AAPL", Longname: "Apple Inc.", Sector: "Technology"},
		{Symbol: "MSFT", Longname: "Microsoft Corporation", Sector: "Technology"},
		{Symbol: "XOM", Longname: "Exxon Mobil Corporation", Sector: "Energy"},
	})
	require.NoError(t, err)
	return NewStore(catalog, WithClock(func() time.Time { return fixedNow }))
}

func symbols(list *models.Watchlist) []string {
	out := make([]string, len(list.Stocks))
	for i, s := range list.Stocks {
		out[i] = s.Symbol
	}
	return out
}

func TestCreate(t *testing.T) {
	store := newTestStore(t)

	result, err := store.Create("tech", models.Tickers{"msft", "AAPL"})
	require.NoError(t, err)
	assert.Empty(t, result.Warning)
	assert.Equal(t, "tech", result.Watchlist.Name)
	assert.Equal(t, 2, result.Watchlist.StockCount)
	assert.Equal(t, fixedNow, result.Watchlist.CreatedAt)
	assert.NotEmpty(t, result.Watchlist.ID)
	assert.Equal(t, []models.StockSummary{
		{Name: "Microsoft Corporation", Symbol: "MSFT"},
		{Name: "Apple Inc.", Symbol: "AAPL"},
	}, result.Watchlist.Stocks)

	list, err := store.Get("tech")
	require.NoError(t, err)
	assert.Equal(t, []string{"MSFT", "AAPL"}, symbols(list))
}

func TestCreateWithoutTickers(t *testing.T) {
	store := newTestStore(t)

	result, err := store.Create("empty", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Watchlist.StockCount)
	assert.NotNil(t, result.Watchlist.Stocks)
}

func TestCreateMissingName(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Create("  ", models.Tickers{"AAPL"})
	assert.ErrorIs(t, err, models.ErrMissingParams)
	assert.Equal(t, 0, store.Len())
}

func TestCreateDuplicateName(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Create("tech", models.Tickers{"AAPL"})
	require.NoError(t, err)

	_, err = store.Create("tech", models.Tickers{"MSFT"})
	assert.ErrorIs(t, err, models.ErrDuplicateName)
	assert.Equal(t, 1, store.Len())

	list, err := store.Get("tech")
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL"}, symbols(list))

	_, err = store.Create("Tech", nil)
	assert.NoError(t, err, "names are case-sensitive")
}

func TestCreateInvalidTickers(t *testing.T) {
	store := newTestStore(t)

	result, err := store.Create("w", models.Tickers{"AAPL", "ZZZZ", "aapl"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Watchlist.StockCount)
	assert.Equal(t, "AAPL", result.Watchlist.Stocks[0].Symbol)
	assert.Contains(t, result.Warning, "ZZZZ")
	assert.Equal(t, []string{"ZZZZ"}, result.InvalidTickers)
}

func TestCreateRepeatedInvalidTickerReportedOnce(t *testing.T) {
	store := newTestStore(t)

	result, err := store.Create("w", models.Tickers{"ZZZZ", "zzzz", "AAPL", " ZZZZ "})
	require.NoError(t, err)
	assert.Equal(t, []string{"ZZZZ"}, result.InvalidTickers)
	assert.Equal(t, "The following tickers were not found and were skipped: ZZZZ", result.Warning)
	assert.Equal(t, 1, result.Watchlist.StockCount)
}

func TestNameTrimmedAtEveryEntryPoint(t *testing.T) {
	store := newTestStore(t)

	result, err := store.Create(" tech ", models.Tickers{"AAPL"})
	require.NoError(t, err)
	assert.Equal(t, "tech", result.Watchlist.Name)

	_, err = store.Create("tech", nil)
	assert.ErrorIs(t, err, models.ErrDuplicateName)

	_, err = store.Add("\ttech ", models.Tickers{"MSFT"})
	require.NoError(t, err)

	list, err := store.Get(" tech ")
	require.NoError(t, err)
	assert.Equal(t, "tech", list.Name)
	assert.Equal(t, []string{"AAPL", "MSFT"}, symbols(list))
}

func TestAdd(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Create("w", models.Tickers{"AAPL"})
	require.NoError(t, err)

	result, err := store.Add("w", models.Tickers{"XOM", "aapl", "NOPE", "MSFT", "XOM"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.AddedCount)
	assert.Equal(t, []models.StockSummary{
		{Name: "Exxon Mobil Corporation", Symbol: "XOM"},
		{Name: "Microsoft Corporation", Symbol: "MSFT"},
	}, result.Added)
	assert.Equal(t, []string{"AAPL", "XOM"}, result.Duplicates)
	assert.Equal(t, []string{"NOPE"}, result.InvalidTickers)
	assert.Equal(t, 3, result.StockCount)

	list, err := store.Get("w")
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "XOM", "MSFT"}, symbols(list))
}

func TestAddDuplicateLeavesCountUnchanged(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Create("w", models.Tickers{"AAPL"})
	require.NoError(t, err)

	result, err := store.Add("w", models.Tickers{"AAPL"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.AddedCount)
	assert.Equal(t, []string{"AAPL"}, result.Duplicates)

	list, err := store.Get("w")
	require.NoError(t, err)
	assert.Len(t, list.Stocks, 1)
}

func TestAddErrors(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Add("missing", models.Tickers{"AAPL"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = store.Add("", models.Tickers{"AAPL"})
	assert.ErrorIs(t, err, models.ErrMissingParams)

	_, err = store.Create("w", nil)
	require.NoError(t, err)
	_, err = store.Add("w", models.Tickers{})
	assert.ErrorIs(t, err, models.ErrMissingParams)
}

func TestGetAll(t *testing.T) {
	store := newTestStore(t)
	assert.Empty(t, store.All())

	_, err := store.Create("a", models.Tickers{"AAPL"})
	require.NoError(t, err)
	_, err = store.Create("b", nil)
	require.NoError(t, err)

	all := store.All()
	require.Len(t, all, 2)
	assert.Equal(t, []string{"AAPL"}, symbols(all["a"]))
	assert.Empty(t, all["b"].Stocks)

	_, err = store.Get("c")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSnapshotIsolation(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Create("w", models.Tickers{"AAPL"})
	require.NoError(t, err)

	before, err := store.Get("w")
	require.NoError(t, err)

	_, err = store.Add("w", models.Tickers{"MSFT"})
	require.NoError(t, err)

	assert.Len(t, before.Stocks, 1)
}

func TestConcurrentCreateSameName(t *testing.T) {
	store := newTestStore(t)

	const callers = 64
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		created    int
		duplicates int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create("tech", models.Tickers{"AAPL"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case models.IsKind(err, models.KindDuplicateName):
				duplicates++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, callers-1, duplicates)
	assert.Equal(t, 1, store.Len())
}

func TestConcurrentAddNoDuplicateSymbols(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Create("w", nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Add("w", models.Tickers{"AAPL", "MSFT", "XOM"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := store.Get("w")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"AAPL", "MSFT", "XOM"}, symbols(list))
}
