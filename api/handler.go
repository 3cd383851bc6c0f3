package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"stock-query/aggregate"
	"stock-query/models"
	"stock-query/search"
	"stock-query/watchlist"
)

// Handler dispatches HTTP requests to the query, aggregation and watchlist
// engines. It only parses parameters and serializes results.
type Handler struct {
	Engine     *search.Engine
	Sectors    *aggregate.Engine
	Watchlists *watchlist.Store
	logger     *slog.Logger
}

func NewHandler(engine *search.Engine, sectors *aggregate.Engine, watchlists *watchlist.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Engine:     engine,
		Sectors:    sectors,
		Watchlists: watchlists,
		logger:     logger,
	}
}

// GetStocks serves /getStocks. `symbols` (or its older alias `stocks`) takes a
// comma-separated list or "all"; `sector` and `state` filter by exact,
// case-insensitive match; includeMarketcap, includeSector and includeIndustry
// add fields when set to "true".
func (h *Handler) GetStocks(c *gin.Context) {
	raw := c.Query("symbols")
	if raw == "" {
		raw = c.Query("stocks")
	}

	filters := search.Filters{
		Sector:           c.Query("sector"),
		State:            c.Query("state"),
		IncludeMarketcap: c.Query("includeMarketcap") == "true",
		IncludeSector:    c.Query("includeSector") == "true",
		IncludeIndustry:  c.Query("includeIndustry") == "true",
	}
	if strings.EqualFold(strings.TrimSpace(raw), "all") {
		filters.All = true
	} else if raw != "" {
		filters.SymbolsGiven = true
		filters.Symbols = models.ParseTickers(raw)
	}

	results, err := h.Engine.QueryStocks(filters)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *Handler) GetStock(c *gin.Context) {
	stock, err := h.Engine.GetStock(c.Query("ticker"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// GetCompare serves /getCompare?stocks=A,B[&properties=Longname,Marketcap].
func (h *Handler) GetCompare(c *gin.Context) {
	raw := c.Query("stocks")
	if raw == "" {
		raw = c.Query("symbols")
	}

	var properties []string
	if p := c.Query("properties"); p != "" {
		for _, prop := range strings.Split(p, ",") {
			if prop = strings.TrimSpace(prop); prop != "" {
				properties = append(properties, prop)
			}
		}
	}

	comparison, err := h.Engine.CompareStocks(models.ParseTickers(raw), properties)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comparison)
}

func (h *Handler) GetSectors(c *gin.Context) {
	if sector := c.Query("sector"); sector != "" {
		agg, err := h.Sectors.Sector(sector)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, agg)
		return
	}
	c.JSON(http.StatusOK, h.Sectors.Sectors())
}

func (h *Handler) Search(c *gin.Context) {
	results, err := h.Engine.SearchStocks(c.Query("q"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// GetWatchlist returns the named watchlist, or every watchlist keyed by name
// when no name is given.
func (h *Handler) GetWatchlist(c *gin.Context) {
	name := c.Query("name")
	if watchlist.CanonicalName(name) == "" {
		c.JSON(http.StatusOK, h.Watchlists.All())
		return
	}
	list, err := h.Watchlists.Get(name)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// watchlistRequest is the body of makeWatchlist and addToWatchlist. Tickers
// may be a JSON array or a comma-separated string.
type watchlistRequest struct {
	Name    string         `json:"name" form:"name"`
	Tickers models.Tickers `json:"tickers"`
}

func (h *Handler) MakeWatchlist(c *gin.Context) {
	req, ok := h.bindWatchlistRequest(c)
	if !ok {
		return
	}
	result, err := h.Watchlists.Create(req.Name, req.Tickers)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *Handler) AddToWatchlist(c *gin.Context) {
	req, ok := h.bindWatchlistRequest(c)
	if !ok {
		return
	}
	result, err := h.Watchlists.Add(req.Name, req.Tickers)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// bindWatchlistRequest reads a JSON or form-encoded body. An empty body is an
// empty request, left to the store to reject; an unparseable one is badRequest.
func (h *Handler) bindWatchlistRequest(c *gin.Context) (watchlistRequest, bool) {
	var req watchlistRequest
	switch c.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		req.Name = c.PostForm("name")
		req.Tickers = models.ParseTickers(c.PostForm("tickers"))
		return req, true
	}

	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(c, models.NewError(models.KindBadRequest, "Request body must be valid JSON"))
		return req, false
	}
	return req, true
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"stocks": h.Engine.Catalog().Len(),
	})
}

// NotFound answers unknown routes in the same payload shape as other failures.
func (h *Handler) NotFound(c *gin.Context) {
	h.writeError(c, models.NewError(models.KindNotFound, "The page you are looking for was not found."))
}

// statusFor maps a failure kind to its HTTP status.
func statusFor(kind models.Kind) int {
	switch kind {
	case models.KindMissingParams, models.KindBadRequest, models.KindInsufficientStocks:
		return http.StatusBadRequest
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindDuplicateName:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError serializes err as {"message", "id", ...details}.
func (h *Handler) writeError(c *gin.Context, err error) {
	var e *models.Error
	if !errors.As(err, &e) {
		h.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal Server Error",
			"id":      "internal",
		})
		return
	}

	body := gin.H{}
	for k, v := range e.Details {
		body[k] = v
	}
	body["message"] = e.Message
	body["id"] = string(e.Kind)
	c.JSON(statusFor(e.Kind), body)
}
