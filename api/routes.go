package api

import (
	"github.com/gin-gonic/gin"
)

// NewRouter returns a gin engine with middleware and every route installed.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	SetupRoutes(router, h)
	return router
}

// SetupRoutes configures all API routes. Every GET endpoint also answers
// HEAD with the same status and headers.
func SetupRoutes(router *gin.Engine, h *Handler) {
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(h.logger))
	router.Use(CORSMiddleware())

	get := func(path string, handler gin.HandlerFunc) {
		router.GET(path, handler)
		router.HEAD(path, handler)
	}

	get("/health", h.Health)
	get("/getStocks", h.GetStocks)
	get("/getStock", h.GetStock)
	get("/getCompare", h.GetCompare)
	get("/getSectors", h.GetSectors)
	get("/search", h.Search)
	get("/getWatchlist", h.GetWatchlist)

	router.POST("/makeWatchlist", h.MakeWatchlist)
	router.POST("/addToWatchlist", h.AddToWatchlist)

	router.NoRoute(h.NotFound)
}
