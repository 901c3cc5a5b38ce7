package httpserver

import (
	"os"
	"strings"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes wires the fixed endpoint set onto the app.
func RegisterRoutes(app *fiber.App, api *API) {
	app.Get("/", api.root)
	app.Get("/api/health", api.health)

	app.Get("/api/markets", api.getMarkets)
	app.Get("/api/coins/:id/chart", api.getCoinChart)
	app.Get("/api/tickers/:id", api.getCoinTickers)

	app.Post("/api/admin/clear-cache", api.clearCache)
	app.Get("/api/admin/cache-stats", api.cacheStats)

	if api.metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(api.metrics.Handler()))
	}

	if strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))) == "dev" {
		app.Get("/debug/config", func(c *fiber.Ctx) error { return c.JSON(api.cfg) })
	}
}
