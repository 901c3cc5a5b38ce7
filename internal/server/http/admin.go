package httpserver

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"marketd/internal/cache"
)

func (a *API) root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "marketd market data gateway",
		"health":  "/api/health",
		"metrics": "/metrics",
	})
}

func (a *API) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"cache_stats": a.registry.Stats(),
	})
}

// clearCache resets one category, or all of them. Unknown names clear
// nothing and report zero.
func (a *API) clearCache(c *fiber.Ctx) error {
	logf := reqLogger(c)

	cacheType := c.Query("cache_type", cache.ClearAll)
	cleared := a.registry.Clear(cacheType)
	logf("admin clear-cache type=%s cleared=%d", cacheType, cleared)

	return c.JSON(fiber.Map{
		"message":    fmt.Sprintf("Cleared %d cache entries", cleared),
		"cache_type": cacheType,
		"cleared":    cleared,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *API) cacheStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"stats":     a.registry.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
