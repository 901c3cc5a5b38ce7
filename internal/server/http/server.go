package httpserver

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"marketd/internal/config"
)

// Server wraps Fiber app and configuration.
type Server struct {
	app *fiber.App
	cfg *config.Config
}

// New builds a Fiber server with common middlewares.
func New(cfg *config.Config, api *API) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "marketd",
		ReadTimeout:  time.Duration(cfg.Gateway.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Gateway.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.Gateway.IdleTimeoutSec) * time.Second,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.Origins,
		AllowMethods: "GET,POST",
	}))

	RegisterRoutes(app, api)

	return &Server{app: app, cfg: cfg}
}

// Start runs Fiber server and handles graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	addr := s.cfg.Gateway.Addr()
	log.Printf("[marketd] listening on %s", addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(addr)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.Gateway.ShutdownTimeoutSec)*time.Second)
		defer cancel()
		return s.app.ShutdownWithContext(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
