package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/marksort/api/mcp"
	"github.com/papercomputeco/marksort/pkg/bookmark"
	"github.com/papercomputeco/marksort/pkg/reorder"
	"github.com/papercomputeco/marksort/pkg/usage"
)

// Service is the set of marksort operations the API exposes.
type Service interface {
	RunReorder(ctx context.Context, policy reorder.Policy) (*reorder.Report, error)
	PlanReorder(ctx context.Context, policy reorder.Policy) (*reorder.Report, error)
	RecordVisit(ctx context.Context, url string) bool
	Stats(ctx context.Context, limit int) ([]usage.Entry, error)
	Tree(ctx context.Context) (*bookmark.Node, error)
}

// Server is the API server for managing and querying marksort
type Server struct {
	config Config
	svc    Service
	logger *slog.Logger
	app    *fiber.App
}

// NewServer creates a new API server.
// The service is injected so the server shares the worker pool and the
// reorder lock with any visit sources running in the same process.
func NewServer(config Config, svc Service, logger *slog.Logger) (*Server, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config: config,
		svc:    svc,
		logger: logger,
		app:    app,
	}

	app.Get("/ping", s.handlePing)

	v1 := app.Group("/v1")
	v1.Get("/stats", s.handleStats)
	v1.Get("/tree", s.handleTree)
	v1.Post("/visits", s.handleRecordVisit)
	v1.Post("/reorder", s.handleReorder)
	v1.Post("/reorder/plan", s.handlePlanReorder)

	if config.EnableMCP {
		mcpServer, err := mcp.NewServer(mcp.Config{
			Service: svc,
			Policy:  config.Policy,
			Logger:  logger.With("component", "mcp"),
		})
		if err != nil {
			return nil, fmt.Errorf("creating MCP server: %w", err)
		}
		app.All("/mcp", adaptor.HTTPHandler(mcpServer.Handler()))
	}

	return s, nil
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		"listen", s.config.ListenAddr,
		"mcp", s.config.EnableMCP,
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
