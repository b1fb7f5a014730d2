// Package mcp provides an MCP (Model Context Protocol) server that lets agents
// inspect bookmark usage, preview reorder passes and report visits.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/marksort/pkg/reorder"
	"github.com/papercomputeco/marksort/pkg/usage"
	"github.com/papercomputeco/marksort/pkg/utils"
)

// Service is the subset of marksort operations exposed as MCP tools.
type Service interface {
	PlanReorder(ctx context.Context, policy reorder.Policy) (*reorder.Report, error)
	RecordVisit(ctx context.Context, url string) bool
	Stats(ctx context.Context, limit int) ([]usage.Entry, error)
}

type Config struct {
	// Service runs the tool operations.
	Service Service

	// Policy fills in flags a plan_reorder call leaves unset.
	Policy reorder.Policy

	// Noop for empty MCP server
	Noop bool

	// Logger is the configured slog logger
	Logger *slog.Logger
}

type Server struct {
	config    Config
	mcpServer *mcp.Server
	handler   *mcp.StreamableHTTPHandler
}

// NewServer creates a new MCP server with the marksort tools.
func NewServer(c Config) (*Server, error) {
	s := &Server{
		config: c,
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "marksort",
			Version: utils.Version,
		},
		&mcp.ServerOptions{},
	)

	if !c.Noop {
		if c.Service == nil {
			return nil, errors.New("service is required")
		}
		if c.Logger == nil {
			return nil, errors.New("logger is required")
		}

		mcp.AddTool(mcpServer, &mcp.Tool{
			Name:        usageStatsToolName,
			Description: usageStatsDescription,
		}, s.handleUsageStats)

		mcp.AddTool(mcpServer, &mcp.Tool{
			Name:        planReorderToolName,
			Description: planReorderDescription,
		}, s.handlePlanReorder)

		mcp.AddTool(mcpServer, &mcp.Tool{
			Name:        recordVisitToolName,
			Description: recordVisitDescription,
		}, s.handleRecordVisit)
	}

	s.mcpServer = mcpServer

	// Create a streamable HTTP net/http handler for stateless operations
	s.handler = mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server {
			return mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Stateless: true,
		},
	)

	return s, nil
}

// Handler returns the HTTP handler for the MCP server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// MCPServer returns the underlying SDK server, for in-process transports.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcpServer
}
