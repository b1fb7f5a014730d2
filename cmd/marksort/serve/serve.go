// Package servecmder provides the serve command, which runs the API server,
// the MCP server and the visit consumers in one process.
package servecmder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/marksort/api"
	"github.com/papercomputeco/marksort/cmd/marksort/deps"
	"github.com/papercomputeco/marksort/pkg/config"
	"github.com/papercomputeco/marksort/pkg/service"
	"github.com/papercomputeco/marksort/pkg/visit"
)

type ServeCommander struct {
	debug   bool
	logFile string
	logger  *slog.Logger
}

const serveLongDesc string = `Run marksort services.

Starts the HTTP API (and the MCP server at /mcp), consumes visits from the
configured sources and keeps the tracked bookmark index current:

  --visit-log        tail a JSONL visit log (one {"url": ...} object or URL per line)
  --visit-brokers    consume visits from a Kafka topic
  --watch            rebuild the index when the Chrome Bookmarks file changes
  --events           publish reorder and visit events (none, kafka)

Reorder passes run on demand through POST /v1/reorder or the plan_reorder
MCP tool.`

const serveShortDesc string = "Run marksort services"

var serveFlags = deps.Groups(
	deps.StorageFlags,
	deps.TreeFlags,
	deps.PolicyFlags,
	deps.ServerFlags,
	deps.VisitFlags,
	deps.EventFlags,
)

// watcher is implemented by tree stores that can report external changes.
type watcher interface {
	Watch(ctx context.Context, onChange func()) error
}

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}
			return cmder.run(cmd)
		},
	}

	deps.AddFlags(cmd, serveFlags)
	cmd.Flags().StringVar(&cmder.logFile, "log-file", "", "Also write JSON logs to this file")

	return cmd
}

func (c *ServeCommander) run(cmd *cobra.Command) error {
	cfg, configDir, err := deps.LoadConfig(cmd, serveFlags)
	if err != nil {
		return err
	}

	var closeLog func() error
	c.logger, closeLog, err = deps.NewLogger(c.debug, c.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	stack, err := deps.Open(ctx, cfg, configDir, c.logger)
	if err != nil {
		return err
	}
	defer stack.Close()

	svc, err := stack.NewService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.RefreshIndex(ctx); err != nil {
		c.logger.Warn("failed to build bookmark index", "error", err)
	}

	apiServer, err := api.NewServer(api.Config{
		ListenAddr: cfg.API.Listen,
		Policy:     cfg.Policy.ReorderPolicy(),
		EnableMCP:  cfg.API.MCP,
	}, svc, c.logger.With("component", "api"))
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	sources, err := deps.VisitSources(cfg.Visits, c.logger)
	if err != nil {
		return fmt.Errorf("creating visit sources: %w", err)
	}

	// Consumers must be stopped before svc.Close closes the visit queue.
	var consumers sync.WaitGroup
	stopConsumers := sync.OnceFunc(func() {
		cancel()
		for _, src := range sources {
			if err := src.Close(); err != nil {
				c.logger.Warn("failed to close visit source", "error", err)
			}
		}
		consumers.Wait()
	})
	defer stopConsumers()

	// Channel to capture errors from goroutines
	errChan := make(chan error, len(sources)+2)

	// Start API server in goroutine
	go func() {
		if err := apiServer.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	for _, src := range sources {
		consumers.Add(1)
		go func() {
			defer consumers.Done()
			c.consume(ctx, svc, src, errChan)
		}()
	}

	if cfg.Tree.Watch {
		c.watch(ctx, cfg, stack, svc)
	}

	// Wait for interrupt signal, cancellation or error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err = <-errChan:
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", "signal", sig.String())
	case <-ctx.Done():
		c.logger.Info("context done, shutting down")
	}

	stopConsumers()
	if shutdownErr := apiServer.Shutdown(); shutdownErr != nil {
		c.logger.Warn("API server shutdown failed", "error", shutdownErr)
	}

	return err
}

func (c *ServeCommander) consume(ctx context.Context, svc *service.Service, src visit.Source, errChan chan<- error) {
	if err := svc.Consume(ctx, src); err != nil && !errors.Is(err, context.Canceled) {
		errChan <- fmt.Errorf("visit source error: %w", err)
	}
}

func (c *ServeCommander) watch(ctx context.Context, cfg *config.Config, stack *deps.Stack, svc *service.Service) {
	w, ok := stack.Tree.(watcher)
	if !ok {
		c.logger.Debug("tree store does not support watching", "provider", cfg.Tree.Provider)
		return
	}

	go func() {
		err := w.Watch(ctx, func() {
			if err := svc.RefreshIndex(ctx); err != nil {
				c.logger.Warn("failed to refresh bookmark index", "error", err)
				return
			}
			c.logger.Debug("bookmark index refreshed")
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			c.logger.Warn("bookmark watcher stopped", "error", err)
		}
	}()
}
