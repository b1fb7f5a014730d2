// Package deps opens the storage, bookmark tree, event stream and visit
// sources a resolved config names, and builds the service over them.
package deps

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/papercomputeco/marksort/cmd/marksort/sqlitepath"
	"github.com/papercomputeco/marksort/pkg/bookmark"
	"github.com/papercomputeco/marksort/pkg/config"
	"github.com/papercomputeco/marksort/pkg/eventstream"
	eventkafka "github.com/papercomputeco/marksort/pkg/eventstream/kafka"
	"github.com/papercomputeco/marksort/pkg/eventstream/nop"
	"github.com/papercomputeco/marksort/pkg/kv"
	kvinmemory "github.com/papercomputeco/marksort/pkg/kv/inmemory"
	"github.com/papercomputeco/marksort/pkg/kv/postgres"
	"github.com/papercomputeco/marksort/pkg/kv/sqlite"
	"github.com/papercomputeco/marksort/pkg/service"
	"github.com/papercomputeco/marksort/pkg/treestore"
	"github.com/papercomputeco/marksort/pkg/treestore/chrome"
	treeinmemory "github.com/papercomputeco/marksort/pkg/treestore/inmemory"
	"github.com/papercomputeco/marksort/pkg/visit"
	visitkafka "github.com/papercomputeco/marksort/pkg/visit/kafka"
	"github.com/papercomputeco/marksort/pkg/visit/logtail"
)

// Stack holds the collaborators opened for one command invocation.
type Stack struct {
	KV        kv.Driver
	Tree      treestore.Store
	Publisher eventstream.Publisher
	Logger    *slog.Logger

	config *config.Config
}

// Open opens every collaborator named by cfg. configDir is the --config-dir
// override used to place the default SQLite database.
func Open(ctx context.Context, cfg *config.Config, configDir string, logger *slog.Logger) (*Stack, error) {
	driver, err := OpenKV(ctx, cfg.Storage, configDir, logger)
	if err != nil {
		return nil, err
	}

	tree, err := OpenTree(cfg.Tree, logger)
	if err != nil {
		_ = driver.Close()
		return nil, err
	}

	publisher, err := OpenPublisher(cfg.Events)
	if err != nil {
		_ = driver.Close()
		_ = tree.Close()
		return nil, err
	}

	return &Stack{
		KV:        driver,
		Tree:      tree,
		Publisher: publisher,
		Logger:    logger,
		config:    cfg,
	}, nil
}

// NewService builds a service over the stack.
func (s *Stack) NewService() (*service.Service, error) {
	return service.New(service.Config{
		KV:        s.KV,
		Tree:      s.Tree,
		Publisher: s.Publisher,
		Workers:   s.config.Visits.Workers,
		QueueSize: s.config.Visits.QueueSize,
		Logger:    s.Logger,
	})
}

// Close closes every collaborator, returning their joined errors.
func (s *Stack) Close() error {
	return errors.Join(s.Publisher.Close(), s.Tree.Close(), s.KV.Close())
}

// OpenKV opens the usage table storage.
func OpenKV(ctx context.Context, c config.StorageConfig, configDir string, logger *slog.Logger) (kv.Driver, error) {
	switch c.Provider {
	case "sqlite", "":
		path, err := sqlitepath.ResolveSQLitePath(c.SQLitePath, configDir)
		if err != nil {
			return nil, fmt.Errorf("resolving sqlite path: %w", err)
		}
		driver, err := sqlite.NewDriver(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite driver: %w", err)
		}
		logger.Debug("using SQLite storage", "path", path)
		return driver, nil

	case "postgres":
		if c.PostgresDSN == "" {
			return nil, errors.New("storage.postgres_dsn is required for the postgres provider")
		}
		driver, err := postgres.NewDriver(ctx, c.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL driver: %w", err)
		}
		logger.Debug("using PostgreSQL storage")
		return driver, nil

	case "memory":
		logger.Debug("using in-memory storage")
		return kvinmemory.NewDriver(), nil

	default:
		return nil, fmt.Errorf("unknown storage provider %q (available: sqlite, postgres, memory)", c.Provider)
	}
}

// OpenTree opens the bookmark tree store.
func OpenTree(c config.TreeConfig, logger *slog.Logger) (treestore.Store, error) {
	switch c.Provider {
	case "chrome", "":
		path := c.BookmarksPath
		if path == "" {
			var err error
			path, err = chrome.DefaultPath()
			if err != nil {
				return nil, err
			}
		}
		store, err := chrome.NewStore(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("using Chrome bookmarks", "path", path)
		return store, nil

	case "memory":
		logger.Debug("using in-memory bookmark tree")
		return treeinmemory.NewStore(EmptyTree()), nil

	default:
		return nil, fmt.Errorf("unknown tree provider %q (available: chrome, memory)", c.Provider)
	}
}

// EmptyTree is the Chrome-shaped tree the memory provider starts from.
func EmptyTree() *bookmark.Node {
	return bookmark.NewFolder(bookmark.RootID, "",
		bookmark.NewFolder("1", "Bookmarks bar"),
		bookmark.NewFolder("2", "Other bookmarks"),
	)
}

// OpenPublisher opens the outbound event stream.
func OpenPublisher(c config.EventsConfig) (eventstream.Publisher, error) {
	switch c.Provider {
	case "none", "":
		return nop.NewPublisher(), nil

	case "kafka":
		publisher, err := eventkafka.NewPublisher(eventkafka.Config{
			Brokers: config.SplitList(c.KafkaBrokers),
			Topic:   c.KafkaTopic,
		})
		if err != nil {
			return nil, fmt.Errorf("creating kafka publisher: %w", err)
		}
		return publisher, nil

	default:
		return nil, fmt.Errorf("unknown events provider %q (available: none, kafka)", c.Provider)
	}
}

// VisitSources opens the visit sources enabled in c. It returns no sources
// when neither a log path nor Kafka brokers are configured.
func VisitSources(c config.VisitsConfig, logger *slog.Logger) ([]visit.Source, error) {
	var sources []visit.Source

	if c.LogPath != "" {
		src, err := logtail.NewSource(logtail.Config{
			Path:   c.LogPath,
			Logger: logger.With("source", "logtail"),
		})
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}

	if brokers := config.SplitList(c.KafkaBrokers); len(brokers) > 0 {
		src, err := visitkafka.NewSource(visitkafka.Config{
			Brokers: brokers,
			Topic:   c.KafkaTopic,
			GroupID: c.KafkaGroup,
			Logger:  logger.With("source", "kafka"),
		})
		if err != nil {
			for _, s := range sources {
				_ = s.Close()
			}
			return nil, err
		}
		sources = append(sources, src)
	}

	return sources, nil
}
