package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Config represents the persistent marksort configuration stored as
// config.toml in the .marksort/ directory. The TOML layout uses sections for
// logical grouping.
type Config struct {
	Version int           `toml:"version"`
	Storage StorageConfig `toml:"storage"`
	Tree    TreeConfig    `toml:"tree"`
	Policy  PolicyConfig  `toml:"policy"`
	API     APIConfig     `toml:"api"`
	Visits  VisitsConfig  `toml:"visits"`
	Events  EventsConfig  `toml:"events"`
}

// StorageConfig selects where the usage table is persisted.
type StorageConfig struct {
	// Provider is one of "sqlite", "postgres" or "memory".
	Provider    string `toml:"provider,omitempty"`
	SQLitePath  string `toml:"sqlite_path,omitempty"`
	PostgresDSN string `toml:"postgres_dsn,omitempty"`
}

// TreeConfig selects the bookmark tree store.
type TreeConfig struct {
	// Provider is one of "chrome" or "memory".
	Provider string `toml:"provider,omitempty"`

	// BookmarksPath is the Chrome "Bookmarks" file. Empty resolves the
	// default profile location for the current platform.
	BookmarksPath string `toml:"bookmarks_path,omitempty"`

	// Watch refreshes the usage index when the bookmarks file changes.
	Watch bool `toml:"watch"`
}

// PolicyConfig holds the reorder inclusion flags. The fields carry no
// omitempty so that a saved false is not replaced by a true default on load.
type PolicyConfig struct {
	SortFolders        bool `toml:"sort_folders"`
	SortUntitled       bool `toml:"sort_untitled"`
	SortTitled         bool `toml:"sort_titled"`
	SortFolderContents bool `toml:"sort_folder_contents"`
}

// APIConfig holds API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
	MCP    bool   `toml:"mcp"`
}

// VisitsConfig configures the visit sources consumed by "marksort serve".
type VisitsConfig struct {
	// LogPath is a JSONL visit log to tail. Empty disables the log source.
	LogPath string `toml:"log_path,omitempty"`

	// KafkaBrokers is a comma separated broker list. Empty disables the
	// Kafka source.
	KafkaBrokers string `toml:"kafka_brokers,omitempty"`
	KafkaTopic   string `toml:"kafka_topic,omitempty"`
	KafkaGroup   string `toml:"kafka_group,omitempty"`

	Workers   uint `toml:"workers,omitempty"`
	QueueSize uint `toml:"queue_size,omitempty"`
}

// EventsConfig configures the outbound event stream.
type EventsConfig struct {
	// Provider is one of "none" or "kafka".
	Provider     string `toml:"provider,omitempty"`
	KafkaBrokers string `toml:"kafka_brokers,omitempty"`
	KafkaTopic   string `toml:"kafka_topic,omitempty"`
}

// SplitList splits a comma separated list, dropping empty entries.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func stringKey(field func(c *Config) *string) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string { return *field(c) },
		set: func(c *Config, v string) error { *field(c) = v; return nil },
	}
}

func boolKey(name string, field func(c *Config) *bool) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string { return strconv.FormatBool(*field(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", name, err)
			}
			*field(c) = b
			return nil
		},
	}
}

func uintKey(name string, field func(c *Config) *uint) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string {
			if *field(c) == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(*field(c)), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", name, err)
			}
			*field(c) = uint(n)
			return nil
		},
	}
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"storage.provider":     stringKey(func(c *Config) *string { return &c.Storage.Provider }),
	"storage.sqlite_path":  stringKey(func(c *Config) *string { return &c.Storage.SQLitePath }),
	"storage.postgres_dsn": stringKey(func(c *Config) *string { return &c.Storage.PostgresDSN }),

	"tree.provider":       stringKey(func(c *Config) *string { return &c.Tree.Provider }),
	"tree.bookmarks_path": stringKey(func(c *Config) *string { return &c.Tree.BookmarksPath }),
	"tree.watch":          boolKey("tree.watch", func(c *Config) *bool { return &c.Tree.Watch }),

	"policy.sort_folders":         boolKey("policy.sort_folders", func(c *Config) *bool { return &c.Policy.SortFolders }),
	"policy.sort_untitled":        boolKey("policy.sort_untitled", func(c *Config) *bool { return &c.Policy.SortUntitled }),
	"policy.sort_titled":          boolKey("policy.sort_titled", func(c *Config) *bool { return &c.Policy.SortTitled }),
	"policy.sort_folder_contents": boolKey("policy.sort_folder_contents", func(c *Config) *bool { return &c.Policy.SortFolderContents }),

	"api.listen": stringKey(func(c *Config) *string { return &c.API.Listen }),
	"api.mcp":    boolKey("api.mcp", func(c *Config) *bool { return &c.API.MCP }),

	"visits.log_path":      stringKey(func(c *Config) *string { return &c.Visits.LogPath }),
	"visits.kafka_brokers": stringKey(func(c *Config) *string { return &c.Visits.KafkaBrokers }),
	"visits.kafka_topic":   stringKey(func(c *Config) *string { return &c.Visits.KafkaTopic }),
	"visits.kafka_group":   stringKey(func(c *Config) *string { return &c.Visits.KafkaGroup }),
	"visits.workers":       uintKey("visits.workers", func(c *Config) *uint { return &c.Visits.Workers }),
	"visits.queue_size":    uintKey("visits.queue_size", func(c *Config) *uint { return &c.Visits.QueueSize }),

	"events.provider":      stringKey(func(c *Config) *string { return &c.Events.Provider }),
	"events.kafka_brokers": stringKey(func(c *Config) *string { return &c.Events.KafkaBrokers }),
	"events.kafka_topic":   stringKey(func(c *Config) *string { return &c.Events.KafkaTopic }),
}
