package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/papercomputeco/marksort/pkg/dotdir"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the MARKSORT_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (MARKSORT_API_LISTEN, MARKSORT_POLICY_SORT_FOLDERS, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	// 1. Register all defaults from NewDefaultConfig().
	setViperDefaults(v)

	// 2. Config file discovery via dotdir resolution.
	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// 3. Environment variables: MARKSORT_API_LISTEN, MARKSORT_STORAGE_SQLITE_PATH, etc.
	v.SetEnvPrefix("MARKSORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// FromViper materializes the resolved configuration held by v.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Version: v.GetInt("version"),
		Storage: StorageConfig{
			Provider:    v.GetString("storage.provider"),
			SQLitePath:  v.GetString("storage.sqlite_path"),
			PostgresDSN: v.GetString("storage.postgres_dsn"),
		},
		Tree: TreeConfig{
			Provider:      v.GetString("tree.provider"),
			BookmarksPath: v.GetString("tree.bookmarks_path"),
			Watch:         v.GetBool("tree.watch"),
		},
		Policy: PolicyConfig{
			SortFolders:        v.GetBool("policy.sort_folders"),
			SortUntitled:       v.GetBool("policy.sort_untitled"),
			SortTitled:         v.GetBool("policy.sort_titled"),
			SortFolderContents: v.GetBool("policy.sort_folder_contents"),
		},
		API: APIConfig{
			Listen: v.GetString("api.listen"),
			MCP:    v.GetBool("api.mcp"),
		},
		Visits: VisitsConfig{
			LogPath:      v.GetString("visits.log_path"),
			KafkaBrokers: v.GetString("visits.kafka_brokers"),
			KafkaTopic:   v.GetString("visits.kafka_topic"),
			KafkaGroup:   v.GetString("visits.kafka_group"),
			Workers:      v.GetUint("visits.workers"),
			QueueSize:    v.GetUint("visits.queue_size"),
		},
		Events: EventsConfig{
			Provider:     v.GetString("events.provider"),
			KafkaBrokers: v.GetString("events.kafka_brokers"),
			KafkaTopic:   v.GetString("events.kafka_topic"),
		},
	}
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Storage
	v.SetDefault("storage.provider", d.Storage.Provider)
	v.SetDefault("storage.sqlite_path", d.Storage.SQLitePath)
	v.SetDefault("storage.postgres_dsn", d.Storage.PostgresDSN)

	// Tree
	v.SetDefault("tree.provider", d.Tree.Provider)
	v.SetDefault("tree.bookmarks_path", d.Tree.BookmarksPath)
	v.SetDefault("tree.watch", d.Tree.Watch)

	// Policy
	v.SetDefault("policy.sort_folders", d.Policy.SortFolders)
	v.SetDefault("policy.sort_untitled", d.Policy.SortUntitled)
	v.SetDefault("policy.sort_titled", d.Policy.SortTitled)
	v.SetDefault("policy.sort_folder_contents", d.Policy.SortFolderContents)

	// API
	v.SetDefault("api.listen", d.API.Listen)
	v.SetDefault("api.mcp", d.API.MCP)

	// Visits
	v.SetDefault("visits.log_path", d.Visits.LogPath)
	v.SetDefault("visits.kafka_brokers", d.Visits.KafkaBrokers)
	v.SetDefault("visits.kafka_topic", d.Visits.KafkaTopic)
	v.SetDefault("visits.kafka_group", d.Visits.KafkaGroup)
	v.SetDefault("visits.workers", d.Visits.Workers)
	v.SetDefault("visits.queue_size", d.Visits.QueueSize)

	// Events
	v.SetDefault("events.provider", d.Events.Provider)
	v.SetDefault("events.kafka_brokers", d.Events.KafkaBrokers)
	v.SetDefault("events.kafka_topic", d.Events.KafkaTopic)
}
