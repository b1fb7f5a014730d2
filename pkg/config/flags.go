package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline. This prevents flag drift
// when the same logical flag appears on multiple commands (e.g., --sqlite
// on "marksort serve", "marksort reorder" and "marksort stats").
type Flag struct {
	// Name is the long flag name (e.g. "sqlite").
	Name string

	// Shorthand is the one-letter short flag (e.g. "s"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "storage.sqlite_path").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of flag names to Flag structs that hold their name,
// shorthand, viper key, etc.
type FlagSet map[string]Flag

// Flag registry keys.
// Use these constants when calling AddStringFlag, AddUintFlag, AddBoolFlag
// and BindRegisteredFlags to avoid typos or drift from one command to another.
const (
	FlagStorageProvider = "storage"
	FlagSQLite          = "sqlite"
	FlagPostgresDSN     = "postgres-dsn"

	FlagTreeProvider = "tree"
	FlagBookmarks    = "bookmarks"
	FlagWatch        = "watch"

	FlagSortFolders        = "sort-folders"
	FlagSortUntitled       = "sort-untitled"
	FlagSortTitled         = "sort-titled"
	FlagSortFolderContents = "sort-folder-contents"

	FlagAPIListen = "listen"
	FlagMCP       = "mcp"

	FlagVisitLog     = "visit-log"
	FlagVisitBrokers = "visit-brokers"
	FlagVisitTopic   = "visit-topic"
	FlagVisitGroup   = "visit-group"
	FlagWorkers      = "workers"
	FlagQueueSize    = "queue-size"

	FlagEventsProvider = "events"
	FlagEventsBrokers  = "events-brokers"
	FlagEventsTopic    = "events-topic"
)

// Flags is the registry shared by every marksort command.
var Flags = FlagSet{
	FlagStorageProvider: {Name: "storage", ViperKey: "storage.provider", Description: "Usage table storage (sqlite, postgres, memory)"},
	FlagSQLite:          {Name: "sqlite", Shorthand: "s", ViperKey: "storage.sqlite_path", Description: "Path to the SQLite database (default: <config-dir>/marksort.sqlite)"},
	FlagPostgresDSN:     {Name: "postgres-dsn", ViperKey: "storage.postgres_dsn", Description: "PostgreSQL connection string"},

	FlagTreeProvider: {Name: "tree", ViperKey: "tree.provider", Description: "Bookmark tree store (chrome, memory)"},
	FlagBookmarks:    {Name: "bookmarks", Shorthand: "b", ViperKey: "tree.bookmarks_path", Description: "Path to the Chrome Bookmarks file"},
	FlagWatch:        {Name: "watch", ViperKey: "tree.watch", Description: "Refresh the usage index when the bookmarks file changes"},

	FlagSortFolders:        {Name: "sort-folders", ViperKey: "policy.sort_folders", Description: "Reorder folders"},
	FlagSortUntitled:       {Name: "sort-untitled", ViperKey: "policy.sort_untitled", Description: "Reorder bookmarks without a title"},
	FlagSortTitled:         {Name: "sort-titled", ViperKey: "policy.sort_titled", Description: "Reorder bookmarks with a title"},
	FlagSortFolderContents: {Name: "sort-folder-contents", ViperKey: "policy.sort_folder_contents", Description: "Reorder inside nested folders"},

	FlagAPIListen: {Name: "listen", Shorthand: "l", ViperKey: "api.listen", Description: "Address for the API server to listen on"},
	FlagMCP:       {Name: "mcp", ViperKey: "api.mcp", Description: "Mount the MCP server at /mcp"},

	FlagVisitLog:     {Name: "visit-log", ViperKey: "visits.log_path", Description: "JSONL visit log to tail"},
	FlagVisitBrokers: {Name: "visit-brokers", ViperKey: "visits.kafka_brokers", Description: "Comma separated Kafka brokers to consume visits from"},
	FlagVisitTopic:   {Name: "visit-topic", ViperKey: "visits.kafka_topic", Description: "Kafka topic carrying visits"},
	FlagVisitGroup:   {Name: "visit-group", ViperKey: "visits.kafka_group", Description: "Kafka consumer group for visits"},
	FlagWorkers:      {Name: "workers", ViperKey: "visits.workers", Description: "Number of visit workers"},
	FlagQueueSize:    {Name: "queue-size", ViperKey: "visits.queue_size", Description: "Visit queue capacity"},

	FlagEventsProvider: {Name: "events", ViperKey: "events.provider", Description: "Event stream (none, kafka)"},
	FlagEventsBrokers:  {Name: "events-brokers", ViperKey: "events.kafka_brokers", Description: "Comma separated Kafka brokers to publish events to"},
	FlagEventsTopic:    {Name: "events-topic", ViperKey: "events.kafka_topic", Description: "Kafka topic for events"},
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddUintFlag registers a uint flag on cmd from the given FlagSet.
func AddUintFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *uint) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaultUint(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().UintVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().UintVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddBoolFlag registers a bool flag on cmd from the given FlagSet.
func AddBoolFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *bool) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	defaultVal := defaultBool(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().BoolVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().BoolVar(target, def.Name, defaultVal, def.Description)
	}
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

// defaultString returns the default string value for a viper key from NewDefaultConfig.
func defaultString(viperKey string) string {
	v := viper.New()
	setViperDefaults(v)
	return v.GetString(viperKey)
}

// defaultUint returns the default uint value for a viper key from NewDefaultConfig.
func defaultUint(viperKey string) uint {
	v := viper.New()
	setViperDefaults(v)
	return v.GetUint(viperKey)
}

// defaultBool returns the default bool value for a viper key from NewDefaultConfig.
func defaultBool(viperKey string) bool {
	v := viper.New()
	setViperDefaults(v)
	return v.GetBool(viperKey)
}
