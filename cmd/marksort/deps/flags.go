package deps

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/marksort/pkg/config"
)

// Flag groups shared by the commands.
var (
	StorageFlags = []string{config.FlagStorageProvider, config.FlagSQLite, config.FlagPostgresDSN}
	TreeFlags    = []string{config.FlagTreeProvider, config.FlagBookmarks}
	PolicyFlags  = []string{
		config.FlagSortFolders,
		config.FlagSortUntitled,
		config.FlagSortTitled,
		config.FlagSortFolderContents,
	}
	EventFlags = []string{config.FlagEventsProvider, config.FlagEventsBrokers, config.FlagEventsTopic}
	VisitFlags = []string{
		config.FlagVisitLog,
		config.FlagVisitBrokers,
		config.FlagVisitTopic,
		config.FlagVisitGroup,
		config.FlagWorkers,
		config.FlagQueueSize,
	}
	ServerFlags = []string{config.FlagAPIListen, config.FlagMCP, config.FlagWatch}
)

var (
	boolFlags = map[string]bool{
		config.FlagWatch:              true,
		config.FlagMCP:                true,
		config.FlagSortFolders:        true,
		config.FlagSortUntitled:       true,
		config.FlagSortTitled:         true,
		config.FlagSortFolderContents: true,
	}
	uintFlags = map[string]bool{
		config.FlagWorkers:   true,
		config.FlagQueueSize: true,
	}
)

// Groups concatenates flag groups.
func Groups(groups ...[]string) []string {
	var keys []string
	for _, g := range groups {
		keys = append(keys, g...)
	}
	return keys
}

// AddFlags registers the registry flags named by keys on cmd. Their values
// are read back through viper by LoadConfig.
func AddFlags(cmd *cobra.Command, keys []string) {
	for _, key := range keys {
		switch {
		case boolFlags[key]:
			config.AddBoolFlag(cmd, config.Flags, key, new(bool))
		case uintFlags[key]:
			config.AddUintFlag(cmd, config.Flags, key, new(uint))
		default:
			config.AddStringFlag(cmd, config.Flags, key, new(string))
		}
	}
}

// LoadConfig resolves the config for cmd with flag > env > file > default
// precedence. It returns the config and the --config-dir override.
func LoadConfig(cmd *cobra.Command, keys []string) (*config.Config, string, error) {
	configDir, _ := cmd.Flags().GetString("config-dir")

	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", err)
	}

	config.BindRegisteredFlags(v, cmd, config.Flags, keys)

	return config.FromViper(v), configDir, nil
}
