// Package configcmder provides the config command for managing persistent
// marksort configuration stored in the .marksort/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent marksort configuration.

Configuration is stored as config.toml in the .marksort/ directory and provides
default values for command flags. CLI flags and MARKSORT_* environment
variables always take precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  storage.provider, storage.sqlite_path, storage.postgres_dsn,
  tree.provider, tree.bookmarks_path, tree.watch,
  policy.sort_folders, policy.sort_untitled, policy.sort_titled,
  policy.sort_folder_contents,
  api.listen, api.mcp,
  visits.log_path, visits.kafka_brokers, visits.kafka_topic, visits.kafka_group,
  visits.workers, visits.queue_size,
  events.provider, events.kafka_brokers, events.kafka_topic

Use subcommands to get, set, or list configuration values:
  marksort config set <key> <value>    Set a configuration value
  marksort config get <key>            Get a configuration value
  marksort config list                 List all configuration values

Examples:
  marksort config set policy.sort_folders true
  marksort config set tree.bookmarks_path ~/.config/chromium/Default/Bookmarks
  marksort config get policy.sort_folder_contents
  marksort config list`

const configShortDesc string = "Manage persistent marksort configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
