// Package marksortcmder
package marksortcmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/papercomputeco/marksort/cmd/marksort/config"
	reordercmder "github.com/papercomputeco/marksort/cmd/marksort/reorder"
	servecmder "github.com/papercomputeco/marksort/cmd/marksort/serve"
	statscmder "github.com/papercomputeco/marksort/cmd/marksort/stats"
	versioncmder "github.com/papercomputeco/marksort/cmd/marksort/version"
	visitcmder "github.com/papercomputeco/marksort/cmd/marksort/visit"
	"github.com/papercomputeco/marksort/pkg/cliui"
)

const marksortLongDesc string = `marksort orders your bookmarks by how often you use them.

Visits are counted against the bookmarks they match, and a reorder pass moves
the most used bookmarks (and, optionally, folders) to the front of each folder.

Run services using:
  marksort serve             Run the API, MCP server and visit consumers
  marksort reorder           Reorder the bookmark tree once
  marksort reorder --dry-run Show the moves a pass would make
  marksort visit <url>       Record a visit
  marksort stats             Show the most used bookmarks`

const marksortShortDesc string = "marksort - usage-ranked bookmarks"

func NewMarksortCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "marksort",
		Short:        marksortShortDesc,
		Long:         marksortLongDesc,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			noColor, _ := cmd.Flags().GetBool("no-color")
			cliui.ConfigureColor(cmd.OutOrStdout(), noColor)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .marksort/ config directory")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(reordercmder.NewReorderCmd())
	cmd.AddCommand(visitcmder.NewVisitCmd())
	cmd.AddCommand(statscmder.NewStatsCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
