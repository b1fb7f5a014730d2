// Package statscmder provides the stats command, which lists the most used
// bookmarks.
package statscmder

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/marksort/cmd/marksort/deps"
	"github.com/papercomputeco/marksort/pkg/cliui"
	"github.com/papercomputeco/marksort/pkg/dotdir"
	"github.com/papercomputeco/marksort/pkg/usage"
)

type StatsCommander struct {
	limit   int
	jsonOut bool
	debug   bool
}

const statsLongDesc string = `Show the most used bookmarks.

Lists the usage table, highest count first, along with a summary of the
last reorder pass run from this machine.

Examples:
  marksort stats
  marksort stats --limit 50
  marksort stats --json`

const statsShortDesc string = "Show the most used bookmarks"

func NewStatsCmd() *cobra.Command {
	cmder := &StatsCommander{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: statsShortDesc,
		Long:  statsLongDesc,
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

	deps.AddFlags(cmd, deps.StorageFlags)
	cmd.Flags().IntVarP(&cmder.limit, "limit", "n", 20, "Maximum number of bookmarks to show (0 for all)")
	cmd.Flags().BoolVar(&cmder.jsonOut, "json", false, "Print the entries as JSON")

	return cmd
}

func (c *StatsCommander) run(cmd *cobra.Command) error {
	cfg, configDir, err := deps.LoadConfig(cmd, deps.StorageFlags)
	if err != nil {
		return err
	}

	logger, closeLog, err := deps.NewLogger(c.debug, "")
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := cmd.Context()

	driver, err := deps.OpenKV(ctx, cfg.Storage, configDir, logger)
	if err != nil {
		return err
	}
	defer driver.Close()

	table, err := usage.LoadTable(ctx, driver)
	if err != nil {
		return fmt.Errorf("loading usage table: %w", err)
	}
	entries := table.Top(c.limit)

	w := cmd.OutOrStdout()
	if c.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	rendered, err := cliui.RenderMarkdown(cliui.StatsMarkdown(entries))
	if err != nil {
		return err
	}
	fmt.Fprint(w, rendered)

	pass, err := dotdir.NewManager().LoadLastPass(configDir)
	if err != nil {
		logger.Warn("failed to load last pass", "error", err)
		return nil
	}
	printLastPass(w, pass)

	return nil
}

func printLastPass(w io.Writer, pass *dotdir.LastPass) {
	if pass == nil {
		fmt.Fprintf(w, "  %s\n\n", cliui.DimStyle.Render("No reorder pass recorded yet."))
		return
	}

	kind := "reorder"
	if pass.DryRun {
		kind = "dry run"
	}

	fmt.Fprintf(w, "  %s %s %s\n\n",
		cliui.KeyStyle.Render("Last "+kind+":"),
		cliui.ValueStyle.Render(pass.FinishedAt.Local().Format("2006-01-02 15:04")),
		cliui.DimStyle.Render(fmt.Sprintf("(%d moves, %d failed, %d folders)", pass.Moves, pass.Failed, pass.Folders)),
	)
}
