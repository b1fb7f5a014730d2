// Package reordercmder provides the reorder command, which runs a single
// reorder pass over the bookmark tree.
package reordercmder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/marksort/cmd/marksort/deps"
	"github.com/papercomputeco/marksort/pkg/cliui"
	"github.com/papercomputeco/marksort/pkg/dotdir"
	"github.com/papercomputeco/marksort/pkg/reorder"
)

type ReorderCommander struct {
	dryRun    bool
	jsonOut   bool
	debug     bool
	configDir string
}

const reorderLongDesc string = `Reorder the bookmark tree by usage.

Loads the usage table, fetches the bookmark tree and moves the most used
items to the front of every folder the policy allows. Items directly under
the root (the bookmarks bar, other bookmarks, mobile bookmarks) are never moved.

Chrome keeps the bookmark tree in memory while it runs, so close the browser
before reordering its Bookmarks file.

Examples:
  marksort reorder
  marksort reorder --dry-run
  marksort reorder --sort-folders --sort-folder-contents`

const reorderShortDesc string = "Reorder bookmarks by usage"

var reorderFlags = deps.Groups(deps.StorageFlags, deps.TreeFlags, deps.PolicyFlags, deps.EventFlags)

func NewReorderCmd() *cobra.Command {
	cmder := &ReorderCommander{}

	cmd := &cobra.Command{
		Use:   "reorder",
		Short: reorderShortDesc,
		Long:  reorderLongDesc,
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

	deps.AddFlags(cmd, reorderFlags)
	cmd.Flags().BoolVar(&cmder.dryRun, "dry-run", false, "Show the moves without applying them")
	cmd.Flags().BoolVar(&cmder.jsonOut, "json", false, "Print the pass report as JSON")

	return cmd
}

func (c *ReorderCommander) run(cmd *cobra.Command) error {
	cfg, configDir, err := deps.LoadConfig(cmd, reorderFlags)
	if err != nil {
		return err
	}
	c.configDir = configDir

	logger, closeLog, err := deps.NewLogger(c.debug, "")
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := cmd.Context()

	stack, err := deps.Open(ctx, cfg, configDir, logger)
	if err != nil {
		return err
	}
	defer stack.Close()

	svc, err := stack.NewService()
	if err != nil {
		return err
	}
	defer svc.Close()

	policy := cfg.Policy.ReorderPolicy()
	pass := func(ctx context.Context) (*reorder.Report, error) {
		if c.dryRun {
			return svc.PlanReorder(ctx, policy)
		}
		return svc.RunReorder(ctx, policy)
	}

	msg := "Reordering bookmarks"
	if c.dryRun {
		msg = "Planning reorder"
	}

	var report *reorder.Report
	err = cliui.Step(cmd.ErrOrStderr(), msg, func() error {
		var err error
		report, err = pass(ctx)
		return err
	})
	if err != nil {
		return err
	}

	if err := c.saveLastPass(report); err != nil {
		logger.Warn("failed to save last pass", "error", err)
	}

	return c.print(cmd.OutOrStdout(), report)
}

func (c *ReorderCommander) saveLastPass(report *reorder.Report) error {
	return dotdir.NewManager().SaveLastPass(&dotdir.LastPass{
		FinishedAt: time.Now().UTC(),
		DryRun:     c.dryRun,
		Folders:    report.Folders,
		Moves:      len(report.Moves),
		Suppressed: len(report.Suppressed),
		Failed:     len(report.Failed),
		Missing:    len(report.Missing),
	}, c.configDir)
}

func (c *ReorderCommander) print(w io.Writer, report *reorder.Report) error {
	if c.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	rendered, err := cliui.RenderMarkdown(cliui.ReportMarkdown(report, c.dryRun))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, rendered)
	return err
}
