// Package visitcmder provides the visit command, which records page visits
// against the tracked bookmarks.
package visitcmder

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/marksort/cmd/marksort/deps"
	"github.com/papercomputeco/marksort/pkg/cliui"
	"github.com/papercomputeco/marksort/pkg/eventstream"
)

// sourceCLI tags visits recorded by this command.
const sourceCLI = "cli"

type VisitCommander struct {
	debug bool
}

const visitLongDesc string = `Record one or more page visits.

Each URL is matched against every tracked bookmark: a bookmark matches when
the visited URL, without its scheme and a leading "www.", starts with the
bookmark's URL normalized the same way. Every matching bookmark's count is
incremented by one. URLs that match nothing are ignored.

Examples:
  marksort visit https://www.example.com/docs/intro
  marksort visit https://mail.example.com https://news.example.com`

const visitShortDesc string = "Record page visits"

var visitFlags = deps.Groups(deps.StorageFlags, deps.TreeFlags, deps.EventFlags)

func NewVisitCmd() *cobra.Command {
	cmder := &VisitCommander{}

	cmd := &cobra.Command{
		Use:   "visit <url>...",
		Short: visitShortDesc,
		Long:  visitLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}
			return cmder.run(cmd, args)
		},
	}

	deps.AddFlags(cmd, visitFlags)

	return cmd
}

func (c *VisitCommander) run(cmd *cobra.Command, urls []string) error {
	cfg, configDir, err := deps.LoadConfig(cmd, visitFlags)
	if err != nil {
		return err
	}

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

	w := cmd.OutOrStdout()
	for _, url := range urls {
		visitedAt := time.Now().UTC()
		matched := svc.RecordVisitSync(ctx, url)

		if len(matched) == 0 {
			fmt.Fprintf(w, "  %s %s %s\n", cliui.DimStyle.Render("-"), url, cliui.DimStyle.Render("(no matching bookmarks)"))
			continue
		}

		fmt.Fprintf(w, "  %s %s %s\n", cliui.SuccessMark, url,
			cliui.StepStyle.Render(fmt.Sprintf("(%d bookmarks)", len(matched))))
		for _, identity := range matched {
			fmt.Fprintf(w, "      %s\n", cliui.DimStyle.Render(identity))
		}

		event := eventstream.NewVisitRecordedEvent(url, sourceCLI, visitedAt, matched)
		if err := stack.Publisher.PublishVisit(ctx, event); err != nil {
			logger.Warn("failed to publish visit event", "url", url, "error", err)
		}
	}

	return nil
}
