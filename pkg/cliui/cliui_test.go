package cliui_test

import (
	"bytes"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/marksort/pkg/cliui"
	"github.com/papercomputeco/marksort/pkg/reorder"
	"github.com/papercomputeco/marksort/pkg/usage"
)

var _ = Describe("cliui", func() {
	BeforeEach(func() {
		Expect(cliui.ConfigureColor(&bytes.Buffer{}, true)).To(Equal(termenv.Ascii))
	})

	Describe("FormatDuration", func() {
		It("uses milliseconds below a second", func() {
			Expect(cliui.FormatDuration(12 * time.Millisecond)).To(Equal("12ms"))
		})

		It("uses seconds above a second", func() {
			Expect(cliui.FormatDuration(3200 * time.Millisecond)).To(Equal("3.2s"))
		})
	})

	Describe("Step", func() {
		It("prints the message with a success mark", func() {
			var buf bytes.Buffer
			err := cliui.Step(&buf, "Reordering", func() error { return nil })
			Expect(err).NotTo(HaveOccurred())
			Expect(buf.String()).To(ContainSubstring("✓ Reordering"))
		})

		It("returns the function error with a failure mark", func() {
			var buf bytes.Buffer
			boom := errors.New("boom")
			Expect(cliui.Step(&buf, "Reordering", func() error { return boom })).To(MatchError(boom))
			Expect(buf.String()).To(ContainSubstring("✗ Reordering"))
		})
	})

	Describe("Cell", func() {
		It("escapes pipes", func() {
			Expect(cliui.Cell("a|b")).To(Equal(`a\|b`))
		})

		It("truncates long values to the cell width", func() {
			long := "https://example.invalid/" + strings.Repeat("x", 200)
			cell := cliui.Cell(long)
			Expect(ansi.StringWidth(cell)).To(Equal(64))
			Expect(cell).To(HaveSuffix("…"))
		})
	})

	Describe("StatsMarkdown", func() {
		It("renders a ranked table", func() {
			md := cliui.StatsMarkdown([]usage.Entry{
				{Identity: "https://a.example.invalid", Count: 5},
				{Identity: "https://b.example.invalid", Count: 2},
			})
			Expect(md).To(ContainSubstring("| 1 | 5 | https://a.example.invalid |"))
			Expect(md).To(ContainSubstring("| 2 | 2 | https://b.example.invalid |"))
		})

		It("notes an empty table", func() {
			Expect(cliui.StatsMarkdown(nil)).To(ContainSubstring("No visits"))
		})
	})

	Describe("ReportMarkdown", func() {
		It("distinguishes plans from applied passes", func() {
			report := &reorder.Report{
				Folders:    2,
				Moves:      []reorder.Move{{ID: "7", ParentID: "1", From: 2, To: 0}},
				Suppressed: []reorder.Move{{ID: "1", ParentID: "0", From: 1, To: 0}},
				Failed: []reorder.FailedMove{
					{Move: reorder.Move{ID: "9", ParentID: "1", From: 3, To: 1}, Error: "locked"},
				},
				Missing: []string{"42"},
			}

			planned := cliui.ReportMarkdown(report, true)
			Expect(planned).To(ContainSubstring("Planned 1 moves across 2 folders"))
			Expect(planned).To(ContainSubstring("| 7 | 1 | 2 | 0 |"))
			Expect(planned).To(ContainSubstring("1 top-level moves suppressed"))
			Expect(planned).To(ContainSubstring("`9` to 1: locked"))
			Expect(planned).To(ContainSubstring("Skipped missing nodes: 42"))

			Expect(cliui.ReportMarkdown(report, false)).To(ContainSubstring("Applied 1 moves"))
		})
	})

	Describe("RenderMarkdown", func() {
		It("renders the content", func() {
			out, err := cliui.RenderMarkdown("# Title\n\nbody\n")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("body"))
		})
	})
})
