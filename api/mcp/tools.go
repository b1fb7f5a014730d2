package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/marksort/pkg/reorder"
	"github.com/papercomputeco/marksort/pkg/usage"
)

var (
	usageStatsToolName    = "usage_stats"
	usageStatsDescription = "List bookmarks ordered by how often they were visited, most used first."

	planReorderToolName    = "plan_reorder"
	planReorderDescription = "Preview the moves a reorder pass would make without changing any bookmarks. Unset flags fall back to the configured policy."

	recordVisitToolName    = "record_visit"
	recordVisitDescription = "Report a completed page visit so matching bookmarks are credited with one use."
)

// UsageStatsInput represents the input arguments for the usage_stats tool.
type UsageStatsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of bookmarks to return (default: 20)"`
}

// UsageStatsOutput represents the output of the usage_stats tool.
type UsageStatsOutput struct {
	Entries []usage.Entry `json:"entries"`
	Count   int           `json:"count"`
}

// PlanReorderInput represents the input arguments for the plan_reorder tool.
type PlanReorderInput struct {
	SortFolders        *bool `json:"sort_folders,omitempty" jsonschema:"reorder folders by the total usage beneath them"`
	SortUntitled       *bool `json:"sort_untitled,omitempty" jsonschema:"reorder bookmarks with an empty title"`
	SortTitled         *bool `json:"sort_titled,omitempty" jsonschema:"reorder bookmarks with a title"`
	SortFolderContents *bool `json:"sort_folder_contents,omitempty" jsonschema:"descend into folders below the top level"`
}

// PlanReorderOutput represents the output of the plan_reorder tool.
type PlanReorderOutput struct {
	Policy reorder.Policy  `json:"policy"`
	Report *reorder.Report `json:"report"`
}

// RecordVisitInput represents the input arguments for the record_visit tool.
type RecordVisitInput struct {
	URL string `json:"url" jsonschema:"the URL of the page that finished loading"`
}

// RecordVisitOutput represents the output of the record_visit tool.
type RecordVisitOutput struct {
	URL    string `json:"url"`
	Queued bool   `json:"queued"`
}

func (s *Server) handleUsageStats(ctx context.Context, _ *mcp.CallToolRequest, input UsageStatsInput) (*mcp.CallToolResult, UsageStatsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, err := s.config.Service.Stats(ctx, limit)
	if err != nil {
		s.config.Logger.Error("failed to load usage stats", "error", err)
		return errorResult("Failed to load usage stats: %v", err), UsageStatsOutput{}, nil
	}

	output := UsageStatsOutput{Entries: entries, Count: len(entries)}
	return jsonResult(output), output, nil
}

func (s *Server) handlePlanReorder(ctx context.Context, _ *mcp.CallToolRequest, input PlanReorderInput) (*mcp.CallToolResult, PlanReorderOutput, error) {
	policy := input.apply(s.config.Policy)

	s.config.Logger.Debug("MCP plan request", "policy", policy)

	report, err := s.config.Service.PlanReorder(ctx, policy)
	if err != nil {
		s.config.Logger.Error("failed to plan reorder", "error", err)
		return errorResult("Failed to plan reorder: %v", err), PlanReorderOutput{}, nil
	}

	output := PlanReorderOutput{Policy: policy, Report: report}
	return jsonResult(output), output, nil
}

func (s *Server) handleRecordVisit(ctx context.Context, _ *mcp.CallToolRequest, input RecordVisitInput) (*mcp.CallToolResult, RecordVisitOutput, error) {
	if input.URL == "" {
		return errorResult("url is required"), RecordVisitOutput{}, nil
	}

	output := RecordVisitOutput{URL: input.URL, Queued: s.config.Service.RecordVisit(ctx, input.URL)}
	return jsonResult(output), output, nil
}

func (in PlanReorderInput) apply(p reorder.Policy) reorder.Policy {
	return reorder.PolicyOverride{
		SortFolders:        in.SortFolders,
		SortUntitled:       in.SortUntitled,
		SortTitled:         in.SortTitled,
		SortFolderContents: in.SortFolderContents,
	}.Apply(p)
}

// jsonResult serializes structured output into a TextContent block as well,
// for clients that only read text.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResult("Failed to serialize result: %v", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}
}
