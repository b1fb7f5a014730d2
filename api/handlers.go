package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/marksort/pkg/reorder"
	"github.com/papercomputeco/marksort/pkg/usage"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatsResponse lists the most used bookmarks.
type StatsResponse struct {
	Entries []usage.Entry `json:"entries"`
	Count   int           `json:"count"`
}

// VisitRequest reports a completed page visit.
type VisitRequest struct {
	URL string `json:"url"`
}

// VisitResponse acknowledges a queued visit.
type VisitResponse struct {
	URL    string `json:"url"`
	Queued bool   `json:"queued"`
}

// ReorderRequest optionally overrides the configured policy for one pass.
// Flags left out of policy keep their configured value.
type ReorderRequest struct {
	Policy *reorder.PolicyOverride `json:"policy,omitempty"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleStats handles GET /v1/stats.
// Query parameters:
//   - limit (optional, default all): number of bookmarks to return
func (s *Server) handleStats(c *fiber.Ctx) error {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error: "limit must be a positive integer",
			})
		}
		limit = parsed
	}

	entries, err := s.svc.Stats(c.Context(), limit)
	if err != nil {
		s.logger.Error("failed to load usage stats", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to load usage stats"})
	}

	return c.JSON(StatsResponse{Entries: entries, Count: len(entries)})
}

// handleTree handles GET /v1/tree.
func (s *Server) handleTree(c *fiber.Ctx) error {
	root, err := s.svc.Tree(c.Context())
	if err != nil {
		s.logger.Error("failed to fetch bookmark tree", "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Error: "failed to fetch bookmark tree"})
	}

	return c.JSON(root)
}

// handleRecordVisit handles POST /v1/visits. Visits are processed
// asynchronously; a full queue answers 503 so the caller can retry.
func (s *Server) handleRecordVisit(c *fiber.Ctx) error {
	var req VisitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "url is required"})
	}

	if !s.svc.RecordVisit(c.Context(), req.URL) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Error: "visit queue is full"})
	}

	return c.Status(fiber.StatusAccepted).JSON(VisitResponse{URL: req.URL, Queued: true})
}

// handleReorder handles POST /v1/reorder. The response is sent once the pass
// has finished.
func (s *Server) handleReorder(c *fiber.Ctx) error {
	policy, err := s.requestPolicy(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	report, err := s.svc.RunReorder(c.Context(), policy)
	if err != nil {
		s.logger.Error("reorder pass failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "reorder pass failed"})
	}

	return c.JSON(report)
}

// handlePlanReorder handles POST /v1/reorder/plan.
func (s *Server) handlePlanReorder(c *fiber.Ctx) error {
	policy, err := s.requestPolicy(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	report, err := s.svc.PlanReorder(c.Context(), policy)
	if err != nil {
		s.logger.Error("reorder plan failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "reorder plan failed"})
	}

	return c.JSON(report)
}

// requestPolicy returns the configured policy with any flags from the request
// body applied over it.
func (s *Server) requestPolicy(c *fiber.Ctx) (reorder.Policy, error) {
	if len(c.Body()) == 0 {
		return s.config.Policy, nil
	}

	var req ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return reorder.Policy{}, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Policy == nil {
		return s.config.Policy, nil
	}
	return req.Policy.Apply(s.config.Policy), nil
}
