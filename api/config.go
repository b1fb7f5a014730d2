// Package api provides an HTTP API server for recording visits, inspecting
// bookmark usage and running reorder passes.
package api

import "github.com/papercomputeco/marksort/pkg/reorder"

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8742")
	ListenAddr string

	// Policy is used by reorder requests that don't carry their own.
	Policy reorder.Policy

	// EnableMCP mounts the MCP server at /mcp.
	EnableMCP bool
}
