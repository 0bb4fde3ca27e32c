// Package mcp exposes tree documents to MCP clients as tools and resources.
package mcp

import "errors"

// ErrMissingTreeService is returned when the tree service is not provided.
var ErrMissingTreeService = errors.New("mcp: tree service is required")
