// Package mcpserver exposes the matcher to AI assistants over the Model
// Context Protocol.
package mcpserver

import "errors"

var (
	// ErrMissingMatcher is returned when the matcher is not provided.
	ErrMissingMatcher = errors.New("mcpserver: matcher is required")

	// ErrInvalidFormat is returned for an unknown output format.
	ErrInvalidFormat = errors.New("mcpserver: format must be markdown or json")
)
