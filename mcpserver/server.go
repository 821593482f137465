package mcpserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/poiesic/labmatch/core"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Matcher is the search surface the server needs.
type Matcher interface {
	Search(ctx context.Context, query string, topK int) ([]core.MatchResult, error)
	Meta() core.CacheMeta
	ExactEnabled() bool
	DefaultTopK() int
}

// Server is the MCP server for the lab test matcher.
type Server struct {
	matcher Matcher
	server  *mcp.Server
	logger  *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. nil restores slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "mcp")
	}
}

// NewServer creates a new MCP server around matcher.
func NewServer(matcher Matcher, opts ...Option) (*Server, error) {
	if matcher == nil {
		return nil, ErrMissingMatcher
	}

	impl := &mcp.Implementation{
		Name:    "labmatch",
		Version: Version,
	}

	s := &Server{
		matcher: matcher,
		server:  mcp.NewServer(impl, nil),
		logger:  slog.Default().With("component", "mcp"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("serving over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
