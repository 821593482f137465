package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/poiesic/labmatch/report"
)

// Output formats of the match tool.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// MatchInput is the input schema for the match_lab_test tool.
type MatchInput struct {
	Query  string `json:"query" jsonschema:"lab test name to resolve, in Chinese or English"`
	TopK   int    `json:"top_k,omitempty" jsonschema:"maximum number of semantic results (default from server config)"`
	Format string `json:"format,omitempty" jsonschema:"text rendering of the results: markdown (default) or json"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "match_lab_test",
		Description: "Resolve a free-text laboratory test name to standardized terminology codes",
	}, s.handleMatch)
}

// handleMatch answers with report.Structured as structured output. Its
// field set depends on provenance, so the tool declares no output schema.
func (s *Server) handleMatch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MatchInput,
) (*mcp.CallToolResult, any, error) {
	format := strings.ToLower(strings.TrimSpace(input.Format))
	if format == "" {
		format = FormatMarkdown
	}
	if format != FormatMarkdown && format != FormatJSON {
		return nil, nil, ErrInvalidFormat
	}

	topK := input.TopK
	if topK <= 0 {
		topK = s.matcher.DefaultTopK()
	}

	results, err := s.matcher.Search(ctx, input.Query, topK)
	if err != nil {
		s.logger.Warn("match failed", "query", input.Query, "err", err)
		return nil, nil, err
	}

	output := report.Structured(results)
	if format == FormatJSON {
		// the SDK renders the structured output as text content
		return nil, output, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: report.Markdown(results, input.Query)}},
	}, output, nil
}
