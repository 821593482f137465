package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CorpusURI is the resource describing the loaded reference corpus.
const CorpusURI = "labmatch://corpus"

type corpusInfo struct {
	SourcePath   string `json:"source_path"`
	Model        string `json:"model"`
	Fingerprint  string `json:"fingerprint"`
	RecordCount  int    `json:"record_count"`
	Dimension    int    `json:"dimension"`
	BuiltAt      string `json:"built_at"`
	ExactEnabled bool   `json:"exact_match_enabled"`
	DefaultTopK  int    `json:"default_top_k"`
}

func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         CorpusURI,
		Name:        "corpus",
		Description: "Reference terminology corpus and vector cache currently loaded",
		MIMEType:    "application/json",
	}, s.handleCorpusResource)
}

func (s *Server) handleCorpusResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	meta := s.matcher.Meta()
	info := corpusInfo{
		SourcePath:   meta.SourcePath,
		Model:        meta.Model,
		Fingerprint:  meta.Fingerprint.String(),
		RecordCount:  meta.RecordCount,
		Dimension:    meta.Dimension,
		ExactEnabled: s.matcher.ExactEnabled(),
		DefaultTopK:  s.matcher.DefaultTopK(),
	}
	if !meta.BuiltAt.IsZero() {
		info.BuiltAt = meta.BuiltAt.UTC().Format(time.RFC3339)
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding corpus info: %w", err)
	}

	uri := CorpusURI
	if req != nil && req.Params != nil && req.Params.URI != "" {
		uri = req.Params.URI
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
