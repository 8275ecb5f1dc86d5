package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/newsagg/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for newsagg resources.
	uriScheme = "newsagg://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Template for article content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "articles/{articleId}",
		Name:        "article-content",
		Description: "Full content of a stored article",
		MIMEType:    "text/plain",
	}, s.handleArticleResource)

	if s.ports.Ingestion != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "ingestion/latest",
			Name:        "latest-ingestion",
			Description: "Report of the most recent ingestion run",
			MIMEType:    "application/json",
		}, s.handleLatestIngestionResource)
	}
}

// handleArticleResource returns the content of one article.
func (s *Server) handleArticleResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id, ok := extractArticleID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	article, err := s.ports.Articles.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting article: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     article.Content,
		}},
	}, nil
}

// handleLatestIngestionResource returns the latest run report as JSON.
func (s *Server) handleLatestIngestionResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	run, err := s.ports.Ingestion.Latest(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting latest run: %w", err)
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling run: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractArticleID extracts the ID from newsagg://articles/{articleId}.
func extractArticleID(uri string) (int64, bool) {
	rest, ok := strings.CutPrefix(uri, uriScheme+"articles/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
