// Package mcp provides an MCP (Model Context Protocol) server adapter for newsagg.
// It lets AI assistants query stored articles and personalised feeds.
package mcp

import "errors"

// ErrMissingArticleService is returned when the article service is not provided.
var ErrMissingArticleService = errors.New("mcp: article service is required")

// ErrFeedUnavailable is returned when the feed tool is called without a preference service.
var ErrFeedUnavailable = errors.New("mcp: personalised feed is not available")
