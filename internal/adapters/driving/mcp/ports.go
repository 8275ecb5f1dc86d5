package mcp

import (
	"github.com/custodia-labs/newsagg/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Articles serves article queries.
	Articles driving.ArticleService

	// Preferences resolves personalised feeds. Optional.
	Preferences driving.PreferenceService

	// Ingestion reports the latest ingestion run. Optional.
	Ingestion driving.IngestionService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Articles == nil {
		return ErrMissingArticleService
	}
	return nil
}
