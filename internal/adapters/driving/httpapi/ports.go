package httpapi

import (
	"net/http"

	"github.com/custodia-labs/newsagg/internal/core/ports/driving"
)

// Ports contains the services the HTTP API depends on.
type Ports struct {
	// Articles is required.
	Articles driving.ArticleService

	// Preferences enables /api/preferences and /api/personalized-feed.
	Preferences driving.PreferenceService

	// Ingestion enables /api/ingest.
	Ingestion driving.IngestionService

	// Identity resolves the calling user. Defaults to the X-User-ID header.
	Identity IdentityResolver

	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

// Validate checks that required ports are set.
func (p *Ports) Validate() error {
	if p.Articles == nil {
		return ErrMissingArticleService
	}
	return nil
}
