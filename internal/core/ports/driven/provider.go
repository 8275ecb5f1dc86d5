package driven

import (
	"context"

	"github.com/custodia-labs/newsagg/internal/core/domain"
)

// Provider fetches articles from one external news source.
// Each provider (newsapi, guardian, nytimes) implements this interface.
type Provider interface {
	// Name returns the provider identifier used in logs and errors.
	Name() string

	// Fetch retrieves the provider's current batch of raw items.
	// Any transport, timeout or decoding failure aborts the whole batch.
	Fetch(ctx context.Context) ([]domain.RawItem, error)

	// Normalise maps one raw item to the canonical article.
	// Returns an error wrapping domain.ErrMalformedPayload when the item
	// lacks a title or carries an unparseable date.
	Normalise(raw domain.RawItem) (*domain.Article, error)
}
