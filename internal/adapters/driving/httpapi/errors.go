package httpapi

import "errors"

// ErrMissingArticleService is returned when Ports has no article service.
var ErrMissingArticleService = errors.New("article service is required")
