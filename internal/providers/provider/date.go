package provider

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/custodia-labs/newsagg/internal/core/domain"
)

// ParseDate reduces a provider timestamp to its calendar day.
// The day is taken in the timestamp's own offset, not converted to UTC.
// Strings without a zone are read as UTC.
func ParseDate(s string) (domain.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.Date{}, fmt.Errorf("%w: missing publication date", domain.ErrMalformedPayload)
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return domain.DateOf(t), nil
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return domain.Date{}, fmt.Errorf("%w: unparseable date %q", domain.ErrMalformedPayload, s)
	}
	return domain.DateOf(t), nil
}

// Text dereferences an optional payload field, using def when it is null.
func Text(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

// RequireTitle rejects items without a usable title.
func RequireTitle(title *string) (string, error) {
	if title == nil || strings.TrimSpace(*title) == "" {
		return "", fmt.Errorf("%w: missing title", domain.ErrMalformedPayload)
	}
	return *title, nil
}
