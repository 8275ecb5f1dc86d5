package httpapi

import (
	"net/http"
	"strings"

	"github.com/custodia-labs/newsagg/internal/core/domain"
)

// DefaultUserHeader carries the caller's user ID.
const DefaultUserHeader = "X-User-ID"

// IdentityResolver determines which user a request acts for.
// Authentication itself happens in front of this service.
type IdentityResolver interface {
	// Resolve returns the user ID or an error wrapping domain.ErrUnauthenticated.
	Resolve(r *http.Request) (string, error)
}

// HeaderIdentity reads the user ID from a request header.
type HeaderIdentity struct {
	// Header defaults to DefaultUserHeader.
	Header string
}

// Resolve implements IdentityResolver.
func (h HeaderIdentity) Resolve(r *http.Request) (string, error) {
	name := h.Header
	if name == "" {
		name = DefaultUserHeader
	}
	userID := strings.TrimSpace(r.Header.Get(name))
	if userID == "" {
		return "", domain.ErrUnauthenticated
	}
	return userID, nil
}
