package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/custodia-labs/newsagg/internal/core/domain"
	"github.com/custodia-labs/newsagg/internal/core/ports/driving"
)

// PreferencesRequest is the body of POST /api/preferences.
// Omitted or null sets are stored as absent.
type PreferencesRequest struct {
	PreferredSources    []string `json:"preferred_sources"`
	PreferredCategories []string `json:"preferred_categories"`
	PreferredAuthors    []string `json:"preferred_authors"`
}

func (s *Server) handleSetPreferences(c echo.Context) error {
	var req PreferencesRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return failErr(c, "Failed to save preferences",
			fmt.Errorf("%w: preferences must be arrays of strings: %v", domain.ErrInvalidInput, err))
	}

	pref, err := s.ports.Preferences.Save(c.Request().Context(), userID(c), driving.PreferenceInput{
		Sources:    req.PreferredSources,
		Categories: req.PreferredCategories,
		Authors:    req.PreferredAuthors,
	})
	if err != nil {
		return failErr(c, "Failed to save preferences", err)
	}
	return ok(c, "Preferences saved successfully", pref)
}

func (s *Server) handleGetPreferences(c echo.Context) error {
	pref, err := s.ports.Preferences.Get(c.Request().Context(), userID(c))
	if err != nil {
		if statusFor(err) == http.StatusNotFound {
			return fail(c, http.StatusNotFound, "No preferences found for this user", nil)
		}
		return failErr(c, "Failed to retrieve preferences", err)
	}
	return ok(c, "Preferences retrieved successfully", pref)
}

func (s *Server) handleFeed(c echo.Context) error {
	page, err := s.ports.Preferences.Feed(c.Request().Context(), userID(c), pageParam(c))
	if err != nil {
		if statusFor(err) == http.StatusNotFound {
			return fail(c, http.StatusNotFound, "No preferences set for personalized feed.", nil)
		}
		return failErr(c, "Failed to retrieve personalized feed", err)
	}
	return ok(c, "Personalized feed retrieved successfully", page)
}

func userID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
