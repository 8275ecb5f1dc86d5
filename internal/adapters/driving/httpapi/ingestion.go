package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/custodia-labs/newsagg/internal/core/domain"
)

// handleIngest runs a full pass. The pass is detached from the request so a
// client that disconnects does not abort the provider fetches.
func (s *Server) handleIngest(c echo.Context) error {
	run, err := s.ports.Ingestion.Run(context.WithoutCancel(c.Request().Context()))
	if err != nil {
		var ingestErr *domain.IngestionError
		if errors.As(err, &ingestErr) {
			return fail(c, http.StatusInternalServerError, "Ingestion failed", map[string]string{
				"error":    err.Error(),
				"provider": ingestErr.FirstProvider(),
			})
		}
		return failErr(c, "Ingestion failed", err)
	}
	return ok(c, "Ingestion completed successfully", run)
}

func (s *Server) handleLatestRun(c echo.Context) error {
	run, err := s.ports.Ingestion.Latest(c.Request().Context())
	if err != nil {
		if statusFor(err) == http.StatusNotFound {
			return fail(c, http.StatusNotFound, "No ingestion run recorded yet", nil)
		}
		return failErr(c, "Failed to retrieve ingestion run", err)
	}
	return ok(c, "Ingestion run retrieved successfully", run)
}
