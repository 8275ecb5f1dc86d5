package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/custodia-labs/newsagg/internal/core/ports/driving"
)

func (s *Server) handleListArticles(c echo.Context) error {
	page, err := s.ports.Articles.List(c.Request().Context(), driving.ArticleQuery{
		Keyword:  c.QueryParam("keyword"),
		Category: c.QueryParam("category"),
		Source:   c.QueryParam("source"),
		Date:     c.QueryParam("date"),
		Page:     pageParam(c),
	})
	if err != nil {
		return failErr(c, "Failed to retrieve articles", err)
	}
	return ok(c, "Articles retrieved successfully", page)
}

func (s *Server) handleGetArticle(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return articleNotFound(c)
	}

	article, err := s.ports.Articles.Get(c.Request().Context(), id)
	if err != nil {
		if statusFor(err) == http.StatusNotFound {
			return articleNotFound(c)
		}
		return failErr(c, "Failed to retrieve the article", err)
	}
	return ok(c, "Article retrieved successfully", article)
}

func articleNotFound(c echo.Context) error {
	return fail(c, http.StatusNotFound, "Article not found",
		map[string]string{"error": "Article with the specified ID does not exist."})
}

// pageParam reads ?page. Missing or non-numeric values select page 1.
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
