package domain

import (
	"slices"
	"strings"
)

// ArticleFilter holds the criteria of an article query.
// All non-empty criteria must hold (logical AND). The keyword criterion is
// itself a disjunction over title and content.
type ArticleFilter struct {
	// Keyword matches a case-insensitive substring of the title or content.
	Keyword string

	// Category matches exactly.
	Category string

	// Source matches exactly.
	Source string

	// Date matches the publication day exactly.
	Date *Date

	// Sources, Categories and Authors are "is one of" constraints.
	// An empty set does not constrain.
	Sources    []string
	Categories []string
	Authors    []string
}

// IsEmpty reports whether the filter constrains nothing.
func (f ArticleFilter) IsEmpty() bool {
	return f.Keyword == "" && f.Category == "" && f.Source == "" && f.Date == nil &&
		len(f.Sources) == 0 && len(f.Categories) == 0 && len(f.Authors) == 0
}

// Matches evaluates the filter against a single article.
func (f ArticleFilter) Matches(a *Article) bool {
	if f.Keyword != "" {
		kw := strings.ToLower(f.Keyword)
		if !strings.Contains(strings.ToLower(a.Title), kw) &&
			!strings.Contains(strings.ToLower(a.Content), kw) {
			return false
		}
	}
	if f.Category != "" && a.Category != f.Category {
		return false
	}
	if f.Source != "" && a.Source != f.Source {
		return false
	}
	if f.Date != nil && a.PublishedAt != *f.Date {
		return false
	}
	if len(f.Sources) > 0 && !slices.Contains(f.Sources, a.Source) {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, a.Category) {
		return false
	}
	if len(f.Authors) > 0 && (a.Author == nil || !slices.Contains(f.Authors, *a.Author)) {
		return false
	}
	return true
}

// PageSize is the fixed number of articles per page.
const PageSize = 10

// PageRequest selects one page of a query result.
type PageRequest struct {
	// Page is 1-indexed. Values below 1 select the first page.
	Page int
}

// Normalised returns the request with Page clamped to at least 1.
func (p PageRequest) Normalised() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	return p
}

// Offset returns the number of items preceding the page.
func (p PageRequest) Offset() int {
	return (p.Normalised().Page - 1) * PageSize
}

// ArticlePage is one page of articles plus pagination metadata.
type ArticlePage struct {
	CurrentPage int       `json:"current_page"`
	Data        []Article `json:"data"`
	Total       int       `json:"total"`
	PerPage     int       `json:"per_page"`
	LastPage    int       `json:"last_page"`
	From        *int      `json:"from"`
	To          *int      `json:"to"`
}

// NewArticlePage assembles a page from its items and the total match count.
func NewArticlePage(req PageRequest, items []Article, total int) *ArticlePage {
	req = req.Normalised()
	if items == nil {
		items = []Article{}
	}

	lastPage := (total + PageSize - 1) / PageSize
	if lastPage < 1 {
		lastPage = 1
	}

	page := &ArticlePage{
		CurrentPage: req.Page,
		Data:        items,
		Total:       total,
		PerPage:     PageSize,
		LastPage:    lastPage,
	}
	if len(items) > 0 {
		from := req.Offset() + 1
		to := req.Offset() + len(items)
		page.From = &from
		page.To = &to
	}
	return page
}
