package domain

import "time"

// UserPreference stores the feed criteria saved by one user.
// A nil or empty set means the corresponding field is not constrained.
type UserPreference struct {
	UserID              string    `json:"user_id"`
	PreferredSources    []string  `json:"preferred_sources"`
	PreferredCategories []string  `json:"preferred_categories"`
	PreferredAuthors    []string  `json:"preferred_authors"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Filter converts the preference sets into article criteria.
func (p *UserPreference) Filter() ArticleFilter {
	var f ArticleFilter
	if len(p.PreferredSources) > 0 {
		f.Sources = p.PreferredSources
	}
	if len(p.PreferredCategories) > 0 {
		f.Categories = p.PreferredCategories
	}
	if len(p.PreferredAuthors) > 0 {
		f.Authors = p.PreferredAuthors
	}
	return f
}
