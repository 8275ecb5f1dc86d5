package domain

import "time"

const (
	// MaxContentBytes caps the stored article content.
	MaxContentBytes = 1024 * 1024

	// DefaultCategory is used when a provider supplies no category.
	DefaultCategory = "general"
)

// Article is the canonical representation of a news article
// after normalisation. Title is the business key.
type Article struct {
	// ID is assigned by the store and survives re-ingestion of the same title.
	ID int64 `json:"id"`

	// Title uniquely identifies the article across providers.
	Title string `json:"title"`

	// Content is the article body or summary, capped at MaxContentBytes.
	Content string `json:"content"`

	// Author is nil when the provider did not name one.
	Author *string `json:"author"`

	// Source is the publishing outlet.
	Source string `json:"source"`

	// Category is the provider section, or DefaultCategory.
	Category string `json:"category"`

	// PublishedAt is the publication calendar day.
	PublishedAt Date `json:"published_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TruncateContent cuts Content to MaxContentBytes.
// Reports whether anything was removed.
func (a *Article) TruncateContent() bool {
	if len(a.Content) <= MaxContentBytes {
		return false
	}
	a.Content = a.Content[:MaxContentBytes]
	return true
}

// AuthorName returns the author or an empty string.
func (a *Article) AuthorName() string {
	if a.Author == nil {
		return ""
	}
	return *a.Author
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
