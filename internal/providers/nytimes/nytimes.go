// Package nytimes implements the top stories provider backed by the
// New York Times Top Stories API.
package nytimes

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/custodia-labs/newsagg/internal/core/domain"
	"github.com/custodia-labs/newsagg/internal/core/ports/driven"
	"github.com/custodia-labs/newsagg/internal/providers/provider"
)

const (
	// Name identifies this provider in run reports and errors.
	Name = "nytimes"

	// DefaultBaseURL is the public NYT developer API endpoint.
	DefaultBaseURL = "https://api.nytimes.com"

	// DefaultSection is the top stories section that is fetched.
	DefaultSection = "home"

	// SourceName is the source recorded on every article.
	SourceName = "New York Times"
)

// Config configures the New York Times provider.
type Config struct {
	provider.Config

	// Section selects the top stories feed, e.g. home or world.
	Section string
}

// Provider fetches NYT top stories.
type Provider struct {
	cfg    Config
	client *provider.Client
}

var _ driven.Provider = (*Provider)(nil)

// New creates a New York Times provider.
func New(cfg Config) *Provider {
	cfg.Config = cfg.Config.WithDefaults(DefaultBaseURL)
	if cfg.Section == "" {
		cfg.Section = DefaultSection
	}
	return &Provider{cfg: cfg, client: provider.NewClient(cfg.Config)}
}

// Name returns the provider name.
func (p *Provider) Name() string { return Name }

type response struct {
	Results []json.RawMessage `json:"results"`
}

type item struct {
	Title         *string `json:"title"`
	Abstract      *string `json:"abstract"`
	Byline        *string `json:"byline"`
	Section       *string `json:"section"`
	PublishedDate *string `json:"published_date"`
}

// Fetch retrieves the configured top stories section.
func (p *Provider) Fetch(ctx context.Context) ([]domain.RawItem, error) {
	q := url.Values{}
	q.Set("api-key", p.cfg.APIKey)

	endpoint := p.cfg.BaseURL + "/svc/topstories/v2/" + url.PathEscape(p.cfg.Section) + ".json?" + q.Encode()

	var resp response
	if err := p.client.GetJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return provider.RawItems(Name, resp.Results), nil
}

// Normalise maps one story onto an Article.
// The story's section becomes the category.
func (p *Provider) Normalise(raw domain.RawItem) (*domain.Article, error) {
	var it item
	if err := provider.Decode(raw, &it); err != nil {
		return nil, err
	}

	title, err := provider.RequireTitle(it.Title)
	if err != nil {
		return nil, err
	}
	date, err := provider.ParseDate(provider.Text(it.PublishedDate, ""))
	if err != nil {
		return nil, err
	}

	return &domain.Article{
		Title:       title,
		Content:     provider.Text(it.Abstract, ""),
		Author:      domain.StringPtr(provider.Text(it.Byline, "")),
		Source:      SourceName,
		Category:    provider.Text(it.Section, domain.DefaultCategory),
		PublishedAt: date,
	}, nil
}
