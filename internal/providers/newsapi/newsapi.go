// Package newsapi implements the top-headlines provider backed by NewsAPI.
package newsapi

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
	Name = "newsapi"

	// DefaultBaseURL is the public NewsAPI endpoint.
	DefaultBaseURL = "https://newsapi.org"

	// DefaultCountry is the country whose headlines are fetched.
	DefaultCountry = "us"
)

// Config configures the NewsAPI provider.
type Config struct {
	provider.Config

	// Country is the ISO 3166-1 code passed to top-headlines.
	Country string
}

// Provider fetches US top headlines.
type Provider struct {
	cfg    Config
	client *provider.Client
}

var _ driven.Provider = (*Provider)(nil)

// New creates a NewsAPI provider.
func New(cfg Config) *Provider {
	cfg.Config = cfg.Config.WithDefaults(DefaultBaseURL)
	if cfg.Country == "" {
		cfg.Country = DefaultCountry
	}
	return &Provider{cfg: cfg, client: provider.NewClient(cfg.Config)}
}

// Name returns the provider name.
func (p *Provider) Name() string { return Name }

type response struct {
	Articles []json.RawMessage `json:"articles"`
}

type item struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Author      *string `json:"author"`
	Source      struct {
		Name *string `json:"name"`
	} `json:"source"`
	PublishedAt *string `json:"publishedAt"`
}

// Fetch retrieves one page of top headlines.
func (p *Provider) Fetch(ctx context.Context) ([]domain.RawItem, error) {
	q := url.Values{}
	q.Set("apiKey", p.cfg.APIKey)
	q.Set("country", p.cfg.Country)

	var resp response
	if err := p.client.GetJSON(ctx, p.cfg.BaseURL+"/v2/top-headlines?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return provider.RawItems(Name, resp.Articles), nil
}

// Normalise maps one headline onto an Article.
// A null author stays absent; a null description becomes empty content.
func (p *Provider) Normalise(raw domain.RawItem) (*domain.Article, error) {
	var it item
	if err := provider.Decode(raw, &it); err != nil {
		return nil, err
	}

	title, err := provider.RequireTitle(it.Title)
	if err != nil {
		return nil, err
	}
	date, err := provider.ParseDate(provider.Text(it.PublishedAt, ""))
	if err != nil {
		return nil, err
	}

	return &domain.Article{
		Title:       title,
		Content:     provider.Text(it.Description, ""),
		Author:      it.Author,
		Source:      provider.Text(it.Source.Name, ""),
		Category:    domain.DefaultCategory,
		PublishedAt: date,
	}, nil
}
