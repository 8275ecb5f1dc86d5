// Package guardian implements the content search provider backed by the
// Guardian Open Platform.
package guardian

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
	Name = "guardian"

	// DefaultBaseURL is the public Guardian content API endpoint.
	DefaultBaseURL = "https://content.guardianapis.com"

	// SourceName is the source recorded on every article.
	SourceName = "The Guardian"

	// UnknownAuthor is used when an item has no byline.
	UnknownAuthor = "Unknown"
)

// Config configures the Guardian provider.
type Config struct {
	provider.Config
}

// Provider fetches the latest Guardian content.
type Provider struct {
	cfg    Config
	client *provider.Client
}

var _ driven.Provider = (*Provider)(nil)

// New creates a Guardian provider.
func New(cfg Config) *Provider {
	cfg.Config = cfg.Config.WithDefaults(DefaultBaseURL)
	return &Provider{cfg: cfg, client: provider.NewClient(cfg.Config)}
}

// Name returns the provider name.
func (p *Provider) Name() string { return Name }

type response struct {
	Response struct {
		Results []json.RawMessage `json:"results"`
	} `json:"response"`
}

type item struct {
	WebTitle           *string `json:"webTitle"`
	WebPublicationDate *string `json:"webPublicationDate"`
	Fields             struct {
		Body   *string `json:"body"`
		Byline *string `json:"byline"`
	} `json:"fields"`
}

// Fetch runs a content search with body and byline fields.
func (p *Provider) Fetch(ctx context.Context) ([]domain.RawItem, error) {
	q := url.Values{}
	q.Set("api-key", p.cfg.APIKey)
	q.Set("show-fields", "body,byline")

	var resp response
	if err := p.client.GetJSON(ctx, p.cfg.BaseURL+"/search?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return provider.RawItems(Name, resp.Response.Results), nil
}

// Normalise maps one search result onto an Article.
func (p *Provider) Normalise(raw domain.RawItem) (*domain.Article, error) {
	var it item
	if err := provider.Decode(raw, &it); err != nil {
		return nil, err
	}

	title, err := provider.RequireTitle(it.WebTitle)
	if err != nil {
		return nil, err
	}
	date, err := provider.ParseDate(provider.Text(it.WebPublicationDate, ""))
	if err != nil {
		return nil, err
	}

	return &domain.Article{
		Title:       title,
		Content:     provider.Text(it.Fields.Body, ""),
		Author:      domain.StringPtr(provider.Text(it.Fields.Byline, UnknownAuthor)),
		Source:      SourceName,
		Category:    domain.DefaultCategory,
		PublishedAt: date,
	}, nil
}
