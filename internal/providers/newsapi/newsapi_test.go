package newsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsagg/internal/core/domain"
	"github.com/custodia-labs/newsagg/internal/providers/provider"
)

const payload = `{
  "status": "ok",
  "totalResults": 2,
  "articles": [
    {
      "source": {"id": "bbc-news", "name": "BBC News"},
      "author": "Jane Doe",
      "title": "Markets rally",
      "description": "Stocks rose sharply.",
      "publishedAt": "2024-05-01T10:00:00Z"
    },
    {
      "source": {"id": null, "name": "Reuters"},
      "author": null,
      "title": "Quiet day",
      "description": null,
      "publishedAt": "2024-05-01T23:30:00-05:00"
    }
  ]
}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{Config: provider.Config{APIKey: "key", BaseURL: srv.URL, Timeout: time.Second, RequestsPerSecond: 100}})
}

func TestProvider_Fetch(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/top-headlines", r.URL.Path)
		assert.Equal(t, "key", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "us", r.URL.Query().Get("country"))
		_, _ = w.Write([]byte(payload))
	})

	items, err := p.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, Name, items[0].Provider)
}

func TestProvider_FetchMissingListIsEmpty(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	items, err := p.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestProvider_FetchServerError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := p.Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrProviderTransport)
}

func TestProvider_Normalise(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(payload))
	})
	items, err := p.Fetch(context.Background())
	require.NoError(t, err)

	first, err := p.Normalise(items[0])
	require.NoError(t, err)
	assert.Equal(t, "Markets rally", first.Title)
	assert.Equal(t, "Stocks rose sharply.", first.Content)
	require.NotNil(t, first.Author)
	assert.Equal(t, "Jane Doe", *first.Author)
	assert.Equal(t, "BBC News", first.Source)
	assert.Equal(t, "general", first.Category)
	assert.Equal(t, "2024-05-01", first.PublishedAt.String())

	second, err := p.Normalise(items[1])
	require.NoError(t, err)
	assert.Equal(t, "", second.Content)
	assert.Nil(t, second.Author)
	assert.Equal(t, "Reuters", second.Source)
	assert.Equal(t, "2024-05-01", second.PublishedAt.String())
}

func TestProvider_NormaliseMalformed(t *testing.T) {
	p := New(Config{})

	tests := []struct {
		name    string
		payload string
	}{
		{name: "missing title", payload: `{"publishedAt":"2024-05-01T10:00:00Z"}`},
		{name: "bad date", payload: `{"title":"x","publishedAt":"yesterday-ish"}`},
		{name: "missing date", payload: `{"title":"x"}`},
		{name: "not an object", payload: `"text"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Normalise(domain.RawItem{Provider: Name, Payload: []byte(tt.payload)})
			assert.ErrorIs(t, err, domain.ErrMalformedPayload)
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	p := New(Config{})
	assert.Equal(t, DefaultBaseURL, p.cfg.BaseURL)
	assert.Equal(t, DefaultCountry, p.cfg.Country)
	assert.Equal(t, Name, p.Name())
}
