package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleFilter_Matches(t *testing.T) {
	may1 := Date{Year: 2024, Month: time.May, Day: 1}
	article := &Article{
		Title:       "Markets Rally",
		Content:     "Stocks rose on Tuesday",
		Author:      StringPtr("Jane Doe"),
		Source:      "BBC News",
		Category:    "business",
		PublishedAt: may1,
	}
	noAuthor := *article
	noAuthor.Author = nil

	tests := []struct {
		name    string
		filter  ArticleFilter
		article *Article
		want    bool
	}{
		{name: "empty filter", article: article, want: true},
		{name: "keyword in title ignores case", filter: ArticleFilter{Keyword: "rally"}, article: article, want: true},
		{name: "keyword in content", filter: ArticleFilter{Keyword: "TUESDAY"}, article: article, want: true},
		{name: "keyword missing", filter: ArticleFilter{Keyword: "election"}, article: article, want: false},
		{name: "category exact", filter: ArticleFilter{Category: "business"}, article: article, want: true},
		{name: "category is case-sensitive", filter: ArticleFilter{Category: "Business"}, article: article, want: false},
		{name: "source", filter: ArticleFilter{Source: "BBC News"}, article: article, want: true},
		{name: "date", filter: ArticleFilter{Date: &may1}, article: article, want: true},
		{name: "other date", filter: ArticleFilter{Date: &Date{Year: 2024, Month: time.May, Day: 2}}, article: article, want: false},
		{name: "source set", filter: ArticleFilter{Sources: []string{"CNN", "BBC News"}}, article: article, want: true},
		{name: "category set miss", filter: ArticleFilter{Categories: []string{"sport"}}, article: article, want: false},
		{name: "author set", filter: ArticleFilter{Authors: []string{"Jane Doe"}}, article: article, want: true},
		{name: "author set excludes null author", filter: ArticleFilter{Authors: []string{"Jane Doe"}}, article: &noAuthor, want: false},
		{name: "all criteria must hold", filter: ArticleFilter{Keyword: "rally", Category: "sport"}, article: article, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(tt.article))
		})
	}
}

func TestArticleFilter_IsEmpty(t *testing.T) {
	assert.True(t, ArticleFilter{}.IsEmpty())
	assert.True(t, ArticleFilter{Sources: []string{}}.IsEmpty())
	assert.False(t, ArticleFilter{Keyword: "x"}.IsEmpty())
}

func TestPageRequest(t *testing.T) {
	assert.Equal(t, 1, PageRequest{Page: 0}.Normalised().Page)
	assert.Equal(t, 1, PageRequest{Page: -4}.Normalised().Page)
	assert.Equal(t, 0, PageRequest{Page: 1}.Offset())
	assert.Equal(t, 20, PageRequest{Page: 3}.Offset())
}

func TestNewArticlePage(t *testing.T) {
	items := func(n int) []Article { return make([]Article, n) }

	tests := []struct {
		name         string
		page         int
		items        int
		total        int
		wantLast     int
		wantFrom     int
		wantTo       int
		wantNilRange bool
	}{
		{name: "first of three", page: 1, items: 10, total: 25, wantLast: 3, wantFrom: 1, wantTo: 10},
		{name: "partial last page", page: 3, items: 5, total: 25, wantLast: 3, wantFrom: 21, wantTo: 25},
		{name: "past the end", page: 9, items: 0, total: 25, wantLast: 3, wantNilRange: true},
		{name: "no articles", page: 1, items: 0, total: 0, wantLast: 1, wantNilRange: true},
		{name: "exact multiple", page: 2, items: 10, total: 20, wantLast: 2, wantFrom: 11, wantTo: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewArticlePage(PageRequest{Page: tt.page}, items(tt.items), tt.total)

			assert.Equal(t, tt.page, page.CurrentPage)
			assert.Equal(t, PageSize, page.PerPage)
			assert.Equal(t, tt.total, page.Total)
			assert.Equal(t, tt.wantLast, page.LastPage)
			if tt.wantNilRange {
				assert.Nil(t, page.From)
				assert.Nil(t, page.To)
				assert.NotNil(t, page.Data)
				return
			}
			require.NotNil(t, page.From)
			require.NotNil(t, page.To)
			assert.Equal(t, tt.wantFrom, *page.From)
			assert.Equal(t, tt.wantTo, *page.To)
		})
	}
}

func TestUserPreference_Filter(t *testing.T) {
	pref := &UserPreference{
		PreferredSources:    []string{"BBC News"},
		PreferredCategories: []string{},
	}

	f := pref.Filter()
	assert.Equal(t, []string{"BBC News"}, f.Sources)
	assert.Nil(t, f.Categories)
	assert.Nil(t, f.Authors)
}
