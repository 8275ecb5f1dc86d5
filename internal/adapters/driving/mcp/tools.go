package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/newsagg/internal/core/domain"
	"github.com/custodia-labs/newsagg/internal/core/ports/driving"
)

// ListArticlesInput is the input schema for the list_articles tool.
type ListArticlesInput struct {
	Keyword  string `json:"keyword,omitempty" jsonschema:"case-insensitive text to find in title or content"`
	Category string `json:"category,omitempty" jsonschema:"exact category, e.g. general or world"`
	Source   string `json:"source,omitempty" jsonschema:"exact source name, e.g. The Guardian"`
	Date     string `json:"date,omitempty" jsonschema:"publication day as YYYY-MM-DD"`
	Page     int    `json:"page,omitempty" jsonschema:"1-based page number (default 1)"`
}

// GetArticleInput is the input schema for the get_article tool.
type GetArticleInput struct {
	ID int64 `json:"id" jsonschema:"article ID"`
}

// FeedInput is the input schema for the personalized_feed tool.
type FeedInput struct {
	UserID string `json:"user_id" jsonschema:"user whose saved preferences filter the feed"`
	Page   int    `json:"page,omitempty" jsonschema:"1-based page number (default 1)"`
}

// PageOutput is one page of articles.
type PageOutput struct {
	CurrentPage int             `json:"current_page"`
	LastPage    int             `json:"last_page"`
	Total       int             `json:"total"`
	Articles    []ArticleOutput `json:"articles"`
}

// ArticleOutput represents a single article.
type ArticleOutput struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Source      string `json:"source"`
	Category    string `json:"category"`
	Author      string `json:"author,omitempty"`
	PublishedAt string `json:"published_at"`
	Content     string `json:"content,omitempty"`
}

// maxSummaryContent bounds content returned in list results.
const maxSummaryContent = 500

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_articles",
		Description: "List stored news articles, newest first, filtered by keyword, category, source and date",
	}, s.handleListArticles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_article",
		Description: "Get one article with its full content",
	}, s.handleGetArticle)

	if s.ports.Preferences != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "personalized_feed",
			Description: "List articles matching a user's saved source, category and author preferences",
		}, s.handleFeed)
	}
}

// handleListArticles handles the list_articles tool invocation.
func (s *Server) handleListArticles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListArticlesInput,
) (*mcp.CallToolResult, PageOutput, error) {
	page, err := s.ports.Articles.List(ctx, driving.ArticleQuery{
		Keyword:  input.Keyword,
		Category: input.Category,
		Source:   input.Source,
		Date:     input.Date,
		Page:     input.Page,
	})
	if err != nil {
		return nil, PageOutput{}, err
	}
	return nil, toPageOutput(page), nil
}

// handleGetArticle handles the get_article tool invocation.
func (s *Server) handleGetArticle(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetArticleInput,
) (*mcp.CallToolResult, ArticleOutput, error) {
	article, err := s.ports.Articles.Get(ctx, input.ID)
	if err != nil {
		return nil, ArticleOutput{}, err
	}
	out := toArticleOutput(article)
	out.Content = article.Content
	return nil, out, nil
}

// handleFeed handles the personalized_feed tool invocation.
func (s *Server) handleFeed(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FeedInput,
) (*mcp.CallToolResult, PageOutput, error) {
	if s.ports.Preferences == nil {
		return nil, PageOutput{}, ErrFeedUnavailable
	}
	page, err := s.ports.Preferences.Feed(ctx, input.UserID, input.Page)
	if err != nil {
		return nil, PageOutput{}, err
	}
	return nil, toPageOutput(page), nil
}

func toPageOutput(page *domain.ArticlePage) PageOutput {
	out := PageOutput{
		CurrentPage: page.CurrentPage,
		LastPage:    page.LastPage,
		Total:       page.Total,
		Articles:    make([]ArticleOutput, len(page.Data)),
	}
	for i := range page.Data {
		a := toArticleOutput(&page.Data[i])
		a.Content = summary(page.Data[i].Content)
		out.Articles[i] = a
	}
	return out
}

func toArticleOutput(a *domain.Article) ArticleOutput {
	return ArticleOutput{
		ID:          a.ID,
		Title:       a.Title,
		Source:      a.Source,
		Category:    a.Category,
		Author:      a.AuthorName(),
		PublishedAt: a.PublishedAt.String(),
	}
}

// summary shortens content for list output on a rune boundary.
func summary(content string) string {
	runes := []rune(content)
	if len(runes) <= maxSummaryContent {
		return content
	}
	return string(runes[:maxSummaryContent]) + "…"
}
