package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/newsagg/internal/core/domain"
	"github.com/custodia-labs/newsagg/internal/core/ports/driving"
)

var (
	articlesKeyword  string
	articlesCategory string
	articlesSource   string
	articlesDate     string
	articlesPage     int
	articlesJSON     bool
)

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "Browse stored articles",
}

var articlesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List articles, newest first",
	Long: `Lists stored articles ten per page, newest first.
All filters are optional and combine with AND. --keyword matches the title
or the content, ignoring case; the other filters match exactly.`,
	Args: cobra.NoArgs,
	RunE: runArticlesList,
}

var articlesShowCmd = &cobra.Command{
	Use:   "show [article-id]",
	Short: "Show an article with its full content",
	Args:  cobra.ExactArgs(1),
	RunE:  runArticlesShow,
}

func init() {
	f := articlesListCmd.Flags()
	f.StringVarP(&articlesKeyword, "keyword", "k", "", "text to find in title or content")
	f.StringVar(&articlesCategory, "category", "", "exact category")
	f.StringVar(&articlesSource, "source", "", "exact source name")
	f.StringVar(&articlesDate, "date", "", "publication day (YYYY-MM-DD)")
	f.IntVarP(&articlesPage, "page", "p", 1, "page number")
	f.BoolVar(&articlesJSON, "json", false, "output the page as JSON")

	articlesShowCmd.Flags().BoolVar(&articlesJSON, "json", false, "output the article as JSON")

	articlesCmd.AddCommand(articlesListCmd)
	articlesCmd.AddCommand(articlesShowCmd)
	rootCmd.AddCommand(articlesCmd)
}

func runArticlesList(cmd *cobra.Command, _ []string) error {
	if articleService == nil {
		return errors.New("article service not configured")
	}

	page, err := articleService.List(cmd.Context(), driving.ArticleQuery{
		Keyword:  articlesKeyword,
		Category: articlesCategory,
		Source:   articlesSource,
		Date:     articlesDate,
		Page:     articlesPage,
	})
	if err != nil {
		return fmt.Errorf("failed to list articles: %w", err)
	}

	if articlesJSON {
		return writeJSON(cmd, page)
	}
	printPage(cmd, page)
	return nil
}

func runArticlesShow(cmd *cobra.Command, args []string) error {
	if articleService == nil {
		return errors.New("article service not configured")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid article ID %q", args[0])
	}

	article, err := articleService.Get(cmd.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("article %d not found", id)
		}
		return fmt.Errorf("failed to get article: %w", err)
	}

	if articlesJSON {
		return writeJSON(cmd, article)
	}

	cmd.Println(article.Title)
	cmd.Printf("%s | %s | %s\n", article.PublishedAt, article.Source, article.Category)
	if author := article.AuthorName(); author != "" {
		cmd.Printf("By %s\n", author)
	}
	cmd.Println()
	cmd.Println(article.Content)
	return nil
}

// printPage prints a page of articles as a numbered list.
func printPage(cmd *cobra.Command, page *domain.ArticlePage) {
	if len(page.Data) == 0 {
		cmd.Println("No articles found.")
	}
	for i := range page.Data {
		a := &page.Data[i]
		cmd.Printf("  [%d] %s\n", a.ID, a.Title)
		cmd.Printf("      %s | %s | %s", a.PublishedAt, a.Source, a.Category)
		if author := a.AuthorName(); author != "" {
			cmd.Printf(" | %s", author)
		}
		cmd.Println()
	}
	cmd.Printf("\nPage %d of %d (%d articles)\n", page.CurrentPage, page.LastPage, page.Total)
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
