package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsagg/internal/adapters/driven/config/file"
	"github.com/custodia-labs/newsagg/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/newsagg/internal/core/domain"
	"github.com/custodia-labs/newsagg/internal/core/services"
)

// stubIngestion implements driving.IngestionService for testing.
type stubIngestion struct {
	run       *domain.IngestionRun
	err       error
	latestErr error
	calls     int
}

func (s *stubIngestion) Run(_ context.Context) (*domain.IngestionRun, error) {
	s.calls++
	return s.run, s.err
}

func (s *stubIngestion) Latest(_ context.Context) (*domain.IngestionRun, error) {
	if s.latestErr != nil {
		return nil, s.latestErr
	}
	return s.run, nil
}

func (s *stubIngestion) Running() bool { return false }

type testEnv struct {
	articles  *memory.ArticleStore
	prefs     *memory.PreferenceStore
	ingestion *stubIngestion
}

// setupTestServices wires memory-backed services into the package vars
// and restores everything when the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		articles:  memory.NewArticleStore(),
		prefs:     memory.NewPreferenceStore(),
		ingestion: &stubIngestion{latestErr: domain.ErrNotFound},
	}

	oldArticles, oldPrefs, oldIngestion := articleService, preferenceService, ingestionService
	oldScheduler, oldConfig, oldMetrics, oldClose := scheduler, appConfig, metricsHandler, closeServices

	setServices(&Services{
		Config:      file.Defaults(),
		Articles:    services.NewArticleService(env.articles),
		Preferences: services.NewPreferenceService(env.prefs, env.articles),
		Ingestion:   env.ingestion,
	})

	t.Cleanup(func() {
		articleService, preferenceService, ingestionService = oldArticles, oldPrefs, oldIngestion
		scheduler, appConfig, metricsHandler, closeServices = oldScheduler, oldConfig, oldMetrics, oldClose
		resetFlags(rootCmd)
	})
	return env
}

func (e *testEnv) seed(t *testing.T, articles ...domain.Article) {
	t.Helper()
	for i := range articles {
		require.NoError(t, e.articles.Upsert(context.Background(), &articles[i]))
	}
}

// resetFlags restores every flag to its default so values do not leak
// between rootCmd executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs rootCmd with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func testArticle(title, source, category string, author *string) domain.Article {
	return domain.Article{
		Title:       title,
		Content:     "Full text of " + title,
		Author:      author,
		Source:      source,
		Category:    category,
		PublishedAt: domain.Date{Year: 2024, Month: time.May, Day: 1},
	}
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "newsagg", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCmd_HasPersistentFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}

func TestNeedsServices(t *testing.T) {
	assert.True(t, needsServices(articlesListCmd))
	assert.False(t, needsServices(versionCmd))
	assert.False(t, needsServices(configSetCmd))
}

func TestPreRun_Bootstrap(t *testing.T) {
	oldBootstrap := Bootstrap
	t.Cleanup(func() { Bootstrap = oldBootstrap })

	t.Run("builds services once", func(t *testing.T) {
		setupTestServices(t)
		articleService = nil

		var gotPath string
		calls := 0
		Bootstrap = func(path string) (*Services, error) {
			calls++
			gotPath = path
			return &Services{Articles: services.NewArticleService(memory.NewArticleStore())}, nil
		}

		out, err := execute(t, "--config", "/tmp/custom.toml", "stats")
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Equal(t, "/tmp/custom.toml", gotPath)
		assert.Contains(t, out, "Articles: 0")
	})

	t.Run("propagates bootstrap error", func(t *testing.T) {
		setupTestServices(t)
		articleService = nil
		Bootstrap = func(string) (*Services, error) {
			return nil, errors.New("bad config")
		}

		_, err := execute(t, "stats")
		assert.EqualError(t, err, "bad config")
	})

	t.Run("skipped for version", func(t *testing.T) {
		setupTestServices(t)
		articleService = nil
		Bootstrap = func(string) (*Services, error) {
			t.Fatal("bootstrap must not run")
			return nil, nil
		}

		_, err := execute(t, "version")
		assert.NoError(t, err)
	})

	t.Run("missing bootstrap", func(t *testing.T) {
		setupTestServices(t)
		articleService = nil
		Bootstrap = nil

		_, err := execute(t, "stats")
		assert.EqualError(t, err, "services not configured")
	})
}
