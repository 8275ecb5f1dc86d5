package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/newsagg/internal/adapters/driven/config/file"
	"github.com/custodia-labs/newsagg/internal/adapters/driven/metrics/prometheus"
	"github.com/custodia-labs/newsagg/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/newsagg/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/newsagg/internal/adapters/driving/cli"
	"github.com/custodia-labs/newsagg/internal/core/ports/driven"
	"github.com/custodia-labs/newsagg/internal/core/services"
	"github.com/custodia-labs/newsagg/internal/logger"
	"github.com/custodia-labs/newsagg/internal/providers/guardian"
	"github.com/custodia-labs/newsagg/internal/providers/newsapi"
	"github.com/custodia-labs/newsagg/internal/providers/nytimes"
)

// bootstrap loads configuration and wires storage, providers and services.
func bootstrap(configPath string) (*cli.Services, error) {
	logger.Section("Bootstrap")

	configStore, err := file.NewConfigStore(configPath)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	cfg, err := configStore.Config(os.LookupEnv)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", configStore.Path(), err)
	}
	logger.Debug("config loaded from %s", configStore.Path())

	st, err := openStores(cfg)
	if err != nil {
		return nil, err
	}

	providers := buildProviders(cfg)
	if len(providers) == 0 {
		logger.Warn("no providers enabled; ingestion will store nothing")
	}

	exporter := prometheus.NewExporter(prometheus.DefaultConfig())

	pipeline := services.NewIngestionPipeline(providers, st.articles, st.runs, exporter)
	pipeline.SetConcurrency(cfg.Ingestion.Concurrency)

	return &cli.Services{
		Config:      cfg,
		Articles:    services.NewArticleService(st.articles),
		Preferences: services.NewPreferenceService(st.preferences, st.articles),
		Ingestion:   pipeline,
		Scheduler:   services.NewScheduler(cfg.SchedulerConfig(), pipeline),
		Metrics:     exporter.Handler(),
		Close:       st.close,
	}, nil
}

type stores struct {
	articles    driven.ArticleStore
	preferences driven.PreferenceStore
	runs        driven.RunStore
	close       func() error
}

func openStores(cfg *file.Config) (*stores, error) {
	switch cfg.Storage {
	case file.StorageMemory:
		logger.Info("using in-memory storage; nothing is persisted")
		return &stores{
			articles:    memory.NewArticleStore(),
			preferences: memory.NewPreferenceStore(),
			runs:        memory.NewRunStore(),
			close:       func() error { return nil },
		}, nil
	case file.StorageSQLite:
		db, err := sqlite.NewStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		logger.Debug("database: %s", db.Path())
		return &stores{
			articles:    db.ArticleStore(),
			preferences: db.PreferenceStore(),
			runs:        db.RunStore(),
			close:       db.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}

// buildProviders returns the enabled providers in their fixed order:
// newsapi, guardian, nytimes.
func buildProviders(cfg *file.Config) []driven.Provider {
	var providers []driven.Provider

	p := cfg.Providers
	if p.NewsAPI.Enabled {
		warnMissingKey(newsapi.Name, p.NewsAPI.APIKey, file.EnvNewsAPIKey)
		providers = append(providers, newsapi.New(newsapi.Config{
			Config:  p.NewsAPI.Adapter(),
			Country: p.NewsAPI.Country,
		}))
	}
	if p.Guardian.Enabled {
		warnMissingKey(guardian.Name, p.Guardian.APIKey, file.EnvGuardianKey)
		providers = append(providers, guardian.New(guardian.Config{
			Config: p.Guardian.Adapter(),
		}))
	}
	if p.NYTimes.Enabled {
		warnMissingKey(nytimes.Name, p.NYTimes.APIKey, file.EnvNYTimesKey)
		providers = append(providers, nytimes.New(nytimes.Config{
			Config:  p.NYTimes.Adapter(),
			Section: p.NYTimes.Section,
		}))
	}

	for _, prov := range providers {
		logger.Debug("provider enabled: %s", prov.Name())
	}
	return providers
}

func warnMissingKey(name, key, env string) {
	if key == "" {
		logger.Debug("provider %s has no API key; set %s or providers.%s.api_key", name, env, name)
	}
}

