package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsagg/internal/adapters/driven/config/file"
	"github.com/custodia-labs/newsagg/internal/providers/guardian"
	"github.com/custodia-labs/newsagg/internal/providers/newsapi"
	"github.com/custodia-labs/newsagg/internal/providers/nytimes"
)

func TestBuildProviders(t *testing.T) {
	t.Run("fixed order", func(t *testing.T) {
		providers := buildProviders(file.Defaults())

		require.Len(t, providers, 3)
		assert.Equal(t, newsapi.Name, providers[0].Name())
		assert.Equal(t, guardian.Name, providers[1].Name())
		assert.Equal(t, nytimes.Name, providers[2].Name())
	})

	t.Run("disabled providers are skipped", func(t *testing.T) {
		cfg := file.Defaults()
		cfg.Providers.Guardian.Enabled = false

		providers := buildProviders(cfg)

		require.Len(t, providers, 2)
		assert.Equal(t, newsapi.Name, providers[0].Name())
		assert.Equal(t, nytimes.Name, providers[1].Name())
	})
}

func TestBootstrap(t *testing.T) {
	t.Setenv(file.EnvDataDir, "")
	t.Setenv(file.EnvStorage, "")

	t.Run("sqlite in data dir", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.toml")
		dataDir := filepath.Join(dir, "data")
		require.NoError(t, os.WriteFile(configPath, []byte("data_dir = \""+filepath.ToSlash(dataDir)+"\"\n"), 0600))

		svc, err := bootstrap(configPath)
		require.NoError(t, err)
		t.Cleanup(func() { _ = svc.Close() })

		assert.NotNil(t, svc.Articles)
		assert.NotNil(t, svc.Preferences)
		assert.NotNil(t, svc.Ingestion)
		assert.NotNil(t, svc.Scheduler)
		assert.NotNil(t, svc.Metrics)
		assert.FileExists(t, filepath.Join(dataDir, "newsagg.db"))
	})

	t.Run("memory storage", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(configPath, []byte("storage = \"memory\"\n"), 0600))

		svc, err := bootstrap(configPath)
		require.NoError(t, err)
		assert.NoError(t, svc.Close())

		count, err := svc.Articles.Count(t.Context())
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("invalid config", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(configPath, []byte("[ingestion]\nconcurrency = 0\n"), 0600))

		_, err := bootstrap(configPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ingestion.concurrency")
	})
}
