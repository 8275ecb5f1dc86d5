// Package cli provides the newsagg command-line interface.
package cli

import (
	"errors"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/newsagg/internal/adapters/driven/config/file"
	"github.com/custodia-labs/newsagg/internal/core/ports/driving"
	"github.com/custodia-labs/newsagg/internal/logger"
)

// version is overridden at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

var (
	verbose    bool
	configPath string
)

// Services are wired by main and shared by every command.
var (
	articleService    driving.ArticleService
	preferenceService driving.PreferenceService
	ingestionService  driving.IngestionService
	scheduler         driving.Scheduler
	appConfig         *file.Config
	metricsHandler    http.Handler
	closeServices     func() error
)

// Services bundles the dependencies built by Bootstrap.
type Services struct {
	Config      *file.Config
	Articles    driving.ArticleService
	Preferences driving.PreferenceService
	Ingestion   driving.IngestionService
	Scheduler   driving.Scheduler
	Metrics     http.Handler

	// Close releases storage. Optional.
	Close func() error
}

// Bootstrap builds the services from the config file at configPath
// (empty means the default location). Set by main before Execute.
var Bootstrap func(configPath string) (*Services, error)

// skipBootstrap marks commands that run without services.
const skipBootstrap = "skip-bootstrap"

var rootCmd = &cobra.Command{
	Use:   "newsagg",
	Short: "Aggregate news from NewsAPI, The Guardian and the New York Times",
	Long: `newsagg pulls articles from several news providers into a local store,
normalises them into one schema and serves them for search and
personalised feeds over the command line, an HTTP API and MCP.`,
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.newsagg/config.toml)")
}

func preRun(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	// A missing .env file is fine.
	_ = godotenv.Load()

	if !needsServices(cmd) || articleService != nil {
		return nil
	}
	if Bootstrap == nil {
		return errors.New("services not configured")
	}

	svc, err := Bootstrap(configPath)
	if err != nil {
		return err
	}
	setServices(svc)
	return nil
}

func needsServices(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipBootstrap] == "true" {
			return false
		}
	}
	return true
}

func setServices(s *Services) {
	appConfig = s.Config
	articleService = s.Articles
	preferenceService = s.Preferences
	ingestionService = s.Ingestion
	scheduler = s.Scheduler
	metricsHandler = s.Metrics
	closeServices = s.Close
}

// Execute runs the root command and releases services afterwards.
func Execute() error {
	defer func() {
		if closeServices != nil {
			if err := closeServices(); err != nil {
				logger.Warn("closing services: %v", err)
			}
		}
	}()
	return rootCmd.Execute()
}
