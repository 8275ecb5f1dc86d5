package file

import (
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/newsagg/internal/core/domain"
	"github.com/custodia-labs/newsagg/internal/providers/guardian"
	"github.com/custodia-labs/newsagg/internal/providers/newsapi"
	"github.com/custodia-labs/newsagg/internal/providers/nytimes"
	"github.com/custodia-labs/newsagg/internal/providers/provider"
)

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Environment variables that override file settings.
const (
	EnvNewsAPIKey  = "NEWS_API_KEY"
	EnvGuardianKey = "GUARDIAN_API_KEY"
	EnvNYTimesKey  = "NYTIMES_API_KEY"
	EnvDataDir     = "NEWSAGG_DATA_DIR"
	EnvStorage     = "NEWSAGG_STORAGE"
	EnvHTTPAddr    = "NEWSAGG_HTTP_ADDR"
)

// DefaultHTTPAddr is the listen address for `newsagg serve`.
const DefaultHTTPAddr = "127.0.0.1:8080"

// Duration is a time.Duration that reads and writes as a Go duration string
// ("30s", "1h") in TOML.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	parsed, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("%w: duration %q: %v", domain.ErrInvalidInput, string(b), err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config is the typed application configuration.
type Config struct {
	DataDir   string          `toml:"data_dir"`
	Storage   string          `toml:"storage"`
	Server    ServerConfig    `toml:"server"`
	Schedule  ScheduleConfig  `toml:"schedule"`
	Ingestion IngestionConfig `toml:"ingestion"`
	Providers ProvidersConfig `toml:"providers"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// ScheduleConfig configures periodic ingestion while serving.
type ScheduleConfig struct {
	// Interval between runs. Zero disables the scheduler.
	Interval   Duration `toml:"interval"`
	RunOnStart bool     `toml:"run_on_start"`
}

// IngestionConfig tunes the pipeline.
type IngestionConfig struct {
	// Concurrency bounds parallel provider fetches.
	Concurrency int `toml:"concurrency"`
}

// ProvidersConfig holds one section per provider.
type ProvidersConfig struct {
	NewsAPI  ProviderConfig `toml:"newsapi"`
	Guardian ProviderConfig `toml:"guardian"`
	NYTimes  ProviderConfig `toml:"nytimes"`
}

// ProviderConfig is the per-provider file section.
type ProviderConfig struct {
	Enabled   bool     `toml:"enabled"`
	APIKey    string   `toml:"api_key"`
	BaseURL   string   `toml:"base_url"`
	Timeout   Duration `toml:"timeout"`
	RateLimit float64  `toml:"rate_limit"`

	// Country applies to newsapi only.
	Country string `toml:"country,omitempty"`

	// Section applies to nytimes only.
	Section string `toml:"section,omitempty"`
}

// Adapter converts the section into the provider package config.
func (p ProviderConfig) Adapter() provider.Config {
	return provider.Config{
		APIKey:            p.APIKey,
		BaseURL:           p.BaseURL,
		Timeout:           time.Duration(p.Timeout),
		RequestsPerSecond: p.RateLimit,
	}
}

// Defaults returns the configuration used when no file exists.
func Defaults() *Config {
	section := func(baseURL string) ProviderConfig {
		return ProviderConfig{
			Enabled:   true,
			BaseURL:   baseURL,
			Timeout:   Duration(provider.DefaultTimeout),
			RateLimit: provider.DefaultRate,
		}
	}
	return &Config{
		Storage: StorageSQLite,
		Server:  ServerConfig{Addr: DefaultHTTPAddr},
		Schedule: ScheduleConfig{
			Interval: Duration(domain.DefaultIngestionInterval),
		},
		Ingestion: IngestionConfig{Concurrency: 3},
		Providers: ProvidersConfig{
			NewsAPI:  section(newsapi.DefaultBaseURL),
			Guardian: section(guardian.DefaultBaseURL),
			NYTimes:  section(nytimes.DefaultBaseURL),
		},
	}
}

// ApplyEnv overrides settings from the environment.
// lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(EnvNewsAPIKey, &c.Providers.NewsAPI.APIKey)
	set(EnvGuardianKey, &c.Providers.Guardian.APIKey)
	set(EnvNYTimesKey, &c.Providers.NYTimes.APIKey)
	set(EnvDataDir, &c.DataDir)
	set(EnvStorage, &c.Storage)
	set(EnvHTTPAddr, &c.Server.Addr)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Storage != StorageSQLite && c.Storage != StorageMemory {
		errs = append(errs, fmt.Errorf("storage must be %q or %q, got %q", StorageSQLite, StorageMemory, c.Storage))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}
	if c.Schedule.Interval < 0 {
		errs = append(errs, errors.New("schedule.interval must not be negative"))
	}
	if c.Ingestion.Concurrency < 1 {
		errs = append(errs, errors.New("ingestion.concurrency must be at least 1"))
	}
	for _, p := range []struct {
		name string
		cfg  ProviderConfig
	}{
		{newsapi.Name, c.Providers.NewsAPI},
		{guardian.Name, c.Providers.Guardian},
		{nytimes.Name, c.Providers.NYTimes},
	} {
		if p.cfg.Timeout < 0 {
			errs = append(errs, fmt.Errorf("providers.%s.timeout must not be negative", p.name))
		}
		if p.cfg.RateLimit < 0 {
			errs = append(errs, fmt.Errorf("providers.%s.rate_limit must not be negative", p.name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	return nil
}

// SchedulerConfig converts the schedule section for the scheduler service.
func (c *Config) SchedulerConfig() domain.SchedulerConfig {
	return domain.SchedulerConfig{
		Interval:   time.Duration(c.Schedule.Interval),
		RunOnStart: c.Schedule.RunOnStart,
	}
}
