package driven

// ConfigStore is a key/value view of the configuration file.
// Keys use dot notation, e.g. "providers.newsapi.api_key".
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a value formatted as a string.
	// Returns empty string if key doesn't exist.
	GetString(key string) string

	// Keys returns every set key in sorted order.
	Keys() []string

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Path returns the configuration file path.
	Path() string
}
