// Package file provides the file-based configuration adapter.
//
// Configuration lives in a TOML file (default ~/.newsagg/config.toml):
//
//	data_dir = "/var/lib/newsagg"
//	storage = "sqlite"
//
//	[server]
//	addr = "127.0.0.1:8080"
//
//	[schedule]
//	interval = "1h"
//
//	[providers.newsapi]
//	api_key = "..."
//	timeout = "10s"
//	rate_limit = 1.0
//
// API keys and a few other settings can be overridden from the environment;
// see the Env* constants.
package file
