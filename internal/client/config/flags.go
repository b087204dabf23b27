package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/trackit/internal/flagx"
)

var knownFlags = []string{"-e", "-k", "-d", "-f", "-s", "-t", "-l"}

// parseFlags populates Config fields from command-line flags. os.Args is
// filtered with flagx.FilterArgs first so -c/-config and unknown arguments
// do not trip the flag set. Parse errors panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.IdentityEndpoint, "e", cfg.IdentityEndpoint, "identity provider base URL")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "identity provider API key")
	fs.StringVar(&cfg.DataStoreEndpoint, "d", cfg.DataStoreEndpoint, "data store base URL")
	fs.StringVar(&cfg.DatabasePath, "f", cfg.DatabasePath, "local SQLite database path")
	fs.StringVar(&cfg.SessionBackend, "s", cfg.SessionBackend, "session backend (sqlite|keyring)")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "HTTP request timeout")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
