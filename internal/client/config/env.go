package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const envFile = ".env"

// Environment variables understood by parseEnv.
const (
	EnvIdentityEndpoint  = "TRACKIT_IDENTITY_ENDPOINT"
	EnvAPIKey            = "TRACKIT_API_KEY"
	EnvDataStoreEndpoint = "TRACKIT_DATASTORE_ENDPOINT"
	EnvDatabasePath      = "TRACKIT_DB_PATH"
	EnvSessionBackend    = "TRACKIT_SESSION_BACKEND"
	EnvRequestTimeout    = "TRACKIT_REQUEST_TIMEOUT"
	EnvLogLevel          = "TRACKIT_LOG_LEVEL"
)

// parseEnv overlays cfg with TRACKIT_* values from the dotenv file at path
// (missing file is fine) and from the process environment, which wins. The
// process environment is not modified.
func parseEnv(cfg *Config, path string) {
	values := map[string]string{}
	if path != "" {
		fileValues, err := godotenv.Read(path)
		switch {
		case err == nil:
			values = fileValues
		case errors.Is(err, fs.ErrNotExist):
		default:
			panic(err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}

	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	set(EnvIdentityEndpoint, &cfg.IdentityEndpoint)
	set(EnvAPIKey, &cfg.APIKey)
	set(EnvDataStoreEndpoint, &cfg.DataStoreEndpoint)
	set(EnvDatabasePath, &cfg.DatabasePath)
	set(EnvSessionBackend, &cfg.SessionBackend)
	set(EnvLogLevel, &cfg.LogLevel)

	if v, ok := lookup(EnvRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}
