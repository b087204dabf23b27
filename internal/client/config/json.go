package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/trackit/internal/flagx"
	"github.com/dmitrijs2005/trackit/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the corresponding Config field untouched.
type JsonConfig struct {
	IdentityEndpoint  string          `json:"identity_endpoint"`
	APIKey            string          `json:"api_key"`
	DataStoreEndpoint string          `json:"datastore_endpoint"`
	DatabasePath      string          `json:"database_path"`
	SessionBackend    string          `json:"session_backend"`
	RequestTimeout    *timex.Duration `json:"request_timeout"`
	LogLevel          string          `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c/-config. Without
// that flag nothing happens. Read and decode errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	overlay(&cfg.IdentityEndpoint, jc.IdentityEndpoint)
	overlay(&cfg.APIKey, jc.APIKey)
	overlay(&cfg.DataStoreEndpoint, jc.DataStoreEndpoint)
	overlay(&cfg.DatabasePath, jc.DatabasePath)
	overlay(&cfg.SessionBackend, jc.SessionBackend)
	overlay(&cfg.LogLevel, jc.LogLevel)

	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
