package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	BackendSQLite  = "sqlite"
	BackendKeyring = "keyring"
)

// Config holds runtime settings for the TrackIt client.
type Config struct {
	IdentityEndpoint  string        `validate:"required,url"`
	APIKey            string        `validate:"required"`
	DataStoreEndpoint string        `validate:"required,url"`
	DatabasePath      string        `validate:"required"`
	SessionBackend    string        `validate:"oneof=sqlite keyring"`
	RequestTimeout    time.Duration `validate:"gt=0"`
	LogLevel          string        `validate:"oneof=debug info warn error"`
}

// LoadDefaults populates c with sensible defaults. There is no default API
// key.
func (c *Config) LoadDefaults() {
	c.IdentityEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts"
	c.DataStoreEndpoint = "https://full-stack-expenses-with-type-default-rtdb.firebaseio.com/users"
	c.DatabasePath = "trackit.db"
	c.SessionBackend = BackendSQLite
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays the .env
// file and environment, JSON (if present) and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, envFile)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate checks every field and names the first offending one.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("config: invalid %s (rule %q)", fe.Field(), fe.Tag())
	}
	return fmt.Errorf("config: %w", err)
}
