// Package config loads runtime configuration for the TrackIt client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory and TRACKIT_* environment
//     variables (see parseEnv); real environment variables win over the file.
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-e string     identity provider base URL
//	-k string     identity provider API key
//	-d string     data store base URL
//	-f string     path of the local SQLite database
//	-s string     session backend: "sqlite" or "keyring"
//	-t duration   HTTP request timeout
//	-l string     log level: debug, info, warn, error
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "15s" or integer
// nanoseconds:
//
//	{
//	  "identity_endpoint": "https://identitytoolkit.googleapis.com/v1/accounts",
//	  "api_key": "...",
//	  "datastore_endpoint": "https://example-rtdb.firebaseio.com/users",
//	  "database_path": "trackit.db",
//	  "session_backend": "sqlite",
//	  "request_timeout": "15s",
//	  "log_level": "info"
//	}
//
// Loading panics on unreadable or malformed sources; Validate reports bad
// values.
package config
