// Package config loads runtime configuration for the accounts CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-s string   path to the SQLite store file
//	-t int      busy timeout (seconds)
//	-l string   log level
//	-e string   credential scheme (legacy|argon2id)
//
// # JSON schema
//
// busy_timeout is a timex.Duration, so either "5s" or integer nanoseconds:
//
//	{
//	  "store_path": "data/accounts.db",
//	  "busy_timeout": "5s",
//	  "log_level": "info",
//	  "credential_scheme": "legacy"
//	}
package config
