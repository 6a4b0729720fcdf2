package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the accounts CLI.
//
// Fields:
//   - StorePath: SQLite file backing the durable store (":memory:" for none).
//   - BusyTimeout: how long SQLite waits on a locked database file.
//   - LogLevel: debug, info, warn or error.
//   - CredentialScheme: "legacy" (compatible, reversible) or "argon2id".
type Config struct {
	StorePath        string
	BusyTimeout      time.Duration
	LogLevel         string
	CredentialScheme string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.StorePath = "data/accounts.db"
	c.BusyTimeout = 5 * time.Second
	c.LogLevel = "info"
	c.CredentialScheme = "legacy"
}

// LoadConfig applies defaults, then the JSON file named by -c/-config, then
// flags. Later sources take precedence.
func LoadConfig() *Config {
	return loadFromArgs(os.Args[1:])
}

func loadFromArgs(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
