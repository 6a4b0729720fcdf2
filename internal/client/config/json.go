package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/benchauth/internal/flagx"
	"github.com/dmitrijs2005/benchauth/internal/timex"
)

// JsonConfig is the on-disk shape. Every field is optional; missing fields
// keep the value already in Config.
type JsonConfig struct {
	StorePath        *string         `json:"store_path"`
	BusyTimeout      *timex.Duration `json:"busy_timeout"`
	LogLevel         *string         `json:"log_level"`
	CredentialScheme *string         `json:"credential_scheme"`
}

// parseJson overlays cfg with the file named by -c/-config in args.
// It panics when the file cannot be read or parsed.
func parseJson(cfg *Config, args []string) {
	path := flagx.JsonConfigFlags(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.StorePath != nil {
		cfg.StorePath = *jc.StorePath
	}
	if jc.BusyTimeout != nil {
		cfg.BusyTimeout = jc.BusyTimeout.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.CredentialScheme != nil {
		cfg.CredentialScheme = *jc.CredentialScheme
	}
}
