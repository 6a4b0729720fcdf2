package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/benchauth/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-s string   store file path
//	-t int      busy timeout (seconds)
//	-l string   log level
//	-e string   credential scheme
//
// Arguments other than these are filtered out first so that -c/-config and
// anything unknown do not trip the parser. A malformed value panics.
func parseFlags(cfg *Config, args []string) {
	filtered := flagx.FilterArgs(args, []string{"-s", "-t", "-l", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "path to the local store file")
	busy := fs.Int("t", int(cfg.BusyTimeout.Seconds()), "busy timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug|info|warn|error")
	fs.StringVar(&cfg.CredentialScheme, "e", cfg.CredentialScheme, "credential scheme: legacy|argon2id")

	if err := fs.Parse(filtered); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.BusyTimeout = time.Duration(*busy) * time.Second
		}
	})
}
