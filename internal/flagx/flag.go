// Package flagx lets several config loaders share one command line: each
// loader picks out only the flags it owns before parsing.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs keeps the arguments whose flag name is in allowed, together
// with a following value when the value is passed as a separate argument.
// Both "-f value" and "-f=value" forms are recognised. Order is preserved.
func FilterArgs(args []string, allowed []string) []string {
	names := make(map[string]bool, len(allowed))
	for _, f := range allowed {
		names[f] = true
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if name, _, found := strings.Cut(arg, "="); found {
			if names[name] {
				filtered = append(filtered, arg)
			}
			continue
		}

		if !names[arg] {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// JsonConfigFlags returns the config file path given with -c or -config in
// args (normally os.Args[1:]), or "" when neither is present.
func JsonConfigFlags(args []string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))

	return path
}
