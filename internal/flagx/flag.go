// Package flagx contains helpers for parsing a subset of the command line
// without tripping over flags owned by other packages (including the flags
// the test binary registers).
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns only the arguments belonging to the allowed flags,
// keeping their values. Two spellings are recognized:
//
//	-a value          flag and value as separate arguments
//	--flag=value      flag and value joined with '='
//
// Anything else is dropped, so a flag.FlagSet parsing the result never sees
// an unknown flag.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, name := range allowedFlags {
		allowed[name] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// ConfigFilePath resolves the path of the optional JSON config file.
// The -c / -config flags take precedence; the QMSHUB_CONFIG environment
// variable is the fallback. Returns "" when neither is set.
func ConfigFilePath() string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "path to the JSON config file")
	fs.StringVar(&config, "c", "", "path to the JSON config file (short)")
	_ = fs.Parse(args)

	if config == "" {
		config = os.Getenv("QMSHUB_CONFIG")
	}
	return config
}
