// Package envy automatically exposes environment
// variables for all of your flags.
package envy

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// Parse takes a prefix string and exposes environment variables
// for all flags in the default FlagSet (flag.CommandLine) in the
// form of PREFIX_FLAGNAME.
func Parse(p string) error {
	return ParseFlagSet(p, flag.CommandLine)
}

// ParseFlagSet takes a prefix string p and *flag.FlagSet. Each flag
// in the FlagSet is exposed as an upper case environment variable
// prefixed with p. Any flag that was not explicitly set by a user
// is updated to the environment variable, if set.
//
// An error is returned for the first environment variable whose
// value is not valid for its flag.
func ParseFlagSet(p string, fs *flag.FlagSet) error {
	// Build a map of explicitly set flags.
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	var err error
	fs.VisitAll(func(f *flag.Flag) {
		envVar := Name(p, f.Name)

		if val, ok := os.LookupEnv(envVar); ok && val != "" && !set[f.Name] {
			if serr := fs.Set(f.Name, val); serr != nil && err == nil {
				err = fmt.Errorf("invalid value %q for %s: %w", val, envVar, serr)
			}
		}

		// Append the env var to the Flag.Usage field.
		if !strings.HasSuffix(f.Usage, "["+envVar+"]") {
			f.Usage = fmt.Sprintf("%s [%s]", f.Usage, envVar)
		}
	})
	return err
}

// Name returns the environment variable name for flag name
// using prefix p.
func Name(p, name string) string {
	envVar := fmt.Sprintf("%s_%s", p, strings.ToUpper(name))
	return strings.ReplaceAll(envVar, "-", "_")
}
