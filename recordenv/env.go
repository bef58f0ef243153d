package recordenv

import (
	"os"
	"strings"

	"github.com/Azhovan/vetter"
	"github.com/Azhovan/vetter/internal/normalize"
)

// Options configures environment record building.
type Options struct {
	// Prefix filters vars starting with prefix (stripped before normalization).
	// Empty = load all vars.
	// Prefix matching behavior is controlled by CaseSensitive.
	Prefix string

	// CaseSensitive controls prefix matching (default: false).
	// When false, prefix matching is case-insensitive (APP_ matches app_, App_, etc.).
	// When true, prefix must match exactly.
	// Keys are always lowercased after prefix stripping.
	CaseSensitive bool
}

// New scans the environment, filters by prefix, and builds a record with
// normalized attribute names. All values are strings; declare coerce rules
// for typed checks.
func New(opts Options) *vetter.MapRecord {
	return fromPairs(os.Environ(), opts)
}

// fromPairs builds a record from "KEY=VALUE" pairs.
func fromPairs(pairs []string, opts Options) *vetter.MapRecord {
	values := make(map[string]any)

	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := parts[0]
		value := parts[1]

		if opts.Prefix != "" {
			var hasPrefix bool
			if opts.CaseSensitive {
				hasPrefix = strings.HasPrefix(key, opts.Prefix)
			} else {
				hasPrefix = strings.HasPrefix(strings.ToUpper(key), strings.ToUpper(opts.Prefix))
			}

			if !hasPrefix {
				continue
			}
			key = key[len(opts.Prefix):]
		}

		if key == "" {
			continue
		}

		values[normalize.EnvKey(key)] = value
	}

	return vetter.NewMapRecord(values)
}
