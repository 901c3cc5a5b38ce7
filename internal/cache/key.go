package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// keySeparator joins key parts before hashing. It never reaches storage,
// so it only has to be unlikely inside parameter values.
const keySeparator = "|"

// DeriveKey builds a deterministic cache key from an operation name, an
// optional prefix, positional arguments and named parameters. Named
// parameters are sorted by name so call-site ordering does not matter.
// The joined form is hashed so keys stay bounded and raw parameter values
// never appear in the store.
func DeriveKey(op, prefix string, args []string, named map[string]string) string {
	parts := make([]string, 0, 2+len(args)+len(named))
	parts = append(parts, op)
	if prefix != "" {
		parts = append(parts, prefix)
	}
	parts = append(parts, args...)

	if len(named) > 0 {
		names := make([]string, 0, len(named))
		for name := range named {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			parts = append(parts, name+"="+named[name])
		}
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, keySeparator)))
	return hex.EncodeToString(sum[:])
}
