package commentscan

import (
	"slices"

	"commentvars/internal/diagnostic"
)

// Lookup resolves a key to its literal text.
type Lookup interface {
	Lookup(key string) (string, bool)
}

// Report returns a warning for every usage whose key does not resolve.
func Report(usages []Usage, lookup Lookup) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	for _, u := range usages {
		if _, ok := lookup.Lookup(u.Key); !ok {
			diags.AddWarningf("%s: unknown placeholder %s", u.Start, u.Token)
		}
	}

	return diags
}

// Tally counts usages per key.
func Tally(usages []Usage) map[string]int {
	counts := make(map[string]int)
	for _, u := range usages {
		counts[u.Key]++
	}

	return counts
}

// Unused returns the keys, in the given order, that no usage references.
func Unused(usages []Usage, keys []string) []string {
	counts := Tally(usages)

	return slices.DeleteFunc(slices.Clone(keys), func(k string) bool {
		return counts[k] > 0
	})
}
