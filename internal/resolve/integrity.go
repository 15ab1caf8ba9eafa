package resolve

import (
	"commentvars/internal/diagnostic"
	"commentvars/internal/keys"
)

// CheckIntegrity verifies that resolved values are placeholder-free and
// unique, then inverts the mapping. Composition can create collisions the
// raw-value check could not see, so uniqueness is checked again here.
//
// order fixes which key is reported first; keys missing from order are
// checked after it in lexical order.
func CheckIntegrity(resolved ResolvedMapping, order []string) (ReverseMapping, diagnostic.Diagnostics) {
	var res diagnostic.Diagnostics

	reverse := make(ReverseMapping, len(resolved))

	for _, key := range completeOrder(resolved, order) {
		value := resolved[key]

		if keys.IsComposed(value) {
			res.AddErrorf("resolved value %q of %s still contains placeholder syntax", value, key)
			return nil, res
		}

		if prev, dup := reverse[value]; dup {
			res.AddErrorf("keys %s and %s both resolve to %q; resolved values must be unique", prev, key, value)
			return nil, res
		}

		reverse[value] = key
	}

	return reverse, res
}

func completeOrder(resolved ResolvedMapping, order []string) []string {
	out := make([]string, 0, len(resolved))
	listed := make(map[string]struct{}, len(order))

	for _, k := range order {
		if _, ok := resolved[k]; !ok {
			continue
		}

		if _, dup := listed[k]; dup {
			continue
		}

		listed[k] = struct{}{}
		out = append(out, k)
	}

	for _, k := range resolved.SortedKeys() {
		if _, ok := listed[k]; !ok {
			out = append(out, k)
		}
	}

	return out
}
