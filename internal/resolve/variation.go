package resolve

import (
	"strings"

	"commentvars/internal/diagnostic"
	"commentvars/internal/keys"
)

// ResolveVariation expands composed entries against an already finalized
// reference table instead of the entries' own tree.
//
// Composed values get the same shape checks as in Compose. Every placeholder
// must name a key of the reference table. Entries without placeholder syntax
// pass through.
func ResolveVariation(entries []FlatEntry, reference ResolvedMapping) (ResolvedMapping, diagnostic.Diagnostics) {
	var res diagnostic.Diagnostics

	out := make(ResolvedMapping, len(entries))

	for _, e := range entries {
		if !keys.IsComposed(e.Value) {
			out[e.Key] = e.Value
			continue
		}

		refs, ok := splitComposed(&res, e.Key, e.Value)
		if !ok {
			return nil, res
		}

		parts := make([]string, 0, len(refs))

		for _, ref := range refs {
			literal, ok := reference[ref]
			if !ok {
				res.AddErrorf("composed value %q of %s references %s, which is not in the reference set", e.Value, e.Key, ref)
				return nil, res
			}

			parts = append(parts, literal)
		}

		out[e.Key] = strings.Join(parts, " ")
	}

	return out, res
}
