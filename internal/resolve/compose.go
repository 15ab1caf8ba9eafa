package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"commentvars/internal/diagnostic"
	"commentvars/internal/keys"
)

// maxSuggestions caps the "did you mean" list of an unknown reference.
const maxSuggestions = 3

// Compose expands every composed value of c into its final literal.
//
// A composed value is two or more placeholder tokens separated by single
// spaces, starting at the first character. Each token must name a plain
// entry, directly or through one alias hop. Composition is one level deep:
// a token naming another composed entry is an error. Entries without
// placeholder syntax pass through unchanged.
func Compose(c *Classification) (ResolvedMapping, diagnostic.Diagnostics) {
	var res diagnostic.Diagnostics

	resolved := make(ResolvedMapping, len(c.Order))

	for _, key := range c.Order {
		value := c.Plain[key]
		if !keys.IsComposed(value) {
			resolved[key] = value
			continue
		}

		expanded, ok := expand(&res, c, key, value)
		if !ok {
			return nil, res
		}

		resolved[key] = expanded
	}

	return resolved, res
}

func expand(res *diagnostic.Diagnostics, c *Classification, key, value string) (string, bool) {
	refs, ok := splitComposed(res, key, value)
	if !ok {
		return "", false
	}

	parts := make([]string, 0, len(refs))

	for _, ref := range refs {
		target := ref
		if aliased, isAlias := c.Aliases[ref]; isAlias {
			target = aliased
		}

		literal, found := c.Plain[target]
		if !found {
			res.AddError(fmt.Sprintf("composed value %q of %s references unknown key %s", value, key, ref),
				suggest(ref, c)...)

			return "", false
		}

		if target == key {
			res.AddErrorf("composed variable %s references itself", key)
			return "", false
		}

		if keys.IsComposed(literal) {
			via := ""
			if target != ref {
				via = " (through alias " + ref + ")"
			}

			res.AddErrorf("composed variable %s references %s%s, which is itself composed; "+
				"composition is only one level deep", key, target, via)

			return "", false
		}

		parts = append(parts, literal)
	}

	return strings.Join(parts, " "), true
}

// splitComposed checks the shape of a composed value and returns the
// identifiers it references, in order.
func splitComposed(res *diagnostic.Diagnostics, key, value string) ([]string, bool) {
	if !strings.HasPrefix(value, keys.Marker) {
		res.AddErrorf("composed value %q of %s must start with a placeholder (%s...)", value, key, keys.Marker)
		return nil, false
	}

	segments := strings.Split(value, " ")
	if len(segments) < 2 {
		res.AddErrorf("composed value %q of %s needs at least two placeholders separated by single spaces; "+
			"reference a single variable with an alias instead", value, key)

		return nil, false
	}

	refs := make([]string, 0, len(segments))

	for _, seg := range segments {
		ref, ok := keys.ParsePlaceholder(seg)
		if !ok {
			res.AddErrorf("segment %q of composed value %q (%s) is not a placeholder", seg, value, key)
			return nil, false
		}

		refs = append(refs, ref)
	}

	return refs, true
}

// suggest returns the known keys closest to an unknown reference.
func suggest(ref string, c *Classification) []string {
	candidates := make([]string, 0, len(c.Order)+len(c.AliasOrder))
	candidates = append(candidates, c.Order...)
	candidates = append(candidates, c.AliasOrder...)

	ranks := fuzzy.RankFindFold(ref, candidates)
	sort.Sort(ranks)

	var out []string
	for _, r := range ranks {
		if len(out) == maxSuggestions {
			break
		}

		out = append(out, r.Target)
	}

	if len(out) > 0 {
		return out
	}

	// Fall back to a shared leading path segment for typos fuzzy search misses.
	head, _, _ := strings.Cut(ref, keys.Separator)
	for _, k := range candidates {
		if len(out) == maxSuggestions {
			break
		}

		if strings.HasPrefix(k, head+keys.Separator) {
			out = append(out, k)
		}
	}

	return out
}
