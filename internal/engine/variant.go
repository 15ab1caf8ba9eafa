package engine

import (
	"fmt"
	"maps"

	"commentvars/internal/config"
	"commentvars/internal/diagnostic"
	"commentvars/internal/keys"
	"commentvars/internal/resolve"
)

// Variant is a resolved variation of the core variables.
type Variant struct {
	Name     string
	Resolved resolve.ResolvedMapping
	Reverse  resolve.ReverseMapping
	// Overrides lists the keys the variant sets, in document order.
	Overrides []string

	aliases map[string]string
}

// Lookup returns the variant literal for key, following one alias hop.
func (v *Variant) Lookup(key string) (string, bool) {
	if target, ok := v.aliases[key]; ok {
		key = target
	}

	s, ok := v.Resolved[key]

	return s, ok
}

// ResolveVariant resolves a variation tree against a core result.
//
// Variant keys must already exist in the core set and may not be aliases.
// The reference table holds the core non-composed literals overlaid with the
// variant's plain values, with aliases following their target. Every composed
// entry, core or variant, is expanded against it so leaf overrides reach
// compositions.
func ResolveVariant(core *Result, name string, tree *config.Tree) (*Variant, diagnostic.Diagnostics) {
	entries, diags := resolve.Flatten(tree)
	if diags.HasErrors() {
		return nil, prefixed(name, diags)
	}

	if !checkVariantKeys(&diags, core, name, entries) {
		return nil, diags
	}

	// Composition stays one level deep: composed keys are not referenceable.
	reference := core.Resolved.Clone()
	for key := range core.Composed {
		delete(reference, key)
	}

	raw := maps.Clone(core.Plain)
	overrides := make([]string, 0, len(entries))

	for _, e := range entries {
		raw[e.Key] = e.Value
		overrides = append(overrides, e.Key)

		if !keys.IsComposed(e.Value) {
			reference[e.Key] = e.Value
		}
	}

	for alias, target := range core.Aliases {
		if v, ok := reference[target]; ok {
			reference[alias] = v
		}
	}

	ordered := make([]resolve.FlatEntry, 0, len(core.Order))
	for _, key := range core.Order {
		ordered = append(ordered, resolve.FlatEntry{Key: key, Value: raw[key], Source: core.Sources[key]})
	}

	resolved, diags := resolve.ResolveVariation(ordered, reference)
	if diags.HasErrors() {
		return nil, prefixed(name, diags)
	}

	reverse, diags := resolve.CheckIntegrity(resolved, core.Order)
	if diags.HasErrors() {
		return nil, prefixed(name, diags)
	}

	return &Variant{
		Name:      name,
		Resolved:  resolved,
		Reverse:   reverse,
		Overrides: overrides,
		aliases:   core.Aliases,
	}, diags
}

func checkVariantKeys(res *diagnostic.Diagnostics, core *Result, name string, entries []resolve.FlatEntry) bool {
	for _, e := range entries {
		if target, isAlias := core.Aliases[e.Key]; isAlias {
			res.AddErrorf("variation %q overrides %s, an alias of %s; override %s instead", name, e.Key, target, target)
			return false
		}

		if _, ok := core.Plain[e.Key]; !ok {
			res.AddErrorf("variation %q declares %s (from %q), which is not a core key", name, e.Key, e.Source)
			return false
		}

		if s, bad := keys.ForbiddenSubstring(e.Value); bad {
			res.AddErrorf("value %q of %s in variation %q contains %q, which would break the surrounding comment",
				e.Value, e.Key, name, s)

			return false
		}
	}

	return true
}

func prefixed(name string, diags diagnostic.Diagnostics) diagnostic.Diagnostics {
	var out diagnostic.Diagnostics

	for _, d := range diags.Items {
		d.Message = fmt.Sprintf("variation %q: %s", name, d.Message)
		out.Items = append(out.Items, d)
	}

	return out
}
