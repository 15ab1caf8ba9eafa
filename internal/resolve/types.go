package resolve

import (
	"maps"
	"slices"
)

// FlatEntry is one leaf of the configuration tree.
type FlatEntry struct {
	// Key is the normalized identifier, e.g. "COMMENT#IS_BLUE".
	Key string
	// Value is the raw leaf value.
	Value string
	// Source is the original key path, e.g. "Comment > Is Blue".
	Source string
}

// ResolvedMapping maps an identifier to its final literal text.
type ResolvedMapping map[string]string

// ReverseMapping maps a literal text back to its identifier.
type ReverseMapping map[string]string

// Clone returns a copy of the mapping.
func (m ResolvedMapping) Clone() ResolvedMapping {
	return maps.Clone(m)
}

// SortedKeys returns the identifiers in lexical order.
func (m ResolvedMapping) SortedKeys() []string {
	return slices.Sorted(maps.Keys(m))
}

// Classification is the output of Classify.
type Classification struct {
	// Entries are all flat entries in document order.
	Entries []FlatEntry
	// Aliases maps an alias key to the key that owns its value.
	Aliases map[string]string
	// Plain maps every non-alias key to its raw value, composed values included.
	Plain map[string]string
	// Order lists the non-alias keys in document order.
	Order []string
	// AliasOrder lists the alias keys in document order.
	AliasOrder []string
	// Sources maps every key to its source trail.
	Sources map[string]string
}

// IsAlias reports whether key is an alias.
func (c *Classification) IsAlias(key string) bool {
	_, ok := c.Aliases[key]
	return ok
}

// Resolution is the final symbol table produced by Resolve.
type Resolution struct {
	Classification

	// Composed maps composed keys to their raw (unexpanded) values.
	Composed map[string]string
	// Resolved maps every non-alias key to its final literal.
	Resolved ResolvedMapping
	// Reverse maps every final literal to its non-alias key.
	Reverse ReverseMapping
}

// Lookup returns the final literal for key, following one alias hop.
func (r *Resolution) Lookup(key string) (string, bool) {
	if target, ok := r.Aliases[key]; ok {
		key = target
	}

	v, ok := r.Resolved[key]

	return v, ok
}

// Identify returns the key whose final literal is value.
func (r *Resolution) Identify(value string) (string, bool) {
	k, ok := r.Reverse[value]
	return k, ok
}
