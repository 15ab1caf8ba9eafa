package resolve

import (
	"commentvars/internal/config"
	"commentvars/internal/diagnostic"
	"commentvars/internal/keys"
)

// Resolve runs Flatten, Classify, Compose and CheckIntegrity in sequence and
// stops at the first stage that reports an error.
func Resolve(tree *config.Tree) (*Resolution, diagnostic.Diagnostics) {
	entries, diags := Flatten(tree)
	if diags.HasErrors() {
		return nil, diags
	}

	return ResolveEntries(entries)
}

// ResolveEntries runs the pipeline from an already flattened entry list.
func ResolveEntries(entries []FlatEntry) (*Resolution, diagnostic.Diagnostics) {
	c, diags := Classify(entries)
	if diags.HasErrors() {
		return nil, diags
	}

	resolved, diags := Compose(c)
	if diags.HasErrors() {
		return nil, diags
	}

	reverse, diags := CheckIntegrity(resolved, c.Order)
	if diags.HasErrors() {
		return nil, diags
	}

	composed := map[string]string{}

	for _, key := range c.Order {
		if v := c.Plain[key]; keys.IsComposed(v) {
			composed[key] = v
		}
	}

	return &Resolution{
		Classification: *c,
		Composed:       composed,
		Resolved:       resolved,
		Reverse:        reverse,
	}, diags
}
