package resolve

import (
	"commentvars/internal/config"
)

// flatTree builds a single-level tree from key/value pairs, keeping order.
func flatTree(pairs ...string) *config.Tree {
	t := &config.Tree{}
	for i := 0; i+1 < len(pairs); i += 2 {
		t.Add(pairs[i], pairs[i+1])
	}

	return t
}

// entries builds flat entries from key/value pairs, keeping order.
func entries(pairs ...string) []FlatEntry {
	var out []FlatEntry
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, FlatEntry{Key: pairs[i], Value: pairs[i+1], Source: pairs[i]})
	}

	return out
}
