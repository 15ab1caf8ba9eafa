package resolve

import (
	"fmt"

	"commentvars/internal/config"
	"commentvars/internal/diagnostic"
	"commentvars/internal/keys"
)

// Flatten walks the tree depth-first and returns one entry per string leaf,
// in document order. It fails on the first leaf that is neither a string nor
// a subtree and on the first pair of paths normalizing to one identifier.
func Flatten(tree *config.Tree) ([]FlatEntry, diagnostic.Diagnostics) {
	f := &flattener{sources: map[string]string{}}
	f.walk(tree, nil)

	if f.diags.HasErrors() {
		return nil, f.diags
	}

	return f.entries, f.diags
}

// flattener is the single writer of the flat mapping; duplicates are caught
// at insertion time.
type flattener struct {
	entries []FlatEntry
	sources map[string]string
	diags   diagnostic.Diagnostics
}

func (f *flattener) walk(t *config.Tree, path []string) bool {
	if t == nil {
		return true
	}

	for _, e := range t.Entries {
		p := append(path[:len(path):len(path)], e.Key)

		switch v := e.Value.(type) {
		case *config.Tree:
			if !f.walk(v, p) {
				return false
			}

		case string:
			if !f.insert(p, v) {
				return false
			}

		default:
			_, source := keys.Normalize(p)
			f.diags.AddErrorf("value at %q is neither a string nor a nested mapping (got %s)", source, typeName(v))

			return false
		}
	}

	return true
}

func (f *flattener) insert(path []string, value string) bool {
	id, source := keys.Normalize(path)

	if prev, dup := f.sources[id]; dup {
		f.diags.AddErrorf("duplicate key %s: %q and %q normalize to the same identifier", id, prev, source)
		return false
	}

	f.sources[id] = source
	f.entries = append(f.entries, FlatEntry{Key: id, Value: value, Source: source})

	return true
}

func typeName(v any) string {
	if v == nil {
		return "null"
	}

	return fmt.Sprintf("%T", v)
}
