package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"commentvars/internal/diagnostic"
	"commentvars/internal/keys"
)

// Validate checks the document schema: every data key obeys the key
// character class, top-level keys avoid reserved names, every leaf is a
// non-empty string or a mapping, and every ignore is a valid glob.
// This is a structural check only; resolution rules are enforced later.
func Validate(doc *Document) diagnostic.Diagnostics {
	var res diagnostic.Diagnostics

	if doc == nil {
		res.AddError("variables document is nil")
		return res
	}

	validateTree(&res, doc.Data, nil, true)

	for _, name := range doc.VariationOrder {
		validateTree(&res, doc.Variations[name], []string{name}, false)
	}

	for _, pattern := range doc.Ignores {
		if !doublestar.ValidatePattern(pattern) {
			res.AddErrorf("invalid ignore glob %q", pattern)
		}
	}

	return res
}

func validateTree(res *diagnostic.Diagnostics, t *Tree, path []string, top bool) {
	if t == nil {
		return
	}

	for _, e := range t.Entries {
		p := append(append([]string{}, path...), e.Key)
		where := strings.Join(p, keys.SourceSeparator)

		if !keys.ValidRawKey(e.Key) {
			res.AddErrorf("key %q at %s contains disallowed characters "+
				"(letters, digits, whitespace, dashes and underscores only; no \"$\" or \"#\")", e.Key, where)

			continue
		}

		if top && keys.IsReserved(e.Key) {
			res.AddErrorf("key %q at %s is reserved for a document section", e.Key, where)
			continue
		}

		switch v := e.Value.(type) {
		case *Tree:
			validateTree(res, v, p, false)
		case string:
			if v == "" {
				res.AddErrorf("value at %s must not be empty", where)
			}
		default:
			res.AddErrorf("value at %s must be a string or a mapping, got %s", where, describe(v))
		}
	}
}

func describe(v any) string {
	if v == nil {
		return "null"
	}

	return fmt.Sprintf("%T", v)
}
