package config

import (
	"fmt"
	"sort"
)

// Pos is a 1-based line/column position in a document.
type Pos struct {
	Line   int
	Column int
}

// String returns "line:column".
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Tree is an ordered mapping from raw keys to string leaves or subtrees.
type Tree struct {
	Entries []Entry
}

// Entry is one key of a Tree.
//
// Value is a string leaf, a *Tree, or any other decoded value; anything
// other than a string or *Tree is an invalid leaf.
type Entry struct {
	Key   string
	Value any
	Pos   Pos
}

// Len returns the number of entries at this level.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}

	return len(t.Entries)
}

// Add appends an entry and returns the tree for chaining.
func (t *Tree) Add(key string, value any) *Tree {
	t.Entries = append(t.Entries, Entry{Key: key, Value: value})
	return t
}

// Get returns the value stored under key at this level.
func (t *Tree) Get(key string) (any, bool) {
	if t == nil {
		return nil, false
	}

	for _, e := range t.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}

	return nil, false
}

// FromMap builds a Tree from nested maps. Keys are sorted so the result is
// deterministic; nested map[string]any values become subtrees.
func FromMap(m map[string]any) *Tree {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	t := &Tree{}

	for _, k := range keys {
		switch v := m[k].(type) {
		case map[string]any:
			t.Add(k, FromMap(v))
		case map[string]string:
			sub := make(map[string]any, len(v))
			for sk, sv := range v {
				sub[sk] = sv
			}

			t.Add(k, FromMap(sub))
		default:
			t.Add(k, v)
		}
	}

	return t
}
