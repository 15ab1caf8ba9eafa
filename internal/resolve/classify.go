package resolve

import (
	"commentvars/internal/diagnostic"
	"commentvars/internal/keys"
)

// Classify partitions flat entries into plain/composed entries and aliases.
//
// An entry whose value equals the raw value of an earlier entry is an alias
// of that entry; the first entry in document order owns each value. Aliases
// are decided before composition, so a repeated composed value is an alias
// too. Composed entries stay in Plain until Compose expands them.
func Classify(entries []FlatEntry) (*Classification, diagnostic.Diagnostics) {
	var res diagnostic.Diagnostics

	c := &Classification{
		Entries: entries,
		Aliases: map[string]string{},
		Plain:   map[string]string{},
		Sources: make(map[string]string, len(entries)),
	}

	owners := map[string]string{}

	for _, e := range entries {
		c.Sources[e.Key] = e.Source

		if owner, ok := owners[e.Value]; ok && owner != e.Key {
			c.Aliases[e.Key] = owner
			c.AliasOrder = append(c.AliasOrder, e.Key)

			continue
		}

		owners[e.Value] = e.Key
		c.Plain[e.Key] = e.Value
		c.Order = append(c.Order, e.Key)
	}

	for _, key := range c.Order {
		if !keys.ValidIdentifier(key) {
			res.AddErrorf("key %s (from %q) is not a valid identifier", key, c.Sources[key])
			return nil, res
		}
	}

	for _, e := range entries {
		if s, bad := keys.ForbiddenSubstring(e.Value); bad {
			res.AddErrorf("value %q of %s contains %q, which would break the surrounding comment", e.Value, e.Key, s)
			return nil, res
		}
	}

	if !validateAliases(&res, c) {
		return nil, res
	}

	if !checkRawDuplicates(&res, c) {
		return nil, res
	}

	return c, res
}

// validateAliases allows exactly one level of indirection and rejects
// aliases that would make a composed variable refer to itself.
func validateAliases(res *diagnostic.Diagnostics, c *Classification) bool {
	for _, alias := range c.AliasOrder {
		target := c.Aliases[alias]

		if target == alias {
			res.AddErrorf("alias %s references itself", alias)
			return false
		}

		// Unreachable through Classify, where owners are never aliases; guards
		// hand-built classifications.
		if next, chained := c.Aliases[target]; chained {
			res.AddErrorf("alias %s targets %s, which is itself an alias of %s; aliases allow a single level of indirection",
				alias, target, next)
			res.AddErrorf("look to the value of %s (from %q)", target, c.Sources[target])

			return false
		}

		targetValue, ok := c.Plain[target]
		if !ok {
			res.AddErrorf("alias %s targets unknown key %s", alias, target)
			return false
		}

		if !keys.IsComposed(targetValue) {
			continue
		}

		if references(targetValue, target) {
			res.AddErrorf("composed variable %s references itself in %q", target, targetValue)
			return false
		}

		if references(targetValue, alias) {
			res.AddErrorf("alias %s targets composed variable %s, whose value %q references the alias back",
				alias, target, targetValue)

			return false
		}
	}

	return true
}

// checkRawDuplicates rejects two non-alias entries sharing one raw value.
// Classify makes every repeat an alias, so this only fires for
// classifications built by hand.
func checkRawDuplicates(res *diagnostic.Diagnostics, c *Classification) bool {
	seen := make(map[string]string, len(c.Order))

	for _, key := range c.Order {
		value := c.Plain[key]

		if prev, dup := seen[value]; dup {
			res.AddErrorf("keys %s and %s share the value %q", prev, key, value)
			res.AddErrorf("look to the following value: %q (from %q)", value, c.Sources[key])

			return false
		}

		seen[value] = key
	}

	return true
}

// references reports whether value holds the exact placeholder token of key.
func references(value, key string) bool {
	token := keys.Placeholder(key)

	for _, r := range keys.FindTokens(value) {
		if value[r[0]:r[1]] == token {
			return true
		}
	}

	return false
}
