package occurrence

import (
	"commentvars/internal/diagnostic"
	"commentvars/internal/keys"
	"commentvars/internal/resolve"
)

// CrossCheck reconciles a resolution with the scanned occurrences.
//
// It fails when a declared value has no occurrence, when a plain literal
// occurs more than once, or when a plain literal occurs but no key resolves
// to it (it was overridden by another declaration). Values shared with an
// alias are expected to repeat and are exempt from the duplicate check.
func CrossCheck(r *resolve.Resolution, occurrences []ValueOccurrence) (*Locations, diagnostic.Diagnostics) {
	var res diagnostic.Diagnostics

	shared := make(map[string]struct{}, len(r.Aliases))
	for _, target := range r.Aliases {
		shared[r.Plain[target]] = struct{}{}
	}

	first := make(map[string]ValueOccurrence, len(occurrences))

	var duplicates []ValueOccurrence

	for _, occ := range occurrences {
		if _, seen := first[occ.Value]; seen {
			if _, ok := shared[occ.Value]; !ok {
				duplicates = append(duplicates, occ)
			}

			continue
		}

		first[occ.Value] = occ
	}

	for _, key := range r.Order {
		value := r.Plain[key]
		if _, ok := first[value]; !ok {
			res.AddErrorf("unrecognized value %q of %s: no matching string literal was found in the scanned sources",
				value, key)

			return nil, res
		}
	}

	for _, dup := range duplicates {
		if keys.IsComposed(dup.Value) {
			continue
		}

		res.AddErrorf("value %q is declared more than once (%s and %s)", dup.Value, first[dup.Value], dup)
		res.AddErrorf("look to the following value: %q at %s", dup.Value, dup)

		return nil, res
	}

	final := make(map[string]struct{}, len(r.Resolved))
	for _, v := range r.Resolved {
		final[v] = struct{}{}
	}

	for _, occ := range occurrences {
		if keys.IsComposed(occ.Value) {
			continue
		}

		if _, ok := shared[occ.Value]; ok {
			continue
		}

		if _, ok := final[occ.Value]; !ok {
			res.AddErrorf("value %q at %s is overridden: no key resolves to it", occ.Value, occ)
			return nil, res
		}
	}

	return locate(r, first), res
}

func locate(r *resolve.Resolution, first map[string]ValueOccurrence) *Locations {
	loc := &Locations{
		All:      make(map[string]ValueOccurrence, len(r.Order)+len(r.AliasOrder)),
		NonAlias: make(map[string]ValueOccurrence, len(r.Order)),
		Alias:    make(map[string]ValueOccurrence, len(r.AliasOrder)),
	}

	for _, key := range r.Order {
		occ := first[r.Plain[key]]
		loc.All[key] = occ
		loc.NonAlias[key] = occ
	}

	for _, alias := range r.AliasOrder {
		occ := loc.NonAlias[r.Aliases[alias]]
		loc.All[alias] = occ
		loc.Alias[alias] = occ
	}

	return loc
}
