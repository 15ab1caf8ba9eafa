package substitute

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"commentvars/internal/keys"
	"commentvars/internal/resolve"
)

// Lookup resolves a key to its literal text.
type Lookup interface {
	Lookup(key string) (string, bool)
}

// Expand replaces every placeholder token in text with its literal. Tokens
// naming unknown keys are left in place and returned, in order of appearance.
func Expand(text string, lookup Lookup) (string, []string) {
	ranges := keys.FindTokens(text)
	if len(ranges) == 0 {
		return text, nil
	}

	var (
		b       strings.Builder
		unknown []string
		last    int
	)

	for _, r := range ranges {
		token := text[r[0]:r[1]]
		id, _ := keys.ParsePlaceholder(token)

		b.WriteString(text[last:r[0]])

		if literal, ok := lookup.Lookup(id); ok {
			b.WriteString(literal)
		} else {
			b.WriteString(token)
			unknown = append(unknown, token)
		}

		last = r[1]
	}

	b.WriteString(text[last:])

	return b.String(), unknown
}

// Compress replaces literal values in text with their placeholder tokens.
// Longer literals win over shorter ones, matches must sit on word
// boundaries, and existing tokens are left untouched.
func Compress(text string, reverse resolve.ReverseMapping) string {
	literals := make([]string, 0, len(reverse))
	for v := range reverse {
		if v != "" {
			literals = append(literals, v)
		}
	}

	slices.SortFunc(literals, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}

		return strings.Compare(a, b)
	})

	tokens := keys.FindTokens(text)

	var b strings.Builder

	for i := 0; i < len(text); {
		if len(tokens) > 0 && tokens[0][0] == i {
			b.WriteString(text[i:tokens[0][1]])
			i = tokens[0][1]
			tokens = tokens[1:]

			continue
		}

		if lit, ok := matchAt(text, i, literals); ok {
			b.WriteString(keys.Placeholder(reverse[lit]))
			i += len(lit)

			continue
		}

		_, size := utf8.DecodeRuneInString(text[i:])
		b.WriteString(text[i : i+size])
		i += size
	}

	return b.String()
}

func matchAt(text string, i int, literals []string) (string, bool) {
	if i > 0 {
		prev, _ := utf8.DecodeLastRuneInString(text[:i])
		if isWordRune(prev) {
			return "", false
		}
	}

	for _, lit := range literals {
		if !strings.HasPrefix(text[i:], lit) {
			continue
		}

		end := i + len(lit)
		if end < len(text) {
			next, _ := utf8.DecodeRuneInString(text[end:])
			if isWordRune(next) {
				continue
			}
		}

		return lit, true
	}

	return "", false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
