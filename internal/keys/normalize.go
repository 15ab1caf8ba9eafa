package keys

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	// Prefix is the fixed leading word of every placeholder token.
	Prefix = "$COMMENT"
	// Separator joins identifier segments and the prefix.
	Separator = "#"
	// Marker is the text that flags a value as a composition of placeholders.
	Marker = Prefix + Separator
	// SourceSeparator joins the raw key path in diagnostics.
	SourceSeparator = " > "
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)

	rawKeyPattern = regexp.MustCompile(`^[\p{L}\p{N}\s\p{Pd}\p{Pc}]+$`)

	// identChars are the characters an upper-cased raw key can contain.
	identChars = `\p{Lu}\p{Lt}\p{Lm}\p{Lo}\p{N}\p{Pd}\p{Pc}` + uncasedLower()

	identifierPattern = regexp.MustCompile(`^[` + identChars + `][` + identChars + `#]*$`)

	placeholderPattern = regexp.MustCompile(
		`^` + regexp.QuoteMeta(Marker) + `([` + identChars + `][` + identChars + `#]*)$`)

	// tokenPattern finds placeholder tokens embedded in free text.
	tokenPattern = regexp.MustCompile(
		regexp.QuoteMeta(Marker) + `[` + identChars + `][` + identChars + `#]*`)
)

// uncasedLower returns a character class body listing the lower-case
// letters that upper-casing leaves unchanged, such as ß.
func uncasedLower() string {
	var b strings.Builder

	add := func(lo, hi, stride rune) {
		for r := lo; r <= hi; r += stride {
			if unicode.ToUpper(r) == r {
				fmt.Fprintf(&b, `\x{%X}`, r)
			}
		}
	}

	for _, r := range unicode.Ll.R16 {
		add(rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}

	for _, r := range unicode.Ll.R32 {
		add(rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}

	return b.String()
}

// ForbiddenSubstrings open or close a comment and may not appear in values.
var ForbiddenSubstrings = []string{"/*", "*/", "//"}

// ReservedNames are document section names that may not be used as
// top-level data keys.
var ReservedNames = []string{"data", "ignores", "variations"}

// Normalize turns a path of raw keys into its identifier and source trail.
// The pipeline:
// 1. Upper-case each segment.
// 2. Join segments with "#".
// 3. Replace whitespace runs with "_".
func Normalize(path []string) (string, string) {
	upper := make([]string, len(path))
	for i, seg := range path {
		upper[i] = strings.ToUpper(seg)
	}

	id := whitespaceRun.ReplaceAllString(strings.Join(upper, Separator), "_")

	return id, strings.Join(path, SourceSeparator)
}

// ValidRawKey reports whether key may be used in a configuration tree.
func ValidRawKey(key string) bool {
	if strings.ContainsAny(key, "$#") {
		return false
	}

	return rawKeyPattern.MatchString(key)
}

// IsReserved reports whether key collides with a document section name.
func IsReserved(key string) bool {
	for _, name := range ReservedNames {
		if strings.EqualFold(strings.TrimSpace(key), name) {
			return true
		}
	}

	return false
}

// ValidIdentifier reports whether id has the shape of a flattened key.
func ValidIdentifier(id string) bool {
	return identifierPattern.MatchString(id)
}

// Placeholder returns the placeholder token for id.
func Placeholder(id string) string {
	return Marker + id
}

// ParsePlaceholder extracts the identifier from a placeholder token.
// The whole token must match; surrounding text is rejected.
func ParsePlaceholder(token string) (string, bool) {
	m := placeholderPattern.FindStringSubmatch(token)
	if m == nil {
		return "", false
	}

	return m[1], true
}

// IsComposed reports whether value carries placeholder syntax.
func IsComposed(value string) bool {
	return strings.Contains(value, Marker)
}

// FindTokens returns the byte ranges of every placeholder token in text.
func FindTokens(text string) [][]int {
	return tokenPattern.FindAllStringIndex(text, -1)
}

// ForbiddenSubstring returns the first forbidden substring found in value.
func ForbiddenSubstring(value string) (string, bool) {
	for _, s := range ForbiddenSubstrings {
		if strings.Contains(value, s) {
			return s, true
		}
	}

	return "", false
}
