package keys

import (
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		path       []string
		wantID     string
		wantSource string
	}{
		{"two segments", []string{"Comment", "Is Blue"}, "COMMENT#IS_BLUE", "Comment > Is Blue"},
		{"nested lower", []string{"A", "b c"}, "A#B_C", "A > b c"},
		{"single", []string{"x"}, "X", "x"},
		{"whitespace run", []string{"a  \t b"}, "A_B", "a  \t b"},
		{"keeps dash and underscore", []string{"pre-fix", "snake_case"}, "PRE-FIX#SNAKE_CASE", "pre-fix > snake_case"},
		{"unicode", []string{"café", "crème brûlée"}, "CAFÉ#CRÈME_BRÛLÉE", "café > crème brûlée"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, source := Normalize(tt.path)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	id1, src1 := Normalize([]string{"Comment", "Is Blue"})
	id2, src2 := Normalize([]string{"Comment", "Is Blue"})

	assert.Equal(t, id1, id2)
	assert.Equal(t, src1, src2)
}

func TestValidRawKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"Comment", true},
		{"is blue", true},
		{"dash-key", true},
		{"snake_key", true},
		{"ключ 2", true},
		{"", false},
		{"has$dollar", false},
		{"has#hash", false},
		{"dot.key", false},
		{"slash/key", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidRawKey(tt.key))
		})
	}
}

func TestValidIdentifier(t *testing.T) {
	assert.True(t, ValidIdentifier("COMMENT#IS_BLUE"))
	assert.True(t, ValidIdentifier("A-B#C_D#1"))
	assert.False(t, ValidIdentifier("#LEADING"))
	assert.False(t, ValidIdentifier("lower"))
	assert.False(t, ValidIdentifier("HAS SPACE"))
	assert.False(t, ValidIdentifier(""))
}

func TestValidIdentifier_UncasedLowercase(t *testing.T) {
	for _, key := range []string{"Straße", "ĸey", "ŉ", "ȸ digraph"} {
		t.Run(key, func(t *testing.T) {
			require.True(t, ValidRawKey(key))

			id, _ := Normalize([]string{key})
			assert.True(t, ValidIdentifier(id), "normalized %q to %q", key, id)

			parsed, ok := ParsePlaceholder(Placeholder(id))
			assert.True(t, ok)
			assert.Equal(t, id, parsed)
		})
	}

	id, _ := Normalize([]string{"Straße"})
	assert.Equal(t, "STRAßE", id)
	assert.Equal(t, [][]int{{4, 4 + len("$COMMENT#STRAßE")}}, FindTokens("see $COMMENT#STRAßE."))
}

// Every single-rune raw key must normalize to a valid identifier, so the
// schema check and the identifier re-check never disagree.
func TestNormalize_RawKeysYieldIdentifiers(t *testing.T) {
	for r := rune(0); r <= unicode.MaxRune; r++ {
		key := string(r)
		if !utf8.ValidRune(r) || !ValidRawKey(key) {
			continue
		}

		for _, path := range [][]string{{key}, {"A" + key}, {key, "b " + key}} {
			id, _ := Normalize(path)
			if !ValidIdentifier(id) {
				t.Fatalf("raw key path %q (U+%04X) normalizes to invalid identifier %q", path, r, id)
			}

			if got, ok := ParsePlaceholder(Placeholder(id)); !ok || got != id {
				t.Fatalf("placeholder for %q does not round-trip: %q, %v", id, got, ok)
			}
		}
	}
}

func TestIsReserved(t *testing.T) {
	assert.True(t, IsReserved("data"))
	assert.True(t, IsReserved("Ignores"))
	assert.True(t, IsReserved(" VARIATIONS "))
	assert.False(t, IsReserved("database"))
}

func TestPlaceholder_RoundTrip(t *testing.T) {
	token := Placeholder("COMMENT#IS_BLUE")
	assert.Equal(t, "$COMMENT#COMMENT#IS_BLUE", token)

	id, ok := ParsePlaceholder(token)
	assert.True(t, ok)
	assert.Equal(t, "COMMENT#IS_BLUE", id)
}

func TestParsePlaceholder_Rejects(t *testing.T) {
	for _, token := range []string{
		"COMMENT#A",
		"$COMMENT#",
		"$COMMENT##A",
		"$COMMENT#a",
		"$COMMENT#A B",
		"x$COMMENT#A",
	} {
		t.Run(token, func(t *testing.T) {
			_, ok := ParsePlaceholder(token)
			assert.False(t, ok)
		})
	}
}

func TestFindTokens(t *testing.T) {
	text := "see $COMMENT#A#B, and $COMMENT#C."
	ranges := FindTokens(text)

	if assert.Len(t, ranges, 2) {
		assert.Equal(t, "$COMMENT#A#B", text[ranges[0][0]:ranges[0][1]])
		assert.Equal(t, "$COMMENT#C", text[ranges[1][0]:ranges[1][1]])
	}
}

func TestForbiddenSubstring(t *testing.T) {
	s, ok := ForbiddenSubstring("closes */ early")
	assert.True(t, ok)
	assert.Equal(t, "*/", s)

	_, ok = ForbiddenSubstring("a plain value / with slash")
	assert.False(t, ok)
}
