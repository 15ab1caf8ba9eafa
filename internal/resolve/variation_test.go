package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveVariation_UsesReferenceTable(t *testing.T) {
	reference := ResolvedMapping{"A": "rouge", "B": "voiture"}

	got, diags := ResolveVariation(entries(
		"A", "rouge",
		"C", "$COMMENT#A $COMMENT#B",
	), reference)
	require.True(t, diags.IsValid(), "unexpected errors: %v", diags.Errors())

	assert.Equal(t, ResolvedMapping{"A": "rouge", "C": "rouge voiture"}, got)
}

func TestResolveVariation_IgnoresOwnRawValues(t *testing.T) {
	// The variant's raw value for A is not consulted; only the reference is.
	reference := ResolvedMapping{"A": "core red", "B": "car"}

	got, diags := ResolveVariation(entries(
		"A", "variant red",
		"C", "$COMMENT#A $COMMENT#B",
	), reference)
	require.True(t, diags.IsValid())

	assert.Equal(t, "core red car", got["C"])
	assert.Equal(t, "variant red", got["A"])
}

func TestResolveVariation_UnknownReference(t *testing.T) {
	got, diags := ResolveVariation(entries("C", "$COMMENT#A $COMMENT#NOPE"), ResolvedMapping{"A": "a"})

	assert.Nil(t, got)
	require.Len(t, diags.Errors(), 1)
	assert.Contains(t, diags.Errors()[0].Message, "NOPE, which is not in the reference set")
}

func TestResolveVariation_ChecksShape(t *testing.T) {
	reference := ResolvedMapping{"FOO": "red", "BAR": "car"}

	tests := []struct {
		name    string
		value   string
		wantMsg string
	}{
		{"bare segment", "FOO $COMMENT#BAR", "must start with a placeholder"},
		{"bare later segment", "$COMMENT#BAR FOO", `segment "FOO" of composed value`},
		{"single placeholder", "$COMMENT#FOO", "needs at least two placeholders"},
		{"double space", "$COMMENT#FOO  $COMMENT#BAR", `segment "" of composed value`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, diags := ResolveVariation(entries("C", tt.value), reference)

			assert.Nil(t, got)
			require.Len(t, diags.Errors(), 1)
			assert.Contains(t, diags.Errors()[0].Message, tt.wantMsg)
		})
	}
}
