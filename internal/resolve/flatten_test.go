package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commentvars/internal/config"
)

func TestFlatten_DepthFirstOrder(t *testing.T) {
	tree := (&config.Tree{}).
		Add("Comment", (&config.Tree{}).
			Add("Is Blue", "the sky is blue").
			Add("nested", (&config.Tree{}).Add("deep key", "deep"))).
		Add("Other", "other")

	got, diags := Flatten(tree)
	require.True(t, diags.IsValid(), "unexpected errors: %v", diags.Errors())

	assert.Equal(t, []FlatEntry{
		{Key: "COMMENT#IS_BLUE", Value: "the sky is blue", Source: "Comment > Is Blue"},
		{Key: "COMMENT#NESTED#DEEP_KEY", Value: "deep", Source: "Comment > nested > deep key"},
		{Key: "OTHER", Value: "other", Source: "Other"},
	}, got)
}

func TestFlatten_DuplicateNormalizedKey(t *testing.T) {
	tree := (&config.Tree{}).Add("A", (&config.Tree{}).Add("b", "one").Add("B", "two"))

	got, diags := Flatten(tree)
	require.False(t, diags.IsValid())
	assert.Nil(t, got)

	msg := diags.Error().Error()
	assert.Contains(t, msg, "duplicate key A#B")
	assert.Contains(t, msg, `"A > b"`)
	assert.Contains(t, msg, `"A > B"`)
}

func TestFlatten_WhitespaceCollision(t *testing.T) {
	tree := flatTree("is blue", "x", "is  blue", "y")

	_, diags := Flatten(tree)
	require.Len(t, diags.Errors(), 1)
	assert.Contains(t, diags.Errors()[0].Message, "IS_BLUE")
}

func TestFlatten_InvalidLeaf(t *testing.T) {
	tree := (&config.Tree{}).Add("A", "ok").Add("B", 42).Add("C", "never reached")

	got, diags := Flatten(tree)
	require.False(t, diags.IsValid())
	assert.Nil(t, got)
	require.Len(t, diags.Errors(), 1)
	assert.Contains(t, diags.Errors()[0].Message, `value at "B" is neither a string nor a nested mapping (got int)`)
}

func TestFlatten_NilTree(t *testing.T) {
	got, diags := Flatten(nil)
	assert.True(t, diags.IsValid())
	assert.Empty(t, got)
}
