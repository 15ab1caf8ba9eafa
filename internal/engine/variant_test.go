package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commentvars/internal/config"
)

func coreResult(t *testing.T) *Result {
	t.Helper()

	res, diags, err := New(&staticScanner{occs: coreOccurrences()}).Resolve(context.Background(), Request{Tree: coreTree()})
	require.NoError(t, err)
	require.True(t, diags.IsValid(), "unexpected errors: %v", diags.Errors())

	return res
}

func TestResolveVariant_LeafOverridePropagates(t *testing.T) {
	core := coreResult(t)
	tree := (&config.Tree{}).
		Add("Color", (&config.Tree{}).Add("Red", "rouge")).
		Add("Car", "voiture")

	v, diags := ResolveVariant(core, "fr", tree)
	require.True(t, diags.IsValid(), "unexpected errors: %v", diags.Errors())

	assert.Equal(t, "fr", v.Name)
	assert.Equal(t, "rouge", v.Resolved["COLOR#RED"])
	assert.Equal(t, "voiture", v.Resolved["CAR"])
	assert.Equal(t, "rouge voiture", v.Resolved["RED_CAR"])
	assert.Equal(t, "RED_CAR", v.Reverse["rouge voiture"])
	assert.Equal(t, []string{"COLOR#RED", "CAR"}, v.Overrides)

	s, ok := v.Lookup("COLOR#CRIMSON")
	assert.True(t, ok)
	assert.Equal(t, "rouge", s)

	// The core result is untouched.
	assert.Equal(t, "red car", core.Resolved["RED_CAR"])
}

func TestResolveVariant_ComposedOverride(t *testing.T) {
	core := coreResult(t)
	tree := (&config.Tree{}).
		Add("Car", "voiture").
		Add("Red Car", "$COMMENT#CAR $COMMENT#COLOR#RED")

	v, diags := ResolveVariant(core, "fr", tree)
	require.True(t, diags.IsValid(), "unexpected errors: %v", diags.Errors())

	assert.Equal(t, "voiture red", v.Resolved["RED_CAR"])
}

func TestResolveVariant_Errors(t *testing.T) {
	tests := []struct {
		name    string
		tree    *config.Tree
		wantMsg string
	}{
		{
			name:    "unknown key",
			tree:    (&config.Tree{}).Add("Bike", "vélo"),
			wantMsg: `variation "fr" declares BIKE (from "Bike"), which is not a core key`,
		},
		{
			name:    "alias key",
			tree:    (&config.Tree{}).Add("Color", (&config.Tree{}).Add("Crimson", "cramoisi")),
			wantMsg: "an alias of COLOR#RED; override COLOR#RED instead",
		},
		{
			name:    "forbidden substring",
			tree:    (&config.Tree{}).Add("Car", "voi*/ture"),
			wantMsg: "would break the surrounding comment",
		},
		{
			name:    "references composed key",
			tree:    (&config.Tree{}).Add("Red Car", "$COMMENT#RED_CAR $COMMENT#CAR"),
			wantMsg: "RED_CAR, which is not in the reference set",
		},
		{
			name:    "composed value with bare segment",
			tree:    (&config.Tree{}).Add("Red Car", "CAR $COMMENT#CAR"),
			wantMsg: `variation "fr": composed value "CAR $COMMENT#CAR" of RED_CAR must start with a placeholder`,
		},
		{
			name:    "collision",
			tree:    (&config.Tree{}).Add("Car", "red"),
			wantMsg: `variation "fr": keys COLOR#RED and CAR both resolve to "red"`,
		},
		{
			name:    "duplicate variant key",
			tree:    (&config.Tree{}).Add("Car", "a").Add("car", "b"),
			wantMsg: "duplicate key CAR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, diags := ResolveVariant(coreResult(t), "fr", tt.tree)
			assert.Nil(t, v)
			require.NotEmpty(t, diags.Errors())
			assert.Contains(t, diags.Errors()[0].Message, tt.wantMsg)
		})
	}
}
