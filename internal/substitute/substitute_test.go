package substitute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commentvars/internal/config"
	"commentvars/internal/resolve"
)

func resolution(t *testing.T) *resolve.Resolution {
	t.Helper()

	tree := (&config.Tree{}).
		Add("Color", (&config.Tree{}).Add("Red", "red").Add("Crimson", "red").Add("Blue", "blue")).
		Add("Car", "car").
		Add("Red Car", "$COMMENT#COLOR#RED $COMMENT#CAR")

	r, diags := resolve.Resolve(tree)
	require.True(t, diags.IsValid(), "unexpected errors: %v", diags.Errors())

	return r
}

func TestExpand(t *testing.T) {
	r := resolution(t)

	tests := []struct {
		name        string
		text        string
		want        string
		wantUnknown []string
	}{
		{"no tokens", "plain comment", "plain comment", nil},
		{"single", "the $COMMENT#COLOR#BLUE sky", "the blue sky", nil},
		{"composed", "a $COMMENT#RED_CAR.", "a red car.", nil},
		{"alias", "$COMMENT#COLOR#CRIMSON!", "red!", nil},
		{"unknown", "$COMMENT#NOPE and $COMMENT#CAR", "$COMMENT#NOPE and car", []string{"$COMMENT#NOPE"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, unknown := Expand(tt.text, r)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantUnknown, unknown)
		})
	}
}

func TestCompress(t *testing.T) {
	r := resolution(t)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"longest wins", "a red car here", "a $COMMENT#RED_CAR here"},
		{"word boundary", "bored scarlet red", "bored scarlet $COMMENT#COLOR#RED"},
		{"keeps tokens", "$COMMENT#CAR and blue", "$COMMENT#CAR and $COMMENT#COLOR#BLUE"},
		{"nothing", "green", "green"},
		{"unicode neighbour", "éred red", "éred $COMMENT#COLOR#RED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compress(tt.text, r.Reverse))
		})
	}
}

func TestExpandCompress_RoundTrip(t *testing.T) {
	r := resolution(t)
	original := "the $COMMENT#RED_CAR is not $COMMENT#COLOR#BLUE"

	expanded, unknown := Expand(original, r)
	require.Empty(t, unknown)
	assert.Equal(t, "the red car is not blue", expanded)

	assert.Equal(t, original, Compress(expanded, r.Reverse))
}
