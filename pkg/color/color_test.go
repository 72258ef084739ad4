package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeAlpha(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"6-digit hex", "#ffffff", "rgba(255, 255, 255, 0.5)"},
		{"3-digit hex", "#abc", "rgba(170, 187, 204, 0.5)"},
		{"rgba", "rgba(123, 221, 100, 0.1)", "rgba(123, 221, 100,0.5)"},
		{"rgb", "rgb(123, 221, 100)", "rgba(123, 221, 100, 0.5)"},
		{"rgba without alpha", "rgba(1, 2, 3)", "rgba(1, 2, 3, 0.5)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ChangeAlpha(tt.input, 0.5)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChangeAlphaUnsupported(t *testing.T) {
	got, err := ChangeAlpha("hsv(210, 17, 80)", 0.5)
	assert.ErrorIs(t, err, ErrUnsupportedColor)
	assert.Equal(t, "hsv(210, 17, 80)", got)
	assert.EqualError(t, err, "unsupported color: hsv(210, 17, 80)")
}

func TestToHexRgb(t *testing.T) {
	assert.Equal(t, "#aabbcc", ToHexRgb("rgb(170, 187, 204)"))
	assert.Equal(t, "#aabbcc", ToHexRgb("rgb(170, 187, 204, 0.75)"))
	assert.Equal(t, "#aabbcc", ToHexRgb("rgba(170, 187, 204, 0.75)"))
	assert.Equal(t, "#000a00", ToHexRgb("rgb(0,10,0)"))
	assert.Equal(t, "#abc", ToHexRgb("#abc"))
	assert.Equal(t, "", ToHexRgb(""))
}

func TestHexRoundTrip(t *testing.T) {
	for _, hex := range []string{"#ffffff", "#000000", "#0a7fe3", "#123456"} {
		rgba, err := ChangeAlpha(hex, 0.3)
		require.NoError(t, err)
		assert.Equal(t, hex, ToHexRgb(rgba), rgba)
	}
	rgba, err := ChangeAlpha("#abc", 0.3)
	require.NoError(t, err)
	assert.Equal(t, "#aabbcc", ToHexRgb(rgba))
}

func TestParseRgb(t *testing.T) {
	c, err := ParseRgb("rgba(1, 2, 3, 0.4)")
	require.NoError(t, err)
	assert.Equal(t, RGB{1, 2, 3}, c)

	_, err = ParseRgb("rgb(1, 2)")
	assert.ErrorIs(t, err, ErrUnsupportedColor)

	_, err = ParseRgb("rgb(1, 2, 300)")
	assert.Error(t, err)
}

func TestContrast(t *testing.T) {
	assert.InDelta(t, 21.0, Contrast(black, white), 1e-9)
	assert.InDelta(t, 21.0, Contrast(white, black), 1e-9)
	assert.InDelta(t, 1.0, Contrast(RGB{120, 30, 200}, RGB{120, 30, 200}), 1e-9)
	assert.InDelta(t, 0.0, Luminance(black), 1e-12)
	assert.InDelta(t, 1.0, Luminance(white), 1e-12)
	// #777 against white is just below the 4.5 AA threshold
	assert.InDelta(t, 4.48, Contrast(RGB{0x77, 0x77, 0x77}, white), 0.01)
}
