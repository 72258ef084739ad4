// Package color implements the colour helpers used to pick a readable text and
// background colour for an OCR text overlay.
//
// The detector works on a thumbnail of the rendered page: the most frequent
// colour is taken as the text colour, and the most frequent colour that has a
// WCAG contrast ratio of at least 7:1 against it becomes the background.
//
// Main Functions:
//
// - PageColors: Detects text and background colour from an RGBA pixel buffer
// - ImageColors: Same as PageColors, starting from a decoded image
// - Contrast / Luminance: WCAG 2.0 relative luminance and contrast ratio
// - ToHexRgb / ChangeAlpha: Conversions between hex, rgb() and rgba() strings
package color

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnsupportedColor is returned for colour strings that are neither hex nor rgb()/rgba()
var ErrUnsupportedColor = errors.New("unsupported color")

var (
	rgbPattern   = regexp.MustCompile(`^rgba?\((.+)\)$`)
	alphaPattern = regexp.MustCompile(`,\s*[\d.]+\)$`)
)

// RGB is a colour with 8-bit channels
type RGB struct {
	R, G, B uint8
}

// String formats the colour as rgb(r,g,b) without spaces
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// Colorful converts the colour to a go-colorful value
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ParseRgb reads the channels of an rgb(...) or rgba(...) string.
// The alpha channel, if present, is ignored.
func ParseRgb(s string) (RGB, error) {
	match := rgbPattern.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return RGB{}, fmt.Errorf("%w: %s", ErrUnsupportedColor, s)
	}
	parts := strings.Split(match[1], ",")
	if len(parts) < 3 {
		return RGB{}, fmt.Errorf("%w: %s", ErrUnsupportedColor, s)
	}
	var channels [3]uint8
	for i := range channels {
		v, err := strconv.ParseUint(strings.TrimSpace(parts[i]), 10, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("invalid channel in %q: %w", s, err)
		}
		channels[i] = uint8(v)
	}
	return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}

// ParseHex reads a #rrggbb or #rgb colour
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %s", ErrUnsupportedColor, s)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// ToHexRgb converts an rgb(...) or rgba(...) string to #rrggbb.
// Anything else is returned unchanged.
func ToHexRgb(s string) string {
	if !strings.HasPrefix(s, "rgb") {
		return s
	}
	c, err := ParseRgb(s)
	if err != nil {
		return s
	}
	return c.Colorful().Hex()
}

// ChangeAlpha returns the colour as an rgba(...) string with the given alpha.
// Hex colours (#rrggbb, #rgb) and rgb(...)/rgba(...) strings are supported; for
// anything else the input is returned unchanged together with ErrUnsupportedColor.
func ChangeAlpha(s string, alpha float64) (string, error) {
	a := strconv.FormatFloat(alpha, 'f', -1, 64)
	switch {
	case strings.HasPrefix(s, "#"):
		c, err := ParseHex(s)
		if err != nil {
			return s, err
		}
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, a), nil
	case strings.HasPrefix(s, "rgba("):
		if rgbComponents(s) > 3 {
			return alphaPattern.ReplaceAllString(s, ","+a+")"), nil
		}
		return strings.TrimSuffix(s, ")") + ", " + a + ")", nil
	case strings.HasPrefix(s, "rgb("):
		return "rgba(" + strings.TrimSuffix(strings.TrimPrefix(s, "rgb("), ")") + ", " + a + ")", nil
	}
	return s, fmt.Errorf("%w: %s", ErrUnsupportedColor, s)
}

// rgbComponents counts the comma-separated values of an rgb(...) or rgba(...) string
func rgbComponents(s string) int {
	match := rgbPattern.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return 0
	}
	return len(strings.Split(match[1], ","))
}

// linearize converts an 8-bit sRGB channel to linear light.
// Constants from https://www.w3.org/TR/WCAG20-TECHS/G17.html#G17-procedure
func linearize(v uint8) float64 {
	c := float64(v) / 255
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// Luminance is the WCAG 2.0 relative luminance of a colour
func Luminance(c RGB) float64 {
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B)
}

// Contrast is the WCAG 2.0 contrast ratio between two colours, in [1, 21]
func Contrast(a, b RGB) float64 {
	la, lb := Luminance(a), Luminance(b)
	return (math.Max(la, lb) + 0.05) / (math.Min(la, lb) + 0.05)
}
