package color

import (
	"image"
	"slices"

	"golang.org/x/image/draw"
)

// MinContrast is the contrast ratio the background colour must reach against
// the text colour.
const MinContrast = 7.0

// DefaultThumbnailWidth is the width pages are scaled to before detection
const DefaultThumbnailWidth = 200

var (
	black = RGB{0, 0, 0}
	white = RGB{255, 255, 255}
)

// Pair holds the detected overlay colours
type Pair struct {
	TextColor string `json:"textColor" yaml:"textColor"`
	BgColor   string `json:"bgColor" yaml:"bgColor"`
}

type colorCount struct {
	color RGB
	count int
}

// PageColors determines text and background colour from a flat RGBA pixel
// buffer (4 bytes per pixel, alpha ignored).
//
// The most frequent colour is the text colour. The background is the most
// frequent remaining colour with a contrast of at least MinContrast; black and
// white are appended as zero-frequency candidates, and when no candidate reaches
// the threshold the fallback with the higher contrast is used.
// The buffer must hold at least one pixel.
func PageColors(pixels []byte) Pair {
	index := make(map[RGB]int)
	var counts []colorCount
	for i := 0; i+3 < len(pixels); i += 4 {
		c := RGB{pixels[i], pixels[i+1], pixels[i+2]}
		if idx, ok := index[c]; ok {
			counts[idx].count++
			continue
		}
		index[c] = len(counts)
		counts = append(counts, colorCount{color: c, count: 1})
	}
	slices.SortStableFunc(counts, func(a, b colorCount) int {
		return b.count - a.count
	})
	if len(counts) == 0 {
		return Pair{TextColor: black.String(), BgColor: white.String()}
	}

	text := counts[0].color
	candidates := append(counts[1:], colorCount{color: black}, colorCount{color: white})
	for _, candidate := range candidates {
		if Contrast(text, candidate.color) >= MinContrast {
			return Pair{TextColor: text.String(), BgColor: candidate.color.String()}
		}
	}
	// Mid-tone text colours cannot reach 7:1 against anything, use the better fallback
	if Contrast(text, black) > Contrast(text, white) {
		return Pair{TextColor: text.String(), BgColor: black.String()}
	}
	return Pair{TextColor: text.String(), BgColor: white.String()}
}

// Thumbnail scales an image down to at most maxWidth pixels wide and returns its
// RGBA pixel buffer. Images narrower than maxWidth keep their size.
func Thumbnail(img image.Image, maxWidth int) []byte {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxWidth > 0 && w > maxWidth {
		h = max(1, h*maxWidth/w)
		w = maxWidth
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst.Pix
}

// ImageColors detects the overlay colours of a decoded page image
func ImageColors(img image.Image, maxWidth int) Pair {
	return PageColors(Thumbnail(img, maxWidth))
}
