package ocr

import "strings"

// MinSpanWidth is the smallest width given to a whitespace span so it stays
// visible and selectable when the gap it covers is zero.
const MinSpanWidth = 0.0001

// Size is a width/height pair. The zero value means "no size".
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// IsZero reports whether the size carries no usable dimensions.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Page is one page of positioned text
type Page struct {
	Width  float64 `json:"width" yaml:"width"`   // Page width in reference space
	Height float64 `json:"height" yaml:"height"` // Page height in reference space
	Lines  []Line  `json:"lines" yaml:"lines"`   // Lines in reading order
}

// Line is a line of text. A line without spans only has line granularity.
type Line struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	Text   string  `json:"text" yaml:"text"`                       // Fully reconstructed line text
	Spans  []Span  `json:"spans,omitempty" yaml:"spans,omitempty"` // Word or character level detail
}

// Span is the smallest positioned unit of text
type Span struct {
	X       float64 `json:"x" yaml:"x"`
	Y       float64 `json:"y" yaml:"y"`
	Width   float64 `json:"width" yaml:"width"`
	Height  float64 `json:"height" yaml:"height"`
	Text    string  `json:"text" yaml:"text"`
	Style   string  `json:"style,omitempty" yaml:"style,omitempty"`     // CSS declarations joined by ';'
	IsExtra bool    `json:"isExtra,omitempty" yaml:"isExtra,omitempty"` // Synthesized whitespace
}

// Size returns the page dimensions.
func (p *Page) Size() Size {
	return Size{Width: p.Width, Height: p.Height}
}

// EnsureSize replaces a missing page size with the fallback size computed from
// the page's lines.
func (p *Page) EnsureSize() {
	if p.Size().IsZero() {
		fallback := FallbackSize(p.Lines)
		p.Width = fallback.Width
		p.Height = fallback.Height
	}
}

// FallbackSize computes the page size as the maximum right and bottom edges
// over all lines.
func FallbackSize(lines []Line) Size {
	var size Size
	for _, line := range lines {
		if right := line.X + line.Width; right > size.Width {
			size.Width = right
		}
		if bottom := line.Y + line.Height; bottom > size.Height {
			size.Height = bottom
		}
	}
	return size
}

// JoinSpanText concatenates the text of all spans in order.
func JoinSpanText(spans []Span) string {
	var builder strings.Builder
	for _, span := range spans {
		builder.WriteString(span.Text)
	}
	return builder.String()
}
