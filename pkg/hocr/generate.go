package hocr

import (
	"bytes"
	"embed"
	"fmt"
	"math"
	"strings"
	"text/template"

	"golang.org/x/net/html"

	"github.com/gardar/ocrtext/pkg/ocr"
)

//go:embed templates/hocr.tmpl
var templateFS embed.FS

// document is the data handed to the hOCR template
type document struct {
	Title string
	Page  *ocr.Page
}

// Generate writes a page as an hOCR document. Coordinates are rounded to whole
// pixels, synthesized and explicit whitespace spans become inter-word text.
func Generate(page *ocr.Page, title string) (string, error) {
	tmpl, err := template.New("hocr.tmpl").Funcs(template.FuncMap{
		"bbox":   formatBBox,
		"escape": html.EscapeString,
		"trim":   strings.TrimSpace,
		"inc":    func(i int) int { return i + 1 },
		"isWord": isWord,
	}).ParseFS(templateFS, "templates/hocr.tmpl")
	if err != nil {
		return "", fmt.Errorf("error parsing hOCR template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, document{Title: title, Page: page}); err != nil {
		return "", fmt.Errorf("error rendering hOCR template: %w", err)
	}

	return buf.String(), nil
}

// formatBBox renders an x/y/width/height box as an hOCR bbox property
func formatBBox(x, y, width, height float64) string {
	return fmt.Sprintf("bbox %d %d %d %d",
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+width)), int(math.Round(y+height)))
}

// isWord reports whether a span is written as an ocrx_word element
func isWord(span ocr.Span) bool {
	return !span.IsExtra && strings.TrimSpace(span.Text) != ""
}
