package hocr

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/gardar/ocrtext/pkg/ocr"
)

var (
	// ErrNoPage is returned when the document has no ocr_page element
	ErrNoPage = errors.New("no ocr_page element found in hOCR data")
	// ErrMissingBBox is returned for page, line or word elements without a bbox
	ErrMissingBBox = errors.New("missing bbox in title attribute")
)

var whitespace = regexp.MustCompile(`[\s\p{Zs}]+`)

// Parse converts hOCR markup into an ocr.Page whose coordinates are scaled to
// the reference size. A zero reference size keeps the page's own coordinates.
func Parse(data []byte, ref ocr.Size, opts ocr.Options) (*ocr.Page, error) {
	decoded, err := decodeCharset(data)
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(bytes.NewReader(decoded))
	if err != nil {
		return nil, err
	}

	pageNode := findPage(doc)
	if pageNode == nil {
		return nil, ErrNoPage
	}
	pageBox := ParseBoundingBoxFromTitle(getAttrVal(pageNode, "title"))
	if pageBox == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingBBox, ClassPage)
	}

	scale := pageScale(*pageBox, ref, opts.Log())
	page := &ocr.Page{
		Width:  pageBox.X2 * scale,
		Height: pageBox.Y2 * scale,
	}

	for _, lineNode := range findLines(pageNode) {
		line, err := processLine(lineNode, scale)
		if err != nil {
			return nil, err
		}
		page.Lines = append(page.Lines, line)
	}
	return page, nil
}

// pageScale computes the factor that maps page coordinates onto the reference
// size. Only the horizontal ratio is used; a reference size with a different
// aspect ratio is reported and otherwise ignored.
func pageScale(pageBox BoundingBox, ref ocr.Size, log logrus.FieldLogger) float64 {
	width, height := pageBox.X2, pageBox.Y2
	if ref.IsZero() || width <= 0 || (width == ref.Width && height == ref.Height) {
		return 1
	}

	scale := ref.Width / width
	if math.Round(height*scale) != math.Round(ref.Height) {
		log.WithFields(logrus.Fields{
			"page_width":       width,
			"page_height":      height,
			"reference_width":  ref.Width,
			"reference_height": ref.Height,
		}).Warn("aspect ratio of reference size does not match hOCR page, scaling by width")
	}
	return scale
}

// findPage returns the first div element with class ocr_page
func findPage(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "div" && hasClass(n, ClassPage) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findPage(c); found != nil {
			return found
		}
	}
	return nil
}

// findLines collects the line elements below the page in document order
func findLines(page *html.Node) []*html.Node {
	var lines []*html.Node
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "span" && hasClass(n, lineClasses...) {
			lines = append(lines, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(page)
	return lines
}

// findWords collects the word elements below a line in document order
func findWords(line *html.Node) []*html.Node {
	var words []*html.Node
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "span" && hasClass(n, ClassWord) {
			words = append(words, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	for c := line.FirstChild; c != nil; c = c.NextSibling {
		collect(c)
	}
	return words
}

// trailingText returns the text node following an element with its first
// whitespace run collapsed to a single space.
func trailingText(n *html.Node) (string, bool) {
	next := n.NextSibling
	if next == nil || next.Type != html.TextNode || next.Data == "" {
		return "", false
	}
	text := next.Data
	if loc := whitespace.FindStringIndex(text); loc != nil {
		text = text[:loc[0]] + " " + text[loc[1]:]
	}
	return text, true
}

// processNode reads the scaled bounding box and style of an element
func processNode(n *html.Node, scale float64) (ocr.Span, error) {
	bbox := ParseBoundingBoxFromTitle(getAttrVal(n, "title"))
	if bbox == nil {
		return ocr.Span{}, fmt.Errorf("%w: %s element %q", ErrMissingBBox, getAttrVal(n, "class"), getAttrVal(n, "id"))
	}
	return ocr.Span{
		X:      bbox.X1 * scale,
		Y:      bbox.Y1 * scale,
		Width:  bbox.Width() * scale,
		Height: bbox.Height() * scale,
		Style:  cleanStyle(getAttrVal(n, "style")),
	}, nil
}

// processLine converts a line element and its words
func processLine(n *html.Node, scale float64) (ocr.Line, error) {
	box, err := processNode(n, scale)
	if err != nil {
		return ocr.Line{}, err
	}
	line := ocr.Line{
		X:      box.X,
		Y:      box.Y,
		Width:  box.Width,
		Height: box.Height,
	}

	wordNodes := findWords(n)
	if len(wordNodes) == 0 {
		text := textContent(n)
		if extra, ok := trailingText(n); ok {
			text += extra
		}
		line.Text = visibleHyphen(strings.TrimSpace(text))
		return line, nil
	}

	var provisional []ocr.ProvisionalSpan
	for i, wordNode := range wordNodes {
		word, err := processNode(wordNode, scale)
		if err != nil {
			return ocr.Line{}, err
		}
		word.Text = strings.TrimSpace(textContent(wordNode))

		extra, hasExtra := trailingText(wordNode)
		if i == len(wordNodes)-1 {
			word.Text = visibleHyphen(word.Text)
			provisional = append(provisional, ocr.ProvisionalSpan{Span: word})
			// Trailing text at the end of the line has no following word to span to
			if tail := strings.TrimSpace(extra); hasExtra && tail != "" {
				provisional = append(provisional, ocr.ProvisionalSpan{
					Span: ocr.Span{
						X:       word.X + word.Width,
						Y:       word.Y,
						Height:  word.Height,
						Text:    tail,
						IsExtra: true,
					},
					Pending: true,
				})
			}
			continue
		}

		word.Text = visibleHyphen(word.Text)
		provisional = append(provisional, ocr.ProvisionalSpan{Span: word})
		if hasExtra {
			provisional = append(provisional, ocr.ProvisionalSpan{
				Span: ocr.Span{
					X:       word.X + word.Width,
					Y:       word.Y,
					Height:  word.Height,
					Text:    extra,
					IsExtra: true,
				},
				Pending: true,
			})
		}
	}

	line.Spans = ocr.ResolveSpans(provisional)
	line.Text = strings.TrimSpace(ocr.JoinSpanText(line.Spans))
	return line, nil
}
