package alto

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"

	"github.com/gardar/ocrtext/pkg/ocr"
)

type spanKind int

const (
	kindString spanKind = iota
	kindSpace
)

// box is an unscaled ALTO rectangle
type box struct {
	x, y, width, height float64
}

// rawSpan is a String or SP element as found in the document
type rawSpan struct {
	kind      spanKind
	box       box
	hasHeight bool
	text      string
	styleRefs []string
	fontStyle string
}

// rawLine is a TextLine with its direct String and SP children
type rawLine struct {
	box        box
	spans      []rawSpan
	hyphenated bool
}

// document collects everything needed to build the page. Scaling, style
// resolution and whitespace synthesis depend on the whole document, so they
// happen after decoding.
type document struct {
	namespace  string
	unit       string
	pageWidth  float64
	pageHeight float64
	hasPage    bool
	styles     map[string]string
	lines      []rawLine
	hasSpaces  bool
}

// Parse converts ALTO markup into an ocr.Page. The reference size is required
// when the document's measurement unit is not 'pixel'.
//
// Documents outside the ALTO v2/v3/v4 namespaces are logged and rejected with
// ErrUnsupportedNamespace.
func Parse(data []byte, ref ocr.Size, opts ocr.Options) (*ocr.Page, error) {
	doc, err := decode(data)
	if err != nil {
		return nil, err
	}
	if !SupportedNamespace(doc.namespace) {
		opts.Log().WithField("namespace", doc.namespace).Error("unsupported ALTO namespace")
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedNamespace, doc.namespace)
	}

	page, err := doc.build(ref)
	if err != nil {
		return nil, err
	}
	opts.Log().WithFields(logrus.Fields{
		"unit":  doc.unit,
		"lines": len(page.Lines),
	}).Debug("parsed ALTO page")
	return page, nil
}

// decode reads the elements the parser cares about in a single pass
func decode(data []byte) (*document, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset.NewReaderLabel

	doc := &document{styles: make(map[string]string)}
	var path []string
	var line *rawLine

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid ALTO XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(path) == 0 {
				doc.namespace = t.Name.Space
				if !SupportedNamespace(doc.namespace) {
					return doc, nil
				}
			}
			parent := ""
			if len(path) > 0 {
				parent = path[len(path)-1]
			}
			path = append(path, t.Name.Local)

			switch t.Name.Local {
			case "TextStyle":
				if id, ok := attr(t.Attr, "ID"); ok {
					doc.styles[id] = textStyleCSS(t.Attr)
				}
			case "Page":
				if !doc.hasPage {
					doc.hasPage = true
					if doc.pageWidth, err = optionalFloat(t.Attr, "WIDTH"); err != nil {
						return nil, err
					}
					if doc.pageHeight, err = optionalFloat(t.Attr, "HEIGHT"); err != nil {
						return nil, err
					}
				}
			case "TextLine":
				b, err := requiredBox(t)
				if err != nil {
					return nil, err
				}
				line = &rawLine{box: b}
			case "String":
				if line == nil || parent != "TextLine" {
					continue
				}
				span, err := stringSpan(t)
				if err != nil {
					return nil, err
				}
				line.spans = append(line.spans, span)
			case "SP":
				doc.hasSpaces = true
				if line == nil || parent != "TextLine" {
					continue
				}
				span, err := spaceSpan(t, line)
				if err != nil {
					return nil, err
				}
				line.spans = append(line.spans, span)
			case "HYP":
				if line != nil && parent == "TextLine" {
					line.hyphenated = true
				}
			}

		case xml.EndElement:
			if t.Name.Local == "TextLine" && line != nil {
				doc.lines = append(doc.lines, *line)
				line = nil
			}
			path = path[:len(path)-1]

		case xml.CharData:
			n := len(path)
			if n >= 2 && path[n-1] == "MeasurementUnit" && path[n-2] == "Description" {
				doc.unit += string(t)
			}
		}
	}
	doc.unit = strings.TrimSpace(doc.unit)
	return doc, nil
}

// stringSpan reads a String element
func stringSpan(t xml.StartElement) (rawSpan, error) {
	b, err := requiredBox(t)
	if err != nil {
		return rawSpan{}, err
	}
	content, ok := attr(t.Attr, "CONTENT")
	if !ok {
		return rawSpan{}, fmt.Errorf("%w: CONTENT on String", ErrMissingAttribute)
	}
	refs, _ := attr(t.Attr, "STYLEREFS")
	fontStyle, _ := attr(t.Attr, "STYLE")
	return rawSpan{
		kind:      kindString,
		box:       b,
		hasHeight: true,
		text:      content,
		styleRefs: strings.Fields(refs),
		fontStyle: fontStyle,
	}, nil
}

// spaceSpan reads an SP element. ALTO leaves all of its geometry optional:
// missing positions continue the previous span, a missing height is the line's.
func spaceSpan(t xml.StartElement, line *rawLine) (rawSpan, error) {
	b := box{x: line.box.x, y: line.box.y}
	if n := len(line.spans); n > 0 {
		prev := line.spans[n-1].box
		b.x = prev.x + prev.width
		b.y = prev.y
	}

	for _, field := range []struct {
		name string
		dst  *float64
	}{
		{"HPOS", &b.x},
		{"VPOS", &b.y},
		{"WIDTH", &b.width},
	} {
		if v, ok := attr(t.Attr, field.name); ok {
			f, err := parseFloat(field.name, v)
			if err != nil {
				return rawSpan{}, err
			}
			*field.dst = f
		}
	}

	span := rawSpan{kind: kindSpace, box: b, text: " "}
	if v, ok := attr(t.Attr, "HEIGHT"); ok {
		h, err := parseFloat("HEIGHT", v)
		if err != nil {
			return rawSpan{}, err
		}
		span.box.height = h
		span.hasHeight = true
	}
	return span, nil
}

// build converts the decoded document into a page scaled to the reference size
func (d *document) build(ref ocr.Size) (*ocr.Page, error) {
	scaleX, scaleY := 1.0, 1.0
	width, height := d.pageWidth, d.pageHeight
	if d.unit != UnitPixel {
		if ref.IsZero() {
			return nil, fmt.Errorf("%w: unit %q", ErrMissingReferenceSize, d.unit)
		}
		if width <= 0 || height <= 0 {
			return nil, fmt.Errorf("%w: WIDTH and HEIGHT on Page are needed to convert unit %q", ErrMissingAttribute, d.unit)
		}
		scaleX = ref.Width / width
		scaleY = ref.Height / height
		width *= scaleX
		height *= scaleY
	}

	page := &ocr.Page{Width: width, Height: height}
	for _, raw := range d.lines {
		if line, ok := d.buildLine(raw, scaleX, scaleY); ok {
			page.Lines = append(page.Lines, line)
		}
	}
	return page, nil
}

// buildLine scales a line and its spans. Lines without spans are dropped.
func (d *document) buildLine(raw rawLine, scaleX, scaleY float64) (ocr.Line, bool) {
	var provisional []ocr.ProvisionalSpan
	for i, s := range raw.spans {
		span := ocr.Span{
			X:      s.box.x * scaleX,
			Y:      s.box.y * scaleY,
			Width:  s.box.width * scaleX,
			Height: s.box.height * scaleY,
			Text:   s.text,
		}

		switch s.kind {
		case kindSpace:
			if !s.hasHeight {
				span.Height = raw.box.height * scaleY
			}
			// Keep zero-width spaces anchored to the end of the preceding word
			if span.Width == 0 {
				span.Width = ocr.MinSpanWidth
				span.X -= ocr.MinSpanWidth
			}
			provisional = append(provisional, ocr.ProvisionalSpan{Span: span})
		case kindString:
			span.Style = resolveStyle(d.styles, s.styleRefs, s.fontStyle)
			provisional = append(provisional, ocr.ProvisionalSpan{Span: span})
			if !d.hasSpaces && i < len(raw.spans)-1 {
				provisional = append(provisional, ocr.ProvisionalSpan{
					Span: ocr.Span{
						X:       span.X + span.Width,
						Y:       span.Y,
						Height:  span.Height,
						Text:    " ",
						IsExtra: true,
					},
					Pending: true,
				})
			}
		}
	}
	if len(provisional) == 0 {
		return ocr.Line{}, false
	}

	spans := ocr.ResolveSpans(provisional)
	line := ocr.Line{
		X:      raw.box.x * scaleX,
		Y:      raw.box.y * scaleY,
		Width:  raw.box.width * scaleX,
		Height: raw.box.height * scaleY,
		Text:   ocr.JoinSpanText(spans),
	}
	// Hyphenated lines continue on the next line, everything else ends in a break
	if !raw.hyphenated {
		spans[len(spans)-1].Text += "\n"
	}
	line.Spans = spans
	return line, true
}

// requiredBox reads HPOS, VPOS, WIDTH and HEIGHT of an element
func requiredBox(t xml.StartElement) (box, error) {
	var values [4]float64
	for i, name := range []string{"HPOS", "VPOS", "WIDTH", "HEIGHT"} {
		v, ok := attr(t.Attr, name)
		if !ok {
			return box{}, fmt.Errorf("%w: %s on %s", ErrMissingAttribute, name, t.Name.Local)
		}
		f, err := parseFloat(name, v)
		if err != nil {
			return box{}, err
		}
		values[i] = f
	}
	return box{x: values[0], y: values[1], width: values[2], height: values[3]}, nil
}

// optionalFloat reads a numeric attribute, returning 0 when it is absent
func optionalFloat(attrs []xml.Attr, name string) (float64, error) {
	v, ok := attr(attrs, name)
	if !ok {
		return 0, nil
	}
	return parseFloat(name, v)
}

func parseFloat(name, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return f, nil
}

// attr looks up an attribute by its local name
func attr(attrs []xml.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}
