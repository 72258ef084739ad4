package hocr

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// ParseTitle splits an hOCR title attribute into properties keyed by name,
// e.g. "bbox 0 0 1600 2400; ppageno 0" gives bbox and ppageno. Later
// duplicates of a property replace earlier ones.
func ParseTitle(title string) map[string][]string {
	props := make(map[string][]string)
	for _, prop := range strings.Split(title, ";") {
		if name, values, ok := splitProperty(prop); ok {
			props[name] = values
		}
	}
	return props
}

// splitProperty reads one "name value..." title property
func splitProperty(prop string) (string, []string, bool) {
	fields := strings.Fields(prop)
	if len(fields) == 0 {
		return "", nil, false
	}
	return fields[0], fields[1:], true
}

// ParseBoundingBoxFromTitle extracts a bounding box from a title string
// Returns a structured BoundingBox object or nil if extraction fails
func ParseBoundingBoxFromTitle(title string) *BoundingBox {
	props := ParseTitle(title)
	bbox, ok := props["bbox"]
	if !ok || len(bbox) < 4 {
		return nil
	}
	var coords [4]float64
	for i := range coords {
		v, err := strconv.ParseFloat(bbox[i], 64)
		if err != nil {
			return nil
		}
		coords[i] = v
	}
	result := NewBoundingBox(coords[0], coords[1], coords[2], coords[3])
	return &result
}

// decodeCharset converts the document to UTF-8 based on its meta charset
func decodeCharset(data []byte) ([]byte, error) {
	label := sniffCharset(data)
	if label == "" || label == "utf-8" || label == "utf8" {
		return data, nil
	}

	var enc encoding.Encoding = charmap.ISO8859_1
	if known, err := htmlindex.Get(label); err == nil {
		enc = known
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", label, err)
	}
	return decoded, nil
}

// sniffCharset returns the lower-cased value of the first charset= declaration
func sniffCharset(data []byte) string {
	idx := bytes.Index(data, []byte("charset="))
	if idx < 0 {
		return ""
	}
	snippet := data[idx+len("charset="):]
	if len(snippet) > 20 {
		snippet = snippet[:20]
	}
	fields := strings.FieldsFunc(string(snippet), func(r rune) bool {
		return r == '"' || r == ';' || r == '\'' || r == '>' || r == '/' || r == ' '
	})
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// hasClass reports whether the element carries one of the given classes
func hasClass(n *html.Node, classes ...string) bool {
	for _, c := range strings.Fields(getAttrVal(n, "class")) {
		for _, want := range classes {
			if c == want {
				return true
			}
		}
	}
	return false
}

// textContent concatenates all text below a node
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var builder strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		builder.WriteString(textContent(c))
	}
	return builder.String()
}

// Get the value of a specific attribute from a node
func getAttrVal(n *html.Node, attrName string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrName {
			return attr.Val
		}
	}
	return ""
}

// cleanStyle drops font-size declarations from an inline style, the overlay
// sizes text to its bounding box.
func cleanStyle(style string) string {
	var kept []string
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		prop, _, _ := strings.Cut(decl, ":")
		if strings.EqualFold(strings.TrimSpace(prop), "font-size") {
			continue
		}
		kept = append(kept, decl)
	}
	return strings.Join(kept, ";")
}

// visibleHyphen turns a trailing soft hyphen into a visible one
func visibleHyphen(text string) string {
	if trimmed, ok := strings.CutSuffix(text, "\u00ad"); ok {
		return trimmed + "-"
	}
	return text
}
