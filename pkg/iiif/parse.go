package iiif

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gardar/ocrtext/pkg/ocr"
)

var fragmentPattern = regexp.MustCompile(`(?:^|#)xywh=(?:pixel:)?(\d+(?:\.\d+)?),(\d+(?:\.\d+)?),(\d+(?:\.\d+)?),(\d+(?:\.\d+)?)`)

// Parse converts annotations that all refer to the same canvas into a page.
// When any annotation is marked as line granularity only those are used.
// Without a reference size the page is sized to fit its lines.
func Parse(annos []Annotation, ref ocr.Size) (*ocr.Page, error) {
	page := &ocr.Page{Width: ref.Width, Height: ref.Height}
	for i, anno := range lineAnnotations(annos) {
		x, y, width, height, err := anno.Region()
		if err != nil {
			return nil, fmt.Errorf("annotation %d (%s): %w", i, anno.ID, err)
		}
		page.Lines = append(page.Lines, ocr.Line{
			X:      x,
			Y:      y,
			Width:  width,
			Height: height,
			Text:   anno.Text(),
		})
	}
	page.EnsureSize()
	return page, nil
}

// ParseList decodes a serialized annotation list and converts its text
// annotations. Lists without any recognizable text annotation are converted
// as a whole.
func ParseList(data []byte, ref ocr.Size, opts ocr.Options) (*ocr.Page, error) {
	annos, err := DecodeList(data)
	if err != nil {
		return nil, err
	}
	texts := ContentAsText(annos)
	if len(texts) == 0 {
		opts.Log().WithField("annotations", len(annos)).Debug("no text annotations found, using all annotations")
		texts = annos
	}

	page, err := Parse(texts, ref)
	if err != nil {
		return nil, err
	}
	opts.Log().WithFields(logrus.Fields{
		"annotations": len(annos),
		"lines":       len(page.Lines),
	}).Debug("parsed IIIF annotations")
	return page, nil
}

// DecodeList reads the annotations of an AnnotationList, an AnnotationPage or
// a bare JSON array of annotations.
func DecodeList(data []byte) ([]Annotation, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var annos []Annotation
		if err := json.Unmarshal(data, &annos); err != nil {
			return nil, fmt.Errorf("failed to decode annotations: %w", err)
		}
		return annos, nil
	}

	var l list
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to decode annotation list: %w", err)
	}
	switch {
	case l.Resources != nil:
		return l.Resources, nil
	case l.Items != nil:
		return l.Items, nil
	}
	return nil, ErrNotAnnotationList
}

// ContentAsText keeps the annotations that transcribe the canvas: IIIF 3
// 'supplementing' annotations, IIIF 2 'cnt:ContentAsText' resources and
// Europeana line or word annotations.
func ContentAsText(annos []Annotation) []Annotation {
	var out []Annotation
	for _, anno := range annos {
		switch {
		case anno.Motivation.Contains(MotivationSupplementing),
			anno.Resource != nil && strings.EqualFold(anno.Resource.Type, TypeContentAsText),
			anno.DcType == DcTypeLine || anno.DcType == DcTypeWord:
			out = append(out, anno)
		}
	}
	return out
}

// lineAnnotations returns the line annotations, or all annotations if none
// is marked as a line.
func lineAnnotations(annos []Annotation) []Annotation {
	var lines []Annotation
	for _, anno := range annos {
		if anno.TextGranularity == GranularityLine || anno.DcType == DcTypeLine {
			lines = append(lines, anno)
		}
	}
	if len(lines) == 0 {
		return annos
	}
	return lines
}

// Text returns the annotation's text: resource chars, then resource value,
// then body value.
func (a Annotation) Text() string {
	if a.Resource != nil {
		if a.Resource.Chars != nil {
			return *a.Resource.Chars
		}
		if a.Resource.Value != nil {
			return *a.Resource.Value
		}
		return ""
	}
	return bodyValue(a.Body)
}

// Region returns the rectangle of the annotation's first target
func (a Annotation) Region() (x, y, width, height float64, err error) {
	target := a.Target
	if len(bytes.TrimSpace(target)) == 0 {
		target = a.On
	}
	for _, candidate := range targetStrings(target) {
		m := fragmentPattern.FindStringSubmatch(candidate)
		if m == nil {
			continue
		}
		var values [4]float64
		for i := range values {
			if values[i], err = strconv.ParseFloat(m[i+1], 64); err != nil {
				return 0, 0, 0, 0, err
			}
		}
		return values[0], values[1], values[2], values[3], nil
	}
	return 0, 0, 0, 0, ErrNoFragment
}

// targetStrings lists the strings of the first target that may carry a
// fragment: the target URI itself or its selector value.
func targetStrings(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		return []string{s}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
			return nil
		}
		return targetStrings(items[0])
	case '{':
		var obj struct {
			ID       string          `json:"@id"`
			IDv3     string          `json:"id"`
			Full     string          `json:"full"`
			Source   json.RawMessage `json:"source"`
			Selector json.RawMessage `json:"selector"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil
		}
		var out []string
		out = append(out, selectorValues(obj.Selector)...)
		for _, s := range []string{obj.ID, obj.IDv3, obj.Full} {
			if s != "" {
				out = append(out, s)
			}
		}
		return append(out, targetStrings(obj.Source)...)
	}
	return nil
}

// selectorValues returns the value of a selector object or of each selector in a list
func selectorValues(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	if raw[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil
		}
		var out []string
		for _, item := range items {
			out = append(out, selectorValues(item)...)
		}
		return out
	}
	var sel struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &sel); err != nil || sel.Value == "" {
		return nil
	}
	return []string{sel.Value}
}

// bodyValue returns the value of a body object, or of the first body in a
// list that has one.
func bodyValue(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	if raw[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return ""
		}
		for _, item := range items {
			if v := bodyValue(item); v != "" {
				return v
			}
		}
		return ""
	}
	var body struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.Value
}
