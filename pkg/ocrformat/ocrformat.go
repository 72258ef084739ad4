// Package ocrformat detects the format of OCR markup and dispatches it to the
// matching parser.
//
// Main Functions:
//
// - Detect: Guesses the format of OCR markup from its content
// - DetectResource: Guesses the format of a linked OCR resource from its format and profile
// - Parse: Parses ALTO, hOCR or IIIF markup into an ocr.Page
package ocrformat

import (
	"bytes"
	"strings"
)

// Format identifies an OCR markup format
type Format int

// Supported formats
const (
	FormatUnknown Format = iota
	FormatALTO
	FormatHOCR
	FormatIIIF
)

// MIME types and profile URIs used to announce OCR resources
const (
	MediaTypeALTO = "application/xml+alto"
	MediaTypeHOCR = "text/vnd.hocr+html"

	ProfileALTOPrefix = "http://www.loc.gov/standards/alto/"
	ProfileHOCRSpec   = "https://github.com/kba/hocr-spec/blob/master/hocr-spec.md"
)

var hocrProfilePrefixes = []string{
	"http://kba.cloud/hocr-spec/",
	"http://kba.github.io/hocr-spec/",
}

// String returns the lower-case name of the format
func (f Format) String() string {
	switch f {
	case FormatALTO:
		return "alto"
	case FormatHOCR:
		return "hocr"
	case FormatIIIF:
		return "iiif"
	}
	return "unknown"
}

// ParseFormat returns the format for a name as produced by Format.String
func ParseFormat(name string) Format {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "alto":
		return FormatALTO
	case "hocr":
		return FormatHOCR
	case "iiif":
		return FormatIIIF
	}
	return FormatUnknown
}

// Detect guesses the format of markup. Anything containing '<alto' is ALTO,
// JSON objects and arrays are IIIF annotations and everything else is treated
// as hOCR.
func Detect(markup []byte) Format {
	if bytes.Contains(markup, []byte("<alto")) {
		return FormatALTO
	}
	trimmed := bytes.TrimLeft(markup, " \t\r\n\ufeff")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatIIIF
	}
	return FormatHOCR
}

// DetectResource guesses the format of a linked OCR resource, such as a IIIF
// 'seeAlso' entry, from its declared format and profile.
func DetectResource(format, profile string) Format {
	switch {
	case format == MediaTypeALTO, strings.HasPrefix(profile, ProfileALTOPrefix):
		return FormatALTO
	case format == MediaTypeHOCR, profile == ProfileHOCRSpec:
		return FormatHOCR
	}
	for _, prefix := range hocrProfilePrefixes {
		if strings.HasPrefix(profile, prefix) {
			return FormatHOCR
		}
	}
	return FormatUnknown
}
