// Package alto parses ALTO XML (versions 2, 3 and 4) into the unified page
// model of package ocr.
//
// ALTO coordinates are converted to the pixel space of the reference image:
// documents whose MeasurementUnit is not 'pixel' (typically 'mm10' or
// 'inch1200') are scaled per axis by referenceSize / pageSize.
//
// Main Functions:
//
// - Parse: Parses ALTO markup into an ocr.Page
// - SupportedNamespace: Reports whether a namespace URI is a known ALTO version
package alto

import "errors"

// Namespaces of the supported ALTO versions
const (
	NamespaceV2 = "http://www.loc.gov/standards/alto/ns-v2#"
	NamespaceV3 = "http://www.loc.gov/standards/alto/ns-v3#"
	NamespaceV4 = "http://www.loc.gov/standards/alto/ns-v4#"
)

// UnitPixel is the measurement unit that needs no conversion
const UnitPixel = "pixel"

var (
	// ErrUnsupportedNamespace is returned when the root element is not in a supported ALTO namespace
	ErrUnsupportedNamespace = errors.New("unsupported ALTO namespace")
	// ErrMissingReferenceSize is returned when non-pixel units cannot be converted
	ErrMissingReferenceSize = errors.New("reference size required for non-pixel ALTO measurement unit")
	// ErrMissingAttribute is returned when a required attribute is absent
	ErrMissingAttribute = errors.New("missing required attribute")
)

// SupportedNamespace reports whether ns is the namespace of ALTO v2, v3 or v4
func SupportedNamespace(ns string) bool {
	switch ns {
	case NamespaceV2, NamespaceV3, NamespaceV4:
		return true
	}
	return false
}
