// Package iiif reads positioned text from IIIF annotations.
//
// Both IIIF Presentation 2 (AnnotationList with 'resources', 'on' targets and
// 'cnt:ContentAsText' resources) and IIIF Presentation 3 (AnnotationPage with
// 'items', 'target' and 'supplementing' motivation) are understood. Regions are
// read from 'xywh' media fragments.
//
// Main Functions:
//
// - Parse: Converts annotations of a single canvas into an ocr.Page
// - ParseList: Decodes, filters and converts a serialized annotation list
// - DecodeList: Reads the annotations of an AnnotationList or AnnotationPage
// - ContentAsText: Keeps only annotations that carry text content
package iiif

import "errors"

var (
	// ErrNoFragment is returned for annotations whose target has no xywh fragment
	ErrNoFragment = errors.New("annotation target has no xywh fragment")
	// ErrNotAnnotationList is returned when the JSON holds neither 'resources' nor 'items'
	ErrNotAnnotationList = errors.New("not an IIIF annotation list or page")
)

// Text granularities that identify line annotations
const (
	GranularityLine = "line"
	DcTypeLine      = "Line"
	DcTypeWord      = "Word"
)

// MotivationSupplementing marks IIIF 3 annotations that transcribe the canvas
const MotivationSupplementing = "supplementing"

// TypeContentAsText is the IIIF 2 resource type for embedded text
const TypeContentAsText = "cnt:ContentAsText"
