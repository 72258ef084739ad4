// Package hocr parses hOCR, the HTML-based standard format for OCR results,
// into the unified page model of package ocr, and writes pages back as hOCR.
//
// The parser reads the first element with class 'ocr_page', scales its
// coordinates to the caller's reference size and turns every line element
// ('ocr_line', 'ocrx_line' and the line-like 'ocr_caption', 'ocr_header',
// 'ocr_textfloat') into an ocr.Line. Lines with 'ocrx_word' children get one
// span per word, plus a synthesized whitespace span for the inter-word text
// of the markup.
//
// Key Types:
//
// - BoundingBox: Represents a rectangle from an hOCR 'bbox' property
//
// Main Functions:
//
// - Parse: Parses hOCR markup into an ocr.Page
// - Generate: Writes an ocr.Page as an hOCR document
// - ParseTitle / ParseBoundingBoxFromTitle: Helpers for hOCR title attributes
package hocr
