// Package ocr defines the unified geometric text model that every OCR format
// parser in this module produces.
//
// A Page is made of Lines, and a Line is optionally made of positioned Spans.
// All coordinates are expressed in the space of the image the text is meant to
// overlay (the reference size).
//
// Key Types:
//
// - Page: Page size plus its lines
// - Line: Bounding box and reconstructed text of one line
// - Span: A positioned word, sub-word token or whitespace run
// - Size: A width/height pair used for reference sizes
// - Options: Per-call parser options (diagnostic logger)
//
// Main Functions:
//
// - ResolveSpans: Fills in the widths of synthesized whitespace spans
// - FallbackSize: Computes a page size from the extents of its lines
package ocr
