package ocrformat

import (
	"fmt"

	"github.com/gardar/ocrtext/pkg/alto"
	"github.com/gardar/ocrtext/pkg/hocr"
	"github.com/gardar/ocrtext/pkg/iiif"
	"github.com/gardar/ocrtext/pkg/ocr"
)

// Parse detects the format of markup and parses it. Parser errors are
// returned unchanged. Pages without a usable size are sized to fit their lines.
func Parse(markup []byte, ref ocr.Size, opts ocr.Options) (*ocr.Page, error) {
	return ParseAs(Detect(markup), markup, ref, opts)
}

// ParseAs parses markup in the given format
func ParseAs(format Format, markup []byte, ref ocr.Size, opts ocr.Options) (*ocr.Page, error) {
	opts.Log().WithField("format", format.String()).Debug("parsing OCR markup")

	var page *ocr.Page
	var err error
	switch format {
	case FormatALTO:
		page, err = alto.Parse(markup, ref, opts)
	case FormatHOCR:
		page, err = hocr.Parse(markup, ref, opts)
	case FormatIIIF:
		page, err = iiif.ParseList(markup, ref, opts)
	default:
		return nil, fmt.Errorf("unsupported OCR format %q", format)
	}
	if err != nil {
		return nil, err
	}
	page.EnsureSize()
	return page, nil
}
