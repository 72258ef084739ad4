package ocrformat

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardar/ocrtext/pkg/alto"
	"github.com/gardar/ocrtext/pkg/hocr"
	"github.com/gardar/ocrtext/pkg/ocr"
)

const altoNoPageSize = `<?xml version="1.0" encoding="UTF-8"?>
<alto xmlns="http://www.loc.gov/standards/alto/ns-v3#">
 <Description><MeasurementUnit>pixel</MeasurementUnit></Description>
 <Layout><Page><PrintSpace><TextBlock>
  <TextLine HPOS="10" VPOS="20" WIDTH="100" HEIGHT="15">
   <String HPOS="10" VPOS="20" WIDTH="40" HEIGHT="15" CONTENT="Hello"/>
   <String HPOS="60" VPOS="20" WIDTH="50" HEIGHT="15" CONTENT="world"/>
  </TextLine>
  <TextLine HPOS="10" VPOS="50" WIDTH="80" HEIGHT="15">
   <String HPOS="10" VPOS="50" WIDTH="80" HEIGHT="15" CONTENT="again"/>
  </TextLine>
 </TextBlock></PrintSpace></Page></Layout>
</alto>`

const hocrPage = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>page</title></head><body>
<div class="ocr_page" title="image page.png; bbox 0 0 200 100">
 <span class="ocr_line" title="bbox 10 10 110 30"><span class="ocrx_word" title="bbox 10 10 50 30">Hello</span> <span class="ocrx_word" title="bbox 60 10 110 30">world</span></span>
</div>
</body></html>`

const iiifList = `{"resources": [
 {"@id": "a1", "resource": {"@type": "cnt:ContentAsText", "chars": "Hello"}, "on": "canvas#xywh=5,5,100,20"}
]}`

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   Format
	}{
		{"alto", altoNoPageSize, FormatALTO},
		{"alto prefixed root", `<?xml version="1.0"?><alto:alto xmlns:alto="x"/>`, FormatALTO},
		{"hocr", hocrPage, FormatHOCR},
		{"iiif object", iiifList, FormatIIIF},
		{"iiif array", "\n  [{}]", FormatIIIF},
		{"empty", "", FormatHOCR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect([]byte(tt.markup)))
		})
	}
}

func TestDetectResource(t *testing.T) {
	assert.Equal(t, FormatALTO, DetectResource(MediaTypeALTO, ""))
	assert.Equal(t, FormatALTO, DetectResource("", "http://www.loc.gov/standards/alto/ns-v3#"))
	assert.Equal(t, FormatHOCR, DetectResource(MediaTypeHOCR, ""))
	assert.Equal(t, FormatHOCR, DetectResource("text/html", ProfileHOCRSpec))
	assert.Equal(t, FormatHOCR, DetectResource("", "http://kba.github.io/hocr-spec/1.2/"))
	assert.Equal(t, FormatHOCR, DetectResource("", "http://kba.cloud/hocr-spec/1.2/"))
	assert.Equal(t, FormatUnknown, DetectResource("text/plain", "http://example.com/profile"))
}

func TestFormatNames(t *testing.T) {
	for _, f := range []Format{FormatALTO, FormatHOCR, FormatIIIF} {
		assert.Equal(t, f, ParseFormat(f.String()))
	}
	assert.Equal(t, FormatUnknown, ParseFormat("pdf"))
	assert.Equal(t, "unknown", FormatUnknown.String())
}

func TestParseALTOAppliesFallbackSize(t *testing.T) {
	page, err := Parse([]byte(altoNoPageSize), ocr.Size{}, ocr.Options{})
	require.NoError(t, err)

	require.Len(t, page.Lines, 2)
	assert.Equal(t, "Hello world", page.Lines[0].Text)
	assert.Equal(t, 110.0, page.Width)
	assert.Equal(t, 65.0, page.Height)
}

func TestParseHOCR(t *testing.T) {
	page, err := Parse([]byte(hocrPage), ocr.Size{Width: 400, Height: 200}, ocr.Options{})
	require.NoError(t, err)

	assert.Equal(t, 400.0, page.Width)
	assert.Equal(t, 200.0, page.Height)
	require.Len(t, page.Lines, 1)
	assert.Equal(t, "Hello world", page.Lines[0].Text)
	assert.Equal(t, 20.0, page.Lines[0].X)
}

func TestParseIIIF(t *testing.T) {
	page, err := Parse([]byte(iiifList), ocr.Size{}, ocr.Options{})
	require.NoError(t, err)

	require.Len(t, page.Lines, 1)
	assert.Equal(t, ocr.Size{Width: 105, Height: 25}, page.Size())
}

func TestParsePassesErrorsThrough(t *testing.T) {
	logger, hook := test.NewNullLogger()
	markup := `<alto xmlns="http://www.loc.gov/standards/alto/ns-v1#"><Layout/></alto>`

	page, err := Parse([]byte(markup), ocr.Size{}, ocr.Options{Logger: logger})
	assert.Nil(t, page)
	assert.ErrorIs(t, err, alto.ErrUnsupportedNamespace)
	assert.NotEmpty(t, hook.AllEntries())

	_, err = Parse([]byte(`<html><body><p>no page</p></body></html>`), ocr.Size{}, ocr.Options{})
	assert.ErrorIs(t, err, hocr.ErrNoPage)
}

func TestParseAsUnknown(t *testing.T) {
	_, err := ParseAs(FormatUnknown, []byte("x"), ocr.Size{}, ocr.Options{})
	assert.ErrorContains(t, err, "unknown")
}
