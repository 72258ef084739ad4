package hocr

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardar/ocrtext/pkg/ocr"
)

const sampleHOCR = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN"
    "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">
<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="de" lang="de">
 <head>
  <title></title>
  <meta http-equiv="Content-Type" content="text/html;charset=utf-8"/>
  <meta name="ocr-system" content="tesseract 5.3.0"/>
 </head>
 <body>
  <div class="ocr_page" id="page_1" title="image &quot;page.png&quot;; bbox 0 0 1600 2400; ppageno 0">
   <div class="ocr_carea" id="block_1_1" title="bbox 100 100 1500 400">
    <p class="ocr_par" id="par_1_1" lang="deu" title="bbox 100 100 1500 400">
     <span class="ocr_line" id="line_1_1" title="bbox 100 100 700 150; baseline 0 -10; x_size 50">
      <span class="ocrx_word" id="word_1_1" title="bbox 100 100 250 150; x_wconf 96">Hello</span>
      <span class="ocrx_word" id="word_1_2" title="bbox 270 100 400 150; x_wconf 91" style="font-style: italic;font-size: 12pt">wor&#173;</span>
     </span>
     <span class="ocr_line" id="line_1_2" title="bbox 100 200 300 250"><span class="ocrx_word" id="word_1_3" title="bbox 100 200 200 250">foo</span> <span class="ocrx_word" id="word_1_4" title="bbox 200 200 300 250">bar</span></span>
     <span class="ocr_line" id="line_1_3" title="bbox 100 300 900 350">Just a   line</span>
    </p>
   </div>
   <span class="ocr_header" id="line_1_4" title="bbox 100 400 500 450"><span class="ocrx_word" id="word_1_5" title="bbox 100 400 500 450">Kapitel</span></span>
   <span class="ocrx_line" id="line_1_5" title="bbox 100 500 500 550"><span class="ocrx_word" id="word_1_6" title="bbox 100 500 500 550">Ende</span></span>
  </div>
 </body>
</html>
`

func TestParse(t *testing.T) {
	page, err := Parse([]byte(sampleHOCR), ocr.Size{Width: 1600, Height: 2400}, ocr.Options{})
	require.NoError(t, err)

	assert.Equal(t, 1600.0, page.Width)
	assert.Equal(t, 2400.0, page.Height)
	require.Len(t, page.Lines, 5)

	first := page.Lines[0]
	assert.Equal(t, "Hello wor-", first.Text)
	assert.Equal(t, 100.0, first.X)
	assert.Equal(t, 600.0, first.Width)
	require.Len(t, first.Spans, 3)
	assert.Equal(t, ocr.Span{X: 100, Y: 100, Width: 150, Height: 50, Text: "Hello"}, first.Spans[0])
	assert.Equal(t, ocr.Span{X: 250, Y: 100, Width: 20, Height: 50, Text: " ", IsExtra: true}, first.Spans[1])
	assert.Equal(t, "wor-", first.Spans[2].Text)
	assert.Equal(t, "font-style: italic", first.Spans[2].Style)
}

func TestParseZeroGapWhitespace(t *testing.T) {
	page, err := Parse([]byte(sampleHOCR), ocr.Size{}, ocr.Options{})
	require.NoError(t, err)

	line := page.Lines[1]
	assert.Equal(t, "foo bar", line.Text)
	require.Len(t, line.Spans, 3)
	assert.True(t, line.Spans[1].IsExtra)
	assert.Equal(t, 200.0, line.Spans[1].X)
	assert.Equal(t, ocr.MinSpanWidth, line.Spans[1].Width)
}

func TestParseTrailingTextAfterLastWord(t *testing.T) {
	markup := `<div class="ocr_page" title="bbox 0 0 200 100">
<span class="ocr_line" title="bbox 0 0 90 20"><span class="ocrx_word" title="bbox 0 0 40 20">foo</span> <span class="ocrx_word" title="bbox 50 0 90 20">bar</span>, </span>
<span class="ocr_line" title="bbox 0 30 90 50"><span class="ocrx_word" title="bbox 0 30 90 50">end</span>
</span></div>`
	page, err := Parse([]byte(markup), ocr.Size{}, ocr.Options{})
	require.NoError(t, err)
	require.Len(t, page.Lines, 2)

	line := page.Lines[0]
	assert.Equal(t, "foo bar,", line.Text)
	require.Len(t, line.Spans, 4)
	assert.Equal(t, ocr.Span{X: 50, Y: 0, Width: 40, Height: 20, Text: "bar"}, line.Spans[2])
	assert.Equal(t, ocr.Span{X: 90, Y: 0, Width: ocr.MinSpanWidth, Height: 20, Text: ",", IsExtra: true}, line.Spans[3])

	// Whitespace-only trailing text adds no span
	require.Len(t, page.Lines[1].Spans, 1)
	assert.Equal(t, "end", page.Lines[1].Text)
}

func TestParseCollapsesUnicodeSpaces(t *testing.T) {
	markup := `<div class="ocr_page" title="bbox 0 0 200 100">
<span class="ocr_line" title="bbox 0 0 90 20"><span class="ocrx_word" title="bbox 0 0 40 20">foo</span>&nbsp;&#x2009;<span class="ocrx_word" title="bbox 50 0 90 20">bar</span></span>
</div>`
	page, err := Parse([]byte(markup), ocr.Size{}, ocr.Options{})
	require.NoError(t, err)

	line := page.Lines[0]
	require.Len(t, line.Spans, 3)
	assert.Equal(t, " ", line.Spans[1].Text)
	assert.Equal(t, 10.0, line.Spans[1].Width)
	assert.Equal(t, "foo bar", line.Text)
}

func TestParseLineGranularity(t *testing.T) {
	page, err := Parse([]byte(sampleHOCR), ocr.Size{}, ocr.Options{})
	require.NoError(t, err)

	line := page.Lines[2]
	assert.Equal(t, "Just a   line", line.Text)
	assert.Nil(t, line.Spans)
	assert.Equal(t, 800.0, line.Width)

	assert.Equal(t, "Kapitel", page.Lines[3].Text)
	assert.Equal(t, "Ende", page.Lines[4].Text)
}

func TestParseScalesToReferenceSize(t *testing.T) {
	logger, hook := test.NewNullLogger()
	page, err := Parse([]byte(sampleHOCR), ocr.Size{Width: 800, Height: 1200}, ocr.Options{Logger: logger})
	require.NoError(t, err)

	assert.Empty(t, hook.AllEntries())
	assert.Equal(t, 800.0, page.Width)
	assert.Equal(t, 1200.0, page.Height)
	assert.InDelta(t, 50.0, page.Lines[0].X, 1e-9)
	assert.InDelta(t, 300.0, page.Lines[0].Width, 1e-9)
	assert.InDelta(t, 25.0, page.Lines[0].Height, 1e-9)
	assert.InDelta(t, 10.0, page.Lines[0].Spans[1].Width, 1e-9)
}

func TestParseWarnsOnAspectRatioMismatch(t *testing.T) {
	logger, hook := test.NewNullLogger()
	page, err := Parse([]byte(sampleHOCR), ocr.Size{Width: 800, Height: 1000}, ocr.Options{Logger: logger})
	require.NoError(t, err)

	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, 800.0, hook.LastEntry().Data["reference_width"])

	// The width ratio is used for both axes
	assert.Equal(t, 800.0, page.Width)
	assert.Equal(t, 1200.0, page.Height)
	assert.InDelta(t, 100.0, page.Lines[1].Y, 1e-9)
}

func TestParseIsDeterministic(t *testing.T) {
	first, err := Parse([]byte(sampleHOCR), ocr.Size{Width: 1200, Height: 1800}, ocr.Options{})
	require.NoError(t, err)
	second, err := Parse([]byte(sampleHOCR), ocr.Size{Width: 1200, Height: 1800}, ocr.Options{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`<html><body><p>no page</p></body></html>`), ocr.Size{}, ocr.Options{})
	assert.ErrorIs(t, err, ErrNoPage)

	_, err = Parse([]byte(`<div class="ocr_page" title="ppageno 0"></div>`), ocr.Size{}, ocr.Options{})
	assert.ErrorIs(t, err, ErrMissingBBox)

	_, err = Parse([]byte(`<div class="ocr_page" title="bbox 0 0 10 10">
<span class="ocr_line" title="bbox 0 0 10 5"><span class="ocrx_word" id="w">x</span></span></div>`), ocr.Size{}, ocr.Options{})
	assert.ErrorIs(t, err, ErrMissingBBox)
}

func TestParseLatin1(t *testing.T) {
	markup := []byte("<html><head><meta charset=\"iso-8859-1\"></head><body>" +
		"<div class='ocr_page' title='bbox 0 0 100 100'>" +
		"<span class='ocr_line' title='bbox 0 0 50 10'><span class='ocrx_word' title='bbox 0 0 50 10'>\xe9t\xe9</span></span>" +
		"</div></body></html>")
	page, err := Parse(markup, ocr.Size{}, ocr.Options{})
	require.NoError(t, err)
	assert.Equal(t, "été", page.Lines[0].Text)
}

func TestParseTitle(t *testing.T) {
	props := ParseTitle("bbox 100 200 300 400; x_wconf 95; baseline 0.01 -5")
	assert.Equal(t, []string{"100", "200", "300", "400"}, props["bbox"])
	assert.Equal(t, []string{"95"}, props["x_wconf"])

	bbox := ParseBoundingBoxFromTitle("image \"a.png\"; bbox 1 2 11 22")
	require.NotNil(t, bbox)
	assert.Equal(t, 10.0, bbox.Width())
	assert.Equal(t, 20.0, bbox.Height())

	assert.Nil(t, ParseBoundingBoxFromTitle("bbox 1 2 x 4"))
	assert.Nil(t, ParseBoundingBoxFromTitle("x_wconf 3"))
}

func TestCleanStyle(t *testing.T) {
	assert.Equal(t, "font-style: italic;color: red", cleanStyle("font-size: 12pt; font-style: italic;color: red;"))
	assert.Equal(t, "", cleanStyle("font-size:9px"))
}
