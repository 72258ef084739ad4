package alto

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextStyleCSS(t *testing.T) {
	attrs := []xml.Attr{
		{Name: xml.Name{Local: "ID"}, Value: "TS1"},
		{Name: xml.Name{Local: "FONTFAMILY"}, Value: "Fraktur"},
		{Name: xml.Name{Local: "FONTSTYLE"}, Value: "bold italics subscript underline"},
	}
	assert.Equal(t, "font-family: Fraktur;font-weight: bold;font-style: italic;text-decoration: underline", textStyleCSS(attrs))
	assert.Equal(t, "", textStyleCSS(nil))
}

func TestResolveStyle(t *testing.T) {
	styles := map[string]string{"a": "font-family: A", "b": "", "c": "color: #000000"}
	assert.Equal(t, "font-family: A;color: #000000", resolveStyle(styles, []string{"a", "b", "missing", "c"}, ""))
	assert.Equal(t, "font-variant: small-caps", resolveStyle(styles, nil, "smallcaps"))
	assert.Equal(t, "", resolveStyle(styles, nil, "superscript"))
}
