package alto

import (
	"encoding/xml"
	"strings"
)

// fontStyles maps ALTO FONTSTYLE keywords to CSS. Sub- and superscript are left
// out since they would change the rendered font size.
var fontStyles = map[string]string{
	"bold":      "font-weight: bold",
	"italics":   "font-style: italic",
	"smallcaps": "font-variant: small-caps",
	"underline": "text-decoration: underline",
}

// fontStyleCSS translates a space-separated FONTSTYLE value
func fontStyleCSS(value string) []string {
	var decls []string
	for _, keyword := range strings.Fields(value) {
		if css, ok := fontStyles[keyword]; ok {
			decls = append(decls, css)
		}
	}
	return decls
}

// textStyleCSS creates CSS declarations from the attributes of a TextStyle element
func textStyleCSS(attrs []xml.Attr) string {
	var decls []string
	if family, ok := attr(attrs, "FONTFAMILY"); ok {
		decls = append(decls, "font-family: "+family)
	}
	if color, ok := attr(attrs, "FONTCOLOR"); ok {
		decls = append(decls, "color: #"+color)
	}
	if style, ok := attr(attrs, "FONTSTYLE"); ok {
		decls = append(decls, fontStyleCSS(style)...)
	}
	return strings.Join(decls, ";")
}

// resolveStyle joins the declarations of all referenced styles plus the
// element's own STYLE attribute. Unknown references are skipped.
func resolveStyle(styles map[string]string, refs []string, fontStyle string) string {
	var decls []string
	for _, ref := range refs {
		if css := styles[ref]; css != "" {
			decls = append(decls, css)
		}
	}
	decls = append(decls, fontStyleCSS(fontStyle)...)
	return strings.Join(decls, ";")
}
