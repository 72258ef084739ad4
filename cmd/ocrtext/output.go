package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gardar/ocrtext/pkg/hocr"
	"github.com/gardar/ocrtext/pkg/ocr"
)

// writePage writes a page in the given output format
func writePage(w io.Writer, page *ocr.Page, format, title string) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(page); err != nil {
			return err
		}
		return enc.Close()
	case outputHOCR:
		doc, err := hocr.Generate(page, title)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, doc)
		return err
	case outputText:
		_, err := io.WriteString(w, pageText(page))
		return err
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// pageText returns the text of all lines, one per line
func pageText(page *ocr.Page) string {
	var b strings.Builder
	for _, line := range page.Lines {
		b.WriteString(line.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// outputPath returns the path of the output file for an input file
func outputPath(dir, input, format string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+outputExtension(format))
}
