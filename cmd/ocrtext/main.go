// ocrtext is a command-line tool for converting OCR markup into positioned page text.
//
// ALTO, hOCR and IIIF annotation lists are detected automatically and parsed into a
// common page model whose coordinates are scaled to a reference image size. The
// result is written as JSON, YAML, hOCR or plain text. The tool can also detect the
// text and background colours of a page image.
//
// Configuration:
//
// An optional YAML configuration file sets defaults:
//
//	reference_width: 2411
//	reference_height: 3372
//	output_format: json
//	workers: 4
//	log_level: info
//	thumbnail_width: 200
//
// OCRTEXT_LOG_LEVEL and OCRTEXT_WORKERS override the file and may be set in a .env
// file. Flags override both.
//
// Usage:
//
//	ocrtext [options] file...
//
// Options:
//
//	-config string  Path to the YAML configuration file
//	-env string     Path to a .env file (default ".env")
//	-width float    Reference width to scale coordinates to
//	-height float   Reference height to scale coordinates to
//	-input string   Input format: alto, hocr or iiif (default: detect)
//	-format string  Output format: json, yaml, hocr or text
//	-out string     Directory to write one output file per input file (default: stdout)
//	-workers int    Number of files parsed concurrently
//	-colors string  Page image to detect text and background colours from
//	-log-level string Log level
//
// Examples:
//
//	ocrtext -width 1248 -height 1925 page.xml
//	ocrtext -format hocr -out ./hocr pages/*.xml
//	ocrtext -colors page.jpg
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gardar/ocrtext/pkg/batch"
	"github.com/gardar/ocrtext/pkg/color"
	"github.com/gardar/ocrtext/pkg/ocr"
	"github.com/gardar/ocrtext/pkg/ocrformat"
)

func main() {
	configPath := flag.String("config", "", "Path to the config YAML file")
	envPath := flag.String("env", ".env", "Path to a .env file with OCRTEXT_* overrides")
	width := flag.Float64("width", 0, "Reference width to scale coordinates to")
	height := flag.Float64("height", 0, "Reference height to scale coordinates to")
	inputFormat := flag.String("input", "", "Input format (alto, hocr, iiif); detected when empty")
	outputFormat := flag.String("format", "", "Output format (json, yaml, hocr, text)")
	outDir := flag.String("out", "", "Directory to write output files to instead of stdout")
	workers := flag.Int("workers", 0, "Number of files to parse concurrently")
	colorsPath := flag.String("colors", "", "Page image to detect text and background colours from")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	flag.Parse()

	if flag.NArg() == 0 && *colorsPath == "" {
		fmt.Fprintln(os.Stderr, "Error: at least one OCR file or -colors must be provided")
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := godotenv.Load(*envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logrus.Fatalf("Failed to load env file: %v", err)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		logrus.Fatalf("Invalid environment: %v", err)
	}

	// Flags win over env and file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.ReferenceWidth = *width
		case "height":
			cfg.ReferenceHeight = *height
		case "input":
			cfg.InputFormat = *inputFormat
		case "format":
			cfg.OutputFormat = *outputFormat
		case "workers":
			cfg.Workers = *workers
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if err := cfg.validate(); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	level, _ := logrus.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)

	if *colorsPath != "" {
		if err := printColors(*colorsPath, cfg.ThumbnailWidth); err != nil {
			log.Fatalf("Failed to detect page colours: %v", err)
		}
	}
	if flag.NArg() == 0 {
		return
	}

	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ref := ocr.Size{Width: cfg.ReferenceWidth, Height: cfg.ReferenceHeight}
	opts := batch.Options{Workers: cfg.Workers, Parse: ocr.Options{Logger: log}}
	results, err := batch.ParseFiles(ctx, flag.Args(), ocrformat.ParseFormat(cfg.InputFormat), ref, opts)
	if err != nil {
		log.Fatalf("Parsing aborted: %v", err)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			log.WithField("file", r.Name).Errorf("Failed to parse: %v", r.Err)
			failed++
			continue
		}
		if err := emit(r, cfg.OutputFormat, *outDir); err != nil {
			log.WithField("file", r.Name).Errorf("Failed to write output: %v", err)
			failed++
			continue
		}
		log.WithFields(logrus.Fields{
			"file":   r.Name,
			"format": r.Format.String(),
			"lines":  len(r.Page.Lines),
		}).Info("Converted OCR file")
	}
	if failed > 0 {
		log.Errorf("%d of %d files failed", failed, len(results))
		os.Exit(1)
	}
}

// emit writes a result to stdout or to a file in outDir
func emit(r batch.Result, format, outDir string) error {
	if outDir == "" {
		return writePage(os.Stdout, r.Page, format, r.Name)
	}
	f, err := os.Create(outputPath(outDir, r.Name, format))
	if err != nil {
		return err
	}
	if err := writePage(f, r.Page, format, r.Name); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// printColors decodes a page image and prints its text and background colours as JSON
func printColors(path string, thumbnailWidth int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(color.ImageColors(img, thumbnailWidth))
}
