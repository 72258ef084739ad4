package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/gardar/ocrtext/pkg/color"
	"github.com/gardar/ocrtext/pkg/ocrformat"
)

// Environment variables that override the config file
const (
	envLogLevel = "OCRTEXT_LOG_LEVEL"
	envWorkers  = "OCRTEXT_WORKERS"
)

// Output formats
const (
	outputJSON = "json"
	outputYAML = "yaml"
	outputHOCR = "hocr"
	outputText = "text"
)

type config struct {
	ReferenceWidth  float64 `yaml:"reference_width"`
	ReferenceHeight float64 `yaml:"reference_height"`
	InputFormat     string  `yaml:"input_format"`
	OutputFormat    string  `yaml:"output_format"`
	Workers         int     `yaml:"workers"`
	LogLevel        string  `yaml:"log_level"`
	ThumbnailWidth  int     `yaml:"thumbnail_width"`
}

func defaultConfig() config {
	return config{
		OutputFormat:   outputJSON,
		Workers:        runtime.NumCPU(),
		LogLevel:       logrus.InfoLevel.String(),
		ThumbnailWidth: color.DefaultThumbnailWidth,
	}
}

// loadConfig reads a YAML file on top of the defaults
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// applyEnv overrides the config with environment variables
func applyEnv(cfg *config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(envLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup(envWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", envWorkers, v)
		}
		cfg.Workers = n
	}
	return nil
}

// validate checks values that flags, env and file can all set
func (c config) validate() error {
	switch c.OutputFormat {
	case outputJSON, outputYAML, outputHOCR, outputText:
	default:
		return fmt.Errorf("unsupported output format %q", c.OutputFormat)
	}
	if c.InputFormat != "" && ocrformat.ParseFormat(c.InputFormat) == ocrformat.FormatUnknown {
		return fmt.Errorf("unsupported input format %q", c.InputFormat)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.ReferenceWidth < 0 || c.ReferenceHeight < 0 {
		return fmt.Errorf("reference size must not be negative")
	}
	return nil
}

// outputExtension returns the file extension for an output format
func outputExtension(format string) string {
	switch strings.ToLower(format) {
	case outputYAML:
		return ".yml"
	case outputHOCR:
		return ".hocr"
	case outputText:
		return ".txt"
	}
	return ".json"
}
