// Package config holds the labeler's settings.
//
// Settings come from three layers, later layers winning:
//
//  1. Default() values
//  2. a YAML file passed to Load
//  3. EXPR_LABELER_* environment variables, optionally seeded from .env
//     files with LoadDotEnv
//
// A Config is built once at startup and passed by pointer to the components
// that need it. Nothing modifies it afterwards.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/expr-labeler/internal/detection"
	"github.com/ironsheep/expr-labeler/internal/ocr"
	"github.com/ironsheep/expr-labeler/internal/render"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "EXPR_LABELER_"

// DebugColors are "#RRGGBB" strokes for the debug renderer.
type DebugColors struct {
	OCR     string `yaml:"ocr"`
	Text    string `yaml:"text"`
	Contour string `yaml:"contour"`
	Line    string `yaml:"line"`
}

// Config holds labeler configuration
type Config struct {
	// Paths
	ImagesDir string `yaml:"images_dir"`
	LabelsDir string `yaml:"labels_dir"`
	DebugDir  string `yaml:"debug_dir"`
	Extension string `yaml:"extension"`

	// WriteDebug controls whether debug images are rendered.
	WriteDebug bool `yaml:"write_debug"`

	// Contour heuristic area window, both bounds exclusive
	MinArea float64 `yaml:"min_area"`
	MaxArea float64 `yaml:"max_area"`

	// Minus-sign recovery from thin horizontal strokes
	MinusRecovery    bool `yaml:"minus_recovery"`
	LineMinLength    int  `yaml:"line_min_length"`
	LineMaxThickness int  `yaml:"line_max_thickness"`

	// OCR engine
	Engine         string `yaml:"engine"`
	TesseractPath  string `yaml:"tesseract_path"`
	Language       string `yaml:"language"`
	Whitelist      string `yaml:"whitelist"`
	TessdataPrefix string `yaml:"tessdata_prefix"`

	Workers  int         `yaml:"workers"`
	LogLevel string      `yaml:"log_level"`
	Colors   DebugColors `yaml:"debug_colors"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ImagesDir:        "data/images/val",
		LabelsDir:        "data/labels/val",
		DebugDir:         "data/debug",
		Extension:        ".png",
		WriteDebug:       true,
		MinArea:          50,
		MaxArea:          300,
		MinusRecovery:    false,
		LineMinLength:    30,
		LineMaxThickness: 5,
		Engine:           ocr.EngineLibrary,
		TesseractPath:    "tesseract",
		Language:         "eng",
		Workers:          1,
		LogLevel:         "info",
		Colors: DebugColors{
			OCR:     "#00FF00",
			Text:    "#FF0000",
			Contour: "#FF00FF",
			Line:    "#FFA500",
		},
	}
}

// Load builds a Config from the defaults, the YAML file at path (skipped when
// path is empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadDotEnv loads variables from .env files into the process environment.
// Variables already set are not overridden and missing files are skipped.
// With no arguments ".env" is tried.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.ImagesDir == "" {
		return fmt.Errorf("images_dir is required")
	}
	if c.LabelsDir == "" {
		return fmt.Errorf("labels_dir is required")
	}
	if c.WriteDebug && c.DebugDir == "" {
		return fmt.Errorf("debug_dir is required when write_debug is set")
	}
	if c.MinArea < 0 || c.MinArea >= c.MaxArea {
		return fmt.Errorf("min_area must be non-negative and below max_area, got %v and %v", c.MinArea, c.MaxArea)
	}
	if c.LineMinLength < 1 || c.LineMaxThickness < 0 {
		return fmt.Errorf("line_min_length must be positive and line_max_thickness non-negative, got %d and %d",
			c.LineMinLength, c.LineMaxThickness)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Engine != ocr.EngineLibrary && c.Engine != ocr.EngineCLI {
		return fmt.Errorf("%w: %q", ocr.ErrUnknownEngine, c.Engine)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	if _, err := c.RenderColors(); err != nil {
		return err
	}
	return nil
}

// OCROptions returns the engine settings.
func (c *Config) OCROptions() ocr.Options {
	return ocr.Options{
		Language:       c.Language,
		Whitelist:      c.Whitelist,
		TessdataPrefix: c.TessdataPrefix,
	}
}

// NewRecognizer constructs the configured OCR engine.
func (c *Config) NewRecognizer() (ocr.Recognizer, error) {
	return ocr.NewRecognizer(c.Engine, c.TesseractPath, c.OCROptions())
}

// ContourOptions returns the contour heuristic's area window.
func (c *Config) ContourOptions() detection.ContourOptions {
	return detection.ContourOptions{MinArea: c.MinArea, MaxArea: c.MaxArea}
}

// LineOptions returns the minus-recovery settings.
func (c *Config) LineOptions() detection.LineOptions {
	opts := detection.DefaultLineOptions()
	opts.MinLength = c.LineMinLength
	opts.MaxThickness = c.LineMaxThickness
	return opts
}

// RenderColors parses the debug colors.
func (c *Config) RenderColors() (render.Colors, error) {
	return render.ParseColors(c.Colors.OCR, c.Colors.Text, c.Colors.Contour, c.Colors.Line)
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// applyEnv overrides fields from EXPR_LABELER_* variables.
func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"IMAGES_DIR":      &c.ImagesDir,
		"LABELS_DIR":      &c.LabelsDir,
		"DEBUG_DIR":       &c.DebugDir,
		"EXTENSION":       &c.Extension,
		"ENGINE":          &c.Engine,
		"TESSERACT_PATH":  &c.TesseractPath,
		"LANGUAGE":        &c.Language,
		"WHITELIST":       &c.Whitelist,
		"TESSDATA_PREFIX": &c.TessdataPrefix,
		"LOG_LEVEL":       &c.LogLevel,
	}
	for name, dst := range strs {
		if v, ok := lookupEnv(name); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"WORKERS":            &c.Workers,
		"LINE_MIN_LENGTH":    &c.LineMinLength,
		"LINE_MAX_THICKNESS": &c.LineMaxThickness,
	}
	for name, dst := range ints {
		if v, ok := lookupEnv(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s must be an integer: %w", EnvPrefix, name, err)
			}
			*dst = n
		}
	}

	floats := map[string]*float64{
		"MIN_AREA": &c.MinArea,
		"MAX_AREA": &c.MaxArea,
	}
	for name, dst := range floats {
		if v, ok := lookupEnv(name); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s%s must be a number: %w", EnvPrefix, name, err)
			}
			*dst = f
		}
	}

	bools := map[string]*bool{
		"WRITE_DEBUG":    &c.WriteDebug,
		"MINUS_RECOVERY": &c.MinusRecovery,
	}
	for name, dst := range bools {
		if v, ok := lookupEnv(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s%s must be a boolean: %w", EnvPrefix, name, err)
			}
			*dst = b
		}
	}

	return nil
}

func lookupEnv(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}
