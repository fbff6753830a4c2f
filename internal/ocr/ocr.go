package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strconv"
	"strings"
)

// ErrMalformedBox is returned by ParseBoxes for a line that is not
// "symbol x1 y1 x2 y2 [page]".
var ErrMalformedBox = errors.New("malformed box line")

// ErrInvalidPageSegMode is returned by ParsePageSegMode for a --psm value
// outside 0-13.
var ErrInvalidPageSegMode = errors.New("invalid page segmentation mode")

// DefaultPageSegMode is Tesseract's fully automatic segmentation, used when a
// config string does not name a mode.
const DefaultPageSegMode = 3

// CharBox is one recognized symbol in box-file convention (bottom-left
// origin, Y1 < Y2 measured upward from the bottom edge).
type CharBox struct {
	Symbol string `json:"symbol"`
	X1     int    `json:"x1"`
	Y1     int    `json:"y1"`
	X2     int    `json:"x2"`
	Y2     int    `json:"y2"`
}

// Recognizer locates characters in an image.
//
// config is a Tesseract option string such as "--psm 6". An empty result
// with a nil error means nothing was recognized.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image, config string) ([]CharBox, error)
}

// Options are the engine settings shared by Tesseract and CLI.
type Options struct {
	// Language is the Tesseract language code, "eng" when empty.
	Language string `json:"language"`

	// Whitelist restricts recognition to these characters when non-empty.
	Whitelist string `json:"whitelist,omitempty"`

	// TessdataPrefix overrides the directory searched for traineddata files.
	TessdataPrefix string `json:"tessdata_prefix,omitempty"`
}

func (o Options) language() string {
	if o.Language == "" {
		return "eng"
	}
	return o.Language
}

// ParseBoxes parses Tesseract box output, one "symbol x1 y1 x2 y2 [page]"
// entry per line. Blank lines are ignored and blank input yields an empty
// slice.
func ParseBoxes(text string) ([]CharBox, error) {
	boxes := make([]CharBox, 0)

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 5 && len(fields) != 6 {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedBox, i+1, line)
		}

		var coords [4]int
		for j := range coords {
			v, err := strconv.Atoi(fields[j+1])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedBox, i+1, line)
			}
			coords[j] = v
		}

		boxes = append(boxes, CharBox{
			Symbol: fields[0],
			X1:     coords[0],
			Y1:     coords[1],
			X2:     coords[2],
			Y2:     coords[3],
		})
	}

	return boxes, nil
}

// ParsePageSegMode extracts the page segmentation mode from a config string.
// Both "--psm N" and "--psm=N" are accepted. A config without --psm yields
// DefaultPageSegMode.
func ParsePageSegMode(config string) (int, error) {
	fields := strings.Fields(config)
	for i, f := range fields {
		var value string
		switch {
		case f == "--psm":
			if i+1 >= len(fields) {
				return 0, fmt.Errorf("%w: missing value in %q", ErrInvalidPageSegMode, config)
			}
			value = fields[i+1]
		case strings.HasPrefix(f, "--psm="):
			value = strings.TrimPrefix(f, "--psm=")
		default:
			continue
		}

		mode, err := strconv.Atoi(value)
		if err != nil || mode < 0 || mode > 13 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidPageSegMode, value)
		}
		return mode, nil
	}
	return DefaultPageSegMode, nil
}

// encodePNG serializes img for handing to Tesseract.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// fromTopLeft converts a top-left-origin rectangle into box-file convention
// for an image of the given height.
func fromTopLeft(symbol string, r image.Rectangle, height int) CharBox {
	return CharBox{
		Symbol: symbol,
		X1:     r.Min.X,
		Y1:     height - r.Max.Y,
		X2:     r.Max.X,
		Y2:     height - r.Min.Y,
	}
}

// Engine names accepted by NewRecognizer.
const (
	EngineLibrary = "library"
	EngineCLI     = "cli"
)

// ErrUnknownEngine is returned by NewRecognizer for an unsupported engine name.
var ErrUnknownEngine = errors.New("unknown OCR engine")

// NewRecognizer returns the Recognizer for engine. path is the tesseract
// executable and only matters for EngineCLI.
func NewRecognizer(engine, path string, opts Options) (Recognizer, error) {
	switch engine {
	case EngineLibrary, "":
		return NewTesseract(opts), nil
	case EngineCLI:
		return NewCLI(path, opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}
