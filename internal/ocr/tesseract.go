package ocr

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract recognizes characters through the gosseract bindings. A new
// client is created per call, so a Tesseract may be shared across
// goroutines.
type Tesseract struct {
	opts          Options
	clientFactory func() *gosseract.Client
}

// NewTesseract constructs a library-backed Recognizer.
func NewTesseract(opts Options) *Tesseract {
	return &Tesseract{opts: opts, clientFactory: gosseract.NewClient}
}

// Recognize runs Tesseract on img with the page segmentation mode named in
// config and returns symbol-level boxes.
//
// # Implementation Details
//
//  1. The image is encoded as PNG and handed over with SetImageFromBytes
//  2. Language, page segmentation mode, whitelist and tessdata prefix are set
//  3. Text() runs recognition; whitespace-only text means no boxes
//  4. GetBoundingBoxes(RIL_SYMBOL) yields one top-left rectangle per symbol,
//     converted to box-file convention with the image height
func (t *Tesseract) Recognize(ctx context.Context, img image.Image, config string) ([]CharBox, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	psm, err := ParsePageSegMode(config)
	if err != nil {
		return nil, err
	}

	data, err := encodePNG(img)
	if err != nil {
		return nil, err
	}

	client := t.clientFactory()
	defer client.Close()

	if t.opts.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(t.opts.TessdataPrefix); err != nil {
			return nil, fmt.Errorf("failed to set tessdata path: %w", err)
		}
	}
	if err := client.SetLanguage(t.opts.language()); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(psm)); err != nil {
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if t.opts.Whitelist != "" {
		if err := client.SetWhitelist(t.opts.Whitelist); err != nil {
			return nil, fmt.Errorf("failed to set whitelist: %w", err)
		}
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return []CharBox{}, nil
	}

	found, err := client.GetBoundingBoxes(gosseract.RIL_SYMBOL)
	if err != nil {
		return nil, fmt.Errorf("failed to get symbol boxes: %w", err)
	}

	height := img.Bounds().Dy()
	boxes := make([]CharBox, 0, len(found))
	for _, b := range found {
		symbol := strings.TrimSpace(b.Word)
		if symbol == "" {
			continue
		}
		r := b.Box.Sub(img.Bounds().Min)
		boxes = append(boxes, fromTopLeft(symbol, r, height))
	}
	return boxes, nil
}

// Version returns the linked libtesseract version.
func (t *Tesseract) Version() string {
	client := t.clientFactory()
	defer client.Close()
	return client.Version()
}
