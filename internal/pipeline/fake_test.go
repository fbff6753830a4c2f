package pipeline

import (
	"context"
	"image"
	"image/color"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/ironsheep/expr-labeler/internal/config"
	"github.com/ironsheep/expr-labeler/internal/imaging"
	"github.com/ironsheep/expr-labeler/internal/ocr"
)

// fakeResult is what the fake recognizer returns for one call
type fakeResult struct {
	boxes []ocr.CharBox
	err   error
}

// fakeRecognizer returns scripted results in call order and records every
// config it was called with
type fakeRecognizer struct {
	mu      sync.Mutex
	results []fakeResult
	always  *fakeResult
	configs []string
}

func (f *fakeRecognizer) Recognize(ctx context.Context, img image.Image, config string) ([]ocr.CharBox, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := len(f.configs)
	f.configs = append(f.configs, config)

	if f.always != nil {
		return f.always.boxes, f.always.err
	}
	if call < len(f.results) {
		return f.results[call].boxes, f.results[call].err
	}
	return nil, nil
}

func (f *fakeRecognizer) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.configs)
}

// createTestImage creates a solid color test image
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// fillRect paints the half-open rectangle [x1,x2) x [y1,y2)
func fillRect(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			img.Set(x, y, c)
		}
	}
}

// testConfig returns a config rooted in a temporary directory
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()

	cfg := config.Default()
	cfg.ImagesDir = filepath.Join(root, "images")
	cfg.LabelsDir = filepath.Join(root, "labels")
	cfg.DebugDir = filepath.Join(root, "debug")
	return cfg
}

// writeImage saves img as a PNG into the config's image directory
func writeImage(t *testing.T, cfg *config.Config, name string, img image.Image) {
	t.Helper()
	if err := imaging.Save(img, filepath.Join(cfg.ImagesDir, name)); err != nil {
		t.Fatalf("failed to write test image: %v", err)
	}
}

// newTestPipeline builds a pipeline with a log hook for assertions
func newTestPipeline(t *testing.T, cfg *config.Config, rec ocr.Recognizer) (*Pipeline, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	p, err := New(cfg, rec, logger)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return p, hook
}

func digit(symbol string, x1, y1, x2, y2 int) ocr.CharBox {
	return ocr.CharBox{Symbol: symbol, X1: x1, Y1: y1, X2: x2, Y2: y2}
}
