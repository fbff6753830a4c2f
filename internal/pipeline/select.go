package pipeline

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/expr-labeler/internal/ocr"
	"github.com/ironsheep/expr-labeler/internal/preprocess"
)

// ErrUndetected is returned by Select when no variant yields a box.
var ErrUndetected = errors.New("no characters detected in any strategy")

// Selection is the first variant that produced OCR boxes.
type Selection struct {
	Variant preprocess.Variant
	Boxes   []ocr.CharBox

	// Attempts is the number of variants handed to the recognizer,
	// the accepted one included.
	Attempts int
}

// Select runs rec over variants in order and accepts the first one with at
// least one box. Each variant is recognized at most once and nothing is
// recognized after acceptance. A recognizer error is logged and counts as an
// empty result.
func Select(ctx context.Context, variants []preprocess.Variant, rec ocr.Recognizer, log logrus.FieldLogger) (*Selection, error) {
	for i, v := range variants {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		boxes, err := rec.Recognize(ctx, v.Image, v.Config)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			log.WithError(err).WithField("strategy", v.Name()).Warn("OCR failed, trying next strategy")
			continue
		}
		if len(boxes) == 0 {
			log.WithField("strategy", v.Name()).Debug("No characters detected")
			continue
		}

		return &Selection{Variant: v, Boxes: boxes, Attempts: i + 1}, nil
	}
	return nil, ErrUndetected
}
