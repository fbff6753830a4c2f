package annotation

import (
	"errors"
	"fmt"

	"github.com/ironsheep/expr-labeler/internal/ocr"
)

var (
	// ErrDegenerateBox is returned by Normalize for a rectangle with no area
	// inside the image.
	ErrDegenerateBox = errors.New("degenerate box")

	// ErrUnknownSymbol is returned by FromCharBox for a symbol missing from
	// the class map.
	ErrUnknownSymbol = errors.New("symbol not in class map")
)

// Source records which detector produced a box.
type Source string

const (
	SourceOCR     Source = "ocr"
	SourceContour Source = "contour"
	SourceLine    Source = "line"
)

// Rect is a pixel rectangle in top-left convention. X2 and Y2 are exclusive
// edges, so X2-X1 is the width.
type Rect struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Clip restricts r to [0,w] x [0,h].
func (r Rect) Clip(w, h int) Rect {
	return Rect{
		X1: clampInt(r.X1, 0, w),
		Y1: clampInt(r.Y1, 0, h),
		X2: clampInt(r.X2, 0, w),
		Y2: clampInt(r.Y2, 0, h),
	}
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.X2 <= r.X1 || r.Y2 <= r.Y1
}

// Box is one YOLO label record plus where it came from.
type Box struct {
	ClassID int     `json:"class_id"`
	XCenter float64 `json:"x_center"`
	YCenter float64 `json:"y_center"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`

	// Rect is the clipped pixel rectangle the record was computed from.
	Rect   Rect   `json:"rect"`
	Source Source `json:"source"`
	Symbol string `json:"symbol,omitempty"`
}

// Reconcile flips an OCR box from bottom-left to top-left convention for an
// image of height h: y1' = h - y2 and y2' = h - y1. X is unchanged. Applying
// it twice returns the original coordinates.
func Reconcile(b ocr.CharBox, h int) Rect {
	return Rect{
		X1: b.X1,
		Y1: h - b.Y2,
		X2: b.X2,
		Y2: h - b.Y1,
	}
}

// Normalize scales r into YOLO form for a w x h image. r is clipped to the
// image first, so every field of a returned Box lies in (0,1].
func Normalize(r Rect, w, h, class int) (Box, error) {
	if w <= 0 || h <= 0 {
		return Box{}, fmt.Errorf("%w: image is %dx%d", ErrDegenerateBox, w, h)
	}

	clipped := r.Clip(w, h)
	if clipped.Empty() {
		return Box{}, fmt.Errorf("%w: %+v in %dx%d image", ErrDegenerateBox, r, w, h)
	}

	fw, fh := float64(w), float64(h)
	return Box{
		ClassID: class,
		XCenter: float64(clipped.X1+clipped.X2) / 2 / fw,
		YCenter: float64(clipped.Y1+clipped.Y2) / 2 / fh,
		Width:   float64(clipped.X2-clipped.X1) / fw,
		Height:  float64(clipped.Y2-clipped.Y1) / fh,
		Rect:    clipped,
	}, nil
}

// FromCharBox reconciles and normalizes an OCR box, looking its symbol up in
// classes. It returns the reconciled rectangle even when the symbol is
// unknown (ErrUnknownSymbol) so callers can still draw it.
func FromCharBox(b ocr.CharBox, w, h int, classes ClassMap) (Box, Rect, error) {
	r := Reconcile(b, h)

	class, ok := classes.Lookup(b.Symbol)
	if !ok {
		return Box{}, r, fmt.Errorf("%w: %q", ErrUnknownSymbol, b.Symbol)
	}

	box, err := Normalize(r, w, h, class)
	if err != nil {
		return Box{}, r, err
	}
	box.Source = SourceOCR
	box.Symbol = b.Symbol
	return box, r, nil
}

// FromRect normalizes a top-left rectangle found by a heuristic detector.
func FromRect(r Rect, w, h, class int, source Source) (Box, error) {
	box, err := Normalize(r, w, h, class)
	if err != nil {
		return Box{}, err
	}
	box.Source = source
	return box, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
