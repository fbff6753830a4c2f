package annotation

import (
	"errors"
	"testing"

	"github.com/ironsheep/expr-labeler/internal/ocr"
)

func TestReconcile(t *testing.T) {
	got := Reconcile(ocr.CharBox{Symbol: "7", X1: 10, Y1: 10, X2: 20, Y2: 20}, 50)
	want := Rect{X1: 10, Y1: 30, X2: 20, Y2: 40}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestReconcile_Involution(t *testing.T) {
	const h = 80
	boxes := []ocr.CharBox{
		{X1: 0, Y1: 0, X2: 10, Y2: 80},
		{X1: 5, Y1: 12, X2: 9, Y2: 30},
		{X1: 40, Y1: 79, X2: 41, Y2: 80},
		{X1: 3, Y1: 7, X2: 3, Y2: 7},
	}

	for _, b := range boxes {
		once := Reconcile(b, h)
		twice := Reconcile(ocr.CharBox{X1: once.X1, Y1: once.Y1, X2: once.X2, Y2: once.Y2}, h)
		back := ocr.CharBox{X1: twice.X1, Y1: twice.Y1, X2: twice.X2, Y2: twice.Y2}
		if back != b {
			t.Errorf("reconciling twice: got %+v, want %+v", back, b)
		}
		if once.Y1 > once.Y2 {
			t.Errorf("reconciled box %+v has inverted Y", once)
		}
	}
}

func TestNormalize(t *testing.T) {
	box, err := Normalize(Rect{X1: 10, Y1: 30, X2: 20, Y2: 40}, 100, 50, 0)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if box.XCenter != 0.15 || box.YCenter != 0.7 || box.Width != 0.1 || box.Height != 0.2 {
		t.Errorf("got %+v", box)
	}
}

func TestNormalize_Bounds(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
	}{
		{"full image", Rect{0, 0, 64, 48}},
		{"one pixel at origin", Rect{0, 0, 1, 1}},
		{"one pixel at far corner", Rect{63, 47, 64, 48}},
		{"overhanging right and bottom", Rect{60, 40, 90, 70}},
		{"overhanging left and top", Rect{-5, -5, 3, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box, err := Normalize(tt.r, 64, 48, 1)
			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}
			for _, v := range []float64{box.XCenter, box.YCenter, box.Width, box.Height} {
				if v <= 0 || v > 1 {
					t.Errorf("field %v outside (0,1] in %+v", v, box)
				}
			}
		})
	}
}

func TestNormalize_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		w, h int
	}{
		{"zero width", Rect{5, 5, 5, 10}, 20, 20},
		{"zero height", Rect{5, 5, 10, 5}, 20, 20},
		{"outside image", Rect{30, 30, 40, 40}, 20, 20},
		{"inverted", Rect{10, 10, 5, 5}, 20, 20},
		{"empty image", Rect{0, 0, 1, 1}, 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.r, tt.w, tt.h, 0)
			if !errors.Is(err, ErrDegenerateBox) {
				t.Errorf("got %v, want ErrDegenerateBox", err)
			}
		})
	}
}

func TestFromCharBox_ClassFiltering(t *testing.T) {
	classes := DefaultClassMap()

	_, rect, err := FromCharBox(ocr.CharBox{Symbol: "#", X1: 1, Y1: 1, X2: 5, Y2: 5}, 10, 10, classes)
	if !errors.Is(err, ErrUnknownSymbol) {
		t.Fatalf("got %v, want ErrUnknownSymbol", err)
	}
	if rect != (Rect{X1: 1, Y1: 5, X2: 5, Y2: 9}) {
		t.Errorf("unknown symbol should still report its rectangle, got %+v", rect)
	}

	box, _, err := FromCharBox(ocr.CharBox{Symbol: "5", X1: 1, Y1: 1, X2: 5, Y2: 5}, 10, 10, classes)
	if err != nil {
		t.Fatalf("FromCharBox failed: %v", err)
	}
	if box.ClassID != ClassDigit || box.Source != SourceOCR || box.Symbol != "5" {
		t.Errorf("got %+v", box)
	}
}

func TestFromRect(t *testing.T) {
	box, err := FromRect(Rect{X1: 10, Y1: 10, X2: 22, Y2: 22}, 60, 60, ClassPlus, SourceContour)
	if err != nil {
		t.Fatalf("FromRect failed: %v", err)
	}
	if box.ClassID != ClassPlus || box.Source != SourceContour {
		t.Errorf("got %+v", box)
	}
	if box.Symbol != "" {
		t.Errorf("heuristic boxes carry no symbol, got %q", box.Symbol)
	}
}

func TestRect_Clip(t *testing.T) {
	got := Rect{X1: -3, Y1: 2, X2: 120, Y2: 60}.Clip(100, 50)
	want := Rect{X1: 0, Y1: 2, X2: 100, Y2: 50}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
