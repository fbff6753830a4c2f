package detection

import (
	"image"
	"image/color"
	"testing"
)

// createTestGray creates a solid grayscale test image
func createTestGray(width, height int, level uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = level
	}
	return img
}

// fillRect paints the half-open rectangle [x1,x2) x [y1,y2)
func fillRect(img *image.Gray, x1, y1, x2, y2 int, level uint8) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			img.SetGray(x, y, color.Gray{Y: level})
		}
	}
}

// createSquareImage creates a light w x h block on a dark background
func createSquareImage(w, h int) *image.Gray {
	img := createTestGray(60, 60, 0)
	fillRect(img, 10, 10, 10+w, 10+h, 255)
	return img
}

func TestDetectSmallContours_AreaWindow(t *testing.T) {
	tests := []struct {
		name      string
		w, h      int
		wantCount int
	}{
		{"8x8 has area 49", 8, 8, 0},
		{"6x11 has area exactly 50", 6, 11, 0},
		{"7x11 has area 60", 7, 11, 1},
		{"12x12 has area 121", 12, 12, 1},
		{"16x21 has area exactly 300", 16, 21, 0},
		{"30x30 is too large", 30, 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boxes := DetectSmallContours(createSquareImage(tt.w, tt.h), DefaultContourOptions())
			if len(boxes) != tt.wantCount {
				t.Fatalf("got %d contours, want %d", len(boxes), tt.wantCount)
			}
		})
	}
}

func TestDetectSmallContours_BoundsAndArea(t *testing.T) {
	boxes := DetectSmallContours(createSquareImage(12, 12), DefaultContourOptions())
	if len(boxes) != 1 {
		t.Fatalf("got %d contours, want 1", len(boxes))
	}

	want := Bounds{X1: 10, Y1: 10, X2: 22, Y2: 22}
	if boxes[0].Bounds != want {
		t.Errorf("bounds: got %+v, want %+v", boxes[0].Bounds, want)
	}
	if boxes[0].Area != 121 {
		t.Errorf("area: got %v, want 121", boxes[0].Area)
	}
	if boxes[0].Bounds.Width() != 12 || boxes[0].Bounds.Height() != 12 {
		t.Errorf("size: got %dx%d, want 12x12", boxes[0].Bounds.Width(), boxes[0].Bounds.Height())
	}
}

func TestDetectSmallContours_PlusShape(t *testing.T) {
	img := createTestGray(60, 60, 0)
	fillRect(img, 20, 28, 41, 33, 255) // horizontal arm 21x5
	fillRect(img, 28, 20, 33, 41, 255) // vertical arm 5x21

	boxes := DetectSmallContours(img, DefaultContourOptions())
	if len(boxes) != 1 {
		t.Fatalf("got %d contours, want 1", len(boxes))
	}

	want := Bounds{X1: 20, Y1: 20, X2: 41, Y2: 41}
	if boxes[0].Bounds != want {
		t.Errorf("bounds: got %+v, want %+v", boxes[0].Bounds, want)
	}
	if boxes[0].Area <= 50 || boxes[0].Area >= 300 {
		t.Errorf("area %v outside window", boxes[0].Area)
	}
}

func TestDetectSmallContours_MultipleBlobs(t *testing.T) {
	img := createTestGray(80, 40, 0)
	fillRect(img, 5, 5, 17, 17, 255)
	fillRect(img, 40, 20, 50, 30, 255)
	fillRect(img, 70, 2, 72, 4, 255) // too small

	boxes := DetectSmallContours(img, DefaultContourOptions())
	if len(boxes) != 2 {
		t.Fatalf("got %d contours, want 2", len(boxes))
	}

	found := map[Bounds]bool{}
	for _, b := range boxes {
		found[b.Bounds] = true
	}
	for _, want := range []Bounds{{5, 5, 17, 17}, {40, 20, 50, 30}} {
		if !found[want] {
			t.Errorf("missing contour %+v in %+v", want, boxes)
		}
	}
}

func TestDetectSmallContours_NestedIgnored(t *testing.T) {
	img := createTestGray(60, 60, 0)
	fillRect(img, 5, 5, 55, 55, 255)   // outer ring
	fillRect(img, 10, 10, 50, 50, 0)   // hole
	fillRect(img, 20, 20, 32, 32, 255) // island inside the hole

	boxes := DetectSmallContours(img, DefaultContourOptions())
	if len(boxes) != 0 {
		t.Errorf("got %d contours, want 0 (island is not external)", len(boxes))
	}
}

func TestDetectSmallContours_DarkInkOnLightPaper(t *testing.T) {
	img := createTestGray(60, 60, 255)
	fillRect(img, 10, 10, 22, 22, 0)

	boxes := DetectSmallContours(img, DefaultContourOptions())
	if len(boxes) != 0 {
		t.Errorf("got %d contours, want 0 (paper is the foreground)", len(boxes))
	}
}

func TestDetectSmallContours_LightRegionInsideInk(t *testing.T) {
	img := createTestGray(60, 60, 255)
	fillRect(img, 10, 10, 30, 30, 0)
	fillRect(img, 14, 14, 26, 26, 255) // 12x12 light hole, area 121 on its own

	boxes := DetectSmallContours(img, DefaultContourOptions())
	if len(boxes) != 0 {
		t.Errorf("got %d contours, want 0 (enclosed light region is not external)", len(boxes))
	}
}

func TestDetectSmallContours_CustomWindow(t *testing.T) {
	opts := ContourOptions{MinArea: 10, MaxArea: 60}

	boxes := DetectSmallContours(createSquareImage(8, 8), opts)
	if len(boxes) != 1 {
		t.Errorf("got %d contours, want 1", len(boxes))
	}
}

func TestDetectSmallContours_Empty(t *testing.T) {
	if boxes := DetectSmallContours(nil, DefaultContourOptions()); boxes != nil {
		t.Errorf("nil image: got %v, want nil", boxes)
	}
	if boxes := DetectSmallContours(createTestGray(20, 20, 0), DefaultContourOptions()); len(boxes) != 0 {
		t.Errorf("blank image: got %d contours, want 0", len(boxes))
	}
}

func TestOtsuThreshold(t *testing.T) {
	img := createTestGray(20, 20, 50)
	fillRect(img, 0, 0, 20, 10, 200)

	th := OtsuThreshold(img)
	if th < 50 || th >= 200 {
		t.Fatalf("threshold %d does not separate 50 from 200", th)
	}

	bin := Binarize(img, th)
	if bin.GrayAt(5, 5).Y != 255 {
		t.Error("bright half should be foreground")
	}
	if bin.GrayAt(5, 15).Y != 0 {
		t.Error("dark half should be background")
	}
}

func TestOtsuThreshold_Uniform(t *testing.T) {
	if th := OtsuThreshold(createTestGray(10, 10, 128)); th != 0 {
		t.Errorf("got %d, want 0", th)
	}
}

func TestPolygonArea(t *testing.T) {
	square := []Point{{0, 0}, {0, 10}, {10, 10}, {10, 0}}
	if got := polygonArea(square); got != 100 {
		t.Errorf("square: got %v, want 100", got)
	}

	triangle := []Point{{0, 0}, {4, 0}, {0, 3}}
	if got := polygonArea(triangle); got != 6 {
		t.Errorf("triangle: got %v, want 6", got)
	}

	if got := polygonArea([]Point{{1, 1}, {5, 1}}); got != 0 {
		t.Errorf("segment: got %v, want 0", got)
	}
}
