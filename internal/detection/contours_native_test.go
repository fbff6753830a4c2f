//go:build !gocv

package detection

import (
	"image"
	"testing"
)

func gridFromGray(img *image.Gray) *binaryGrid {
	b := img.Bounds()
	g := &binaryGrid{width: b.Dx(), height: b.Dy(), fg: make([]bool, b.Dx()*b.Dy())}
	for i, v := range img.Pix {
		g.fg[i] = v > 0
	}
	return g
}

func TestTraceBoundary_Square(t *testing.T) {
	img := createTestGray(6, 6, 0)
	fillRect(img, 2, 2, 4, 4, 255)

	points := traceBoundary(gridFromGray(img), Point{X: 2, Y: 2})
	want := []Point{{2, 2}, {2, 3}, {3, 3}, {3, 2}}
	if len(points) != len(want) {
		t.Fatalf("got %v, want %v", points, want)
	}
	for i := range want {
		if points[i] != want[i] {
			t.Errorf("point %d: got %v, want %v", i, points[i], want[i])
		}
	}
}

func TestTraceBoundary_SinglePixel(t *testing.T) {
	img := createTestGray(5, 5, 0)
	img.Pix[2*5+2] = 255

	points := traceBoundary(gridFromGray(img), Point{X: 2, Y: 2})
	if len(points) != 1 {
		t.Fatalf("got %d points, want 1", len(points))
	}
	if polygonArea(points) != 0 {
		t.Error("single pixel should have zero area")
	}
}

func TestTraceBoundary_HorizontalLine(t *testing.T) {
	img := createTestGray(10, 3, 0)
	fillRect(img, 1, 1, 9, 2, 255)

	points := traceBoundary(gridFromGray(img), Point{X: 1, Y: 1})
	if polygonArea(points) != 0 {
		t.Errorf("one-pixel-thick line: got area %v, want 0", polygonArea(points))
	}
}

func TestTraceBoundary_Diagonal(t *testing.T) {
	img := createTestGray(8, 8, 0)
	for i := 1; i < 7; i++ {
		img.Pix[i*8+i] = 255
	}

	points := traceBoundary(gridFromGray(img), Point{X: 1, Y: 1})
	if len(points) == 0 || points[0] != (Point{X: 1, Y: 1}) {
		t.Fatalf("trace should start at the first pixel, got %v", points)
	}
	if polygonArea(points) != 0 {
		t.Errorf("diagonal: got area %v, want 0", polygonArea(points))
	}
}

func TestExternalContours_ReverseRasterOrder(t *testing.T) {
	img := createTestGray(40, 40, 0)
	fillRect(img, 5, 5, 15, 15, 255)
	fillRect(img, 20, 25, 30, 35, 255)

	boxes := externalContours(img)
	if len(boxes) != 2 {
		t.Fatalf("got %d contours, want 2", len(boxes))
	}
	if boxes[0].Bounds.Y1 != 25 || boxes[1].Bounds.Y1 != 5 {
		t.Errorf("expected bottom contour first, got %+v", boxes)
	}
}

func TestExternalContours_TouchingBorder(t *testing.T) {
	img := createTestGray(30, 30, 0)
	fillRect(img, 0, 0, 10, 10, 255)

	boxes := externalContours(img)
	if len(boxes) != 1 {
		t.Fatalf("got %d contours, want 1", len(boxes))
	}
	if boxes[0].Area != 81 {
		t.Errorf("area: got %v, want 81", boxes[0].Area)
	}
}
