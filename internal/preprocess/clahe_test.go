package preprocess

import (
	"image"
	"testing"
)

func TestCLAHE_UniformStaysUniform(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 64, 64))
	for i := range gray.Pix {
		gray.Pix[i] = 90
	}

	out := clahe(gray, CLAHEClipLimit, CLAHETileGrid, CLAHETileGrid)

	first := out.Pix[0]
	for i, v := range out.Pix {
		if v != first {
			t.Fatalf("pixel %d: got %d, want %d", i, v, first)
		}
	}
}

func TestCLAHE_SmallImage(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 5, 3))
	for i := range gray.Pix {
		gray.Pix[i] = uint8(i * 10)
	}

	out := clahe(gray, CLAHEClipLimit, CLAHETileGrid, CLAHETileGrid)
	if out.Bounds() != gray.Bounds() {
		t.Errorf("bounds: got %v, want %v", out.Bounds(), gray.Bounds())
	}
}

func TestCLAHE_PreservesOrdering(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			gray.Pix[y*gray.Stride+x] = uint8(100 + x)
		}
	}

	out := clahe(gray, CLAHEClipLimit, 1, 1)
	for x := 1; x < 16; x++ {
		if out.GrayAt(x, 8).Y < out.GrayAt(x-1, 8).Y {
			t.Fatalf("mapping is not monotonic at x=%d", x)
		}
	}
}

func TestTileLUT_Monotonic(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 10, 10))
	for i := range gray.Pix {
		gray.Pix[i] = uint8(i)
	}

	lut := tileLUT(gray, gray.Bounds(), CLAHEClipLimit)
	for i := 1; i < histBins; i++ {
		if lut[i] < lut[i-1] {
			t.Fatalf("lut not monotonic at %d", i)
		}
	}
	if lut[histBins-1] != 255 {
		t.Errorf("lut[255] = %d, want 255", lut[histBins-1])
	}
}

func TestCeilDiv(t *testing.T) {
	if got := ceilDiv(100, 8); got != 13 {
		t.Errorf("ceilDiv(100,8) = %d, want 13", got)
	}
	if got := ceilDiv(64, 8); got != 8 {
		t.Errorf("ceilDiv(64,8) = %d, want 8", got)
	}
}
