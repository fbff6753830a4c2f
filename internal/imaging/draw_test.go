package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"rgb with hash", "#00FF00", color.NRGBA{0, 255, 0, 255}, false},
		{"rgb without hash", "FF00FF", color.NRGBA{255, 0, 255, 255}, false},
		{"rgba", "#FF000080", color.NRGBA{255, 0, 0, 128}, false},
		{"empty", "", color.NRGBA{}, true},
		{"bad length", "#FFF0", color.NRGBA{}, true},
		{"bad digits", "#GGGGGG", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDrawRect(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	green := color.NRGBA{0, 255, 0, 255}

	DrawRect(img, 5, 5, 10, 8, green)

	outline := []image.Point{{5, 5}, {10, 5}, {5, 8}, {10, 8}, {7, 5}, {5, 7}}
	for _, p := range outline {
		if img.NRGBAAt(p.X, p.Y) != green {
			t.Errorf("expected outline pixel at %v", p)
		}
	}
	if img.NRGBAAt(7, 7) == green {
		t.Error("interior pixel should not be drawn")
	}
}

func TestDrawRect_ClipsOutsideBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))

	// Must not panic when the rectangle extends past the image.
	DrawRect(img, -5, -5, 15, 15, color.White)
	DrawRect(img, 8, 8, 3, 3, color.White)

	if img.NRGBAAt(3, 3).A == 0 {
		t.Error("swapped corners should still draw the outline")
	}
}

func TestDrawText(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	DrawText(img, 2, 14, "7", color.NRGBA{255, 0, 0, 255})

	drawn := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			if img.NRGBAAt(x, y).R == 255 {
				drawn++
			}
		}
	}
	if drawn == 0 {
		t.Error("DrawText did not draw any pixels")
	}
}
