package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ParseHexColor parses a color string like "#00FF00" or "#00FF0080".
// The leading '#' is optional; the 8-digit form carries alpha.
func ParseHexColor(hex string) (color.NRGBA, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")

	switch len(hex) {
	case 6:
		c, err := colorful.Hex("#" + hex)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
		}
		return color.NRGBA{
			R: uint8(val >> 24),
			G: uint8(val >> 16),
			B: uint8(val >> 8),
			A: uint8(val),
		}, nil
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length: %q", hex)
	}
}

// DrawRect draws a one-pixel rectangle outline with corners (x1,y1) and
// (x2,y2), both inclusive. Pixels outside img are skipped.
func DrawRect(img *image.NRGBA, x1, y1, x2, y2 int, c color.Color) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for x := x1; x <= x2; x++ {
		setClipped(img, x, y1, c)
		setClipped(img, x, y2, c)
	}
	for y := y1; y <= y2; y++ {
		setClipped(img, x1, y, c)
		setClipped(img, x2, y, c)
	}
}

// DrawText draws text with its baseline starting at (x, y) using the 7x13
// bitmap face. Glyphs falling outside img are clipped by the drawer.
func DrawText(img *image.NRGBA, x, y int, text string, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

func setClipped(img *image.NRGBA, x, y int, c color.Color) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.Set(x, y, c)
	}
}
