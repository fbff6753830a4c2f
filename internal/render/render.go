// Package render draws detections onto a copy of the accepted variant so a
// person can check the labels by eye.
package render

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/ironsheep/expr-labeler/internal/annotation"
	"github.com/ironsheep/expr-labeler/internal/imaging"
)

// TextOffset is how far above a box its recognized character is drawn.
const TextOffset = 5

// Colors are the stroke colors per detection source.
type Colors struct {
	OCR     color.NRGBA
	Text    color.NRGBA
	Contour color.NRGBA
	Line    color.NRGBA
}

// DefaultColors returns green OCR boxes with red text, magenta contour boxes
// and orange line boxes.
func DefaultColors() Colors {
	return Colors{
		OCR:     color.NRGBA{R: 0, G: 255, B: 0, A: 255},
		Text:    color.NRGBA{R: 255, G: 0, B: 0, A: 255},
		Contour: color.NRGBA{R: 255, G: 0, B: 255, A: 255},
		Line:    color.NRGBA{R: 255, G: 165, B: 0, A: 255},
	}
}

// ParseColors builds Colors from "#RRGGBB" strings.
func ParseColors(ocr, text, contour, line string) (Colors, error) {
	var c Colors
	for _, p := range []struct {
		name string
		hex  string
		dst  *color.NRGBA
	}{
		{"ocr", ocr, &c.OCR},
		{"text", text, &c.Text},
		{"contour", contour, &c.Contour},
		{"line", line, &c.Line},
	} {
		parsed, err := imaging.ParseHexColor(p.hex)
		if err != nil {
			return Colors{}, fmt.Errorf("invalid %s color: %w", p.name, err)
		}
		*p.dst = parsed
	}
	return c, nil
}

// Mark is one rectangle to draw. Label is drawn above OCR marks only.
type Mark struct {
	Rect   annotation.Rect
	Label  string
	Source annotation.Source
}

// Renderer writes debug images into a directory.
type Renderer struct {
	dir    string
	colors Colors
}

// New creates a Renderer writing into dir.
func New(dir string, colors Colors) *Renderer {
	return &Renderer{dir: dir, colors: colors}
}

// Path returns <dir>/<stem>_<strategy>.png for an image filename.
func (r *Renderer) Path(filename, strategy string) string {
	return filepath.Join(r.dir, imaging.Stem(filename)+"_"+strategy+".png")
}

// Draw returns an NRGBA copy of img with every mark drawn on it. Corners are
// drawn inclusive, as an OpenCV rectangle from (x1,y1) to (x2,y2) would be.
func (r *Renderer) Draw(img image.Image, marks []Mark) *image.NRGBA {
	canvas := imaging.Clone(img)
	for _, m := range marks {
		switch m.Source {
		case annotation.SourceContour:
			imaging.DrawRect(canvas, m.Rect.X1, m.Rect.Y1, m.Rect.X2, m.Rect.Y2, r.colors.Contour)
		case annotation.SourceLine:
			imaging.DrawRect(canvas, m.Rect.X1, m.Rect.Y1, m.Rect.X2, m.Rect.Y2, r.colors.Line)
		default:
			imaging.DrawRect(canvas, m.Rect.X1, m.Rect.Y1, m.Rect.X2, m.Rect.Y2, r.colors.OCR)
			if m.Label != "" {
				imaging.DrawText(canvas, m.Rect.X1, m.Rect.Y1-TextOffset, m.Label, r.colors.Text)
			}
		}
	}
	return canvas
}

// Render draws marks on a copy of img and saves it as the debug image for
// filename under strategy. It returns the written path.
func (r *Renderer) Render(img image.Image, filename, strategy string, marks []Mark) (string, error) {
	path := r.Path(filename, strategy)
	if err := imaging.Save(r.Draw(img, marks), path); err != nil {
		return "", fmt.Errorf("failed to save debug image: %w", err)
	}
	return path, nil
}
