//go:build !gocv

package preprocess

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/effect"
	"github.com/lucasb-eyer/go-colorful"
)

// ToGray converts img to 8-bit luminance with ITU-R BT.601 weights
// (0.299*R + 0.587*G + 0.114*B).
func ToGray(img image.Image) *image.Gray {
	rgba := effect.GrayscaleWithWeights(img, 0.299, 0.587, 0.114)

	// bild returns the luminance replicated in R, G and B.
	bounds := rgba.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		src := rgba.Pix[y*rgba.Stride:]
		dst := gray.Pix[y*gray.Stride:]
		for x := 0; x < bounds.Dx(); x++ {
			dst[x] = src[x*4]
		}
	}
	return gray
}

// AdaptiveMeanThreshold binarizes gray against the mean of each pixel's
// blockSize x blockSize neighborhood: a pixel becomes 255 when it is greater
// than mean-offset and 0 otherwise. The mean is rounded to the nearest level
// and borders replicate the edge pixels.
func AdaptiveMeanThreshold(gray *image.Gray, blockSize, offset int) *image.Gray {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	dst := image.NewGray(bounds)
	if width == 0 || height == 0 {
		return dst
	}

	sums := boxSums(gray, blockSize/2)
	area := float64(blockSize * blockSize)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			src := int(gray.Pix[y*gray.Stride+x])
			m := int(math.Round(float64(sums[y*width+x]) / area))
			if src-m > -offset {
				dst.Pix[y*dst.Stride+x] = 255
			}
		}
	}
	return dst
}

// boxSums returns, for every pixel, the sum of the (2r+1) x (2r+1) window
// centered on it with replicated borders. Rows are summed first, then
// columns.
func boxSums(gray *image.Gray, r int) []int {
	width, height := gray.Bounds().Dx(), gray.Bounds().Dy()
	at := func(x, y int) int {
		return int(gray.Pix[clampInt(y, 0, height-1)*gray.Stride+clampInt(x, 0, width-1)])
	}

	rows := make([]int, width*height)
	for y := 0; y < height; y++ {
		sum := 0
		for k := -r; k <= r; k++ {
			sum += at(k, y)
		}
		for x := 0; x < width; x++ {
			rows[y*width+x] = sum
			sum += at(x+r+1, y) - at(x-r, y)
		}
	}

	sums := make([]int, width*height)
	for x := 0; x < width; x++ {
		sum := 0
		for k := -r; k <= r; k++ {
			sum += rows[clampInt(k, 0, height-1)*width+x]
		}
		for y := 0; y < height; y++ {
			sums[y*width+x] = sum
			sum += rows[clampInt(y+r+1, 0, height-1)*width+x] - rows[clampInt(y-r, 0, height-1)*width+x]
		}
	}
	return sums
}

// EnhanceContrast applies CLAHE to the CIE-Lab lightness of img and converts
// the result back to RGB. The a and b channels are left untouched.
func EnhanceContrast(img image.Image) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	lightness := image.NewGray(image.Rect(0, 0, width, height))
	chroma := make([][2]float64, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c, ok := colorful.MakeColor(img.At(x+bounds.Min.X, y+bounds.Min.Y))
			if !ok {
				// Fully transparent pixel; treat it as black.
				c = colorful.Color{}
			}
			l, a, b := c.Lab()
			lightness.Pix[y*lightness.Stride+x] = uint8(math.Round(clampFloat(l, 0, 1) * 255))
			chroma[y*width+x] = [2]float64{a, b}
		}
	}

	enhanced := clahe(lightness, CLAHEClipLimit, CLAHETileGrid, CLAHETileGrid)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			l := float64(enhanced.Pix[y*enhanced.Stride+x]) / 255
			ab := chroma[y*width+x]
			r, g, b := colorful.Lab(l, ab[0], ab[1]).Clamped().RGB255()
			dst.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return dst
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
