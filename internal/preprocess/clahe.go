package preprocess

import (
	"image"
	"math"
)

const histBins = 256

// clahe performs contrast-limited adaptive histogram equalization on gray.
//
// The image is split into a tilesX x tilesY grid (reduced for images smaller
// than the grid so no tile is empty). Each tile gets a histogram clipped at
// clipLimit times the average bin height, the clipped excess is spread over
// all bins, and the cumulative histogram becomes that tile's lookup table.
// Output pixels bilinearly interpolate the tables of the four nearest tile
// centers.
func clahe(gray *image.Gray, clipLimit float64, tilesX, tilesY int) *image.Gray {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	dst := image.NewGray(bounds)
	if width == 0 || height == 0 {
		return dst
	}

	tileW := ceilDiv(width, tilesX)
	tileH := ceilDiv(height, tilesY)
	tilesX = ceilDiv(width, tileW)
	tilesY = ceilDiv(height, tileH)

	luts := make([][histBins]uint8, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			rect := image.Rect(tx*tileW, ty*tileH, (tx+1)*tileW, (ty+1)*tileH).
				Intersect(image.Rect(0, 0, width, height))
			luts[ty*tilesX+tx] = tileLUT(gray, rect, clipLimit)
		}
	}

	for y := 0; y < height; y++ {
		tyf := (float64(y)+0.5)/float64(tileH) - 0.5
		ty1 := int(math.Floor(tyf))
		ya := tyf - float64(ty1)
		ty2 := ty1 + 1
		ty1 = clampInt(ty1, 0, tilesY-1)
		ty2 = clampInt(ty2, 0, tilesY-1)

		for x := 0; x < width; x++ {
			txf := (float64(x)+0.5)/float64(tileW) - 0.5
			tx1 := int(math.Floor(txf))
			xa := txf - float64(tx1)
			tx2 := tx1 + 1
			tx1 = clampInt(tx1, 0, tilesX-1)
			tx2 = clampInt(tx2, 0, tilesX-1)

			v := gray.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y

			top := (1-xa)*float64(luts[ty1*tilesX+tx1][v]) + xa*float64(luts[ty1*tilesX+tx2][v])
			bottom := (1-xa)*float64(luts[ty2*tilesX+tx1][v]) + xa*float64(luts[ty2*tilesX+tx2][v])
			out := (1-ya)*top + ya*bottom

			dst.Pix[y*dst.Stride+x] = uint8(clampInt(int(math.Round(out)), 0, 255))
		}
	}
	return dst
}

// tileLUT builds the clipped equalization table for one tile. rect is in
// zero-based image coordinates.
func tileLUT(gray *image.Gray, rect image.Rectangle, clipLimit float64) [histBins]uint8 {
	var hist [histBins]int
	origin := gray.Bounds().Min
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			hist[gray.GrayAt(x+origin.X, y+origin.Y).Y]++
		}
	}

	area := rect.Dx() * rect.Dy()
	limit := int(clipLimit * float64(area) / histBins)
	if limit < 1 {
		limit = 1
	}

	excess := 0
	for i := range hist {
		if hist[i] > limit {
			excess += hist[i] - limit
			hist[i] = limit
		}
	}

	batch := excess / histBins
	residual := excess - batch*histBins
	for i := range hist {
		hist[i] += batch
	}
	if residual > 0 {
		step := histBins / residual
		if step < 1 {
			step = 1
		}
		for i := 0; i < histBins && residual > 0; i += step {
			hist[i]++
			residual--
		}
	}

	var lut [histBins]uint8
	scale := 255.0 / float64(area)
	sum := 0
	for i := range hist {
		sum += hist[i]
		lut[i] = uint8(clampInt(int(math.Round(float64(sum)*scale)), 0, 255))
	}
	return lut
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
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
