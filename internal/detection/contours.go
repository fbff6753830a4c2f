package detection

import (
	"image"
)

// Bounds represents a rectangular bounding box in pixel coordinates.
//
// (X1, Y1) is the top-left corner (inclusive) and (X2, Y2) the bottom-right
// corner (exclusive), so X2-X1 is the width in pixels.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Width returns X2 - X1.
func (b Bounds) Width() int { return b.X2 - b.X1 }

// Height returns Y2 - Y1.
func (b Bounds) Height() int { return b.Y2 - b.Y1 }

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ContourBox is an external contour kept by DetectSmallContours.
type ContourBox struct {
	// Bounds is the upright bounding rectangle of the contour points.
	Bounds Bounds `json:"bounds"`

	// Area is the polygon area enclosed by the traced boundary. A filled
	// w x h rectangle has area (w-1)*(h-1).
	Area float64 `json:"area"`
}

// ContourOptions bounds the contour areas that DetectSmallContours keeps.
// Both limits are exclusive.
type ContourOptions struct {
	MinArea float64 `json:"min_area"`
	MaxArea float64 `json:"max_area"`
}

// DefaultContourOptions returns the 50 < area < 300 window.
func DefaultContourOptions() ContourOptions {
	return ContourOptions{MinArea: 50, MaxArea: 300}
}

// DetectSmallContours finds operator-sized blobs in a grayscale image.
//
// The image is binarized with Otsu's threshold (foreground where the pixel is
// strictly brighter than the threshold), the external contours of the
// foreground are extracted, and those with MinArea < area < MaxArea are
// returned in the order the contour extractor produced them.
func DetectSmallContours(gray *image.Gray, opts ContourOptions) []ContourBox {
	if gray == nil || gray.Bounds().Empty() {
		return nil
	}

	boxes := make([]ContourBox, 0)
	for _, c := range externalContours(gray) {
		if c.Area > opts.MinArea && c.Area < opts.MaxArea {
			boxes = append(boxes, c)
		}
	}
	return boxes
}

// OtsuThreshold returns the threshold t that maximizes the between-class
// variance of the histogram, where the lower class holds values <= t.
// Ties keep the smallest t. A single-valued image yields 0.
func OtsuThreshold(gray *image.Gray) uint8 {
	bounds := gray.Bounds()
	var hist [256]int
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := gray.Pix[gray.PixOffset(bounds.Min.X, y):gray.PixOffset(bounds.Max.X, y)]
		for _, v := range row {
			hist[v]++
		}
	}

	total := float64(bounds.Dx() * bounds.Dy())
	if total == 0 {
		return 0
	}

	mu := 0.0
	for i, n := range hist {
		mu += float64(i) * float64(n) / total
	}

	const eps = 1.1920929e-07
	var q1, mu1, maxSigma float64
	var best int
	for i, n := range hist {
		p := float64(n) / total
		mu1 *= q1
		q1 += p
		q2 := 1 - q1

		if q1 < eps || q2 < eps || q1 > 1-eps || q2 > 1-eps {
			continue
		}

		mu1 = (mu1 + float64(i)*p) / q1
		mu2 := (mu - q1*mu1) / q2
		sigma := q1 * q2 * (mu1 - mu2) * (mu1 - mu2)
		if sigma > maxSigma {
			maxSigma = sigma
			best = i
		}
	}
	return uint8(best)
}

// Binarize maps pixels strictly above t to 255 and the rest to 0.
func Binarize(gray *image.Gray, t uint8) *image.Gray {
	bounds := gray.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if gray.Pix[gray.PixOffset(x, y)] > t {
				out.Pix[out.PixOffset(x, y)] = 255
			}
		}
	}
	return out
}

// polygonArea returns the absolute shoelace area of a closed polygon.
func polygonArea(points []Point) float64 {
	if len(points) < 3 {
		return 0
	}
	sum := 0
	for i, p := range points {
		q := points[(i+1)%len(points)]
		sum += p.X*q.Y - q.X*p.Y
	}
	if sum < 0 {
		sum = -sum
	}
	return float64(sum) / 2
}
