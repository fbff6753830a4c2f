//go:build gocv

package detection

import (
	"image"

	"gocv.io/x/gocv"
)

// externalContours binarizes gray with OpenCV's Otsu threshold and returns
// the outermost contours in the order findContours reports them.
func externalContours(gray *image.Gray) []ContourBox {
	src, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return nil
	}
	defer src.Close()

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(src, &binary, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)

	contours := gocv.FindContours(binary, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	bounds := gray.Bounds()
	boxes := make([]ContourBox, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		rect := gocv.BoundingRect(contour)
		boxes = append(boxes, ContourBox{
			Bounds: Bounds{
				X1: rect.Min.X + bounds.Min.X,
				Y1: rect.Min.Y + bounds.Min.Y,
				X2: rect.Max.X + bounds.Min.X,
				Y2: rect.Max.Y + bounds.Min.Y,
			},
			Area: gocv.ContourArea(contour),
		})
	}
	return boxes
}
