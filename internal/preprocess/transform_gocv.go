//go:build gocv

package preprocess

import (
	"image"

	"gocv.io/x/gocv"
)

// ToGray converts img to 8-bit luminance with OpenCV's BGR2GRAY weights.
func ToGray(img image.Image) *image.Gray {
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return image.NewGray(img.Bounds())
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	return matToGray(gray, img.Bounds())
}

// AdaptiveMeanThreshold binarizes gray with cv::adaptiveThreshold
// (ADAPTIVE_THRESH_MEAN_C, THRESH_BINARY).
func AdaptiveMeanThreshold(gray *image.Gray, blockSize, offset int) *image.Gray {
	src, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return image.NewGray(gray.Bounds())
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.AdaptiveThreshold(src, &dst, 255, gocv.AdaptiveThresholdMean, gocv.ThresholdBinary, blockSize, float32(offset))

	return matToGray(dst, gray.Bounds())
}

// EnhanceContrast applies cv::CLAHE to the L channel of the Lab image and
// converts back to BGR.
func EnhanceContrast(img image.Image) image.Image {
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return img
	}
	defer src.Close()

	lab := gocv.NewMat()
	defer lab.Close()
	gocv.CvtColor(src, &lab, gocv.ColorBGRToLab)

	channels := gocv.Split(lab)
	defer func() {
		for _, ch := range channels {
			ch.Close()
		}
	}()

	c := gocv.NewCLAHEWithParams(CLAHEClipLimit, image.Pt(CLAHETileGrid, CLAHETileGrid))
	defer c.Close()

	enhanced := gocv.NewMat()
	defer enhanced.Close()
	c.Apply(channels[0], &enhanced)
	enhanced.CopyTo(&channels[0])

	merged := gocv.NewMat()
	defer merged.Close()
	gocv.Merge(channels, &merged)

	out := gocv.NewMat()
	defer out.Close()
	gocv.CvtColor(merged, &out, gocv.ColorLabToBGR)

	result, err := out.ToImage()
	if err != nil {
		return img
	}
	return result
}

func matToGray(m gocv.Mat, bounds image.Rectangle) *image.Gray {
	img, err := m.ToImage()
	if err != nil {
		return image.NewGray(bounds)
	}
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	return image.NewGray(bounds)
}
