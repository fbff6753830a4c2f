package preprocess

import "image"

// Strategy identifies one preprocessing transform.
type Strategy int

const (
	Original Strategy = iota
	Grayscale
	AdaptiveThreshold
	ContrastEnhanced
)

// Recognition configurations handed to the OCR engine.
const (
	ConfigSparseText   = "--psm 11"
	ConfigUniformBlock = "--psm 6"
)

// Parameters of the fixed transforms.
const (
	AdaptiveBlockSize = 11
	AdaptiveOffset    = 2
	CLAHEClipLimit    = 2.0
	CLAHETileGrid     = 8
)

// Strategies returns every strategy in priority order.
func Strategies() []Strategy {
	return []Strategy{Original, Grayscale, AdaptiveThreshold, ContrastEnhanced}
}

func (s Strategy) String() string {
	switch s {
	case Original:
		return "original"
	case Grayscale:
		return "grayscale"
	case AdaptiveThreshold:
		return "adaptive-threshold"
	case ContrastEnhanced:
		return "contrast-enhanced"
	default:
		return "unknown"
	}
}

// Config returns the recognition configuration paired with the strategy.
func (s Strategy) Config() string {
	if s == Original {
		return ConfigSparseText
	}
	return ConfigUniformBlock
}

// Variant is one transformed copy of a source image together with the
// recognition configuration it should be read with.
type Variant struct {
	Strategy Strategy
	Image    image.Image
	Config   string
}

// Name returns the strategy name.
func (v Variant) Name() string {
	return v.Strategy.String()
}

// Build produces the four variants of img in priority order.
func Build(img image.Image) []Variant {
	gray := ToGray(img)

	return []Variant{
		{Strategy: Original, Image: img, Config: Original.Config()},
		{Strategy: Grayscale, Image: gray, Config: Grayscale.Config()},
		{Strategy: AdaptiveThreshold, Image: AdaptiveMeanThreshold(gray, AdaptiveBlockSize, AdaptiveOffset), Config: AdaptiveThreshold.Config()},
		{Strategy: ContrastEnhanced, Image: EnhanceContrast(img), Config: ContrastEnhanced.Config()},
	}
}

// GrayOf returns img as a luminance image, reusing it when it already is one.
func GrayOf(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	return ToGray(img)
}
