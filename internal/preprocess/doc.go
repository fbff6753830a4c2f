// Package preprocess builds the ordered image variants that are offered to
// the OCR engine.
//
// Every source image is turned into four variants, always in the same order:
//
//  1. original           - the unmodified color image, sparse-text mode (--psm 11)
//  2. grayscale          - BT.601 luminance, uniform-block mode (--psm 6)
//  3. adaptive-threshold - mean adaptive binarization, block 11, offset 2 (--psm 6)
//  4. contrast-enhanced  - CLAHE on the Lab lightness channel, back to RGB (--psm 6)
//
// The order is part of the contract: the pipeline accepts the first variant
// that yields any detection and never looks at the rest.
//
// # Backends
//
// The default build is pure Go (bild for luminance and the box mean,
// go-colorful for the Lab round trip). Building with -tags gocv replaces the
// transforms with their OpenCV counterparts through gocv; the exported API
// is identical.
//
// All transforms are pure: they never modify their input and never fail on
// a decoded image.
package preprocess
