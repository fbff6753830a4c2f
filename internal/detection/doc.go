// Package detection provides the geometric heuristics that supplement OCR
// when labeling handwritten expressions.
//
// Tesseract reliably finds digits but often misses the thin strokes of
// operators. Two heuristics work directly on the grayscale pixels of the
// accepted preprocessing variant:
//
//   - DetectSmallContours: Otsu binarization followed by external contour
//     extraction, keeping contours whose enclosed area falls strictly inside
//     a window. Every kept contour is reported as a plus-sign candidate.
//   - DetectHorizontalLines: short, thin horizontal runs in a Canny edge map,
//     reported as minus-sign candidates.
//
// Neither heuristic verifies shape. Noise, dots and small digit fragments
// inside the area window are reported as well.
//
// # Polarity
//
// The binarization keeps pixels brighter than the Otsu threshold as
// foreground. On dark ink over light paper the paper is one large foreground
// component. Light regions enclosed by ink lie inside its holes and are not
// external contours, so such input yields no plus-sign candidates.
//
// # Backends
//
// The default build traces contours in pure Go. Building with the gocv tag
// uses OpenCV's threshold and findContours instead; both report the same
// area and bounding box semantics.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Bounding boxes use inclusive top-left and exclusive bottom-right
package detection
