// Package imaging provides the image I/O and drawing primitives used by the
// labeling pipeline.
//
// Images are read once with Load, written with Save, and copied with Clone
// before anything is drawn on them so the source pixels stay untouched for
// the rest of the pipeline. Drawing covers what the debug renderer needs:
// rectangle outlines and short text labels.
//
// # Coordinate System
//
// All pixel coordinates in this package use the standard image convention:
//   - Origin (0, 0) at the top-left corner
//   - X increases rightward, Y increases downward
//   - Rectangles passed to DrawRect are inclusive on both corners, matching
//     how an OpenCV rectangle is drawn from (x1,y1) to (x2,y2)
//
// Anything that reports boxes with a bottom-left origin (Tesseract box files)
// must be reconciled by the caller before it reaches this package.
//
// # Edge Maps
//
// Canny returns a binary edge map (*image.Gray, edges at 255) used by the
// horizontal-line heuristic in the detection package.
//
// # Error Handling
//
// Functions return errors for:
//   - Missing or undecodable image files
//   - Output directories that cannot be created
//   - Encoding errors during Save
//   - Malformed color strings in ParseHexColor
package imaging
