// Package pipeline labels a directory of expression images.
//
// For every image the pipeline builds the preprocessing variants, asks the
// OCR engine for characters one variant at a time until a variant yields at
// least one box, and then writes a YOLO label file for that variant:
//
//  1. OCR boxes, reconciled to top-left coordinates and filtered through
//     the class map
//  2. small-contour boxes from the accepted variant, labeled as plus signs
//  3. thin horizontal strokes labeled as minus signs, when minus recovery is
//     enabled
//
// A debug image with every box drawn is written next to the labels. Images
// where no variant yields boxes are reported as undetected and produce no
// files.
//
// # Concurrency
//
// With one worker, images are processed in sorted filename order. With more,
// images run concurrently on an errgroup bounded by the worker count; each
// image still owns its own output files.
package pipeline
