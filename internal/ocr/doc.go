// Package ocr locates individual characters with Tesseract.
//
// A Recognizer takes an image and a Tesseract configuration string (for
// example "--psm 11") and returns one CharBox per recognized symbol. Two
// engines are provided:
//
//   - Tesseract: the gosseract/v2 bindings to libtesseract
//   - CLI: the tesseract executable run in makebox mode
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr libtesseract-dev
//   - macOS: brew install tesseract
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//
// Set TessdataPrefix in Options when the data lives outside the default
// search path.
//
// # Box Convention
//
// CharBox coordinates follow Tesseract's box-file convention: the origin is
// the bottom-left corner of the image and Y grows upward. Y1 is the bottom
// edge of the symbol and Y2 the top edge. The gosseract engine reports
// top-left rectangles and converts them so both engines agree.
//
// # Error Handling
//
// Functions return errors for:
//   - Images that cannot be encoded for Tesseract
//   - Tesseract initialization failures (missing language data, bad prefix)
//   - A failed or cancelled tesseract process
//   - Box output that does not parse (ErrMalformedBox)
//
// Empty or whitespace-only output is not an error; it yields no boxes.
package ocr
