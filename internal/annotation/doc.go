// Package annotation turns pixel detections into YOLO label records.
//
// OCR boxes arrive in Tesseract's box-file convention (bottom-left origin).
// Reconcile flips them into the top-left convention used by images and by
// the geometric heuristics, Normalize scales a pixel rectangle into the
// [0,1] center/size form, and WriteLabels emits one record per box:
//
//	<class_id> <x_center> <y_center> <width> <height>
//
// with six decimal places. A ClassMap decides which recognized symbols are
// labeled at all.
package annotation
