package pipeline

import (
	"sort"

	"github.com/ironsheep/expr-labeler/internal/annotation"
)

// Status is the result class of one image.
type Status int

const (
	// StatusLabeled means a label file was written.
	StatusLabeled Status = iota
	// StatusUndetected means no variant yielded OCR boxes; nothing was written.
	StatusUndetected
	// StatusFailed means the image could not be read or its labels not written.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLabeled:
		return "labeled"
	case StatusUndetected:
		return "undetected"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Outcome reports what happened to one image.
type Outcome struct {
	Image    string `json:"image"`
	Status   Status `json:"status"`
	Strategy string `json:"strategy,omitempty"`

	// Boxes are the emitted label records in file order.
	Boxes []annotation.Box `json:"boxes,omitempty"`

	OCRBoxes     int `json:"ocr_boxes"`
	ContourBoxes int `json:"contour_boxes"`
	LineBoxes    int `json:"line_boxes"`

	// Skipped holds recognized symbols with no class, in detection order.
	Skipped []string `json:"skipped,omitempty"`

	LabelPath string `json:"label_path,omitempty"`
	DebugPath string `json:"debug_path,omitempty"`

	Err   error  `json:"-"`
	Error string `json:"error,omitempty"`
}

func failed(name string, err error) Outcome {
	return Outcome{Image: name, Status: StatusFailed, Err: err, Error: err.Error()}
}

// Summary aggregates the outcomes of a run.
type Summary struct {
	Images     int `json:"images"`
	Labeled    int `json:"labeled"`
	Undetected int `json:"undetected"`
	Failed     int `json:"failed"`

	// ByStrategy counts accepted variants by strategy name.
	ByStrategy map[string]int `json:"by_strategy"`

	OCRBoxes     int `json:"ocr_boxes"`
	ContourBoxes int `json:"contour_boxes"`
	LineBoxes    int `json:"line_boxes"`
	Skipped      int `json:"skipped_symbols"`

	Outcomes []Outcome `json:"outcomes"`
}

func newSummary() *Summary {
	return &Summary{ByStrategy: make(map[string]int), Outcomes: make([]Outcome, 0)}
}

func (s *Summary) add(o Outcome) {
	s.Images++
	switch o.Status {
	case StatusLabeled:
		s.Labeled++
		s.ByStrategy[o.Strategy]++
	case StatusUndetected:
		s.Undetected++
	case StatusFailed:
		s.Failed++
	}
	s.OCRBoxes += o.OCRBoxes
	s.ContourBoxes += o.ContourBoxes
	s.LineBoxes += o.LineBoxes
	s.Skipped += len(o.Skipped)
	s.Outcomes = append(s.Outcomes, o)
}

// UndetectedImages returns the names of images with no detections, sorted.
func (s *Summary) UndetectedImages() []string {
	names := make([]string, 0, s.Undetected)
	for _, o := range s.Outcomes {
		if o.Status == StatusUndetected {
			names = append(names, o.Image)
		}
	}
	sort.Strings(names)
	return names
}
