package detection

import (
	"image"
	"sort"

	"github.com/ironsheep/expr-labeler/internal/imaging"
)

// Canny hysteresis thresholds for the line heuristic.
const (
	LineCannyLow  = 50
	LineCannyHigh = 150
)

// LineOptions controls DetectHorizontalLines.
type LineOptions struct {
	// MinLength is the minimum horizontal extent in pixels.
	MinLength int `json:"min_length"`

	// MaxThickness is the maximum vertical extent in pixels. Edge rows
	// closer than this are merged into one line.
	MaxThickness int `json:"max_thickness"`

	// MaxGap is the largest run of non-edge pixels bridged within a row.
	MaxGap int `json:"max_gap"`
}

// DefaultLineOptions returns a minimum length of 30, a maximum thickness of 5
// and a maximum gap of 5 pixels.
func DefaultLineOptions() LineOptions {
	return LineOptions{MinLength: 30, MaxThickness: 5, MaxGap: 5}
}

// Line is a thin horizontal stroke found by DetectHorizontalLines.
type Line struct {
	// Start and End are the leftmost and rightmost edge points.
	Start Point `json:"start"`
	End   Point `json:"end"`

	// Bounds encloses every edge pixel of the line.
	Bounds Bounds `json:"bounds"`

	// Thickness is the vertical extent of the merged edge rows.
	Thickness int `json:"thickness"`
}

// segment is a run of edge pixels in one row, gaps included.
type segment struct {
	y, x1, x2 int
}

// DetectHorizontalLines finds short horizontal strokes such as minus signs.
//
// # Algorithm
//
//  1. Edge Detection: Canny with thresholds 50/150
//  2. Row Runs: edge pixels in each row are joined into runs, bridging gaps
//     of at most MaxGap pixels
//  3. Grouping: runs that overlap horizontally and lie within MaxThickness
//     rows of a group's top row join that group. A filled stroke produces
//     one edge row for its top and one for its bottom, which end up in the
//     same group.
//  4. Filtering: groups narrower than MinLength are dropped
//
// Lines are returned sorted top to bottom, then left to right.
func DetectHorizontalLines(gray *image.Gray, opts LineOptions) []Line {
	if gray == nil || gray.Bounds().Empty() {
		return nil
	}
	bounds := gray.Bounds()
	edges := imaging.Canny(gray, LineCannyLow, LineCannyHigh)

	segments := make([]segment, 0)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		start, last := -1, -1
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if edges.GrayAt(x, y).Y == 0 {
				continue
			}
			if start >= 0 && x-last-1 > opts.MaxGap {
				segments = append(segments, segment{y: y, x1: start, x2: last})
				start = -1
			}
			if start < 0 {
				start = x
			}
			last = x
		}
		if start >= 0 {
			segments = append(segments, segment{y: y, x1: start, x2: last})
		}
	}

	// Only runs long enough to belong to a line seed a group; shorter runs
	// are the vertical edges at the stroke ends and still extend a group.
	type group struct {
		top, bottom, x1, x2 int
		leftY, rightY       int
		seeded              bool
	}
	groups := make([]*group, 0)

	for _, s := range segments {
		long := s.x2-s.x1+1 >= opts.MinLength
		var target *group
		for _, g := range groups {
			if s.y-g.top > opts.MaxThickness {
				continue
			}
			if s.x1 <= g.x2+opts.MaxGap && s.x2 >= g.x1-opts.MaxGap {
				target = g
				break
			}
		}
		if target == nil {
			if !long {
				continue
			}
			groups = append(groups, &group{
				top: s.y, bottom: s.y, x1: s.x1, x2: s.x2,
				leftY: s.y, rightY: s.y, seeded: true,
			})
			continue
		}
		target.bottom = max(target.bottom, s.y)
		if s.x1 < target.x1 {
			target.x1, target.leftY = s.x1, s.y
		}
		if s.x2 > target.x2 {
			target.x2, target.rightY = s.x2, s.y
		}
	}

	lines := make([]Line, 0, len(groups))
	for _, g := range groups {
		thickness := g.bottom - g.top
		length := g.x2 - g.x1
		if !g.seeded || thickness > opts.MaxThickness || length < opts.MinLength {
			continue
		}
		lines = append(lines, Line{
			Start:     Point{X: g.x1, Y: g.leftY},
			End:       Point{X: g.x2, Y: g.rightY},
			Bounds:    Bounds{X1: g.x1, Y1: g.top, X2: g.x2 + 1, Y2: g.bottom + 1},
			Thickness: thickness,
		})
	}

	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Bounds.Y1 != lines[j].Bounds.Y1 {
			return lines[i].Bounds.Y1 < lines[j].Bounds.Y1
		}
		return lines[i].Bounds.X1 < lines[j].Bounds.X1
	})
	return lines
}
