//go:build !gocv

package detection

import (
	"image"
)

var (
	// neighbors8 lists the 8-neighborhood counterclockwise (y down) starting east.
	neighbors8 = []Point{{1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {0, 1}, {1, 1}}
	neighbors4 = []Point{{1, 0}, {0, -1}, {-1, 0}, {0, 1}}
)

// binaryGrid is a foreground mask with bounds starting at (0,0).
type binaryGrid struct {
	width, height int
	fg            []bool
}

func (g *binaryGrid) inside(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// at reports whether (x, y) is foreground. Pixels outside the grid are
// background.
func (g *binaryGrid) at(x, y int) bool {
	return g.inside(x, y) && g.fg[y*g.width+x]
}

// component is one 8-connected foreground region.
type component struct {
	start    Point
	minX     int
	minY     int
	maxX     int
	maxY     int
	external bool
}

// externalContours binarizes gray with Otsu's threshold and returns every
// outermost foreground contour. A component is outermost when it touches the
// image border or the background region connected to the border. Components
// inside holes of other components are skipped.
//
// The result is in reverse raster order of each contour's first pixel, the
// order OpenCV's findContours reports external contours in.
func externalContours(gray *image.Gray) []ContourBox {
	bounds := gray.Bounds()
	grid := &binaryGrid{width: bounds.Dx(), height: bounds.Dy()}
	grid.fg = make([]bool, grid.width*grid.height)

	t := OtsuThreshold(gray)
	for y := 0; y < grid.height; y++ {
		for x := 0; x < grid.width; x++ {
			grid.fg[y*grid.width+x] = gray.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y > t
		}
	}

	outer := outerBackground(grid)
	comps := findComponents(grid, outer)

	boxes := make([]ContourBox, 0, len(comps))
	for i := len(comps) - 1; i >= 0; i-- {
		c := comps[i]
		if !c.external {
			continue
		}
		boundary := traceBoundary(grid, c.start)
		boxes = append(boxes, ContourBox{
			Bounds: Bounds{
				X1: c.minX + bounds.Min.X,
				Y1: c.minY + bounds.Min.Y,
				X2: c.maxX + 1 + bounds.Min.X,
				Y2: c.maxY + 1 + bounds.Min.Y,
			},
			Area: polygonArea(boundary),
		})
	}
	return boxes
}

// outerBackground marks the background pixels 4-connected to the image border.
func outerBackground(grid *binaryGrid) []bool {
	outer := make([]bool, len(grid.fg))
	isBackground := func(x, y int) bool { return !grid.fg[y*grid.width+x] }

	for y := 0; y < grid.height; y++ {
		for x := 0; x < grid.width; x++ {
			onBorder := x == 0 || y == 0 || x == grid.width-1 || y == grid.height-1
			if !onBorder || outer[y*grid.width+x] || !isBackground(x, y) {
				continue
			}
			floodFill(grid, outer, isBackground, neighbors4, Point{X: x, Y: y}, nil)
		}
	}
	return outer
}

// findComponents labels the 8-connected foreground components in raster
// order of their first pixel.
func findComponents(grid *binaryGrid, outer []bool) []component {
	visited := make([]bool, len(grid.fg))
	isForeground := func(x, y int) bool { return grid.fg[y*grid.width+x] }

	comps := make([]component, 0)
	for y := 0; y < grid.height; y++ {
		for x := 0; x < grid.width; x++ {
			if !grid.fg[y*grid.width+x] || visited[y*grid.width+x] {
				continue
			}

			c := component{start: Point{X: x, Y: y}, minX: x, minY: y, maxX: x, maxY: y}
			floodFill(grid, visited, isForeground, neighbors8, c.start, func(p Point) {
				c.minX = min(c.minX, p.X)
				c.minY = min(c.minY, p.Y)
				c.maxX = max(c.maxX, p.X)
				c.maxY = max(c.maxY, p.Y)
				if c.external {
					return
				}
				if p.X == 0 || p.Y == 0 || p.X == grid.width-1 || p.Y == grid.height-1 {
					c.external = true
					return
				}
				for _, d := range neighbors4 {
					if outer[(p.Y+d.Y)*grid.width+p.X+d.X] {
						c.external = true
						return
					}
				}
			})
			comps = append(comps, c)
		}
	}
	return comps
}

// floodFill performs an iterative flood fill from start over the pixels for
// which match reports true, marking them in visited and passing each one to
// visit when visit is non-nil.
func floodFill(grid *binaryGrid, visited []bool, match func(x, y int) bool, neighbors []Point, start Point, visit func(Point)) {
	stack := []Point{start}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !grid.inside(p.X, p.Y) {
			continue
		}
		idx := p.Y*grid.width + p.X
		if visited[idx] || !match(p.X, p.Y) {
			continue
		}

		visited[idx] = true
		if visit != nil {
			visit(p)
		}

		for _, d := range neighbors {
			stack = append(stack, Point{X: p.X + d.X, Y: p.Y + d.Y})
		}
	}
}

// traceBoundary follows the outer border of the component containing start,
// which must be the component's first pixel in raster order. It returns the
// border pixels in traversal order; a lone pixel yields a single point.
//
// This is the outer-border step of Suzuki and Abe's border following, the
// algorithm behind OpenCV's findContours.
func traceBoundary(grid *binaryGrid, start Point) []Point {
	const west = 4

	first := -1
	for k := 0; k < len(neighbors8); k++ {
		d := (west - k + len(neighbors8)) % len(neighbors8)
		if grid.at(start.X+neighbors8[d].X, start.Y+neighbors8[d].Y) {
			first = d
			break
		}
	}
	if first < 0 {
		return []Point{start}
	}

	p1 := Point{X: start.X + neighbors8[first].X, Y: start.Y + neighbors8[first].Y}
	prev, cur := p1, start
	points := make([]Point, 0)

	// Every pixel has at most 8 entry directions, which bounds the walk.
	for steps := 0; steps <= 8*len(grid.fg)+8; steps++ {
		d := directionIndex(prev.X-cur.X, prev.Y-cur.Y)

		var next Point
		for k := 1; k <= len(neighbors8); k++ {
			dd := (d + k) % len(neighbors8)
			n := Point{X: cur.X + neighbors8[dd].X, Y: cur.Y + neighbors8[dd].Y}
			if grid.at(n.X, n.Y) {
				next = n
				break
			}
		}

		points = append(points, cur)
		if next == start && cur == p1 {
			break
		}
		prev, cur = cur, next
	}
	return points
}

func directionIndex(dx, dy int) int {
	for i, d := range neighbors8 {
		if d.X == dx && d.Y == dy {
			return i
		}
	}
	return 0
}
