package segment

import (
	"image"

	"github.com/ironsheep/shape-analyzer/internal/geometry"
)

// Contour is the traced outer boundary of one connected foreground component.
type Contour struct {
	// Points are boundary pixel centers in tracing order (clockwise on screen),
	// with collinear runs compressed to their end points.
	Points geometry.Polygon

	// Bounds is the pixel bounding box of the component (inclusive min, exclusive max).
	Bounds image.Rectangle

	// PixelCount is the number of foreground pixels in the component.
	PixelCount int
}

// Area returns the area enclosed by the boundary points.
func (c Contour) Area() float64 { return c.Points.Area() }

// Perimeter returns the closed arc length of the boundary.
func (c Contour) Perimeter() float64 { return c.Points.Perimeter() }

// 8-neighbourhood in clockwise screen order: E, SE, S, SW, W, NW, N, NE.
var (
	nbrDX = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	nbrDY = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
)

const dirWest = 4

// component holds labelling statistics for one connected component.
type component struct {
	label  int32
	startX int
	startY int
	bounds image.Rectangle
	pixels int
}

// FindContours traces the external boundaries of a binary mask.
//
// Foreground pixels are grouped into 8-connected components. Each component
// whose surrounding background connects to the image border is traced with
// Moore-neighbour tracing from its raster-first pixel.
//
// Parameters:
//   - mask: Binary mask from Binarize (or built by hand).
//
// Returns:
//   - []Contour: One contour per external component, in discovery order
//     (raster order of each component's first pixel). Components lying inside
//     a hole of another component are not reported. An empty mask yields an
//     empty slice.
//
// Points are pixel centers in clockwise screen order with collinear runs
// compressed. The cost is linear in the number of pixels plus the total
// boundary length, however many components the mask holds.
func FindContours(mask *Mask) []Contour {
	labels, comps := labelComponents(mask)
	outside := outerBackground(mask)

	contours := make([]Contour, 0, len(comps))
	for _, c := range comps {
		if !isExternal(c, outside, mask.Width) {
			continue
		}
		pts := traceBoundary(labels, mask.Width, mask.Height, c.label, c.startX, c.startY)
		contours = append(contours, Contour{
			Points:     pts,
			Bounds:     c.bounds,
			PixelCount: c.pixels,
		})
	}
	return contours
}

// labelComponents assigns a label to every foreground pixel.
//
// Components are numbered from 1 in raster order of their first pixel,
// which is also the pixel tracing starts from.
func labelComponents(mask *Mask) ([]int32, []component) {
	w, h := mask.Width, mask.Height
	labels := make([]int32, w*h)
	comps := make([]component, 0)

	var next int32 = 1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !mask.At(x, y) || labels[y*w+x] != 0 {
				continue
			}
			c := component{label: next, startX: x, startY: y}
			fillComponent(mask, labels, x, y, &c)
			comps = append(comps, c)
			next++
		}
	}
	return labels, comps
}

// fillComponent performs iterative flood-fill from a starting pixel.
//
// Uses a stack rather than recursion so that large regions cannot overflow
// the goroutine stack. 8-connected.
func fillComponent(mask *Mask, labels []int32, startX, startY int, c *component) {
	w := mask.Width
	minX, minY, maxX, maxY := startX, startY, startX, startY

	stack := []image.Point{{X: startX, Y: startY}}
	labels[startY*w+startX] = c.label

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		c.pixels++

		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}

		for d := 0; d < 8; d++ {
			nx, ny := p.X+nbrDX[d], p.Y+nbrDY[d]
			if !mask.At(nx, ny) || labels[ny*w+nx] != 0 {
				continue
			}
			labels[ny*w+nx] = c.label
			stack = append(stack, image.Point{X: nx, Y: ny})
		}
	}

	c.bounds = image.Rect(minX, minY, maxX+1, maxY+1)
}

// traceBoundary walks the outer boundary of a labelled component with
// Moore-neighbour tracing, starting at its raster-first pixel.
//
// Tracing stops when the walk is back at the start pixel and about to repeat
// its first move, which also handles one-pixel-wide necks that pass through
// the start more than once.
func traceBoundary(labels []int32, w, h int, label int32, sx, sy int) geometry.Polygon {
	isLabel := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return labels[y*w+x] == label
	}

	pts := make([]image.Point, 0, 64)
	pts = append(pts, image.Point{X: sx, Y: sy})

	cx, cy := sx, sy
	// The pixel left of the raster-first pixel is always background.
	back := dirWest
	var first image.Point
	haveFirst := false

	maxSteps := 4*w*h + 8
	for step := 0; step < maxSteps; step++ {
		found := false
		var nx, ny, nd int
		for k := 1; k <= 8; k++ {
			d := (back + k) % 8
			tx, ty := cx+nbrDX[d], cy+nbrDY[d]
			if isLabel(tx, ty) {
				nx, ny, nd = tx, ty, d
				found = true
				break
			}
		}
		if !found {
			// Isolated pixel.
			break
		}

		n := image.Point{X: nx, Y: ny}
		if !haveFirst {
			first = n
			haveFirst = true
		} else if cx == sx && cy == sy && n == first {
			break
		}

		// The neighbour examined just before n is background and adjacent
		// to n; it becomes the backtrack for the next step.
		pd := (nd + 7) % 8
		bx, by := cx+nbrDX[pd], cy+nbrDY[pd]
		back = direction(bx-nx, by-ny)

		pts = append(pts, n)
		cx, cy = nx, ny
	}

	if len(pts) > 1 && pts[len(pts)-1] == pts[0] {
		pts = pts[:len(pts)-1]
	}

	return compressCollinear(pts)
}

// direction returns the neighbourhood index of the offset (dx, dy).
func direction(dx, dy int) int {
	for i := 0; i < 8; i++ {
		if nbrDX[i] == dx && nbrDY[i] == dy {
			return i
		}
	}
	return 0
}

// compressCollinear drops points that continue a straight run in the same
// direction. Reversals (one-pixel spikes) are kept.
func compressCollinear(pts []image.Point) geometry.Polygon {
	out := make(geometry.Polygon, 0, len(pts))
	for _, p := range pts {
		q := geometry.Point2D{X: float64(p.X), Y: float64(p.Y)}
		n := len(out)
		if n >= 2 {
			a, b := out[n-2], out[n-1]
			v1x, v1y := b.X-a.X, b.Y-a.Y
			v2x, v2y := q.X-b.X, q.Y-b.Y
			if v1x*v2y-v1y*v2x == 0 && v1x*v2x+v1y*v2y > 0 {
				out = out[:n-1]
			}
		}
		out = append(out, q)
	}
	return out
}

// outerBackground marks every background pixel that is 4-connected to the
// image border. 4-connected background is the complement of 8-connected
// foreground, so an unmarked background pixel lies in some component's hole.
func outerBackground(mask *Mask) []bool {
	w, h := mask.Width, mask.Height
	outside := make([]bool, w*h)
	stack := make([]image.Point, 0, 2*(w+h))

	push := func(x, y int) {
		if x < 0 || y < 0 || x >= w || y >= h {
			return
		}
		i := y*w + x
		if outside[i] || mask.Pix[i] != 0 {
			return
		}
		outside[i] = true
		stack = append(stack, image.Point{X: x, Y: y})
	}

	for x := 0; x < w; x++ {
		push(x, 0)
		push(x, h-1)
	}
	for y := 0; y < h; y++ {
		push(0, y)
		push(w-1, y)
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push(p.X+1, p.Y)
		push(p.X-1, p.Y)
		push(p.X, p.Y+1)
		push(p.X, p.Y-1)
	}
	return outside
}

// isExternal reports whether a component sits in the outer background.
//
// The pixel west of the raster-first pixel is background (or off the image)
// and lies outside the component itself, so the component is external iff
// that pixel is reachable from the border.
func isExternal(c component, outside []bool, w int) bool {
	if c.startX == 0 {
		return true
	}
	return outside[c.startY*w+c.startX-1]
}
