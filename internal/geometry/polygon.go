package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Point2D represents a 2D coordinate in pixel space.
type Point2D struct {
	X float64 `json:"x"` // Horizontal position (0 = leftmost)
	Y float64 `json:"y"` // Vertical position (0 = topmost)
}

// Polygon is an ordered, implicitly closed sequence of points.
//
// The first and last points are connected; callers should not repeat the
// first point at the end.
type Polygon []Point2D

// Bounds represents an axis-aligned bounding box in pixel coordinates.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal extent of the box.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the box.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// PixelWidth returns the number of pixel columns the box covers when its
// corners are pixel centers (max - min + 1).
func (b Bounds) PixelWidth() float64 { return b.Width() + 1 }

// PixelHeight returns the number of pixel rows the box covers when its
// corners are pixel centers (max - min + 1).
func (b Bounds) PixelHeight() float64 { return b.Height() + 1 }

// FromRing converts an orb ring into a Polygon, dropping the closing point
// if the ring repeats its first point.
func FromRing(r orb.Ring) Polygon {
	n := len(r)
	if n > 1 && r[0] == r[n-1] {
		n--
	}
	p := make(Polygon, n)
	for i := 0; i < n; i++ {
		p[i] = Point2D{X: r[i][0], Y: r[i][1]}
	}
	return p
}

// Ring returns the polygon as a closed orb.Ring (first point repeated at the end).
func (p Polygon) Ring() orb.Ring {
	if len(p) == 0 {
		return orb.Ring{}
	}
	r := make(orb.Ring, 0, len(p)+1)
	for _, pt := range p {
		r = append(r, orb.Point{pt.X, pt.Y})
	}
	if r[0] != r[len(r)-1] {
		r = append(r, r[0])
	}
	return r
}

// Bounds returns the axis-aligned bounding box of the polygon.
// An empty polygon has a zero box.
func (p Polygon) Bounds() Bounds {
	if len(p) == 0 {
		return Bounds{}
	}
	b := p.Ring().Bound()
	return Bounds{MinX: b.Min[0], MinY: b.Min[1], MaxX: b.Max[0], MaxY: b.Max[1]}
}

// Area returns the enclosed area of the closed polygon (shoelace formula).
// The result is never negative, whichever way the polygon winds.
func (p Polygon) Area() float64 {
	if len(p) < 3 {
		return 0
	}
	return math.Abs(planar.Area(p.Ring()))
}

// Perimeter returns the closed arc length of the polygon, including the
// segment from the last point back to the first.
func (p Polygon) Perimeter() float64 {
	if len(p) < 2 {
		return 0
	}
	return planar.Length(p.Ring())
}

// Clone returns a copy of the polygon that shares no memory with p.
func (p Polygon) Clone() Polygon {
	if p == nil {
		return nil
	}
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}
