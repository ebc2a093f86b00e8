package segment

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"

	"github.com/ironsheep/shape-analyzer/internal/geometry"
)

// Simplify reduces a closed polygon with the Douglas-Peucker algorithm.
//
// A closed boundary has no natural end points, so the ring is split at two
// points that are far apart (the point farthest from the first point, and
// the point farthest from that one) and each half is simplified as an open
// polyline. Both split points are always kept. This makes the result
// independent of where boundary tracing happened to start.
//
// The result is rotated to start at the kept point that comes first in p, so
// the first vertex stays close to where tracing started.
//
// Parameters:
//   - p: Closed boundary, first point not repeated at the end.
//   - tolerance: Maximum distance, in pixels, a dropped point may lie from
//     the simplified outline. Regions uses EpsilonCoefficient × perimeter.
//
// Returns:
//   - geometry.Polygon: A new polygon whose points are a subset of p, in the
//     same cyclic order. p is never modified.
//
// Polygons with three or fewer points, or a non-positive tolerance, are
// returned unchanged (as a copy).
func Simplify(p geometry.Polygon, tolerance float64) geometry.Polygon {
	if len(p) <= 3 || tolerance <= 0 {
		return p.Clone()
	}

	a := farthestFrom(p, 0)
	b := farthestFrom(p, a)
	if a == b {
		return p.Clone()
	}

	n := len(p)
	first := chain(p, a, b)
	second := chain(p, b, a)

	dp := simplify.DouglasPeucker(tolerance)
	s1 := simplifyChain(dp, first)
	s2 := simplifyChain(dp, second)

	out := make(geometry.Polygon, 0, n)
	for _, pt := range s1[:len(s1)-1] {
		out = append(out, geometry.Point2D{X: pt[0], Y: pt[1]})
	}
	for _, pt := range s2[:len(s2)-1] {
		out = append(out, geometry.Point2D{X: pt[0], Y: pt[1]})
	}
	return rotateToEarliest(p, out, a)
}

// rotateToEarliest rotates out, a subsequence of p read cyclically from
// index start, so that it begins with the point of lowest index in p.
func rotateToEarliest(p, out geometry.Polygon, start int) geometry.Polygon {
	n := len(p)
	best, bestIdx := 0, n
	k := start
	for i, q := range out {
		for steps := 0; steps < n && p[k] != q; steps++ {
			k = (k + 1) % n
		}
		if k < bestIdx {
			best, bestIdx = i, k
		}
	}
	if best == 0 {
		return out
	}
	rotated := make(geometry.Polygon, 0, len(out))
	rotated = append(rotated, out[best:]...)
	return append(rotated, out[:best]...)
}

// chain returns the points of p from index i to index j inclusive, walking
// forward and wrapping around the end.
func chain(p geometry.Polygon, i, j int) orb.LineString {
	n := len(p)
	ls := make(orb.LineString, 0, n+1)
	for k := i; ; k = (k + 1) % n {
		ls = append(ls, orb.Point{p[k].X, p[k].Y})
		if k == j {
			break
		}
	}
	return ls
}

func simplifyChain(dp *simplify.DouglasPeuckerSimplifier, ls orb.LineString) orb.LineString {
	if len(ls) <= 2 {
		return ls
	}
	out, ok := dp.Simplify(ls.Clone()).(orb.LineString)
	if !ok || len(out) < 2 {
		return ls
	}
	return out
}

// farthestFrom returns the index of the point of p farthest from p[i].
func farthestFrom(p geometry.Polygon, i int) int {
	best, bestDist := i, -1.0
	for k, q := range p {
		dx, dy := q.X-p[i].X, q.Y-p[i].Y
		if d := dx*dx + dy*dy; d > bestDist {
			best, bestDist = k, d
		}
	}
	return best
}
