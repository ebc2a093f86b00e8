// Package geometry computes the geometric features used to classify shapes.
//
// The package works on simplified region boundaries (polygons) produced by
// the segmentation stage and turns them into a RegionMetrics value that the
// shape classifier can reason about.
//
// # Coordinate System
//
// Points use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// Coordinates are float64 so that pixel-center and sub-pixel positions can be
// represented without rounding.
//
// # Features
//
// Extract produces, for one polygon:
//
//   - Area and Perimeter: taken as given from the caller. They are measured on
//     the raw (un-simplified) boundary so that simplification error does not
//     leak into the circularity score.
//   - VertexCount: number of points in the simplified polygon.
//   - Circularity: 4π·area / perimeter². 1.0 for a perfect circle, lower for
//     elongated or jagged shapes. Reported as 0 when the perimeter is
//     (nearly) zero.
//   - BoundingAspectRatio: width / height of the axis-aligned bounding box
//     of the simplified polygon. Reported as 1.0 when the height is (nearly)
//     zero.
//
// ExtractPixels is the variant for outlines traced from a raster. Their
// vertices are pixel centers, so the box is counted in whole pixels
// (max - min + 1 per axis): a 42x40 block of pixels has aspect 1.05, not
// 41/39.
//
// Area and arc length of polygons are computed with github.com/paulmach/orb
// (orb/planar), treating every Polygon as a closed ring. Area is always
// non-negative, whichever way the ring winds.
//
// # Thread Safety
//
// All functions are pure. Polygons are never modified in place.
package geometry
