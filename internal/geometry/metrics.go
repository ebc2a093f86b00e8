package geometry

import "math"

// Epsilon is the smallest perimeter or bounding-box height treated as non-zero.
const Epsilon = 1e-9

// RegionMetrics holds the features the classifier decides on.
//
// Area and Perimeter describe the raw boundary; VertexCount and
// BoundingAspectRatio describe the simplified polygon.
type RegionMetrics struct {
	// Area is the raw boundary area in square pixels.
	Area float64 `json:"area"`

	// Perimeter is the raw boundary arc length in pixels.
	Perimeter float64 `json:"perimeter"`

	// VertexCount is the number of points in the simplified polygon.
	VertexCount int `json:"vertex_count"`

	// Circularity is 4π·Area / Perimeter² (1.0 = perfect circle).
	Circularity float64 `json:"circularity"`

	// BoundingAspectRatio is bounding-box width / height of the simplified polygon.
	BoundingAspectRatio float64 `json:"bounding_aspect_ratio"`

	// DegenerateBounds is set when the bounding box has no height and
	// BoundingAspectRatio holds the 1.0 placeholder instead of a real ratio.
	DegenerateBounds bool `json:"degenerate_bounds,omitempty"`
}

// Extract computes the metrics of a simplified polygon.
//
// Parameters:
//   - polygon: The simplified boundary polygon.
//   - rawArea: Area of the original, un-simplified boundary.
//   - rawPerimeter: Closed arc length of the original boundary.
//
// Degenerate inputs never fail: a perimeter at or below Epsilon yields a
// circularity of 0, and a bounding box with height at or below Epsilon
// yields an aspect ratio of 1.0.
func Extract(polygon Polygon, rawArea, rawPerimeter float64) RegionMetrics {
	return RegionMetrics{
		Area:                rawArea,
		Perimeter:           rawPerimeter,
		VertexCount:         len(polygon),
		Circularity:         Circularity(rawArea, rawPerimeter),
		BoundingAspectRatio: AspectRatio(polygon),
		DegenerateBounds:    polygon.Bounds().Height() <= Epsilon,
	}
}

// ExtractPixels is Extract for polygons traced from a raster, whose vertices
// are pixel centers.
//
// The bounding box is measured in whole pixels (max - min + 1 on each axis),
// so a traced 42x40 fill has an aspect ratio of exactly 1.05. Only an empty
// polygon has DegenerateBounds set.
func ExtractPixels(polygon Polygon, rawArea, rawPerimeter float64) RegionMetrics {
	return RegionMetrics{
		Area:                rawArea,
		Perimeter:           rawPerimeter,
		VertexCount:         len(polygon),
		Circularity:         Circularity(rawArea, rawPerimeter),
		BoundingAspectRatio: PixelAspectRatio(polygon),
		DegenerateBounds:    len(polygon) == 0,
	}
}

// Circularity returns 4π·area / perimeter², or 0 if the perimeter is degenerate.
func Circularity(area, perimeter float64) float64 {
	if perimeter <= Epsilon {
		return 0
	}
	c := 4 * math.Pi * area / (perimeter * perimeter)
	if c < 0 {
		return 0
	}
	return c
}

// AspectRatio returns the bounding-box width / height of the polygon,
// or 1.0 if the height is degenerate.
func AspectRatio(polygon Polygon) float64 {
	b := polygon.Bounds()
	h := b.Height()
	if h <= Epsilon {
		return 1.0
	}
	return b.Width() / h
}

// PixelAspectRatio returns width / height of the inclusive pixel box of a
// polygon whose vertices are pixel centers: a polygon spanning columns 0..41
// and rows 0..39 is 42 pixels wide and 40 high. An empty polygon yields 1.0.
func PixelAspectRatio(polygon Polygon) float64 {
	if len(polygon) == 0 {
		return 1.0
	}
	b := polygon.Bounds()
	return b.PixelWidth() / b.PixelHeight()
}
