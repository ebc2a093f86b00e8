package segment

import (
	"image"

	"github.com/ironsheep/shape-analyzer/internal/geometry"
)

// Region is one candidate object: its raw boundary with measurements, and
// the simplified polygon derived from it.
type Region struct {
	// Boundary is the traced outer boundary (pixel centers).
	Boundary geometry.Polygon

	// Area is the area enclosed by Boundary.
	Area float64

	// Perimeter is the closed arc length of Boundary.
	Perimeter float64

	// Simplified is Boundary reduced with tolerance EpsilonCoefficient × Perimeter.
	Simplified geometry.Polygon

	// Bounds is the component's pixel bounding box.
	Bounds image.Rectangle

	// Fill is the mean colour of the region as "#rrggbb". Only Extract sets it.
	Fill string
}

// Regions traces every external contour of the mask and simplifies it.
// The result preserves discovery order.
func Regions(mask *Mask, epsilonCoefficient float64) []Region {
	contours := FindContours(mask)
	regions := make([]Region, 0, len(contours))
	for _, c := range contours {
		perimeter := c.Perimeter()
		regions = append(regions, Region{
			Boundary:   c.Points,
			Area:       c.Area(),
			Perimeter:  perimeter,
			Simplified: Simplify(c.Points, epsilonCoefficient*perimeter),
			Bounds:     c.Bounds,
		})
	}
	return regions
}

// Extract binarizes an image and returns its candidate regions with their
// fill colours.
func Extract(img image.Image, opts Options) ([]Region, error) {
	mask, err := Binarize(img, opts)
	if err != nil {
		return nil, err
	}
	regions := Regions(mask, opts.EpsilonCoefficient)
	for i := range regions {
		regions[i].Fill = FillColor(img, mask, regions[i])
	}
	return regions, nil
}
