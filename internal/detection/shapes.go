package detection

import (
	"fmt"
	"strings"

	"github.com/ironsheep/shape-analyzer/internal/geometry"
)

// ShapeLabel identifies the kind of shape a region was classified as.
type ShapeLabel int

// Shape labels. The zero value is not a valid label.
const (
	Circle ShapeLabel = iota + 1
	Triangle
	Square
	Rectangle
	Pentagon
	Hexagon
	Heptagon
	Octagon
	Polygon
)

var labelNames = map[ShapeLabel]string{
	Circle:    "Circle",
	Triangle:  "Triangle",
	Square:    "Square",
	Rectangle: "Rectangle",
	Pentagon:  "Pentagon",
	Hexagon:   "Hexagon",
	Heptagon:  "Heptagon",
	Octagon:   "Octagon",
	Polygon:   "Polygon",
}

// Labels returns every valid label in declaration order.
func Labels() []ShapeLabel {
	return []ShapeLabel{Circle, Triangle, Square, Rectangle, Pentagon, Hexagon, Heptagon, Octagon, Polygon}
}

// String returns the display name of the label.
func (l ShapeLabel) String() string {
	if name, ok := labelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("ShapeLabel(%d)", int(l))
}

// MarshalText encodes the label as its display name.
func (l ShapeLabel) MarshalText() ([]byte, error) {
	if _, ok := labelNames[l]; !ok {
		return nil, fmt.Errorf("invalid shape label %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText decodes a display name (case-insensitive).
func (l *ShapeLabel) UnmarshalText(text []byte) error {
	parsed, err := ParseShapeLabel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseShapeLabel returns the label with the given display name, ignoring case.
func ParseShapeLabel(s string) (ShapeLabel, error) {
	for _, l := range Labels() {
		if strings.EqualFold(labelNames[l], s) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown shape label %q", s)
}

// Default classification cutoffs.
const (
	// DefaultCircularityCutoff is the circularity above which a region is a Circle.
	DefaultCircularityCutoff = 0.85

	// DefaultSquareTolerance is how far from 1.0 a quadrilateral's aspect ratio
	// may be while still counting as a Square.
	DefaultSquareTolerance = 0.05

	// DefaultSquareAspectMin and DefaultSquareAspectMax bound the Square band.
	DefaultSquareAspectMin = 0.95
	DefaultSquareAspectMax = 1.05
)

// Thresholds holds the numeric cutoffs used by the classifier.
type Thresholds struct {
	// CircularityCutoff: circularity strictly above this is a Circle.
	CircularityCutoff float64 `json:"circularity_cutoff"`

	// SquareAspectMin and SquareAspectMax bound (inclusively) the aspect
	// ratio of a four-vertex region classified as Square.
	SquareAspectMin float64 `json:"square_aspect_min"`
	SquareAspectMax float64 `json:"square_aspect_max"`
}

// DefaultThresholds returns the standard cutoffs: circularity 0.85 and a
// square band of 0.95 to 1.05.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CircularityCutoff: DefaultCircularityCutoff,
		SquareAspectMin:   DefaultSquareAspectMin,
		SquareAspectMax:   DefaultSquareAspectMax,
	}
}

// NewThresholds builds thresholds from a circularity cutoff and a symmetric
// square tolerance around an aspect ratio of 1.
func NewThresholds(circularityCutoff, squareTolerance float64) Thresholds {
	return Thresholds{
		CircularityCutoff: circularityCutoff,
		SquareAspectMin:   1 - squareTolerance,
		SquareAspectMax:   1 + squareTolerance,
	}
}

// Classify labels a region using the default thresholds
// (DefaultCircularityCutoff and the DefaultSquareAspectMin to
// DefaultSquareAspectMax band).
//
// Parameters:
//   - m: Metrics of one region, as produced by geometry.Extract or
//     geometry.ExtractPixels.
//
// Returns:
//   - ShapeLabel: Always one of the values listed by Labels.
//
// See Thresholds.Classify for the rule order.
func Classify(m geometry.RegionMetrics) ShapeLabel {
	return DefaultThresholds().Classify(m)
}

// Classify labels a region. The first matching rule wins:
//
//  1. Circularity > CircularityCutoff: Circle
//  2. 3 vertices: Triangle
//  3. 4 vertices: Square if the aspect ratio is within the square band,
//     otherwise Rectangle
//  4. 5 to 8 vertices: Pentagon, Hexagon, Heptagon, Octagon
//  5. Anything else, including fewer than 3 vertices: Polygon
//
// A four-vertex region with a degenerate (zero-height) bounding box is a
// Rectangle even though its reported aspect ratio is 1.0.
//
// Classify is total and deterministic.
func (t Thresholds) Classify(m geometry.RegionMetrics) ShapeLabel {
	if m.Circularity > t.CircularityCutoff {
		return Circle
	}

	switch m.VertexCount {
	case 3:
		return Triangle
	case 4:
		if m.DegenerateBounds {
			return Rectangle
		}
		if m.BoundingAspectRatio >= t.SquareAspectMin && m.BoundingAspectRatio <= t.SquareAspectMax {
			return Square
		}
		return Rectangle
	case 5:
		return Pentagon
	case 6:
		return Hexagon
	case 7:
		return Heptagon
	case 8:
		return Octagon
	default:
		return Polygon
	}
}
