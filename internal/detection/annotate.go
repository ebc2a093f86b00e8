package detection

import (
	"fmt"

	"github.com/ironsheep/shape-analyzer/internal/geometry"
)

// Annotation is what a renderer needs to draw one classified region.
type Annotation struct {
	Label   string           `json:"label"`
	Anchor  geometry.Point2D `json:"anchor"`
	Outline geometry.Polygon `json:"outline"`
}

// ToAnnotations converts a result into annotations, one per region, in order.
func ToAnnotations(result *AnalysisResult) []Annotation {
	if result == nil {
		return make([]Annotation, 0)
	}
	annotations := make([]Annotation, 0, len(result.Regions))
	for _, r := range result.Regions {
		annotations = append(annotations, Annotation{
			Label:   r.Label.String(),
			Anchor:  r.Anchor,
			Outline: r.Polygon.Clone(),
		})
	}
	return annotations
}

// SummaryLine formats one region as
// "Shape: <Label> | Area: <area> | Perimeter: <perimeter>".
// Area and perimeter are truncated toward zero.
func SummaryLine(r ClassifiedRegion) string {
	return fmt.Sprintf("Shape: %s | Area: %d | Perimeter: %d",
		r.Label, int(r.Metrics.Area), int(r.Metrics.Perimeter))
}

// CountLine formats the object total as "Total Objects Detected: <n>".
func CountLine(result *AnalysisResult) string {
	n := 0
	if result != nil {
		n = result.ObjectCount
	}
	return fmt.Sprintf("Total Objects Detected: %d", n)
}

// SummaryLines returns one SummaryLine per region followed by the CountLine.
func SummaryLines(result *AnalysisResult) []string {
	lines := make([]string, 0)
	if result != nil {
		for _, r := range result.Regions {
			lines = append(lines, SummaryLine(r))
		}
	}
	return append(lines, CountLine(result))
}
