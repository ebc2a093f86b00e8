package detection

import (
	"io"
	"log/slog"

	"github.com/ironsheep/shape-analyzer/internal/geometry"
)

// DefaultMinArea is the raw boundary area, in square pixels, below which a
// candidate is treated as noise.
const DefaultMinArea = 500

// Candidate is one region awaiting classification.
type Candidate struct {
	// Boundary is the raw traced boundary. Analyze only reports its vertex
	// count in debug logs; it is kept so callers can draw or re-measure the
	// unsimplified outline.
	Boundary geometry.Polygon

	// Area and Perimeter are measured on Boundary.
	Area      float64
	Perimeter float64

	// Simplified is the reduced polygon that vertex count and aspect ratio
	// are measured on.
	Simplified geometry.Polygon

	// FillColor is an optional "#rrggbb" colour carried through to the result.
	FillColor string

	// PixelCenters marks polygons traced from a raster, whose vertices are
	// pixel centers. Their bounding box is measured in whole pixels
	// (geometry.ExtractPixels).
	PixelCenters bool
}

// ClassifiedRegion is a candidate that passed the area filter, with its
// measurements and label.
type ClassifiedRegion struct {
	// Label is the assigned shape.
	Label ShapeLabel `json:"label"`

	// Metrics are the features the label was decided on.
	Metrics geometry.RegionMetrics `json:"metrics"`

	// Polygon is the simplified outline.
	Polygon geometry.Polygon `json:"polygon"`

	// Anchor is the first vertex of Polygon, used to place the label text.
	Anchor geometry.Point2D `json:"anchor"`

	// Bounds is the bounding box of Polygon.
	Bounds geometry.Bounds `json:"bounds"`

	// FillColor is the region's mean colour, when known.
	FillColor string `json:"fill_color,omitempty"`
}

// AnalysisResult contains every region classified in one image.
type AnalysisResult struct {
	// Regions are in discovery order.
	Regions []ClassifiedRegion `json:"regions"`

	// ObjectCount is the number of regions.
	ObjectCount int `json:"object_count"`
}

// Options controls filtering and classification.
type Options struct {
	// MinArea: candidates with a raw area below this are skipped.
	MinArea float64 `json:"min_area"`

	// Thresholds are the classifier cutoffs.
	Thresholds Thresholds `json:"thresholds"`
}

// DefaultOptions returns MinArea 500 with the default thresholds.
func DefaultOptions() Options {
	return Options{
		MinArea:    DefaultMinArea,
		Thresholds: DefaultThresholds(),
	}
}

// Analyzer filters and classifies candidate regions.
//
// An Analyzer holds no per-image state and is safe for concurrent use.
type Analyzer struct {
	opts   Options
	logger *slog.Logger
}

// NewAnalyzer creates an Analyzer. A nil logger discards all output.
func NewAnalyzer(opts Options, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Analyzer{opts: opts, logger: logger}
}

// Options returns the analyzer's options.
func (a *Analyzer) Options() Options {
	return a.opts
}

// Analyze filters, measures and classifies candidates in input order.
//
// Parameters:
//   - candidates: Regions to classify. Area and Perimeter must describe the
//     raw boundary; Simplified is the polygon whose vertex count and bounding
//     box are measured.
//
// Returns:
//   - *AnalysisResult: One ClassifiedRegion per candidate whose raw Area is at
//     least MinArea, in input order. The result is never nil; empty input
//     yields an empty result with ObjectCount 0.
//
// Candidates below MinArea are skipped before any measurement, so they never
// influence the result. Candidates with PixelCenters set are measured with
// geometry.ExtractPixels, all others with geometry.Extract. Degenerate
// geometry (zero perimeter or zero-height bounds) never fails; the region is
// still classified.
func (a *Analyzer) Analyze(candidates []Candidate) *AnalysisResult {
	regions := make([]ClassifiedRegion, 0, len(candidates))

	for i, c := range candidates {
		if c.Area < a.opts.MinArea {
			a.logger.Debug("skipping small region",
				"index", i,
				"area", c.Area,
				"min_area", a.opts.MinArea,
				"boundary_points", len(c.Boundary))
			continue
		}

		var m geometry.RegionMetrics
		if c.PixelCenters {
			m = geometry.ExtractPixels(c.Simplified, c.Area, c.Perimeter)
		} else {
			m = geometry.Extract(c.Simplified, c.Area, c.Perimeter)
		}
		label := a.opts.Thresholds.Classify(m)

		var anchor geometry.Point2D
		if len(c.Simplified) > 0 {
			anchor = c.Simplified[0]
		}

		regions = append(regions, ClassifiedRegion{
			Label:     label,
			Metrics:   m,
			Polygon:   c.Simplified.Clone(),
			Anchor:    anchor,
			Bounds:    c.Simplified.Bounds(),
			FillColor: c.FillColor,
		})

		a.logger.Debug("classified region",
			"index", i,
			"label", label.String(),
			"boundary_points", len(c.Boundary),
			"vertices", m.VertexCount,
			"circularity", m.Circularity,
			"aspect", m.BoundingAspectRatio)
	}

	return &AnalysisResult{
		Regions:     regions,
		ObjectCount: len(regions),
	}
}

// Analyze classifies candidates with the given options and no logging.
func Analyze(candidates []Candidate, opts Options) *AnalysisResult {
	return NewAnalyzer(opts, nil).Analyze(candidates)
}
