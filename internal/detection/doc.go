// Package detection classifies the shapes found in an image.
//
// The package is the decision layer of the shape analyzer. It receives
// candidate regions (a raw traced boundary with its area and perimeter, plus
// a simplified polygon), measures each survivor with the geometry package and
// assigns it a ShapeLabel using a small set of geometric heuristics.
//
// # Pipeline
//
// Analysis of a single image runs in four steps:
//
//  1. Segmentation: the image is binarized and the outer boundary of every
//     connected foreground component is traced and simplified (package segment).
//  2. Filtering: candidates whose raw area is below MinArea are dropped.
//  3. Feature extraction: area and perimeter come from the raw boundary;
//     vertex count and bounding aspect ratio come from the simplified polygon.
//  4. Classification: the first matching rule of Thresholds.Classify wins.
//
// AnalyzeImage runs all four steps. Analyze runs steps 2-4 on candidates
// produced elsewhere, and never touches pixels.
//
// # Classification Rules
//
// Rules are evaluated in order:
//
//   - circularity > CircularityCutoff (default 0.85): Circle
//   - 3 vertices: Triangle
//   - 4 vertices: Square when SquareAspectMin <= aspect <= SquareAspectMax
//     (default 0.95 to 1.05), otherwise Rectangle
//   - 5, 6, 7 or 8 vertices: Pentagon, Hexagon, Heptagon, Octagon
//   - anything else: Polygon
//
// The circularity test comes first, so a many-sided smooth outline is a
// Circle even though its simplified polygon may have any vertex count.
//
// # Output
//
// Results keep discovery order. ToAnnotations turns a result into
// label/anchor/outline triples for renderers, and SummaryLine and CountLine
// produce the plain-text report lines:
//
//	Shape: Square | Area: 9801 | Perimeter: 396
//	Total Objects Detected: 1
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Boundary points are pixel centers
package detection
