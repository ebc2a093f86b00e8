package detection

import (
	"fmt"
	"image"

	"github.com/ironsheep/shape-analyzer/internal/segment"
)

// CandidatesFromRegions converts segmented regions into classifier input.
// Traced vertices are pixel centers, so every candidate has PixelCenters set.
func CandidatesFromRegions(regions []segment.Region) []Candidate {
	candidates := make([]Candidate, 0, len(regions))
	for _, r := range regions {
		candidates = append(candidates, Candidate{
			Boundary:     r.Boundary,
			Area:         r.Area,
			Perimeter:    r.Perimeter,
			Simplified:   r.Simplified,
			FillColor:    r.Fill,
			PixelCenters: true,
		})
	}
	return candidates
}

// AnalyzeImage segments an image and classifies every region found.
//
// Parameters:
//   - img: Source image. Dark shapes on a light background are foreground.
//   - seg: Binarization and simplification settings.
//
// Returns:
//   - *AnalysisResult: Classified regions in discovery order.
//   - error: Non-nil if the image is empty.
func (a *Analyzer) AnalyzeImage(img image.Image, seg segment.Options) (*AnalysisResult, error) {
	regions, err := segment.Extract(img, seg)
	if err != nil {
		return nil, fmt.Errorf("failed to segment image: %w", err)
	}

	a.logger.Debug("segmented image",
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy(),
		"regions", len(regions))

	return a.Analyze(CandidatesFromRegions(regions)), nil
}

// AnalyzeImage segments and classifies an image with the given options and
// no logging.
func AnalyzeImage(img image.Image, seg segment.Options, opts Options) (*AnalysisResult, error) {
	return NewAnalyzer(opts, nil).AnalyzeImage(img, seg)
}
