package segment

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// FillColor returns the mean colour of the region's foreground pixels as a
// "#rrggbb" hex string. Pixels are counted when they are foreground in the
// mask and inside the simplified outline; a region whose outline has fewer
// than three vertices uses every foreground pixel in its bounds.
//
// The mask is in image-relative coordinates (origin at img.Bounds().Min).
// An empty string is returned when no pixel qualifies.
func FillColor(img image.Image, mask *Mask, r Region) string {
	origin := img.Bounds().Min

	var ring orb.Ring
	if len(r.Simplified) >= 3 {
		ring = r.Simplified.Ring()
	}

	var sr, sg, sb float64
	n := 0
	for y := r.Bounds.Min.Y; y < r.Bounds.Max.Y; y++ {
		for x := r.Bounds.Min.X; x < r.Bounds.Max.X; x++ {
			if !mask.At(x, y) {
				continue
			}
			if ring != nil && !planar.RingContains(ring, orb.Point{float64(x), float64(y)}) {
				continue
			}
			c, ok := colorful.MakeColor(img.At(origin.X+x, origin.Y+y))
			if !ok {
				// Fully transparent.
				continue
			}
			sr += c.R
			sg += c.G
			sb += c.B
			n++
		}
	}
	if n == 0 {
		return ""
	}

	mean := colorful.Color{R: sr / float64(n), G: sg / float64(n), B: sb / float64(n)}
	return mean.Clamped().Hex()
}
