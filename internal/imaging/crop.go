package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/shape-analyzer/internal/geometry"
)

// CropShape cuts the bounding box of a classified shape out of img, grown by
// padding pixels on every side and clipped to the image.
//
// Bounds are relative to img.Bounds().Min, matching analysis output. A scale
// other than 1 resizes the crop with a Lanczos filter, which helps when
// inspecting small shapes. The crop is returned PNG-encoded.
func CropShape(img image.Image, b geometry.Bounds, padding int, scale float64) (*AnnotatedImageResult, error) {
	if padding < 0 {
		padding = 0
	}
	origin := img.Bounds().Min

	r := image.Rect(
		int(math.Floor(b.MinX))-padding,
		int(math.Floor(b.MinY))-padding,
		int(math.Ceil(b.MaxX))+1+padding,
		int(math.Ceil(b.MaxY))+1+padding,
	).Add(origin).Intersect(img.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("shape bounds (%.0f,%.0f)-(%.0f,%.0f) outside image",
			b.MinX, b.MinY, b.MaxX, b.MaxY)
	}

	cropped := imaging.Crop(img, r)

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth < 1 {
			newWidth = 1
		}
		if newHeight < 1 {
			newHeight = 1
		}
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	return EncodePNGBase64(cropped)
}
