package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/ironsheep/shape-analyzer/internal/detection"
	"github.com/ironsheep/shape-analyzer/internal/geometry"
)

// Default annotation style.
const (
	DefaultOutlineColor = "#00FF00"
	DefaultLabelColor   = "#FF0000"
	DefaultOutlineWidth = 2
)

// RenderOptions controls how annotations are drawn.
type RenderOptions struct {
	// OutlineColor is the polygon stroke colour as "#RRGGBB".
	OutlineColor string `json:"outline_color"`

	// LabelColor is the label text colour as "#RRGGBB".
	LabelColor string `json:"label_color"`

	// OutlineWidth is the stroke width in pixels. Values below 1 are treated as 1.
	OutlineWidth int `json:"outline_width"`
}

// DefaultRenderOptions returns green 2px outlines with red labels.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		OutlineColor: DefaultOutlineColor,
		LabelColor:   DefaultLabelColor,
		OutlineWidth: DefaultOutlineWidth,
	}
}

// AnnotatedImageResult is an annotated image encoded for transport.
type AnnotatedImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// labelFace is the bitmap font used for shape labels.
var labelFace font.Face = basicfont.Face7x13

// RenderAnnotations draws every annotation over a copy of img.
//
// Each outline is drawn as a closed polyline and its label is written with
// the text baseline at the anchor point. Anchors too close to the top edge
// are pushed down so the label stays inside the image. Annotation
// coordinates are relative to img.Bounds().Min; the returned image always
// starts at (0, 0). The source image is not modified.
func RenderAnnotations(img image.Image, annotations []detection.Annotation, opts RenderOptions) (*image.NRGBA, error) {
	outline, err := ParseHexColor(opts.OutlineColor)
	if err != nil {
		return nil, fmt.Errorf("outline color: %w", err)
	}
	label, err := ParseHexColor(opts.LabelColor)
	if err != nil {
		return nil, fmt.Errorf("label color: %w", err)
	}
	width := opts.OutlineWidth
	if width < 1 {
		width = 1
	}

	dst := imaging.Clone(img)

	z := vector.NewRasterizer(0, 0)
	stroke := image.NewUniform(outline)
	for _, a := range annotations {
		strokePolygon(z, dst, a.Outline, float64(width), stroke)
	}

	// Labels go on top of every outline.
	ascent := labelFace.Metrics().Ascent.Ceil()
	for _, a := range annotations {
		x, y := round(a.Anchor.X), round(a.Anchor.Y)
		if y < ascent {
			y = ascent
		}
		d := &font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(label),
			Face: labelFace,
			Dot:  fixed.P(x, y),
		}
		d.DrawString(a.Label)
	}

	return dst, nil
}

// EncodePNGBase64 encodes img as PNG for embedding in a JSON response.
func EncodePNGBase64(img image.Image) (*AnnotatedImageResult, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := img.Bounds()
	return &AnnotatedImageResult{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// SaveImage writes img to path. The format follows the file extension.
func SaveImage(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// strokePolygon strokes the closed outline of poly onto dst. Vertices are
// pixel centers. A two-point outline is a single segment and a one-point
// outline is a width×width dot.
func strokePolygon(z *vector.Rasterizer, dst *image.NRGBA, poly geometry.Polygon, width float64, src image.Image) {
	n := len(poly)
	switch n {
	case 0:
		return
	case 1, 2:
		strokeSegment(z, dst, poly[0], poly[n-1], width, src)
		return
	}
	for i := 0; i < n; i++ {
		strokeSegment(z, dst, poly[i], poly[(i+1)%n], width, src)
	}
}

// strokeSegment fills the rectangle covering segment pq with square caps,
// so consecutive segments of an outline meet without gaps at the corners.
//
// Each segment is rasterized on its own, clipped to its bounding box, so
// overlapping corners never cancel out and the cost does not grow with the
// image size.
func strokeSegment(z *vector.Rasterizer, dst *image.NRGBA, p, q geometry.Point2D, width float64, src image.Image) {
	// Odd widths are centred on the pixel; even widths extend one pixel
	// further right and down, so axis-aligned strokes cover whole pixels.
	off := 0.5
	if int(width)%2 == 0 {
		off = 1
	}
	ax, ay := p.X+off, p.Y+off
	bx, by := q.X+off, q.Y+off

	ux, uy := 1.0, 0.0
	if l := math.Hypot(bx-ax, by-ay); l > 0 {
		ux, uy = (bx-ax)/l, (by-ay)/l
	}
	hw := width / 2
	ax, ay = ax-ux*hw, ay-uy*hw
	bx, by = bx+ux*hw, by+uy*hw
	nx, ny := -uy*hw, ux*hw

	corners := [4][2]float64{
		{ax + nx, ay + ny},
		{bx + nx, by + ny},
		{bx - nx, by - ny},
		{ax - nx, ay - ny},
	}

	minX, minY := corners[0][0], corners[0][1]
	maxX, maxY := minX, minY
	for _, c := range corners[1:] {
		minX, maxX = math.Min(minX, c[0]), math.Max(maxX, c[0])
		minY, maxY = math.Min(minY, c[1]), math.Max(maxY, c[1])
	}
	box := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	).Intersect(dst.Bounds())
	if box.Empty() {
		return
	}

	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	z.Reset(box.Dx(), box.Dy())
	z.MoveTo(float32(corners[0][0]-ox), float32(corners[0][1]-oy))
	for _, c := range corners[1:] {
		z.LineTo(float32(c[0]-ox), float32(c[1]-oy))
	}
	z.ClosePath()
	z.Draw(dst, box, src, image.Point{})
}

func round(v float64) int {
	return int(math.Round(v))
}
