package imaging

import (
	"bytes"
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/ironsheep/shape-analyzer/internal/detection"
)

// RenderSVG writes the annotations as a standalone SVG document of the given
// size. Each annotation becomes an unfilled polygon followed by its label.
//
// The view box matches the pixel grid, so the SVG can be laid over the source
// image at 1:1 scale.
func RenderSVG(w io.Writer, width, height int, annotations []detection.Annotation, opts RenderOptions) error {
	outline, err := NormalizeHexColor(opts.OutlineColor)
	if err != nil {
		return fmt.Errorf("outline color: %w", err)
	}
	label, err := NormalizeHexColor(opts.LabelColor)
	if err != nil {
		return fmt.Errorf("label color: %w", err)
	}
	strokeWidth := opts.OutlineWidth
	if strokeWidth < 1 {
		strokeWidth = 1
	}

	polyStyle := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%d;stroke-linejoin:miter", outline, strokeWidth)
	textStyle := fmt.Sprintf("fill:%s;font-family:monospace;font-size:13px", label)

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(width, height, 0, 0, width, height)
	for _, a := range annotations {
		if len(a.Outline) > 0 {
			xs := make([]int, len(a.Outline))
			ys := make([]int, len(a.Outline))
			for i, p := range a.Outline {
				xs[i], ys[i] = round(p.X), round(p.Y)
			}
			canvas.Polygon(xs, ys, polyStyle)
		}
		canvas.Text(round(a.Anchor.X), round(a.Anchor.Y), a.Label, textStyle)
	}
	canvas.End()

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write svg: %w", err)
	}
	return nil
}
