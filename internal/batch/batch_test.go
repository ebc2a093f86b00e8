package batch

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/shape-analyzer/internal/config"
	"github.com/ironsheep/shape-analyzer/internal/detection"
)

// writeShapesPNG writes a white w x h image with a black square of side
// size at (10,10) and returns its path.
func writeShapesPNG(t *testing.T, dir, name string, w, h, size int) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{255, 255, 255, 255}
			if x >= 10 && x < 10+size && y >= 10 && y < 10+size {
				c = color.NRGBA{0, 0, 0, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	return path
}

func TestProcess(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := []string{
		writeShapesPNG(t, dir, "one.png", 80, 80, 40),
		writeShapesPNG(t, dir, "blank.png", 60, 40, 0),
		filepath.Join(dir, "missing.png"),
		writeShapesPNG(t, dir, "two.png", 100, 100, 60),
	}

	p := NewProcessor(config.Default(), Options{Jobs: 2}, nil)
	docs, err := p.Process(context.Background(), paths)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != len(paths) {
		t.Fatalf("got %d documents, want %d", len(docs), len(paths))
	}

	for i, doc := range docs {
		if doc.Source != paths[i] {
			t.Errorf("docs[%d].Source = %s, want %s", i, doc.Source, paths[i])
		}
	}

	if docs[0].Result == nil || docs[0].Result.ObjectCount != 1 {
		t.Fatalf("one.png result = %+v", docs[0].Result)
	}
	if docs[0].Result.Regions[0].Label != detection.Square {
		t.Errorf("one.png label = %v, want Square", docs[0].Result.Regions[0].Label)
	}
	if docs[0].Width != 80 || docs[0].Height != 80 {
		t.Errorf("one.png size = %dx%d", docs[0].Width, docs[0].Height)
	}

	if docs[1].Error != "" || docs[1].Result == nil || docs[1].Result.ObjectCount != 0 {
		t.Errorf("blank.png = %+v", docs[1])
	}

	if !strings.Contains(docs[2].Error, "failed to open image") {
		t.Errorf("missing.png error = %q", docs[2].Error)
	}
	if docs[2].Result != nil {
		t.Error("missing.png should have no result")
	}

	if docs[3].Result == nil || docs[3].Result.ObjectCount != 1 {
		t.Errorf("two.png result = %+v", docs[3].Result)
	}

	if got := Failed(docs); got != 1 {
		t.Errorf("Failed = %d, want 1", got)
	}

	// Images are released once analyzed.
	if p.cache.Len() != 0 {
		t.Errorf("cache holds %d images after the batch", p.cache.Len())
	}
}

func TestProcess_Annotate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		svg  bool
		ext  string
	}{
		{"png", false, ".png"},
		{"svg", true, ".svg"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			src := writeShapesPNG(t, dir, "input.png", 80, 80, 40)
			outDir := filepath.Join(dir, "annotated", "nested")

			p := NewProcessor(config.Default(), Options{Jobs: 1, AnnotateDir: outDir, SVG: tt.svg}, nil)
			docs, err := p.Process(context.Background(), []string{src})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := filepath.Join(outDir, "input_shapes"+tt.ext)
			if docs[0].Annotated != want {
				t.Errorf("Annotated = %s, want %s", docs[0].Annotated, want)
			}

			data, err := os.ReadFile(want)
			if err != nil {
				t.Fatalf("annotated file not written: %v", err)
			}
			if tt.svg {
				if !bytes.Contains(data, []byte("<svg")) || !bytes.Contains(data, []byte("Square")) {
					t.Errorf("unexpected svg content: %s", data)
				}
				return
			}
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("annotated png does not decode: %v", err)
			}
			if img.Bounds().Dx() != 80 || img.Bounds().Dy() != 80 {
				t.Errorf("annotated size = %v", img.Bounds())
			}
		})
	}
}

func TestProcess_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := []string{
		writeShapesPNG(t, dir, "a.png", 40, 40, 20),
		writeShapesPNG(t, dir, "b.png", 40, 40, 20),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	docs, err := NewProcessor(config.Default(), Options{Jobs: 1}, nil).Process(ctx, paths)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	for i, doc := range docs {
		if doc == nil || doc.Error == "" {
			t.Errorf("docs[%d] = %+v, want a cancellation error", i, doc)
		}
	}
}

func TestProcess_Logs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeShapesPNG(t, dir, "logged.png", 80, 80, 40)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if _, err := NewProcessor(config.Default(), Options{}, logger).Process(context.Background(), []string{src}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"starting batch", "image analyzed", "objects=1", "batch complete"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log output missing %q", want)
		}
	}
}

func TestNewProcessor_Jobs(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Jobs = 3

	tests := []struct {
		name string
		jobs int
		want int
	}{
		{"explicit", 8, 8},
		{"zero uses config", 0, 3},
		{"negative uses config", -1, 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := NewProcessor(cfg, Options{Jobs: tt.jobs}, nil)
			if p.opts.Jobs != tt.want {
				t.Errorf("Jobs = %d, want %d", p.opts.Jobs, tt.want)
			}
		})
	}
}

func TestAnnotatedPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		svg  bool
		want string
	}{
		{"/data/shapes.png", false, filepath.Join("out", "shapes_shapes.png")},
		{"photo.JPG", false, filepath.Join("out", "photo_shapes.png")},
		{"scan.tiff", true, filepath.Join("out", "scan_shapes.svg")},
		{"noext", false, filepath.Join("out", "noext_shapes.png")},
	}

	for _, tt := range tests {
		if got := AnnotatedPath("out", tt.src, tt.svg); got != tt.want {
			t.Errorf("AnnotatedPath(%q, %v) = %s, want %s", tt.src, tt.svg, got, tt.want)
		}
	}
}

func TestAnnotatedPaths_Duplicates(t *testing.T) {
	t.Parallel()

	got := annotatedPaths("out", []string{"a/x.png", "b/x.png", "c/y.png"}, false)
	want := []string{
		filepath.Join("out", "x_shapes_1.png"),
		filepath.Join("out", "x_shapes_2.png"),
		filepath.Join("out", "y_shapes.png"),
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
