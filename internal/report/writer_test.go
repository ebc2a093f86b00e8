package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ironsheep/shape-analyzer/internal/detection"
	"github.com/ironsheep/shape-analyzer/internal/geometry"
)

// createTestDocument returns a document with a square and a rectangle.
func createTestDocument() *Document {
	square := geometry.Polygon{{X: 10, Y: 10}, {X: 40, Y: 10}, {X: 40, Y: 40}, {X: 10, Y: 40}}
	rect := geometry.Polygon{{X: 60, Y: 10}, {X: 120, Y: 10}, {X: 120, Y: 30}, {X: 60, Y: 30}}

	return &Document{
		Source: "shapes.png",
		Width:  200,
		Height: 100,
		Result: &detection.AnalysisResult{
			Regions: []detection.ClassifiedRegion{
				{
					Label:     detection.Square,
					Metrics:   geometry.RegionMetrics{Area: 900.7, Perimeter: 120.2, VertexCount: 4, Circularity: 0.785, BoundingAspectRatio: 1},
					Polygon:   square,
					Anchor:    square[0],
					Bounds:    square.Bounds(),
					FillColor: "#c80000",
				},
				{
					Label:   detection.Rectangle,
					Metrics: geometry.RegionMetrics{Area: 1200, Perimeter: 160, VertexCount: 4, Circularity: 0.589, BoundingAspectRatio: 3},
					Polygon: rect,
					Anchor:  rect[0],
					Bounds:  rect.Bounds(),
				},
			},
			ObjectCount: 2,
		},
	}
}

func emptyDocument(source string) *Document {
	return &Document{
		Source: source,
		Width:  50,
		Height: 50,
		Result: &detection.AnalysisResult{Regions: []detection.ClassifiedRegion{}, ObjectCount: 0},
	}
}

// TestTextWriter tests the plain summary writer.
func TestTextWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes summary and count lines", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewTextWriter(&buf).Write(createTestDocument())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "Shape: Square | Area: 900 | Perimeter: 120\n" +
			"Shape: Rectangle | Area: 1200 | Perimeter: 160\n" +
			"Total Objects Detected: 2\n"
		if buf.String() != want {
			t.Errorf("output = %q, want %q", buf.String(), want)
		}
		if n != len(want) {
			t.Errorf("n = %d, want %d", n, len(want))
		}
	})

	t.Run("empty result writes only the count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewTextWriter(&buf).Write(emptyDocument("blank.png")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != "Total Objects Detected: 0\n" {
			t.Errorf("output = %q", buf.String())
		}
	})

	t.Run("single document in WriteAll has no header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewTextWriter(&buf).WriteAll([]*Document{emptyDocument("blank.png")}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), "blank.png") {
			t.Errorf("unexpected source header in %q", buf.String())
		}
	})

	t.Run("multiple documents are headed by source", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		docs := []*Document{
			createTestDocument(),
			{Source: "broken.png", Error: "failed to decode image: bad data"},
		}
		if _, err := NewTextWriter(&buf).WriteAll(docs); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.HasPrefix(output, "shapes.png:\n") {
			t.Errorf("expected first header, got %q", output)
		}
		if !strings.Contains(output, "\n\nbroken.png:\nError: failed to decode image: bad data\n") {
			t.Errorf("expected error block, got %q", output)
		}
	})

	t.Run("annotated path is reported", func(t *testing.T) {
		t.Parallel()

		doc := createTestDocument()
		doc.Annotated = "out/shapes_shapes.png"

		var buf bytes.Buffer
		if _, err := NewTextWriter(&buf).Write(doc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasSuffix(buf.String(), "Annotated image: out/shapes_shapes.png\n") {
			t.Errorf("output = %q", buf.String())
		}
	})
}

// TestJSONWriter tests the JSON writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes a decodable document", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestDocument()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got Document
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("failed to decode output: %v", err)
		}
		if got.Source != "shapes.png" || got.Width != 200 || got.Height != 100 {
			t.Errorf("header fields = %+v", got)
		}
		if got.Result == nil || got.Result.ObjectCount != 2 {
			t.Fatalf("result = %+v", got.Result)
		}
		if got.Result.Regions[0].Label != detection.Square {
			t.Errorf("first label = %v, want Square", got.Result.Regions[0].Label)
		}
		if got.Result.Regions[0].FillColor != "#c80000" {
			t.Errorf("fill = %q", got.Result.Regions[0].FillColor)
		}
	})

	t.Run("labels are written as names", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestDocument()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), `"label":"Rectangle"`) {
			t.Errorf("expected label name in %s", buf.String())
		}
	})

	t.Run("compact output is a single line", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestDocument()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Errorf("expected one trailing newline, got %q", buf.String())
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestDocument()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"source\": \"shapes.png\"") {
			t.Errorf("expected indented output, got %s", buf.String())
		}
	})

	t.Run("WriteAll writes an array", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		docs := []*Document{createTestDocument(), emptyDocument("blank.png")}
		if _, err := NewJSONWriter(&buf).WriteAll(docs); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got []Document
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("failed to decode output: %v", err)
		}
		if len(got) != 2 || got[1].Source != "blank.png" {
			t.Errorf("documents = %+v", got)
		}
	})

	t.Run("WriteAll with nil writes an empty array", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).WriteAll(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != "[]\n" {
			t.Errorf("output = %q", buf.String())
		}
	})
}

// TestMarkdownWriter tests the Markdown writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes title, section and regions", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewMarkdownWriter(&buf).Write(createTestDocument())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n == 0 {
			t.Error("expected non-zero byte count")
		}

		output := buf.String()
		for _, want := range []string{
			"# Shape Analysis Report",
			"## shapes.png",
			"200x100",
			"Circularity",
			"Square",
			"Rectangle",
			"#c80000",
			"0.785",
			"Total Objects Detected: 2",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("writes mermaid pie chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestDocument()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "```mermaid") {
			t.Error("expected mermaid code block")
		}
		if !strings.Contains(output, "Shape Distribution") {
			t.Error("expected pie chart title")
		}
	})

	t.Run("empty result writes a tip", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(emptyDocument("blank.png")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "No shapes detected.") {
			t.Error("expected tip for empty result")
		}
		if strings.Contains(output, "```mermaid") {
			t.Error("unexpected pie chart for empty result")
		}
	})

	t.Run("failed document writes caution", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		docs := []*Document{
			createTestDocument(),
			{Source: "broken.png", Error: "failed to decode image"},
		}
		if _, err := NewMarkdownWriter(&buf).WriteAll(docs); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "## broken.png") {
			t.Error("expected section for failed image")
		}
		if !strings.Contains(output, "Analysis failed: failed to decode image") {
			t.Error("expected failure message")
		}
		if !strings.Contains(output, "Failed") {
			t.Error("expected failed row in overview")
		}
	})
}

// failingWriter is a Writer that always fails.
type failingWriter struct{}

func (failingWriter) Write(*Document) (int, error)      { return 0, errors.New("write failed") }
func (failingWriter) WriteAll([]*Document) (int, error) { return 0, errors.New("write failed") }

// TestMultiWriter tests fan-out to several writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to every writer", func(t *testing.T) {
		t.Parallel()

		var text, js bytes.Buffer
		m := NewMultiWriter(NewTextWriter(&text), NewJSONWriter(&js))

		n, err := m.Write(createTestDocument())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != text.Len()+js.Len() {
			t.Errorf("n = %d, want %d", n, text.Len()+js.Len())
		}
		if text.Len() == 0 || js.Len() == 0 {
			t.Error("expected both writers to receive output")
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		var text bytes.Buffer
		m := NewMultiWriter(failingWriter{}, NewTextWriter(&text))

		if _, err := m.WriteAll([]*Document{createTestDocument()}); err == nil {
			t.Fatal("expected error")
		}
		if text.Len() != 0 {
			t.Error("expected later writers to be skipped")
		}
	})
}

// TestCountLabels tests the label tally.
func TestCountLabels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *detection.AnalysisResult
		want   []LabelCount
	}{
		{
			name:   "nil result",
			result: nil,
			want:   []LabelCount{},
		},
		{
			name: "ordered by label",
			result: &detection.AnalysisResult{
				Regions: []detection.ClassifiedRegion{
					{Label: detection.Polygon},
					{Label: detection.Square},
					{Label: detection.Circle},
					{Label: detection.Square},
				},
				ObjectCount: 4,
			},
			want: []LabelCount{
				{Label: detection.Circle, Count: 1},
				{Label: detection.Square, Count: 2},
				{Label: detection.Polygon, Count: 1},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CountLabels(tt.result)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
