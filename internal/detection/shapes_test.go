package detection

import (
	"encoding/json"
	"testing"

	"github.com/ironsheep/shape-analyzer/internal/geometry"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		metrics geometry.RegionMetrics
		want    ShapeLabel
	}{
		{"circle wins over vertex count", geometry.RegionMetrics{VertexCount: 4, Circularity: 0.9, BoundingAspectRatio: 1}, Circle},
		{"circle with many vertices", geometry.RegionMetrics{VertexCount: 16, Circularity: 0.99, BoundingAspectRatio: 1}, Circle},
		{"cutoff is exclusive", geometry.RegionMetrics{VertexCount: 4, Circularity: 0.85, BoundingAspectRatio: 1}, Square},
		{"triangle", geometry.RegionMetrics{VertexCount: 3, Circularity: 0.6, BoundingAspectRatio: 1.2}, Triangle},
		{"square exact", geometry.RegionMetrics{VertexCount: 4, Circularity: 0.78, BoundingAspectRatio: 1.0}, Square},
		{"square lower bound", geometry.RegionMetrics{VertexCount: 4, Circularity: 0.78, BoundingAspectRatio: DefaultSquareAspectMin}, Square},
		{"square upper bound", geometry.RegionMetrics{VertexCount: 4, Circularity: 0.78, BoundingAspectRatio: DefaultSquareAspectMax}, Square},
		{"rectangle below band", geometry.RegionMetrics{VertexCount: 4, Circularity: 0.7, BoundingAspectRatio: 0.94}, Rectangle},
		{"rectangle above band", geometry.RegionMetrics{VertexCount: 4, Circularity: 0.7, BoundingAspectRatio: 1.06}, Rectangle},
		{"wide rectangle", geometry.RegionMetrics{VertexCount: 4, Circularity: 0.6, BoundingAspectRatio: 2.0}, Rectangle},
		{"degenerate bounds", geometry.RegionMetrics{VertexCount: 4, BoundingAspectRatio: 1.0, DegenerateBounds: true}, Rectangle},
		{"pentagon", geometry.RegionMetrics{VertexCount: 5, Circularity: 0.8}, Pentagon},
		{"hexagon", geometry.RegionMetrics{VertexCount: 6, Circularity: 0.8}, Hexagon},
		{"heptagon", geometry.RegionMetrics{VertexCount: 7, Circularity: 0.8}, Heptagon},
		{"octagon", geometry.RegionMetrics{VertexCount: 8, Circularity: 0.8}, Octagon},
		{"nine vertices", geometry.RegionMetrics{VertexCount: 9, Circularity: 0.5}, Polygon},
		{"many vertices", geometry.RegionMetrics{VertexCount: 40, Circularity: 0.5}, Polygon},
		{"two vertices", geometry.RegionMetrics{VertexCount: 2}, Polygon},
		{"no vertices", geometry.RegionMetrics{}, Polygon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.metrics); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify_TotalForAnyVertexCount(t *testing.T) {
	valid := make(map[ShapeLabel]bool)
	for _, l := range Labels() {
		valid[l] = true
	}

	for n := 0; n <= 64; n++ {
		for _, circ := range []float64{0, 0.5, 0.85, 0.86, 1} {
			for _, aspect := range []float64{0.5, 1, 3} {
				m := geometry.RegionMetrics{VertexCount: n, Circularity: circ, BoundingAspectRatio: aspect}
				if l := Classify(m); !valid[l] {
					t.Fatalf("Classify(%+v) returned invalid label %d", m, int(l))
				}
			}
		}
	}
}

func TestThresholds_Classify_Custom(t *testing.T) {
	th := NewThresholds(0.95, 0.2)

	// Not a circle under a stricter cutoff.
	m := geometry.RegionMetrics{VertexCount: 4, Circularity: 0.9, BoundingAspectRatio: 1.15}
	if got := th.Classify(m); got != Square {
		t.Errorf("got %v, want Square with a wider square band", got)
	}
	if got := Classify(m); got != Circle {
		t.Errorf("defaults: got %v, want Circle", got)
	}
}

func TestNewThresholds_MatchesDefaults(t *testing.T) {
	got := NewThresholds(DefaultCircularityCutoff, DefaultSquareTolerance)
	want := DefaultThresholds()
	if got.CircularityCutoff != want.CircularityCutoff {
		t.Errorf("cutoff = %v, want %v", got.CircularityCutoff, want.CircularityCutoff)
	}
	if got.SquareAspectMin != want.SquareAspectMin || got.SquareAspectMax != want.SquareAspectMax {
		t.Errorf("square band = [%v, %v], want [%v, %v]",
			got.SquareAspectMin, got.SquareAspectMax, want.SquareAspectMin, want.SquareAspectMax)
	}
}

func TestShapeLabel_String(t *testing.T) {
	want := []string{"Circle", "Triangle", "Square", "Rectangle", "Pentagon", "Hexagon", "Heptagon", "Octagon", "Polygon"}
	for i, l := range Labels() {
		if l.String() != want[i] {
			t.Errorf("label %d: String() = %q, want %q", i, l.String(), want[i])
		}
	}
	if got := ShapeLabel(0).String(); got != "ShapeLabel(0)" {
		t.Errorf("zero label String() = %q", got)
	}
}

func TestShapeLabel_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Label ShapeLabel `json:"label"`
	}{Hexagon})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"label":"Hexagon"}` {
		t.Errorf("got %s", data)
	}

	var decoded struct {
		Label ShapeLabel `json:"label"`
	}
	if err := json.Unmarshal([]byte(`{"label":"square"}`), &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.Label != Square {
		t.Errorf("decoded %v, want Square", decoded.Label)
	}

	if err := json.Unmarshal([]byte(`{"label":"blob"}`), &decoded); err == nil {
		t.Error("expected error for unknown label")
	}
	if _, err := json.Marshal(ShapeLabel(42)); err == nil {
		t.Error("expected error marshaling invalid label")
	}
}
