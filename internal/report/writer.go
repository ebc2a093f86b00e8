package report

import (
	"io"

	"github.com/ironsheep/shape-analyzer/internal/detection"
)

// Document is the analysis of one image together with where it came from.
type Document struct {
	// Source is the image path as given by the caller.
	Source string `json:"source"`

	// Width and Height are the image dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Result holds the classified regions. It is nil when Error is set.
	Result *detection.AnalysisResult `json:"result,omitempty"`

	// Annotated is the path of the annotated copy, when one was written.
	Annotated string `json:"annotated,omitempty"`

	// Error describes why the image could not be analyzed.
	Error string `json:"error,omitempty"`
}

// Writer outputs analysis documents.
type Writer interface {
	// Write outputs a single document.
	// Returns the number of bytes written and any error encountered.
	Write(doc *Document) (int, error)

	// WriteAll outputs several documents as one report.
	WriteAll(docs []*Document) (int, error)
}

// MultiWriter writes to multiple Writers in turn.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the document to every Writer, stopping on the first error.
func (m *MultiWriter) Write(doc *Document) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(doc)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteAll outputs the documents to every Writer, stopping on the first error.
func (m *MultiWriter) WriteAll(docs []*Document) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteAll(docs)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// LabelCount is how many regions of a result carry one label.
type LabelCount struct {
	Label detection.ShapeLabel `json:"label"`
	Count int                  `json:"count"`
}

// CountLabels tallies the labels of a result in detection.Labels order.
// Labels with no regions are omitted.
func CountLabels(result *detection.AnalysisResult) []LabelCount {
	counts := make([]LabelCount, 0)
	if result == nil {
		return counts
	}

	tally := make(map[detection.ShapeLabel]int)
	for _, r := range result.Regions {
		tally[r.Label]++
	}
	for _, label := range detection.Labels() {
		if n := tally[label]; n > 0 {
			counts = append(counts, LabelCount{Label: label, Count: n})
		}
	}
	return counts
}

// baseWriter holds the destination shared by every writer.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
