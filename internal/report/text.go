package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ironsheep/shape-analyzer/internal/detection"
)

// TextWriter outputs the plain summary: one "Shape: ..." line per region
// followed by "Total Objects Detected: <n>".
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the summary lines of one document.
func (w *TextWriter) Write(doc *Document) (int, error) {
	var sb strings.Builder
	w.writeDocument(&sb, doc)
	return io.WriteString(w.output, sb.String())
}

// WriteAll outputs each document's summary. With more than one document,
// every block is headed by its source path and blocks are separated by a
// blank line.
func (w *TextWriter) WriteAll(docs []*Document) (int, error) {
	if len(docs) == 1 {
		return w.Write(docs[0])
	}

	var sb strings.Builder
	for i, doc := range docs {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s:\n", doc.Source)
		w.writeDocument(&sb, doc)
	}
	return io.WriteString(w.output, sb.String())
}

func (w *TextWriter) writeDocument(sb *strings.Builder, doc *Document) {
	if doc.Error != "" {
		fmt.Fprintf(sb, "Error: %s\n", doc.Error)
		return
	}
	for _, line := range detection.SummaryLines(doc.Result) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if doc.Annotated != "" {
		fmt.Fprintf(sb, "Annotated image: %s\n", doc.Annotated)
	}
}
