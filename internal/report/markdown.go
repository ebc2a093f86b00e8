package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/ironsheep/shape-analyzer/internal/detection"
)

// MarkdownWriter outputs reports in Markdown format, one section per image.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs a report containing a single image section.
func (w *MarkdownWriter) Write(doc *Document) (int, error) {
	return w.WriteAll([]*Document{doc})
}

// WriteAll outputs one report with an overview table and a section per image.
func (w *MarkdownWriter) WriteAll(docs []*Document) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, docs)
	for _, doc := range docs {
		w.writeDocument(md, doc)
	}

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the overview table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, docs []*Document) {
	md.H1("Shape Analysis Report")
	md.PlainText("")

	total, failed := 0, 0
	for _, doc := range docs {
		if doc.Error != "" {
			failed++
			continue
		}
		if doc.Result != nil {
			total += doc.Result.ObjectCount
		}
	}

	rows := [][]string{
		{"Images", strconv.Itoa(len(docs))},
		{"Total Objects", strconv.Itoa(total)},
	}
	if failed > 0 {
		rows = append(rows, []string{"Failed", strconv.Itoa(failed)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeDocument writes the section for one image.
func (w *MarkdownWriter) writeDocument(md *markdown.Markdown, doc *Document) {
	md.H2(doc.Source)
	md.PlainText("")

	if doc.Error != "" {
		md.Cautionf("Analysis failed: %s", doc.Error)
		md.PlainText("")
		return
	}

	rows := [][]string{
		{"Dimensions", fmt.Sprintf("%dx%d", doc.Width, doc.Height)},
		{"Objects", strconv.Itoa(objectCount(doc.Result))},
	}
	if doc.Annotated != "" {
		rows = append(rows, []string{"Annotated", doc.Annotated})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if objectCount(doc.Result) == 0 {
		md.Tip("No shapes detected.")
		md.PlainText("")
		return
	}

	w.writeRegions(md, doc.Result)
	w.writePieChart(md, doc.Result)
	md.PlainText(detection.CountLine(doc.Result))
	md.PlainText("")
}

// writeRegions writes the per-region table in discovery order.
func (w *MarkdownWriter) writeRegions(md *markdown.Markdown, result *detection.AnalysisResult) {
	rows := make([][]string, 0, len(result.Regions))
	for i, r := range result.Regions {
		fill := r.FillColor
		if fill == "" {
			fill = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			r.Label.String(),
			strconv.Itoa(int(r.Metrics.Area)),
			strconv.Itoa(int(r.Metrics.Perimeter)),
			strconv.Itoa(r.Metrics.VertexCount),
			strconv.FormatFloat(r.Metrics.Circularity, 'f', 3, 64),
			strconv.FormatFloat(r.Metrics.BoundingAspectRatio, 'f', 3, 64),
			fill,
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"#", "Shape", "Area", "Perimeter", "Vertices", "Circularity", "Aspect", "Fill"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of the label distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, result *detection.AnalysisResult) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Shape Distribution"),
		piechart.WithShowData(true),
	)
	for _, c := range CountLabels(result) {
		chart.LabelAndIntValue(c.Label.String(), uint64(c.Count))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func objectCount(result *detection.AnalysisResult) int {
	if result == nil {
		return 0
	}
	return result.ObjectCount
}
