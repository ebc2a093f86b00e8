package report

import (
	"encoding/json"
	"io"
)

// JSONWriter outputs documents as JSON for tool integration.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printing.
	indent bool

	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables indented output with the given prefix and indent.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint indents output with two spaces.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs one document as a JSON object.
func (w *JSONWriter) Write(doc *Document) (int, error) {
	return w.writeJSON(doc)
}

// WriteAll outputs the documents as a JSON array, even when there is only one.
func (w *JSONWriter) WriteAll(docs []*Document) (int, error) {
	if docs == nil {
		docs = make([]*Document, 0)
	}
	return w.writeJSON(docs)
}

func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
