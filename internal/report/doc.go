// Package report renders shape analysis results for people and tools.
//
// Three writers share the Writer interface:
//   - TextWriter: the plain summary lines, one per shape, then the count line
//   - JSONWriter: the Document structure as JSON, compact or indented
//   - MarkdownWriter: a section per image with a region table and a
//     mermaid pie chart of the label distribution
//
// MultiWriter fans a document out to several writers, for example a
// terminal and a report file.
package report
