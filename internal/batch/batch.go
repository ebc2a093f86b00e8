package batch

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/shape-analyzer/internal/config"
	"github.com/ironsheep/shape-analyzer/internal/detection"
	"github.com/ironsheep/shape-analyzer/internal/imaging"
	"github.com/ironsheep/shape-analyzer/internal/report"
)

// AnnotatedSuffix is appended to the input's base name for annotated output.
const AnnotatedSuffix = "_shapes"

// Options controls a batch run.
type Options struct {
	// Jobs is the maximum number of images processed at once.
	Jobs int

	// AnnotateDir, when set, receives an annotated copy of every image.
	AnnotateDir string

	// SVG writes annotations as an SVG overlay instead of a PNG copy.
	SVG bool
}

// Processor runs the analysis pipeline over a list of images.
type Processor struct {
	cfg      *config.Config
	opts     Options
	logger   *slog.Logger
	analyzer *detection.Analyzer
	cache    *imaging.ImageCache

	mu      sync.Mutex
	results []*report.Document
}

// NewProcessor creates a Processor. A nil logger discards output and a Jobs
// value below 1 falls back to cfg.Jobs.
func NewProcessor(cfg *config.Config, opts Options, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Jobs < 1 {
		opts.Jobs = cfg.Jobs
	}
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	return &Processor{
		cfg:      cfg,
		opts:     opts,
		logger:   logger,
		analyzer: detection.NewAnalyzer(cfg.DetectionOptions(), logger),
		cache:    imaging.NewImageCache(),
	}
}

// Process analyzes every path and returns one Document per path, in order.
//
// Per-image failures are recorded in Document.Error. The returned error is
// only set when ctx is cancelled; documents for images that never started
// then carry the cancellation error.
func (p *Processor) Process(ctx context.Context, paths []string) ([]*report.Document, error) {
	p.logger.Info("starting batch",
		"images", len(paths),
		"jobs", p.opts.Jobs,
	)
	start := time.Now()

	p.results = make([]*report.Document, len(paths))

	var outputs []string
	if p.opts.AnnotateDir != "" {
		if err := os.MkdirAll(p.opts.AnnotateDir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create annotation directory: %w", err)
		}
		outputs = annotatedPaths(p.opts.AnnotateDir, paths, p.opts.SVG)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Jobs)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				p.store(i, &report.Document{Source: path, Error: ctx.Err().Error()})
				return ctx.Err()
			default:
			}

			out := ""
			if outputs != nil {
				out = outputs[i]
			}
			p.store(i, p.processOne(path, out))
			return nil
		})
	}

	err := g.Wait()

	p.logger.Info("batch complete",
		"images", len(paths),
		"elapsed", time.Since(start),
	)
	return p.results, err
}

func (p *Processor) store(i int, doc *report.Document) {
	p.mu.Lock()
	p.results[i] = doc
	p.mu.Unlock()
}

// processOne analyzes a single image and, when out is set, writes the
// annotated copy there. Errors are recorded in the Document.
func (p *Processor) processOne(path, out string) *report.Document {
	doc := &report.Document{Source: path}

	img, err := p.cache.Load(path)
	if err != nil {
		p.logger.Warn("failed to load image", "path", path, "error", err)
		doc.Error = err.Error()
		return doc
	}
	// Each path is analyzed once per batch.
	defer p.cache.Evict(path)

	b := img.Bounds()
	doc.Width, doc.Height = b.Dx(), b.Dy()

	result, err := p.analyzer.AnalyzeImage(img, p.cfg.SegmentOptions())
	if err != nil {
		p.logger.Warn("analysis failed", "path", path, "error", err)
		doc.Error = err.Error()
		return doc
	}
	doc.Result = result

	p.logger.Debug("image analyzed", "path", path, "objects", result.ObjectCount)

	if out != "" {
		if err := p.annotate(img, out, result); err != nil {
			p.logger.Warn("annotation failed", "path", path, "error", err)
			doc.Error = err.Error()
			return doc
		}
		doc.Annotated = out
	}

	return doc
}

// annotate writes the annotated copy of img to out.
func (p *Processor) annotate(img image.Image, out string, result *detection.AnalysisResult) error {
	annotations := detection.ToAnnotations(result)

	if p.opts.SVG {
		f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer f.Close()

		b := img.Bounds()
		return imaging.RenderSVG(f, b.Dx(), b.Dy(), annotations, p.cfg.RenderOptions())
	}

	rendered, err := imaging.RenderAnnotations(img, annotations, p.cfg.RenderOptions())
	if err != nil {
		return err
	}
	return imaging.SaveImage(rendered, out)
}

// AnnotatedPath returns where the annotated copy of src is written:
// dir/<name>_shapes.png, or .svg when svg is set.
func AnnotatedPath(dir, src string, svg bool) string {
	base := filepath.Base(src)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	ext := ".png"
	if svg {
		ext = ".svg"
	}
	return filepath.Join(dir, name+AnnotatedSuffix+ext)
}

// annotatedPaths maps every input to its AnnotatedPath. Inputs that share a
// base name get a "_<n>" suffix (n is the 1-based input position) so that
// concurrent writers never share a file.
func annotatedPaths(dir string, paths []string, svg bool) []string {
	seen := make(map[string]int, len(paths))
	for _, path := range paths {
		seen[AnnotatedPath(dir, path, svg)]++
	}

	outputs := make([]string, len(paths))
	for i, path := range paths {
		out := AnnotatedPath(dir, path, svg)
		if seen[out] > 1 {
			ext := filepath.Ext(out)
			out = fmt.Sprintf("%s_%d%s", strings.TrimSuffix(out, ext), i+1, ext)
		}
		outputs[i] = out
	}
	return outputs
}

// Failed counts the documents that carry an error.
func Failed(docs []*report.Document) int {
	n := 0
	for _, d := range docs {
		if d.Error != "" {
			n++
		}
	}
	return n
}
