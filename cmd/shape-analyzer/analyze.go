package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironsheep/shape-analyzer/internal/batch"
	"github.com/ironsheep/shape-analyzer/internal/config"
	"github.com/ironsheep/shape-analyzer/internal/report"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze IMAGE...",
		Short: "Classify the shapes in one or more images",
		Long: `Analyze finds the dark shapes on a light background in each image and
classifies them. For every shape it prints

  Shape: <Label> | Area: <area> | Perimeter: <perimeter>

followed by "Total Objects Detected: <n>". Regions smaller than --min-area
square pixels are ignored as noise.

Settings are read from --config, or else .shape-analyzer.yaml in the current
directory, or else the user configuration file (see "shape-analyzer init").
Flags override the file.

Examples:
  # Analyze a single image
  shape-analyzer analyze shapes.png

  # Write annotated copies next to a Markdown report
  shape-analyzer analyze -a out/ -f markdown -o out/report.md *.png

  # Emit JSON with vector overlays, four images at a time
  shape-analyzer analyze -f json --svg -a overlays/ -j 4 scans/*.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnalyzeCmd,
	}

	defaults := config.Default()

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .shape-analyzer.yaml in current directory or XDG config)")

	// Detection flags
	cmd.Flags().Float64("min-area", defaults.MinArea,
		"Minimum region area in square pixels")
	cmd.Flags().Float64("epsilon", defaults.EpsilonCoefficient,
		"Polygon simplification tolerance as a fraction of the perimeter")
	cmd.Flags().Int("threshold", defaults.Threshold,
		"Inverted binary threshold (0-255); darker pixels are shape pixels")
	cmd.Flags().Int("blur", defaults.BlurKernel,
		"Odd Gaussian blur kernel size applied before thresholding (1 disables)")
	cmd.Flags().Float64("circularity", defaults.CircularityCutoff,
		"Circularity above which a region is a circle")
	cmd.Flags().Float64("square-tolerance", defaults.SquareTolerance,
		"Allowed distance of a square's aspect ratio from 1")

	// Output flags
	cmd.Flags().StringP("format", "f", defaults.Format,
		"Report format: text, json or markdown")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().StringP("annotate", "a", "",
		"Write annotated copies (<name>_shapes.png) to this directory")
	cmd.Flags().Bool("svg", false,
		"Write annotations as SVG overlays (<name>_shapes.svg) instead of PNG")

	// Batch flags
	cmd.Flags().IntP("jobs", "j", defaults.Jobs,
		"Number of images analyzed concurrently")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))

	annotateDir, err := cmd.Flags().GetString("annotate")
	if err != nil {
		return err
	}
	svg, err := cmd.Flags().GetBool("svg")
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if svg && annotateDir == "" {
		return errors.New("--svg requires --annotate")
	}

	// Set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	processor := batch.NewProcessor(cfg, batch.Options{
		Jobs:        cfg.Jobs,
		AnnotateDir: annotateDir,
		SVG:         svg,
	}, logger)

	docs, batchErr := processor.Process(ctx, args)
	if docs == nil {
		return batchErr
	}

	if err := outputReport(cmd.OutOrStdout(), outputPath, cfg.Format, docs); err != nil {
		return err
	}
	if batchErr != nil {
		return batchErr
	}

	if failed := batch.Failed(docs); failed > 0 {
		return fmt.Errorf("%d of %d images could not be analyzed", failed, len(docs))
	}
	return nil
}

// buildConfig resolves the configuration file and applies the flags that
// were set explicitly.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, _, err := config.Resolve(configPath)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("min-area") {
		if cfg.MinArea, err = flags.GetFloat64("min-area"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("epsilon") {
		if cfg.EpsilonCoefficient, err = flags.GetFloat64("epsilon"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("threshold") {
		if cfg.Threshold, err = flags.GetInt("threshold"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("blur") {
		if cfg.BlurKernel, err = flags.GetInt("blur"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("circularity") {
		if cfg.CircularityCutoff, err = flags.GetFloat64("circularity"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("square-tolerance") {
		if cfg.SquareTolerance, err = flags.GetFloat64("square-tolerance"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("format") {
		if cfg.Format, err = flags.GetString("format"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("jobs") {
		if cfg.Jobs, err = flags.GetInt("jobs"); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// newReportWriter returns the writer for a validated format name.
func newReportWriter(format string, w io.Writer) report.Writer {
	switch format {
	case config.FormatJSON:
		return report.NewJSONWriter(w, report.WithPrettyPrint())
	case config.FormatMarkdown:
		return report.NewMarkdownWriter(w)
	default:
		return report.NewTextWriter(w)
	}
}

// outputReport writes the report to outputPath, or to stdout when it is empty.
// A single image is written as a single document.
func outputReport(stdout io.Writer, outputPath, format string, docs []*report.Document) error {
	output := stdout
	if outputPath != "" {
		dir := filepath.Dir(outputPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	writer := newReportWriter(format, output)
	var err error
	if len(docs) == 1 {
		_, err = writer.Write(docs[0])
	} else {
		_, err = writer.WriteAll(docs)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
