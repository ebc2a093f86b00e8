package config

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/ironsheep/shape-analyzer/internal/detection"
	"github.com/ironsheep/shape-analyzer/internal/imaging"
	"github.com/ironsheep/shape-analyzer/internal/segment"
)

// AppName is the application name used for XDG directory paths.
const AppName = "shape-analyzer"

// Report formats.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// DefaultJobs is the number of images analyzed concurrently.
const DefaultJobs = 4

// Config holds every tunable setting of the shape analyzer.
//
// The struct is flat so that it maps one-to-one onto the YAML file and the
// CLI flags.
type Config struct {
	// MinArea is the raw boundary area below which a region is ignored.
	MinArea float64 `yaml:"min_area"`

	// EpsilonCoefficient times a boundary's perimeter is the
	// simplification tolerance.
	EpsilonCoefficient float64 `yaml:"epsilon"`

	// Threshold is the inverted binary threshold (pixels at or below it are shapes).
	Threshold int `yaml:"threshold"`

	// BlurKernel is the Gaussian kernel size applied before thresholding.
	BlurKernel int `yaml:"blur_kernel"`

	// CircularityCutoff: regions with circularity above it are circles.
	CircularityCutoff float64 `yaml:"circularity_cutoff"`

	// SquareTolerance is the allowed distance of a square's aspect ratio from 1.
	SquareTolerance float64 `yaml:"square_tolerance"`

	// OutlineColor and LabelColor style annotated output.
	OutlineColor string `yaml:"outline_color"`
	LabelColor   string `yaml:"label_color"`

	// OutlineWidth is the outline stroke width in pixels.
	OutlineWidth int `yaml:"outline_width"`

	// Format is the report format: text, json or markdown.
	Format string `yaml:"format"`

	// Jobs is the number of images analyzed concurrently.
	Jobs int `yaml:"jobs"`
}

// Default returns a Config populated with the standard settings.
func Default() *Config {
	return &Config{
		MinArea:            detection.DefaultMinArea,
		EpsilonCoefficient: segment.DefaultEpsilonCoefficient,
		Threshold:          segment.DefaultThreshold,
		BlurKernel:         segment.DefaultBlurKernel,
		CircularityCutoff:  detection.DefaultCircularityCutoff,
		SquareTolerance:    detection.DefaultSquareTolerance,
		OutlineColor:       imaging.DefaultOutlineColor,
		LabelColor:         imaging.DefaultLabelColor,
		OutlineWidth:       imaging.DefaultOutlineWidth,
		Format:             FormatText,
		Jobs:               DefaultJobs,
	}
}

// XDGConfigDir returns the XDG config directory for the shape analyzer.
// On Linux: ~/.config/shape-analyzer
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.MinArea < 0 {
		return ErrInvalidMinArea
	}
	if c.EpsilonCoefficient <= 0 || c.EpsilonCoefficient >= 1 {
		return ErrInvalidEpsilon
	}
	if c.Threshold < 0 || c.Threshold > 255 {
		return ErrInvalidThreshold
	}
	if c.BlurKernel < 1 || c.BlurKernel%2 == 0 {
		return ErrInvalidBlurKernel
	}
	if c.CircularityCutoff <= 0 {
		return ErrInvalidCircularity
	}
	if c.SquareTolerance < 0 || c.SquareTolerance >= 1 {
		return ErrInvalidSquareTolerance
	}
	if _, err := imaging.ParseHexColor(c.OutlineColor); err != nil {
		return fmt.Errorf("outline_color %q: %w", c.OutlineColor, ErrInvalidColor)
	}
	if _, err := imaging.ParseHexColor(c.LabelColor); err != nil {
		return fmt.Errorf("label_color %q: %w", c.LabelColor, ErrInvalidColor)
	}
	if c.OutlineWidth < 1 {
		return ErrInvalidOutlineWidth
	}
	switch c.Format {
	case FormatText, FormatJSON, FormatMarkdown:
	default:
		return ErrUnknownFormat
	}
	if c.Jobs <= 0 {
		return ErrInvalidJobs
	}
	return nil
}

// DetectionOptions returns the filtering and classification settings.
func (c *Config) DetectionOptions() detection.Options {
	return detection.Options{
		MinArea:    c.MinArea,
		Thresholds: detection.NewThresholds(c.CircularityCutoff, c.SquareTolerance),
	}
}

// SegmentOptions returns the binarization and simplification settings.
func (c *Config) SegmentOptions() segment.Options {
	return segment.Options{
		Threshold:          c.Threshold,
		BlurKernel:         c.BlurKernel,
		EpsilonCoefficient: c.EpsilonCoefficient,
	}
}

// RenderOptions returns the annotation style.
func (c *Config) RenderOptions() imaging.RenderOptions {
	return imaging.RenderOptions{
		OutlineColor: c.OutlineColor,
		LabelColor:   c.LabelColor,
		OutlineWidth: c.OutlineWidth,
	}
}
