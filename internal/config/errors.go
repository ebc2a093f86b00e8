package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so callers can use
// errors.Is() to tell which setting is wrong.
var (
	// ErrInvalidMinArea is returned when the minimum area is negative.
	ErrInvalidMinArea = errors.New("invalid min area: must be non-negative")

	// ErrInvalidEpsilon is returned when the simplification coefficient is not
	// in the open interval (0, 1).
	ErrInvalidEpsilon = errors.New("invalid epsilon: must be greater than 0 and less than 1")

	// ErrInvalidThreshold is returned when the binary threshold is outside 0-255.
	ErrInvalidThreshold = errors.New("invalid threshold: must be between 0 and 255")

	// ErrInvalidBlurKernel is returned when the blur kernel is not a positive odd number.
	ErrInvalidBlurKernel = errors.New("invalid blur kernel: must be a positive odd number")

	// ErrInvalidCircularity is returned when the circularity cutoff is not positive.
	ErrInvalidCircularity = errors.New("invalid circularity cutoff: must be positive")

	// ErrInvalidSquareTolerance is returned when the square tolerance is not in [0, 1).
	ErrInvalidSquareTolerance = errors.New("invalid square tolerance: must be at least 0 and less than 1")

	// ErrInvalidColor is returned when an outline or label colour is not a hex colour.
	ErrInvalidColor = errors.New("invalid color: must be a hex color such as #00FF00")

	// ErrInvalidOutlineWidth is returned when the outline width is below 1.
	ErrInvalidOutlineWidth = errors.New("invalid outline width: must be at least 1")

	// ErrUnknownFormat is returned when the report format is not text, json or markdown.
	ErrUnknownFormat = errors.New("unknown report format: must be text, json or markdown")

	// ErrInvalidJobs is returned when the number of concurrent jobs is not positive.
	ErrInvalidJobs = errors.New("invalid jobs: must be positive")
)
