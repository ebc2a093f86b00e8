// Package config provides the configuration for the shape analyzer: the
// segmentation and classification parameters, rendering style, report format
// and concurrency settings, plus loading them from a YAML file.
package config
