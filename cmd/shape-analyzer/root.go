package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// logLevelEnv overrides the log level; "debug" is the useful value when the
// server is launched by an MCP client and flags cannot be passed.
const logLevelEnv = "SHAPE_ANALYZER_LOG_LEVEL"

// NewRootCmd creates the root command for shape-analyzer.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shape-analyzer",
		Short: "Detect and classify geometric shapes in images",
		Long: `shape-analyzer finds the dark shapes on a light background in raster images
and classifies each one as Circle, Triangle, Square, Rectangle, Pentagon,
Hexagon, Heptagon, Octagon or Polygon.

It reports the area and perimeter of every shape, can draw the outlines and
labels onto a copy of the image, and can run as an MCP server so that AI
assistants can call the analysis as a tool.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
// The SHAPE_ANALYZER_LOG_LEVEL environment variable (debug, info, warn,
// error) takes precedence over the flag.
func setupLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	if env := strings.TrimSpace(os.Getenv(logLevelEnv)); env != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(env)); err == nil {
			level = l
		}
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(w, opts)
	return slog.New(handler)
}
