package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/shape-analyzer/internal/config"
	"github.com/ironsheep/shape-analyzer/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as an MCP server on stdin/stdout",
		Long: `Serve runs the Model Context Protocol server over stdio so that MCP clients
can call the shape analysis as tools (image_analyze_shapes,
image_annotate_shapes, image_crop_shape, image_binarize and the image_load /
image_dimensions helpers).

stdout carries the protocol; logs go to stderr. Set
SHAPE_ANALYZER_LOG_LEVEL=debug to trace every request when the client does
not let you pass --verbose.

The configuration file supplies the defaults that tool arguments override.`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .shape-analyzer.yaml in current directory or XDG config)")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	cfg, path, err := config.Resolve(configPath)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	if path != "" {
		logger.Info("loaded configuration", "path", path)
	}

	srv := server.New(
		server.WithConfig(cfg),
		server.WithLogger(logger),
		server.WithVersion(getVersion()),
	)
	return srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
}
