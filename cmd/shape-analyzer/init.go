package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/shape-analyzer/internal/config"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Init writes a configuration file holding every setting at its default value.

By default the file goes to the user configuration directory
(` + "`$XDG_CONFIG_HOME/shape-analyzer/config.yaml`" + `). A .shape-analyzer.yaml in the
current directory takes precedence over it when both exist.

Examples:
  # Create the user configuration file
  shape-analyzer init

  # Create a per-project configuration file
  shape-analyzer init -p .shape-analyzer.yaml

  # Force overwrite existing file
  shape-analyzer init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("path", "p", "",
		"Output file path for the configuration (default: XDG config directory)")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("path")
	if err != nil {
		return err
	}
	if outputPath == "" {
		outputPath = config.DefaultConfigPath()
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if err := config.Write(outputPath, config.Default(), force); err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			return fmt.Errorf("%w (use -f to overwrite)", err)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", outputPath)
	return nil
}
