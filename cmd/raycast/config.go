package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycast/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default raycast config",
	Long: `Print the built-in configuration as YAML. Save it to
~/.raycast/configs/raycast.yaml or pass an edited copy with --config.

Examples:
  raycast config > ~/.raycast/configs/raycast.yaml
  raycast play classic --config ./raycast.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		_, err := os.Stdout.Write(config.GetDefaultYAML())
		return err
	},
}
