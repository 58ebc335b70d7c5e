// raycast is a top-down raycasting explorer for the terminal.
//
// Usage:
//
//	raycast list             - List available maps
//	raycast play <map>       - Explore a map
//	raycast menu             - Pick maps interactively
//	raycast serve            - Start SSH server for remote sessions
//	raycast scores <map>     - Show best runs for a map
//	raycast cast <map>       - Run a map headless and print the rays as YAML
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--db <path>      - Set database path (default: ~/.raycast/runs.db)
//	--config <path>  - Use a custom raycast config YAML
//	--maps-dir <dir> - Register every map file found in a directory
//	--verbose        - Enable debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycast/internal/games/raycast"
)

var (
	// Global flags
	flagFPS     int
	flagDBPath  string
	flagConfig  string
	flagMapsDir string
	flagVerbose bool

	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "raycast"})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "raycast",
	Short: "Raycast - explore grid maps with a top-down raycaster",
	Long: `Raycast casts a fan of rays from a viewer walking through a grid of
walls and draws what they hit from above, right in your terminal.

Available commands:
  list     - Show all available maps
  play     - Explore a specific map
  menu     - Interactive map picker
  serve    - Start SSH server for remote sessions
  scores   - View best runs
  cast     - Headless run that prints the ray bundle
  config   - Print the default raycast config

Examples:
  raycast list
  raycast play classic
  raycast menu
  raycast serve --ssh :2222
  raycast cast classic --ticks 30 --turn 1`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
		raycast.SetConfigPath(flagConfig)
		if flagConfig != "" {
			logger.Debug("using custom config", "path", flagConfig)
		}

		if flagMapsDir != "" {
			infos, err := raycast.RegisterDir(flagMapsDir)
			if err != nil {
				return err
			}
			logger.Debug("registered maps directory", "path", flagMapsDir, "maps", len(infos))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.raycast/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom raycast config YAML")
	rootCmd.PersistentFlags().StringVar(&flagMapsDir, "maps-dir", "", "Directory of map YAML files to register")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(castCmd)
	rootCmd.AddCommand(configCmd)
}
