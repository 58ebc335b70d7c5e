package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-raycast/internal/core"
	"github.com/vovakirdan/tui-raycast/internal/games/raycast"
	"github.com/vovakirdan/tui-raycast/internal/platform/tui"
	"github.com/vovakirdan/tui-raycast/internal/registry"
	"github.com/vovakirdan/tui-raycast/internal/storage"
)

var flagMapFile string

var playCmd = &cobra.Command{
	Use:   "play [map]",
	Short: "Explore a map",
	Long: `Start exploring the specified map. The score is the number of distinct
wall tiles your rays have hit; it is saved when you leave.

Controls:
  W/Up       - Walk forward
  S/Down     - Walk backward
  A/Left     - Turn left
  D/Right    - Turn right
  P          - Pause
  R          - Restart from the start pose
  Ctrl+S     - Save a screenshot
  B/Esc      - Leave
  Q/Ctrl+C   - Quit

Examples:
  raycast play classic
  raycast play pillars --fps 30
  raycast play --map-file ./maps/maze.yaml
  raycast play classic --config ./my-raycast.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMapFile, "map-file", "", "Path to a map YAML to register and play")
}

func runPlay(_ *cobra.Command, args []string) error {
	mapID, err := resolveMap(args, flagMapFile)
	if err != nil {
		return err
	}

	game, err := registry.Create(mapID)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	outcome, err := tui.Run(game, store, terminalConfig())
	if err != nil {
		return fmt.Errorf("running map: %w", err)
	}
	logOutcome(mapID, outcome)
	return nil
}

// resolveMap picks the map from the positional argument or registers the
// map file. A map file wins when both are given.
func resolveMap(args []string, mapFile string) (string, error) {
	if mapFile != "" {
		info, err := raycast.RegisterFile(mapFile)
		if err != nil {
			return "", err
		}
		logger.Debug("registered map file", "id", info.ID, "path", mapFile)
		return info.ID, nil
	}

	if len(args) == 0 {
		return "", fmt.Errorf("a map id or --map-file is required")
	}
	if registry.Exists(args[0]) {
		return args[0], nil
	}

	// A map in --maps-dir that was skipped during registration reports why.
	if flagMapsDir != "" {
		if _, err := raycast.RegisterFromDir(flagMapsDir, args[0]); err != nil {
			return "", err
		}
		return args[0], nil
	}
	return "", fmt.Errorf("unknown map %q (run 'raycast list' to see available maps)", args[0])
}

// terminalConfig builds the runtime config from the current terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	} else {
		logger.Debug("cannot read terminal size, using defaults", "error", err)
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}
}

// openStore opens the runs database. Sessions still work without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database, runs will not be saved", "error", err)
		return nil
	}
	return store
}

func logOutcome(mapID string, o tui.Outcome) {
	switch {
	case o.SaveErr != nil:
		logger.Warn("could not save run", "map", mapID, "error", o.SaveErr)
	case o.RunID > 0:
		logger.Info("run saved", "map", mapID, "score", o.Score)
	}
}
