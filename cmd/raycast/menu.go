package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycast/internal/platform/tui"
	"github.com/vovakirdan/tui-raycast/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a map picker menu",
	Long: `Start the explorer in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a map.
When you leave a map, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select map
  Tab          - Best runs
  Q            - Quit

Examples:
  raycast menu
  raycast menu --fps 30
  raycast menu --db ./runs.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()

	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if !goBack {
				return nil
			}
			continue
		}

		if result.MapID == "" {
			return nil
		}

		game, err := registry.Create(result.MapID)
		if err != nil {
			logger.Error("cannot open map", "map", result.MapID, "error", err)
			continue
		}

		outcome, err := tui.Run(game, store, cfg)
		if err != nil {
			return err
		}
		logOutcome(result.MapID, outcome)

		if !outcome.BackToMenu {
			return nil
		}
	}
}
