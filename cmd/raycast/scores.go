package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-raycast/internal/registry"
	"github.com/vovakirdan/tui-raycast/internal/storage"
)

var (
	flagScoresLimit int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [map]",
	Short: "Show best runs for a map",
	Long: `Display the best exploration runs for the specified map.
Runs are ranked by walls seen, then by fewest ticks.
Without a map, show a summary of every played map and the latest runs.

Examples:
  raycast scores
  raycast scores classic
  raycast scores pillars --limit 20
  raycast scores corridor --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every stored run for the map")
}

func runScores(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		if flagClear {
			return fmt.Errorf("--clear needs a map")
		}
		return runScoresSummary()
	}
	mapID := args[0]

	title := mapID
	for _, info := range registry.List() {
		if info.ID == mapID {
			title = info.Title
		}
	}
	if !registry.Exists(mapID) {
		logger.Warn("map is not registered, showing stored runs only", "map", mapID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		n, clearErr := store.ClearRuns(mapID)
		if clearErr != nil {
			return clearErr
		}
		fmt.Printf("Deleted %d runs for %s\n", n, title)
		return nil
	}

	runs, err := store.TopRuns(mapID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'raycast play %s' to record the first one!\n", mapID)
		return nil
	}

	fmt.Printf("  %-4s  %-9s  %-6s  %-7s  %s\n", "Rank", "Walls", "Cover", "Ticks", "Date")
	fmt.Printf("  %-4s  %-9s  %-6s  %-7s  %s\n", "----", "-----", "-----", "-----", "----")

	for i, r := range runs {
		walls := fmt.Sprintf("%d/%d", r.Score, r.Walls)
		cover := fmt.Sprintf("%.0f%%", r.Coverage()*100)
		fmt.Printf("  %-4d  %-9s  %-6s  %-7d  %s\n", i+1, walls, cover, r.Ticks, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(mapID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d  Runs: %d  Average: %.1f  Total ticks: %d\n",
		stats.BestScore, stats.RunsCount, stats.AvgScore, stats.TotalTicks)
	return nil
}

func runScoresSummary() error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	all, err := store.AllStats()
	if err != nil {
		return err
	}

	fmt.Println("Maps Played")
	fmt.Println()

	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-12s  %-5s  %-5s  %-7s  %s\n", "Map", "Runs", "Best", "Average", "Last played")
	fmt.Printf("  %-12s  %-5s  %-5s  %-7s  %s\n", "---", "----", "----", "-------", "-----------")
	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-12s  %-5d  %-5d  %-7.1f  %s\n",
			id, st.RunsCount, st.BestScore, st.AvgScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}

	recent, err := store.RecentRuns(flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Latest Runs")
	fmt.Println()
	for _, r := range recent {
		fmt.Printf("  %-12s  %d/%d walls in %d ticks  %s\n",
			r.MapID, r.Score, r.Walls, r.Ticks, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
