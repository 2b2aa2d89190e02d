package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/knight-skies/internal/leaderboard"
	"github.com/vovakirdan/knight-skies/internal/storage"
)

var (
	flagRecent int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the local top ten and play statistics. With --world the world
top ten is shown too.

Examples:
  skies scores
  skies scores --recent 5
  skies scores --world http://localhost:8090
  skies scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 0, "Also list the N most recent plays")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the play history (the top ten is kept)")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("%v", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearPlays(); err != nil {
			fail("%v", err)
		}
		fmt.Println("Play history cleared.")
		return
	}

	local := leaderboard.NewLocal(store, newLogger(os.Stderr, "skies"))
	fmt.Printf("Local top %d\n", leaderboard.Capacity)
	printBoard(local.Load())

	stats, err := store.Stats()
	if err != nil {
		fail("%v", err)
	}
	fmt.Println()
	if stats.GamesCount == 0 {
		fmt.Println("No games played yet.")
	} else {
		fmt.Printf("Games played: %d\n", stats.GamesCount)
		fmt.Printf("Best score:   %d\n", stats.HighScore)
		fmt.Printf("Avg score:    %.1f\n", stats.AvgScore)
		fmt.Printf("Last played:  %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}

	if flagRecent > 0 {
		plays, err := store.RecentPlays(flagRecent)
		if err != nil {
			fail("%v", err)
		}
		fmt.Println()
		fmt.Println("Recent plays")
		fmt.Printf("  %-6s  %-8s  %-6s  %s\n", "SCORE", "PASSED", "TICKS", "DATE")
		for _, p := range plays {
			fmt.Printf("  %-6d  %-8d  %-6d  %s\n", p.Score, p.Passed, p.Ticks, p.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	if world := worldStore(); world != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		fmt.Println()
		fmt.Printf("World top %d\n", leaderboard.Capacity)
		board, err := leaderboard.NewRemote(world).FetchTop(ctx, leaderboard.Capacity)
		if err != nil {
			fmt.Fprintf(os.Stderr, "World leaderboard unavailable: %v\n", err)
			return
		}
		printBoard(board)
	}
}

// printBoard prints a ranked table of records.
func printBoard(board []leaderboard.Record) {
	if len(board) == 0 {
		fmt.Println("  No scores recorded yet.")
		return
	}
	fmt.Printf("  %-4s  %-4s  %s\n", "RANK", "NAME", "SCORE")
	for i, r := range board {
		fmt.Printf("  #%-3d  %-4s  %d\n", i+1, r.Name, r.Score)
	}
}
