package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/knight-skies/internal/leaderboard"
	"github.com/vovakirdan/knight-skies/internal/platform/worldapi"
	"github.com/vovakirdan/knight-skies/internal/storage"
)

var flagWorldAddr string

var worldCmd = &cobra.Command{
	Use:   "world",
	Short: "Run or query the world leaderboard",
}

var worldServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the world leaderboard over HTTP",
	Long: `Start the world leaderboard HTTP service backed by the --db database.

Endpoints:
  GET  /health
  GET  /api/v1/tables/world_highscores/?limit=10
  POST /api/v1/tables/world_highscores/   {"name":"ABC","score":42}

Examples:
  skies world serve
  skies world serve --addr :9000 --db ./world.db`,
	Args: cobra.NoArgs,
	Run:  runWorldServe,
}

var worldTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Print the world top ten",
	Long: `Fetch the world top ten from the server given by --world.

Examples:
  skies world top --world http://localhost:8090`,
	Args: cobra.NoArgs,
	Run:  runWorldTop,
}

func init() {
	worldServeCmd.Flags().StringVar(&flagWorldAddr, "addr", ":8090", "HTTP listen address")

	worldCmd.AddCommand(worldServeCmd)
	worldCmd.AddCommand(worldTopCmd)
}

func runWorldServe(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "skies-world")

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("%v", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := worldapi.NewServer(store, logger)
	if err := server.ListenAndServe(ctx, flagWorldAddr); err != nil {
		logger.Error("server stopped", "err", err)
		store.Close()
		os.Exit(1)
	}
}

func runWorldTop(_ *cobra.Command, _ []string) {
	world := worldStore()
	if world == nil {
		fail("--world is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	board, err := leaderboard.NewRemote(world).FetchTop(ctx, leaderboard.Capacity)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("World top %d (%s)\n", leaderboard.Capacity, flagWorld)
	printBoard(board)
}
