// skies is Knight Skies: a one-button flying game for the terminal with a
// local and a world top ten.
//
// Usage:
//
//	skies play              - Play in this terminal
//	skies serve             - Start SSH server for remote play
//	skies world serve       - Run the world leaderboard HTTP service
//	skies world top         - Print the world top ten
//	skies scores            - Show the local top ten and play statistics
//	skies simulate          - Run the engine headless
//	skies config            - Print the effective configuration
//
// Global flags:
//
//	--db <path>          - Local database (default: ~/.skies/skies.db)
//	--seed <value>       - RNG seed for reproducible gameplay
//	--config <path>      - Custom config YAML
//	--difficulty <name>  - Preset: easy, normal, hard, fixed
//	--world <url>        - World leaderboard server
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/knight-skies/internal/config"
	"github.com/vovakirdan/knight-skies/internal/leaderboard"
	"github.com/vovakirdan/knight-skies/internal/platform/worldapi"
)

var (
	// Global flags
	flagDBPath     string
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagWorld      string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skies",
	Short: "Knight Skies - flap through the gaps in your terminal",
	Long: `Knight Skies is a one-button flying game. Keep the knight in the air,
fly through the gaps between barriers and grab coins for bonus points.
The gaps narrow as you go.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  world     - Run or query the world leaderboard
  scores    - View local high scores and statistics
  simulate  - Run the engine without a terminal
  config    - Print the effective configuration

Examples:
  skies play
  skies play --difficulty hard --world http://localhost:8090
  skies serve --ssh :2222
  skies world serve --addr :8090
  skies simulate --seed 7 --autopilot`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skies/skies.db", "Path to local database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagWorld, "world", "", "World leaderboard URL (empty = offline)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(worldCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the command logger writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadConfig resolves the game configuration from the global flags.
func loadConfig() (config.SkiesConfig, error) {
	return config.LoadWithPreset(flagConfig, config.ParsePreset(flagDifficulty))
}

// worldStore returns the world leaderboard client, or nil when offline.
func worldStore() leaderboard.RemoteStore {
	if flagWorld == "" {
		return nil
	}
	return worldapi.NewClient(worldapi.ClientConfig{BaseURL: flagWorld})
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// fail prints err to stderr and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
