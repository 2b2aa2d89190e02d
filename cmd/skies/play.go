package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/knight-skies/internal/core"
	"github.com/vovakirdan/knight-skies/internal/leaderboard"
	"github.com/vovakirdan/knight-skies/internal/platform/tui"
	"github.com/vovakirdan/knight-skies/internal/session"
	"github.com/vovakirdan/knight-skies/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start Knight Skies in the current terminal.

Controls:
  Enter         - Start / retry
  Space/Up      - Flap
  R             - Back to title (after game over)
  B/Esc         - High scores
  Left/Right    - Switch score tab
  Q/Ctrl+C      - Quit

Name entry:
  Up/Down       - Change letter
  Left/Right    - Move between letters
  Enter         - Save

Difficulty options:
  easy   - Wide gaps, slow shrinking
  normal - Default settings
  hard   - Narrow gaps, faster barriers
  fixed  - Gap never shrinks

Logs are written to ~/.skies/skies.log while the game owns the terminal.

Examples:
  skies play
  skies play --difficulty easy
  skies play --config ./my-skies.yaml
  skies play --world http://localhost:8090`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	logPath := expandHome("~/.skies/skies.log")
	if mkErr := os.MkdirAll(filepath.Dir(logPath), 0o755); mkErr != nil {
		fail("cannot create log directory: %v", mkErr)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		fail("cannot open log file: %v", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile, "skies")

	rt := core.DefaultRuntime()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	rt.Seed = flagSeed
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	opts := session.Options{
		Config: cfg,
		Seed:   rt.Seed,
		Logger: logger,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Game still works without storage
		logger.Warn("could not open database", "path", flagDBPath, "err", err)
	} else {
		defer store.Close()
		opts.Local = leaderboard.NewLocal(store, logger)
		opts.Plays = store
	}
	if world := worldStore(); world != nil {
		opts.Remote = leaderboard.NewRemote(world)
	}

	sess, err := session.New(opts)
	if err != nil {
		fail("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting game", "seed", rt.Seed, "world", flagWorld != "")
	if err := tui.Run(ctx, sess, rt, logger); err != nil && ctx.Err() == nil {
		logger.Error("game stopped", "err", err)
		fail("running game: %v", err)
	}
}
