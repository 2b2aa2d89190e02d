package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/knight-skies/internal/core"
	"github.com/vovakirdan/knight-skies/internal/engine"
	"github.com/vovakirdan/knight-skies/internal/leaderboard"
	"github.com/vovakirdan/knight-skies/internal/session"
	"github.com/vovakirdan/knight-skies/internal/storage"
)

var (
	flagTicks     int
	flagAutopilot bool
	flagName      string
	flagSubmit    bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the engine without a terminal",
	Long: `Run one game headless and print the outcome. Without --autopilot the
knight never flaps and falls to the ground.

With --submit the final score is entered under --name into the local top ten
(--db) and, with --world, offered to the world top ten.

Examples:
  skies simulate --seed 7 --autopilot
  skies simulate --seed 7 --autopilot --ticks 20000 --name BOT --submit`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 3000, "Maximum ticks to run")
	simulateCmd.Flags().BoolVar(&flagAutopilot, "autopilot", false, "Let the bot fly")
	simulateCmd.Flags().StringVar(&flagName, "name", "BOT", "Three-letter name for --submit")
	simulateCmd.Flags().BoolVar(&flagSubmit, "submit", false, "Submit the final score")
}

func runSimulate(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "skies-sim")

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := session.Options{Config: cfg, Seed: seed, Logger: logger}

	if flagSubmit {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fail("%v", err)
		}
		defer store.Close()
		opts.Local = leaderboard.NewLocal(store, logger)
		opts.Plays = store
		if world := worldStore(); world != nil {
			opts.Remote = leaderboard.NewRemote(world)
		}
	}

	sess, err := session.New(opts)
	if err != nil {
		fail("%v", err)
	}

	pilot := session.NewAutopilot(sess.Engine().Config())
	start := core.NewInputFrame()
	start.Set(core.ActionStart)
	res := sess.Step(start)

	pickups := 0
	over := false
	for i := 0; i < flagTicks && !over; i++ {
		in := core.NewInputFrame()
		if flagAutopilot {
			in = pilot.Decide(res.Snapshot)
		}
		res = sess.Step(in)
		for _, ev := range res.Events {
			switch ev := ev.(type) {
			case engine.ScoreChangedEvent:
				if ev.Source == engine.ScoreFromPickup {
					pickups++
				}
			case engine.GapNarrowedEvent:
				logger.Debug("gap narrowed", "gap", ev.Gap, "passed", ev.Passed)
			case engine.GameOverEvent:
				over = true
			}
		}
	}

	snap := res.Snapshot
	score := snap.Score
	if over {
		score = snap.FinalScore
	}
	fmt.Printf("Seed:      %d\n", seed)
	fmt.Printf("State:     %s\n", snap.State)
	fmt.Printf("Ticks:     %d\n", snap.Tick)
	fmt.Printf("Score:     %d\n", score)
	fmt.Printf("Passed:    %d\n", snap.Passed)
	fmt.Printf("Pickups:   %d\n", pickups)
	fmt.Printf("Final gap: %d\n", snap.Gap)

	if !flagSubmit {
		return
	}
	if !over {
		fmt.Println("Game still running, nothing submitted.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sub, task, err := sess.SubmitName(ctx, flagName)
	if err != nil {
		fail("%v", err)
	}
	fmt.Println(sub.Notice.Message)
	if task != nil {
		if n, ok := sess.Deliver(task()); ok {
			fmt.Println(n.Message)
		}
	}
}
