// Package session ties the engine to the leaderboards. It watches for game
// over, takes the player's name, saves locally and hands the world
// submission off as a task whose result is applied only if the engine is
// still on the same session.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/knight-skies/internal/config"
	"github.com/vovakirdan/knight-skies/internal/core"
	"github.com/vovakirdan/knight-skies/internal/engine"
	"github.com/vovakirdan/knight-skies/internal/leaderboard"
	"github.com/vovakirdan/knight-skies/internal/storage"
)

// ErrNothingToSubmit is returned by SubmitName when no finished game awaits a name.
var ErrNothingToSubmit = errors.New("session: no finished game to submit")

// PlayRecorder stores finished sessions.
type PlayRecorder interface {
	RecordPlay(p storage.Play) (int64, error)
	NamePlay(id int64, name string) error
}

// Options configures a Session. Local, Remote and Plays are optional.
type Options struct {
	Config config.SkiesConfig
	Seed   int64
	Random core.RandomSource // Defaults to core.NewRandom(Seed)
	Local  *leaderboard.Local
	Remote *leaderboard.Remote
	Plays  PlayRecorder
	Logger *log.Logger
}

// GameResult describes a finished run awaiting a name.
type GameResult struct {
	Score      int
	Passed     int
	Ticks      uint64
	Generation uint64
	PlayID     int64 // Zero when the play was not recorded
}

// Submission is the synchronous part of SubmitName.
type Submission struct {
	Record        leaderboard.Record
	LocalAccepted bool
	LocalBoard    []leaderboard.Record
	Notice        Notice
}

// Session owns one engine and its leaderboard collaborators.
// It is not safe for concurrent use; Deliver results on the owning goroutine.
type Session struct {
	engine *engine.Engine
	local  *leaderboard.Local
	remote *leaderboard.Remote
	plays  PlayRecorder
	logger *log.Logger
	seed   int64

	pending    *GameResult
	worldBoard []leaderboard.Record
}

// New creates a session with an engine in the Idle state.
func New(opts Options) (*Session, error) {
	rng := opts.Random
	if rng == nil {
		rng = core.NewRandom(opts.Seed)
	}
	eng, err := engine.New(opts.Config, rng)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		engine: eng,
		local:  opts.Local,
		remote: opts.Remote,
		plays:  opts.Plays,
		logger: logger.WithPrefix("session"),
		seed:   opts.Seed,
	}, nil
}

// Engine returns the underlying engine.
func (s *Session) Engine() *engine.Engine {
	return s.engine
}

// Online reports whether a world leaderboard is configured.
func (s *Session) Online() bool {
	return s.remote != nil
}

// Step applies in to the engine and ticks once.
func (s *Session) Step(in core.InputFrame) engine.StepResult {
	res := s.engine.Step(in)
	s.observe(res)
	return res
}

// Tick advances the engine without input.
func (s *Session) Tick() engine.StepResult {
	res := s.engine.Tick()
	s.observe(res)
	return res
}

func (s *Session) observe(res engine.StepResult) {
	for _, ev := range res.Events {
		if over, ok := ev.(engine.GameOverEvent); ok {
			s.finish(over, res.Snapshot)
		}
	}
}

func (s *Session) finish(ev engine.GameOverEvent, snap engine.Snapshot) {
	s.pending = &GameResult{
		Score:      ev.FinalScore,
		Passed:     snap.Passed,
		Ticks:      snap.Tick,
		Generation: ev.Generation,
	}
	s.logger.Debug("game over", "score", ev.FinalScore, "passed", snap.Passed, "ticks", snap.Tick, "generation", ev.Generation)

	if s.plays == nil {
		return
	}
	id, err := s.plays.RecordPlay(storage.Play{
		Score:  ev.FinalScore,
		Passed: snap.Passed,
		Ticks:  int(snap.Tick),
		Seed:   s.seed,
	})
	if err != nil {
		s.logger.Warn("cannot record play", "err", err)
		return
	}
	s.pending.PlayID = id
}

// Pending returns the finished game awaiting a name, if any.
func (s *Session) Pending() (GameResult, bool) {
	if s.pending == nil || s.pending.Generation != s.engine.Generation() {
		return GameResult{}, false
	}
	return *s.pending, true
}

// LocalBoard returns the local top ten, or nil without a local store.
func (s *Session) LocalBoard() []leaderboard.Record {
	if s.local == nil {
		return nil
	}
	return s.local.Load()
}

// WorldBoard returns the world top ten last seen by this session.
func (s *Session) WorldBoard() []leaderboard.Record {
	return s.worldBoard
}

// SubmitName saves the pending score under name locally and returns the
// world submission as a task (nil when offline). The engine is not reset.
func (s *Session) SubmitName(ctx context.Context, name string) (Submission, RemoteTask, error) {
	game, ok := s.Pending()
	if !ok {
		return Submission{}, nil, ErrNothingToSubmit
	}
	rec, err := leaderboard.NewRecord(name, game.Score)
	if err != nil {
		return Submission{}, nil, err
	}
	s.pending = nil

	if s.plays != nil && game.PlayID != 0 {
		if err := s.plays.NamePlay(game.PlayID, rec.Name); err != nil {
			s.logger.Warn("cannot name play", "id", game.PlayID, "err", err)
		}
	}

	sub := Submission{Record: rec}
	sub.Notice = Notice{Kind: NoticeLocalRejected, Message: "Not a local highscore", Generation: game.Generation}
	if s.local != nil {
		accepted, board, err := s.local.Submit(rec)
		sub.LocalAccepted = accepted
		sub.LocalBoard = board
		switch {
		case err != nil:
			s.logger.Error("cannot save local highscore", "err", err)
			sub.Notice = Notice{Kind: NoticeLocalFailed, Message: "Could not save highscore", Generation: game.Generation}
		case accepted:
			sub.Notice = Notice{Kind: NoticeLocalSaved, Message: "Highscore saved!", Generation: game.Generation}
		}
	}

	if s.remote == nil {
		return sub, nil, nil
	}

	remote := s.remote
	task := func() RemoteResult {
		adm, err := remote.CheckAndSubmit(ctx, rec.Name, rec.Score)
		return RemoteResult{Generation: game.Generation, Record: rec, Admission: adm, Err: err}
	}
	return sub, task, nil
}

// FetchWorldTask returns a task that reads the world top ten for display,
// or nil when offline.
func (s *Session) FetchWorldTask(ctx context.Context) RemoteTask {
	if s.remote == nil {
		return nil
	}
	remote, gen := s.remote, s.engine.Generation()
	return func() RemoteResult {
		board, err := remote.FetchTop(ctx, leaderboard.Capacity)
		return RemoteResult{Generation: gen, Admission: leaderboard.Admission{Board: board, Threshold: -1}, Err: err}
	}
}

// Deliver applies a finished remote task on the owning goroutine. Results
// from an earlier session are dropped. ok reports whether n should be shown.
func (s *Session) Deliver(res RemoteResult) (n Notice, ok bool) {
	if res.Generation != s.engine.Generation() {
		s.logger.Debug("dropping stale world result", "result_generation", res.Generation, "generation", s.engine.Generation())
		return Notice{}, false
	}

	n.Generation = res.Generation
	switch {
	case res.Err != nil:
		s.logger.Warn("world leaderboard unavailable", "err", res.Err)
		n.Kind = NoticeWorldFailed
		n.Message = "World leaderboard unavailable"
	case res.Record == (leaderboard.Record{}):
		// Plain fetch, nothing was submitted.
		s.worldBoard = res.Admission.Board
		return Notice{}, false
	case res.Admission.Submitted:
		s.worldBoard = res.Admission.Board
		n.Kind = NoticeWorldUpdated
		n.Message = "World highscore updated!"
	default:
		s.worldBoard = res.Admission.Board
		n.Kind = NoticeWorldRejected
		n.Message = fmt.Sprintf("World top 10 needs more than %d", res.Admission.Threshold)
	}
	return n, true
}
