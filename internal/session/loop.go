package session

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/knight-skies/internal/core"
	"github.com/vovakirdan/knight-skies/internal/engine"
)

// Loop drives a Session from a Clock on a single goroutine. Inputs arriving
// between ticks are merged into one frame applied before the next step.
// Remote tasks run on their own goroutines and come back through the loop.
//
// Events and Notices must be drained by the caller; the loop blocks when
// their buffers are full.
type Loop struct {
	sess   *Session
	clock  Clock
	logger *log.Logger

	actions chan core.Action
	submits chan string
	results chan RemoteResult

	events  chan engine.Event
	notices chan Notice
	frames  chan engine.Snapshot
}

// NewLoop creates a loop for sess ticking on clock.
func NewLoop(sess *Session, clock Clock, logger *log.Logger) *Loop {
	if logger == nil {
		logger = log.Default()
	}
	return &Loop{
		sess:    sess,
		clock:   clock,
		logger:  logger.WithPrefix("loop"),
		actions: make(chan core.Action, 16),
		submits: make(chan string, 1),
		results: make(chan RemoteResult, 4),
		events:  make(chan engine.Event, 64),
		notices: make(chan Notice, 8),
		frames:  make(chan engine.Snapshot, 1),
	}
}

// Events returns the engine event stream.
func (l *Loop) Events() <-chan engine.Event { return l.events }

// Notices returns leaderboard notices.
func (l *Loop) Notices() <-chan Notice { return l.notices }

// Frames returns the latest snapshot after each tick. Frames nobody reads are
// replaced, never queued.
func (l *Loop) Frames() <-chan engine.Snapshot { return l.frames }

// Send queues an action for the next tick.
func (l *Loop) Send(ctx context.Context, a core.Action) error {
	select {
	case l.actions <- a:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Submit enters name for the finished game.
func (l *Loop) Submit(ctx context.Context, name string) error {
	select {
	case l.submits <- name:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes ticks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.clock.Stop()

	frame := core.NewInputFrame()
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case a := <-l.actions:
			frame.Set(a)

		case name := <-l.submits:
			sub, task, err := l.sess.SubmitName(ctx, name)
			if err != nil {
				l.logger.Warn("submit rejected", "name", name, "err", err)
				continue
			}
			if !l.publishNotice(ctx, sub.Notice) {
				return nil
			}
			if task != nil {
				go func() {
					res := task()
					select {
					case l.results <- res:
					case <-ctx.Done():
					}
				}()
			}

		case res := <-l.results:
			if n, ok := l.sess.Deliver(res); ok {
				if !l.publishNotice(ctx, n) {
					return nil
				}
			}

		case <-l.clock.C():
			res := l.sess.Step(frame)
			frame.Clear()
			for _, ev := range res.Events {
				select {
				case l.events <- ev:
				case <-ctx.Done():
					return nil
				}
			}
			l.publishFrame(res.Snapshot)
		}
	}
}

func (l *Loop) publishNotice(ctx context.Context, n Notice) bool {
	select {
	case l.notices <- n:
		return true
	case <-ctx.Done():
		return false
	}
}

func (l *Loop) publishFrame(s engine.Snapshot) {
	select {
	case <-l.frames:
	default:
	}
	l.frames <- s
}
