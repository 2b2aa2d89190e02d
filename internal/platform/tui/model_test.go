package tui

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/knight-skies/internal/config"
	"github.com/vovakirdan/knight-skies/internal/core"
	"github.com/vovakirdan/knight-skies/internal/engine"
	"github.com/vovakirdan/knight-skies/internal/leaderboard"
	"github.com/vovakirdan/knight-skies/internal/session"
	"github.com/vovakirdan/knight-skies/internal/storage"
)

type stubRemote struct {
	mu      sync.Mutex
	rows    []leaderboard.Record
	failing bool
}

func (s *stubRemote) QueryTopN(_ context.Context, _ leaderboard.Query) ([]leaderboard.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return nil, errors.New("offline")
	}
	return append([]leaderboard.Record(nil), s.rows...), nil
}

func (s *stubRemote) InsertRecord(_ context.Context, _ string, r leaderboard.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, r)
	return nil
}

func newTestModel(t *testing.T, remote leaderboard.RemoteStore) (Model, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "skies.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := log.New(io.Discard)
	opts := session.Options{
		Config: config.DefaultSkiesConfig(),
		Seed:   1,
		Local:  leaderboard.NewLocal(store, logger),
		Plays:  store,
		Logger: logger,
	}
	if remote != nil {
		opts.Remote = leaderboard.NewRemote(remote)
	}
	sess, err := session.New(opts)
	if err != nil {
		t.Fatalf("session.New() failed: %v", err)
	}

	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1}
	return NewModel(context.Background(), sess, rt, logger), store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

// playToGameOver starts a run and lets the actor fall until the game ends.
func playToGameOver(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	for range 500 {
		m, _ = update(t, m, TickMsg{})
		if m.snap.State == engine.StateGameOver {
			return m
		}
	}
	t.Fatalf("no game over after 500 ticks, state %v", m.snap.State)
	return m
}

func TestModelTitleScreen(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = update(t, m, TickMsg{})

	if m.snap.State != engine.StateIdle {
		t.Fatalf("state = %v, want idle", m.snap.State)
	}
	m.View()
	if !strings.Contains(m.screen.String(), "K N I G H T") {
		t.Errorf("title screen missing title:\n%s", m.screen.String())
	}
}

func TestModelCountdownShowsGo(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	for m.snap.State != engine.StateRunning {
		m, _ = update(t, m, TickMsg{})
	}

	if m.goTicks == 0 {
		t.Fatal("GO! cue not armed when the run began")
	}
	m.View()
	if !strings.Contains(m.screen.String(), "GO!") {
		t.Errorf("GO! cue missing:\n%s", m.screen.String())
	}
}

func TestModelNameEntryFlow(t *testing.T) {
	m, store := newTestModel(t, nil)
	m = playToGameOver(t, m)

	if m.view != viewName {
		t.Fatalf("view = %v, want name entry after first game", m.view)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})    // B
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight}) // slot 2
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})  // Z
	if got := m.nickname.String(); got != "BZA" {
		t.Fatalf("nickname = %q, want BZA", got)
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("offline submission should not start a world task")
	}
	if m.view != viewScores {
		t.Fatalf("view = %v, want scores", m.view)
	}
	if m.notice != "Highscore saved!" {
		t.Errorf("notice = %q", m.notice)
	}

	board := leaderboard.NewLocal(store, log.New(io.Discard)).Load()
	if len(board) != 1 || board[0].Name != "BZA" || board[0].Score != 0 {
		t.Errorf("local board = %+v", board)
	}
	if got := m.scores.View(m.notice); !strings.Contains(got, "BZA") {
		t.Errorf("scoreboard does not show the new entry:\n%s", got)
	}
}

func TestModelSkipName(t *testing.T) {
	m, store := newTestModel(t, nil)
	m = playToGameOver(t, m)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewScores {
		t.Fatalf("view = %v, want scores", m.view)
	}
	if board := leaderboard.NewLocal(store, log.New(io.Discard)).Load(); len(board) != 0 {
		t.Errorf("skipping should not save, board = %+v", board)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, TickMsg{})
	if m.view != viewPlay || m.snap.State != engine.StateIdle {
		t.Errorf("back from scores: view %v state %v, want play idle", m.view, m.snap.State)
	}
}

func TestModelFullLocalBoardSkipsName(t *testing.T) {
	m, store := newTestModel(t, nil)
	local := leaderboard.NewLocal(store, log.New(io.Discard))
	for i := range leaderboard.Capacity {
		if _, _, err := local.Submit(leaderboard.Record{Name: "AAA", Score: 10 + i}); err != nil {
			t.Fatalf("Submit() failed: %v", err)
		}
	}

	m = playToGameOver(t, m)
	if m.view != viewPlay {
		t.Errorf("view = %v, a zero score should not ask for a name", m.view)
	}
}

func TestModelWorldSubmission(t *testing.T) {
	remote := &stubRemote{}
	m, _ := newTestModel(t, remote)
	m = playToGameOver(t, m)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("online submission should return a world task")
	}

	m, _ = update(t, m, cmd())
	if m.notice != "World highscore updated!" {
		t.Errorf("notice = %q, want world update", m.notice)
	}
	if len(m.sess.WorldBoard()) != 1 {
		t.Errorf("world board = %+v", m.sess.WorldBoard())
	}
}

func TestModelWorldFailureNotice(t *testing.T) {
	remote := &stubRemote{failing: true}
	m, _ := newTestModel(t, remote)
	m = playToGameOver(t, m)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, cmd())
	if m.notice != "World leaderboard unavailable" {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestModelWorldTabFetches(t *testing.T) {
	remote := &stubRemote{rows: []leaderboard.Record{{Name: "TOP", Score: 99}}}
	m, _ := newTestModel(t, remote)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewScores {
		t.Fatalf("view = %v, want scores", m.view)
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if cmd == nil {
		t.Fatal("opening the world tab should fetch")
	}
	m, _ = update(t, m, cmd())

	if m.scores.Tab() != TabWorld {
		t.Errorf("tab = %v, want world", m.scores.Tab())
	}
	if got := m.scores.View(""); !strings.Contains(got, "TOP") {
		t.Errorf("world tab missing fetched row:\n%s", got)
	}
	if m.notice != "" {
		t.Errorf("plain fetch set notice %q", m.notice)
	}
}

func TestModelNoticeExpires(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.setNotice("hello")

	for range m.cfg.TickRate() * noticeSeconds {
		m, _ = update(t, m, TickMsg{})
	}
	if m.notice != "" {
		t.Errorf("notice %q did not expire", m.notice)
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, cmd := update(t, m, runeKey("q"))
	if cmd == nil || !m.quitting {
		t.Fatal("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}
