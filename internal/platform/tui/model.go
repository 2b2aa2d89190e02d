package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/knight-skies/internal/config"
	"github.com/vovakirdan/knight-skies/internal/core"
	"github.com/vovakirdan/knight-skies/internal/engine"
	"github.com/vovakirdan/knight-skies/internal/leaderboard"
	"github.com/vovakirdan/knight-skies/internal/session"
)

// view identifies what the model is showing.
type view int

const (
	viewPlay view = iota
	viewName
	viewScores
)

// remoteResultMsg carries a finished world task back to Update.
type remoteResultMsg session.RemoteResult

// noticeSeconds is how long a notice stays on screen.
const noticeSeconds = 3

// Model is the Bubble Tea model for one player: title, countdown, run,
// nickname entry and the score screens.
type Model struct {
	ctx     context.Context
	sess    *session.Session
	cfg     config.SkiesConfig
	runtime core.RuntimeConfig
	logger  *log.Logger

	screen    *core.Screen
	keyMapper *KeyMapper
	input     core.InputFrame
	snap      engine.Snapshot

	view     view
	nickname leaderboard.Nickname
	scores   ScoreboardModel
	best     int

	notice      string
	noticeTicks int
	goTicks     int
	quitting    bool
}

// NewModel creates a model driving sess in a terminal described by rt.
func NewModel(ctx context.Context, sess *session.Session, rt core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.Default()
	}
	m := Model{
		ctx:       ctx,
		sess:      sess,
		cfg:       sess.Engine().Config(),
		runtime:   rt,
		logger:    logger.WithPrefix("tui"),
		screen:    core.NewScreen(rt.ScreenW, rt.ScreenH),
		keyMapper: NewKeyMapper(),
		input:     core.NewInputFrame(),
		snap:      sess.Engine().Snapshot(),
		nickname:  leaderboard.NewNickname(),
		scores:    NewScoreboardModel(rt.ScreenW, rt.ScreenH, sess.Online()),
	}
	m.refreshLocal()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.cfg.Timing.TickInterval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.scores.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case remoteResultMsg:
		n, ok := m.sess.Deliver(session.RemoteResult(msg))
		m.scores.SetWorld(m.sess.WorldBoard())
		if ok {
			m.setNotice(n.Message)
		}
		return m, nil
	}

	return m, nil
}

// handleKey routes a key to the active view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case viewName:
		return m.handleNameKey(msg)
	case viewScores:
		return m.handleScoresKey(msg)
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action == core.ActionBack && m.snap.State == engine.StateIdle {
		return m.openScores(TabLocal)
	}
	if action == core.ActionBack && m.snap.State == engine.StateGameOver {
		if _, ok := m.sess.Pending(); ok {
			m.openName()
			return m, nil
		}
		return m.openScores(TabLocal)
	}
	m.keyMapper.MapKeyToFrame(msg, &m.input)
	return m, nil
}

// handleNameKey edits the three-letter nickname.
func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit && msg.String() == "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionUp:
		m.nickname.Next()
	case action == core.ActionDown:
		m.nickname.Prev()
	case action == core.ActionLeft:
		m.nickname.Left()
	case action == core.ActionRight:
		m.nickname.Right()
	case action == core.ActionConfirm:
		return m.submitName()
	case action == core.ActionBack:
		return m.openScores(TabLocal)
	}
	return m, nil
}

// handleScoresKey lets the scoreboard scroll and switch tabs.
func (m Model) handleScoresKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionConfirm:
		m.view = viewPlay
		m.input.Set(core.ActionStart)
		return m, nil
	case action == core.ActionBack:
		m.view = viewPlay
		m.input.Set(core.ActionReset)
		return m, nil
	}

	before := m.scores.Tab()
	var cmd tea.Cmd
	m.scores, cmd = m.scores.Update(msg)
	if before != TabWorld && m.scores.Tab() == TabWorld {
		return m, runTask(m.sess.FetchWorldTask(m.ctx))
	}
	return m, cmd
}

// handleTick steps the session once and reacts to its events.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	res := m.sess.Step(m.input)
	m.input.Clear()
	m.snap = res.Snapshot

	if m.goTicks > 0 {
		m.goTicks--
	}
	if m.noticeTicks > 0 {
		m.noticeTicks--
		if m.noticeTicks == 0 {
			m.notice = ""
		}
	}

	for _, ev := range res.Events {
		switch ev := ev.(type) {
		case engine.CountdownTickEvent:
			if ev.Remaining == 0 {
				m.goTicks = max(m.cfg.TickRate()/2, 1)
			}
		case engine.GameOverEvent:
			if m.wantsName(ev.FinalScore) {
				m.openName()
			}
		}
	}

	return m, tickCmd(m.cfg.Timing.TickInterval)
}

// wantsName reports whether a finished run is worth a nickname: it makes the
// local list or a world list may take it.
func (m Model) wantsName(score int) bool {
	if _, ok := m.sess.Pending(); !ok {
		return false
	}
	return m.sess.Online() || leaderboard.Admits(m.sess.LocalBoard(), score)
}

func (m *Model) openName() {
	m.nickname = leaderboard.NewNickname()
	m.view = viewName
}

func (m Model) openScores(tab ScoreTab) (tea.Model, tea.Cmd) {
	m.view = viewScores
	m.refreshLocal()
	m.scores.SetTab(tab)
	if tab == TabWorld {
		return m, runTask(m.sess.FetchWorldTask(m.ctx))
	}
	return m, nil
}

// submitName saves the nickname and starts the world submission, if any.
func (m Model) submitName() (tea.Model, tea.Cmd) {
	sub, task, err := m.sess.SubmitName(m.ctx, m.nickname.String())
	if err != nil {
		m.logger.Warn("cannot submit name", "err", err)
		m.setNotice("Could not submit name")
		return m.openScores(TabLocal)
	}

	m.setNotice(sub.Notice.Message)
	m.scores.SetHighlight(sub.Record)
	m.view = viewScores
	m.refreshLocal()
	m.scores.SetTab(TabLocal)
	return m, runTask(task)
}

// runTask runs a world task off the update loop.
func runTask(task session.RemoteTask) tea.Cmd {
	if task == nil {
		return nil
	}
	return func() tea.Msg {
		return remoteResultMsg(task())
	}
}

func (m *Model) refreshLocal() {
	board := m.sess.LocalBoard()
	m.scores.SetLocal(board)
	if len(board) > 0 {
		m.best = board[0].Score
	}
}

func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeTicks = max(m.cfg.TickRate()*noticeSeconds, 1)
}

// View renders the active view.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewName:
		return m.nameView()
	case viewScores:
		return m.scores.View(m.notice)
	}

	m.screen.Clear()
	v := FitViewport(m.screen.Width(), m.screen.Height(), m.snap.ScreenW, m.snap.ScreenH)
	DrawWorld(m.screen, v, m.snap)
	DrawHUD(m.screen, m.snap, m.best)
	m.drawOverlay(v)
	return RenderScreen(m.screen)
}

// drawOverlay draws the title, countdown and game over texts.
func (m Model) drawOverlay(v Viewport) {
	mid := v.OffsetY + v.Rows/2
	switch m.snap.State {
	case engine.StateIdle:
		m.screen.DrawTextCentered(mid-2, "K N I G H T   S K I E S", core.ColorCyan)
		m.screen.DrawTextCentered(mid, "ENTER start   SPACE flap", core.ColorBrightWhite)
		m.screen.DrawTextCentered(mid+1, "B scores   Q quit", core.ColorGray)
	case engine.StateCountdown:
		m.screen.DrawTextCentered(mid, fmt.Sprintf("%d", m.snap.Countdown), core.ColorYellow)
	case engine.StateRunning:
		if m.goTicks > 0 {
			m.screen.DrawTextCentered(mid, "GO!", core.ColorYellow)
		}
	case engine.StateGameOver:
		const panelW, panelH = 36, 7
		panel := core.NewRect((m.screen.Width()-panelW)/2, mid-4, panelW, panelH)
		m.screen.DrawRect(panel, ' ', core.ColorDefault)
		m.screen.DrawBox(panel)
		m.screen.DrawTextCentered(mid-2, "GAME OVER", core.ColorBrightRed)
		m.screen.DrawTextCentered(mid, fmt.Sprintf("SCORE %d", m.snap.FinalScore), core.ColorBrightWhite)
		m.screen.DrawTextCentered(mid+1, "ENTER retry   R title   B scores", core.ColorGray)
	}
	if m.notice != "" {
		m.screen.DrawTextCentered(mid+3, m.notice, core.ColorCyan)
	}
}

// nameView renders the nickname entry.
func (m Model) nameView() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	letterStyle := lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("252"))
	cursorStyle := letterStyle.
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	letters := make([]string, leaderboard.NameLength)
	for i := range letters {
		style := letterStyle
		if i == m.nickname.Cursor() {
			style = cursorStyle
		}
		letters[i] = style.Render(string(m.nickname.Letter(i)))
	}

	score := m.snap.FinalScore
	if game, ok := m.sess.Pending(); ok {
		score = game.Score
	}

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(centerText(titleStyle.Render("NEW HIGHSCORE"), m.runtime.ScreenW))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("SCORE %d", score), m.runtime.ScreenW))
	b.WriteString("\n\n")
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, letters...), m.runtime.ScreenW))
	b.WriteString("\n\n")
	b.WriteString(centerText(hintStyle.Render("up/down letter   left/right move   enter save   esc skip"), m.runtime.ScreenW))
	return b.String()
}

// Run starts the Bubble Tea program on the current terminal.
func Run(ctx context.Context, sess *session.Session, rt core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(ctx, sess, rt, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
