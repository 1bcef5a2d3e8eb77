// Package tui provides the Bubble Tea integration for the arcade. It handles
// the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/suoak/cockpit-tools-sub002/internal/breakout"
	"github.com/suoak/cockpit-tools-sub002/internal/core"
	"github.com/suoak/cockpit-tools-sub002/internal/history"
)

// nominalFPS is the frame rate dt is normalized against: a tick that took
// exactly one nominal frame steps the simulation by dt=1.
const nominalFPS = 60.0

// TickMsg drives one simulation frame.
type TickMsg time.Time

func tickCmd(rate int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// recordOutcome carries the persisted record's identity out of the record
// callback. Shared by pointer because Bubble Tea models are values.
type recordOutcome struct {
	id    string
	rank  int
	total int
}

// Model is the Bubble Tea model running one breakout session.
type Model struct {
	game    *breakout.Game
	screen  *core.Screen
	store   *history.Store
	icons   *IconSet
	config  core.RuntimeConfig
	keys    *KeyMapper
	view    boardView
	input   core.Input
	outcome *recordOutcome

	lastTick time.Time
	quitting bool
}

// NewModel creates a play model. kv backs both history and icon state and
// may be nil for a non-persisting session.
func NewModel(kv history.KV, cfg core.RuntimeConfig, tun breakout.Tuning) Model {
	if cfg.Seed == 0 {
		cfg.Seed = uint32(time.Now().UnixNano()) //#nosec G115 -- seed truncation is fine
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = int(nominalFPS)
	}

	store := history.NewStore(kv)
	outcome := &recordOutcome{}

	game := breakout.NewGameTuned(cfg.Seed, tun, func(res breakout.RunResult) {
		rec := history.Record{
			ID:         fmt.Sprintf("%d-%08x", time.Now().UnixNano(), res.Seed),
			Score:      res.Score,
			Level:      res.Level,
			DurationMs: res.Duration.Milliseconds(),
			CreatedAt:  time.Now(),
			Reason:     res.Reason,
			Seed:       res.Seed,
			Drops:      res.Drops,
		}
		records := store.Append(rec)
		outcome.id = rec.ID
		outcome.rank = history.Rank(records, rec.ID)
		outcome.total = len(records)
	})

	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:   store,
		icons:   LoadIconSet(kv),
		config:  cfg,
		keys:    NewKeyMapper(),
		view:    newBoardView(cfg.ScreenW, cfg.ScreenH),
		outcome: outcome,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and advances the session.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.keys.MapKey(msg, &m.input) {
			m.game.Exit(time.Now())
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.view = newBoardView(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

// handleTick runs one simulation frame. dt is derived from real elapsed
// time so a slow terminal still plays at the right speed.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := 1.0
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick).Seconds() * nominalFPS
	}
	m.lastTick = now

	m.game.Step(dt, now, m.input)
	m.input.Clear()

	return m, tickCmd(m.config.TickRate)
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	drawGame(m.screen, m.game, m.icons, m.view)
	if m.game.Phase() == breakout.PhaseOver && m.outcome.rank > 0 {
		m.screen.DrawTextCenteredColor(
			m.screen.Height()/2+4,
			fmt.Sprintf("rank #%d of %d", m.outcome.rank, m.outcome.total),
			core.ColorBrightCyan,
		)
	}
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for a local play session.
func Run(kv history.KV, cfg core.RuntimeConfig, tun breakout.Tuning) error {
	p := tea.NewProgram(
		NewModel(kv, cfg, tun),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
