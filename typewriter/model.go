package typewriter

import (
	"log/slog"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

var lastID atomic.Int64

func nextID() int { return int(lastID.Add(1)) }

// Model is a Bubble Tea component that animates one string.
//
// A Model does nothing until the command returned by Init has been
// delivered to Update. Host controls (SetActive, SetPaused, SetText,
// SetBackwards) return the commands needed to keep the animation running.
type Model struct {
	id  int
	cfg settings

	timers timers
	reveal reveal
	cursor cursor

	active  bool
	paused  bool
	waiting bool

	mounted   bool
	unmounted bool
}

func New(cfg Config) Model {
	s := cfg.resolve()
	id := nextID()
	return Model{
		id:     id,
		cfg:    s,
		timers: timers{id: id, sched: teaScheduler{}},
		reveal: newReveal(s.text, s.backwards),
		cursor: newCursor(s),
		active: !cfg.StartInactive,
	}
}

// ID identifies the Model in FinishedMsg.
func (m Model) ID() int { return m.id }

// Init returns the command that mounts the Model.
func (m Model) Init() tea.Cmd {
	id := m.id
	return func() tea.Msg { return mountMsg{id: id} }
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mountMsg:
		if msg.id != m.id || m.mounted || m.unmounted {
			return m, nil
		}
		m.mounted = true
		m.cfg.log.Debug("typewriter mounted",
			slog.Int("id", m.id),
			slog.Int("len", len(m.reveal.clusters)),
			slog.Bool("active", m.active))
		return m, m.start()
	case timerMsg:
		if !m.live() || !m.timers.fire(msg) {
			return m, nil
		}
		switch msg.kind {
		case timerStart:
			return m, m.openGate()
		case timerTick:
			return m, m.handleTick()
		case timerBlink:
			return m, m.handleBlink(msg.at)
		case timerFade:
			return m, m.handleFade(msg.at)
		}
	}
	return m, nil
}

// SetActive starts or halts the animation. Halting keeps the progress;
// activating again resumes from the same character after the start delay.
func (m Model) SetActive(active bool) (Model, tea.Cmd) {
	if m.active == active {
		return m, nil
	}
	m.active = active
	if !m.live() {
		return m, nil
	}
	if active {
		return m, tea.Batch(m.activate(), m.cursorStart())
	}
	m.timers.cancel(timerStart, timerTick)
	m.waiting = false
	m.cursorHold()
	return m, nil
}

// SetPaused suspends the reveal without touching the start delay or the
// cursor.
func (m Model) SetPaused(paused bool) (Model, tea.Cmd) {
	if m.paused == paused {
		return m, nil
	}
	m.paused = paused
	if !m.live() {
		return m, nil
	}
	if paused {
		m.timers.cancel(timerTick)
		return m, nil
	}
	return m, m.step()
}

// SetText replaces the text. A different text starts a new animation:
// progress, the finished flag and the cursor are reset.
func (m Model) SetText(text string) (Model, tea.Cmd) {
	if text == m.cfg.text {
		return m, nil
	}
	m.cfg.text = text
	return m, m.reset()
}

// SetBackwards switches direction. A different direction starts a new
// animation like SetText.
func (m Model) SetBackwards(backwards bool) (Model, tea.Cmd) {
	if backwards == m.cfg.backwards {
		return m, nil
	}
	m.cfg.backwards = backwards
	return m, m.reset()
}

// Restart runs the current text and direction again from the start.
func (m Model) Restart() (Model, tea.Cmd) {
	return m, m.reset()
}

// Unmount cancels every timer. The returned Model ignores all further
// messages and never reports completion.
func (m Model) Unmount() Model {
	if m.unmounted {
		return m
	}
	m.timers.cancelAll()
	m.unmounted = true
	m.cfg.log.Debug("typewriter unmounted", slog.Int("id", m.id), slog.Bool("finished", m.reveal.finished))
	return m
}

func (m Model) State() State {
	return State{
		Revealed: m.reveal.revealed(),
		Index:    m.reveal.index,
		Len:      len(m.reveal.clusters),
		Waiting:  m.waiting,
		Finished: m.reveal.finished,
		Active:   m.active,
		Paused:   m.paused,
		Cursor:   m.cursor.state,
		Opacity:  m.cursor.opacity,
	}
}

func (m Model) Text() string     { return m.cfg.text }
func (m Model) Revealed() string { return m.reveal.revealed() }
func (m Model) Finished() bool   { return m.reveal.finished }

func (m Model) live() bool { return m.mounted && !m.unmounted }

func (m *Model) start() tea.Cmd {
	var gate tea.Cmd
	if m.active {
		gate = m.activate()
	} else {
		gate = m.step()
	}
	return tea.Batch(gate, m.cursorStart())
}

func (m *Model) reset() tea.Cmd {
	m.timers.cancelAll()
	m.reveal = newReveal(m.cfg.text, m.cfg.backwards)
	m.waiting = false
	m.cursorReset()
	if !m.live() {
		return nil
	}
	m.cfg.log.Debug("typewriter reset",
		slog.Int("id", m.id),
		slog.Int("len", len(m.reveal.clusters)),
		slog.Bool("backwards", m.reveal.backwards))
	return m.start()
}
