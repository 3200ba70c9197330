package typewriter

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrUnknownCursorKind is returned by ParseCursorKind.
var ErrUnknownCursorKind = errors.New("typewriter: unknown cursor kind")

// CursorKind selects how the cursor is drawn.
type CursorKind string

const (
	// CursorView is a block of Style.Cursor.Width cells. It waits
	// CursorDisappearDelay before fading out.
	CursorView CursorKind = "view"
	// CursorTextSimple is a text glyph (Config.CursorChar). It fades out
	// as soon as the reveal finishes.
	CursorTextSimple CursorKind = "text_simple"
)

func (k CursorKind) valid() bool { return k == CursorView || k == CursorTextSimple }

// ParseCursorKind parses "view" or "text_simple" ("text-simple" also works).
func ParseCursorKind(name string) (CursorKind, error) {
	k := CursorKind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_"))
	if !k.valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCursorKind, name)
	}
	return k, nil
}

// CursorState is the cursor animator state.
type CursorState int

const (
	// CursorBlinking oscillates between the opacity bounds.
	CursorBlinking CursorState = iota
	// CursorFading waits out the disappear delay (still blinking), then
	// ramps the opacity down to zero.
	CursorFading
	// CursorHidden is terminal: opacity is zero and no timer runs.
	CursorHidden
	// CursorSuppressed means the cursor is disabled and never drawn.
	CursorSuppressed
)

func (s CursorState) String() string {
	switch s {
	case CursorBlinking:
		return "blinking"
	case CursorFading:
		return "fading"
	case CursorHidden:
		return "hidden"
	case CursorSuppressed:
		return "suppressed"
	default:
		return fmt.Sprintf("CursorState(%d)", int(s))
	}
}

type cursor struct {
	state   CursorState
	opacity float64

	// blinkStart anchors the oscillation; zero while no blink runs.
	blinkStart time.Time

	// fadeStart is zero until the ramp begins.
	fadeStart time.Time
	fadeFrom  float64
}

func newCursor(s settings) cursor {
	if s.disableCursor {
		return cursor{state: CursorSuppressed}
	}
	return cursor{state: CursorBlinking, opacity: s.style.Cursor.MaxOpacity}
}

// blinks reports whether the state wants the oscillation running.
func (c cursor) blinks() bool {
	return c.state == CursorBlinking || (c.state == CursorFading && c.fadeStart.IsZero())
}

// blinkOpacity is a triangle wave: hi at 0, lo after one phase, hi again
// after two.
func blinkOpacity(elapsed, phase time.Duration, lo, hi float64) float64 {
	if phase <= 0 || elapsed < 0 {
		return hi
	}
	p := elapsed % (2 * phase)
	frac := float64(p) / float64(phase)
	if p < phase {
		return hi - (hi-lo)*frac
	}
	return lo + (hi-lo)*(frac-1)
}

// fadeOpacity ramps linearly from `from` down to zero over d.
func fadeOpacity(from float64, elapsed, d time.Duration) float64 {
	if d <= 0 || elapsed >= d {
		return 0
	}
	if elapsed <= 0 {
		return from
	}
	return from * (1 - float64(elapsed)/float64(d))
}

// cursorStart starts the blink when the cursor should be blinking and no
// blink timer runs yet. An unfinished cursor only blinks while active.
func (m *Model) cursorStart() tea.Cmd {
	if !m.live() || !m.cursor.blinks() || m.timers.pending(timerBlink) {
		return nil
	}
	if !m.active && !m.reveal.finished {
		return nil
	}
	m.cursor.blinkStart = m.timers.now()
	m.cursor.opacity = m.cfg.style.Cursor.MaxOpacity
	return m.timers.arm(timerBlink, m.cfg.frame)
}

// cursorHold stops the blink of an unfinished cursor and pins it at full
// opacity.
func (m *Model) cursorHold() {
	if m.reveal.finished || !m.cursor.blinks() {
		return
	}
	m.timers.cancel(timerBlink)
	m.cursor.blinkStart = time.Time{}
	m.cursor.opacity = m.cfg.style.Cursor.MaxOpacity
}

func (m *Model) handleBlink(at time.Time) tea.Cmd {
	if !m.cursor.blinks() {
		return nil
	}
	cs := m.cfg.style.Cursor
	m.cursor.opacity = blinkOpacity(at.Sub(m.cursor.blinkStart), m.cfg.blinkTime, cs.MinOpacity, cs.MaxOpacity)
	return m.timers.arm(timerBlink, m.cfg.frame)
}

// cursorFinished reacts to the finished edge.
func (m *Model) cursorFinished() tea.Cmd {
	if m.cursor.state != CursorBlinking {
		return nil
	}
	if !m.cfg.hideOnFinish {
		return m.cursorStart()
	}
	m.cursor.state = CursorFading
	return tea.Batch(m.cursorStart(), m.timers.arm(timerFade, m.cfg.fadeDelay()))
}

// handleFade begins the ramp on the first delivery and advances it on the
// following frames until the cursor is hidden.
func (m *Model) handleFade(at time.Time) tea.Cmd {
	if m.cursor.state != CursorFading {
		return nil
	}
	if m.cursor.fadeStart.IsZero() {
		m.timers.cancel(timerBlink)
		m.cursor.blinkStart = time.Time{}
		m.cursor.fadeStart = at
		m.cursor.fadeFrom = m.cursor.opacity
		m.cfg.log.Debug("typewriter cursor fading", slog.Int("id", m.id))
		return m.timers.arm(timerFade, m.cfg.frame)
	}

	elapsed := at.Sub(m.cursor.fadeStart)
	m.cursor.opacity = fadeOpacity(m.cursor.fadeFrom, elapsed, m.cfg.blinkTime)
	if elapsed >= m.cfg.blinkTime {
		m.cursor.state = CursorHidden
		m.cursor.opacity = 0
		return nil
	}
	return m.timers.arm(timerFade, m.cfg.frame)
}

// cursorReset returns the animator to its initial state for a new reveal.
func (m *Model) cursorReset() {
	m.timers.cancel(timerBlink, timerFade)
	m.cursor = newCursor(m.cfg)
}
