package typewriter

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timerKind identifies one of the timer classes a Model owns.
type timerKind uint8

const (
	timerStart timerKind = iota // start delay
	timerTick                   // next character
	timerBlink                  // blink frame
	timerFade                   // fade delay, then fade frames
	timerKinds
)

func (k timerKind) String() string {
	switch k {
	case timerStart:
		return "start"
	case timerTick:
		return "tick"
	case timerBlink:
		return "blink"
	case timerFade:
		return "fade"
	default:
		return "unknown"
	}
}

// timerMsg is delivered when an armed timer elapses.
type timerMsg struct {
	id   int
	kind timerKind
	tag  int
	at   time.Time
}

// scheduler is the host timer facility. Production uses tea.Tick; tests
// substitute a fake clock.
type scheduler interface {
	Now() time.Time
	After(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd
}

type teaScheduler struct{}

func (teaScheduler) Now() time.Time { return time.Now() }

func (teaScheduler) After(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return tea.Tick(d, fn)
}

// timers tracks the live timer of every class. A tea.Tick cannot be
// stopped once issued, so cancel only bumps the tag and fire drops any
// delivery whose tag is not current.
type timers struct {
	id    int
	sched scheduler
	tags  [timerKinds]int
	armed [timerKinds]bool
}

// arm replaces any pending timer of the kind with a new one firing after d.
func (t *timers) arm(kind timerKind, d time.Duration) tea.Cmd {
	if d < 0 {
		d = 0
	}
	t.tags[kind]++
	t.armed[kind] = true
	id, tag := t.id, t.tags[kind]
	return t.sched.After(d, func(at time.Time) tea.Msg {
		return timerMsg{id: id, kind: kind, tag: tag, at: at}
	})
}

func (t *timers) cancel(kinds ...timerKind) {
	for _, k := range kinds {
		if t.armed[k] {
			t.tags[k]++
			t.armed[k] = false
		}
	}
}

func (t *timers) cancelAll() {
	t.cancel(timerStart, timerTick, timerBlink, timerFade)
}

func (t *timers) pending(kind timerKind) bool { return t.armed[kind] }

// fire reports whether msg is the live timer of its kind and disarms it.
func (t *timers) fire(msg timerMsg) bool {
	if msg.id != t.id || msg.kind >= timerKinds {
		return false
	}
	if !t.armed[msg.kind] || msg.tag != t.tags[msg.kind] {
		return false
	}
	t.armed[msg.kind] = false
	return true
}

func (t *timers) now() time.Time { return t.sched.Now() }
