package typewriter

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// fakeClock is a scheduler whose timers fire only when advanced.
type fakeClock struct {
	now     time.Time
	pending []fakeTimer
	// armed records the kind of every timer ever scheduled.
	armed []timerKind
}

type fakeTimer struct {
	due time.Time
	fn  func(time.Time) tea.Msg
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) After(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	c.pending = append(c.pending, fakeTimer{due: c.now.Add(d), fn: fn})
	if msg, ok := fn(c.now).(timerMsg); ok {
		c.armed = append(c.armed, msg.kind)
	}
	return nil
}

// advance moves the clock forward by d and delivers every timer that falls
// due on the way, in due order.
func (c *fakeClock) advance(m Model, d time.Duration) Model {
	target := c.now.Add(d)
	for {
		i := c.next(target)
		if i < 0 {
			break
		}
		t := c.pending[i]
		c.pending = append(c.pending[:i], c.pending[i+1:]...)
		c.now = t.due
		m, _ = m.Update(t.fn(t.due))
	}
	c.now = target
	return m
}

func (c *fakeClock) next(limit time.Time) int {
	idx := -1
	for i, t := range c.pending {
		if t.due.After(limit) {
			continue
		}
		if idx < 0 || t.due.Before(c.pending[idx].due) {
			idx = i
		}
	}
	return idx
}

func (c *fakeClock) everArmed(kind timerKind) bool {
	for _, k := range c.armed {
		if k == kind {
			return true
		}
	}
	return false
}

func newTestModel(t *testing.T, cfg Config) (Model, *fakeClock) {
	t.Helper()
	m := New(cfg)
	clk := newFakeClock()
	m.timers.sched = clk
	m, _ = m.Update(m.Init()())
	return m, clk
}

// msgsOf runs cmd and flattens batches into the produced messages.
func msgsOf(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, msgsOf(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func noVariance(cfg Config) Config {
	cfg.DelayVariance = -1
	return cfg
}
