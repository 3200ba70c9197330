package typewriter

import (
	"log/slog"
	"math/rand/v2"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/typist/internal/grapheme"
)

// reveal is the progression over the grapheme clusters of the text.
type reveal struct {
	clusters  []string
	index     int
	backwards bool
	finished  bool
}

func newReveal(text string, backwards bool) reveal {
	r := reveal{clusters: grapheme.Split(text), backwards: backwards}
	if backwards {
		r.index = len(r.clusters)
	}
	return r
}

func (r reveal) terminal() int {
	if r.backwards {
		return 0
	}
	return len(r.clusters)
}

func (r reveal) done() bool { return r.index == r.terminal() }

func (r *reveal) advance() {
	if r.done() {
		return
	}
	if r.backwards {
		r.index--
	} else {
		r.index++
	}
}

func (r reveal) revealed() string { return grapheme.Join(r.clusters[:r.index]) }

func (r reveal) remainder() []string { return r.clusters[r.index:] }

// charDelay draws the wait before the next character: base minus variance
// plus a uniform whole-millisecond draw from [0, variance], so the result
// lies in [base-variance, base]. Negative results clamp to zero.
func charDelay(base, variance time.Duration, rnd *rand.Rand) time.Duration {
	d := base - variance
	if spread := int64(variance / time.Millisecond); spread > 0 {
		var n int64
		if rnd != nil {
			n = rnd.Int64N(spread + 1)
		} else {
			n = rand.Int64N(spread + 1)
		}
		d += time.Duration(n) * time.Millisecond
	}
	if d < 0 {
		return 0
	}
	return d
}

func (m *Model) canAdvance() bool {
	return m.live() && m.active && !m.waiting && !m.paused && !m.reveal.done()
}

// step schedules the next tick when the reveal may advance, or fires the
// finished edge when the reveal sits at its terminal index.
func (m *Model) step() tea.Cmd {
	if !m.live() {
		return nil
	}
	if m.reveal.done() {
		if m.reveal.finished {
			return nil
		}
		return m.finish()
	}
	if !m.canAdvance() || m.timers.pending(timerTick) {
		return nil
	}
	return m.timers.arm(timerTick, charDelay(m.cfg.baseDelay, m.cfg.variance, m.cfg.rand))
}

func (m *Model) handleTick() tea.Cmd {
	m.reveal.advance()
	return m.step()
}

func (m *Model) finish() tea.Cmd {
	m.reveal.finished = true
	m.cfg.log.Debug("typewriter finished",
		slog.Int("id", m.id),
		slog.Int("len", len(m.reveal.clusters)),
		slog.Bool("backwards", m.reveal.backwards))

	if m.cfg.onFinish != nil {
		m.cfg.onFinish()
	}
	id := m.id
	finished := func() tea.Msg { return FinishedMsg{ID: id} }
	return tea.Batch(finished, m.cursorFinished())
}
