package typewriter

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// activate runs on every transition to active, including mounting an
// active Model. A configured start delay closes the gate again each time.
func (m *Model) activate() tea.Cmd {
	if m.cfg.startDelay > 0 && !m.reveal.done() {
		m.waiting = true
		return m.timers.arm(timerStart, m.cfg.startDelay)
	}
	m.waiting = false
	return m.step()
}

func (m *Model) openGate() tea.Cmd {
	m.waiting = false
	m.cfg.log.Debug("typewriter start delay elapsed", slog.Int("id", m.id))
	return m.step()
}
