package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/typist/typewriter"
)

type singleKeys struct {
	toggle, replay, quit key.Binding
}

// single hosts one typewriter with a status line.
type single struct {
	tw       typewriter.Model
	keys     singleKeys
	finishes int
}

func newSingle(cfg typewriter.Config) single {
	return single{
		tw: typewriter.New(cfg),
		keys: singleKeys{
			toggle: key.NewBinding(key.WithKeys("enter", " ")),
			replay: key.NewBinding(key.WithKeys("r")),
			quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc")),
		},
	}
}

func (m single) Init() tea.Cmd { return m.tw.Init() }

func (m single) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			m.tw = m.tw.Unmount()
			return m, tea.Quit
		case key.Matches(msg, m.keys.toggle):
			m.tw, cmd = m.tw.SetActive(!m.tw.State().Active)
		case key.Matches(msg, m.keys.replay):
			m.tw, cmd = m.tw.Restart()
		}
		return m, cmd
	case typewriter.FinishedMsg:
		if msg.ID == m.tw.ID() {
			m.finishes++
		}
		return m, nil
	}
	m.tw, cmd = m.tw.Update(msg)
	return m, cmd
}

func (m single) View() string {
	st := m.tw.State()
	status := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf(
		"%d/%d  active=%t  cursor=%s  finished %d×", st.Index, st.Len, st.Active, st.Cursor, m.finishes))
	return m.tw.View() + "\n\n" + status + "\n"
}
