package gallery

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/iw2rmb/typist/typewriter"
)

const (
	defaultTextWidth = 60
	playHint         = "Press enter to play."
)

// Config configures the gallery Model.
type Config struct {
	Catalog Catalog

	// TextWidth is the column at which example texts are wrapped.
	// Zero means 60.
	TextWidth int

	// Zero values select DefaultKeyMap and DefaultStyles.
	KeyMap KeyMap
	Styles Styles

	Renderer *lipgloss.Renderer
	Logger   *slog.Logger
}

type box struct {
	section   int
	example   Example
	tw        typewriter.Model
	played    bool
	backwards bool
}

// Model is the gallery host: a header typewriter that hands over to the
// subheader when it finishes, then one box per catalog example. Boxes stay
// inactive until played.
type Model struct {
	cfg    Config
	keys   KeyMap
	styles Styles
	log    *slog.Logger

	header    typewriter.Model
	subheader typewriter.Model

	sections []Section
	boxes    []box
	selected int
	offsets  []int

	help     help.Model
	viewport viewport.Model
	width    int
	height   int
}

func New(cfg Config) (Model, error) {
	if cfg.TextWidth <= 0 {
		cfg.TextWidth = defaultTextWidth
	}
	if cfg.Renderer == nil {
		cfg.Renderer = lipgloss.DefaultRenderer()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	keys := cfg.KeyMap
	if reflect.DeepEqual(keys, KeyMap{}) {
		keys = DefaultKeyMap()
	}
	styles := cfg.Styles
	if reflect.DeepEqual(styles, Styles{}) {
		styles = DefaultStyles(cfg.Renderer)
	}

	m := Model{
		cfg:      cfg,
		keys:     keys,
		styles:   styles,
		log:      cfg.Logger,
		sections: cfg.Catalog.Sections,
		help:     help.New(),
		viewport: viewport.New(0, 0),
	}

	var err error
	m.header, err = m.newTypewriter(cfg.Catalog.Header, styles.Header, true, 0)
	if err != nil {
		return Model{}, fmt.Errorf("header: %w", err)
	}
	m.subheader, err = m.newTypewriter(cfg.Catalog.Subheader, styles.Subheader, false, 0)
	if err != nil {
		return Model{}, fmt.Errorf("subheader: %w", err)
	}

	for si, s := range cfg.Catalog.Sections {
		for _, ex := range s.Examples {
			tw, err := m.newTypewriter(ex.Typewriter, cfg.Renderer.NewStyle(), false, cfg.TextWidth)
			if err != nil {
				return Model{}, fmt.Errorf("example %q: %w", ex.ID, err)
			}
			m.boxes = append(m.boxes, box{section: si, example: ex, tw: tw, backwards: ex.Typewriter.Backwards})
		}
	}
	m.rebuildContent()
	return m, nil
}

func (m Model) newTypewriter(p Params, text lipgloss.Style, active bool, wrap int) (typewriter.Model, error) {
	tc, err := p.Config()
	if err != nil {
		return typewriter.Model{}, err
	}
	if wrap > 0 {
		tc.Text = ansi.Wordwrap(tc.Text, wrap, "")
	}
	if p.Color == "" {
		tc.Style.Text = text
	}
	tc.Style.Renderer = m.cfg.Renderer
	tc.StartInactive = !active
	tc.Logger = m.log
	return typewriter.New(tc), nil
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.header.Init(), m.subheader.Init()}
	for _, b := range m.boxes {
		cmds = append(cmds, b.tw.Init())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case typewriter.FinishedMsg:
		return m.handleFinished(msg)
	}
	return m.forward(msg)
}

// forward hands msg to every typewriter. Each one drops messages that
// belong to another.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.header, cmd = m.header.Update(msg)
	cmds = append(cmds, cmd)
	m.subheader, cmd = m.subheader.Update(msg)
	cmds = append(cmds, cmd)
	m.boxes = slices.Clone(m.boxes)
	for i := range m.boxes {
		m.boxes[i].tw, cmd = m.boxes[i].tw.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.rebuildContent()
	return m, tea.Batch(cmds...)
}

func (m Model) handleFinished(msg typewriter.FinishedMsg) (tea.Model, tea.Cmd) {
	if msg.ID == m.header.ID() {
		m.log.Debug("gallery header finished", slog.Int("id", msg.ID))
		var cmd tea.Cmd
		m.subheader, cmd = m.subheader.SetActive(true)
		return m, cmd
	}
	for _, b := range m.boxes {
		if b.tw.ID() == msg.ID {
			m.log.Debug("gallery example finished", slog.String("example", b.example.ID))
			break
		}
	}
	m.rebuildContent()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m = m.unmountAll()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m.SetSize(m.width, m.height), nil
	case key.Matches(msg, m.keys.Up):
		return m.Select(m.selected - 1), nil
	case key.Matches(msg, m.keys.Down):
		return m.Select(m.selected + 1), nil
	}

	if len(m.boxes) == 0 {
		return m, nil
	}
	m.boxes = slices.Clone(m.boxes)
	b := &m.boxes[m.selected]
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Play):
		switch st := b.tw.State(); {
		case !st.Active:
			b.tw, cmd = b.tw.SetActive(true)
		case st.Finished:
			b.tw, cmd = b.tw.Restart()
		case st.Paused:
			b.tw, cmd = b.tw.SetPaused(false)
		}
		if !b.played {
			m.log.Debug("gallery example played", slog.String("example", b.example.ID))
		}
		b.played = true
	case key.Matches(msg, m.keys.Replay):
		b.tw, cmd = b.tw.Restart()
		var act tea.Cmd
		b.tw, act = b.tw.SetActive(true)
		cmd = tea.Batch(cmd, act)
		b.played = true
	case key.Matches(msg, m.keys.Pause):
		if b.played {
			b.tw, cmd = b.tw.SetPaused(!b.tw.State().Paused)
		}
	case key.Matches(msg, m.keys.Reverse):
		b.backwards = !b.backwards
		b.tw, cmd = b.tw.SetBackwards(b.backwards)
	default:
		return m, nil
	}
	m.rebuildContent()
	return m, cmd
}

// SetSize lays out the header, the scrolling body and the help footer.
func (m Model) SetSize(width, height int) Model {
	m.width = max(width, 0)
	m.height = max(height, 0)
	m.help.Width = m.width
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-lipgloss.Height(m.headerView())-lipgloss.Height(m.footerView()), 0)
	m.rebuildContent()
	m.followSelection()
	return m
}

// Select moves the selection, clamped to the example range.
func (m Model) Select(i int) Model {
	if len(m.boxes) == 0 {
		return m
	}
	m.selected = min(max(i, 0), len(m.boxes)-1)
	m.rebuildContent()
	m.followSelection()
	return m
}

func (m Model) Selected() int { return m.selected }

// Example returns the typewriter of the example with the given id.
func (m Model) Example(id string) (typewriter.Model, bool) {
	for _, b := range m.boxes {
		if b.example.ID == id {
			return b.tw, true
		}
	}
	return typewriter.Model{}, false
}

func (m Model) Header() typewriter.Model    { return m.header }
func (m Model) Subheader() typewriter.Model { return m.subheader }

func (m Model) unmountAll() Model {
	m.header = m.header.Unmount()
	m.subheader = m.subheader.Unmount()
	m.boxes = slices.Clone(m.boxes)
	for i := range m.boxes {
		m.boxes[i].tw = m.boxes[i].tw.Unmount()
	}
	return m
}

func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.viewport.View(), m.footerView())
}

func (m Model) headerView() string {
	lines := []string{m.header.View(), m.subheader.View(), ""}
	if m.width > 0 {
		for i, l := range lines {
			lines[i] = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, l)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) footerView() string {
	return m.statusLine() + "\n" + m.help.View(m.keys)
}

func (m Model) statusLine() string {
	if len(m.boxes) == 0 {
		return ""
	}
	b := m.boxes[m.selected]
	st := b.tw.State()
	phase := "idle"
	switch {
	case st.Finished:
		phase = "finished"
	case st.Paused:
		phase = "paused"
	case st.Waiting:
		phase = "waiting"
	case st.Active:
		phase = "typing"
	}
	return m.styles.Description.Render(fmt.Sprintf("%s · %s · %d/%d · cursor %s",
		b.example.ID, phase, st.Index, st.Len, st.Cursor))
}

func (m *Model) rebuildContent() {
	var sb strings.Builder
	m.offsets = make([]int, 0, len(m.boxes)+1)
	line := 0
	write := func(s string) {
		sb.WriteString(s)
		sb.WriteString("\n")
		line += lipgloss.Height(s)
	}

	section := -1
	for i, b := range m.boxes {
		if b.section != section {
			section = b.section
			write(m.styles.Section.Render(m.sections[section].Title))
		}
		m.offsets = append(m.offsets, line)
		write(m.renderBox(i))
	}
	m.offsets = append(m.offsets, line)
	m.viewport.SetContent(strings.TrimSuffix(sb.String(), "\n"))
}

func (m Model) renderBox(i int) string {
	b := m.boxes[i]
	body := b.tw.View()
	if !b.played {
		body = lipgloss.Place(m.cfg.TextWidth, lipgloss.Height(body), lipgloss.Center, lipgloss.Center,
			m.styles.Hint.Render(playHint))
	}

	frame := m.styles.Box
	if i == m.selected {
		frame = m.styles.Selected
	}
	parts := []string{
		m.styles.Title.Render(b.example.Title),
		frame.Width(m.cfg.TextWidth + frame.GetHorizontalPadding()).Render(body),
	}
	if b.example.Description != "" {
		desc := ansi.Wordwrap(b.example.Description, m.cfg.TextWidth, "")
		parts = append(parts, m.styles.Description.Render(desc))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// followSelection scrolls the body so the selected box is visible,
// preferring its top edge.
func (m *Model) followSelection() {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 || len(m.boxes) == 0 {
		return
	}
	top := m.offsets[m.selected]
	bottom := m.offsets[m.selected+1] - 1

	y := m.viewport.YOffset
	if top < y {
		m.viewport.SetYOffset(top)
		return
	}
	if bottom >= y+h {
		m.viewport.SetYOffset(min(top, bottom-h+1))
	}
}
