package gallery

import "github.com/charmbracelet/lipgloss"

// Styles holds the gallery chrome. The typewriters style themselves.
type Styles struct {
	Header      lipgloss.Style
	Subheader   lipgloss.Style
	Section     lipgloss.Style
	Title       lipgloss.Style
	Description lipgloss.Style
	Hint        lipgloss.Style
	Box         lipgloss.Style
	Selected    lipgloss.Style
}

func DefaultStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 2)
	return Styles{
		Header:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		Subheader:   r.NewStyle().Foreground(lipgloss.Color("250")),
		Section:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).MarginTop(1),
		Title:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Description: r.NewStyle().Faint(true),
		Hint:        r.NewStyle().Italic(true).Foreground(lipgloss.Color("244")),
		Box:         box,
		Selected:    box.BorderForeground(lipgloss.Color("205")),
	}
}
