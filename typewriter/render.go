package typewriter

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/iw2rmb/typist/internal/grapheme"
)

const cursorBlock = "█"

// View renders the revealed text followed by the cursor. With reserved
// space the unrevealed remainder follows as blanks, so the rendered block
// keeps the size of the full text for the whole animation.
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(renderLines(m.cfg.style.Text, m.reveal.revealed()))
	if m.cursor.state != CursorSuppressed {
		sb.WriteString(m.renderCursor())
	}
	if m.cfg.reserveSpace {
		sb.WriteString(grapheme.Blank(m.reveal.remainder()))
	}
	return sb.String()
}

// renderLines styles each line on its own so lipgloss does not pad lines
// to a common width and the cursor stays glued to the last character.
func renderLines(st lipgloss.Style, text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = st.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) cursorGlyph() (string, int) {
	if m.cfg.kind == CursorTextSimple {
		w := 0
		for _, c := range grapheme.Split(m.cfg.glyph) {
			w += grapheme.Width(c)
		}
		return m.cfg.glyph, w
	}
	w := m.cfg.style.Cursor.Width
	return strings.Repeat(cursorBlock, w), w
}

func (m Model) renderCursor() string {
	glyph, width := m.cursorGlyph()
	if m.cursor.state == CursorHidden || m.cursor.opacity <= 0 {
		return strings.Repeat(" ", width)
	}

	cs := m.cfg.style.Cursor
	st := m.cfg.style.Renderer.NewStyle().Foreground(blend(cs.Background, cs.Color, m.cursor.opacity))
	if m.cfg.kind == CursorTextSimple && cs.Bold {
		st = st.Bold(true)
	}
	return st.Render(glyph)
}

// blend mixes bg into fg so that opacity 1 yields fg and 0 yields bg.
// Colors that cannot be converted leave fg unchanged.
func blend(bg, fg lipgloss.Color, opacity float64) lipgloss.Color {
	if opacity >= 1 {
		return fg
	}
	from, ok := toRGB(bg)
	if !ok {
		return fg
	}
	to, ok := toRGB(fg)
	if !ok {
		return fg
	}
	return lipgloss.Color(from.BlendRgb(to, clampUnit(opacity)).Clamped().Hex())
}

// toRGB converts a lipgloss color spec ("#rrggbb" or an ANSI index).
func toRGB(c lipgloss.Color) (colorful.Color, bool) {
	s := strings.TrimSpace(string(c))
	if s == "" {
		return colorful.Color{}, false
	}
	if strings.HasPrefix(s, "#") {
		col, err := colorful.Hex(s)
		return col, err == nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return colorful.Color{}, false
	}
	if n < 16 {
		return termenv.ConvertToRGB(termenv.ANSIColor(n)), true
	}
	return termenv.ConvertToRGB(termenv.ANSI256Color(n)), true
}
