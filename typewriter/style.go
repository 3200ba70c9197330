package typewriter

import (
	"reflect"

	"github.com/charmbracelet/lipgloss"
)

// Style controls how the revealed text and the cursor are rendered.
type Style struct {
	// Renderer used for the cursor style. Nil means lipgloss.DefaultRenderer.
	Renderer *lipgloss.Renderer

	Text   lipgloss.Style
	Cursor CursorStyle
}

// CursorStyle configures the cursor glyph.
//
// Opacity is emulated by blending Background into Color. A zero
// MaxOpacity means 1, so setting only MinOpacity keeps the upper bound.
type CursorStyle struct {
	// Color of the cursor at full opacity. Empty falls back to the text
	// foreground, then to white.
	Color lipgloss.Color
	// Background the cursor fades into. Empty means black.
	Background lipgloss.Color

	MinOpacity float64
	MaxOpacity float64

	// Width in cells of the CursorView block. Values below 1 mean 1.
	Width int

	// Bold applies to CursorTextSimple only.
	Bold bool
}

func DefaultStyle() Style {
	return Style{
		Text: lipgloss.NewStyle(),
		Cursor: CursorStyle{
			Color:      lipgloss.Color("252"),
			Background: lipgloss.Color("0"),
			MinOpacity: 0,
			MaxOpacity: 1,
			Width:      1,
		},
	}
}

const (
	defaultCursorColor      = lipgloss.Color("#FFFFFF")
	defaultCursorBackground = lipgloss.Color("#000000")
)

// resolved fills the safe defaults for unset cursor inputs.
func (s Style) resolved() Style {
	c := &s.Cursor
	if c.Color == "" {
		if fg, ok := s.Text.GetForeground().(lipgloss.Color); ok && fg != "" {
			c.Color = fg
		} else {
			c.Color = defaultCursorColor
		}
	}
	if c.Background == "" {
		c.Background = defaultCursorBackground
	}
	if c.MaxOpacity == 0 {
		c.MaxOpacity = 1
	}
	c.MinOpacity = clampUnit(c.MinOpacity)
	c.MaxOpacity = clampUnit(c.MaxOpacity)
	if c.MinOpacity > c.MaxOpacity {
		c.MinOpacity, c.MaxOpacity = c.MaxOpacity, c.MinOpacity
	}
	if c.Width < 1 {
		c.Width = 1
	}
	if s.Renderer == nil {
		s.Renderer = lipgloss.DefaultRenderer()
	}
	if reflect.DeepEqual(s.Text, lipgloss.Style{}) {
		s.Text = s.Renderer.NewStyle()
	}
	return s
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
