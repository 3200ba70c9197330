// Package grapheme segments reveal text into user-perceived characters.
package grapheme

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in logical order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Join concatenates clusters into a single string.
func Join(clusters []string) string {
	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return clusters[0]
	}
	var sb strings.Builder
	for _, c := range clusters {
		sb.WriteString(c)
	}
	return sb.String()
}

// Blank replaces every cluster with spaces of the same display width.
// Line breaks are kept so multi-line text keeps its shape.
func Blank(clusters []string) string {
	if len(clusters) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, c := range clusters {
		if c == "\n" || c == "\r\n" {
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(strings.Repeat(" ", Width(c)))
	}
	return sb.String()
}

// Width returns the terminal cell width of a cluster.
func Width(cluster string) int {
	if cluster == "\t" {
		return 1
	}
	return runewidth.StringWidth(cluster)
}
