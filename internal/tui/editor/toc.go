package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/markedit/internal/toc"
)

const tocWidth = 28

type tocLabels struct {
	title string
	empty string
}

func labelsFor(language string) tocLabels {
	if language == "en" {
		return tocLabels{title: "Contents", empty: "No headings"}
	}
	return tocLabels{title: "目录", empty: "暂无目录"}
}

// renderTOC draws the outline sidebar. selected < 0 draws no selection.
func renderTOC(entries []toc.Entry, selected, height int, language string) string {
	labels := labelsFor(language)

	lines := []string{tocTitleStyle.Render(labels.title), ""}
	if len(entries) == 0 {
		lines = append(lines, countStyle.Render(labels.empty))
	}

	inner := tocWidth - 2
	for i, e := range entries {
		text := strings.Repeat("  ", toc.Indent(e.Level)) + e.Text
		if lipgloss.Width(text) > inner {
			text = truncate(text, inner)
		}
		if i == selected {
			text = tocSelectedStyle.Render(text)
		}
		lines = append(lines, text)
	}

	if height > 0 && len(lines) > height {
		start := 0
		if selected+2 >= height {
			start = selected + 3 - height
		}
		lines = lines[start : start+height]
	}

	return tocStyle.Copy().Width(tocWidth).Height(height).Render(strings.Join(lines, "\n"))
}

func truncate(s string, width int) string {
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
