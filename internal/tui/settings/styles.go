package settings

import "github.com/charmbracelet/lipgloss"

var (
	appStyle   = lipgloss.NewStyle().Margin(1, 2)
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1E1E2E")).
			Background(lipgloss.Color("#CBA6F7")).
			Padding(0, 1)

	editorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#334455")).
			Padding(0, 1).
			Width(72)

	statusMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#A6E3A1")).
				Render

	errorMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F25D94")).
				Render

	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0AF")).Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CBA6F7"))
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#CDD6F4"))
)
