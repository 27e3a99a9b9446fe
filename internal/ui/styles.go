package ui

import "github.com/charmbracelet/lipgloss"

// Palette
const (
	colorAccent  = lipgloss.Color("86")
	colorBar     = lipgloss.Color("235")
	colorText    = lipgloss.Color("229")
	colorCursor  = lipgloss.Color("57")
	colorDim     = lipgloss.Color("241")
	colorError   = lipgloss.Color("196")
	colorSuccess = lipgloss.Color("46")
	colorWarning = lipgloss.Color("226")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Background(colorBar).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorCursor)

	DimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	// NoticeStyle frames prompts that need an answer before anything else
	NoticeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWarning).
			Padding(0, 1)
)

const (
	cursorMark = "▸ "
	rowIndent  = "  "
)

// cursorRow renders one list line, highlighted when the cursor is on it
func cursorRow(selected bool, line string) string {
	if selected {
		return rowIndent + cursorMark + SelectedStyle.Render(line)
	}
	return rowIndent + rowIndent + line
}

// checkbox renders a selection mark
func checkbox(selected bool) string {
	if selected {
		return "☑️"
	}
	return "☐"
}
