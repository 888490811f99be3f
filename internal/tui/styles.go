package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/picker/internal/version"
)

const AppName = "PICKER"

// Layout constants
const (
	DefaultWidth  = 80
	DefaultHeight = 24
	chromeHeight  = 11 // container border, header, search box, status, help
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
)

var (
	CursorStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	ItemStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true)

	DetailStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	StatusStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	FocusedInputStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(PrimaryColor).
				Padding(0, 1)

	BlurredInputStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(SubtleColor).
				Padding(0, 1)
)

// buildHeaderContent renders the app name, version and picker title.
func buildHeaderContent(title string) string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " " + version.Version)

	if title == "" {
		return left
	}
	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(title)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// RenderApplicationContainer wraps a screen in the bordered full-terminal
// panel with header and footer.
func RenderApplicationContainer(title, content, footer string, width, height int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	header := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(PrimaryColor).
		Width(width-4).
		Padding(0, 1).
		Render(buildHeaderContent(title))

	styledFooter := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(PrimaryColor).
		Width(width-4).
		Padding(0, 1).
		Render(footer)

	body := lipgloss.NewStyle().Width(width - 4).Render(content)

	inner := lipgloss.JoinVertical(lipgloss.Left, header, body, styledFooter)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2).
		Height(height - 2).
		AlignVertical(lipgloss.Top).
		Render(inner)

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, bordered)
}
