package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Param is one key/value line in a header. Params render in slice order.
type Param struct {
	Key   string
	Value string
}

// Header is the banner printed above one-shot output.
type Header struct {
	Title   string // e.g., "ITEMS"
	Command string // e.g., "picker list --search sh"
	Params  []Param
	Width   int
}

// NewHeader creates a header sized to the current terminal
func NewHeader(title, command string, params ...Param) *Header {
	return &Header{
		Title:   title,
		Command: command,
		Params:  params,
		Width:   GetTerminalWidth(),
	}
}

// SetWidth sets the width for rendering
func (h *Header) SetWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the styled header as a string
func (h *Header) Render() string {
	width := h.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	titleLine := HeaderTitleStyle.Render(strings.ToUpper(h.Title))
	commandLine := HeaderCommandStyle.Render(h.Command)
	topSection := lipgloss.JoinVertical(lipgloss.Left, titleLine, commandLine)

	if len(h.Params) == 0 {
		return HeaderBorderStyle(width).Render(topSection)
	}

	dividerWidth := width - 6 // Account for border and padding
	divider := "  " + RenderHorizontalDivider(dividerWidth, "─")

	keyWidth := 0
	for _, p := range h.Params {
		if len(p.Key) > keyWidth {
			keyWidth = len(p.Key)
		}
	}

	paramLines := make([]string, 0, len(h.Params))
	for _, p := range h.Params {
		key := HeaderParamKeyStyle.Render(p.Key + ":" + strings.Repeat(" ", keyWidth-len(p.Key)))
		paramLines = append(paramLines, key+" "+HeaderParamValueStyle.Render(p.Value))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, topSection, divider, strings.Join(paramLines, "\n"))
	return HeaderBorderStyle(width).Render(content)
}

// String implements fmt.Stringer
func (h *Header) String() string {
	return h.Render()
}
