package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Filterer receives every change of the search text.
type Filterer interface {
	OnSearchTextChanged(text string) bool
}

// SearchModel is the search field. Each edit that changes the text is
// forwarded to the Filterer.
type SearchModel struct {
	Input  textinput.Model
	target Filterer
	last   string
}

// NewSearchModel creates a focused search field. A non-empty initial text is
// applied to target immediately.
func NewSearchModel(target Filterer, initial string) SearchModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "type to filter"
	ti.CharLimit = 256
	ti.SetValue(initial)
	ti.Focus()

	if initial != "" {
		target.OnSearchTextChanged(initial)
	}
	return SearchModel{Input: ti, target: target, last: initial}
}

// Update implements the bubbles component pattern
func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)

	if v := m.Input.Value(); v != m.last {
		m.last = v
		m.target.OnSearchTextChanged(v)
	}
	return m, cmd
}

// Focus gives the field keyboard focus.
func (m *SearchModel) Focus() tea.Cmd {
	return m.Input.Focus()
}

// Blur removes keyboard focus.
func (m *SearchModel) Blur() {
	m.Input.Blur()
}

// Focused reports whether the field has focus.
func (m SearchModel) Focused() bool {
	return m.Input.Focused()
}

// Value returns the current search text.
func (m SearchModel) Value() string {
	return m.Input.Value()
}

// View renders the field in a box whose border reflects focus.
func (m SearchModel) View(width int) string {
	style := BlurredInputStyle
	if m.Focused() {
		style = FocusedInputStyle
	}
	return style.Width(width - 2).Render(m.Input.View())
}
