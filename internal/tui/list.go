package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/picker/internal/picker"
)

// ListModel renders the visible items of a session as a checkbox list with a
// cursor. It never stores items; every Update and View reads the session.
type ListModel[P any] struct {
	session  *picker.Session[P]
	describe func(P) string
	keys     listKeyMap

	cursor int
	offset int

	Width  int
	Height int // rows available for items
}

// NewListModel creates a list over session. describe may be nil.
func NewListModel[P any](session *picker.Session[P], describe func(P) string) ListModel[P] {
	return ListModel[P]{
		session:  session,
		describe: describe,
		keys:     newListKeyMap(),
		Width:    DefaultWidth,
		Height:   DefaultHeight - chromeHeight,
	}
}

// Cursor returns the index of the highlighted row among visible items.
func (m ListModel[P]) Cursor() int {
	return m.cursor
}

// Current returns the highlighted item.
func (m ListModel[P]) Current() (picker.MergedItem[P], bool) {
	visible := m.session.Visible()
	if len(visible) == 0 {
		return picker.MergedItem[P]{}, false
	}
	return visible[clampIndex(m.cursor, len(visible))], true
}

// Update handles list navigation and selection keys.
func (m ListModel[P]) Update(msg tea.Msg) (ListModel[P], tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	visible := m.session.Visible()
	m.cursor = clampIndex(m.cursor, len(visible))

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Home):
		m.cursor = 0
	case key.Matches(keyMsg, m.keys.End):
		m.cursor = clampIndex(len(visible)-1, len(visible))
	case key.Matches(keyMsg, m.keys.Toggle):
		if len(visible) > 0 {
			m.session.Activate(visible[m.cursor])
		}
	case key.Matches(keyMsg, m.keys.SelectAll):
		m.session.SetVisibleSelected(true)
	case key.Matches(keyMsg, m.keys.SelectNone):
		m.session.SetVisibleSelected(false)
	}

	m.clampScroll()
	return m, nil
}

// Sync re-clamps the cursor after the visible set changed underneath it.
func (m *ListModel[P]) Sync() {
	m.cursor = clampIndex(m.cursor, len(m.session.Visible()))
	m.clampScroll()
}

func (m *ListModel[P]) clampScroll() {
	rows := m.Height
	if rows < 1 {
		rows = 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View renders the rows currently scrolled into view.
func (m ListModel[P]) View(focused bool) string {
	visible := m.session.Visible()
	if len(visible) == 0 {
		return DetailStyle.Render("  no items match")
	}

	cursor := clampIndex(m.cursor, len(visible))
	rows := m.Height
	if rows < 1 {
		rows = 1
	}
	end := m.offset + rows
	if end > len(visible) {
		end = len(visible)
	}
	start := m.offset
	if start > end {
		start = end
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		it := visible[i]

		pointer := "  "
		if i == cursor && focused {
			pointer = CursorStyle.Render("> ")
		}

		box, style := "[ ]", ItemStyle
		if it.Selected {
			box, style = "[x]", SelectedItemStyle
		}

		line := pointer + box + " " + style.Render(it.Name)
		if m.describe != nil {
			if d := m.describe(it.Payload); d != "" {
				line += "  " + DetailStyle.Render(d)
			}
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if len(visible) > rows {
		b.WriteString("\n")
		b.WriteString(DetailStyle.Render(fmt.Sprintf("  %d-%d of %d", start+1, end, len(visible))))
	}
	return b.String()
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
