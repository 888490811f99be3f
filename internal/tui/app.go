package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/picker/internal/logging"
	"github.com/muurk/picker/internal/picker"
)

// Focus identifies which component receives key presses.
type Focus int

const (
	FocusSearch Focus = iota
	FocusList
)

// Options configures an AppModel.
type Options[P any] struct {
	Title         string
	InitialSearch string
	Describe      func(P) string
}

// Result is what the user chose when the program ended.
type Result struct {
	Selected  []string
	Confirmed bool
}

// AppModel composes the search field and the item list around one session.
type AppModel[P any] struct {
	session *picker.Session[P]
	title   string

	Search SearchModel
	List   ListModel[P]
	focus  Focus

	Help help.Model
	keys appKeyMap

	Width  int
	Height int

	confirmed bool
	done      bool
}

// NewAppModel creates the picker screen with the search field focused.
func NewAppModel[P any](session *picker.Session[P], opts Options[P]) AppModel[P] {
	return AppModel[P]{
		session: session,
		title:   opts.Title,
		Search:  NewSearchModel(session, opts.InitialSearch),
		List:    NewListModel(session, opts.Describe),
		focus:   FocusSearch,
		Help:    help.New(),
		keys:    newAppKeyMap(),
	}
}

// Init implements tea.Model
func (m AppModel[P]) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m AppModel[P]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width - 6
		m.List.Width = msg.Width - 4
		m.List.Height = msg.Height - chromeHeight
		m.List.Sync()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Abort):
			logging.Debug("Picker aborted")
			m.done = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Confirm):
			m.confirmed = true
			m.done = true
			logging.Debug("Picker confirmed", zap.Strings("selected", m.session.SelectedNames()))
			return m, tea.Quit

		case key.Matches(msg, m.keys.Focus):
			return m.toggleFocus()
		}

		if m.focus == FocusSearch {
			// Enter and down leave the search field for the list.
			if msg.Type == tea.KeyEnter || msg.Type == tea.KeyDown {
				return m.toggleFocus()
			}
		} else {
			switch {
			case key.Matches(msg, m.keys.Search):
				return m.toggleFocus()
			case key.Matches(msg, m.keys.Help):
				m.Help.ShowAll = !m.Help.ShowAll
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.focus == FocusSearch {
		m.Search, cmd = m.Search.Update(msg)
		m.List.Sync()
	} else {
		m.List, cmd = m.List.Update(msg)
	}
	return m, cmd
}

func (m AppModel[P]) toggleFocus() (tea.Model, tea.Cmd) {
	if m.focus == FocusSearch {
		m.focus = FocusList
		m.Search.Blur()
		return m, nil
	}
	m.focus = FocusSearch
	return m, m.Search.Focus()
}

// Focus returns the focused component.
func (m AppModel[P]) Focus() Focus {
	return m.focus
}

// Result returns the selected names and whether the user confirmed.
func (m AppModel[P]) Result() Result {
	return Result{
		Selected:  m.session.SelectedNames(),
		Confirmed: m.confirmed,
	}
}

// Done reports whether the user confirmed or aborted.
func (m AppModel[P]) Done() bool {
	return m.done
}

// View implements tea.Model
func (m AppModel[P]) View() string {
	if m.done {
		return ""
	}

	width := m.Width
	if width <= 0 {
		width = DefaultWidth
	}

	st := m.session.Stats()
	status := StatusStyle.Render(fmt.Sprintf("%d of %d shown, %d selected", st.Visible, st.Items, st.Selected))

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.Search.View(width-4),
		status,
		"",
		m.List.View(m.focus == FocusList),
	)

	return RenderApplicationContainer(m.title, content, m.Help.View(m.keys), m.Width, m.Height)
}

// Run shows the picker full-screen on stderr until the user confirms or
// aborts. stdout is left free for the caller's output.
func Run[P any](session *picker.Session[P], opts Options[P]) (Result, error) {
	p := tea.NewProgram(NewAppModel(session, opts), tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("picker UI failed: %w", err)
	}

	m, ok := final.(AppModel[P])
	if !ok {
		return Result{}, fmt.Errorf("unexpected final model %T", final)
	}
	return m.Result(), nil
}
