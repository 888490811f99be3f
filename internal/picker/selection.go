package picker

import (
	"go.uber.org/zap"

	"github.com/muurk/picker/internal/logging"
)

// ToggleSelected writes !currentFlag for name and leaves every other entry
// alone. currentFlag is the caller's last observed value; it is not checked
// against the stored one. Unknown names get an entry that never reaches the
// merged view.
func (s *Session[P]) ToggleSelected(name string, currentFlag bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closedLocked("toggle") {
		return
	}

	next := value(s, s.selected).clone()
	next[name] = !currentFlag
	write(s, s.selected, next)

	logging.LogSessionEvent(s.id, "toggle",
		zap.String("name", name),
		zap.Bool("selected", !currentFlag),
	)
}

// SetAllSelected writes flag for every name in the Source List.
func (s *Session[P]) SetAllSelected(flag bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setSelectedLocked(flag, false)
}

// SetVisibleSelected writes flag for every item the current search leaves
// visible.
func (s *Session[P]) SetVisibleSelected(flag bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setSelectedLocked(flag, true)
}

func (s *Session[P]) setSelectedLocked(flag bool, visibleOnly bool) {
	if s.closedLocked("select_all") {
		return
	}

	next := value(s, s.selected).clone()
	for _, it := range s.mergedView() {
		if visibleOnly && it.Hidden {
			continue
		}
		next[it.Name] = flag
	}
	write(s, s.selected, next)

	logging.LogSessionEvent(s.id, "select_all",
		zap.Bool("selected", flag),
		zap.Bool("visible_only", visibleOnly),
	)
}

// SelectedNames returns the selected item names in Source List order, hidden
// items included.
func (s *Session[P]) SelectedNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := []string{}
	for _, it := range s.readMergedLocked() {
		if it.Selected {
			names = append(names, it.Name)
		}
	}
	return names
}
