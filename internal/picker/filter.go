package picker

import (
	"strings"

	"go.uber.org/zap"

	"github.com/muurk/picker/internal/logging"
)

// OnSearchTextChanged recomputes the Hidden Map for the current Source List:
// an item is hidden unless its name contains text (case-sensitive). The map
// is written only when at least one flag differs from the current one, so an
// unchanged result causes no recomputation downstream. It reports whether a
// write happened.
func (s *Session[P]) OnSearchTextChanged(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.applyFilterLocked(text)
}

// Refilter runs the last search text against the current Source List. Call it
// after SetSourceList when new items should respect an active search.
func (s *Session[P]) Refilter() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.applyFilterLocked(s.searchText)
}

// SearchText returns the text of the last OnSearchTextChanged call.
func (s *Session[P]) SearchText() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.searchText
}

func (s *Session[P]) applyFilterLocked(text string) bool {
	if s.closedLocked("search") {
		return false
	}
	s.searchText = text

	items := value(s, s.source)
	current := value(s, s.hidden)

	next := make(HiddenMap, len(items))
	for _, it := range items {
		next[it.Name] = !strings.Contains(it.Name, text)
	}

	changed := false
	for name, hidden := range next {
		if current[name] != hidden {
			changed = true
			break
		}
	}
	if !changed {
		return false
	}

	write(s, s.hidden, next)
	logging.LogSessionEvent(s.id, "search",
		zap.String("text", text),
		zap.Int("items", len(items)),
	)
	return true
}
