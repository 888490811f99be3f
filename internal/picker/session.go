package picker

import (
	"context"
	"slices"
	"sync"

	pumped "github.com/pumped-fn/pumped-go"
	"go.uber.org/zap"

	"github.com/muurk/picker/internal/logging"
)

// Option configures a session.
type Option func(*options)

type options struct {
	id string
}

// WithID tags the session's log lines with id.
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}

// Session is one picker's state: the three source slices and the merged view,
// created together and closed together.
type Session[P any] struct {
	mu sync.Mutex
	id string

	scope    *pumped.Scope
	source   *pumped.Controller[[]Item[P]]
	hidden   *pumped.Controller[HiddenMap]
	selected *pumped.Controller[SelectedMap]
	merged   *pumped.Controller[[]MergedItem[P]]

	closed     bool
	recomputes int
	searchText string
}

// Stats summarises a session for status lines and diagnostics.
type Stats struct {
	Items      int
	Visible    int
	Selected   int
	Recomputes int
}

// Initialize creates a session with an empty Source List, empty Hidden and
// Selected maps, and the merged view wired to all three.
func Initialize[P any](opts ...Option) *Session[P] {
	o := options{id: "local"}
	for _, opt := range opts {
		opt(&o)
	}

	source := pumped.Provide(func(*pumped.ResolveCtx) ([]Item[P], error) {
		return []Item[P]{}, nil
	})
	hidden := pumped.Provide(func(*pumped.ResolveCtx) (HiddenMap, error) {
		return HiddenMap{}, nil
	})
	selected := pumped.Provide(func(*pumped.ResolveCtx) (SelectedMap, error) {
		return SelectedMap{}, nil
	})

	s := &Session[P]{id: o.id, scope: pumped.NewScope()}
	merged := pumped.Derive3(
		source.Reactive(), hidden.Reactive(), selected.Reactive(),
		func(_ *pumped.ResolveCtx, src *pumped.Controller[[]Item[P]], hid *pumped.Controller[HiddenMap], sel *pumped.Controller[SelectedMap]) ([]MergedItem[P], error) {
			items, err := src.Get()
			if err != nil {
				return nil, err
			}
			h, err := hid.Get()
			if err != nil {
				return nil, err
			}
			m, err := sel.Get()
			if err != nil {
				return nil, err
			}
			view := Merge(items, h, m)
			s.recomputes++
			logging.Debug("Merged view recomputed",
				zap.String("session_id", s.id),
				zap.Int("items", len(view)),
			)
			return view, nil
		},
	)

	s.source = pumped.Accessor(s.scope, source)
	s.hidden = pumped.Accessor(s.scope, hidden)
	s.selected = pumped.Accessor(s.scope, selected)
	s.merged = pumped.Accessor(s.scope, merged)

	// Resolving once registers the reactive edges; the first evaluation is
	// not a recompute.
	s.mergedView()
	s.recomputes = 0

	logging.LogSessionEvent(s.id, "initialized")
	return s
}

// WithSession runs fn against a fresh session seeded with items and closes the
// session when fn returns.
func WithSession[P any](items []Item[P], fn func(*Session[P]) error, opts ...Option) error {
	s := Initialize[P](opts...)
	defer s.Close()

	s.SetSourceList(items)
	return fn(s)
}

// ID returns the identifier used in log lines.
func (s *Session[P]) ID() string {
	return s.id
}

// SetSourceList replaces the Source List wholesale. Duplicate names are not
// rejected; duplicates share one hidden flag and one selected flag.
func (s *Session[P]) SetSourceList(items []Item[P]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closedLocked("set_source_list") {
		return
	}
	write(s, s.source, slices.Clone(items))
	logging.LogSessionEvent(s.id, "set_source_list", zap.Int("items", len(items)))
}

// SourceList returns a copy of the current Source List.
func (s *Session[P]) SourceList() []Item[P] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return []Item[P]{}
	}
	return slices.Clone(value(s, s.source))
}

// ReadMergedView returns the merged view in Source List order.
func (s *Session[P]) ReadMergedView() []MergedItem[P] {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readMergedLocked()
}

func (s *Session[P]) readMergedLocked() []MergedItem[P] {
	if s.closed {
		return []MergedItem[P]{}
	}
	return slices.Clone(s.mergedView())
}

// HiddenMap returns a copy of the Hidden Map.
func (s *Session[P]) HiddenMap() HiddenMap {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return HiddenMap{}
	}
	return value(s, s.hidden).clone()
}

// SelectedMap returns a copy of the Selected Map.
func (s *Session[P]) SelectedMap() SelectedMap {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return SelectedMap{}
	}
	return value(s, s.selected).clone()
}

// Stats reports item counts and how often the merged view was recomputed.
func (s *Session[P]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st Stats
	if s.closed {
		return st
	}
	for _, it := range s.mergedView() {
		st.Items++
		if !it.Hidden {
			st.Visible++
		}
		if it.Selected {
			st.Selected++
		}
	}
	st.Recomputes = s.recomputes
	return st
}

// Close tears down every slice of the session. Closing twice is a no-op.
func (s *Session[P]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	if err := s.scope.Dispose(); err != nil {
		logging.Warn("Picker session scope dispose failed",
			zap.String("session_id", s.id),
			zap.Error(err),
		)
	}
	logging.LogSessionEvent(s.id, "closed")
}

// Closed reports whether Close has been called.
func (s *Session[P]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

func (s *Session[P]) closedLocked(op string) bool {
	if !s.closed {
		return false
	}
	logging.Warn("Operation on closed picker session ignored",
		zap.String("session_id", s.id),
		zap.String("op", op),
	)
	return true
}

func (s *Session[P]) mergedView() []MergedItem[P] {
	return value(s, s.merged)
}

// value reads c, resolving it if an upstream write invalidated it.
func value[P, T any](s *Session[P], c *pumped.Controller[T]) T {
	v, err := c.Get()
	if err != nil {
		logging.Error("Picker session resolve failed",
			zap.String("session_id", s.id),
			zap.Error(err),
		)
	}
	return v
}

// write stores v in c and re-resolves the merged view before returning, so
// every write is visible to the next reader and counts as one recompute.
func write[P, T any](s *Session[P], c *pumped.Controller[T], v T) {
	if err := c.Update(context.Background(), v); err != nil {
		logging.Error("Picker session update failed",
			zap.String("session_id", s.id),
			zap.Error(err),
		)
		return
	}
	s.mergedView()
}
