package picker

import "iter"

// VisibleItems yields the merged view without hidden entries. Each range over
// the sequence takes a fresh snapshot, so the sequence can be iterated any
// number of times and never changes session state.
func (s *Session[P]) VisibleItems() iter.Seq[MergedItem[P]] {
	return func(yield func(MergedItem[P]) bool) {
		for _, it := range s.ReadMergedView() {
			if it.Hidden {
				continue
			}
			if !yield(it) {
				return
			}
		}
	}
}

// Visible collects VisibleItems into a slice.
func (s *Session[P]) Visible() []MergedItem[P] {
	out := []MergedItem[P]{}
	for it := range s.VisibleItems() {
		out = append(out, it)
	}
	return out
}

// Activate is the checkbox action for a rendered item: it toggles the item
// using the selected flag the item was rendered with.
func (s *Session[P]) Activate(item MergedItem[P]) {
	s.ToggleSelected(item.Name, item.Selected)
}
