package picker

// Item is one selectable entry. Name is the unique key; Payload is carried
// through untouched.
type Item[P any] struct {
	Name    string
	Payload P
}

// HiddenMap records which items the current search hides. Absent names are
// visible.
type HiddenMap map[string]bool

// SelectedMap records which items the user selected. Absent names are
// unselected.
type SelectedMap map[string]bool

// MergedItem is an Item with its hidden and selected flags resolved.
type MergedItem[P any] struct {
	Item[P]
	Hidden   bool
	Selected bool
}

// Merge annotates items with the flags found in hidden and selected. Order is
// preserved and missing names resolve to false.
func Merge[P any](items []Item[P], hidden HiddenMap, selected SelectedMap) []MergedItem[P] {
	merged := make([]MergedItem[P], 0, len(items))
	for _, it := range items {
		merged = append(merged, MergedItem[P]{
			Item:     it,
			Hidden:   hidden[it.Name],
			Selected: selected[it.Name],
		})
	}
	return merged
}

func (m HiddenMap) clone() HiddenMap {
	out := make(HiddenMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (m SelectedMap) clone() SelectedMap {
	out := make(SelectedMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
