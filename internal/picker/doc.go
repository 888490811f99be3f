// Package picker implements the state model behind a selectable list with
// search filtering.
//
// A picker session holds three independent pieces of source state and one
// derived view:
//
//   - Source List: the ordered items supplied by the caller, replaced wholesale
//   - Hidden Map: item name -> hidden by the current search text
//   - Selected Map: item name -> selected by the user
//   - Merged View: every item annotated with its hidden/selected flags
//
// Each source slice has exactly one writer. The session itself writes the
// Source List (SetSourceList), the filter writes the Hidden Map
// (OnSearchTextChanged) and the selection writes the Selected Map
// (ToggleSelected). The Merged View is a pure function of the three slices and
// is recomputed synchronously whenever one of them changes; nobody writes it.
//
// # Usage Example
//
//	items := []picker.Item[string]{{Name: "foo"}, {Name: "bar"}, {Name: "baz"}}
//
//	err := picker.WithSession(items, func(s *picker.Session[string]) error {
//	    s.OnSearchTextChanged("ba")
//	    s.ToggleSelected("bar", false)
//	    for it := range s.VisibleItems() {
//	        fmt.Println(it.Name, it.Selected) // bar true, baz false
//	    }
//	    return nil
//	})
//
// # Lifetime
//
// All slices of a session live in one pumped.Scope: the Source List and the two
// maps are Provide executors and the merged view is a Derive3 executor that
// depends reactively on all three. A write invalidates the merged view and
// re-resolves it before returning. Close disposes the scope; operations on a
// closed session do nothing and reads return empty results.
//
// # Thread Safety
//
// Every method takes the session mutex, so writes are serialised with respect
// to reads of the same session. Sessions share no state with each other.
package picker
