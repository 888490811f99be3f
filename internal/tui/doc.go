// Package tui is the interactive full-screen picker.
//
// AppModel stacks a SearchModel above a ListModel, both bound to one
// picker.Session. Typing in the search field calls OnSearchTextChanged on
// every edit; the list reads VisibleItems on every render and toggles items
// through Activate, so the session stays the only owner of picker state.
//
// Keys:
//
//	tab        switch focus between search and list
//	space      toggle the item under the cursor
//	a / n      select / clear every shown item
//	ctrl+s     confirm and exit
//	esc        abort
//
// Usage:
//
//	res, err := tui.Run(session, tui.Options[catalog.Details]{Title: "tools"})
//	if err != nil {
//	    return err
//	}
//	if res.Confirmed {
//	    fmt.Println(strings.Join(res.Selected, "\n"))
//	}
package tui
