// Package ui renders the picker's one-shot terminal output.
//
// Commands that print a result and exit (`picker list`, `picker remote`)
// share a Printer so their output has the same header box, checkbox list and
// error box. Interactive picking lives in package tui.
//
// Example:
//
//	p := ui.NewPrinter(os.Stdout)
//	p.PrintHeader("Items", "picker list", ui.Param{Key: "Search", Value: "sh"})
//	p.PrintRows(ui.Rows(session.VisibleItems(), describe), len(session.SourceList()))
//
// # Logging Integration
//
// Logging is silent unless PICKER_LOG_LEVEL or --log-level is set, so styled
// output is not interleaved with log lines by default.
package ui
