package ui

import (
	"fmt"
	"iter"
	"strings"

	"github.com/muurk/picker/internal/picker"
)

// Row is one rendered picker line.
type Row struct {
	Name     string
	Detail   string
	Selected bool
}

// Rows converts visible picker items to rows. describe may be nil.
func Rows[P any](items iter.Seq[picker.MergedItem[P]], describe func(P) string) []Row {
	rows := []Row{}
	for it := range items {
		row := Row{Name: it.Name, Selected: it.Selected}
		if describe != nil {
			row.Detail = describe(it.Payload)
		}
		rows = append(rows, row)
	}
	return rows
}

// RenderRows renders rows as a checkbox list. Details are cut to fit width.
func RenderRows(rows []Row, width int) string {
	if len(rows) == 0 {
		return HintStyle.Render("  (no matching items)")
	}

	nameWidth := 0
	for _, r := range rows {
		if len(r.Name) > nameWidth {
			nameWidth = len(r.Name)
		}
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		box := CheckboxOff
		name := ItemNameStyle.Render(fmt.Sprintf("%-*s", nameWidth, r.Name))
		if r.Selected {
			box = CheckboxOn
			name = ItemSelectedStyle.Render(fmt.Sprintf("%-*s", nameWidth, r.Name))
		}

		line := "  " + box + " " + name
		if r.Detail != "" {
			room := width - nameWidth - 9
			line += "  " + ItemDetailStyle.Render(Truncate(r.Detail, room))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// RenderSummary renders the "N of M shown, K selected" line.
func RenderSummary(visible, total, selected int) string {
	return SummaryStyle.Render(fmt.Sprintf("%d of %d shown, %d selected", visible, total, selected))
}

// Truncate cuts s to at most limit runes, marking the cut with an ellipsis.
func Truncate(s string, limit int) string {
	r := []rune(s)
	if limit <= 0 {
		return ""
	}
	if len(r) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string(r[:limit-1]) + "…"
}
