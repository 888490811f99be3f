package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Printer writes one-shot styled output such as `picker list`.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a Printer for w. If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// Width returns the width used for rendering
func (p *Printer) Width() int {
	return p.width
}

// SetWidth overrides the detected width.
func (p *Printer) SetWidth(width int) *Printer {
	p.width = clampWidth(width)
	return p
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command header box
func (p *Printer) PrintHeader(title, command string, params ...Param) {
	h := &Header{Title: title, Command: command, Params: params, Width: p.width}
	p.Println(h.Render())
}

// PrintRows prints the checkbox list followed by a summary line.
func (p *Printer) PrintRows(rows []Row, total int) {
	selected := 0
	for _, r := range rows {
		if r.Selected {
			selected++
		}
	}
	p.Println(RenderRows(rows, p.width))
	p.Newline()
	p.Println(RenderSummary(len(rows), total, selected))
}

// PrintNames prints one name per line with no styling, for piping.
func (p *Printer) PrintNames(names []string) {
	for _, n := range names {
		p.Println(n)
	}
}

// PrintError prints an error box with optional hints
func (p *Printer) PrintError(title string, err error, hints ...string) {
	p.Println(RenderErrorBox(title, err, hints, p.width))
}

// RenderErrorBox renders a failure box
func RenderErrorBox(title string, err error, hints []string, width int) string {
	lines := []string{ErrorTitleStyle.Render(FailureMark + "  " + title)}
	if err != nil {
		lines = append(lines, "", ErrorMessageStyle.Render("Error: "+err.Error()))
	}
	if len(hints) > 0 {
		lines = append(lines, "")
		for _, h := range hints {
			lines = append(lines, HintStyle.Render("• "+h))
		}
	}
	return ErrorBoxStyle(width).Render(strings.Join(lines, "\n"))
}
