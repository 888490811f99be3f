package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/muurk/picker/internal/picker"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 4, "hel…"},
		{"hello", 1, "…"},
		{"hello", 0, ""},
		{"héllo", 3, "hé…"},
	}

	for _, tt := range tests {
		if got := Truncate(tt.in, tt.limit); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestClampWidth(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{10, MinTerminalWidth},
		{80, 80},
		{500, MaxContentWidth},
	}
	for _, tt := range tests {
		if got := clampWidth(tt.in); got != tt.want {
			t.Errorf("clampWidth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRows(t *testing.T) {
	s := picker.Initialize[string]()
	defer s.Close()
	s.SetSourceList([]picker.Item[string]{
		{Name: "foo", Payload: "first"},
		{Name: "bar", Payload: "second"},
		{Name: "baz", Payload: "third"},
	})
	s.OnSearchTextChanged("ba")
	s.ToggleSelected("baz", false)

	got := Rows(s.VisibleItems(), func(p string) string { return p })
	want := []Row{
		{Name: "bar", Detail: "second"},
		{Name: "baz", Detail: "third", Selected: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderRows(t *testing.T) {
	out := RenderRows([]Row{
		{Name: "bar", Detail: "second"},
		{Name: "bazz", Selected: true},
	}, 80)

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderRows() produced %d lines, want 2:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], CheckboxOff+" bar") || !strings.Contains(lines[0], "second") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], CheckboxOn+" bazz") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestRenderRows_Empty(t *testing.T) {
	if out := RenderRows(nil, 80); !strings.Contains(out, "no matching items") {
		t.Errorf("RenderRows(nil) = %q", out)
	}
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf).SetWidth(80)

	p.PrintHeader("Items", "picker list", Param{Key: "Search", Value: "ba"}, Param{Key: "Catalog", Value: "<default>"})
	p.PrintRows([]Row{{Name: "bar"}, {Name: "baz", Selected: true}}, 3)

	out := buf.String()
	for _, want := range []string{"ITEMS", "picker list", "Search:", "Catalog:", "<default>", "2 of 3 shown, 1 selected"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Search:") > strings.Index(out, "Catalog:") {
		t.Error("header params not rendered in order")
	}
}

func TestPrinter_PrintNames(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintNames([]string{"a", "b"})

	if got := buf.String(); got != "a\nb\n" {
		t.Errorf("PrintNames() wrote %q, want %q", got, "a\nb\n")
	}
}

func TestPrinter_PrintError(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).SetWidth(80).PrintError("Remote failed", errors.New("connection refused"), "Is `picker serve` running?")

	out := buf.String()
	for _, want := range []string{"Remote failed", "connection refused", "picker serve"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
