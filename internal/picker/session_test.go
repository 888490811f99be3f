package picker

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func items(names ...string) []Item[string] {
	out := make([]Item[string], len(names))
	for i, n := range names {
		out[i] = Item[string]{Name: n, Payload: "payload-" + n}
	}
	return out
}

func names[P any](merged []MergedItem[P]) []string {
	out := []string{}
	for _, it := range merged {
		out = append(out, it.Name)
	}
	return out
}

func TestMerge_Deterministic(t *testing.T) {
	list := items("foo", "bar", "baz")
	hidden := HiddenMap{"foo": true}
	selected := SelectedMap{"baz": true}

	first := Merge(list, hidden, selected)
	second := Merge(list, hidden, selected)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Merge() not deterministic (-first +second):\n%s", diff)
	}

	want := []MergedItem[string]{
		{Item: list[0], Hidden: true},
		{Item: list[1]},
		{Item: list[2], Selected: true},
	}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_DefaultFlags(t *testing.T) {
	merged := Merge(items("a", "b"), HiddenMap{"zzz": true}, SelectedMap{"yyy": true})

	for _, it := range merged {
		if it.Hidden {
			t.Errorf("%s: Hidden = true for name absent from Hidden Map", it.Name)
		}
		if it.Selected {
			t.Errorf("%s: Selected = true for name absent from Selected Map", it.Name)
		}
	}
}

func TestMerge_PreservesOrder(t *testing.T) {
	list := items("zeta", "alpha", "mid", "beta")

	tests := []struct {
		name     string
		hidden   HiddenMap
		selected SelectedMap
	}{
		{"no flags", nil, nil},
		{"all hidden", HiddenMap{"zeta": true, "alpha": true, "mid": true, "beta": true}, nil},
		{"mixed", HiddenMap{"alpha": true}, SelectedMap{"beta": true, "zeta": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Merge(list, tt.hidden, tt.selected))
			want := []string{"zeta", "alpha", "mid", "beta"}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInitialize_Empty(t *testing.T) {
	s := Initialize[string]()
	defer s.Close()

	if got := s.ReadMergedView(); len(got) != 0 {
		t.Errorf("ReadMergedView() = %v, want empty", got)
	}
	if got := s.Visible(); len(got) != 0 {
		t.Errorf("Visible() = %v, want empty", got)
	}
	if s.ID() != "local" {
		t.Errorf("ID() = %q, want %q", s.ID(), "local")
	}
}

func TestSetSourceList_ReplacesWholesale(t *testing.T) {
	s := Initialize[string](WithID("t1"))
	defer s.Close()

	s.SetSourceList(items("a", "b"))
	s.SetSourceList(items("c"))

	if diff := cmp.Diff([]string{"c"}, names(s.ReadMergedView())); diff != "" {
		t.Errorf("merged view mismatch (-want +got):\n%s", diff)
	}
}

func TestSetSourceList_CopiesInput(t *testing.T) {
	s := Initialize[string]()
	defer s.Close()

	in := items("a", "b")
	s.SetSourceList(in)
	in[0].Name = "mutated"

	if got := s.SourceList()[0].Name; got != "a" {
		t.Errorf("SourceList()[0].Name = %q, want %q", got, "a")
	}
}

func TestReadMergedView_ReturnsCopy(t *testing.T) {
	s := Initialize[string]()
	defer s.Close()
	s.SetSourceList(items("a"))

	view := s.ReadMergedView()
	view[0].Selected = true

	if s.ReadMergedView()[0].Selected {
		t.Error("mutating the returned view changed session state")
	}
}

func TestPayloadCarriedThrough(t *testing.T) {
	type details struct {
		Price int
		Tags  []string
	}

	s := Initialize[details]()
	defer s.Close()

	s.SetSourceList([]Item[details]{
		{Name: "apple", Payload: details{Price: 3, Tags: []string{"fruit"}}},
	})
	s.OnSearchTextChanged("app")

	got := s.Visible()
	if len(got) != 1 {
		t.Fatalf("Visible() len = %d, want 1", len(got))
	}
	if diff := cmp.Diff(details{Price: 3, Tags: []string{"fruit"}}, got[0].Payload); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestClose_TearsDownTogether(t *testing.T) {
	s := Initialize[string]()
	s.SetSourceList(items("foo", "bar"))
	s.ToggleSelected("foo", false)

	s.Close()
	s.Close()

	if !s.Closed() {
		t.Fatal("Closed() = false after Close")
	}

	// Every operation is a no-op on a closed session.
	s.SetSourceList(items("x"))
	if s.OnSearchTextChanged("x") {
		t.Error("OnSearchTextChanged() on closed session reported a write")
	}
	s.ToggleSelected("bar", false)
	s.SetAllSelected(true)

	if got := s.ReadMergedView(); len(got) != 0 {
		t.Errorf("ReadMergedView() after Close = %v, want empty", got)
	}
	if got := s.SourceList(); len(got) != 0 {
		t.Errorf("SourceList() after Close = %v, want empty", got)
	}
	if got := s.HiddenMap(); len(got) != 0 {
		t.Errorf("HiddenMap() after Close = %v, want empty", got)
	}
	if got := s.SelectedMap(); len(got) != 0 {
		t.Errorf("SelectedMap() after Close = %v, want empty", got)
	}
	if got := s.SelectedNames(); len(got) != 0 {
		t.Errorf("SelectedNames() after Close = %v, want empty", got)
	}
	if got := s.Stats(); got != (Stats{}) {
		t.Errorf("Stats() after Close = %+v, want zero", got)
	}
}

func TestWithSession(t *testing.T) {
	var captured *Session[string]

	err := WithSession(items("foo", "bar"), func(s *Session[string]) error {
		captured = s
		if got := names(s.ReadMergedView()); len(got) != 2 {
			t.Errorf("seeded view = %v, want 2 items", got)
		}
		return nil
	}, WithID("scoped"))
	if err != nil {
		t.Fatalf("WithSession() error = %v", err)
	}
	if !captured.Closed() {
		t.Error("session still open after WithSession returned")
	}
	if captured.ID() != "scoped" {
		t.Errorf("ID() = %q, want %q", captured.ID(), "scoped")
	}
}

func TestWithSession_PropagatesErrorAndCloses(t *testing.T) {
	wantErr := errors.New("boom")
	var captured *Session[string]

	err := WithSession(items("a"), func(s *Session[string]) error {
		captured = s
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("WithSession() error = %v, want %v", err, wantErr)
	}
	if !captured.Closed() {
		t.Error("session still open after fn returned an error")
	}
}

func TestStats(t *testing.T) {
	s := Initialize[string]()
	defer s.Close()

	s.SetSourceList(items("foo", "bar", "baz"))
	s.OnSearchTextChanged("ba")
	s.ToggleSelected("baz", false)

	got := s.Stats()
	want := Stats{Items: 3, Visible: 2, Selected: 1, Recomputes: 3}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestWrite_ResolvesMergedViewBeforeReturning(t *testing.T) {
	s := Initialize[string]()
	defer s.Close()

	if s.Stats().Recomputes != 0 {
		t.Fatalf("Recomputes after Initialize = %d, want 0", s.Stats().Recomputes)
	}

	writes := []struct {
		name  string
		write func()
	}{
		{"set source list", func() { s.SetSourceList(items("foo", "bar")) }},
		{"search", func() { s.OnSearchTextChanged("ba") }},
		{"toggle", func() { s.ToggleSelected("bar", false) }},
		{"select all", func() { s.SetAllSelected(true) }},
	}
	for i, w := range writes {
		w.write()
		if !s.merged.IsCached() {
			t.Errorf("%s: merged view not resolved after write", w.name)
		}
		if got := s.recomputes; got != i+1 {
			t.Errorf("%s: recomputes = %d, want %d", w.name, got, i+1)
		}
	}

	want := []MergedItem[string]{
		{Item: Item[string]{Name: "foo", Payload: "payload-foo"}, Hidden: true, Selected: true},
		{Item: Item[string]{Name: "bar", Payload: "payload-bar"}, Hidden: false, Selected: true},
	}
	if diff := cmp.Diff(want, s.ReadMergedView()); diff != "" {
		t.Errorf("ReadMergedView() mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_ConcurrentUse(t *testing.T) {
	s := Initialize[string]()
	defer s.Close()
	s.SetSourceList(items("foo", "bar", "baz"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				s.OnSearchTextChanged("ba")
			} else {
				s.OnSearchTextChanged("")
			}
		}(i)
		go func() {
			defer wg.Done()
			for it := range s.VisibleItems() {
				_ = it.Name
			}
		}()
	}
	wg.Wait()

	if got := len(s.ReadMergedView()); got != 3 {
		t.Errorf("ReadMergedView() len = %d, want 3", got)
	}
}
