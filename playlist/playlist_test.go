package playlist

import "testing"

func TestFromPath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path    string
		artist  string
		title   string
		display string
	}{
		{"/music/Miles Davis - So What.flac", "Miles Davis", "So What", "Miles Davis - So What"},
		{"/music/ambient.wav", "", "ambient", "ambient"},
		{"track-01.mp3", "", "track-01", "track-01"},
	}
	for _, tc := range cases {
		e := FromPath(tc.path)
		if e.Artist != tc.artist || e.Title != tc.title {
			t.Errorf("FromPath(%q) = %+v, want artist %q title %q", tc.path, e, tc.artist, tc.title)
		}
		if got := e.DisplayName(); got != tc.display {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.path, got, tc.display)
		}
	}
}

func TestNavigation(t *testing.T) {
	t.Parallel()

	p := New()
	if _, idx := p.Current(); idx != -1 {
		t.Errorf("empty Current() index = %d, want -1", idx)
	}
	if _, ok := p.Next(); ok {
		t.Error("empty Next() = true, want false")
	}

	p.Add(FromPath("a.wav"), FromPath("b.wav"), FromPath("c.wav"))
	if p.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", p.Len())
	}

	if e, ok := p.Next(); !ok || e.Title != "b" {
		t.Errorf("Next() = (%+v, %v), want b", e, ok)
	}
	if e, ok := p.Next(); !ok || e.Title != "c" {
		t.Errorf("Next() = (%+v, %v), want c", e, ok)
	}
	if _, ok := p.Next(); ok {
		t.Error("Next() past the end = true, want false")
	}

	if e, ok := p.Prev(); !ok || e.Title != "b" {
		t.Errorf("Prev() = (%+v, %v), want b", e, ok)
	}

	p.SetIndex(0)
	if e, _ := p.Current(); e.Title != "a" {
		t.Errorf("after SetIndex(0), Current() = %+v, want a", e)
	}
	p.SetIndex(99) // out of range: ignored
	if p.Index() != 0 {
		t.Errorf("Index() after out-of-range SetIndex = %d, want 0", p.Index())
	}
}
