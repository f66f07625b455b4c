package tasks

import (
	"reflect"
	"testing"
)

func TestToggleOrdinal(t *testing.T) {
	t.Parallel()

	got := Toggle("- [ ] a\n- [x] b\n- [ ] c", Ordinal(1))
	want := "- [ ] a\n- [ ] b\n- [ ] c"
	if got != want {
		t.Fatalf("unexpected toggle result: got %q, want %q", got, want)
	}
}

func TestToggleLine(t *testing.T) {
	t.Parallel()

	source := "# Todo\n\n- [ ] first\n  - [ ] nested\ntext"
	got := Toggle(source, Line(4))
	want := "# Todo\n\n- [ ] first\n  - [x] nested\ntext"
	if got != want {
		t.Fatalf("unexpected toggle result: got %q, want %q", got, want)
	}
}

func TestToggleUppercaseClears(t *testing.T) {
	t.Parallel()

	got := Toggle("- [X] done", Ordinal(0))
	if got != "- [ ] done" {
		t.Fatalf("expected uppercase mark to clear, got %q", got)
	}
	if again := Toggle(got, Ordinal(0)); again != "- [x] done" {
		t.Fatalf("expected a lowercase mark back, got %q", again)
	}
}

func TestToggleUnmatchedIsNoop(t *testing.T) {
	t.Parallel()

	source := "- [ ] a\nplain\n- [x] b"
	for _, id := range []Identifier{Ordinal(2), Ordinal(-1), Line(2), Line(0), Line(99)} {
		if got := Toggle(source, id); got != source {
			t.Fatalf("Toggle(%s) changed the source: %q", id, got)
		}
	}
}

func TestToggleTwiceIsIdentity(t *testing.T) {
	t.Parallel()

	// Uppercase [X] is left out: it toggles to [ ] and back to a lowercase
	// [x], see TestToggleUppercaseClears.
	source := "intro\n- [ ] a\r\n\t- [x] b\n- [ ]\n> - [ ] quoted"
	for _, item := range Scan(source) {
		for _, kind := range []Kind{ByLine, ByOrdinal} {
			id := item.Identifier(kind)
			once := Toggle(source, id)
			if once == source {
				t.Fatalf("Toggle(%s) did not change the source", id)
			}
			if twice := Toggle(once, id); twice != source {
				t.Fatalf("double Toggle(%s) = %q, want %q", id, twice, source)
			}
		}
	}
}

func TestToggleMutatesOneLine(t *testing.T) {
	t.Parallel()

	source := "- [ ] same\n- [ ] same\n- [ ] same"
	got := Toggle(source, Ordinal(1))
	if got != "- [ ] same\n- [x] same\n- [ ] same" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestScan(t *testing.T) {
	t.Parallel()

	source := "- [ ] a\n* [ ] star\n  - [X] b\n```\n- [ ] fenced\n```\n> - [ ] quoted"
	got := Scan(source)
	want := []Item{
		{Line: 1, Ordinal: 0, Checked: false, Text: "a"},
		{Line: 3, Ordinal: 1, Checked: true, Text: "b"},
		{Line: 5, Ordinal: 2, Checked: false, Text: "fenced"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected scan: got %#v, want %#v", got, want)
	}
}

func TestScanAndToggleAgree(t *testing.T) {
	t.Parallel()

	source := "- [ ] a\ntext\n- [ ] b\n- [ ] c"
	for _, item := range Scan(source) {
		byLine := Toggle(source, item.Identifier(ByLine))
		byOrdinal := Toggle(source, item.Identifier(ByOrdinal))
		if byLine != byOrdinal {
			t.Fatalf("schemes disagree for %#v: %q vs %q", item, byLine, byOrdinal)
		}
	}
}
