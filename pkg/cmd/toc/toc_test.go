package toc

import (
	"bytes"
	"testing"

	"github.com/Paintersrp/markedit/internal/toc"
)

func TestPrint(t *testing.T) {
	entries := toc.Extract("# Guide\n\n## Install\n\n### On Linux\n")

	var out bytes.Buffer
	Print(&out, entries, false)
	if got := out.String(); got != "Guide\n  Install\n    On Linux\n" {
		t.Fatalf("unexpected outline %q", got)
	}

	out.Reset()
	Print(&out, entries, true)
	want := "- [Guide](#guide)\n  - [Install](#install)\n    - [On Linux](#on-linux)\n"
	if got := out.String(); got != want {
		t.Fatalf("unexpected link outline %q", got)
	}
}
