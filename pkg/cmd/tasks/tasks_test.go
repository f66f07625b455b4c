package tasks

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	services "github.com/Paintersrp/markedit/internal/services/tasks"
	"github.com/Paintersrp/markedit/internal/store"
)

func TestListAndToggle(t *testing.T) {
	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "docs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	doc, err := st.Create(ctx, "Chores", "- [ ] dishes\n- [x] laundry\n")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	svc := services.NewService(st)

	var out bytes.Buffer
	if err := list(ctx, &out, svc, true); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out.String(), "dishes") || strings.Contains(out.String(), "laundry") {
		t.Fatalf("--open should hide checked tasks: %q", out.String())
	}

	out.Reset()
	if err := toggle(ctx, &out, svc, 1); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !strings.HasPrefix(out.String(), "checked: dishes") {
		t.Fatalf("unexpected toggle output %q", out.String())
	}

	got, err := st.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Content != "- [x] dishes\n- [x] laundry\n" {
		t.Fatalf("unexpected content %q", got.Content)
	}

	if err := toggle(ctx, &out, svc, 7); err == nil {
		t.Fatalf("expected error for an unknown task number")
	}
}
