package settings

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Paintersrp/markedit/internal/config"
)

func TestThemeArgument(t *testing.T) {
	home := t.TempDir()
	c := config.Default(home)

	cmd := NewCmdSettings(c)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"theme", "dark"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	saved, err := config.Load(home)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if saved.Theme != config.ThemeDark {
		t.Fatalf("theme not saved, got %q", saved.Theme)
	}
}

func TestThemePrompt(t *testing.T) {
	c := config.Default(t.TempDir())

	var offered []string
	original := choose
	choose = func(prompt string, choices []string) (string, error) {
		offered = choices
		return "light", nil
	}
	t.Cleanup(func() { choose = original })

	cmd := NewCmdSettings(c)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"theme"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if c.Theme != config.ThemeLight || len(offered) != 3 {
		t.Fatalf("unexpected theme %q, offered %v", c.Theme, offered)
	}
}

func TestSetRejectsInvalidLanguage(t *testing.T) {
	c := config.Default(t.TempDir())

	err := apply(&bytes.Buffer{}, c, "language", "fr")
	if !errors.Is(err, config.ErrInvalidLanguage) {
		t.Fatalf("expected ErrInvalidLanguage, got %v", err)
	}
}

func TestShow(t *testing.T) {
	c := config.Default(t.TempDir())

	var out bytes.Buffer
	show(&out, c)
	if !strings.Contains(out.String(), "split_breakpoint") || !strings.Contains(out.String(), "system") {
		t.Fatalf("unexpected settings output %q", out.String())
	}
}
