package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/markedit/internal/config"
)

func writeConfig(t *testing.T, home string, data map[string]any) {
	t.Helper()

	configPath := config.GetConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("failed to create config directory: %v", err)
	}

	raw, err := yaml.Marshal(data)
	if err != nil {
		t.Fatalf("failed to marshal config data: %v", err)
	}
	if err := os.WriteFile(configPath, raw, 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
}

func TestEnsureConfigExistsWritesDefaults(t *testing.T) {
	home := t.TempDir()

	if err := config.EnsureConfigExists(home); err != nil {
		t.Fatalf("EnsureConfigExists returned error: %v", err)
	}

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Theme != config.ThemeSystem || cfg.Language != config.LanguageZH {
		t.Fatalf("unexpected defaults %q/%q", cfg.Theme, cfg.Language)
	}
	if cfg.Database != filepath.Join(home, ".markedit", "docs.db") {
		t.Fatalf("unexpected database path %q", cfg.Database)
	}
	if len(cfg.Diagram.Languages) != 1 || cfg.Diagram.Languages[0] != "mermaid" {
		t.Fatalf("unexpected diagram languages %#v", cfg.Diagram.Languages)
	}

	// A second call must not clobber edits.
	if err := cfg.ChangeTheme(config.ThemeDark); err != nil {
		t.Fatalf("ChangeTheme: %v", err)
	}
	if err := config.EnsureConfigExists(home); err != nil {
		t.Fatalf("EnsureConfigExists returned error: %v", err)
	}
	reloaded, _ := config.Load(home)
	if reloaded.Theme != config.ThemeDark {
		t.Fatalf("expected persisted dark theme, got %q", reloaded.Theme)
	}
}

func TestLoadFillsMissingKeys(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]any{
		"theme": "light",
		"preview": map[string]any{
			"task_positions": true,
		},
		"diagram": map[string]any{
			"command": "mmdc",
			"args":    []string{"--id", "{id}"},
		},
	})

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Theme != config.ThemeLight || !cfg.Preview.TaskPositions {
		t.Fatalf("explicit values lost: %#v", cfg)
	}
	if cfg.Language != config.LanguageZH || cfg.SplitBreakpoint <= 0 {
		t.Fatalf("missing keys should take defaults: %#v", cfg)
	}

	d := cfg.DiagramSettings()
	if d.Command != "mmdc" || d.SecurityLevel != "strict" || !d.IsDiagram("Mermaid") {
		t.Fatalf("unexpected diagram settings %#v", d)
	}
}

func TestLoadRejectsUnsupportedTheme(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]any{"theme": "solarized"})

	if _, err := config.Load(home); !errors.Is(err, config.ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	home := t.TempDir()
	configPath := config.GetConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(configPath, []byte("theme: [unclosed"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := config.Load(home)
	var initErr *config.ConfigInitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected ConfigInitError, got %v", err)
	}
	if initErr.Path != configPath || initErr.Unwrap() == nil {
		t.Fatalf("unexpected init error %#v", initErr)
	}
}

func TestChangeLanguageValidates(t *testing.T) {
	home := t.TempDir()
	if err := config.EnsureConfigExists(home); err != nil {
		t.Fatalf("EnsureConfigExists: %v", err)
	}
	cfg, _ := config.Load(home)

	if err := cfg.ChangeLanguage("fr"); !errors.Is(err, config.ErrInvalidLanguage) {
		t.Fatalf("expected ErrInvalidLanguage, got %v", err)
	}
	if err := cfg.ChangeLanguage(config.LanguageEN); err != nil {
		t.Fatalf("ChangeLanguage: %v", err)
	}
	reloaded, _ := config.Load(home)
	if reloaded.Language != config.LanguageEN {
		t.Fatalf("expected en, got %q", reloaded.Language)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.Default(t.TempDir())

	v := viper.New()
	v.Set("theme", "dark")
	v.Set("wrap", 72)
	if err := cfg.ApplyOverrides(v); err != nil {
		t.Fatalf("ApplyOverrides: %v", err)
	}
	if cfg.Theme != config.ThemeDark || cfg.Wrap != 72 {
		t.Fatalf("overrides not applied: %#v", cfg)
	}

	bad := viper.New()
	bad.Set("theme", "neon")
	if err := cfg.ApplyOverrides(bad); !errors.Is(err, config.ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}
	if cfg.Theme != config.ThemeDark {
		t.Fatalf("invalid override must not change the theme")
	}
}

func TestSetValidatesAndStores(t *testing.T) {
	cfg := config.Default(t.TempDir())

	if err := cfg.Set("wrap", "72"); err != nil || cfg.Wrap != 72 {
		t.Fatalf("Set(wrap) = %v, wrap %d", err, cfg.Wrap)
	}
	if err := cfg.Set("preview.task_positions", "true"); err != nil || !cfg.Preview.TaskPositions {
		t.Fatalf("Set(preview.task_positions) = %v", err)
	}
	if err := cfg.Set("export.s3_bucket", " notes "); err != nil || cfg.Export.S3Bucket != "notes" {
		t.Fatalf("Set(export.s3_bucket) = %v, bucket %q", err, cfg.Export.S3Bucket)
	}

	if err := cfg.Set("theme", "sepia"); !errors.Is(err, config.ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}
	if err := cfg.Set("wrap", "-1"); err == nil {
		t.Fatalf("expected error for negative wrap")
	}
	if err := cfg.Set("editor", "nvim"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestSettingsListsEveryKey(t *testing.T) {
	cfg := config.Default(t.TempDir())

	for _, s := range cfg.Settings() {
		if err := cfg.Set(s.Key, s.Value); err != nil {
			t.Fatalf("round trip of %s=%q failed: %v", s.Key, s.Value, err)
		}
	}
}
