package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/markedit/internal/constants"
	"github.com/Paintersrp/markedit/internal/diagram"
	"github.com/Paintersrp/markedit/internal/pathutil"
)

const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"

	LanguageZH = "zh"
	LanguageEN = "en"

	defaultSplitBreakpoint = 100
)

var ValidThemes = []string{ThemeLight, ThemeDark, ThemeSystem}

type PreviewConfig struct {
	// TaskPositions identifies checkboxes by source line instead of by
	// ordinal.
	TaskPositions bool `yaml:"task_positions" json:"task_positions"`
}

type DiagramConfig struct {
	Languages     []string `yaml:"languages"      json:"languages"`
	Command       string   `yaml:"command"        json:"command"`
	Args          []string `yaml:"args"           json:"args"`
	Theme         string   `yaml:"theme"          json:"theme"`
	SecurityLevel string   `yaml:"security_level" json:"security_level"`
}

type AIConfig struct {
	Provider  string `yaml:"provider"    json:"provider"`
	Model     string `yaml:"model"       json:"model"`
	APIKeyEnv string `yaml:"api_key_env" json:"api_key_env"`
	BaseURL   string `yaml:"base_url"    json:"base_url"`
}

type ExportConfig struct {
	Dir      string `yaml:"dir"       json:"dir"`
	S3Bucket string `yaml:"s3_bucket" json:"s3_bucket"`
	S3Prefix string `yaml:"s3_prefix" json:"s3_prefix"`
	Region   string `yaml:"region"    json:"region"`
}

type Config struct {
	Theme           string        `yaml:"theme"            json:"theme"`
	Language        string        `yaml:"language"         json:"language"`
	Wrap            int           `yaml:"wrap"             json:"wrap"`
	Database        string        `yaml:"database"         json:"database"`
	SplitBreakpoint int           `yaml:"split_breakpoint" json:"split_breakpoint"`
	Preview         PreviewConfig `yaml:"preview"          json:"preview"`
	Diagram         DiagramConfig `yaml:"diagram"          json:"diagram"`
	AI              AIConfig      `yaml:"ai"               json:"ai"`
	Export          ExportConfig  `yaml:"export"           json:"export"`

	home string `yaml:"-"`
}

func Default(home string) *Config {
	d := diagram.DefaultConfig()
	return &Config{
		Theme:           ThemeSystem,
		Language:        LanguageZH,
		Database:        filepath.Join(home, constants.ConfigDir, constants.DatabaseFile),
		SplitBreakpoint: defaultSplitBreakpoint,
		Diagram: DiagramConfig{
			Languages:     d.Languages,
			Theme:         d.Theme,
			SecurityLevel: d.SecurityLevel,
		},
		AI: AIConfig{
			Provider:  "openai",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		home: home,
	}
}

func GetConfigPath(homeDir string) string {
	return filepath.Join(
		homeDir,
		constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

func Load(home string) (*Config, error) {
	data, err := os.ReadFile(GetConfigPath(home))
	if err != nil {
		return nil, err
	}

	cfg := Default(home)
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &ConfigInitError{Path: GetConfigPath(home), Op: "parse config", Err: err}
		}
	}
	cfg.home = home
	cfg.ensureDefaults()

	if err := ValidateTheme(cfg.Theme); err != nil {
		return nil, err
	}
	if err := ValidateLanguage(cfg.Language); err != nil {
		return nil, err
	}

	cfg.syncViper()
	return cfg, nil
}

func (cfg *Config) ensureDefaults() {
	def := Default(cfg.home)
	if cfg.Theme == "" {
		cfg.Theme = def.Theme
	}
	if cfg.Language == "" {
		cfg.Language = def.Language
	}
	if strings.TrimSpace(cfg.Database) == "" {
		cfg.Database = def.Database
	}
	cfg.Database = pathutil.ExpandHome(cfg.Database)
	if cfg.SplitBreakpoint <= 0 {
		cfg.SplitBreakpoint = def.SplitBreakpoint
	}
	if len(cfg.Diagram.Languages) == 0 {
		cfg.Diagram.Languages = def.Diagram.Languages
	}
	if cfg.Diagram.Theme == "" {
		cfg.Diagram.Theme = def.Diagram.Theme
	}
	if cfg.Diagram.SecurityLevel == "" {
		cfg.Diagram.SecurityLevel = def.Diagram.SecurityLevel
	}
	if cfg.AI.APIKeyEnv == "" {
		cfg.AI.APIKeyEnv = def.AI.APIKeyEnv
	}
}

// ApplyOverrides takes theme, language, wrap and database from v when they
// were set by a flag or environment variable.
func (cfg *Config) ApplyOverrides(v *viper.Viper) error {
	if v == nil {
		return nil
	}
	if v.IsSet("theme") {
		theme := v.GetString("theme")
		if err := ValidateTheme(theme); err != nil {
			return err
		}
		cfg.Theme = theme
	}
	if v.IsSet("language") {
		lang := v.GetString("language")
		if err := ValidateLanguage(lang); err != nil {
			return err
		}
		cfg.Language = lang
	}
	if v.IsSet("wrap") {
		cfg.Wrap = v.GetInt("wrap")
	}
	if v.IsSet("database") && v.GetString("database") != "" {
		cfg.Database = pathutil.ExpandHome(v.GetString("database"))
	}
	return nil
}

func (cfg *Config) syncViper() {
	viper.Set("theme", cfg.Theme)
	viper.Set("language", cfg.Language)
	viper.Set("wrap", cfg.Wrap)
	viper.Set("database", cfg.Database)
	viper.Set("split_breakpoint", cfg.SplitBreakpoint)
}

// DiagramSettings builds the process-wide diagram configuration.
func (cfg *Config) DiagramSettings() *diagram.Config {
	return &diagram.Config{
		Languages:     append([]string(nil), cfg.Diagram.Languages...),
		Theme:         cfg.Diagram.Theme,
		SecurityLevel: cfg.Diagram.SecurityLevel,
		Command:       cfg.Diagram.Command,
		Args:          append([]string(nil), cfg.Diagram.Args...),
	}
}

// APIKey reads the rephrase API key from the configured environment variable.
func (cfg *Config) APIKey() string {
	return os.Getenv(cfg.AI.APIKeyEnv)
}

func (cfg *Config) ChangeTheme(theme string) error {
	if err := ValidateTheme(theme); err != nil {
		return err
	}
	cfg.Theme = theme
	return cfg.Save()
}

func (cfg *Config) ChangeLanguage(lang string) error {
	if err := ValidateLanguage(lang); err != nil {
		return err
	}
	cfg.Language = lang
	return cfg.Save()
}

// Setting is one user-editable key shown by the settings menu.
type Setting struct {
	Key     string
	Value   string
	Choices []string
}

// Settings lists the editable keys in display order.
func (cfg *Config) Settings() []Setting {
	return []Setting{
		{Key: "theme", Value: cfg.Theme, Choices: ValidThemes},
		{Key: "language", Value: cfg.Language, Choices: []string{LanguageZH, LanguageEN}},
		{Key: "wrap", Value: strconv.Itoa(cfg.Wrap)},
		{Key: "split_breakpoint", Value: strconv.Itoa(cfg.SplitBreakpoint)},
		{Key: "database", Value: cfg.Database},
		{Key: "preview.task_positions", Value: strconv.FormatBool(cfg.Preview.TaskPositions), Choices: []string{"true", "false"}},
		{Key: "diagram.command", Value: cfg.Diagram.Command},
		{Key: "ai.model", Value: cfg.AI.Model},
		{Key: "ai.api_key_env", Value: cfg.AI.APIKeyEnv},
		{Key: "ai.base_url", Value: cfg.AI.BaseURL},
		{Key: "export.dir", Value: cfg.Export.Dir},
		{Key: "export.s3_bucket", Value: cfg.Export.S3Bucket},
		{Key: "export.s3_prefix", Value: cfg.Export.S3Prefix},
		{Key: "export.region", Value: cfg.Export.Region},
	}
}

// Set validates and stores one setting by key. It does not save.
func (cfg *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case "theme":
		if err := ValidateTheme(value); err != nil {
			return err
		}
		cfg.Theme = value
	case "language":
		if err := ValidateLanguage(value); err != nil {
			return err
		}
		cfg.Language = value
	case "wrap", "split_breakpoint":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative number, got %q", key, value)
		}
		if key == "wrap" {
			cfg.Wrap = n
		} else {
			cfg.SplitBreakpoint = n
		}
	case "database":
		if value == "" {
			return errors.New("database path cannot be empty")
		}
		cfg.Database = pathutil.ExpandHome(value)
	case "preview.task_positions":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false, got %q", key, value)
		}
		cfg.Preview.TaskPositions = b
	case "diagram.command":
		cfg.Diagram.Command = value
	case "ai.model":
		cfg.AI.Model = value
	case "ai.api_key_env":
		cfg.AI.APIKeyEnv = value
	case "ai.base_url":
		cfg.AI.BaseURL = value
	case "export.dir":
		cfg.Export.Dir = value
	case "export.s3_bucket":
		cfg.Export.S3Bucket = value
	case "export.s3_prefix":
		cfg.Export.S3Prefix = value
	case "export.region":
		cfg.Export.Region = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func (cfg *Config) GetConfigPath() string {
	home := cfg.home
	if home == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return ""
		}
	}
	return GetConfigPath(home)
}

// TemplateDir is where user starter templates for new documents live.
func (cfg *Config) TemplateDir() string {
	return filepath.Join(filepath.Dir(cfg.GetConfigPath()), "templates")
}

func (cfg *Config) Save() error {
	if err := ValidateTheme(cfg.Theme); err != nil {
		return err
	}

	cfg.syncViper()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	configPath := cfg.GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

func ValidateTheme(theme string) error {
	for _, t := range ValidThemes {
		if t == theme {
			return nil
		}
	}
	return fmt.Errorf("%w: %q. Please choose from 'light', 'dark', or 'system'.", ErrInvalidTheme, theme)
}

func ValidateLanguage(lang string) error {
	if lang == LanguageZH || lang == LanguageEN {
		return nil
	}
	return fmt.Errorf("%w: %q. Please choose 'zh' or 'en'.", ErrInvalidLanguage, lang)
}

// EnsureConfigExists creates the config directory and writes a default config
// file when none exists yet.
func EnsureConfigExists(homeDir string) error {
	configPath := GetConfigPath(homeDir)

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := Default(homeDir).Save(); err != nil {
			return &ConfigInitError{Path: configPath, Op: "create config", Err: err}
		}
	} else if err != nil {
		return fmt.Errorf("failed to check config file existence: %w", err)
	}

	return nil
}
