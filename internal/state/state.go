package state

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/Paintersrp/markedit/internal/config"
	"github.com/Paintersrp/markedit/internal/constants"
	"github.com/Paintersrp/markedit/internal/diagram"
	"github.com/Paintersrp/markedit/internal/markdown"
	"github.com/Paintersrp/markedit/internal/rephrase"
	"github.com/Paintersrp/markedit/internal/store"
	"github.com/Paintersrp/markedit/internal/tasks"
)

type State struct {
	Config    *config.Config
	Store     store.Store
	Diagrams  *diagram.Config
	Pipeline  *diagram.Pipeline
	Renderer  *markdown.Renderer
	Rephraser rephrase.Rephraser
	Home      string
	Watcher   *FileWatcher
}

func NewState() (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(home)
	if err != nil {
		return nil, err
	}

	st, err := store.NewSQLiteStore(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open document store: %w", err)
	}

	return build(home, cfg, st), nil
}

// build wires the shared services around an already loaded config and store.
// The diagram configuration is created once here and shared by every
// pipeline user.
func build(home string, cfg *config.Config, st store.Store) *State {
	diagrams := cfg.DiagramSettings()

	var r rephrase.Rephraser
	if key := cfg.APIKey(); key != "" {
		r = rephrase.NewOpenAI(key, cfg.AI.Model, cfg.AI.BaseURL)
	}

	return &State{
		Config:    cfg,
		Store:     st,
		Diagrams:  diagrams,
		Pipeline:  diagram.NewPipeline(diagrams, nil),
		Renderer:  markdown.NewRenderer(),
		Rephraser: r,
		Home:      home,
	}
}

// ParseOptions returns the parse options implied by the config.
func (s *State) ParseOptions() markdown.Options {
	scheme := tasks.ByOrdinal
	if s.Config.Preview.TaskPositions {
		scheme = tasks.ByLine
	}
	return markdown.Options{TaskScheme: scheme, Diagrams: s.Diagrams}
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home string) (*config.Config, error) {
	viper.AddConfigPath(home + constants.ConfigDir)
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := config.EnsureConfigExists(home); err != nil {
		return nil, err
	}
	viper.ReadInConfig()

	cfg, err := config.Load(home)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyOverrides(viper.GetViper()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Close releases the diagram pipeline, the file watcher and the store.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Pipeline != nil {
		s.Pipeline.Close()
	}
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}
	if s.Store != nil {
		if err := s.Store.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Store = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
