package config

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTheme    = errors.New("invalid theme")
	ErrInvalidLanguage = errors.New("invalid language")
)

// ConfigInitError reports a config file that could not be read or created.
type ConfigInitError struct {
	Path string
	Op   string
	Err  error
}

func (e *ConfigInitError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ConfigInitError) Unwrap() error { return e.Err }
