package diagram

import (
	"strings"
)

const (
	DefaultTheme         = "default"
	DefaultSecurityLevel = "strict"
)

// Config is the process-wide configuration of the diagram collaborator. It is
// built once at startup and shared by reference with every pipeline.
type Config struct {
	Languages     []string
	Theme         string
	SecurityLevel string
	Command       string
	Args          []string
}

func DefaultConfig() *Config {
	return &Config{
		Languages:     []string{"mermaid"},
		Theme:         DefaultTheme,
		SecurityLevel: DefaultSecurityLevel,
	}
}

// IsDiagram reports whether a fenced block tagged with lang should go through
// the diagram pipeline instead of the default code renderer.
func (c *Config) IsDiagram(lang string) bool {
	if c == nil {
		return false
	}
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return false
	}
	for _, candidate := range c.Languages {
		if strings.EqualFold(candidate, lang) {
			return true
		}
	}
	return false
}

func (c *Config) expandArgs(id string) []string {
	args := make([]string, len(c.Args))
	replacer := strings.NewReplacer(
		"{id}", id,
		"{theme}", c.Theme,
		"{security}", c.SecurityLevel,
	)
	for i, arg := range c.Args {
		args[i] = replacer.Replace(arg)
	}
	return args
}
