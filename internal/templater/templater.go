// Package templater renders starter documents for new documents. Templates
// ship embedded in the binary; a *.tmpl file in the user template directory
// with the same name takes precedence.
package templater

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"
)

//go:embed templates
var embeddedTemplates embed.FS

const templateExt = ".tmpl"

type SingleTemplate struct {
	FilePath string
	Content  string
}

type TemplateMap map[string]SingleTemplate

type Templater struct {
	templates TemplateMap
	now       func() time.Time
}

// TemplateData is passed to every template.
type TemplateData struct {
	Title string
	Date  string
}

// NewTemplater loads user templates from userDir, which may not exist, and
// then the embedded ones.
func NewTemplater(userDir string) (*Templater, error) {
	tmplMap := make(TemplateMap)

	if userDir != "" {
		if _, err := os.Stat(userDir); err == nil {
			if err := tmplMap.loadTemplates(userDir); err != nil {
				return nil, err
			}
		}
	}

	if err := tmplMap.loadEmbeddedTemplates(embeddedTemplates); err != nil {
		return nil, err
	}

	return &Templater{templates: tmplMap, now: time.Now}, nil
}

// Names lists the available templates in sorted order.
func (t *Templater) Names() []string {
	names := make([]string, 0, len(t.templates))
	for name := range t.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute renders the named template for a document titled title.
func (t *Templater) Execute(name, title string) (string, error) {
	tmplData, ok := t.templates[name]
	if !ok {
		return "", fmt.Errorf("template %q not found (available: %s)", name, strings.Join(t.Names(), ", "))
	}

	tmpl, err := template.New(name).Parse(tmplData.Content)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	data := TemplateData{Title: title, Date: t.now().Format("2006-01-02")}
	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}

	return rendered.String(), nil
}

func (m TemplateMap) loadEmbeddedTemplates(embeddedFS embed.FS) error {
	return fs.WalkDir(
		embeddedFS,
		"templates",
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}

			name := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
			if _, exists := m[name]; exists {
				return nil
			}

			data, err := fs.ReadFile(embeddedFS, path)
			if err != nil {
				return err
			}
			m[name] = SingleTemplate{FilePath: path, Content: string(data)}
			return nil
		},
	)
}

func (m TemplateMap) loadTemplates(dirPath string) error {
	return filepath.Walk(
		dirPath,
		func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() || filepath.Ext(path) != templateExt {
				return nil
			}

			name := strings.TrimSuffix(info.Name(), templateExt)
			if _, exists := m[name]; exists {
				return nil
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			m[name] = SingleTemplate{FilePath: path, Content: string(data)}
			return nil
		},
	)
}
