// Package exporter moves documents in and out of markedit as plain Markdown
// files. Content is copied byte for byte.
package exporter

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Paintersrp/markedit/internal/pathutil"
	"github.com/Paintersrp/markedit/internal/toc"
)

var whitespace = regexp.MustCompile(`\s+`)

// FileName derives the export file name from a document title: lowercased,
// whitespace runs replaced by '-'.
func FileName(title string) string {
	name := whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
	name = strings.NewReplacer("/", "-", "\\", "-").Replace(name)
	if name == "" {
		name = "untitled"
	}
	return name + ".md"
}

// WriteFile writes content into dir under the name derived from title and
// returns the full path.
func WriteFile(dir, title, content string) (string, error) {
	dir = pathutil.NormalizePath(pathutil.ExpandHome(dir))
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, FileName(title))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to export %s: %w", path, err)
	}
	return path, nil
}

// ReadFile reads a Markdown file for import. The title is the first level-one
// heading, or the file name without its extension.
func ReadFile(path string) (title, content string, err error) {
	path = pathutil.NormalizePath(pathutil.ExpandHome(path))
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	content = string(data)
	return Title(content, path), content, nil
}

// Title picks a document title for content loaded from path.
func Title(content, path string) string {
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), len(content)+1)
	for scanner.Scan() {
		if entry, ok := toc.ParseLine(strings.TrimRight(scanner.Text(), "\r")); ok && entry.Level == 1 && entry.Text != "" {
			return entry.Text
		}
	}

	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
