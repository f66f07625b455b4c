// Package store persists documents. The editor only ever reads and writes a
// document's content; titles and timestamps are bookkeeping.
package store

import (
	"context"
	"errors"
	"strings"
	"time"
)

const DefaultTitle = "Untitled"

var ErrNotFound = errors.New("document not found")

type Document struct {
	ID        string
	Title     string
	Content   string
	UpdatedAt time.Time
}

type Store interface {
	// GetAll returns every document, most recently updated first.
	GetAll(ctx context.Context) ([]Document, error)
	Get(ctx context.Context, id string) (Document, error)
	// Save inserts or replaces doc and stamps its UpdatedAt.
	Save(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, id string) error
	// Create stores a new document. An empty title becomes DefaultTitle and
	// empty content becomes the welcome document.
	Create(ctx context.Context, title, content string) (Document, error)
	Close() error
}

// FindByPrefix returns the single document whose id starts with prefix.
func FindByPrefix(docs []Document, prefix string) (Document, error) {
	var match []Document
	for _, d := range docs {
		if d.ID == prefix {
			return d, nil
		}
		if prefix != "" && strings.HasPrefix(d.ID, prefix) {
			match = append(match, d)
		}
	}
	switch len(match) {
	case 0:
		return Document{}, ErrNotFound
	case 1:
		return match[0], nil
	default:
		return Document{}, errors.New("ambiguous document id " + prefix)
	}
}

const Welcome = "# Welcome to markedit\n" +
	"\n" +
	"## 1. Live preview\n" +
	"Type on the left, read on the right. Press `tab` in the preview to move between\n" +
	"checkboxes and links, `enter` to toggle or follow them.\n" +
	"\n" +
	"## 2. Diagrams\n" +
	"```mermaid\n" +
	"graph TD\n" +
	"    A[Start writing] --> B{Split mode?}\n" +
	"    B -- yes --> C[Edit left, preview right]\n" +
	"    B -- no --> D[Focus mode]\n" +
	"    C --> E[Export .md]\n" +
	"    D --> E\n" +
	"```\n" +
	"\n" +
	"## 3. Code\n" +
	"```go\n" +
	"func welcome() {\n" +
	"\tfmt.Println(\"Welcome to markedit\")\n" +
	"}\n" +
	"```\n" +
	"\n" +
	"## 4. Tasks\n" +
	"- [x] Render mermaid diagrams\n" +
	"- [x] Jump to [headings](#1-live-preview)\n" +
	"- [ ] Sync documents to S3\n" +
	"- [ ] Rephrase with AI\n" +
	"\n" +
	"## 5. More syntax\n" +
	"A footnote reference[^1].\n" +
	"\n" +
	"| Feature | Status | Priority |\n" +
	"| :--- | :---: | ---: |\n" +
	"| Live preview | done | high |\n" +
	"| AI rephrase | done | medium |\n" +
	"\n" +
	"[^1]: Footnotes are listed at the bottom of the preview.\n"
