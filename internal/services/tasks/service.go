// Package tasks lists and toggles checkboxes across every stored document.
package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/table"

	"github.com/Paintersrp/markedit/internal/store"
	task "github.com/Paintersrp/markedit/internal/tasks"
)

type Item struct {
	ID        int
	DocID     string
	Title     string
	Content   string
	Completed bool
	Line      int
	Ordinal   int
}

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// List returns every checkbox of every document, numbered from 1 in store
// order.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	if s == nil || s.store == nil {
		return nil, errors.New("task service is not configured")
	}

	docs, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var items []Item
	for _, doc := range docs {
		for _, it := range task.Scan(doc.Content) {
			items = append(items, Item{
				ID:        len(items) + 1,
				DocID:     doc.ID,
				Title:     doc.Title,
				Content:   it.Text,
				Completed: it.Checked,
				Line:      it.Line,
				Ordinal:   it.Ordinal,
			})
		}
	}
	return items, nil
}

// Toggle flips the checkbox with the given ordinal in one document, saves the
// document and reports the new state.
func (s *Service) Toggle(ctx context.Context, docID string, ordinal int) (bool, error) {
	if s == nil || s.store == nil {
		return false, errors.New("task service is not configured")
	}

	doc, err := s.store.Get(ctx, docID)
	if err != nil {
		return false, err
	}

	next := task.Toggle(doc.Content, task.Ordinal(ordinal))
	if next == doc.Content {
		return false, fmt.Errorf("no markdown task %d in %s", ordinal, doc.Title)
	}

	doc.Content = next
	if err := s.store.Save(ctx, &doc); err != nil {
		return false, err
	}

	for _, it := range task.Scan(next) {
		if it.Ordinal == ordinal {
			return it.Checked, nil
		}
	}
	return false, nil
}

func TableFromItems(items []Item, height int) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 4},
		{Title: "Status", Width: 10},
		{Title: "Content", Width: 50},
		{Title: "Document", Width: 30},
	}

	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		status := "unchecked"
		if item.Completed {
			status = "checked"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", item.ID),
			status,
			item.Content,
			item.Title,
		})
	}

	return table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(height),
	)
}
