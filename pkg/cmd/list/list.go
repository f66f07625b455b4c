package list

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/araddon/dateparse"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/markedit/internal/state"
	"github.com/Paintersrp/markedit/internal/store"
)

var headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0AF")).Bold(true)

func NewCmdList(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List stored documents, most recently updated first.",
		Long: heredoc.Doc(`
			List every stored document with its id prefix, title and last update.

			--since accepts most human date formats, for example "2024-05-01",
			"May 1 2024" or "05/01/2024 15:04".
		`),
		Example: heredoc.Doc(`
			markedit list
			markedit list --since "2024-05-01"
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			since, _ := cmd.Flags().GetString("since")
			return run(cmd.Context(), cmd.OutOrStdout(), s, since)
		},
	}

	cmd.Flags().String("since", "", "Only list documents updated after this date")
	return cmd
}

func run(ctx context.Context, out io.Writer, s *state.State, since string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	docs, err := s.Store.GetAll(ctx)
	if err != nil {
		return err
	}

	if since != "" {
		after, err := dateparse.ParseLocal(since)
		if err != nil {
			return fmt.Errorf("invalid --since date %q: %w", since, err)
		}
		docs = Since(docs, after)
	}

	if len(docs) == 0 {
		fmt.Fprintln(out, "No documents.")
		return nil
	}

	fmt.Fprintln(out, Table(docs))
	return nil
}

// Since keeps the documents updated at or after t.
func Since(docs []store.Document, t time.Time) []store.Document {
	var out []store.Document
	for _, d := range docs {
		if !d.UpdatedAt.Before(t) {
			out = append(out, d)
		}
	}
	return out
}

func Table(docs []store.Document) string {
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		id := d.ID
		if len(id) > 8 {
			id = id[:8]
		}
		rows = append(rows, []string{id, d.Title, d.UpdatedAt.Local().Format("2006-01-02 15:04")})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#334455"))).
		Headers(headerStyle.Render("ID"), headerStyle.Render("TITLE"), headerStyle.Render("UPDATED")).
		Rows(rows...)

	return t.String()
}
