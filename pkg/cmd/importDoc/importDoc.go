package importDoc

import (
	"context"
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/markedit/internal/exporter"
	"github.com/Paintersrp/markedit/internal/state"
	"github.com/Paintersrp/markedit/internal/store"
)

func NewCmdImport(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "import <path>",
		Aliases: []string{"i"},
		Short:   "Import a Markdown file into the document store.",
		Long: heredoc.Doc(`
			Copy a Markdown file into the document store. The content is stored
			byte for byte. The title is the first level-one heading, or the file
			name when there is none, unless --title is given.
		`),
		Example: heredoc.Doc(`
			markedit import notes/todo.md
			markedit import draft.md --title "Draft v2"
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			_, err := run(cmd.Context(), cmd.OutOrStdout(), s, args[0], title)
			return err
		},
	}

	cmd.Flags().StringP("title", "t", "", "Title for the imported document")
	return cmd
}

func run(ctx context.Context, out io.Writer, s *state.State, path, title string) (store.Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	derived, content, err := exporter.ReadFile(path)
	if err != nil {
		return store.Document{}, err
	}
	if title == "" {
		title = derived
	}

	// Create would replace empty content with the welcome document.
	doc := store.Document{Title: title, Content: content}
	if err := s.Store.Save(ctx, &doc); err != nil {
		return store.Document{}, err
	}

	fmt.Fprintf(out, "Imported %s (%s)\n", doc.Title, doc.ID)
	return doc, nil
}
