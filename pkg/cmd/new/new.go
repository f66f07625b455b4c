package new

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/markedit/internal/state"
	"github.com/Paintersrp/markedit/internal/store"
	"github.com/Paintersrp/markedit/internal/templater"
	cmdpkg "github.com/Paintersrp/markedit/pkg/cmd"
)

// readClipboard is swapped out in tests.
var readClipboard = clipboard.ReadAll

func NewCmdNew(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "new [title]",
		Aliases: []string{"n"},
		Short:   "Create a new document and open it in the editor.",
		Long: heredoc.Doc(`
			Create a new document in the document store.

			Without a title the document is called "Untitled". Without content it
			starts from the welcome document, which shows off the outline, task
			lists, diagrams and footnotes.

			--template starts from a named starter template instead. Built-in
			templates are note, todo, meeting and diagram; any NAME.tmpl file in
			~/.markedit/templates overrides or extends them.
		`),
		Example: heredoc.Doc(`
			markedit new "Meeting notes"
			markedit new --paste
			markedit new Draft --no-edit
			markedit new "Weekly sync" --template meeting
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paste, _ := cmd.Flags().GetBool("paste")
			noEdit, _ := cmd.Flags().GetBool("no-edit")
			tmpl, _ := cmd.Flags().GetString("template")

			doc, err := run(cmd.Context(), cmd.OutOrStdout(), s, strings.Join(args, " "), paste, tmpl)
			if err != nil || noEdit {
				return err
			}
			return cmdpkg.RunEditor(cmdpkg.EditorOptions(s, cmdpkg.Source{Doc: doc}))
		},
	}

	cmd.Flags().BoolP("paste", "p", false, "Use the clipboard as the initial content")
	cmd.Flags().Bool("no-edit", false, "Create the document without opening the editor")
	cmd.Flags().StringP("template", "t", "", "Start from a named template")
	cmd.MarkFlagsMutuallyExclusive("paste", "template")
	return cmd
}

func run(ctx context.Context, out io.Writer, s *state.State, title string, paste bool, tmpl string) (store.Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var content string
	if paste {
		c, err := readClipboard()
		if err != nil {
			return store.Document{}, fmt.Errorf("failed to read clipboard: %w", err)
		}
		content = c
	}

	title = strings.TrimSpace(title)
	if tmpl != "" {
		t, err := templater.NewTemplater(s.Config.TemplateDir())
		if err != nil {
			return store.Document{}, fmt.Errorf("failed to load templates: %w", err)
		}
		display := title
		if display == "" {
			display = store.DefaultTitle
		}
		if content, err = t.Execute(tmpl, display); err != nil {
			return store.Document{}, err
		}
	}

	doc, err := s.Store.Create(ctx, title, content)
	if err != nil {
		return store.Document{}, err
	}

	fmt.Fprintf(out, "Created %s (%s)\n", doc.Title, doc.ID)
	return doc, nil
}
