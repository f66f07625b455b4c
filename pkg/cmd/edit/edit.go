package edit

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/markedit/internal/fzf"
	"github.com/Paintersrp/markedit/internal/state"
	"github.com/Paintersrp/markedit/internal/store"
	"github.com/Paintersrp/markedit/internal/tui/editor"
	cmdpkg "github.com/Paintersrp/markedit/pkg/cmd"
)

func NewCmdEdit(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit [id]",
		Aliases: []string{"e"},
		Short:   "Edit a stored document with a live preview.",
		Long: heredoc.Doc(`
			Open a stored document in the editor. The id may be any unique
			prefix of the document id. Without an id a fuzzy finder lists every
			document with a rendered preview.
		`),
		Example: heredoc.Doc(`
			markedit edit
			markedit edit 3f2a
			markedit edit 3f2a --mode preview
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			doc, err := pick(ctx, s, args)
			if err != nil {
				if fzf.IsAbort(err) {
					fmt.Fprintln(cmd.OutOrStdout(), "No document selected")
					return nil
				}
				return err
			}

			mode, _ := cmd.Flags().GetString("mode")
			opts := cmdpkg.EditorOptions(s, cmdpkg.Source{Doc: doc})
			opts.Mode = editor.ParseMode(mode)
			return cmdpkg.RunEditor(opts)
		},
	}

	cmd.Flags().StringP("mode", "m", "split", "Initial view: split, edit or preview")
	return cmd
}

func pick(ctx context.Context, s *state.State, args []string) (store.Document, error) {
	if len(args) == 1 {
		return cmdpkg.ResolveDocument(ctx, s, args[0])
	}

	docs, err := s.Store.GetAll(ctx)
	if err != nil {
		return store.Document{}, err
	}
	return fzf.NewFuzzyFinder(docs, "Select a document to edit.").Run("")
}
