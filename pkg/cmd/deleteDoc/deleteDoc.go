package deleteDoc

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/markedit/internal/state"
	cmdpkg "github.com/Paintersrp/markedit/pkg/cmd"
)

// confirm asks before deleting; swapped out in tests.
var confirm = func(prompt string) (bool, error) {
	if !cmdpkg.Interactive() {
		return false, errors.New("refusing to delete without a terminal; pass --yes")
	}
	return confirmation.New(prompt, confirmation.No).RunPrompt()
}

func NewCmdDelete(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm", "d"},
		Short:   "Delete a stored document.",
		Long: heredoc.Doc(`
			Permanently delete a stored document. The id may be any unique prefix
			of the document id. You are asked to confirm unless --yes is given.
		`),
		Example: heredoc.Doc(`
			markedit delete 3f2a
			markedit delete 3f2a --yes
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			return run(cmd.Context(), cmd.OutOrStdout(), s, args[0], yes)
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "Delete without asking for confirmation")
	return cmd
}

func run(ctx context.Context, out io.Writer, s *state.State, id string, yes bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	doc, err := cmdpkg.ResolveDocument(ctx, s, id)
	if err != nil {
		return err
	}

	if !yes {
		ok, err := confirm(fmt.Sprintf("Delete %q (%s)?", doc.Title, doc.ID))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	if err := s.Store.Delete(ctx, doc.ID); err != nil {
		return err
	}
	fmt.Fprintf(out, "Deleted %s\n", doc.Title)
	return nil
}
