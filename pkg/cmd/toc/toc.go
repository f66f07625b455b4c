package toc

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/markedit/internal/state"
	"github.com/Paintersrp/markedit/internal/toc"
	cmdpkg "github.com/Paintersrp/markedit/pkg/cmd"
)

func NewCmdTOC(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toc <id|path>",
		Short: "Print the outline of a document.",
		Long: heredoc.Doc(`
			Print every heading of a stored document or Markdown file, indented by
			level. With --links each entry is printed as a Markdown link to its
			anchor, ready to paste into the document.
		`),
		Example: heredoc.Doc(`
			markedit toc README.md
			markedit toc 3f2a --links
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			src, err := cmdpkg.ResolveSource(ctx, s, args[0])
			if err != nil {
				return err
			}

			links, _ := cmd.Flags().GetBool("links")
			Print(cmd.OutOrStdout(), toc.Extract(src.Doc.Content), links)
			return nil
		},
	}

	cmd.Flags().BoolP("links", "l", false, "Print entries as Markdown links")
	return cmd
}

func Print(out io.Writer, entries []toc.Entry, links bool) {
	for _, e := range entries {
		indent := strings.Repeat("  ", toc.Indent(e.Level))
		if links {
			fmt.Fprintf(out, "%s- [%s](#%s)\n", indent, e.Text, e.ID)
			continue
		}
		fmt.Fprintf(out, "%s%s\n", indent, e.Text)
	}
}
