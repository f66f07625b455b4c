package render

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Paintersrp/markedit/internal/preview"
	"github.com/Paintersrp/markedit/internal/state"
	cmdpkg "github.com/Paintersrp/markedit/pkg/cmd"
)

const defaultWidth = 80

func NewCmdRender(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "render <id|path>",
		Aliases: []string{"r", "cat"},
		Short:   "Print the rendered preview of a document.",
		Long: heredoc.Doc(`
			Render a stored document or Markdown file the way the preview pane
			shows it, diagrams included, and print it to standard output. The
			width defaults to the terminal width.
		`),
		Example: heredoc.Doc(`
			markedit render README.md
			markedit render 3f2a --width 60 --theme dark
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			timeout, _ := cmd.Flags().GetDuration("timeout")
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			src, err := cmdpkg.ResolveSource(ctx, s, args[0])
			if err != nil {
				return err
			}

			width, _ := cmd.Flags().GetInt("width")
			out, err := preview.Render(
				ctx,
				s.Renderer,
				s.Pipeline,
				s.ParseOptions(),
				src.Doc.Content,
				s.Config.Theme,
				Width(width, s.Config.Wrap),
			)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntP("width", "w", 0, "Wrap width (default: terminal width)")
	cmd.Flags().Duration("timeout", 30*time.Second, "How long to wait for diagrams")
	return cmd
}

// Width picks the render width: the flag, then the configured wrap, then the
// terminal width.
func Width(flag, wrap int) int {
	if flag > 0 {
		return flag
	}
	if wrap > 0 {
		return wrap
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}
