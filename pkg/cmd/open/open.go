package open

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/markedit/internal/exporter"
	"github.com/Paintersrp/markedit/internal/state"
	"github.com/Paintersrp/markedit/internal/store"
	"github.com/Paintersrp/markedit/internal/tui/editor"
	cmdpkg "github.com/Paintersrp/markedit/pkg/cmd"
)

func NewCmdOpen(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "open <path>",
		Aliases: []string{"o"},
		Short:   "Edit a Markdown file on disk.",
		Long: heredoc.Doc(`
			Open a Markdown file in the editor. Saving writes the file back in
			place. When another program changes the file while it is open and the
			buffer has no unsaved edits, the buffer reloads.
		`),
		Example: "markedit open README.md",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := load(args[0])
			if err != nil {
				return err
			}

			watcher, err := state.NewFileWatcher(src.Path)
			if err != nil {
				return fmt.Errorf("failed to watch %s: %w", src.Path, err)
			}
			s.Watcher = watcher
			src.Path = watcher.Path()

			mode, _ := cmd.Flags().GetString("mode")
			opts := cmdpkg.EditorOptions(s, src)
			opts.Mode = editor.ParseMode(mode)
			return cmdpkg.RunEditor(opts)
		},
	}

	cmd.Flags().StringP("mode", "m", "split", "Initial view: split, edit or preview")
	return cmd
}

func load(path string) (cmdpkg.Source, error) {
	title, content, err := exporter.ReadFile(path)
	if err != nil {
		return cmdpkg.Source{}, err
	}
	return cmdpkg.Source{Doc: store.Document{Title: title, Content: content}, Path: path}, nil
}
