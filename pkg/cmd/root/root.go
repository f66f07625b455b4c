package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/markedit/internal/constants"
	"github.com/Paintersrp/markedit/internal/state"
	"github.com/Paintersrp/markedit/pkg/cmd/deleteDoc"
	"github.com/Paintersrp/markedit/pkg/cmd/edit"
	"github.com/Paintersrp/markedit/pkg/cmd/export"
	"github.com/Paintersrp/markedit/pkg/cmd/importDoc"
	"github.com/Paintersrp/markedit/pkg/cmd/list"
	"github.com/Paintersrp/markedit/pkg/cmd/new"
	"github.com/Paintersrp/markedit/pkg/cmd/open"
	"github.com/Paintersrp/markedit/pkg/cmd/render"
	"github.com/Paintersrp/markedit/pkg/cmd/settings"
	"github.com/Paintersrp/markedit/pkg/cmd/tasks"
	"github.com/Paintersrp/markedit/pkg/cmd/toc"
)

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     constants.AppName,
		Short:   "A terminal Markdown editor with a live preview.",
		Version: constants.Version,
		Long: heredoc.Doc(`
			markedit edits Markdown with a live preview next to the source. The
			preview follows the source as you scroll, renders diagrams in the
			background, lets you tick task checkboxes and jump to headings from
			the outline.

			Documents live in a local store; plain files can be opened directly.
		`),
		Example: heredoc.Doc(`
			markedit new "Meeting notes"
			markedit edit
			markedit open README.md
		`),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.Config.ApplyOverrides(viper.GetViper())
		},
		// Run the document picker by default.
		RunE: edit.NewCmdEdit(s).RunE,
	}

	flags := cmd.PersistentFlags()
	flags.String("theme", "", "Preview theme: light, dark or system")
	flags.String("language", "", "Outline language: zh or en")
	flags.Int("wrap", 0, "Preview wrap width (0 = pane width)")
	viper.BindPFlag("theme", flags.Lookup("theme"))
	viper.BindPFlag("language", flags.Lookup("language"))
	viper.BindPFlag("wrap", flags.Lookup("wrap"))
	cmd.Flags().StringP("mode", "m", "split", "Initial view: split, edit or preview")

	cmd.AddCommand(
		list.NewCmdList(s),
		new.NewCmdNew(s),
		edit.NewCmdEdit(s),
		open.NewCmdOpen(s),
		deleteDoc.NewCmdDelete(s),
		export.NewCmdExport(s),
		importDoc.NewCmdImport(s),
		toc.NewCmdTOC(s),
		render.NewCmdRender(s),
		settings.NewCmdSettings(s.Config),
		tasks.NewCmdTasks(s),
	)

	return cmd, nil
}
