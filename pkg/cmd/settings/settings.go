package settings

import (
	"errors"
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/markedit/internal/config"
	"github.com/Paintersrp/markedit/internal/tui/settings"
	cmdpkg "github.com/Paintersrp/markedit/pkg/cmd"
)

// choose asks the user to pick one of choices; swapped out in tests.
var choose = func(prompt string, choices []string) (string, error) {
	if !cmdpkg.Interactive() {
		return "", errors.New("no value given and no terminal to ask on")
	}
	sel := selection.New(prompt, choices)
	sel.Filter = nil
	return sel.RunPrompt()
}

func NewCmdSettings(c *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settings",
		Aliases: []string{"s"},
		Short:   "CLI settings menu",
		Long: heredoc.Doc(`
			Adjust your settings directly from the CLI tool. Without a subcommand
			an interactive menu lists every setting.
		`),
		Example: heredoc.Doc(`
			markedit settings
			markedit settings theme dark
			markedit settings set export.s3_bucket my-notes
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return settings.Run(c)
		},
	}

	cmd.AddCommand(
		newCmdChoice(c, "theme", "Change the preview theme."),
		newCmdChoice(c, "language", "Change the outline language."),
		newCmdSet(c),
		newCmdShow(c),
	)
	return cmd
}

func newCmdChoice(c *config.Config, key, short string) *cobra.Command {
	return &cobra.Command{
		Use:   key + " [value]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := ""
			if len(args) == 1 {
				value = args[0]
			} else {
				var err error
				if value, err = choose("Choose a "+key+".", choicesFor(c, key)); err != nil {
					return err
				}
			}
			return apply(cmd.OutOrStdout(), c, key, value)
		},
	}
}

func newCmdSet(c *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change any setting by key.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return apply(cmd.OutOrStdout(), c, args[0], args[1])
		},
	}
}

func newCmdShow(c *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print every setting.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			show(cmd.OutOrStdout(), c)
		},
	}
}

func choicesFor(c *config.Config, key string) []string {
	for _, s := range c.Settings() {
		if s.Key == key {
			return s.Choices
		}
	}
	return nil
}

func apply(out io.Writer, c *config.Config, key, value string) error {
	if err := c.Set(key, value); err != nil {
		return err
	}
	if err := c.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintf(out, "%s set to %s\n", key, value)
	return nil
}

func show(out io.Writer, c *config.Config) {
	for _, s := range c.Settings() {
		fmt.Fprintf(out, "%-24s %s\n", s.Key, s.Value)
	}
}
