package tasks

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	services "github.com/Paintersrp/markedit/internal/services/tasks"
	"github.com/Paintersrp/markedit/internal/state"
)

func NewCmdTasks(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List task checkboxes across every stored document.",
		Long: heredoc.Doc(`
			List every task checkbox of every stored document. Tasks are numbered
			in the listing; pass that number to "tasks toggle" to tick or untick
			one without opening the editor.
		`),
		Example: heredoc.Doc(`
			markedit tasks
			markedit tasks --open
			markedit tasks toggle 3
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			open, _ := cmd.Flags().GetBool("open")
			return list(ctxOf(cmd), cmd.OutOrStdout(), services.NewService(s.Store), open)
		},
	}
	cmd.Flags().Bool("open", false, "Only list unchecked tasks")

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <number>",
		Short: "Tick or untick a task by its listing number.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid task number %q", args[0])
			}
			return toggle(ctxOf(cmd), cmd.OutOrStdout(), services.NewService(s.Store), n)
		},
	})

	return cmd
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func list(ctx context.Context, out io.Writer, svc *services.Service, open bool) error {
	items, err := svc.List(ctx)
	if err != nil {
		return err
	}
	if open {
		var pending []services.Item
		for _, it := range items {
			if !it.Completed {
				pending = append(pending, it)
			}
		}
		items = pending
	}

	if len(items) == 0 {
		fmt.Fprintln(out, "No tasks.")
		return nil
	}
	fmt.Fprintln(out, services.TableFromItems(items, len(items)+1).View())
	return nil
}

func toggle(ctx context.Context, out io.Writer, svc *services.Service, n int) error {
	items, err := svc.List(ctx)
	if err != nil {
		return err
	}
	if n < 1 || n > len(items) {
		return fmt.Errorf("no task %d; run \"markedit tasks\" to list them", n)
	}

	it := items[n-1]
	checked, err := svc.Toggle(ctx, it.DocID, it.Ordinal)
	if err != nil {
		return err
	}

	state := "unchecked"
	if checked {
		state = "checked"
	}
	fmt.Fprintf(out, "%s: %s (%s)\n", state, it.Content, it.Title)
	return nil
}
