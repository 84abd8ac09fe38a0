package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sandeepkv93/taskboard/internal/board"
	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/spf13/cobra"
)

func taskCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks of the active project",
	}

	var filter string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks of the active project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := model.FilterMode(filter)
			if !mode.IsValid() {
				return fmt.Errorf("unknown filter %q, expected all, completed or pending", filter)
			}
			a, err := openCLI(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()
			a.board.SetFilter(cmd.Context(), mode)
			renderTasks(cmd.OutOrStdout(), a.board.View(), time.Now())
			return nil
		},
	}
	listCmd.Flags().StringVarP(&filter, "filter", "f", string(model.FilterAll), "all, completed or pending")
	cmd.AddCommand(listCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "add <deadline> [HH:MM] <title...>",
		Short: "Add a task to the active project",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openCLI(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()
			return runLine(cmd, a, editFlags{}, append([]string{"add"}, args...)...)
		},
	})

	var edit editFlags
	editCmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Change a task's title or deadline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if edit.title == "" && edit.deadline == "" {
				return fmt.Errorf("nothing to change, pass --title or --deadline")
			}
			a, err := openCLI(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()
			return runLine(cmd, a, edit, "edit", args[0])
		},
	}
	editCmd.Flags().StringVar(&edit.title, "title", "", "New title")
	editCmd.Flags().StringVar(&edit.deadline, "deadline", "", "New deadline (YYYY-MM-DD or YYYY-MM-DD HH:MM)")
	cmd.AddCommand(editCmd)

	for _, sub := range []struct {
		use, short, verb string
	}{
		{use: "toggle <task-id>", short: "Flip a task between pending and done", verb: "toggle"},
		{use: "rm <task-id>", short: "Delete a task", verb: "rm"},
	} {
		cmd.AddCommand(&cobra.Command{
			Use:   sub.use,
			Short: sub.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := openCLI(cmd, flags)
				if err != nil {
					return err
				}
				defer a.Close()
				return runLine(cmd, a, editFlags{}, sub.verb, args[0])
			},
		})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "complete-all [id|name...]",
		Short: "Mark every task of a project done (default: the active one)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openCLI(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()
			if len(args) == 0 {
				return runLine(cmd, a, editFlags{}, "complete-all")
			}
			ref := strings.Join(args, " ")
			proj, ok := resolveProject(a.store.Snapshot(), ref)
			if !ok {
				return fmt.Errorf("no project %q", ref)
			}
			return a.board.CompleteAllIn(cmd.Context(), proj.ID)
		},
	})

	return cmd
}

func renderTasks(w io.Writer, v board.View, now time.Time) {
	if !v.HasActive {
		fmt.Fprintln(w, "no active project")
		return
	}
	fmt.Fprintf(w, "%s: %d/%d done (%d%%), filter %s\n", v.Active.Name, v.Progress.Done, v.Progress.Total, v.Progress.Pct, v.Filter)
	if len(v.Tasks) == 0 {
		fmt.Fprintln(w, "no tasks")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "DONE", "TITLE", "DEADLINE")
	for _, task := range v.Tasks {
		done := " "
		if task.Completed {
			done = "x"
		}
		deadline := task.Deadline
		if !task.Completed && task.OverdueAt(now) {
			deadline += " (overdue)"
		}
		t.Row(task.ID, done, task.Title, deadline)
	}
	fmt.Fprintln(w, t.Render())
}
