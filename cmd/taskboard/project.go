package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sandeepkv93/taskboard/internal/board"
	"github.com/spf13/cobra"
)

func projectCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Create, select, list and delete projects",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List projects with their progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openCLI(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()
			renderProjects(cmd.OutOrStdout(), a.board.View())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "new <name...>",
		Short: "Create a project and make it active",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openCLI(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()
			return runLine(cmd, a, editFlags{}, append([]string{"project", "new"}, args...)...)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "use <id|name...>",
		Short: "Make a project active",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openCLI(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()
			return runLine(cmd, a, editFlags{}, append([]string{"project", "use"}, args...)...)
		},
	})

	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete [id|name...]",
		Short: "Delete a project and all of its tasks (default: the active one)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openCLI(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()
			if len(args) > 0 {
				if err := runLine(cmd, a, editFlags{}, append([]string{"project", "use"}, args...)...); err != nil {
					return err
				}
			}
			active, ok := a.store.ActiveProject()
			if !ok {
				return fmt.Errorf("no active project")
			}
			if !yes {
				return fmt.Errorf("refusing to delete %q without --yes", active.Name)
			}
			return runLine(cmd, a, editFlags{}, "project", "delete")
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")
	cmd.AddCommand(deleteCmd)

	return cmd
}

func renderProjects(w io.Writer, v board.View) {
	if len(v.Projects) == 0 {
		fmt.Fprintln(w, "no projects")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "ID", "NAME", "DONE", "PROGRESS")
	for _, p := range v.Projects {
		marker := ""
		if p.Active {
			marker = "*"
		}
		t.Row(marker, p.ID, p.Name,
			fmt.Sprintf("%d/%d", p.Progress.Done, p.Progress.Total),
			strconv.Itoa(p.Progress.Pct)+"%")
	}
	fmt.Fprintln(w, t.Render())
}
