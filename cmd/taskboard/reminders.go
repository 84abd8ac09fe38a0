package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func remindersCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Control the deadline reminder scan",
	}

	for _, state := range []string{"on", "off"} {
		cmd.AddCommand(&cobra.Command{
			Use:   state,
			Short: fmt.Sprintf("Turn reminders %s for the next launch", state),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := openCLI(cmd, flags)
				if err != nil {
					return err
				}
				defer a.Close()
				return runLine(cmd, a, editFlags{}, "reminders", state)
			},
		})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether reminders are on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openCLI(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()
			state := "off"
			if a.store.RemindersOn() {
				state = "on"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reminders: %s (every %s)\n", state, a.reminders.Interval())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run the reminder scan in the foreground until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cmd.SetContext(ctx)
			a, err := openCLI(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.reminders.Start(ctx); err != nil {
				return err
			}
			a.logger.Info("scanning", "interval", a.reminders.Interval())
			<-ctx.Done()
			// Shutdown keeps the persisted flag so the TUI resumes the scan.
			a.reminders.Shutdown()
			return nil
		},
	})

	return cmd
}
