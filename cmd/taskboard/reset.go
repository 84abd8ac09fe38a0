package main

import (
	"fmt"

	"github.com/sandeepkv93/taskboard/internal/storage"
	"github.com/sandeepkv93/taskboard/internal/store"
	"github.com/spf13/cobra"
)

func resetCmd(flags *globalFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all stored projects, tasks and settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to erase stored state without --yes")
			}
			a, err := openCLI(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			removed, err := storage.Purge(cmd.Context(), a.kv, store.StorageKeyPrefix)
			if err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			if len(removed) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing stored")
				return nil
			}
			for _, e := range removed {
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s (updated %s)\n", e.Key, e.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
			a.logger.Info("stored state erased", "entries", len(removed))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the reset")
	return cmd
}
