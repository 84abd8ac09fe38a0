package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

type globalFlags struct {
	configPath string
	backend    string
	dataPath   string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:           "taskboard",
		Short:         "Projects, tasks and deadline reminders in the terminal",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/taskboard/config.toml)")
	pf.StringVar(&flags.backend, "backend", "", "Storage backend (sqlite, file, memory)")
	pf.StringVar(&flags.dataPath, "data", "", "Database file or state directory")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(projectCmd(flags))
	rootCmd.AddCommand(taskCmd(flags))
	rootCmd.AddCommand(remindersCmd(flags))
	rootCmd.AddCommand(resetCmd(flags))
	return rootCmd
}
