package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

const annotationSkipWiring = "cts/skip-wiring"

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var configPath string
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "cts",
		Short:         "Clockify time sheets (cts): consolidate time entries into monthly CSV",
		Long:          "cts fetches a month of Clockify time entries, merges consecutive entries of the same task into one row with the gaps counted as breaks, and writes the result as a CSV time sheet.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipsWiring(cmd) {
				return nil
			}

			wired, err := wireApp(configPath)
			if err != nil {
				return err
			}
			*app = *wired
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.clockify-timesheet/config.toml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newExportCmd(app),
		newPreviewCmd(app),
		newAuthCmd(app),
		newConfigCmd(app),
	)

	return rootCmd
}

func skipsWiring(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationSkipWiring] == "true" {
			return true
		}
		switch c.Name() {
		case "help", "completion":
			return true
		}
	}
	return false
}
