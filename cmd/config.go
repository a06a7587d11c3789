package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/bnema/clockify-timesheet/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the cts configuration file",
	}

	cmd.AddCommand(
		newConfigPathCmd(),
		newConfigShowCmd(app),
		newConfigSetCmd(),
	)

	return cmd
}

// path and set work from the file location alone so a config that fails to
// load can still be found and repaired.
func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print the configuration file location",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationSkipWiring: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configFilePath(cmd)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}

func newConfigShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rendered, err := app.cfg.Render()
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "set KEY VALUE",
		Short:       "Write one setting to the configuration file",
		Long:        "Write one setting to the configuration file. Known keys: " + strings.Join(config.SettableKeys(), ", "),
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{annotationSkipWiring: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFilePath(cmd)
			if err != nil {
				return err
			}

			if err := config.Set(path, args[0], args[1]); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", args[0], path)
			return nil
		},
	}
}

func configFilePath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return config.DefaultPath(home), nil
}
