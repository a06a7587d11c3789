package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the Clockify API key",
	}

	cmd.AddCommand(newAuthSetCmd(app), newAuthRemoveCmd(app))

	return cmd
}

func newAuthSetCmd(app *app) *cobra.Command {
	var apiKey string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the Clockify API key in the secret store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref := app.cfg.Clockify.APIKeyRef
			if err := app.credentials.SetAPIKey(cmd.Context(), ref, apiKey); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stored API key as %s\n", ref)
			return nil
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "Clockify API key")
	_ = cmd.MarkFlagRequired("api-key")

	return cmd
}

func newAuthRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Remove the Clockify API key from the secret store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref := app.cfg.Clockify.APIKeyRef
			if err := app.credentials.RemoveAPIKey(cmd.Context(), ref); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed API key %s\n", ref)
			return nil
		},
	}
}
