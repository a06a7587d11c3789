package cmd

import (
	"context"
	"fmt"

	sheetrender "github.com/bnema/clockify-timesheet/internal/adapters/render/sheet"
	"github.com/bnema/clockify-timesheet/internal/application"
	"github.com/spf13/cobra"
)

func newPreviewCmd(app *app) *cobra.Command {
	var months monthFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show a month of consolidated rows without writing a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			month, err := months.resolve(app)
			if err != nil {
				return err
			}

			svc, err := app.exportService(cmd.Context(), nil)
			if err != nil {
				return err
			}

			var sheet application.Sheet
			preview := func(ctx context.Context) error {
				var previewErr error
				sheet, previewErr = svc.Preview(ctx, month)
				return previewErr
			}

			if asJSON {
				err = preview(cmd.Context())
			} else {
				err = runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), fmt.Sprintf("Fetching entries for %s...", month), preview)
			}
			if err != nil {
				return err
			}

			return writeSheetOutput(cmd, app, sheet, asJSON)
		},
	}

	months.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func writeSheetOutput(cmd *cobra.Command, app *app, sheet application.Sheet, asJSON bool) error {
	if asJSON {
		return sheetrender.WriteJSON(cmd.OutOrStdout(), sheet, app.location())
	}

	rendered, err := app.sheetRenderer(sheet, sheetrender.RenderOptions{Location: app.location()})
	if err != nil {
		return fmt.Errorf("render time sheet: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
