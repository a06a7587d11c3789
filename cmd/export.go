package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	sheetrender "github.com/bnema/clockify-timesheet/internal/adapters/render/sheet"
	csvsink "github.com/bnema/clockify-timesheet/internal/adapters/sink/csv"
	"github.com/bnema/clockify-timesheet/internal/application"
	"github.com/bnema/clockify-timesheet/internal/domain"
	"github.com/bnema/clockify-timesheet/internal/ports"
	"github.com/spf13/cobra"
)

const stdoutOutput = "-"

func newExportCmd(app *app) *cobra.Command {
	var months monthFlags
	var output string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a month of consolidated time entries as a CSV time sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			month, err := months.resolve(app)
			if err != nil {
				return err
			}
			return runExport(cmd, app, month, output, quiet)
		},
	}

	months.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, or - for stdout (default: timesheet-YYYY-MM.csv in export.output_dir)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress and summary on stderr")

	return cmd
}

func runExport(cmd *cobra.Command, app *app, month domain.Month, output string, quiet bool) error {
	opts := csvsink.Options{
		Delimiter: app.cfg.Export.Delimiter,
		Location:  app.location(),
	}

	var sink ports.Sink
	target := output
	if target == stdoutOutput {
		sink = csvsink.NewWriter(cmd.OutOrStdout(), opts)
		target = "stdout"
	} else {
		if target == "" {
			target = defaultOutputPath(app.cfg.Export.OutputDir, month)
		}
		sink = &csvsink.FileSink{Path: target, Options: opts}
	}

	svc, err := app.exportService(cmd.Context(), sink)
	if err != nil {
		return err
	}

	var sheet application.Sheet
	export := func(ctx context.Context) error {
		var exportErr error
		sheet, exportErr = svc.Export(ctx, month)
		return exportErr
	}

	if quiet {
		err = export(cmd.Context())
	} else {
		err = runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), fmt.Sprintf("Fetching entries for %s...", month), export)
	}
	if err != nil {
		return err
	}

	if !quiet {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d rows from %d entries for %s to %s (worked %s)\n",
			len(sheet.Rows), sheet.EntryCount, month, target, sheetrender.FormatHours(sheet.TotalWorked()))
	}

	return nil
}

func defaultOutputPath(dir string, month domain.Month) string {
	return filepath.Join(dir, fmt.Sprintf("timesheet-%s.csv", month))
}
