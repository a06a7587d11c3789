package cmd

import (
	"github.com/bnema/clockify-timesheet/internal/domain"
	"github.com/spf13/cobra"
)

type monthFlags struct {
	month    string
	previous bool
}

func (f *monthFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.month, "month", "", "Month to export as YYYY-MM (default: current month)")
	cmd.Flags().BoolVar(&f.previous, "previous", false, "Use the month before the current one")
	cmd.MarkFlagsMutuallyExclusive("month", "previous")
}

func (f monthFlags) resolve(app *app) (domain.Month, error) {
	if f.month != "" {
		return domain.ParseMonth(f.month)
	}

	current := domain.MonthOf(app.clock.Now(), app.location())
	if f.previous {
		return current.Previous(), nil
	}
	return current, nil
}
