package application

import (
	"time"

	"github.com/bnema/clockify-timesheet/internal/domain"
)

// Sheet is the consolidated result for one month.
type Sheet struct {
	Month      domain.Month
	Rows       []domain.ConsolidatedRow
	EntryCount int
}

func (s Sheet) TotalWorked() time.Duration {
	var total time.Duration
	for _, row := range s.Rows {
		total += row.Worked()
	}
	return total
}

func (s Sheet) TotalBreak() time.Duration {
	var total time.Duration
	for _, row := range s.Rows {
		total += row.Break
	}
	return total
}
