package ports

import (
	"context"

	"github.com/bnema/clockify-timesheet/internal/domain"
)

// EntrySource returns the raw entries of one month, ascending by start time.
type EntrySource interface {
	Entries(ctx context.Context, month domain.Month) ([]domain.RawEntry, error)
}
