package ports

import (
	"context"

	"github.com/bnema/clockify-timesheet/internal/domain"
)

type Sink interface {
	Write(ctx context.Context, rows []domain.ConsolidatedRow) error
}
