package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/clockify-timesheet/internal/domain"
	"github.com/bnema/clockify-timesheet/internal/ports"
)

type ExportService struct {
	source       ports.EntrySource
	sink         ports.Sink
	consolidator domain.Consolidator
	clock        ports.Clock
	location     *time.Location
}

func NewExportService(source ports.EntrySource, sink ports.Sink, consolidator domain.Consolidator, clock ports.Clock) *ExportService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	location := consolidator.Location
	if location == nil {
		location = time.Local
	}

	return &ExportService{
		source:       source,
		sink:         sink,
		consolidator: consolidator,
		clock:        clock,
		location:     location,
	}
}

// DefaultMonth is the calendar month containing the current time.
func (s *ExportService) DefaultMonth() domain.Month {
	return domain.MonthOf(s.clock.Now(), s.location)
}

// Preview fetches and consolidates a month without touching the sink.
func (s *ExportService) Preview(ctx context.Context, month domain.Month) (Sheet, error) {
	if err := month.Validate(); err != nil {
		return Sheet{}, fmt.Errorf("validate month: %w", err)
	}

	entries, err := s.source.Entries(ctx, month)
	if err != nil {
		return Sheet{}, fmt.Errorf("fetch entries for %s: %w", month, err)
	}

	for i, entry := range entries {
		if !month.Contains(entry.Start, s.location) {
			return Sheet{}, fmt.Errorf("entry %d starting %s: %w %s", i, entry.Start.Format(time.RFC3339), domain.ErrEntryOutsideMonth, month)
		}
	}

	rows, err := s.consolidator.Consolidate(entries)
	if err != nil {
		return Sheet{}, fmt.Errorf("consolidate entries for %s: %w", month, err)
	}

	return Sheet{Month: month, Rows: rows, EntryCount: len(entries)}, nil
}

// Export writes the consolidated month to the sink. The sink is only called
// once every entry has been consolidated.
func (s *ExportService) Export(ctx context.Context, month domain.Month) (Sheet, error) {
	sheet, err := s.Preview(ctx, month)
	if err != nil {
		return Sheet{}, err
	}

	if s.sink == nil {
		return Sheet{}, fmt.Errorf("export %s: no sink configured", month)
	}

	if err := s.sink.Write(ctx, sheet.Rows); err != nil {
		return Sheet{}, fmt.Errorf("write time sheet for %s: %w", month, err)
	}

	return sheet, nil
}
