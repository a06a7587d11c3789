// Package csv renders consolidated rows as a delimited monthly time sheet.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/bnema/clockify-timesheet/internal/domain"
	"github.com/bnema/clockify-timesheet/internal/ports"
)

const dateLayout = "02.01.06"

var header = []string{"date", "start", "end", "break", "description"}

type Options struct {
	// Delimiter defaults to a comma.
	Delimiter rune
	// Location is used for display only. Nil keeps each timestamp's own.
	Location *time.Location
}

type Writer struct {
	out  io.Writer
	opts Options
}

var _ ports.Sink = (*Writer)(nil)

func NewWriter(out io.Writer, opts Options) *Writer {
	return &Writer{out: out, opts: opts}
}

func (w *Writer) Write(ctx context.Context, rows []domain.ConsolidatedRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cw := csv.NewWriter(w.out)
	if w.opts.Delimiter != 0 {
		cw.Comma = w.opts.Delimiter
	}

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	lastDate := ""
	for i, row := range rows {
		start := w.local(row.Start)

		// The date only appears on the first row of each day.
		date := start.Format(dateLayout)
		if date == lastDate {
			date = ""
		} else {
			lastDate = date
		}

		record := []string{
			date,
			FormatClock(start),
			FormatClock(w.local(row.End)),
			FormatBreak(row.Break),
			row.Label,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush time sheet: %w", err)
	}

	return nil
}

func (w *Writer) local(t time.Time) time.Time {
	if w.opts.Location == nil {
		return t
	}
	return t.In(w.opts.Location)
}

// FormatClock renders hh:mm, rounding up from 30 seconds. A time rounded past
// 23:59 renders as 24:00 so an end time stays on its own day.
func FormatClock(t time.Time) string {
	hour, minute := t.Hour(), t.Minute()
	if t.Second() >= 30 {
		minute++
	}
	if minute >= 60 {
		minute -= 60
		hour++
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// FormatBreak renders h:mm rounded to the nearest minute, or an empty string
// for breaks under 30 seconds.
func FormatBreak(d time.Duration) string {
	seconds := int64(d / time.Second)
	if seconds < 30 {
		return ""
	}

	minutes := (seconds + 30) / 60
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
