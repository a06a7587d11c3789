package domain

import "time"

type TaskID string

// RawEntry is a single tracked interval as delivered by an EntrySource.
type RawEntry struct {
	TaskID TaskID
	// Label is the human-readable description written to the sheet. It never
	// affects grouping.
	Label string
	Start time.Time
	End   time.Time
}

func (e RawEntry) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// ConsolidatedRow is one time sheet row covering a run of same-task entries.
type ConsolidatedRow struct {
	TaskID TaskID
	Label  string
	Start  time.Time
	End    time.Time
	Break  time.Duration
}

func (r ConsolidatedRow) Span() time.Duration {
	return r.End.Sub(r.Start)
}

// Worked returns the span minus the accumulated break.
func (r ConsolidatedRow) Worked() time.Duration {
	return r.Span() - r.Break
}
