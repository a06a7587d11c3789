package domain

import "time"

// Consolidator merges chronologically ordered raw entries into time sheet
// rows. The zero value merges purely on task identity.
type Consolidator struct {
	// SplitAtDayBoundary starts a new row when a same-task entry ends on a
	// different calendar day than the open run.
	SplitAtDayBoundary bool
	// Location decides calendar days for SplitAtDayBoundary. Nil means the
	// location carried by the timestamps themselves.
	Location *time.Location
}

// Consolidate runs the zero Consolidator over entries.
func Consolidate(entries []RawEntry) ([]ConsolidatedRow, error) {
	return Consolidator{}.Consolidate(entries)
}

// Consolidate groups entries in a single forward pass. On error no rows are
// returned.
func (c Consolidator) Consolidate(entries []RawEntry) ([]ConsolidatedRow, error) {
	rows := make([]ConsolidatedRow, 0, len(entries))

	var run ConsolidatedRow
	open := false

	for i, entry := range entries {
		if err := validateEntry(i, entry); err != nil {
			return nil, err
		}
		if i > 0 && entry.Start.Before(entries[i-1].Start) {
			return nil, &UnsortedInputError{Index: i, PreviousStart: entries[i-1].Start, Start: entry.Start}
		}

		if !open || entry.TaskID != run.TaskID || c.crossesDay(run.End, entry.End) {
			if open {
				rows = append(rows, run)
			}
			run = ConsolidatedRow{
				TaskID: entry.TaskID,
				Label:  entry.Label,
				Start:  entry.Start,
				End:    entry.End,
			}
			open = true
			continue
		}

		gap := entry.Start.Sub(run.End)
		if gap < 0 {
			return nil, &OverlappingEntryError{Index: i, TaskID: entry.TaskID, Overlap: -gap}
		}
		run.Break += gap
		run.End = entry.End
	}

	if open {
		rows = append(rows, run)
	}

	return rows, nil
}

func (c Consolidator) crossesDay(a, b time.Time) bool {
	if !c.SplitAtDayBoundary {
		return false
	}
	if c.Location != nil {
		a = a.In(c.Location)
		b = b.In(c.Location)
	}

	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay != by || am != bm || ad != bd
}

func validateEntry(index int, entry RawEntry) error {
	if entry.TaskID == "" {
		return &InvalidEntryError{Index: index, Reason: "task id is empty"}
	}
	if !entry.Start.Before(entry.End) {
		return &InvalidEntryError{Index: index, Reason: "start is not before end"}
	}
	return nil
}
