package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnsortedInput     = errors.New("entries are not sorted by start time")
	ErrOverlappingEntry  = errors.New("entries of the same task overlap")
	ErrInvalidEntry      = errors.New("invalid time entry")
	ErrEntryOutsideMonth = errors.New("entry outside requested month")
	ErrSecretNotFound    = errors.New("secret not found")
)

type UnsortedInputError struct {
	Index         int
	PreviousStart time.Time
	Start         time.Time
}

func (e *UnsortedInputError) Error() string {
	return fmt.Sprintf("entry %d starts at %s, before previous entry start %s",
		e.Index, e.Start.Format(time.RFC3339), e.PreviousStart.Format(time.RFC3339))
}

func (e *UnsortedInputError) Is(target error) bool {
	return target == ErrUnsortedInput
}

type OverlappingEntryError struct {
	Index  int
	TaskID TaskID
	// Overlap is the positive amount by which the entry starts before the
	// end of the run it would extend.
	Overlap time.Duration
}

func (e *OverlappingEntryError) Error() string {
	return fmt.Sprintf("entry %d of task %q overlaps the previous entry by %s", e.Index, e.TaskID, e.Overlap)
}

func (e *OverlappingEntryError) Is(target error) bool {
	return target == ErrOverlappingEntry
}

type InvalidEntryError struct {
	Index  int
	Reason string
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("entry %d: %s", e.Index, e.Reason)
}

func (e *InvalidEntryError) Is(target error) bool {
	return target == ErrInvalidEntry
}
