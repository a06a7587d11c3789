package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2022, 10, 3, 8, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

func entry(task TaskID, from, to int) RawEntry {
	return RawEntry{TaskID: task, Label: "Task " + string(task), Start: at(from), End: at(to)}
}

func TestConsolidateEmptyInput(t *testing.T) {
	t.Parallel()

	rows, err := Consolidate(nil)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	rows, err = Consolidate([]RawEntry{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestConsolidateAccumulatesBreakWithinRun(t *testing.T) {
	t.Parallel()

	rows, err := Consolidate([]RawEntry{
		entry("1", 0, 10),
		entry("1", 15, 25),
		entry("1", 25, 35),
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, ConsolidatedRow{
		TaskID: "1",
		Label:  "Task 1",
		Start:  at(0),
		End:    at(35),
		Break:  5 * time.Minute,
	}, rows[0])
	assert.Equal(t, 30*time.Minute, rows[0].Worked())
	assert.Equal(t, 35*time.Minute, rows[0].Span())
}

func TestConsolidateTaskSwitchStartsNewRow(t *testing.T) {
	t.Parallel()

	input := []RawEntry{
		entry("1", 0, 10),
		entry("2", 10, 20),
		entry("1", 20, 30),
	}

	rows, err := Consolidate(input)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for i, row := range rows {
		assert.Equal(t, input[i].TaskID, row.TaskID)
		assert.Equal(t, input[i].Start, row.Start)
		assert.Equal(t, input[i].End, row.End)
		assert.Zero(t, row.Break)
	}
}

func TestConsolidateOneEntryPerRunMapsOneToOne(t *testing.T) {
	t.Parallel()

	input := []RawEntry{
		entry("a", 0, 30),
		entry("b", 45, 60),
		entry("a", 60, 90),
		entry("c", 120, 125),
	}

	rows, err := Consolidate(input)
	require.NoError(t, err)
	require.Len(t, rows, len(input))

	again := make([]RawEntry, 0, len(rows))
	for i, row := range rows {
		assert.Equal(t, ConsolidatedRow{
			TaskID: input[i].TaskID,
			Label:  input[i].Label,
			Start:  input[i].Start,
			End:    input[i].End,
		}, row)
		again = append(again, RawEntry{TaskID: row.TaskID, Label: row.Label, Start: row.Start, End: row.End})
	}

	second, err := Consolidate(again)
	require.NoError(t, err)
	assert.Equal(t, rows, second)
}

func TestConsolidateCountAndCoverage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		entries  []RawEntry
		wantRows int
	}{
		{
			name:     "all distinct neighbours",
			entries:  []RawEntry{entry("1", 0, 5), entry("2", 5, 9), entry("1", 9, 12)},
			wantRows: 3,
		},
		{
			name:     "one shared neighbour pair",
			entries:  []RawEntry{entry("1", 0, 5), entry("1", 7, 9), entry("2", 9, 12)},
			wantRows: 2,
		},
		{
			name:     "single task",
			entries:  []RawEntry{entry("1", 0, 5), entry("1", 5, 9), entry("1", 20, 30), entry("1", 31, 32)},
			wantRows: 1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rows, err := Consolidate(tt.entries)
			require.NoError(t, err)
			assert.Len(t, rows, tt.wantRows)
			assert.LessOrEqual(t, len(rows), len(tt.entries))

			var tracked time.Duration
			for _, e := range tt.entries {
				tracked += e.Duration()
			}
			var worked time.Duration
			for _, row := range rows {
				worked += row.Worked()
			}
			assert.Equal(t, tracked, worked, "no time gained or lost")

			assert.Equal(t, tt.entries[0].Start, rows[0].Start)
			assert.Equal(t, tt.entries[len(tt.entries)-1].End, rows[len(rows)-1].End)
		})
	}
}

func TestConsolidateIdenticalStartsFollowInputOrder(t *testing.T) {
	t.Parallel()

	rows, err := Consolidate([]RawEntry{
		entry("1", 0, 10),
		entry("2", 0, 5),
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, TaskID("1"), rows[0].TaskID)
	assert.Equal(t, TaskID("2"), rows[1].TaskID)
}

func TestConsolidateRejectsUnsortedInput(t *testing.T) {
	t.Parallel()

	rows, err := Consolidate([]RawEntry{
		entry("1", 10, 20),
		entry("1", 5, 8),
	})
	require.Error(t, err)
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, ErrUnsortedInput)

	var unsorted *UnsortedInputError
	require.True(t, errors.As(err, &unsorted))
	assert.Equal(t, 1, unsorted.Index)
	assert.Equal(t, at(10), unsorted.PreviousStart)
	assert.Equal(t, at(5), unsorted.Start)
}

func TestConsolidateRejectsOverlapWithinRun(t *testing.T) {
	t.Parallel()

	rows, err := Consolidate([]RawEntry{
		entry("1", 0, 20),
		entry("1", 15, 30),
	})
	require.Error(t, err)
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, ErrOverlappingEntry)

	var overlap *OverlappingEntryError
	require.True(t, errors.As(err, &overlap))
	assert.Equal(t, 5*time.Minute, overlap.Overlap)
	assert.Equal(t, TaskID("1"), overlap.TaskID)
}

func TestConsolidateRejectsInvalidEntries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entry   RawEntry
		wantErr string
	}{
		{name: "empty task", entry: RawEntry{Start: at(0), End: at(1)}, wantErr: "task id is empty"},
		{name: "zero length", entry: entry("1", 5, 5), wantErr: "start is not before end"},
		{name: "end before start", entry: entry("1", 5, 4), wantErr: "start is not before end"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Consolidate([]RawEntry{entry("0", 0, 1), tt.entry})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidEntry)
			assert.ErrorContains(t, err, "entry 1")
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConsolidatorSplitsAtDayBoundary(t *testing.T) {
	t.Parallel()

	day1 := RawEntry{TaskID: "1", Start: time.Date(2022, 10, 1, 12, 10, 0, 0, time.UTC), End: time.Date(2022, 10, 1, 12, 25, 30, 0, time.UTC)}
	day2 := RawEntry{TaskID: "1", Start: time.Date(2022, 10, 2, 14, 45, 0, 0, time.UTC), End: time.Date(2022, 10, 2, 15, 15, 15, 0, time.UTC)}

	merged, err := Consolidate([]RawEntry{day1, day2})
	require.NoError(t, err)
	assert.Len(t, merged, 1)

	split, err := Consolidator{SplitAtDayBoundary: true, Location: time.UTC}.Consolidate([]RawEntry{day1, day2})
	require.NoError(t, err)
	require.Len(t, split, 2)
	assert.Zero(t, split[0].Break)
	assert.Zero(t, split[1].Break)
}

func TestConsolidatorDayBoundaryUsesLocation(t *testing.T) {
	t.Parallel()

	// Both entries end on Oct 1 in UTC; the second ends on Oct 2 in UTC+2.
	plusTwo := time.FixedZone("UTC+2", 2*60*60)
	first := RawEntry{TaskID: "1", Start: time.Date(2022, 10, 1, 20, 0, 0, 0, time.UTC), End: time.Date(2022, 10, 1, 21, 0, 0, 0, time.UTC)}
	second := RawEntry{TaskID: "1", Start: time.Date(2022, 10, 1, 22, 0, 0, 0, time.UTC), End: time.Date(2022, 10, 1, 23, 30, 0, 0, time.UTC)}

	utcRows, err := Consolidator{SplitAtDayBoundary: true, Location: time.UTC}.Consolidate([]RawEntry{first, second})
	require.NoError(t, err)
	assert.Len(t, utcRows, 1)
	assert.Equal(t, time.Hour, utcRows[0].Break)

	localRows, err := Consolidator{SplitAtDayBoundary: true, Location: plusTwo}.Consolidate([]RawEntry{first, second})
	require.NoError(t, err)
	assert.Len(t, localRows, 2)
}

func TestConsolidateComplexMonthExample(t *testing.T) {
	t.Parallel()

	local := time.UTC
	ts := func(day, hour, minute, second int) time.Time {
		return time.Date(2022, 10, day, hour, minute, second, 0, local)
	}

	entries := []RawEntry{
		{TaskID: "abcdef", Label: "Task 1", Start: ts(1, 12, 10, 0), End: ts(1, 12, 25, 30)},
		{TaskID: "abcdef", Label: "Task 1", Start: ts(1, 14, 45, 0), End: ts(1, 15, 0, 15)},
		{TaskID: "ghijkl", Label: "Task 2", Start: ts(1, 15, 5, 0), End: ts(1, 15, 10, 30)},
		{TaskID: "description:Entry 5", Label: "Entry 5", Start: ts(1, 15, 30, 0), End: ts(1, 15, 45, 0)},
		{TaskID: "description:Entry 5", Label: "Entry 5", Start: ts(1, 15, 50, 0), End: ts(1, 15, 55, 0)},
		{TaskID: "abcdef", Label: "Task 1", Start: ts(1, 16, 0, 0), End: ts(1, 17, 0, 0)},
	}

	rows, err := Consolidator{SplitAtDayBoundary: true, Location: local}.Consolidate(entries)
	require.NoError(t, err)

	assert.Equal(t, []ConsolidatedRow{
		{TaskID: "abcdef", Label: "Task 1", Start: ts(1, 12, 10, 0), End: ts(1, 15, 0, 15), Break: ts(1, 14, 45, 0).Sub(ts(1, 12, 25, 30))},
		{TaskID: "ghijkl", Label: "Task 2", Start: ts(1, 15, 5, 0), End: ts(1, 15, 10, 30)},
		{TaskID: "description:Entry 5", Label: "Entry 5", Start: ts(1, 15, 30, 0), End: ts(1, 15, 55, 0), Break: 5 * time.Minute},
		{TaskID: "abcdef", Label: "Task 1", Start: ts(1, 16, 0, 0), End: ts(1, 17, 0, 0)},
	}, rows)
}
