package sheet

import (
	"encoding/json"
	"io"
	"time"

	"github.com/bnema/clockify-timesheet/internal/application"
)

type jsonSheet struct {
	Month   string    `json:"month"`
	Entries int       `json:"entries"`
	Worked  string    `json:"worked"`
	Breaks  string    `json:"breaks"`
	Rows    []jsonRow `json:"rows"`
}

type jsonRow struct {
	TaskID        string    `json:"task_id"`
	Description   string    `json:"description"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	BreakSeconds  int64     `json:"break_seconds"`
	WorkedSeconds int64     `json:"worked_seconds"`
}

// WriteJSON writes the sheet as one indented JSON document.
func WriteJSON(w io.Writer, sheet application.Sheet, loc *time.Location) error {
	doc := jsonSheet{
		Month:   sheet.Month.String(),
		Entries: sheet.EntryCount,
		Worked:  FormatHours(sheet.TotalWorked()),
		Breaks:  FormatHours(sheet.TotalBreak()),
		Rows:    make([]jsonRow, 0, len(sheet.Rows)),
	}
	for _, row := range sheet.Rows {
		doc.Rows = append(doc.Rows, jsonRow{
			TaskID:        string(row.TaskID),
			Description:   row.Label,
			Start:         inLocation(row.Start, loc),
			End:           inLocation(row.End, loc),
			BreakSeconds:  int64(row.Break / time.Second),
			WorkedSeconds: int64(row.Worked() / time.Second),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
