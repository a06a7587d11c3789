package sheet

import (
	"fmt"
	"strings"
	"time"

	csvsink "github.com/bnema/clockify-timesheet/internal/adapters/sink/csv"
	"github.com/bnema/clockify-timesheet/internal/application"
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const dateLayout = "Mon 02.01."

type RenderOptions struct {
	// Location is used for display only. Nil keeps each timestamp's own.
	Location *time.Location
	// DescriptionWidth caps the description column. Zero means 60.
	DescriptionWidth int
}

func renderView(sheet application.Sheet, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render(fmt.Sprintf("Time sheet %s", sheet.Month)),
		s.header.Render(fmt.Sprintf("entries: %d  rows: %d", sheet.EntryCount, len(sheet.Rows))),
	}

	if len(sheet.Rows) == 0 {
		lines = append(lines, s.empty.Render("No entries in this month."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines,
		s.section.Render(renderTable(sheet, opts)),
		s.section.Render(renderTotals(sheet, s)),
	)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderTable(sheet application.Sheet, opts RenderOptions) string {
	width := opts.DescriptionWidth
	if width <= 0 {
		width = 60
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateHeader = true
	tw.Style().Options.DrawBorder = true

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 6, Align: text.AlignLeft, AlignHeader: text.AlignCenter, WidthMax: width},
	})
	tw.AppendHeader(table.Row{"Date", "Start", "End", "Break", "Worked", "Description"})

	lastDate := ""
	for _, row := range sheet.Rows {
		start := inLocation(row.Start, opts.Location)
		date := start.Format(dateLayout)
		if date == lastDate {
			date = ""
		} else {
			lastDate = date
		}

		tw.AppendRow(table.Row{
			date,
			csvsink.FormatClock(start),
			csvsink.FormatClock(inLocation(row.End, opts.Location)),
			csvsink.FormatBreak(row.Break),
			FormatHours(row.Worked()),
			singleLine(row.Label),
		})
	}

	return tw.Render()
}

func renderTotals(sheet application.Sheet, s styles) string {
	parts := []string{
		s.total.Render(fmt.Sprintf("worked: %s", FormatHours(sheet.TotalWorked()))),
		s.header.Render(fmt.Sprintf("breaks: %s", FormatHours(sheet.TotalBreak()))),
	}

	return strings.Join(parts, "  ")
}

func inLocation(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t
	}
	return t.In(loc)
}

// FormatHours renders a duration as h:mm rounded to the nearest minute.
func FormatHours(d time.Duration) string {
	if d < 0 {
		return "-" + FormatHours(-d)
	}
	minutes := int64(d.Round(time.Minute) / time.Minute)
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

func singleLine(label string) string {
	return strings.Join(strings.Fields(label), " ")
}
