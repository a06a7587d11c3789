package domain

import (
	"fmt"
	"strings"
	"time"
)

const monthLayout = "2006-01"

// Month identifies one calendar month, the unit of a time sheet export.
type Month struct {
	Year  int
	Month time.Month
}

func ParseMonth(raw string) (Month, error) {
	parsed, err := time.Parse(monthLayout, strings.TrimSpace(raw))
	if err != nil {
		return Month{}, fmt.Errorf("parse month %q (want YYYY-MM): %w", raw, err)
	}

	return Month{Year: parsed.Year(), Month: parsed.Month()}, nil
}

func MonthOf(t time.Time, loc *time.Location) Month {
	if loc != nil {
		t = t.In(loc)
	}
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) Validate() error {
	if m.Year < 1 {
		return fmt.Errorf("year %d is out of range", m.Year)
	}
	if m.Month < time.January || m.Month > time.December {
		return fmt.Errorf("month %d is out of range", m.Month)
	}
	return nil
}

// Range returns the half-open interval [start, end) covered by the month.
func (m Month) Range(loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	start := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

func (m Month) Contains(t time.Time, loc *time.Location) bool {
	start, end := m.Range(loc)
	return !t.Before(start) && t.Before(end)
}

func (m Month) Previous() Month {
	if m.Month == time.January {
		return Month{Year: m.Year - 1, Month: time.December}
	}
	return Month{Year: m.Year, Month: m.Month - 1}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
