package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gymdesk.io/backoffice/utils"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "January 2006"
	ClockLayout = "15:04"
)

var (
	ErrInvalidMonth = errors.New("invalid month")
	ErrInvalidRange = errors.New("invalid date range")
)

// DateRange is a closed range of calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// StartOfDay is the first instant of the calendar day of t.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return utils.Midnight(y, m, d, loc)
}

// EndOfDay is the last instant of the calendar day of t.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return utils.Midnight(y, m, d+1, loc).Add(-time.Nanosecond)
}

// Days lists the start of every day in the range. Empty when Start is after End.
// Days are stepped on the calendar, so a day shortened or lengthened by DST
// still appears exactly once.
func (r DateRange) Days(loc *time.Location) []time.Time {
	y, m, d := r.Start.In(loc).Date()
	end := StartOfDay(r.End, loc)

	var days []time.Time
	for i := 0; ; i++ {
		day := utils.Midnight(y, m, d+i, loc)
		if day.After(end) {
			break
		}
		days = append(days, day)
	}
	return days
}

func (r DateRange) Contains(day time.Time, loc *time.Location) bool {
	d := StartOfDay(day, loc)
	return !d.Before(StartOfDay(r.Start, loc)) && !d.After(StartOfDay(r.End, loc))
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.Start.Format(DateLayout), r.End.Format(DateLayout))
}

func MonthRange(year int, month time.Month, loc *time.Location) DateRange {
	return DateRange{
		Start: utils.Midnight(year, month, 1, loc),
		End:   utils.Midnight(year, month+1, 0, loc),
	}
}

// ParseMonth turns a selector label such as "March 2024" into that calendar month.
func ParseMonth(label string, loc *time.Location) (DateRange, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(label))
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: %q", ErrInvalidMonth, label)
	}
	return MonthRange(t.Year(), t.Month(), loc), nil
}

// ParseRange parses two yyyy-MM-dd dates.
func ParseRange(start, end string, loc *time.Location) (DateRange, error) {
	s, err := parseDay(start, loc)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: start %q", ErrInvalidRange, start)
	}
	e, err := parseDay(end, loc)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: end %q", ErrInvalidRange, end)
	}
	return DateRange{Start: s, End: e}, nil
}

func parseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return utils.Midnight(t.Year(), t.Month(), t.Day(), loc), nil
}

// MonthOptions returns the labels of the n most recent months, newest first.
func MonthOptions(now time.Time, n int) []string {
	options := make([]string, 0, n)
	for i := 0; i < n; i++ {
		month := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		options = append(options, month.Format(MonthLayout))
	}
	return options
}
