package core

import "time"

// DailySummary counts the roster by status on one day. Present includes Late.
type DailySummary struct {
	Date    time.Time `json:"date"`
	Total   int       `json:"total"`
	Present int       `json:"present"`
	Late    int       `json:"late"`
	Absent  int       `json:"absent"`
}

// Summarize counts the records dated on day. day must be in the location
// the records were reconstructed in.
func Summarize(records []DayAttendance, day time.Time) DailySummary {
	date := day.Format(DateLayout)
	summary := DailySummary{Date: day}
	for _, rec := range records {
		if rec.Date.Format(DateLayout) != date {
			continue
		}
		summary.Total++
		switch rec.Status {
		case StatusPresent:
			summary.Present++
		case StatusLate:
			summary.Present++
			summary.Late++
		default:
			summary.Absent++
		}
	}
	return summary
}

func (r *Reconstructor) SummarizeToday(records []DayAttendance) DailySummary {
	return Summarize(records, r.Today())
}
