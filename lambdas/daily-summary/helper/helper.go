package helper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	engine "gymdesk.io/backoffice/attendance/core"
	"gymdesk.io/backoffice/attendance/export"
	"gymdesk.io/backoffice/console"
	"gymdesk.io/backoffice/infrastructure/communication"
	"gymdesk.io/backoffice/infrastructure/filesystem"
)

// Outputs are the side effects of a studio summary.
type Outputs struct {
	Post   func(channel, message string) error
	Upload func(ctx context.Context, key string, body io.Reader) error
	Email  func(ctx context.Context, e communication.Email) error
}

type Options struct {
	DryRun bool
	Sender string
}

type StudioResult struct {
	Studio  string              `json:"studio"`
	Today   engine.DailySummary `json:"today"`
	Report  string              `json:"report,omitempty"`
	Posted  bool                `json:"posted"`
	Emailed bool                `json:"emailed"`
	Late    []string            `json:"late"`
}

// Summarize builds the month-to-date report of a studio and sends today's numbers out.
func Summarize(ctx context.Context, studio console.Studio, src engine.Source, rc *engine.Reconstructor, out Outputs, opts Options) (StudioResult, error) {
	today := rc.Today()
	rng := engine.MonthRange(today.Year(), today.Month(), rc.Location)

	report, err := rc.BuildReport(ctx, src, engine.ReportOptions{Range: rng})
	if err != nil {
		return StudioResult{Studio: studio.Code}, err
	}

	result := StudioResult{Studio: studio.Code, Late: LateToday(report.Days, today)}
	if report.Today != nil {
		result.Today = *report.Today
	} else {
		result.Today = engine.Summarize(report.Days, today)
	}

	if opts.DryRun {
		fmt.Printf("[INFO] Dry run for %s: %d present, %d late, %d absent\n", studio.Code, result.Today.Present, result.Today.Late, result.Today.Absent)
		return result, nil
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, report); err != nil {
		return result, err
	}
	key := filesystem.ReportKey(studio.Schema, today.Format("2006-01"))
	if err := out.Upload(ctx, key, &buf); err != nil {
		return result, err
	}
	result.Report = key

	message := FormatMessage(studio, result)
	if err := out.Post(studio.SlackChannel, message); err != nil {
		fmt.Printf("[ERROR] failed to post summary for %s: %v\n", studio.Code, err)
	} else {
		result.Posted = true
	}

	if studio.ManagerEmail != "" && opts.Sender != "" {
		err := out.Email(ctx, communication.Email{
			From:    opts.Sender,
			To:      []string{studio.ManagerEmail},
			Subject: fmt.Sprintf("%s attendance %s", studio.Name, today.Format(engine.DateLayout)),
			Text:    message,
		})
		if err != nil {
			fmt.Printf("[ERROR] failed to email summary for %s: %v\n", studio.Code, err)
		} else {
			result.Emailed = true
		}
	}

	return result, nil
}

// LateToday lists the names of people late on day, in roster order.
func LateToday(records []engine.DayAttendance, day time.Time) []string {
	date := day.Format(engine.DateLayout)
	late := []string{}
	for _, rec := range records {
		if rec.Status == engine.StatusLate && rec.Date.Format(engine.DateLayout) == date {
			late = append(late, fmt.Sprintf("%s (%s)", rec.DisplayName, rec.CheckInClock()))
		}
	}
	return late
}

func FormatMessage(studio console.Studio, result StudioResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*%s* attendance for %s\n", studio.Name, result.Today.Date.Format("Mon 2 Jan 2006"))
	fmt.Fprintf(&sb, "Present: %d of %d (late %d), absent: %d\n", result.Today.Present, result.Today.Total, result.Today.Late, result.Today.Absent)
	if len(result.Late) > 0 {
		fmt.Fprintf(&sb, "Late: %s\n", strings.Join(result.Late, ", "))
	}
	if result.Report != "" {
		fmt.Fprintf(&sb, "Workbook: %s\n", result.Report)
	}
	return sb.String()
}
