package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"gymdesk.io/backoffice/attendance/core"
)

const (
	DailySheet   = "Daily"
	SummarySheet = "Summary"
)

var (
	dailyHeader   = []interface{}{"Date", "Name", "Role", "Check In", "Check Out", "Status"}
	summaryHeader = []interface{}{"Name", "Role", "Days", "Present", "Late", "Absent", "Average Check In"}
)

// WriteWorkbook writes the day records and the per-person aggregates of report as xlsx.
func WriteWorkbook(w io.Writer, report *core.Report) error {
	f, err := Build(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func Build(report *core.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), DailySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to add sheet %s: %w", SummarySheet, err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	if err := writeDaily(f, report.Days, bold); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSummary(f, report.Aggregates, bold); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeHeader(f *excelize.File, sheet string, header []interface{}, style int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func writeDaily(f *excelize.File, days []core.DayAttendance, style int) error {
	if err := writeHeader(f, DailySheet, dailyHeader, style); err != nil {
		return err
	}
	for i, d := range days {
		row := []interface{}{
			d.Date.Format(core.DateLayout),
			d.DisplayName,
			d.Role,
			d.CheckInClock(),
			d.CheckOutClock(),
			string(d.Status),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(DailySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write daily row %d: %w", i+2, err)
		}
	}
	return f.SetColWidth(DailySheet, "A", "B", 20)
}

func writeSummary(f *excelize.File, aggregates []core.MonthlyAggregate, style int) error {
	if err := writeHeader(f, SummarySheet, summaryHeader, style); err != nil {
		return err
	}
	for i, a := range aggregates {
		row := []interface{}{
			a.DisplayName,
			a.Role,
			a.TotalDays,
			a.DaysPresent,
			a.DaysLate,
			a.DaysAbsent,
			a.AverageCheckIn(),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+2, err)
		}
	}
	return f.SetColWidth(SummarySheet, "A", "A", 24)
}
