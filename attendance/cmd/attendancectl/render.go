package main

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	engine "gymdesk.io/backoffice/attendance/core"
	api "gymdesk.io/backoffice/attendance/web/handlers/attendance"
	"gymdesk.io/backoffice/utils"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	lateStyle   = cellStyle.Foreground(lipgloss.Color("3"))
	absentStyle = cellStyle.Foreground(lipgloss.Color("9"))
)

var (
	aggregateHeaders = []string{"Name", "Role", "Days", "Present", "Late", "Absent", "Avg In"}
	dayHeaders       = []string{"Date", "Name", "Role", "In", "Out", "Status"}
)

// renderTable draws rows with a normal border. statusCol, when >= 0, is
// coloured by its Late/Absent value.
func renderTable(headers []string, rows [][]string, statusCol int) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if statusCol >= 0 && col == statusCol && row >= 0 && row < len(rows) {
				switch engine.Status(rows[row][col]) {
				case engine.StatusLate:
					return lateStyle
				case engine.StatusAbsent:
					return absentStyle
				}
			}
			return cellStyle
		})
	return t.String()
}

func aggregateRows(aggregates []engine.MonthlyAggregate) [][]string {
	return utils.Map(aggregates, func(a engine.MonthlyAggregate) []string {
		return []string{
			a.DisplayName, a.Role,
			strconv.Itoa(a.TotalDays), strconv.Itoa(a.DaysPresent),
			strconv.Itoa(a.DaysLate), strconv.Itoa(a.DaysAbsent),
			a.AverageCheckIn(),
		}
	})
}

func aggregateDTORows(aggregates []api.AggregateDTO) [][]string {
	return utils.Map(aggregates, func(a api.AggregateDTO) []string {
		return []string{
			a.Name, a.Role,
			strconv.Itoa(a.TotalDays), strconv.Itoa(a.DaysPresent),
			strconv.Itoa(a.DaysLate), strconv.Itoa(a.DaysAbsent),
			a.AverageCheckIn,
		}
	})
}

func dayRows(days []engine.DayAttendance) [][]string {
	return utils.Map(days, func(d engine.DayAttendance) []string {
		return []string{
			d.Date.Format(engine.DateLayout), d.DisplayName, d.Role,
			d.CheckInClock(), d.CheckOutClock(), string(d.Status),
		}
	})
}
