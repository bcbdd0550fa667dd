package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gymdesk.io/backoffice/attendance/core"
	"gymdesk.io/backoffice/utils"
)

func TestWriteWorkbook(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	in := time.Date(2024, 3, 4, 9, 20, 0, 0, time.UTC)
	out := core.EndOfDay(day, time.UTC)

	report := &core.Report{
		Days: []core.DayAttendance{
			{PersonID: "1", DisplayName: "Ann Lee", Role: "Trainer", Date: day, CheckIn: &in, CheckOut: &out, Status: core.StatusLate},
			{PersonID: "2", DisplayName: "Bob Stone", Role: "Staff", Date: day, Status: core.StatusAbsent},
		},
		Aggregates: []core.MonthlyAggregate{
			{PersonID: "1", DisplayName: "Ann Lee", Role: "Trainer", TotalDays: 1, DaysPresent: 1, DaysLate: 1, AverageCheckInMinutes: utils.Ptr(560)},
			{PersonID: "2", DisplayName: "Bob Stone", Role: "Staff", TotalDays: 1, DaysAbsent: 1},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DailySheet, SummarySheet}, f.GetSheetList())

	daily, err := f.GetRows(DailySheet)
	require.NoError(t, err)
	require.Len(t, daily, 3)
	assert.Equal(t, []string{"Date", "Name", "Role", "Check In", "Check Out", "Status"}, daily[0])
	assert.Equal(t, []string{"2024-03-04", "Ann Lee", "Trainer", "09:20", "23:59", "Late"}, daily[1])
	assert.Equal(t, []string{"2024-03-04", "Bob Stone", "Staff", "-", "-", "Absent"}, daily[2])

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 3)
	assert.Equal(t, []string{"Ann Lee", "Trainer", "1", "1", "1", "0", "09:20"}, summary[1])
	assert.Equal(t, []string{"Bob Stone", "Staff", "1", "0", "0", "1", "-"}, summary[2])
}

func TestWriteWorkbookEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, &core.Report{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(DailySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
