package core

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	rng, err := ParseMonth("February 2024", testLoc)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", rng.Start.Format(DateLayout))
	assert.Equal(t, "2024-02-29", rng.End.Format(DateLayout))
	assert.Len(t, rng.Days(testLoc), 29)

	_, err = ParseMonth("Smarch 2024", testLoc)
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestParseRange(t *testing.T) {
	rng, err := ParseRange("2024-03-01", "2024-03-07", testLoc)
	require.NoError(t, err)
	assert.Len(t, rng.Days(testLoc), 7)

	_, err = ParseRange("2024-03-01", "03/07/2024", testLoc)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestMonthOptions(t *testing.T) {
	now := time.Date(2024, 3, 31, 10, 0, 0, 0, testLoc)
	options := MonthOptions(now, 12)

	require.Len(t, options, 12)
	assert.Equal(t, "March 2024", options[0])
	assert.Equal(t, "February 2024", options[1])
	assert.Equal(t, "April 2023", options[11])
}

func TestEndOfDay(t *testing.T) {
	eod := EndOfDay(at("2024-03-05", "08:00"), testLoc)
	assert.Equal(t, "2024-03-05 23:59:59.999999999", eod.Format("2006-01-02 15:04:05.999999999"))
}

func TestDateRangeContains(t *testing.T) {
	rng := DateRange{Start: date("2024-03-01"), End: date("2024-03-03")}
	assert.True(t, rng.Contains(at("2024-03-03", "23:00"), testLoc))
	assert.False(t, rng.Contains(date("2024-03-04"), testLoc))
	assert.Empty(t, DateRange{Start: date("2024-03-04"), End: date("2024-03-03")}.Days(testLoc))
}

// Santiago moves clocks from 24:00 to 01:00 on 2024-09-08, so that day has no midnight.
func TestDaysAcrossSkippedMidnight(t *testing.T) {
	santiago, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)

	rng, err := ParseRange("2024-09-07", "2024-09-10", santiago)
	require.NoError(t, err)
	assert.Equal(t, "2024-09-07", rng.Start.Format(DateLayout))

	days := rng.Days(santiago)
	labels := make([]string, len(days))
	for i, d := range days {
		labels[i] = d.Format(DateLayout)
	}
	assert.Equal(t, []string{"2024-09-07", "2024-09-08", "2024-09-09", "2024-09-10"}, labels)
	assert.Equal(t, "01:00", days[1].Format(ClockLayout))

	assert.True(t, EndOfDay(days[0], santiago).Add(time.Nanosecond).Equal(days[1]))
	assert.Equal(t, "2024-09-08 23:59:59.999999999", EndOfDay(days[1], santiago).Format("2006-01-02 15:04:05.999999999"))

	month := MonthRange(2024, time.September, santiago)
	assert.Len(t, month.Days(santiago), 30)
}

func TestReconstructAcrossSkippedMidnight(t *testing.T) {
	santiago, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)

	r := NewReconstructor(DefaultLateThreshold, santiago)
	r.Now = func() time.Time { return time.Date(2024, 9, 20, 12, 0, 0, 0, santiago) }

	rng, err := ParseRange("2024-09-07", "2024-09-10", santiago)
	require.NoError(t, err)

	people := []Person{{ID: "U1", DisplayName: "Ann Lee"}}
	events := []AccessEvent{
		{PersonID: "U1", Timestamp: time.Date(2024, 9, 8, 9, 0, 0, 0, santiago)},
		{PersonID: "U1", Timestamp: time.Date(2024, 9, 10, 9, 30, 0, 0, santiago)},
	}

	records := r.Reconstruct(people, events, rng)
	require.Len(t, records, 4)
	statuses := make(map[string]Status)
	for _, rec := range records {
		statuses[rec.Date.Format(DateLayout)] = rec.Status
	}
	assert.Equal(t, map[string]Status{
		"2024-09-07": StatusAbsent,
		"2024-09-08": StatusPresent,
		"2024-09-09": StatusAbsent,
		"2024-09-10": StatusLate,
	}, statuses)

	aggregates := AggregateInOrder(records)
	require.Len(t, aggregates, 1)
	assert.Equal(t, 4, aggregates[0].TotalDays)
	assert.Equal(t, 2, aggregates[0].DaysPresent)
	assert.Equal(t, 1, aggregates[0].DaysLate)
}
