package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	r := newTestReconstructor("2024-03-31")
	people := []Person{
		{ID: "U1", DisplayName: "Una", Role: "Staff"},
		{ID: "U2", DisplayName: "Ugo", Role: "Member"},
	}
	events := append(
		punches("U1",
			at("2024-03-01", "09:00"), at("2024-03-01", "17:00"),
			at("2024-03-02", "09:30"),
			at("2024-03-04", "08:45"), at("2024-03-04", "16:00"),
		),
		punches("U2")...,
	)
	records := r.Reconstruct(people, events, DateRange{Start: date("2024-03-01"), End: date("2024-03-05")})

	aggregates := Aggregate(records)
	require.Len(t, aggregates, 2)

	una := aggregates["U1"]
	assert.Equal(t, "Una", una.DisplayName)
	assert.Equal(t, 5, una.TotalDays)
	assert.Equal(t, 3, una.DaysPresent)
	assert.Equal(t, 1, una.DaysLate)
	assert.Equal(t, 2, una.DaysAbsent)
	require.NotNil(t, una.AverageCheckInMinutes)
	// (540 + 570 + 525) / 3 = 545
	assert.Equal(t, 545, *una.AverageCheckInMinutes)
	assert.Equal(t, "09:05", una.AverageCheckIn())

	ugo := aggregates["U2"]
	assert.Equal(t, 0, ugo.DaysPresent)
	assert.Equal(t, 5, ugo.DaysAbsent)
	assert.Nil(t, ugo.AverageCheckInMinutes)
	assert.Equal(t, "-", ugo.AverageCheckIn())

	for _, agg := range aggregates {
		assert.Equal(t, agg.TotalDays, agg.DaysPresent+agg.DaysAbsent)
		assert.LessOrEqual(t, agg.DaysLate, agg.DaysPresent)
	}
}

func TestAggregateInOrder(t *testing.T) {
	r := newTestReconstructor("2024-03-31")
	people := []Person{{ID: "B"}, {ID: "A"}, {ID: "C"}}
	records := r.Reconstruct(people, nil, DateRange{Start: date("2024-03-01"), End: date("2024-03-02")})

	list := AggregateInOrder(records)
	require.Len(t, list, 3)
	assert.Equal(t, "B", list[0].PersonID)
	assert.Equal(t, "A", list[1].PersonID)
	assert.Equal(t, "C", list[2].PersonID)
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
	assert.Empty(t, AggregateInOrder([]DayAttendance{}))
}
