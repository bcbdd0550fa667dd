package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeRoster(t *testing.T) {
	users := []Person{{ID: "1", DisplayName: "Ann", Role: "Member"}, {ID: "2", DisplayName: "Bob", Role: "User"}}
	staffs := []Person{{ID: "2", DisplayName: "bob.staff", Role: "Staff"}, {ID: "3", DisplayName: "Cy", Role: "Trainer"}}

	merged := MergeRoster(users, staffs)

	assert.Equal(t, []Person{
		{ID: "1", DisplayName: "Ann", Role: "Member"},
		{ID: "2", DisplayName: "Bob", Role: "User"},
		{ID: "3", DisplayName: "Cy", Role: "Trainer"},
	}, merged)
	assert.Empty(t, MergeRoster())
}

func TestFilters(t *testing.T) {
	records := []DayAttendance{
		{PersonID: "1", DisplayName: "Ann Lee"},
		{PersonID: "2", DisplayName: "Bob Annis"},
		{PersonID: "3", DisplayName: "Cy"},
	}

	assert.Len(t, FilterByName(records, "ANN"), 2)
	assert.Len(t, FilterByName(records, "  "), 3)
	assert.Empty(t, FilterByName(records, "zed"))

	aggs := []MonthlyAggregate{{DisplayName: "Ann Lee"}, {DisplayName: "Cy"}}
	assert.Len(t, FilterAggregatesByName(aggs, "cy"), 1)

	people := []Person{{ID: "1", Role: "Trainer"}, {ID: "2", Role: "Staff"}}
	assert.Equal(t, []Person{{ID: "1", Role: "Trainer"}}, FilterByRole(people, "trainer"))
	assert.Len(t, FilterByRole(people, ""), 2)
}
