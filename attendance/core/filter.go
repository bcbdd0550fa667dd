package core

import (
	"strings"

	"gymdesk.io/backoffice/utils"
)

// MatchName is a case-insensitive substring match. An empty term matches everything.
func MatchName(name, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(term))
}

func FilterByName(records []DayAttendance, term string) []DayAttendance {
	return utils.Filter(records, func(rec DayAttendance) bool {
		return MatchName(rec.DisplayName, term)
	})
}

func FilterAggregatesByName(aggregates []MonthlyAggregate, term string) []MonthlyAggregate {
	return utils.Filter(aggregates, func(agg MonthlyAggregate) bool {
		return MatchName(agg.DisplayName, term)
	})
}

// FilterByRole keeps people whose role matches, ignoring case. An empty role keeps everyone.
func FilterByRole(people []Person, role string) []Person {
	if role == "" {
		return people
	}
	return utils.Filter(people, func(p Person) bool {
		return strings.EqualFold(p.Role, role)
	})
}
