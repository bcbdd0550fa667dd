package store

import (
	"strings"

	"gymdesk.io/backoffice/attendance/core"
	"gymdesk.io/backoffice/attendance/model"
	"gymdesk.io/backoffice/utils"
)

func UserToPerson(u model.User) core.Person {
	return core.Person{
		ID:          u.UserID,
		DisplayName: u.Name,
		Role:        defaultRole(u.Role, "User"),
	}
}

func StaffToPerson(s model.Staff) core.Person {
	return core.Person{
		ID:          s.UserID,
		DisplayName: s.Username,
		Role:        defaultRole(s.Role, "Staff"),
	}
}

// BuildRoster lists users followed by staff; the first record of an id wins.
// The staff population ignores users.
func BuildRoster(users []model.User, staffs []model.Staff, scope core.RosterScope) []core.Person {
	var people []core.Person
	if scope.Population != core.PopulationStaff {
		people = append(people, utils.Map(users, UserToPerson)...)
	}
	people = append(people, utils.Map(staffs, StaffToPerson)...)
	return core.FilterByRole(core.MergeRoster(people), scope.Role)
}

func LogToEvent(l model.AccessLog) core.AccessEvent {
	return core.AccessEvent{
		PersonID:  l.UserID,
		Timestamp: l.Timestamp,
		Direction: PunchDirection(l.Punch),
	}
}

// PunchDirection maps the device punch flag: nil is unknown, 0 in, anything else out.
func PunchDirection(punch *int) core.Direction {
	if punch == nil {
		return core.DirectionUnknown
	}
	if *punch == model.PunchIn {
		return core.DirectionIn
	}
	return core.DirectionOut
}

func defaultRole(role, fallback string) string {
	if strings.TrimSpace(role) == "" {
		return fallback
	}
	return role
}
