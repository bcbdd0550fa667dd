package attendance

import (
	"time"

	engine "gymdesk.io/backoffice/attendance/core"
	"gymdesk.io/backoffice/utils"
	web "gymdesk.io/backoffice/web/common"
)

type DayRecordDTO struct {
	PersonID string        `json:"personId"`
	Name     string        `json:"name"`
	Role     string        `json:"role"`
	Date     web.DateOnly  `json:"date"`
	CheckIn  web.ClockTime `json:"checkIn"`
	CheckOut web.ClockTime `json:"checkOut"`
	Status   string        `json:"status"`
}

type AggregateDTO struct {
	PersonID       string `json:"personId"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	TotalDays      int    `json:"totalDays"`
	DaysPresent    int    `json:"daysPresent"`
	DaysLate       int    `json:"daysLate"`
	DaysAbsent     int    `json:"daysAbsent"`
	AverageCheckIn string `json:"averageCheckIn"`
}

type DailySummaryDTO struct {
	Date    web.DateOnly `json:"date"`
	Total   int          `json:"total"`
	Present int          `json:"present"`
	Late    int          `json:"late"`
	Absent  int          `json:"absent"`
}

type SummaryDTO struct {
	StartDate  web.DateOnly     `json:"startDate"`
	EndDate    web.DateOnly     `json:"endDate"`
	Aggregates []AggregateDTO   `json:"aggregates"`
	Today      *DailySummaryDTO `json:"today"`
}

type PresenceDTO struct {
	Date             web.DateOnly `json:"date"`
	CurrentlyPresent int          `json:"currentlyPresent"`
	VisitedToday     int          `json:"visitedToday"`
	Inside           []string     `json:"inside"`
}

type PunchDTO struct {
	Time     web.ClockTime `json:"time"`
	Role     string        `json:"role"`
	Explicit bool          `json:"explicit"`
}

type DayHistoryDTO struct {
	Date     web.DateOnly  `json:"date"`
	Punches  []PunchDTO    `json:"punches"`
	CheckIn  web.ClockTime `json:"checkIn"`
	CheckOut web.ClockTime `json:"checkOut"`
	Status   string        `json:"status"`
}

type HistoryDTO struct {
	PersonID string          `json:"personId"`
	Name     string          `json:"name"`
	Role     string          `json:"role"`
	Month    string          `json:"month"`
	Days     []DayHistoryDTO `json:"days"`
}

type MonthsDTO struct {
	Current string   `json:"current"`
	Options []string `json:"options"`
}

type SessionTokenDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ImportResultDTO struct {
	Files    []string `json:"files"`
	Imported int      `json:"imported"`
}

func toDayRecordDTO(d engine.DayAttendance) DayRecordDTO {
	return DayRecordDTO{
		PersonID: d.PersonID,
		Name:     d.DisplayName,
		Role:     d.Role,
		Date:     web.NewDateOnly(d.Date),
		CheckIn:  web.NewClockTime(d.CheckIn),
		CheckOut: web.NewClockTime(d.CheckOut),
		Status:   string(d.Status),
	}
}

func toAggregateDTO(a engine.MonthlyAggregate) AggregateDTO {
	return AggregateDTO{
		PersonID:       a.PersonID,
		Name:           a.DisplayName,
		Role:           a.Role,
		TotalDays:      a.TotalDays,
		DaysPresent:    a.DaysPresent,
		DaysLate:       a.DaysLate,
		DaysAbsent:     a.DaysAbsent,
		AverageCheckIn: a.AverageCheckIn(),
	}
}

func toSummaryDTO(r *engine.Report) SummaryDTO {
	dto := SummaryDTO{
		StartDate:  web.NewDateOnly(r.Range.Start),
		EndDate:    web.NewDateOnly(r.Range.End),
		Aggregates: utils.Map(r.Aggregates, toAggregateDTO),
	}
	if r.Today != nil {
		dto.Today = &DailySummaryDTO{
			Date:    web.NewDateOnly(r.Today.Date),
			Total:   r.Today.Total,
			Present: r.Today.Present,
			Late:    r.Today.Late,
			Absent:  r.Today.Absent,
		}
	}
	return dto
}

func toPresenceDTO(p engine.Presence) PresenceDTO {
	return PresenceDTO{
		Date:             web.NewDateOnly(p.Date),
		CurrentlyPresent: p.CurrentlyPresent,
		VisitedToday:     p.VisitedToday,
		Inside:           p.Inside,
	}
}

func toDayHistoryDTO(d engine.DayHistory) DayHistoryDTO {
	return DayHistoryDTO{
		Date: web.NewDateOnly(d.Date),
		Punches: utils.Map(d.Punches, func(p engine.Punch) PunchDTO {
			return PunchDTO{Time: web.NewClockTime(utils.Ptr(p.Timestamp)), Role: p.Role.String(), Explicit: p.Explicit}
		}),
		CheckIn:  web.NewClockTime(d.CheckIn),
		CheckOut: web.NewClockTime(d.CheckOut),
		Status:   string(d.Status),
	}
}
