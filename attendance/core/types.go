package core

import (
	"fmt"
	"strings"
	"time"
)

// Direction is the role of a punch. Most devices do not record it.
type Direction int

const (
	DirectionUnknown Direction = iota
	DirectionIn
	DirectionOut
)

func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "in"
	case DirectionOut:
		return "out"
	}
	return "unknown"
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "in":
		*d = DirectionIn
	case "out":
		*d = DirectionOut
	case "", "unknown":
		*d = DirectionUnknown
	default:
		return fmt.Errorf("invalid direction %q", string(b))
	}
	return nil
}

type Status string

const (
	StatusPresent Status = "Present"
	StatusLate    Status = "Late"
	StatusAbsent  Status = "Absent"
)

type Person struct {
	ID          string `json:"id"`
	DisplayName string `json:"name"`
	Role        string `json:"role"`
}

type AccessEvent struct {
	PersonID  string    `json:"personId"`
	Timestamp time.Time `json:"timestamp"`
	Direction Direction `json:"direction"`
}

// DayAttendance is the reconstructed attendance of one person on one day.
// CheckIn and CheckOut are nil on absent days.
type DayAttendance struct {
	PersonID    string     `json:"personId"`
	DisplayName string     `json:"name"`
	Role        string     `json:"role"`
	Date        time.Time  `json:"date"`
	CheckIn     *time.Time `json:"checkIn"`
	CheckOut    *time.Time `json:"checkOut"`
	Status      Status     `json:"status"`
}

func (d DayAttendance) CheckInClock() string {
	return formatClock(d.CheckIn)
}

func (d DayAttendance) CheckOutClock() string {
	return formatClock(d.CheckOut)
}

func formatClock(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(ClockLayout)
}
