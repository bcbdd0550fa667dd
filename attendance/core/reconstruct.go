package core

import (
	"sort"
	"time"

	"gymdesk.io/backoffice/utils"
)

type PairingMode int

const (
	// PairByPosition alternates in/out over the sorted punches of a day.
	PairByPosition PairingMode = iota
	// PairByDirection honours explicit punch directions and alternates
	// only across punches without one.
	PairByDirection
)

// Reconstructor turns raw access events into daily check-in/check-out records.
type Reconstructor struct {
	LateThreshold TimeOfDay
	Location      *time.Location
	Now           func() time.Time
	Pairing       PairingMode
}

func NewReconstructor(threshold TimeOfDay, loc *time.Location) *Reconstructor {
	if loc == nil {
		loc = time.Local
	}
	return &Reconstructor{
		LateThreshold: threshold,
		Location:      loc,
		Now:           time.Now,
	}
}

// ConfigureReconstructor builds a reconstructor from an "HH:MM" threshold and a zone name.
// An empty threshold means DefaultLateThreshold.
func ConfigureReconstructor(threshold, timezone string) (*Reconstructor, error) {
	t := DefaultLateThreshold
	if threshold != "" {
		var err error
		if t, err = ParseTimeOfDay(threshold); err != nil {
			return nil, err
		}
	}
	loc, err := utils.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return NewReconstructor(t, loc), nil
}

// Zone is the studio timezone, time.Local when unset.
func (r *Reconstructor) Zone() *time.Location {
	if r.Location == nil {
		return time.Local
	}
	return r.Location
}

// Clock is the current instant in Zone.
func (r *Reconstructor) Clock() time.Time {
	if r.Now == nil {
		return time.Now().In(r.Zone())
	}
	return r.Now().In(r.Zone())
}

// Today is midnight of the current day.
func (r *Reconstructor) Today() time.Time {
	return StartOfDay(r.Clock(), r.Zone())
}

// EffectiveRange clamps rng to [start, min(end, today)].
// It reports false when nothing is left.
func (r *Reconstructor) EffectiveRange(rng DateRange) (DateRange, bool) {
	loc := r.Zone()
	start := StartOfDay(rng.Start, loc)
	end := StartOfDay(rng.End, loc)
	if today := r.Today(); end.After(today) {
		end = today
	}
	if start.After(end) {
		return DateRange{}, false
	}
	return DateRange{Start: start, End: end}, true
}

type dayKey struct {
	PersonID string
	Date     string
}

// Reconstruct produces one record per person per day of the effective range,
// ordered by day and then by roster order.
func (r *Reconstructor) Reconstruct(people []Person, events []AccessEvent, rng DateRange) []DayAttendance {
	eff, ok := r.EffectiveRange(rng)
	if !ok {
		return []DayAttendance{}
	}

	loc := r.Zone()
	roster := MergeRoster(people)
	known := make(map[string]bool, len(roster))
	for _, p := range roster {
		known[p.ID] = true
	}

	first := eff.Start.Format(DateLayout)
	last := eff.End.Format(DateLayout)
	relevant := utils.Filter(events, func(e AccessEvent) bool {
		if !known[e.PersonID] {
			return false
		}
		day := e.Timestamp.In(loc).Format(DateLayout)
		return day >= first && day <= last
	})
	buckets := utils.GroupBy(relevant, func(e AccessEvent) dayKey {
		return dayKey{PersonID: e.PersonID, Date: e.Timestamp.In(loc).Format(DateLayout)}
	})

	days := eff.Days(loc)
	records := make([]DayAttendance, 0, len(days)*len(roster))
	for _, day := range days {
		date := day.Format(DateLayout)
		for _, p := range roster {
			rec := DayAttendance{
				PersonID:    p.ID,
				DisplayName: p.DisplayName,
				Role:        p.Role,
				Date:        day,
				Status:      StatusAbsent,
			}
			if evs := buckets[dayKey{PersonID: p.ID, Date: date}]; len(evs) > 0 {
				rec.CheckIn, rec.CheckOut = r.pair(evs, day)
				rec.Status = r.Classify(*rec.CheckIn)
			}
			records = append(records, rec)
		}
	}
	return records
}

// Classify compares a check-in against the late threshold. Equal is on time.
func (r *Reconstructor) Classify(checkIn time.Time) Status {
	if MinutesSinceMidnight(checkIn.In(r.Zone())) <= r.LateThreshold.Minutes() {
		return StatusPresent
	}
	return StatusLate
}

// pair expects the events of a single person on a single day.
func (r *Reconstructor) pair(events []AccessEvent, day time.Time) (*time.Time, *time.Time) {
	loc := r.Zone()
	sorted := SortEvents(events)
	roles := AssignRoles(sorted, r.Pairing)

	var checkIn, checkOut *time.Time
	for i, e := range sorted {
		ts := e.Timestamp.In(loc)
		switch roles[i] {
		case DirectionIn:
			if checkIn == nil || ts.Before(*checkIn) {
				checkIn = &ts
			}
		case DirectionOut:
			if checkOut == nil || ts.After(*checkOut) {
				checkOut = &ts
			}
		}
	}

	// only possible with explicit directions: every punch was an exit
	if checkIn == nil {
		ts := sorted[0].Timestamp.In(loc)
		checkIn = &ts
		if checkOut != nil && !checkOut.After(ts) {
			checkOut = nil
		}
	}

	// a trailing entry means the person never left
	if roles[len(roles)-1] == DirectionIn || checkOut == nil {
		eod := EndOfDay(day, loc)
		checkOut = &eod
	}
	return checkIn, checkOut
}

// SortEvents returns a copy of events in ascending timestamp order.
func SortEvents(events []AccessEvent) []AccessEvent {
	sorted := make([]AccessEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}

// AssignRoles infers in/out for already sorted punches. The first punch is an entry.
func AssignRoles(sorted []AccessEvent, mode PairingMode) []Direction {
	roles := make([]Direction, len(sorted))
	next := DirectionIn
	for i, e := range sorted {
		role := next
		if mode == PairByDirection && e.Direction != DirectionUnknown {
			role = e.Direction
		}
		roles[i] = role
		if role == DirectionIn {
			next = DirectionOut
		} else {
			next = DirectionIn
		}
	}
	return roles
}
