package core

import "time"

type Punch struct {
	Timestamp time.Time `json:"timestamp"`
	Role      Direction `json:"role"`
	Explicit  bool      `json:"explicit"`
}

// DayHistory lists the punches of one day next to the reconstructed pair.
type DayHistory struct {
	Date     time.Time  `json:"date"`
	Punches  []Punch    `json:"punches"`
	CheckIn  *time.Time `json:"checkIn"`
	CheckOut *time.Time `json:"checkOut"`
	Status   Status     `json:"status"`
}

// History returns the days of rng on which person punched, oldest first.
// Explicit punch directions are always honoured here.
func (r *Reconstructor) History(person Person, events []AccessEvent, rng DateRange) []DayHistory {
	directed := *r
	directed.Pairing = PairByDirection

	loc := r.Zone()
	own := make([]AccessEvent, 0)
	for _, e := range events {
		if e.PersonID == person.ID {
			own = append(own, e)
		}
	}

	byDay := make(map[string][]AccessEvent)
	for _, e := range SortEvents(own) {
		date := e.Timestamp.In(loc).Format(DateLayout)
		byDay[date] = append(byDay[date], e)
	}

	history := []DayHistory{}
	for _, rec := range directed.Reconstruct([]Person{person}, own, rng) {
		dayEvents := byDay[rec.Date.Format(DateLayout)]
		if len(dayEvents) == 0 {
			continue
		}
		roles := AssignRoles(dayEvents, PairByDirection)
		punches := make([]Punch, len(dayEvents))
		for i, e := range dayEvents {
			punches[i] = Punch{
				Timestamp: e.Timestamp.In(loc),
				Role:      roles[i],
				Explicit:  e.Direction != DirectionUnknown,
			}
		}
		history = append(history, DayHistory{
			Date:     rec.Date,
			Punches:  punches,
			CheckIn:  rec.CheckIn,
			CheckOut: rec.CheckOut,
			Status:   rec.Status,
		})
	}
	return history
}
