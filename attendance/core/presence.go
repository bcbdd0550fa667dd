package core

import (
	"sort"
	"time"
)

type Presence struct {
	Date             time.Time `json:"date"`
	CurrentlyPresent int       `json:"currentlyPresent"`
	VisitedToday     int       `json:"visitedToday"`
	Inside           []string  `json:"inside"`
}

// CurrentPresence looks at the punches of today up to now. Anyone with an odd
// number of punches is still inside. Unknown ids are counted as well.
func CurrentPresence(events []AccessEvent, now time.Time, loc *time.Location) Presence {
	start := StartOfDay(now, loc)
	counts := make(map[string]int)
	for _, e := range events {
		if e.Timestamp.Before(start) || e.Timestamp.After(now) {
			continue
		}
		counts[e.PersonID]++
	}

	presence := Presence{Date: start, VisitedToday: len(counts), Inside: []string{}}
	for id, n := range counts {
		if n%2 == 1 {
			presence.Inside = append(presence.Inside, id)
		}
	}
	sort.Strings(presence.Inside)
	presence.CurrentlyPresent = len(presence.Inside)
	return presence
}
