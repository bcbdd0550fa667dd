package core

// MonthlyAggregate summarises the day records of one person over a window.
// DaysLate is a subset of DaysPresent. AverageCheckInMinutes is nil when
// the person never checked in.
type MonthlyAggregate struct {
	PersonID              string `json:"personId"`
	DisplayName           string `json:"name"`
	Role                  string `json:"role"`
	TotalDays             int    `json:"totalDays"`
	DaysPresent           int    `json:"daysPresent"`
	DaysLate              int    `json:"daysLate"`
	DaysAbsent            int    `json:"daysAbsent"`
	AverageCheckInMinutes *int   `json:"averageCheckInMinutes"`
}

// AverageCheckIn renders the mean arrival as HH:MM, or "-" without check-ins.
func (a MonthlyAggregate) AverageCheckIn() string {
	if a.AverageCheckInMinutes == nil {
		return "-"
	}
	return FormatMinutes(*a.AverageCheckInMinutes)
}

func Aggregate(records []DayAttendance) map[string]MonthlyAggregate {
	aggregates, _ := aggregate(records)
	return aggregates
}

// AggregateInOrder is Aggregate keeping the order in which people first appear.
func AggregateInOrder(records []DayAttendance) []MonthlyAggregate {
	aggregates, order := aggregate(records)
	list := make([]MonthlyAggregate, 0, len(order))
	for _, id := range order {
		list = append(list, aggregates[id])
	}
	return list
}

func aggregate(records []DayAttendance) (map[string]MonthlyAggregate, []string) {
	aggregates := make(map[string]MonthlyAggregate)
	checkInMinutes := make(map[string]int)
	var order []string

	// days per person first, so absence can count down from the total
	for _, rec := range records {
		agg, ok := aggregates[rec.PersonID]
		if !ok {
			agg = MonthlyAggregate{
				PersonID:    rec.PersonID,
				DisplayName: rec.DisplayName,
				Role:        rec.Role,
			}
			order = append(order, rec.PersonID)
		}
		agg.TotalDays++
		agg.DaysAbsent++
		aggregates[rec.PersonID] = agg
	}

	for _, rec := range records {
		if rec.CheckIn == nil {
			continue
		}
		agg := aggregates[rec.PersonID]
		agg.DaysAbsent--
		agg.DaysPresent++
		if rec.Status == StatusLate {
			agg.DaysLate++
		}
		checkInMinutes[rec.PersonID] += MinutesSinceMidnight(*rec.CheckIn)
		aggregates[rec.PersonID] = agg
	}

	for id, agg := range aggregates {
		if agg.DaysPresent == 0 {
			continue
		}
		avg := checkInMinutes[id] / agg.DaysPresent
		agg.AverageCheckInMinutes = &avg
		aggregates[id] = agg
	}
	return aggregates, order
}
