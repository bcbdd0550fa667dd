package common

import (
	"encoding/json"
	"fmt"
	"time"

	"gymdesk.io/backoffice/utils"
)

// DateOnly is a calendar date exchanged as "yyyy-MM-dd".
type DateOnly struct {
	time.Time
}

const dateLayout = "2006-01-02"

func NewDateOnly(t time.Time) DateOnly {
	return DateOnly{Time: t}
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date format: %v", err)
	}

	d.Time = t
	return nil
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.Format(dateLayout))
}

// In reinterprets the date as midnight in loc.
func (d DateOnly) In(loc *time.Location) time.Time {
	return utils.Midnight(d.Year(), d.Month(), d.Day(), loc)
}
