package common

import (
	"encoding/json"
	"time"
)

// ClockTime renders an optional instant as "HH:MM", or null when absent.
type ClockTime struct {
	*time.Time
}

const clockLayout = "15:04"

func NewClockTime(t *time.Time) ClockTime {
	return ClockTime{Time: t}
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	if c.Time == nil {
		return []byte("null"), nil
	}
	return json.Marshal(c.Time.Format(clockLayout))
}

func (c *ClockTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		c.Time = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return err
	}
	c.Time = &t
	return nil
}
