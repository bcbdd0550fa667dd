package utils

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISOTime(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)

	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			name:     "RFC3339 keeps its offset",
			input:    "2024-03-01T09:10:00+10:00",
			expected: time.Date(2024, 3, 1, 9, 10, 0, 0, loc),
		},
		{
			name:     "Fractional seconds",
			input:    "2024-03-01T09:10:00.250Z",
			expected: time.Date(2024, 3, 1, 9, 10, 0, 250000000, time.UTC),
		},
		{
			name:     "Local wall clock",
			input:    "2024-03-01 18:05:00",
			expected: time.Date(2024, 3, 1, 18, 5, 0, 0, loc),
		},
		{
			name:     "Local wall clock without seconds",
			input:    "2024-03-01T07:30",
			expected: time.Date(2024, 3, 1, 7, 30, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseISOTime(tt.input, loc)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(*got), "got %v", got)
		})
	}

	_, err := ParseISOTime("yesterday", loc)
	assert.Error(t, err)
	_, err = ParseISOTime("", loc)
	assert.Error(t, err)
}

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("")
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = LoadLocation("UTC")
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = LoadLocation("Mars/Olympus")
	assert.Error(t, err)
}

func TestLoadLocationOffsets(t *testing.T) {
	tests := []struct {
		name    string
		offset  int
		wantErr bool
	}{
		{name: "UTC+10", offset: 10 * 60 * 60},
		{name: "UTC-5", offset: -5 * 60 * 60},
		{name: "UTC+5:30", offset: 5*60*60 + 30*60},
		{name: "UTC-03:30", offset: -(3*60*60 + 30*60)},
		{name: "UTC+10garbage", wantErr: true},
		{name: "UTC+5:3", wantErr: true},
		{name: "UTC+5:75", wantErr: true},
		{name: "UTC+15", wantErr: true},
		{name: "UTC+", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
			assert.Equal(t, tt.offset, offset)
		})
	}
}

func TestMidnight(t *testing.T) {
	santiago, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)

	// clocks jump from 24:00 to 01:00
	m := Midnight(2024, time.September, 8, santiago)
	assert.Equal(t, "2024-09-08 01:00", m.Format("2006-01-02 15:04"))

	m = Midnight(2024, time.September, 7, santiago)
	assert.Equal(t, "2024-09-07 00:00", m.Format("2006-01-02 15:04"))

	loc := time.FixedZone("UTC+10", 10*60*60)
	assert.Equal(t, "2024-03-01", Midnight(2024, time.February, 30, loc).Format("2006-01-02"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a, ,b ,"))
	assert.Nil(t, SplitList(""))
}
