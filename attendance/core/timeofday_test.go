package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input    string
		expected TimeOfDay
		wantErr  bool
	}{
		{input: "09:15", expected: TimeOfDay{Hour: 9, Minute: 15}},
		{input: "9:05", expected: TimeOfDay{Hour: 9, Minute: 5}},
		{input: " 23:59 ", expected: TimeOfDay{Hour: 23, Minute: 59}},
		{input: "24:00", wantErr: true},
		{input: "09:60", wantErr: true},
		{input: "09:5", wantErr: true},
		{input: "0915", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeOfDay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTimeOfDayFormatting(t *testing.T) {
	assert.Equal(t, 555, DefaultLateThreshold.Minutes())
	assert.Equal(t, "09:15", DefaultLateThreshold.String())
	assert.Equal(t, "00:00", FormatMinutes(0))
	assert.True(t, at("2024-03-05", "09:15").Equal(DefaultLateThreshold.On(date("2024-03-05"))))
}
