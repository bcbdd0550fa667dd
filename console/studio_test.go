package console

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymdesk.io/backoffice/attendance/core"
)

func TestStudioReconstructor(t *testing.T) {
	defaults := core.NewReconstructor(core.DefaultLateThreshold, time.UTC)

	r, err := Studio{Code: "NTH"}.Reconstructor(defaults)
	require.NoError(t, err)
	assert.Equal(t, core.DefaultLateThreshold, r.LateThreshold)
	assert.Equal(t, time.UTC, r.Location)

	r, err = Studio{Code: "NTH", Timezone: "UTC+10", LateThreshold: "08:45"}.Reconstructor(defaults)
	require.NoError(t, err)
	assert.Equal(t, core.TimeOfDay{Hour: 8, Minute: 45}, r.LateThreshold)
	_, offset := time.Date(2024, 3, 1, 0, 0, 0, 0, r.Location).Zone()
	assert.Equal(t, 10*3600, offset)

	// defaults are copied, not mutated
	assert.Equal(t, core.DefaultLateThreshold, defaults.LateThreshold)
}

func TestStudioReconstructorInvalid(t *testing.T) {
	defaults := core.NewReconstructor(core.DefaultLateThreshold, time.UTC)

	_, err := Studio{Code: "NTH", LateThreshold: "9am"}.Reconstructor(defaults)
	assert.ErrorIs(t, err, core.ErrInvalidTimeOfDay)

	_, err = Studio{Code: "NTH", Timezone: "Mars/Olympus"}.Reconstructor(defaults)
	assert.Error(t, err)
}
