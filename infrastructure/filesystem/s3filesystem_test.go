package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSchemaKey(t *testing.T) {
	schema, file, err := SplitSchemaKey("northside/2024-03-05.csv")
	require.NoError(t, err)
	assert.Equal(t, "northside", schema)
	assert.Equal(t, "2024-03-05.csv", file)

	schema, file, err = SplitSchemaKey("/northside/incoming/door-1.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "northside", schema)
	assert.Equal(t, "door-1.xlsx", file)

	for _, key := range []string{"punches.csv", "northside/", "/punches.csv"} {
		_, _, err := SplitSchemaKey(key)
		assert.Error(t, err, key)
	}
}

func TestReportKey(t *testing.T) {
	assert.Equal(t, "northside/reports/attendance-2024-03.xlsx", ReportKey("northside", "2024-03"))
}
