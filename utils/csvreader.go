package utils

import (
	"encoding/csv"
	"io"
)

// ParseCSV reads every record. Rows may have different lengths and
// blank lines are skipped.
func ParseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return records, nil
}
