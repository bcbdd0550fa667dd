package importer

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"gymdesk.io/backoffice/attendance/model"
)

// ParseXLSX reads the first sheet. Timestamps may be text or Excel date serials.
func ParseXLSX(r io.Reader, loc *time.Location, source string) ([]model.AccessLog, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	return parseRows(rows, loc, source, func(c string, loc *time.Location) (time.Time, error) {
		serial, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return parseTimestamp(c, loc)
		}
		wall, err := excelize.ExcelDateToTime(serial, date1904)
		if err != nil {
			return time.Time{}, err
		}
		wall = wall.Round(time.Second)
		// serials carry no zone; read the wall clock in loc
		return time.Date(wall.Year(), wall.Month(), wall.Day(), wall.Hour(), wall.Minute(), wall.Second(), 0, loc), nil
	})
}
