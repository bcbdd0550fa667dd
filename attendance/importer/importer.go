package importer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"gymdesk.io/backoffice/attendance/model"
	"gymdesk.io/backoffice/utils"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

// namespace for deterministic access-log ids; the same scan always gets the same id
var logNamespace = uuid.MustParse("6f1c2d0e-8a4b-4c1e-9a53-3d7b2f9e5a10")

const (
	colUserID = iota
	colTimestamp
	colPunch
	colDevice
)

// Parse reads a punch file, choosing the format from the file name.
func Parse(name string, r io.Reader, loc *time.Location) ([]model.AccessLog, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return ParseCSV(r, loc, name)
	case ".xlsx":
		return ParseXLSX(r, loc, name)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

func ParseCSV(r io.Reader, loc *time.Location, source string) ([]model.AccessLog, error) {
	rows, err := utils.ParseCSV(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return parseRows(rows, loc, source, parseTimestamp)
}

type timestampParser func(cell string, loc *time.Location) (time.Time, error)

func parseTimestamp(cell string, loc *time.Location) (time.Time, error) {
	t, err := utils.ParseISOTime(cell, loc)
	if err != nil {
		return time.Time{}, err
	}
	return *t, nil
}

// parseRows converts user_id,timestamp[,punch][,device] rows. Row numbers in
// errors are 1-based, matching what a spreadsheet shows.
func parseRows(rows [][]string, loc *time.Location, source string, parse timestampParser) ([]model.AccessLog, error) {
	if loc == nil {
		loc = time.Local
	}

	logs := make([]model.AccessLog, 0, len(rows))
	for i, row := range rows {
		rowNo := i + 1
		if isBlank(row) {
			continue
		}
		if i == 0 && isHeader(row) {
			continue
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("row %d: expected at least user_id and timestamp", rowNo)
		}

		userID := strings.TrimSpace(row[colUserID])
		if userID == "" {
			return nil, fmt.Errorf("row %d: missing user_id", rowNo)
		}

		ts, err := parse(strings.TrimSpace(row[colTimestamp]), loc)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid timestamp: %w", rowNo, err)
		}

		punch, err := parsePunch(cell(row, colPunch))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNo, err)
		}

		device := cell(row, colDevice)
		logs = append(logs, model.AccessLog{
			ID:        LogID(userID, ts, device),
			UserID:    userID,
			Timestamp: ts,
			Punch:     punch,
			DeviceID:  device,
			Source:    source,
		})
	}
	return logs, nil
}

// LogID derives a stable id so re-importing a file updates rather than duplicates.
func LogID(userID string, ts time.Time, device string) string {
	key := userID + "|" + ts.UTC().Format(time.RFC3339Nano) + "|" + device
	return uuid.NewSHA1(logNamespace, []byte(key)).String()
}

func parsePunch(v string) (*int, error) {
	switch strings.ToLower(v) {
	case "":
		return nil, nil
	case "in", "i":
		return utils.Ptr(model.PunchIn), nil
	case "out", "o":
		return utils.Ptr(model.PunchOut), nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("invalid punch %q", v)
	}
	return &n, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func isHeader(row []string) bool {
	first := strings.ToLower(cell(row, colUserID))
	return first == "user_id" || first == "userid" || first == "user id" || first == "id"
}
