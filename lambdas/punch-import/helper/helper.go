package helper

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"gymdesk.io/backoffice/attendance/importer"
	"gymdesk.io/backoffice/attendance/model"
	"gymdesk.io/backoffice/infrastructure/filesystem"
)

// Object is one uploaded punch file.
type Object struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	Schema string `json:"schema"`
	File   string `json:"file"`
}

type Result struct {
	Object   Object `json:"object"`
	Imported int    `json:"imported"`
	Error    string `json:"error,omitempty"`
}

// Saver persists parsed access logs into one studio schema.
type Saver interface {
	SaveAccessLogs(ctx context.Context, logs []model.AccessLog) error
}

// Objects lists the punch files of an S3 notification. Keys that are not
// <schema>/<file>.csv|xlsx are skipped.
func Objects(event events.S3Event) []Object {
	var objects []Object
	for _, record := range event.Records {
		key, err := url.QueryUnescape(record.S3.Object.Key)
		if err != nil {
			fmt.Printf("[ERROR] invalid object key %s: %v\n", record.S3.Object.Key, err)
			continue
		}

		if !IsPunchFile(key) {
			fmt.Printf("[INFO] Skipping %s\n", key)
			continue
		}

		schema, file, err := filesystem.SplitSchemaKey(key)
		if err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			continue
		}

		objects = append(objects, Object{
			Bucket: record.S3.Bucket.Name,
			Key:    key,
			Schema: schema,
			File:   file,
		})
	}
	return objects
}

func IsPunchFile(key string) bool {
	name := path.Base(key)
	if strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") {
		return false
	}
	ext := strings.ToLower(path.Ext(name))
	return ext == ".csv" || ext == ".xlsx"
}

// Import parses r and saves its rows.
func Import(ctx context.Context, saver Saver, name string, r io.Reader, loc *time.Location) (int, error) {
	logs, err := importer.Parse(name, r, loc)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if err := saver.SaveAccessLogs(ctx, logs); err != nil {
		return 0, err
	}
	return len(logs), nil
}
