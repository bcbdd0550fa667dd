package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"gorm.io/gorm"

	engine "gymdesk.io/backoffice/attendance/core"
	"gymdesk.io/backoffice/attendance/store"
	"gymdesk.io/backoffice/core"
	"gymdesk.io/backoffice/infrastructure/devops"
	"gymdesk.io/backoffice/infrastructure/filesystem"
	"gymdesk.io/backoffice/lambdas/punch-import/helper"
)

func importObjects(ctx context.Context, settings *devops.Settings, objects []helper.Object) ([]helper.Result, error) {
	rc, err := engine.ConfigureReconstructor(settings.LateThreshold, settings.Timezone)
	if err != nil {
		return nil, err
	}

	dm, err := core.New(settings.DBDriver, settings.DSN, settings.DBMaxConnections)
	if err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dm.Close()
	dm.LogLevel = core.ParseLogLevel(settings.LogLevel)

	results := make([]helper.Result, 0, len(objects))
	for _, obj := range objects {
		fmt.Printf("[INFO] Importing s3://%s/%s into %s\n", obj.Bucket, obj.Key, obj.Schema)
		result := helper.Result{Object: obj}

		var buf bytes.Buffer
		if err := filesystem.ReadFile(obj.Bucket, obj.Key, ctx, &buf); err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		err := dm.Exec(ctx, obj.Schema, func(db *gorm.DB) error {
			n, err := helper.Import(ctx, store.New(db), obj.File, &buf, rc.Location)
			result.Imported = n
			return err
		})
		if err != nil {
			fmt.Printf("[ERROR] failed to import %s: %v\n", obj.Key, err)
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results, nil
}

func HandleRequest(ctx context.Context, event events.S3Event) ([]helper.Result, error) {
	settings, err := devops.LoadSettings()
	if err != nil {
		return nil, err
	}

	objects := helper.Objects(event)
	fmt.Printf("[INFO] %d punch file(s) in event\n", len(objects))
	return importObjects(ctx, settings, objects)
}

// local mode: punch-import <schema> <file>
func main() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(HandleRequest)
		return
	}

	if len(os.Args) != 3 {
		log.Fatalf("usage: %s <schema> <file>", filepath.Base(os.Args[0]))
	}
	schema, path := os.Args[1], os.Args[2]

	settings, err := devops.LoadSettings()
	if err != nil {
		log.Fatal(err)
	}
	rc, err := engine.ConfigureReconstructor(settings.LateThreshold, settings.Timezone)
	if err != nil {
		log.Fatal(err)
	}

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open file %s: %v", path, err)
	}
	defer file.Close()

	dm, err := core.New(settings.DBDriver, settings.DSN, settings.DBMaxConnections)
	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()

	var imported int
	err = dm.Exec(context.Background(), schema, func(db *gorm.DB) error {
		imported, err = helper.Import(context.Background(), store.New(db), filepath.Base(path), file, rc.Location)
		return err
	})
	if err != nil {
		log.Fatal(err)
	}

	res, _ := json.MarshalIndent(helper.Result{Object: helper.Object{Key: path, Schema: schema, File: filepath.Base(path)}, Imported: imported}, "", "  ")
	fmt.Printf("[SUCCESS] Results:\n%s\n", string(res))
}
