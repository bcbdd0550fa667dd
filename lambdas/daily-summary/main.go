package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"gorm.io/gorm"

	engine "gymdesk.io/backoffice/attendance/core"
	"gymdesk.io/backoffice/attendance/store"
	"gymdesk.io/backoffice/console"
	"gymdesk.io/backoffice/core"
	"gymdesk.io/backoffice/infrastructure/communication"
	"gymdesk.io/backoffice/infrastructure/devops"
	"gymdesk.io/backoffice/infrastructure/filesystem"
	"gymdesk.io/backoffice/lambdas/common"
	"gymdesk.io/backoffice/lambdas/daily-summary/helper"
	"gymdesk.io/backoffice/utils"
)

type SummaryEvent struct {
	Studios []string `json:"studios"`
	DryRun  bool     `json:"dryRun"`
}

func RunSummaries(ctx context.Context, settings *devops.Settings, event SummaryEvent) (map[string]helper.StudioResult, error) {
	consoleDB, err := console.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to console: %w", err)
	}

	studios, err := console.GetActiveStudios(consoleDB)
	if err != nil {
		return nil, fmt.Errorf("failed to get studios: %w", err)
	}
	if len(event.Studios) > 0 {
		studios = utils.Filter(studios, func(s console.Studio) bool {
			return utils.Find(event.Studios, func(code string) bool { return code == s.Code }) != nil
		})
	}
	fmt.Printf("[INFO] Summarising %d studio(s)\n", len(studios))

	defaults, err := engine.ConfigureReconstructor(settings.LateThreshold, settings.Timezone)
	if err != nil {
		return nil, err
	}

	dm, err := core.New(settings.DBDriver, settings.DSN, settings.DBMaxConnections)
	if err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dm.Close()
	dm.LogLevel = core.LogLevelError

	slack := communication.ConnectSlack(settings)
	outputs := helper.Outputs{
		Post: slack.Post,
		Upload: func(ctx context.Context, key string, body io.Reader) error {
			return filesystem.WriteFile(settings.ReportBucket, key, ctx, filesystem.XlsxContentType, body)
		},
		Email: communication.SendEmail,
	}
	opts := helper.Options{DryRun: event.DryRun, Sender: settings.ReportSender}

	results := make(map[string]helper.StudioResult)
	for _, studio := range studios {
		rc, err := studio.Reconstructor(defaults)
		if err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			continue
		}

		err = dm.Exec(ctx, studio.Schema, func(db *gorm.DB) error {
			result, err := helper.Summarize(ctx, studio, store.New(db), rc, outputs, opts)
			if err != nil {
				return err
			}
			results[studio.Code] = result
			return nil
		})
		if err != nil {
			fmt.Printf("[ERROR] failed to summarise %s: %v\n", studio.Code, err)
			if !event.DryRun {
				_ = slack.Error(fmt.Sprintf("daily summary failed for %s: %v", studio.Code, err))
			}
		}
	}

	fmt.Printf("[INFO] Finished daily summaries\n")
	return results, nil
}

func HandleRequest(ctx context.Context, event interface{}) (interface{}, error) {
	eventJson, _ := json.Marshal(event)
	fmt.Printf("[INFO] Event: %s\n", string(eventJson))

	var summaryEvent SummaryEvent
	bedrockEvent, isBedrock := common.ParseBedrockEvent(eventJson)
	if isBedrock {
		fmt.Printf("[INFO] Identified as Bedrock Event: %s\n", bedrockEvent.ActionGroup)
		summaryEvent.Studios = bedrockEvent.GetList("studios")
		summaryEvent.DryRun = bedrockEvent.GetBool("dryrun")
	} else if err := json.Unmarshal(eventJson, &summaryEvent); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary event: %w", err)
	}

	settings, err := devops.LoadSettings()
	if err != nil {
		return nil, err
	}

	results, err := RunSummaries(ctx, settings, summaryEvent)
	if err != nil {
		return nil, err
	}

	if isBedrock && bedrockEvent.Function != "" {
		return common.NewBedrockResponse(bedrockEvent.ActionGroup, bedrockEvent.Function, results), nil
	}
	return results, nil
}

func main() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(HandleRequest)
		return
	}

	settings, err := devops.LoadSettings()
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}

	results, err := RunSummaries(context.Background(), settings, SummaryEvent{
		Studios: utils.SplitList(os.Getenv("STUDIOS")),
		DryRun:  true,
	})
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}
	resJson, _ := json.MarshalIndent(results, "", "  ")
	fmt.Printf("[SUCCESS] Results:\n%s\n", string(resJson))
}
