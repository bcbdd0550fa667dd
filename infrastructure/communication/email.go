package communication

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type Email struct {
	From    string
	To      []string
	Subject string
	Text    string
	HTML    string
}

func (e Email) input() (*ses.SendEmailInput, error) {
	if e.From == "" {
		return nil, fmt.Errorf("email sender is not set")
	}
	if len(e.To) == 0 {
		return nil, fmt.Errorf("email has no recipients")
	}

	body := &types.Body{}
	if e.Text != "" {
		body.Text = &types.Content{Data: aws.String(e.Text), Charset: aws.String("UTF-8")}
	}
	if e.HTML != "" {
		body.Html = &types.Content{Data: aws.String(e.HTML), Charset: aws.String("UTF-8")}
	}

	return &ses.SendEmailInput{
		Source:      aws.String(e.From),
		Destination: &types.Destination{ToAddresses: e.To},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(e.Subject), Charset: aws.String("UTF-8")},
			Body:    body,
		},
	}, nil
}

func SendEmail(ctx context.Context, e Email) error {
	input, err := e.input()
	if err != nil {
		return err
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if _, err := ses.NewFromConfig(cfg).SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %v: %w", e.To, err)
	}
	return nil
}
