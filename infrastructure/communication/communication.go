package communication

import (
	"fmt"

	"github.com/slack-go/slack"

	"gymdesk.io/backoffice/infrastructure/devops"
)

type Slack struct {
	client  *slack.Client
	options SlackOption
}

type SlackOption struct {
	InfoChannelID  string
	ErrorChannelID string
}

func ConnectSlack(settings *devops.Settings) *Slack {
	return NewSlack(settings.SlackBotToken, SlackOption{
		InfoChannelID:  settings.SlackInfoChannel,
		ErrorChannelID: settings.SlackErrorChannel,
	})
}

func NewSlack(token string, options SlackOption) *Slack {
	client := slack.New(token)
	return &Slack{client: client, options: options}
}

func (s *Slack) postMessage(channelID, message string) error {
	if channelID == "" {
		return fmt.Errorf("no Slack channel configured")
	}
	_, _, err := s.client.PostMessage(
		channelID,
		slack.MsgOptionText(message, false),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		return fmt.Errorf("failed to post message to Slack: %w", err)
	}
	return nil
}

func (s *Slack) Info(message string) error {
	return s.postMessage(s.options.InfoChannelID, message)
}

func (s *Slack) Error(message string) error {
	return s.postMessage(s.options.ErrorChannelID, message)
}

// Post sends to channelID, or to the info channel when it is empty.
func (s *Slack) Post(channelID, message string) error {
	if channelID == "" {
		channelID = s.options.InfoChannelID
	}
	return s.postMessage(channelID, message)
}
