package helper

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engine "gymdesk.io/backoffice/attendance/core"
	"gymdesk.io/backoffice/console"
	"gymdesk.io/backoffice/infrastructure/communication"
)

var loc = time.FixedZone("UTC+10", 10*3600)

type staticSource struct {
	people []engine.Person
	events []engine.AccessEvent
}

func (s staticSource) FetchRoster(ctx context.Context, scope engine.RosterScope) ([]engine.Person, error) {
	return s.people, nil
}

func (s staticSource) FetchEvents(ctx context.Context, from, to time.Time) ([]engine.AccessEvent, error) {
	return s.events, nil
}

type recorder struct {
	posts   []string
	uploads []string
	emails  []communication.Email
	postErr error
}

func (r *recorder) outputs() Outputs {
	return Outputs{
		Post: func(channel, message string) error {
			if r.postErr != nil {
				return r.postErr
			}
			r.posts = append(r.posts, channel+"|"+message)
			return nil
		},
		Upload: func(ctx context.Context, key string, body io.Reader) error {
			b, err := io.ReadAll(body)
			if err != nil {
				return err
			}
			if len(b) == 0 {
				return errors.New("empty workbook")
			}
			r.uploads = append(r.uploads, key)
			return nil
		},
		Email: func(ctx context.Context, e communication.Email) error {
			r.emails = append(r.emails, e)
			return nil
		},
	}
}

func fixture() (console.Studio, staticSource, *engine.Reconstructor) {
	studio := console.Studio{
		Code:         "NTH",
		Name:         "Northside",
		Schema:       "northside",
		SlackChannel: "C123",
		ManagerEmail: "manager@northside.gym",
	}
	src := staticSource{
		people: []engine.Person{
			{ID: "1", DisplayName: "Ann Lee", Role: "Trainer"},
			{ID: "2", DisplayName: "Bob Stone", Role: "Staff"},
			{ID: "3", DisplayName: "Cat Moss", Role: "Staff"},
		},
		events: []engine.AccessEvent{
			{PersonID: "1", Timestamp: time.Date(2024, 3, 5, 9, 0, 0, 0, loc)},
			{PersonID: "2", Timestamp: time.Date(2024, 3, 5, 9, 40, 0, 0, loc)},
		},
	}
	rc := engine.NewReconstructor(engine.DefaultLateThreshold, loc)
	rc.Now = func() time.Time { return time.Date(2024, 3, 5, 18, 0, 0, 0, loc) }
	return studio, src, rc
}

func TestSummarize(t *testing.T) {
	studio, src, rc := fixture()
	rec := &recorder{}

	result, err := Summarize(context.Background(), studio, src, rc, rec.outputs(), Options{Sender: "reports@gymdesk.io"})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Today.Total)
	assert.Equal(t, 2, result.Today.Present)
	assert.Equal(t, 1, result.Today.Late)
	assert.Equal(t, 1, result.Today.Absent)
	assert.Equal(t, []string{"Bob Stone (09:40)"}, result.Late)

	assert.Equal(t, []string{"northside/reports/attendance-2024-03.xlsx"}, rec.uploads)
	assert.Equal(t, "northside/reports/attendance-2024-03.xlsx", result.Report)

	require.Len(t, rec.posts, 1)
	assert.Contains(t, rec.posts[0], "C123|*Northside* attendance for Tue 5 Mar 2024")
	assert.Contains(t, rec.posts[0], "Present: 2 of 3 (late 1), absent: 1")
	assert.Contains(t, rec.posts[0], "Late: Bob Stone (09:40)")
	assert.True(t, result.Posted)

	require.Len(t, rec.emails, 1)
	assert.Equal(t, []string{"manager@northside.gym"}, rec.emails[0].To)
	assert.Equal(t, "Northside attendance 2024-03-05", rec.emails[0].Subject)
	assert.True(t, result.Emailed)
}

func TestSummarizeDryRun(t *testing.T) {
	studio, src, rc := fixture()
	rec := &recorder{}

	result, err := Summarize(context.Background(), studio, src, rc, rec.outputs(), Options{DryRun: true, Sender: "reports@gymdesk.io"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Today.Present)
	assert.Empty(t, rec.uploads)
	assert.Empty(t, rec.posts)
	assert.Empty(t, rec.emails)
}

func TestSummarizeSlackFailureIsNotFatal(t *testing.T) {
	studio, src, rc := fixture()
	studio.ManagerEmail = ""
	rec := &recorder{postErr: errors.New("channel_not_found")}

	result, err := Summarize(context.Background(), studio, src, rc, rec.outputs(), Options{Sender: "reports@gymdesk.io"})
	require.NoError(t, err)
	assert.False(t, result.Posted)
	assert.False(t, result.Emailed)
	assert.Len(t, rec.uploads, 1)
}
