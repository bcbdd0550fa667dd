package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymdesk.io/backoffice/attendance/core"
)

var loc = time.FixedZone("UTC+10", 10*60*60)

type stubSource struct {
	people []core.Person
	events []core.AccessEvent
	err    error
}

func (s stubSource) FetchRoster(ctx context.Context, scope core.RosterScope) ([]core.Person, error) {
	if s.err != nil {
		return nil, s.err
	}
	return core.FilterByRole(s.people, scope.Role), nil
}

func (s stubSource) FetchEvents(ctx context.Context, from, to time.Time) ([]core.AccessEvent, error) {
	var out []core.AccessEvent
	for _, e := range s.events {
		if !e.Timestamp.Before(from) && !e.Timestamp.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func at(day, clock string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", day+" "+clock, loc)
	if err != nil {
		panic(err)
	}
	return t
}

func fixture() (*core.Reconstructor, stubSource) {
	rc := core.NewReconstructor(core.DefaultLateThreshold, loc)
	rc.Now = func() time.Time { return at("2024-03-05", "12:00") }
	src := stubSource{
		people: []core.Person{
			{ID: "1", DisplayName: "Ann Lee", Role: "Trainer"},
			{ID: "2", DisplayName: "Bob Stone", Role: "Staff"},
		},
		events: []core.AccessEvent{
			{PersonID: "1", Timestamp: at("2024-03-04", "09:00")},
			{PersonID: "1", Timestamp: at("2024-03-04", "17:00")},
			{PersonID: "2", Timestamp: at("2024-03-05", "09:20")},
			{PersonID: "1", Timestamp: at("2024-03-05", "08:10")},
			{PersonID: "1", Timestamp: at("2024-03-05", "10:10")},
		},
	}
	return rc, src
}

func TestSummary(t *testing.T) {
	rc, src := fixture()

	out, err := Summary(context.Background(), rc, src, SummaryInput{})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", out.From)
	assert.Equal(t, "2024-03-05", out.To)
	require.Len(t, out.People, 2)
	assert.Equal(t, PersonSummary{
		Name: "Ann Lee", Role: "Trainer", DaysPresent: 2, DaysLate: 0, DaysAbsent: 3, AverageCheckIn: "08:35",
	}, out.People[0])
	assert.Equal(t, 1, out.People[1].DaysLate)
	require.NotNil(t, out.Today)
	assert.Equal(t, 2, out.Today.Present)
}

func TestSummaryFilters(t *testing.T) {
	rc, src := fixture()

	out, err := Summary(context.Background(), rc, src, SummaryInput{Month: "March 2024", Search: "bob"})
	require.NoError(t, err)
	require.Len(t, out.People, 1)
	assert.Equal(t, "Bob Stone", out.People[0].Name)

	out, err = Summary(context.Background(), rc, src, SummaryInput{Month: "February 2024"})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", out.To)
	assert.Nil(t, out.Today)
	assert.Equal(t, 29, out.People[0].DaysAbsent)
}

func TestSummaryErrors(t *testing.T) {
	rc, src := fixture()

	_, err := Summary(context.Background(), rc, src, SummaryInput{Month: "Smarch 2024"})
	assert.Error(t, err)

	_, err = Summary(context.Background(), rc, src, SummaryInput{Scope: "members"})
	assert.Error(t, err)

	src.err = errors.New("connection reset")
	_, err = Summary(context.Background(), rc, src, SummaryInput{})
	assert.ErrorContains(t, err, "connection reset")
}

func TestPresence(t *testing.T) {
	rc, src := fixture()
	src.events = append(src.events, core.AccessEvent{PersonID: "9", Timestamp: at("2024-03-05", "11:00")})

	out, err := Presence(context.Background(), rc, src)
	require.NoError(t, err)
	assert.Equal(t, PresenceOutput{
		Date:             "2024-03-05",
		CurrentlyPresent: 2,
		VisitedToday:     3,
		Inside:           []string{"Bob Stone", "9"},
	}, out)
}

func TestNewRequiresKey(t *testing.T) {
	rc, src := fixture()
	_, err := New(context.Background(), "", rc, src)
	assert.Error(t, err)
}
