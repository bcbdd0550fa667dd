package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

type Population string

const (
	PopulationAll   Population = "all"
	PopulationStaff Population = "staff"
)

// RosterScope selects who is reported on.
type RosterScope struct {
	Population Population `json:"population"`
	Role       string     `json:"role"`
}

func ParsePopulation(s string) (Population, error) {
	switch Population(strings.ToLower(strings.TrimSpace(s))) {
	case "", PopulationAll:
		return PopulationAll, nil
	case PopulationStaff:
		return PopulationStaff, nil
	}
	return "", fmt.Errorf("unknown population %q", s)
}

// Source is where rosters and access events come from.
type Source interface {
	FetchRoster(ctx context.Context, scope RosterScope) ([]Person, error)
	FetchEvents(ctx context.Context, from, to time.Time) ([]AccessEvent, error)
}

type ReportOptions struct {
	Range  DateRange
	Scope  RosterScope
	Search string
}

type Report struct {
	Range      DateRange          `json:"range"`
	Days       []DayAttendance    `json:"days"`
	Aggregates []MonthlyAggregate `json:"aggregates"`
	Today      *DailySummary      `json:"today"`
}

// BuildReport fetches the roster and the event log concurrently and
// reconstructs the requested window.
func (r *Reconstructor) BuildReport(ctx context.Context, src Source, opts ReportOptions) (*Report, error) {
	eff, ok := r.EffectiveRange(opts.Range)
	if !ok {
		return &Report{
			Range:      opts.Range,
			Days:       []DayAttendance{},
			Aggregates: []MonthlyAggregate{},
		}, nil
	}

	// store.Repository holds its mutex per query, so on a pinned schema
	// connection the two fetches run one after the other.
	people, events, err := r.fetch(ctx, src, opts.Scope, eff)
	if err != nil {
		return nil, err
	}

	days := FilterByName(r.Reconstruct(people, events, eff), opts.Search)
	report := &Report{
		Range:      eff,
		Days:       days,
		Aggregates: AggregateInOrder(days),
	}
	if today := r.Today(); eff.Contains(today, r.Zone()) {
		summary := Summarize(days, today)
		report.Today = &summary
	}
	return report, nil
}

func (r *Reconstructor) fetch(ctx context.Context, src Source, scope RosterScope, eff DateRange) ([]Person, []AccessEvent, error) {
	var people []Person
	var events []AccessEvent

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := src.FetchRoster(gctx, scope)
		if err != nil {
			return fmt.Errorf("failed to fetch roster: %w", err)
		}
		people = p
		return nil
	})
	g.Go(func() error {
		e, err := src.FetchEvents(gctx, eff.Start, EndOfDay(eff.End, r.Zone()))
		if err != nil {
			return fmt.Errorf("failed to fetch access events: %w", err)
		}
		events = e
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return people, events, nil
}

// LivePresence reports who is inside right now.
func (r *Reconstructor) LivePresence(ctx context.Context, src Source) (Presence, error) {
	now := r.Clock()
	events, err := src.FetchEvents(ctx, StartOfDay(now, r.Zone()), now)
	if err != nil {
		return Presence{}, fmt.Errorf("failed to fetch access events: %w", err)
	}
	return CurrentPresence(events, now, r.Zone()), nil
}

var ErrPersonNotFound = errors.New("person not found")

// PersonHistory loads the punches of one person over rng.
func (r *Reconstructor) PersonHistory(ctx context.Context, src Source, personID string, rng DateRange) (Person, []DayHistory, error) {
	eff, ok := r.EffectiveRange(rng)
	if !ok {
		return Person{}, nil, fmt.Errorf("%w: %s", ErrInvalidRange, rng)
	}

	people, events, err := r.fetch(ctx, src, RosterScope{Population: PopulationAll}, eff)
	if err != nil {
		return Person{}, nil, err
	}
	for _, p := range people {
		if p.ID == personID {
			return p, r.History(p, events, eff), nil
		}
	}
	return Person{}, nil, fmt.Errorf("%w: %s", ErrPersonNotFound, personID)
}
