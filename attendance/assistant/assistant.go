package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"google.golang.org/genai"

	"gymdesk.io/backoffice/attendance/core"
)

const DefaultModel = "googleai/gemini-2.5-flash"

var model = googlegenai.GoogleAIModelRef("gemini-2.5-flash", &genai.GenerateContentConfig{
	MaxOutputTokens: 800,
	Temperature:     genai.Ptr[float32](0.0),
	TopP:            genai.Ptr[float32](0.4),
	ThinkingConfig: &genai.ThinkingConfig{
		ThinkingBudget: genai.Ptr[int32](0),
	},
})

const systemPrompt = `You answer questions about gym attendance.
Use the tools to look up figures, never guess them.
Dates are in the gym's local time. Late means the first check-in was after the late threshold.`

type SummaryInput struct {
	Month  string `json:"month,omitempty" jsonschema_description:"Month label such as 'March 2024'. Empty means the current month"`
	Search string `json:"search,omitempty" jsonschema_description:"Case-insensitive part of a person's name"`
	Scope  string `json:"scope,omitempty" jsonschema_description:"'all' or 'staff'"`
}

type PersonSummary struct {
	Name           string `json:"name"`
	Role           string `json:"role"`
	DaysPresent    int    `json:"daysPresent"`
	DaysLate       int    `json:"daysLate"`
	DaysAbsent     int    `json:"daysAbsent"`
	AverageCheckIn string `json:"averageCheckIn"`
}

type SummaryOutput struct {
	From   string             `json:"from"`
	To     string             `json:"to"`
	People []PersonSummary    `json:"people"`
	Today  *core.DailySummary `json:"today,omitempty"`
}

type PresenceInput struct{}

type PresenceOutput struct {
	Date             string   `json:"date"`
	CurrentlyPresent int      `json:"currentlyPresent"`
	VisitedToday     int      `json:"visitedToday"`
	Inside           []string `json:"inside"`
}

// Summary is the body of the attendance_summary tool.
func Summary(ctx context.Context, rc *core.Reconstructor, src core.Source, in SummaryInput) (SummaryOutput, error) {
	loc := rc.Location
	if loc == nil {
		loc = time.Local
	}

	var rng core.DateRange
	if strings.TrimSpace(in.Month) == "" {
		today := rc.Today()
		rng = core.MonthRange(today.Year(), today.Month(), loc)
	} else {
		var err error
		if rng, err = core.ParseMonth(in.Month, loc); err != nil {
			return SummaryOutput{}, err
		}
	}

	population, err := core.ParsePopulation(in.Scope)
	if err != nil {
		return SummaryOutput{}, err
	}

	report, err := rc.BuildReport(ctx, src, core.ReportOptions{
		Range:  rng,
		Scope:  core.RosterScope{Population: population},
		Search: in.Search,
	})
	if err != nil {
		return SummaryOutput{}, err
	}

	out := SummaryOutput{
		From:   report.Range.Start.Format(core.DateLayout),
		To:     report.Range.End.Format(core.DateLayout),
		People: make([]PersonSummary, 0, len(report.Aggregates)),
		Today:  report.Today,
	}
	for _, a := range report.Aggregates {
		out.People = append(out.People, PersonSummary{
			Name:           a.DisplayName,
			Role:           a.Role,
			DaysPresent:    a.DaysPresent,
			DaysLate:       a.DaysLate,
			DaysAbsent:     a.DaysAbsent,
			AverageCheckIn: a.AverageCheckIn(),
		})
	}
	return out, nil
}

// Presence is the body of the current_presence tool. Ids are resolved to names
// where the roster knows them.
func Presence(ctx context.Context, rc *core.Reconstructor, src core.Source) (PresenceOutput, error) {
	presence, err := rc.LivePresence(ctx, src)
	if err != nil {
		return PresenceOutput{}, err
	}
	people, err := src.FetchRoster(ctx, core.RosterScope{Population: core.PopulationAll})
	if err != nil {
		return PresenceOutput{}, fmt.Errorf("failed to fetch roster: %w", err)
	}
	names := make(map[string]string, len(people))
	for _, p := range people {
		names[p.ID] = p.DisplayName
	}

	out := PresenceOutput{
		Date:             presence.Date.Format(core.DateLayout),
		CurrentlyPresent: presence.CurrentlyPresent,
		VisitedToday:     presence.VisitedToday,
		Inside:           make([]string, 0, len(presence.Inside)),
	}
	for _, id := range presence.Inside {
		if name, ok := names[id]; ok {
			out.Inside = append(out.Inside, name)
		} else {
			out.Inside = append(out.Inside, id)
		}
	}
	return out, nil
}

type Assistant struct {
	g     *genkit.Genkit
	tools []ai.ToolRef
}

func New(ctx context.Context, apiKey string, rc *core.Reconstructor, src core.Source) (*Assistant, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}

	g := genkit.Init(ctx,
		genkit.WithPlugins(&googlegenai.GoogleAI{APIKey: apiKey}),
		genkit.WithDefaultModel(DefaultModel),
	)

	summary := genkit.DefineTool(g, "attendance_summary", "Monthly attendance per person: days present, late and absent, and the average check-in",
		func(ctx *ai.ToolContext, input SummaryInput) (SummaryOutput, error) {
			return Summary(ctx, rc, src, input)
		},
	)
	presence := genkit.DefineTool(g, "current_presence", "Who is inside the gym right now",
		func(ctx *ai.ToolContext, input PresenceInput) (PresenceOutput, error) {
			return Presence(ctx, rc, src)
		},
	)

	return &Assistant{g: g, tools: []ai.ToolRef{summary, presence}}, nil
}

func (a *Assistant) Ask(ctx context.Context, question string) (string, error) {
	resp, err := genkit.Generate(ctx, a.g,
		ai.WithModel(model),
		ai.WithSystem(systemPrompt),
		ai.WithPrompt(question),
		ai.WithTools(a.tools...),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}
	if resp.Usage != nil {
		fmt.Printf("[INFO] tokens in=%d out=%d\n", resp.Usage.InputTokens, resp.Usage.OutputTokens)
	}
	return resp.Text(), nil
}
