package trip

import (
	"testing"
	"time"

	"github.com/outthegc/gc-cli/internal/domain"
	"github.com/stretchr/testify/assert"
)

func dashboardState() *domain.TripState {
	return &domain.TripState{
		Trip: domain.Trip{
			ID:                "trip-a",
			Name:              "Ski Trip",
			Origin:            "NYC",
			Brief:             "Long weekend in the mountains",
			OrganiserMemberID: "m-1",
			RequiredMemberIDs: []string{"m-2"},
		},
		Members: []domain.Member{
			{ID: "m-1", Name: "Ana", Role: domain.RoleOrganiser, HasSubmittedConstraints: true},
			{ID: "m-2", Name: "Ben", Role: domain.RoleMember},
		},
	}
}

func TestRenderDashboard(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	out := RenderDashboard(dashboardState(), "m-2", RenderOptions{
		Now:          now,
		LastSyncedAt: now.Add(-5 * time.Second),
	})

	assert.Contains(t, out, "Ski Trip")
	assert.Contains(t, out, "gc trip join trip-a")
	assert.Contains(t, out, "Long weekend in the mountains")
	assert.Contains(t, out, "synced 5 seconds ago")
	assert.Contains(t, out, "✓ Ana (organiser)")
	assert.Contains(t, out, "· Ben (you) *")
	assert.Contains(t, out, "polls: 0 (0 open)")
	assert.Contains(t, out, "no plan generated yet")
}

func TestRenderDashboardWhileLoading(t *testing.T) {
	t.Parallel()

	assert.Contains(t, RenderDashboard(nil, "", RenderOptions{}), "Loading trip")
}

func TestRenderPollsChoiceTallies(t *testing.T) {
	t.Parallel()

	state := dashboardState()
	state.Polls = []domain.Poll{{
		ID:       "p1",
		Type:     domain.PollTypeSingle,
		Question: "Where to?",
		Options: []domain.PollOption{
			{ID: "a", Label: "Vermont"},
			{ID: "b", Label: "Tahoe"},
		},
		IsOpen: true,
		Votes: []domain.Vote{
			{MemberID: "m-1", MemberName: "Ana", OptionID: "a"},
		},
	}}

	out := RenderPolls(state, "m-1")

	assert.Contains(t, out, "Where to?")
	assert.Contains(t, out, "[single choice] open")
	assert.Contains(t, out, "Vermont")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "voted: Ana")
	assert.Contains(t, out, "1 vote total")
	assert.Contains(t, out, "you voted (1)")
}

func TestRenderPollsMultiShowsVotersWhenTheyDiffer(t *testing.T) {
	t.Parallel()

	state := dashboardState()
	state.Polls = []domain.Poll{{
		ID:       "p2",
		Type:     domain.PollTypeMulti,
		Question: "Which activities?",
		Options: []domain.PollOption{
			{ID: "a", Label: "Hike"},
			{ID: "b", Label: "Spa"},
		},
		IsOpen: true,
		Votes: []domain.Vote{
			{MemberID: "m-1", MemberName: "Ana", OptionID: "a"},
			{MemberID: "m-1", MemberName: "Ana", OptionID: "a"},
		},
	}}

	out := RenderPolls(state, "m-2")
	assert.Contains(t, out, "2 votes from 1 voter")
}

func TestRenderPollsSliderTrack(t *testing.T) {
	t.Parallel()

	two, eight := 2.0, 8.0
	state := dashboardState()
	state.Polls = []domain.Poll{{
		ID:       "p3",
		Type:     domain.PollTypeSlider,
		Question: "Vibe?",
		Slider: &domain.SliderConfig{
			LeftLabel:  "Relaxed",
			RightLabel: "Adventurous",
			Min:        0,
			Max:        10,
		},
		IsOpen: false,
		Votes: []domain.Vote{
			{MemberID: "m-1", MemberName: "Ana", Value: &two},
			{MemberID: "m-2", MemberName: "Ben", Value: &eight},
		},
	}}

	out := RenderPolls(state, "m-1")

	assert.Contains(t, out, "[preference slider] closed")
	assert.Contains(t, out, "Relaxed ←→ Adventurous")
	assert.Contains(t, out, "average: 5.0 (2 votes)")
	assert.Contains(t, out, "Ana: 2")
	assert.Contains(t, out, "|")
}

func TestRenderPollsEmpty(t *testing.T) {
	t.Parallel()

	assert.Contains(t, RenderPolls(dashboardState(), "m-1"), "No polls yet")
}

func TestRenderPlan(t *testing.T) {
	t.Parallel()

	price := 120.0
	plan := &domain.Plan{
		PlanVersionID: "pv-1",
		VersionNum:    2,
		Options: []domain.Option{{
			ID:          "opt-a",
			Title:       "Stowe Escape",
			Destination: "Stowe, VT",
			DateWindow:  "Mar 6-8",
			Summary:     "Ski days with a spa evening",
			Itinerary: []domain.ItineraryBlock{
				{Day: 1, Time: "morning", Title: "Drive up", Description: "Rental van from the city"},
			},
			Costs:       map[string]float64{"lodging": 400, "lift": 150},
			Transport:   []domain.TransportLeg{{Mode: "van", Details: "rental", PriceEstimate: &price}},
			PackingList: []string{"goggles", "layers"},
			Rationale:   "Closest mountain with everyone's dates free",
		}},
	}

	out := RenderPlan(plan)

	assert.Contains(t, out, "Plan v2")
	assert.Contains(t, out, "Stowe Escape • Stowe, VT")
	assert.Contains(t, out, "day 1 morning: Drive up")
	assert.Contains(t, out, "Rental van from the city")
	assert.Contains(t, out, "costs: lift 150, lodging 400 (total 550)")
	assert.Contains(t, out, "van: rental (~120)")
	assert.Contains(t, out, "pack: goggles, layers")
	assert.Contains(t, out, "why: Closest mountain")
}

func TestRenderPlanNil(t *testing.T) {
	t.Parallel()

	assert.Contains(t, RenderPlan(nil), "No plan generated yet")
}

func TestRenderBarWidths(t *testing.T) {
	t.Parallel()

	s := newStyles()
	assert.Equal(t, "[====--------]", renderBar(33, 12, s))
	assert.Equal(t, "[------------]", renderBar(0, 12, s))
	assert.Equal(t, "[============]", renderBar(100, 12, s))
	assert.Empty(t, renderBar(50, 0, s))
}

func TestRenderTrackMarkerPosition(t *testing.T) {
	t.Parallel()

	s := newStyles()
	assert.Equal(t, "[|----------]", renderTrack(0, 11, s))
	assert.Equal(t, "[-----|-----]", renderTrack(50, 11, s))
	assert.Equal(t, "[----------|]", renderTrack(100, 11, s))
}
