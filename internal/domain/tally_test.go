package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionTalliesCountVotesAndDistinctVoters(t *testing.T) {
	t.Parallel()

	poll := Poll{
		ID:   "p1",
		Type: PollTypeMulti,
		Options: []PollOption{
			{ID: "a", Label: "Hike"},
			{ID: "b", Label: "Spa"},
		},
		Votes: []Vote{
			{MemberID: "m-1", MemberName: "Ana", OptionID: "a"},
			{MemberID: "m-2", MemberName: "Ben", OptionID: "a"},
			// Duplicate record from the same member counts as a vote but
			// not as another voter.
			{MemberID: "m-1", MemberName: "Ana", OptionID: "a"},
		},
	}

	tallies := poll.OptionTallies()
	require.Len(t, tallies, 2)

	assert.Equal(t, "a", tallies[0].OptionID)
	assert.Equal(t, 3, tallies[0].Votes)
	assert.Equal(t, 2, tallies[0].Voters)
	assert.Equal(t, []string{"Ana", "Ben", "Ana"}, tallies[0].VoterNames)

	assert.Equal(t, 0, tallies[1].Votes)
	assert.Equal(t, 0, tallies[1].Voters)
	assert.Empty(t, tallies[1].VoterNames)
}

func TestPercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 50.0, Percent(1, 2))
	assert.Equal(t, 0.0, Percent(0, 0))
	// A zero total never divides by zero, and the result stays in range.
	assert.Equal(t, 100.0, Percent(3, 0))
	assert.Equal(t, 100.0, Percent(5, 3))
	assert.Equal(t, 0.0, Percent(-1, 4))
}

func TestSliderTallyAveragesValues(t *testing.T) {
	t.Parallel()

	two, eight := 2.0, 8.0
	poll := Poll{
		ID:   "p1",
		Type: PollTypeSlider,
		Votes: []Vote{
			{MemberID: "m-1", MemberName: "Ana", Value: &two},
			{MemberID: "m-2", MemberName: "Ben", Value: &eight},
			{MemberID: "m-3", MemberName: "Cleo"}, // no value, ignored
		},
	}

	stats := poll.SliderTally()
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, 5.0, stats.Average)
	require.Len(t, stats.Votes, 2)
	assert.Equal(t, "Ana", stats.Votes[0].MemberName)
}

func TestSliderStatsPosition(t *testing.T) {
	t.Parallel()

	stats := SliderStats{Count: 2, Average: 5}
	assert.Equal(t, 50.0, stats.Position(0, 10))
	assert.Equal(t, 0.0, stats.Position(10, 10))

	// Averages outside the track clamp instead of overflowing.
	assert.Equal(t, 100.0, SliderStats{Average: 15}.Position(0, 10))
	assert.Equal(t, 0.0, SliderStats{Average: -3}.Position(0, 10))
}
