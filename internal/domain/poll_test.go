package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPollValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		poll    Poll
		wantErr string
	}{
		{
			name: "valid single",
			poll: Poll{
				ID:       "p1",
				Type:     PollTypeSingle,
				Question: "Where?",
				Options:  []PollOption{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}},
			},
		},
		{
			name:    "unknown type",
			poll:    Poll{ID: "p1", Type: "ranked", Question: "Where?"},
			wantErr: "unsupported poll type",
		},
		{
			name:    "missing question",
			poll:    Poll{ID: "p1", Type: PollTypeSingle, Options: []PollOption{{ID: "a"}, {ID: "b"}}},
			wantErr: "question is required",
		},
		{
			name:    "single option choice poll",
			poll:    Poll{ID: "p1", Type: PollTypeMulti, Question: "Which?", Options: []PollOption{{ID: "a"}}},
			wantErr: "at least 2 options",
		},
		{
			name:    "slider without config",
			poll:    Poll{ID: "p1", Type: PollTypeSlider, Question: "Vibe?"},
			wantErr: "slider config is required",
		},
		{
			name: "slider without labels",
			poll: Poll{
				ID: "p1", Type: PollTypeSlider, Question: "Vibe?",
				Slider: &SliderConfig{LeftLabel: "Chill"},
			},
			wantErr: "labels are required",
		},
		{
			name: "valid slider",
			poll: Poll{
				ID: "p1", Type: PollTypeSlider, Question: "Vibe?",
				Slider: &SliderConfig{LeftLabel: "Chill", RightLabel: "Wild"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.poll.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}

func TestSliderConfigBounds(t *testing.T) {
	t.Parallel()

	min, max := SliderConfig{Min: 1, Max: 10}.Bounds()
	assert.Equal(t, 1.0, min)
	assert.Equal(t, 10.0, max)

	// Omitted or inverted limits fall back to the default track.
	min, max = SliderConfig{}.Bounds()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 100.0, max)

	min, max = SliderConfig{Min: 10, Max: 2}.Bounds()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 100.0, max)
}

func TestSliderConfigMidpoint(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 50.0, SliderConfig{}.Midpoint())
	assert.Equal(t, 5.0, SliderConfig{Min: 0, Max: 10}.Midpoint())
	assert.Equal(t, 6.0, SliderConfig{Min: 1, Max: 10}.Midpoint())
}

func TestSliderConfigEffectiveStep(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, SliderConfig{}.EffectiveStep())
	assert.Equal(t, 0.5, SliderConfig{Step: 0.5}.EffectiveStep())
	assert.Equal(t, 1.0, SliderConfig{Step: -2}.EffectiveStep())
}

func TestHasVotedIgnoresOptionAndValue(t *testing.T) {
	t.Parallel()

	value := 4.0
	poll := Poll{
		ID:   "p1",
		Type: PollTypeSlider,
		Votes: []Vote{
			{MemberID: "m-1", MemberName: "Ana", Value: &value},
		},
	}

	assert.True(t, poll.HasVoted("m-1"))
	assert.False(t, poll.HasVoted("m-2"))
}

func TestVotesByReturnsAllRecordsForMember(t *testing.T) {
	t.Parallel()

	poll := Poll{
		ID:   "p1",
		Type: PollTypeMulti,
		Votes: []Vote{
			{MemberID: "m-1", OptionID: "a"},
			{MemberID: "m-2", OptionID: "a"},
			{MemberID: "m-1", OptionID: "b"},
		},
	}

	votes := poll.VotesBy("m-1")
	assert.Len(t, votes, 2)
	assert.Empty(t, poll.VotesBy("m-9"))
}
