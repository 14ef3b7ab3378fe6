package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validTripState() TripState {
	return TripState{
		Trip: Trip{
			ID:                "trip-a",
			Name:              "Ski Trip",
			Origin:            "NYC",
			OrganiserMemberID: "m-1",
			RequiredMemberIDs: []string{"m-1"},
		},
		Members: []Member{
			{ID: "m-1", Name: "Ana", Role: RoleOrganiser},
			{ID: "m-2", Name: "Ben", Role: RoleMember},
		},
	}
}

func TestTripStateValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(*TripState)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*TripState) {},
		},
		{
			name: "no organiser",
			mutate: func(s *TripState) {
				s.Members[0].Role = RoleMember
			},
			wantErr: "exactly one organiser",
		},
		{
			name: "two organisers",
			mutate: func(s *TripState) {
				s.Members[1].Role = RoleOrganiser
			},
			wantErr: "does not match trip organiser",
		},
		{
			name: "organiser id mismatch",
			mutate: func(s *TripState) {
				s.Trip.OrganiserMemberID = "m-9"
			},
			wantErr: "does not match trip organiser",
		},
		{
			name: "required member not in trip",
			mutate: func(s *TripState) {
				s.Trip.RequiredMemberIDs = []string{"m-9"}
			},
			wantErr: "not a trip member",
		},
		{
			name: "invalid poll surfaces with id",
			mutate: func(s *TripState) {
				s.Polls = []Poll{{ID: "p1", Type: PollTypeSingle, Question: "Where?"}}
			},
			wantErr: `poll "p1"`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			state := validTripState()
			tc.mutate(&state)

			err := state.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}

func TestIsOrganiser(t *testing.T) {
	t.Parallel()

	state := validTripState()
	assert.True(t, state.IsOrganiser("m-1"))
	assert.False(t, state.IsOrganiser("m-2"))
	assert.False(t, state.IsOrganiser("m-9"))
}

func TestMemberAndPollLookups(t *testing.T) {
	t.Parallel()

	state := validTripState()
	state.Polls = []Poll{{
		ID: "p1", Type: PollTypeSingle, Question: "Where?",
		Options: []PollOption{{ID: "a"}, {ID: "b"}},
	}}

	member, ok := state.MemberByID("m-2")
	assert.True(t, ok)
	assert.Equal(t, "Ben", member.Name)

	_, ok = state.MemberByID("m-9")
	assert.False(t, ok)

	poll, ok := state.PollByID("p1")
	assert.True(t, ok)
	assert.Equal(t, "Where?", poll.Question)

	_, ok = state.PollByID("p9")
	assert.False(t, ok)
}
