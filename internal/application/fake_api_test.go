package application

import (
	"context"
	"sync"

	"github.com/outthegc/gc-cli/internal/domain"
	"github.com/outthegc/gc-cli/internal/ports"
)

// fakeTripAPI implements ports.TripAPI with overridable hooks and records
// every vote request in order.
type fakeTripAPI struct {
	mu sync.Mutex

	getTripFn func(ctx context.Context, tripID string) (domain.TripState, error)
	voteFn    func(call int, tripID, pollID string, params ports.VoteParams) error

	createTripResult ports.CreateTripResult
	joinMemberID     string

	votes     []ports.VoteParams
	votePolls []string
}

var _ ports.TripAPI = (*fakeTripAPI)(nil)

func (f *fakeTripAPI) CreateTrip(_ context.Context, _ ports.CreateTripParams) (ports.CreateTripResult, error) {
	return f.createTripResult, nil
}

func (f *fakeTripAPI) JoinTrip(_ context.Context, _, _ string) (string, error) {
	return f.joinMemberID, nil
}

func (f *fakeTripAPI) GetTrip(ctx context.Context, tripID string) (domain.TripState, error) {
	if f.getTripFn != nil {
		return f.getTripFn(ctx, tripID)
	}
	return domain.TripState{}, nil
}

func (f *fakeTripAPI) UpdateBrief(context.Context, string, string) error { return nil }

func (f *fakeTripAPI) SetRequiredAttendees(context.Context, string, []string) error { return nil }

func (f *fakeTripAPI) SubmitConstraints(context.Context, string, string, domain.Constraints) error {
	return nil
}

func (f *fakeTripAPI) CreatePoll(_ context.Context, _ string, params ports.CreatePollParams) (domain.Poll, error) {
	return domain.Poll{ID: "poll-created", Type: params.Type, Question: params.Question, IsOpen: true}, nil
}

func (f *fakeTripAPI) Vote(_ context.Context, tripID, pollID string, params ports.VoteParams) error {
	f.mu.Lock()
	call := len(f.votes)
	f.mu.Unlock()

	if f.voteFn != nil {
		if err := f.voteFn(call, tripID, pollID, params); err != nil {
			return err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.votes = append(f.votes, params)
	f.votePolls = append(f.votePolls, pollID)
	return nil
}

func (f *fakeTripAPI) ClosePoll(context.Context, string, string, string) error { return nil }

func (f *fakeTripAPI) GenerateOptions(context.Context, string, ports.GenerateOptionsParams) error {
	return nil
}

func (f *fakeTripAPI) RerunOptions(context.Context, string, string) error { return nil }

func (f *fakeTripAPI) SubmitFeedback(context.Context, string, string, ports.FeedbackParams) error {
	return nil
}

func (f *fakeTripAPI) recordedVotes() []ports.VoteParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ports.VoteParams(nil), f.votes...)
}

func (f *fakeTripAPI) recordedVotePolls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.votePolls...)
}
