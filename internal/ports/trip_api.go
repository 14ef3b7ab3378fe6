package ports

import (
	"context"

	"github.com/outthegc/gc-cli/internal/domain"
)

type CreateTripParams struct {
	Name          string
	Origin        string
	Brief         string
	OrganiserName string
}

type CreateTripResult struct {
	TripID            string
	OrganiserMemberID string
}

type CreatePollParams struct {
	CreatedByMemberID string
	Type              domain.PollType
	Question          string
	OptionLabels      []string
	Slider            *domain.SliderConfig
}

// VoteParams carries exactly one of OptionID (single/multi polls) or Value
// (slider polls).
type VoteParams struct {
	MemberID string
	OptionID string
	Value    *float64
}

type GenerateOptionsParams struct {
	CreatedByMemberID string
	DurationDays      int
}

type FeedbackParams struct {
	MemberID string
	Feedback domain.Feedback
}

// TripAPI is the REST surface of the trip-planning backend, one method per
// documented operation. Calls are single fire-and-forget requests with no
// retry or caching.
type TripAPI interface {
	CreateTrip(ctx context.Context, params CreateTripParams) (CreateTripResult, error)
	JoinTrip(ctx context.Context, tripID, name string) (string, error)
	GetTrip(ctx context.Context, tripID string) (domain.TripState, error)
	UpdateBrief(ctx context.Context, tripID, brief string) error
	SetRequiredAttendees(ctx context.Context, tripID string, memberIDs []string) error
	SubmitConstraints(ctx context.Context, tripID, memberID string, constraints domain.Constraints) error
	CreatePoll(ctx context.Context, tripID string, params CreatePollParams) (domain.Poll, error)
	Vote(ctx context.Context, tripID, pollID string, params VoteParams) error
	ClosePoll(ctx context.Context, tripID, pollID, memberID string) error
	GenerateOptions(ctx context.Context, tripID string, params GenerateOptionsParams) error
	RerunOptions(ctx context.Context, tripID, memberID string) error
	SubmitFeedback(ctx context.Context, tripID, optionID string, params FeedbackParams) error
}
