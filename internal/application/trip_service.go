package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/outthegc/gc-cli/internal/domain"
	"github.com/outthegc/gc-cli/internal/ports"
)

// TripService wraps the trip-level mutations and keeps the persisted session
// in step with them.
type TripService struct {
	api      ports.TripAPI
	sessions ports.SessionStore
}

func NewTripService(api ports.TripAPI, sessions ports.SessionStore) *TripService {
	return &TripService{api: api, sessions: sessions}
}

// Create creates a trip and persists the organiser's session.
func (s *TripService) Create(ctx context.Context, cmd CreateTripCommand) (domain.Session, error) {
	if err := cmd.Validate(); err != nil {
		return domain.Session{}, err
	}

	result, err := s.api.CreateTrip(ctx, ports.CreateTripParams{
		Name:          strings.TrimSpace(cmd.Name),
		Origin:        strings.TrimSpace(cmd.Origin),
		Brief:         strings.TrimSpace(cmd.Brief),
		OrganiserName: strings.TrimSpace(cmd.OrganiserName),
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("create trip: %w", err)
	}

	session := domain.Session{
		TripID:   result.TripID,
		MemberID: result.OrganiserMemberID,
		Version:  domain.SessionSchemaVersion,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}

	return session, nil
}

// Join joins an existing trip and persists the new member's session.
func (s *TripService) Join(ctx context.Context, cmd JoinTripCommand) (domain.Session, error) {
	if err := cmd.Validate(); err != nil {
		return domain.Session{}, err
	}

	memberID, err := s.api.JoinTrip(ctx, strings.TrimSpace(cmd.TripID), strings.TrimSpace(cmd.Name))
	if err != nil {
		return domain.Session{}, fmt.Errorf("join trip: %w", err)
	}

	session := domain.Session{
		TripID:   strings.TrimSpace(cmd.TripID),
		MemberID: memberID,
		Version:  domain.SessionSchemaVersion,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}

	return session, nil
}

// Resume loads the persisted session, if any.
func (s *TripService) Resume(ctx context.Context) (domain.Session, error) {
	return s.sessions.Load(ctx)
}

// Leave clears the persisted session. The trip itself is untouched.
func (s *TripService) Leave(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *TripService) UpdateBrief(ctx context.Context, tripID, brief string) error {
	if err := s.api.UpdateBrief(ctx, tripID, brief); err != nil {
		return fmt.Errorf("update brief: %w", err)
	}
	return nil
}

func (s *TripService) SetRequiredAttendees(ctx context.Context, tripID string, memberIDs []string) error {
	if err := s.api.SetRequiredAttendees(ctx, tripID, memberIDs); err != nil {
		return fmt.Errorf("set required attendees: %w", err)
	}
	return nil
}

func (s *TripService) SubmitConstraints(ctx context.Context, tripID, memberID string, constraints domain.Constraints) error {
	if err := constraints.Validate(); err != nil {
		return err
	}
	if err := s.api.SubmitConstraints(ctx, tripID, memberID, constraints); err != nil {
		return fmt.Errorf("submit constraints: %w", err)
	}
	return nil
}

func (s *TripService) CreatePoll(ctx context.Context, tripID, memberID string, cmd CreatePollCommand) (domain.Poll, error) {
	if err := cmd.Validate(); err != nil {
		return domain.Poll{}, err
	}

	params := ports.CreatePollParams{
		CreatedByMemberID: memberID,
		Type:              cmd.Type,
		Question:          strings.TrimSpace(cmd.Question),
	}
	if cmd.Type == domain.PollTypeSlider {
		params.Slider = &domain.SliderConfig{
			Title:      strings.TrimSpace(cmd.SliderTitle),
			LeftLabel:  strings.TrimSpace(cmd.LeftLabel),
			RightLabel: strings.TrimSpace(cmd.RightLabel),
		}
	} else {
		params.OptionLabels = cmd.NonEmptyOptions()
	}

	poll, err := s.api.CreatePoll(ctx, tripID, params)
	if err != nil {
		return domain.Poll{}, fmt.Errorf("create poll: %w", err)
	}
	return poll, nil
}

func (s *TripService) ClosePoll(ctx context.Context, tripID, pollID, memberID string) error {
	if err := s.api.ClosePoll(ctx, tripID, pollID, memberID); err != nil {
		return fmt.Errorf("close poll: %w", err)
	}
	return nil
}

func (s *TripService) GenerateOptions(ctx context.Context, tripID, memberID string, durationDays int) error {
	if err := s.api.GenerateOptions(ctx, tripID, ports.GenerateOptionsParams{
		CreatedByMemberID: memberID,
		DurationDays:      durationDays,
	}); err != nil {
		return fmt.Errorf("generate options: %w", err)
	}
	return nil
}

func (s *TripService) RerunOptions(ctx context.Context, tripID, memberID string) error {
	if err := s.api.RerunOptions(ctx, tripID, memberID); err != nil {
		return fmt.Errorf("rerun options: %w", err)
	}
	return nil
}

func (s *TripService) SubmitFeedback(ctx context.Context, tripID, optionID, memberID string, feedback domain.Feedback) error {
	if err := feedback.Validate(); err != nil {
		return err
	}
	if err := s.api.SubmitFeedback(ctx, tripID, optionID, ports.FeedbackParams{
		MemberID: memberID,
		Feedback: feedback,
	}); err != nil {
		return fmt.Errorf("submit feedback: %w", err)
	}
	return nil
}
