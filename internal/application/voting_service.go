package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/outthegc/gc-cli/internal/domain"
	"github.com/outthegc/gc-cli/internal/ports"
)

// VotingService stages vote selections per poll and submits them against the
// backend. Drafts are local only: they never feed tally computations and are
// discarded on successful submission, after which the next snapshot is
// authoritative.
type VotingService struct {
	api  ports.TripAPI
	sync *SyncService

	mu       sync.Mutex
	single   map[string]string
	multi    map[string]map[string]struct{}
	slider   map[string]float64
	inFlight map[string]bool
}

func NewVotingService(api ports.TripAPI, sync *SyncService) *VotingService {
	return &VotingService{
		api:      api,
		sync:     sync,
		single:   map[string]string{},
		multi:    map[string]map[string]struct{}{},
		slider:   map[string]float64{},
		inFlight: map[string]bool{},
	}
}

// ObserveSnapshot seeds slider drafts at the range midpoint the first time a
// slider poll is seen. Existing drafts survive refreshes untouched.
func (v *VotingService) ObserveSnapshot(state *domain.TripState) {
	if state == nil {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	for _, poll := range state.Polls {
		if poll.Type != domain.PollTypeSlider || poll.Slider == nil {
			continue
		}
		if _, ok := v.slider[poll.ID]; ok {
			continue
		}
		v.slider[poll.ID] = poll.Slider.Midpoint()
	}
}

// SelectSingle stages the single-choice selection for a poll. The staged
// value replaces any previous one; nothing is sent until SubmitSingle.
func (v *VotingService) SelectSingle(pollID, optionID string) error {
	poll, err := v.votablePoll(pollID)
	if err != nil {
		return err
	}
	if _, ok := poll.OptionByID(optionID); !ok {
		return fmt.Errorf("%w: %s", domain.ErrOptionNotFound, optionID)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.single[pollID] = optionID
	return nil
}

// ToggleMulti flips one option in the staged multi-choice set.
func (v *VotingService) ToggleMulti(pollID, optionID string) error {
	poll, err := v.votablePoll(pollID)
	if err != nil {
		return err
	}
	if _, ok := poll.OptionByID(optionID); !ok {
		return fmt.Errorf("%w: %s", domain.ErrOptionNotFound, optionID)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	set := v.multi[pollID]
	if set == nil {
		set = map[string]struct{}{}
		v.multi[pollID] = set
	}
	if _, ok := set[optionID]; ok {
		delete(set, optionID)
	} else {
		set[optionID] = struct{}{}
	}
	return nil
}

// SetSliderValue stages the slider draft. Values outside the configured range
// are rejected before any request is dispatched.
func (v *VotingService) SetSliderValue(pollID string, value float64) error {
	poll, err := v.votablePoll(pollID)
	if err != nil {
		return err
	}
	if poll.Slider == nil {
		return fmt.Errorf("poll %q is not a slider poll", pollID)
	}
	min, max := poll.Slider.Bounds()
	if value < min || value > max {
		return fmt.Errorf("%w: %v not in [%v,%v]", domain.ErrValueOutOfRange, value, min, max)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.slider[pollID] = value
	return nil
}

// SubmitSingle sends exactly one vote request for the staged selection, then
// clears the draft and refreshes the snapshot.
func (v *VotingService) SubmitSingle(ctx context.Context, pollID string) error {
	if _, err := v.votablePoll(pollID); err != nil {
		return err
	}

	v.mu.Lock()
	optionID := v.single[pollID]
	v.mu.Unlock()
	if optionID == "" {
		return domain.ErrNothingSelected
	}

	if err := v.begin(pollID); err != nil {
		return err
	}
	defer v.end(pollID)

	if err := v.api.Vote(ctx, v.sync.TripID(), pollID, ports.VoteParams{
		MemberID: v.sync.MemberID(),
		OptionID: optionID,
	}); err != nil {
		return fmt.Errorf("submit vote: %w", err)
	}

	v.mu.Lock()
	delete(v.single, pollID)
	v.mu.Unlock()

	if err := v.sync.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh after vote: %w", err)
	}
	return nil
}

// SubmitMulti sends one vote request per staged option, sequentially in poll
// option order. A mid-sequence failure stops the loop and keeps the draft;
// already-submitted votes are not rolled back.
func (v *VotingService) SubmitMulti(ctx context.Context, pollID string) error {
	poll, err := v.votablePoll(pollID)
	if err != nil {
		return err
	}

	// Iterate over a copy: ToggleMulti can mutate the staged set while the
	// submission requests are in flight.
	v.mu.Lock()
	staged := make(map[string]struct{}, len(v.multi[pollID]))
	for id := range v.multi[pollID] {
		staged[id] = struct{}{}
	}
	v.mu.Unlock()
	if len(staged) == 0 {
		return domain.ErrNothingSelected
	}

	if err := v.begin(pollID); err != nil {
		return err
	}
	defer v.end(pollID)

	for _, option := range poll.Options {
		if _, ok := staged[option.ID]; !ok {
			continue
		}
		if err := v.api.Vote(ctx, v.sync.TripID(), pollID, ports.VoteParams{
			MemberID: v.sync.MemberID(),
			OptionID: option.ID,
		}); err != nil {
			return fmt.Errorf("submit vote for option %q: %w", option.Label, err)
		}
	}

	v.mu.Lock()
	delete(v.multi, pollID)
	v.mu.Unlock()

	if err := v.sync.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh after vote: %w", err)
	}
	return nil
}

// SubmitSlider sends one vote request carrying the staged numeric value,
// defaulting to the range midpoint when nothing was staged yet.
func (v *VotingService) SubmitSlider(ctx context.Context, pollID string) error {
	poll, err := v.votablePoll(pollID)
	if err != nil {
		return err
	}
	if poll.Slider == nil {
		return fmt.Errorf("poll %q is not a slider poll", pollID)
	}

	v.mu.Lock()
	value, ok := v.slider[pollID]
	v.mu.Unlock()
	if !ok {
		value = poll.Slider.Midpoint()
	}

	min, max := poll.Slider.Bounds()
	if value < min || value > max {
		return fmt.Errorf("%w: %v not in [%v,%v]", domain.ErrValueOutOfRange, value, min, max)
	}

	if err := v.begin(pollID); err != nil {
		return err
	}
	defer v.end(pollID)

	if err := v.api.Vote(ctx, v.sync.TripID(), pollID, ports.VoteParams{
		MemberID: v.sync.MemberID(),
		Value:    &value,
	}); err != nil {
		return fmt.Errorf("submit vote: %w", err)
	}

	v.mu.Lock()
	delete(v.slider, pollID)
	v.mu.Unlock()

	if err := v.sync.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh after vote: %w", err)
	}
	return nil
}

func (v *VotingService) SingleSelection(pollID string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.single[pollID]
}

// MultiSelection returns the staged options in poll option order.
func (v *VotingService) MultiSelection(pollID string) []string {
	state := v.sync.Snapshot()

	v.mu.Lock()
	staged := make(map[string]struct{}, len(v.multi[pollID]))
	for id := range v.multi[pollID] {
		staged[id] = struct{}{}
	}
	v.mu.Unlock()
	if len(staged) == 0 || state == nil {
		return nil
	}

	poll, ok := state.PollByID(pollID)
	if !ok {
		return nil
	}

	selected := make([]string, 0, len(staged))
	for _, option := range poll.Options {
		if _, ok := staged[option.ID]; ok {
			selected = append(selected, option.ID)
		}
	}
	return selected
}

func (v *VotingService) SliderValue(pollID string) (float64, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	value, ok := v.slider[pollID]
	return value, ok
}

func (v *VotingService) InFlight(pollID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.inFlight[pollID]
}

// votablePoll resolves the poll from the current snapshot and applies the
// guards shared by every vote path: poll open, member has not voted yet.
func (v *VotingService) votablePoll(pollID string) (domain.Poll, error) {
	if v.sync.TripID() == "" {
		return domain.Poll{}, domain.ErrNoActiveTrip
	}
	state := v.sync.Snapshot()
	if state == nil {
		return domain.Poll{}, domain.ErrNoSnapshot
	}
	poll, ok := state.PollByID(pollID)
	if !ok {
		return domain.Poll{}, fmt.Errorf("%w: %s", domain.ErrPollNotFound, pollID)
	}
	if !poll.IsOpen {
		return domain.Poll{}, domain.ErrPollClosed
	}
	if poll.HasVoted(v.sync.MemberID()) {
		return domain.Poll{}, domain.ErrAlreadyVoted
	}
	return poll, nil
}

// begin marks the poll's submission as in flight. It is a re-entrancy guard
// scoped per poll id, so unrelated polls remain interactive.
func (v *VotingService) begin(pollID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.inFlight[pollID] {
		return fmt.Errorf("%w: %s", domain.ErrVoteInFlight, pollID)
	}
	v.inFlight[pollID] = true
	return nil
}

func (v *VotingService) end(pollID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.inFlight, pollID)
}
