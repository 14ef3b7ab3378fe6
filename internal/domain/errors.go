package domain

import "errors"

var (
	ErrNoSession       = errors.New("no stored session")
	ErrNoActiveTrip    = errors.New("no active trip")
	ErrNoSnapshot      = errors.New("trip state not loaded yet")
	ErrPollNotFound    = errors.New("poll not found")
	ErrOptionNotFound  = errors.New("poll option not found")
	ErrPollClosed      = errors.New("poll is closed")
	ErrAlreadyVoted    = errors.New("member has already voted")
	ErrNothingSelected = errors.New("no option selected")
	ErrValueOutOfRange = errors.New("slider value out of range")
	ErrVoteInFlight    = errors.New("vote submission already in progress")
	ErrNoPlan          = errors.New("no plan generated yet")
)
