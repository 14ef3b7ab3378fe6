package domain

import (
	"fmt"
	"math"
)

type PollType string

const (
	PollTypeSingle PollType = "single"
	PollTypeMulti  PollType = "multi"
	PollTypeSlider PollType = "slider"
)

func (t PollType) Valid() bool {
	switch t {
	case PollTypeSingle, PollTypeMulti, PollTypeSlider:
		return true
	default:
		return false
	}
}

type PollOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type SliderConfig struct {
	Title      string  `json:"title,omitempty"`
	LeftLabel  string  `json:"left_label"`
	RightLabel string  `json:"right_label"`
	Min        float64 `json:"min,omitempty"`
	Max        float64 `json:"max,omitempty"`
	Step       float64 `json:"step,omitempty"`
}

// Bounds returns the effective slider range, falling back to 0..100 when the
// backend omits the limits.
func (c SliderConfig) Bounds() (float64, float64) {
	if c.Max <= c.Min {
		return 0, 100
	}
	return c.Min, c.Max
}

func (c SliderConfig) EffectiveStep() float64 {
	if c.Step <= 0 {
		return 1
	}
	return c.Step
}

// Midpoint is the initial draft value for a slider poll.
func (c SliderConfig) Midpoint() float64 {
	min, max := c.Bounds()
	return math.Round((min + max) / 2)
}

type Vote struct {
	MemberID   string   `json:"member_id"`
	MemberName string   `json:"member_name"`
	OptionID   string   `json:"option_id,omitempty"`
	Value      *float64 `json:"value,omitempty"`
}

// Poll is a decision-gathering construct. Once closed it never reopens.
type Poll struct {
	ID       string        `json:"id"`
	Type     PollType      `json:"type"`
	Question string        `json:"question"`
	Options  []PollOption  `json:"options,omitempty"`
	Slider   *SliderConfig `json:"slider,omitempty"`
	IsOpen   bool          `json:"is_open"`
	Votes    []Vote        `json:"votes"`
}

func (p Poll) Validate() error {
	if !p.Type.Valid() {
		return fmt.Errorf("unsupported poll type %q", p.Type)
	}
	if p.Question == "" {
		return fmt.Errorf("question is required")
	}

	switch p.Type {
	case PollTypeSlider:
		if p.Slider == nil {
			return fmt.Errorf("slider config is required")
		}
		if p.Slider.LeftLabel == "" || p.Slider.RightLabel == "" {
			return fmt.Errorf("slider left and right labels are required")
		}
	default:
		if len(p.Options) < 2 {
			return fmt.Errorf("at least 2 options are required")
		}
	}

	return nil
}

func (p Poll) OptionByID(id string) (PollOption, bool) {
	for _, option := range p.Options {
		if option.ID == id {
			return option, true
		}
	}
	return PollOption{}, false
}

// HasVoted reports whether the member has any vote record on the poll,
// independent of option or value. It gates the entire voting surface.
func (p Poll) HasVoted(memberID string) bool {
	for _, vote := range p.Votes {
		if vote.MemberID == memberID {
			return true
		}
	}
	return false
}

func (p Poll) VotesBy(memberID string) []Vote {
	var votes []Vote
	for _, vote := range p.Votes {
		if vote.MemberID == memberID {
			votes = append(votes, vote)
		}
	}
	return votes
}
