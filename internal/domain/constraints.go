package domain

import "fmt"

type Budget struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// Constraints is a member's availability and preference submission.
type Constraints struct {
	AvailableDates   []string `json:"available_dates"`
	Budget           Budget   `json:"budget"`
	EnergyLevel      int      `json:"energy_level"`
	SocialPreference int      `json:"social_preference"`
	MustHaves        []string `json:"must_haves"`
	MustAvoids       []string `json:"must_avoids"`
	SpecialRequest   string   `json:"special_request,omitempty"`
}

func (c Constraints) Validate() error {
	if c.EnergyLevel < 0 || c.EnergyLevel > 5 {
		return fmt.Errorf("energy level must be between 0 and 5")
	}
	if c.SocialPreference < 0 || c.SocialPreference > 5 {
		return fmt.Errorf("social preference must be between 0 and 5")
	}
	if c.Budget.Min != nil && c.Budget.Max != nil && *c.Budget.Min > *c.Budget.Max {
		return fmt.Errorf("budget min exceeds budget max")
	}
	return nil
}

// Feedback is a member's reaction to one plan option.
type Feedback struct {
	Rating              int      `json:"rating"`
	DislikedActivityIDs []string `json:"disliked_activity_ids"`
	Comment             string   `json:"comment,omitempty"`
}

func (f Feedback) Validate() error {
	if f.Rating < 1 || f.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}
