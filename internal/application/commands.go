package application

import (
	"fmt"
	"strings"

	"github.com/outthegc/gc-cli/internal/domain"
)

type CreateTripCommand struct {
	Name          string
	Origin        string
	Brief         string
	OrganiserName string
}

func (c CreateTripCommand) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("trip name is required")
	}
	if strings.TrimSpace(c.Origin) == "" {
		return fmt.Errorf("origin is required")
	}
	if strings.TrimSpace(c.OrganiserName) == "" {
		return fmt.Errorf("organiser name is required")
	}
	return nil
}

type JoinTripCommand struct {
	TripID string
	Name   string
}

func (c JoinTripCommand) Validate() error {
	if strings.TrimSpace(c.TripID) == "" {
		return fmt.Errorf("trip id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("member name is required")
	}
	return nil
}

type CreatePollCommand struct {
	Question     string
	Type         domain.PollType
	OptionLabels []string
	SliderTitle  string
	LeftLabel    string
	RightLabel   string
}

// NonEmptyOptions returns the trimmed option labels with blanks dropped,
// mirroring the create-poll form behavior.
func (c CreatePollCommand) NonEmptyOptions() []string {
	options := make([]string, 0, len(c.OptionLabels))
	for _, label := range c.OptionLabels {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			options = append(options, trimmed)
		}
	}
	return options
}

func (c CreatePollCommand) Validate() error {
	if strings.TrimSpace(c.Question) == "" {
		return fmt.Errorf("question is required")
	}
	if !c.Type.Valid() {
		return fmt.Errorf("unsupported poll type %q", c.Type)
	}

	if c.Type == domain.PollTypeSlider {
		if strings.TrimSpace(c.LeftLabel) == "" || strings.TrimSpace(c.RightLabel) == "" {
			return fmt.Errorf("left and right labels are required")
		}
		return nil
	}

	if len(c.NonEmptyOptions()) < 2 {
		return fmt.Errorf("at least 2 options are required")
	}
	return nil
}
