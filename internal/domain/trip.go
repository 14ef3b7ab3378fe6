package domain

import "fmt"

type Role string

const (
	RoleOrganiser Role = "organiser"
	RoleMember    Role = "member"
)

// SessionSchemaVersion is bumped whenever the persisted session shape
// changes. A stored session with a different version is treated as absent.
const SessionSchemaVersion = 1

type Session struct {
	TripID   string
	MemberID string
	Version  int
}

type Trip struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Origin            string   `json:"origin"`
	Brief             string   `json:"brief,omitempty"`
	OrganiserMemberID string   `json:"organiser_member_id"`
	RequiredMemberIDs []string `json:"required_member_ids"`
}

type Member struct {
	ID                      string `json:"id"`
	Name                    string `json:"name"`
	Role                    Role   `json:"role"`
	HasSubmittedConstraints bool   `json:"has_submitted_constraints"`
}

// TripState is the server-authoritative snapshot. It is replaced wholesale on
// every successful fetch and must never be mutated by readers.
type TripState struct {
	Trip       Trip     `json:"trip"`
	Members    []Member `json:"members"`
	Polls      []Poll   `json:"polls"`
	LatestPlan *Plan    `json:"latest_plan,omitempty"`
}

func (s TripState) MemberByID(id string) (Member, bool) {
	for _, member := range s.Members {
		if member.ID == id {
			return member, true
		}
	}
	return Member{}, false
}

func (s TripState) IsOrganiser(memberID string) bool {
	member, ok := s.MemberByID(memberID)
	return ok && member.Role == RoleOrganiser
}

func (s TripState) PollByID(id string) (Poll, bool) {
	for _, poll := range s.Polls {
		if poll.ID == id {
			return poll, true
		}
	}
	return Poll{}, false
}

func (s TripState) Validate() error {
	organisers := 0
	memberIDs := make(map[string]struct{}, len(s.Members))
	for _, member := range s.Members {
		memberIDs[member.ID] = struct{}{}
		if member.Role == RoleOrganiser {
			organisers++
			if member.ID != s.Trip.OrganiserMemberID {
				return fmt.Errorf("organiser member %q does not match trip organiser %q", member.ID, s.Trip.OrganiserMemberID)
			}
		}
	}
	if organisers != 1 {
		return fmt.Errorf("expected exactly one organiser, found %d", organisers)
	}

	for _, id := range s.Trip.RequiredMemberIDs {
		if _, ok := memberIDs[id]; !ok {
			return fmt.Errorf("required member %q is not a trip member", id)
		}
	}

	for _, poll := range s.Polls {
		if err := poll.Validate(); err != nil {
			return fmt.Errorf("poll %q: %w", poll.ID, err)
		}
	}

	return nil
}
