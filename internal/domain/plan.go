package domain

// Plan is the latest AI-generated plan version attached to a trip. The
// backend owns its lifecycle; the client only reads it and submits feedback.
type Plan struct {
	PlanVersionID string   `json:"plan_version_id"`
	VersionNum    int      `json:"version_num"`
	Options       []Option `json:"options"`
}

type ItineraryBlock struct {
	ID          string `json:"id"`
	Day         int    `json:"day"`
	Time        string `json:"time"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type TransportLeg struct {
	Mode          string   `json:"mode"`
	Details       string   `json:"details"`
	PriceEstimate *float64 `json:"price_estimate,omitempty"`
}

type Option struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Destination string             `json:"destination"`
	DateWindow  string             `json:"date_window"`
	Summary     string             `json:"summary"`
	Itinerary   []ItineraryBlock   `json:"itinerary"`
	Costs       map[string]float64 `json:"costs"`
	PackingList []string           `json:"packing_list"`
	Transport   []TransportLeg     `json:"transport"`
	Rationale   string             `json:"rationale"`
}

func (p Plan) OptionByID(id string) (Option, bool) {
	for _, option := range p.Options {
		if option.ID == id {
			return option, true
		}
	}
	return Option{}, false
}
