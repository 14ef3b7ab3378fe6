// Package api implements the TripAPI port against the trip-planning
// backend's REST surface.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/outthegc/gc-cli/internal/domain"
	"github.com/outthegc/gc-cli/internal/ports"
)

const maxResponseBytes = 1 << 20

type Client struct {
	baseURL      string
	httpClient   *http.Client
	newRequestID func() string
}

var _ ports.TripAPI = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   httpClient,
		newRequestID: uuid.NewString,
	}
}

// StatusError is a non-2xx backend response. Detail carries the backend's
// `detail` field when present, else the raw body.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message())
}

// Message is the user-facing error text, with a generic fallback when the
// backend gave none.
func (e *StatusError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "request failed"
}

type createTripRequest struct {
	Name          string `json:"name"`
	Origin        string `json:"origin"`
	Brief         string `json:"brief,omitempty"`
	OrganiserName string `json:"organiser_name"`
}

type createTripResponse struct {
	TripID            string `json:"trip_id"`
	OrganiserMemberID string `json:"organiser_member_id"`
}

func (c *Client) CreateTrip(ctx context.Context, params ports.CreateTripParams) (ports.CreateTripResult, error) {
	var response createTripResponse
	err := c.do(ctx, http.MethodPost, "/trips", createTripRequest{
		Name:          params.Name,
		Origin:        params.Origin,
		Brief:         params.Brief,
		OrganiserName: params.OrganiserName,
	}, &response)
	if err != nil {
		return ports.CreateTripResult{}, err
	}

	return ports.CreateTripResult{
		TripID:            response.TripID,
		OrganiserMemberID: response.OrganiserMemberID,
	}, nil
}

func (c *Client) JoinTrip(ctx context.Context, tripID, name string) (string, error) {
	var response struct {
		MemberID string `json:"member_id"`
	}
	err := c.do(ctx, http.MethodPost, c.tripPath(tripID, "join"), map[string]string{"name": name}, &response)
	if err != nil {
		return "", err
	}
	return response.MemberID, nil
}

func (c *Client) GetTrip(ctx context.Context, tripID string) (domain.TripState, error) {
	var state domain.TripState
	if err := c.do(ctx, http.MethodGet, c.tripPath(tripID), nil, &state); err != nil {
		return domain.TripState{}, err
	}
	return state, nil
}

func (c *Client) UpdateBrief(ctx context.Context, tripID, brief string) error {
	return c.do(ctx, http.MethodPut, c.tripPath(tripID, "brief"), map[string]string{"brief": brief}, nil)
}

func (c *Client) SetRequiredAttendees(ctx context.Context, tripID string, memberIDs []string) error {
	body := map[string][]string{"required_member_ids": memberIDs}
	return c.do(ctx, http.MethodPut, c.tripPath(tripID, "required-attendees"), body, nil)
}

func (c *Client) SubmitConstraints(ctx context.Context, tripID, memberID string, constraints domain.Constraints) error {
	return c.do(ctx, http.MethodPut, c.tripPath(tripID, "members", memberID, "constraints"), constraints, nil)
}

type createPollRequest struct {
	CreatedByMemberID string               `json:"created_by_member_id"`
	Type              domain.PollType      `json:"type"`
	Question          string               `json:"question"`
	Options           []pollOptionInput    `json:"options,omitempty"`
	Slider            *domain.SliderConfig `json:"slider,omitempty"`
}

type pollOptionInput struct {
	Label string `json:"label"`
}

func (c *Client) CreatePoll(ctx context.Context, tripID string, params ports.CreatePollParams) (domain.Poll, error) {
	request := createPollRequest{
		CreatedByMemberID: params.CreatedByMemberID,
		Type:              params.Type,
		Question:          params.Question,
		Slider:            params.Slider,
	}
	for _, label := range params.OptionLabels {
		request.Options = append(request.Options, pollOptionInput{Label: label})
	}

	var poll domain.Poll
	if err := c.do(ctx, http.MethodPost, c.tripPath(tripID, "polls"), request, &poll); err != nil {
		return domain.Poll{}, err
	}
	return poll, nil
}

type voteRequest struct {
	MemberID string   `json:"member_id"`
	OptionID string   `json:"option_id,omitempty"`
	Value    *float64 `json:"value,omitempty"`
}

func (c *Client) Vote(ctx context.Context, tripID, pollID string, params ports.VoteParams) error {
	return c.do(ctx, http.MethodPost, c.tripPath(tripID, "polls", pollID, "vote"), voteRequest{
		MemberID: params.MemberID,
		OptionID: params.OptionID,
		Value:    params.Value,
	}, nil)
}

func (c *Client) ClosePoll(ctx context.Context, tripID, pollID, memberID string) error {
	body := map[string]string{"member_id": memberID}
	return c.do(ctx, http.MethodPost, c.tripPath(tripID, "polls", pollID, "close"), body, nil)
}

type generateOptionsRequest struct {
	CreatedByMemberID string `json:"created_by_member_id"`
	DurationDays      int    `json:"duration_days,omitempty"`
}

func (c *Client) GenerateOptions(ctx context.Context, tripID string, params ports.GenerateOptionsParams) error {
	return c.do(ctx, http.MethodPost, c.tripPath(tripID, "generate-options"), generateOptionsRequest{
		CreatedByMemberID: params.CreatedByMemberID,
		DurationDays:      params.DurationDays,
	}, nil)
}

func (c *Client) RerunOptions(ctx context.Context, tripID, memberID string) error {
	body := map[string]string{"created_by_member_id": memberID}
	return c.do(ctx, http.MethodPost, c.tripPath(tripID, "rerun-options"), body, nil)
}

type feedbackRequest struct {
	MemberID            string   `json:"member_id"`
	Rating              int      `json:"rating"`
	DislikedActivityIDs []string `json:"disliked_activity_ids"`
	Comment             string   `json:"comment,omitempty"`
}

func (c *Client) SubmitFeedback(ctx context.Context, tripID, optionID string, params ports.FeedbackParams) error {
	return c.do(ctx, http.MethodPost, c.tripPath(tripID, "options", optionID, "feedback"), feedbackRequest{
		MemberID:            params.MemberID,
		Rating:              params.Feedback.Rating,
		DislikedActivityIDs: params.Feedback.DislikedActivityIDs,
		Comment:             params.Feedback.Comment,
	}, nil)
}

func (c *Client) tripPath(tripID string, segments ...string) string {
	parts := append([]string{"trips", tripID}, segments...)
	escaped := make([]string, len(parts))
	for i, part := range parts {
		escaped[i] = url.PathEscape(part)
	}
	return "/" + strings.Join(escaped, "/")
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("X-Request-Id", c.newRequestID())

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &StatusError{
			StatusCode: response.StatusCode,
			Detail:     extractDetail(payload),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func extractDetail(payload []byte) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(payload, &body); err == nil && body.Detail != "" {
		return body.Detail
	}
	return strings.TrimSpace(string(payload))
}
