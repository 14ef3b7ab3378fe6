// Package trip renders trip state for the terminal.
package trip

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/outthegc/gc-cli/internal/domain"
)

const barWidth = 24

type RenderOptions struct {
	Now          time.Time
	LastSyncedAt time.Time
}

// RenderDashboard shows the trip header, member progress, and a one-line
// summary per poll and plan.
func RenderDashboard(state *domain.TripState, memberID string, opts RenderOptions) string {
	s := newStyles()
	if state == nil {
		return s.empty.Render("Loading trip...")
	}

	lines := []string{
		s.title.Render(state.Trip.Name),
		s.header.Render(fmt.Sprintf("from %s • trip id: %s", state.Trip.Origin, state.Trip.ID)),
		s.meta.Render(fmt.Sprintf("share this id so others can join: gc trip join %s --name <name>", state.Trip.ID)),
	}
	if state.Trip.Brief != "" {
		lines = append(lines, s.detail.Render(state.Trip.Brief))
	}
	if !opts.LastSyncedAt.IsZero() {
		lines = append(lines, s.meta.Render("synced "+syncedAgo(opts.LastSyncedAt, opts.Now)))
	}

	lines = append(lines, s.section.Render(renderMembers(state, memberID, s)))

	openPolls := 0
	for _, poll := range state.Polls {
		if poll.IsOpen {
			openPolls++
		}
	}
	lines = append(lines, s.section.Render(s.detail.Render(
		fmt.Sprintf("polls: %d (%d open)", len(state.Polls), openPolls))))

	if state.LatestPlan != nil {
		lines = append(lines, s.detail.Render(fmt.Sprintf(
			"plan v%d: %d options", state.LatestPlan.VersionNum, len(state.LatestPlan.Options))))
	} else {
		lines = append(lines, s.empty.Render("no plan generated yet"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderMembers(state *domain.TripState, memberID string, s styles) string {
	required := map[string]struct{}{}
	for _, id := range state.Trip.RequiredMemberIDs {
		required[id] = struct{}{}
	}

	lines := []string{s.header.Render(fmt.Sprintf("members: %d", len(state.Members)))}
	for _, member := range state.Members {
		mark := "·"
		if member.HasSubmittedConstraints {
			mark = "✓"
		}
		name := member.Name
		style := s.detail
		if member.Role == domain.RoleOrganiser {
			name += " (organiser)"
		}
		if member.ID == memberID {
			name += " (you)"
			style = s.highlight
		}
		if _, ok := required[member.ID]; ok {
			name += " *"
		}
		lines = append(lines, style.Render(fmt.Sprintf("  %s %s", mark, name)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderPolls draws each poll with its tallies. Tallies are derived from the
// raw vote list on every call; staged drafts never feed them.
func RenderPolls(state *domain.TripState, memberID string) string {
	s := newStyles()
	if state == nil {
		return s.empty.Render("Loading trip...")
	}
	if len(state.Polls) == 0 {
		return s.empty.Render("No polls yet")
	}

	sections := make([]string, 0, len(state.Polls))
	for _, poll := range state.Polls {
		sections = append(sections, s.section.Render(renderPoll(poll, memberID, s)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderPoll(poll domain.Poll, memberID string, s styles) string {
	lines := []string{
		s.question.Render(poll.Question),
		s.badge.Render(fmt.Sprintf("[%s] %s • id: %s", typeLabel(poll.Type), openLabel(poll.IsOpen), poll.ID)),
	}

	if poll.Type == domain.PollTypeSlider {
		lines = append(lines, renderSliderPoll(poll, s)...)
	} else {
		lines = append(lines, renderChoicePoll(poll, s)...)
	}

	status := fmt.Sprintf("%d vote%s total", poll.TotalVotes(), plural(poll.TotalVotes()))
	if poll.HasVoted(memberID) {
		status += fmt.Sprintf(" • you voted (%d)", len(poll.VotesBy(memberID)))
	}
	lines = append(lines, s.meta.Render(status))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderChoicePoll(poll domain.Poll, s styles) []string {
	total := poll.TotalVotes()
	lines := make([]string, 0, len(poll.Options)*2)
	for _, tally := range poll.OptionTallies() {
		percent := domain.Percent(tally.Votes, total)
		counts := fmt.Sprintf("%d vote%s", tally.Votes, plural(tally.Votes))
		if poll.Type == domain.PollTypeMulti && tally.Voters != tally.Votes {
			counts += fmt.Sprintf(" from %d voter%s", tally.Voters, plural(tally.Voters))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			s.detail.Render(fmt.Sprintf("  %-20s ", tally.Label)),
			renderBar(percent, barWidth, s),
			s.detail.Render(fmt.Sprintf(" %3.0f%% • %s", percent, counts)),
		))
		if len(tally.VoterNames) > 0 {
			lines = append(lines, s.meta.Render("    voted: "+strings.Join(tally.VoterNames, ", ")))
		}
	}
	return lines
}

func renderSliderPoll(poll domain.Poll, s styles) []string {
	config := poll.Slider
	if config == nil {
		return []string{s.warning.Render("  slider config missing")}
	}

	min, max := config.Bounds()
	stats := poll.SliderTally()
	lines := []string{
		s.detail.Render(fmt.Sprintf("  %s ←→ %s", config.LeftLabel, config.RightLabel)),
	}
	if config.Title != "" {
		lines = append(lines, s.detail.Render("  "+config.Title))
	}
	lines = append(lines, "  "+renderTrack(stats.Position(min, max), barWidth, s))
	if stats.Count > 0 {
		lines = append(lines, s.detail.Render(fmt.Sprintf("  average: %.1f (%d vote%s)", stats.Average, stats.Count, plural(stats.Count))))
		votes := make([]string, 0, len(stats.Votes))
		for _, vote := range stats.Votes {
			votes = append(votes, fmt.Sprintf("%s: %g", vote.MemberName, vote.Value))
		}
		lines = append(lines, s.meta.Render("    votes: "+strings.Join(votes, ", ")))
	} else {
		lines = append(lines, s.empty.Render("  no votes yet"))
	}
	return lines
}

// RenderPlan draws the latest plan's options in full.
func RenderPlan(plan *domain.Plan) string {
	s := newStyles()
	if plan == nil {
		return s.empty.Render("No plan generated yet")
	}

	lines := []string{s.title.Render(fmt.Sprintf("Plan v%d", plan.VersionNum))}
	for _, option := range plan.Options {
		lines = append(lines, s.section.Render(renderOption(option, s)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderOption(option domain.Option, s styles) string {
	lines := []string{
		s.question.Render(fmt.Sprintf("%s • %s", option.Title, option.Destination)),
		s.badge.Render(fmt.Sprintf("%s • id: %s", option.DateWindow, option.ID)),
		s.detail.Render(option.Summary),
	}

	for _, block := range option.Itinerary {
		lines = append(lines, s.detail.Render(fmt.Sprintf("  day %d %s: %s", block.Day, block.Time, block.Title)))
		if block.Description != "" {
			lines = append(lines, s.meta.Render("    "+block.Description))
		}
	}

	if len(option.Costs) > 0 {
		keys := make([]string, 0, len(option.Costs))
		total := 0.0
		for key, amount := range option.Costs {
			keys = append(keys, key)
			total += amount
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s %.0f", key, option.Costs[key]))
		}
		lines = append(lines, s.detail.Render(fmt.Sprintf("  costs: %s (total %.0f)", strings.Join(parts, ", "), total)))
	}

	for _, leg := range option.Transport {
		transport := fmt.Sprintf("  %s: %s", leg.Mode, leg.Details)
		if leg.PriceEstimate != nil {
			transport += fmt.Sprintf(" (~%.0f)", *leg.PriceEstimate)
		}
		lines = append(lines, s.detail.Render(transport))
	}

	if len(option.PackingList) > 0 {
		lines = append(lines, s.meta.Render("  pack: "+strings.Join(option.PackingList, ", ")))
	}
	if option.Rationale != "" {
		lines = append(lines, s.meta.Render("  why: "+option.Rationale))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * percent / 100))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

// renderTrack draws a slider track with a marker at the average position.
func renderTrack(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	pos := int(math.Round(float64(width-1) * percent / 100))
	if pos < 0 {
		pos = 0
	}
	if pos > width-1 {
		pos = width - 1
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.barBracket.Render("["),
		s.barEmpty.Render(strings.Repeat("-", pos)),
		s.marker.Render("|"),
		s.barEmpty.Render(strings.Repeat("-", width-1-pos)),
		s.barBracket.Render("]"),
	)
}

func syncedAgo(lastSynced, now time.Time) string {
	if now.IsZero() {
		return humanize.Time(lastSynced)
	}
	return humanize.RelTime(lastSynced, now, "ago", "from now")
}

func typeLabel(t domain.PollType) string {
	switch t {
	case domain.PollTypeSingle:
		return "single choice"
	case domain.PollTypeMulti:
		return "multiple choice"
	case domain.PollTypeSlider:
		return "preference slider"
	default:
		return string(t)
	}
}

func openLabel(open bool) string {
	if open {
		return "open"
	}
	return "closed"
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
