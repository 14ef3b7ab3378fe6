package domain

// OptionTally aggregates the vote records for one poll option. Votes counts
// raw records, Voters counts distinct members; for multi-choice polls the two
// can differ and both are kept.
type OptionTally struct {
	OptionID   string
	Label      string
	Votes      int
	Voters     int
	VoterNames []string
}

// OptionTallies derives per-option tallies from the raw vote list, in poll
// option order.
func (p Poll) OptionTallies() []OptionTally {
	tallies := make([]OptionTally, 0, len(p.Options))
	for _, option := range p.Options {
		tally := OptionTally{OptionID: option.ID, Label: option.Label}
		seen := map[string]struct{}{}
		for _, vote := range p.Votes {
			if vote.OptionID != option.ID {
				continue
			}
			tally.Votes++
			tally.VoterNames = append(tally.VoterNames, vote.MemberName)
			if _, ok := seen[vote.MemberID]; !ok {
				seen[vote.MemberID] = struct{}{}
				tally.Voters++
			}
		}
		tallies = append(tallies, tally)
	}
	return tallies
}

// TotalVotes is the raw number of vote records on the poll.
func (p Poll) TotalVotes() int {
	return len(p.Votes)
}

// Percent returns count/total as a percentage clamped to [0,100]. A zero
// total yields 0 rather than dividing by zero.
func Percent(count, total int) float64 {
	if total < 1 {
		total = 1
	}
	return clampPercent(float64(count) / float64(total) * 100)
}

type SliderVote struct {
	MemberName string
	Value      float64
}

type SliderStats struct {
	Count   int
	Average float64
	Votes   []SliderVote
}

// SliderTally averages the numeric votes on a slider poll. Records without a
// value are ignored.
func (p Poll) SliderTally() SliderStats {
	stats := SliderStats{}
	sum := 0.0
	for _, vote := range p.Votes {
		if vote.Value == nil {
			continue
		}
		stats.Count++
		sum += *vote.Value
		stats.Votes = append(stats.Votes, SliderVote{MemberName: vote.MemberName, Value: *vote.Value})
	}
	if stats.Count > 0 {
		stats.Average = sum / float64(stats.Count)
	}
	return stats
}

// Position maps the average onto the slider track as a percentage in [0,100].
func (s SliderStats) Position(min, max float64) float64 {
	if max <= min {
		return 0
	}
	return clampPercent((s.Average - min) / (max - min) * 100)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
