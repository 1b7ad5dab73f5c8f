package game

type MatchOutcome int

const (
	OutcomeInProgress MatchOutcome = iota
	OutcomeHomeVictory
	OutcomeAwayVictory
	OutcomeDraw
)

func (o MatchOutcome) String() string {
	switch o {
	case OutcomeHomeVictory:
		return "home_victory"
	case OutcomeAwayVictory:
		return "away_victory"
	case OutcomeDraw:
		return "draw"
	case OutcomeInProgress:
		return "in_progress"
	default:
		return "unknown"
	}
}

type MatchOutcomeReason struct {
	Outcome     MatchOutcome
	Home        int
	Away        int
	Ticks       int
	Description string
}

// DetermineMatchOutcome classifies a score. Until the rules declare the match
// finished the outcome is in-progress; freeplay never finishes.
func DetermineMatchOutcome(r Rules, sc Score, ticks int) MatchOutcomeReason {
	reason := MatchOutcomeReason{Home: sc.Home, Away: sc.Away, Ticks: ticks}
	if !r.Finished(sc, ticks) {
		reason.Outcome = OutcomeInProgress
		reason.Description = "match_in_progress"
		return reason
	}

	switch {
	case sc.Home > sc.Away:
		reason.Outcome = OutcomeHomeVictory
	case sc.Away > sc.Home:
		reason.Outcome = OutcomeAwayVictory
	default:
		reason.Outcome = OutcomeDraw
	}

	switch r.Kind {
	case RulesToScore:
		if reason.Outcome == OutcomeHomeVictory {
			reason.Description = "home_reached_target"
		} else {
			reason.Description = "away_reached_target"
		}
	case RulesTimed:
		switch reason.Outcome {
		case OutcomeDraw:
			reason.Description = "draw_full_time"
		case OutcomeHomeVictory:
			reason.Description = "home_win_full_time"
		default:
			reason.Description = "away_win_full_time"
		}
	}
	return reason
}
