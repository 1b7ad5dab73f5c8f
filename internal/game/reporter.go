package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// reportWindowTicks is the default sliding window for recent possession (~10s at 60TPS).
const reportWindowTicks = 600

// SideStats are per-side counters for one match.
type SideStats struct {
	PossessionTicks int
	Shots           int
	Passes          int
	Clearances      int
	Interceptions   int
	Steals          int
	Goals           int
}

// MatchReport summarises a match.
type MatchReport struct {
	ID         string
	Mode       string
	Home       SideStats
	Away       SideStats
	LooseTicks int
	Ticks      int
	Rounds     int
	Outcome    MatchOutcomeReason
}

// PossessionShare returns the fraction of possessed ticks held by side.
func (m MatchReport) PossessionShare(side Side) float64 {
	total := m.Home.PossessionTicks + m.Away.PossessionTicks
	if total == 0 {
		return 0
	}
	if side == SideHome {
		return float64(m.Home.PossessionTicks) / float64(total)
	}
	return float64(m.Away.PossessionTicks) / float64(total)
}

// Format renders the report as plain text.
func (m MatchReport) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Pitch match report %s ---\n", m.ID)
	fmt.Fprintf(&b, "mode=%s ticks=%d (%.1fs) rounds=%d\n", m.Mode, m.Ticks, float64(m.Ticks)/TicksPerSecond, m.Rounds)
	fmt.Fprintf(&b, "score: home %d - %d away  outcome=%s (%s)\n",
		m.Home.Goals, m.Away.Goals, m.Outcome.Outcome, m.Outcome.Description)
	fmt.Fprintf(&b, "possession: home %.0f%%  away %.0f%%  loose %d ticks\n",
		m.PossessionShare(SideHome)*100, m.PossessionShare(SideAway)*100, m.LooseTicks)
	b.WriteString("           shots passes clear  intcp steals\n")
	for _, row := range []struct {
		name string
		st   SideStats
	}{{"home", m.Home}, {"away", m.Away}} {
		fmt.Fprintf(&b, "  %-6s %6d %6d %6d %6d %6d\n",
			row.name, row.st.Shots, row.st.Passes, row.st.Clearances, row.st.Interceptions, row.st.Steals)
	}
	return b.String()
}

// Reporter accumulates match statistics from State events and per-tick
// samples, and keeps a sliding window of who held the ball.
type Reporter struct {
	report      MatchReport
	history     []Possessor
	windowTicks int
}

// NewReporter creates a reporter with the default window.
func NewReporter() *Reporter {
	return &Reporter{windowTicks: reportWindowTicks}
}

// Begin starts a fresh report with a new ID.
func (r *Reporter) Begin(s *State) {
	r.report = MatchReport{ID: uuid.NewString(), Mode: s.mode.String()}
	r.history = r.history[:0]
}

func (r *Reporter) side(name string) *SideStats {
	switch name {
	case "home":
		return &r.report.Home
	case "away":
		return &r.report.Away
	}
	return nil
}

// Observe counts one emitted event.
func (r *Reporter) Observe(category, key, label, side string) {
	st := r.side(side)
	if st == nil {
		return
	}
	switch category {
	case "ball":
		switch key {
		case AnimShot.String(), AnimScriptedShot.String():
			st.Shots++
		case AnimPass.String():
			st.Passes++
		case AnimClearance.String():
			st.Clearances++
		case "intercept":
			st.Interceptions++
		}
	case "possession":
		if key == "steal" {
			st.Steals++
		}
	case "goal":
		st.Goals++
	}
}

// Sample records one tick of possession.
func (r *Reporter) Sample(s *State) {
	r.report.Ticks = s.tick
	r.report.Rounds = s.rounds
	r.report.Outcome = s.outcome

	p := s.ball.Possessor
	if id, ok := p.Entity(); ok {
		if SideOf(id) == SideHome {
			r.report.Home.PossessionTicks++
		} else {
			r.report.Away.PossessionTicks++
		}
	} else {
		r.report.LooseTicks++
	}

	r.history = append(r.history, p)
	if len(r.history) > 2*r.windowTicks {
		r.history = append(r.history[:0], r.history[len(r.history)-r.windowTicks:]...)
	}
}

// Report returns a copy of the running report.
func (r *Reporter) Report() MatchReport { return r.report }

// RecentPossession returns side's share of possessed ticks in the window.
func (r *Reporter) RecentPossession(side Side) float64 {
	from := max(0, len(r.history)-r.windowTicks)
	held, mine := 0, 0
	for _, p := range r.history[from:] {
		id, ok := p.Entity()
		if !ok {
			continue
		}
		held++
		if SideOf(id) == side {
			mine++
		}
	}
	if held == 0 {
		return 0
	}
	return float64(mine) / float64(held)
}
