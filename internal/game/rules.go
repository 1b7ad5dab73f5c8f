package game

import (
	"errors"
	"fmt"
	"strings"
)

// TicksPerSecond is the simulation rate. All durations in the engine are
// counted in ticks.
const TicksPerSecond = 60

var ErrInvalidRules = errors.New("invalid match rules")

// RulesKind selects how a bot match ends.
type RulesKind int

const (
	RulesFreeplay RulesKind = iota
	RulesTimed
	RulesToScore
)

func (k RulesKind) String() string {
	switch k {
	case RulesTimed:
		return "timed"
	case RulesToScore:
		return "to-score"
	default:
		return "freeplay"
	}
}

// ParseRulesKind accepts "freeplay", "timed" and "to-score".
func ParseRulesKind(s string) (RulesKind, error) {
	for k := RulesFreeplay; k <= RulesToScore; k++ {
		if strings.EqualFold(strings.TrimSpace(s), k.String()) {
			return k, nil
		}
	}
	return RulesFreeplay, fmt.Errorf("%w: kind %q", ErrInvalidRules, s)
}

const (
	minMatchMinutes = 1
	maxMatchMinutes = 20
	minTargetScore  = 1
	maxTargetScore  = 100
)

// Rules are the end conditions of a match.
type Rules struct {
	Kind    RulesKind
	Minutes int // timed: 1..20
	Target  int // to-score: 1..100
}

// DefaultRules is a five-minute timed match.
func DefaultRules() Rules {
	return Rules{Kind: RulesTimed, Minutes: 5, Target: 5}
}

// Validate checks the range of the field the kind uses.
func (r Rules) Validate() error {
	switch r.Kind {
	case RulesFreeplay:
		return nil
	case RulesTimed:
		if r.Minutes < minMatchMinutes || r.Minutes > maxMatchMinutes {
			return fmt.Errorf("%w: minutes %d outside %d..%d", ErrInvalidRules, r.Minutes, minMatchMinutes, maxMatchMinutes)
		}
	case RulesToScore:
		if r.Target < minTargetScore || r.Target > maxTargetScore {
			return fmt.Errorf("%w: target %d outside %d..%d", ErrInvalidRules, r.Target, minTargetScore, maxTargetScore)
		}
	default:
		return fmt.Errorf("%w: kind %d", ErrInvalidRules, int(r.Kind))
	}
	return nil
}

// DurationTicks is the timed-match length in ticks, 0 for other kinds.
func (r Rules) DurationTicks() int {
	if r.Kind != RulesTimed {
		return 0
	}
	return r.Minutes * 60 * TicksPerSecond
}

// Remaining returns the ticks left in a timed match.
func (r Rules) Remaining(ticks int) int {
	if r.Kind != RulesTimed {
		return 0
	}
	return max(0, r.DurationTicks()-ticks)
}

// Finished reports whether the match is over.
func (r Rules) Finished(sc Score, ticks int) bool {
	switch r.Kind {
	case RulesTimed:
		return ticks >= r.DurationTicks()
	case RulesToScore:
		return sc.Home >= r.Target || sc.Away >= r.Target
	default:
		return false
	}
}

// CloseToWin reports the side one goal short of a to-score target.
func (r Rules) CloseToWin(sc Score) (Side, bool) {
	if r.Kind != RulesToScore || r.Target <= 1 {
		return 0, false
	}
	switch {
	case sc.Home == r.Target-1 && sc.Home >= sc.Away:
		return SideHome, true
	case sc.Away == r.Target-1:
		return SideAway, true
	}
	return 0, false
}
