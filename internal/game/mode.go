package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownMode       = errors.New("unknown mode")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

// ModeKind is the closed set of game modes.
type ModeKind int

const (
	ModeLevel    ModeKind = iota // scripted puzzle level 1..5 (and 7)
	ModeOneVOne                  // two humans, player vs defender
	ModeBotMatch                 // human vs bot
)

const (
	maxPuzzleLevel    = 5
	contestedLevel    = 7
	oneVOneLevelAlias = 6
)

// Mode selects which entities are active and which possession policy runs.
// Build it with LevelMode, OneVOneMode or BotMatchMode.
type Mode struct {
	Kind      ModeKind
	Level     int  // only for ModeLevel
	Contested bool // only for ModeOneVOne: advanced rules
}

func LevelMode(n int) Mode { return Mode{Kind: ModeLevel, Level: n} }
func OneVOneMode(c bool) Mode { return Mode{Kind: ModeOneVOne, Contested: c} }
func BotMatchMode() Mode { return Mode{Kind: ModeBotMatch} }
func (m Mode) IsLevel() bool { return m.Kind == ModeLevel }
func (m Mode) IsBot() bool { return m.Kind == ModeBotMatch }
func (m Mode) IsOneVOne() bool { return m.Kind == ModeOneVOne }

func (m Mode) String() string {
	switch m.Kind {
	case ModeLevel:
		return fmt.Sprintf("level-%d", m.Level)
	case ModeOneVOne:
		if m.Contested {
			return "1v1-advanced"
		}
		return "1v1"
	case ModeBotMatch:
		return "bot"
	default:
		return "unknown"
	}
}

// ParseMode accepts "1".."5", "7", "6" or "1v1", "1v1-advanced" and "bot".
func ParseMode(s string) (Mode, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "bot":
		return BotMatchMode(), nil
	case "1v1", strconv.Itoa(oneVOneLevelAlias):
		return OneVOneMode(false), nil
	case "1v1-advanced", "1v1+":
		return OneVOneMode(true), nil
	default:
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || (n > maxPuzzleLevel && n != contestedLevel) {
			return Mode{}, fmt.Errorf("%w: %q", ErrUnknownMode, s)
		}
		return LevelMode(n), nil
	}
}

// Policy is the possession state machine a mode runs.
type Policy int

const (
	PolicySimple Policy = iota
	PolicyKeeperAssist
	PolicyContested
)

func (p Policy) String() string {
	switch p {
	case PolicySimple:
		return "simple"
	case PolicyKeeperAssist:
		return "keeper-assist"
	case PolicyContested:
		return "contested"
	default:
		return "unknown"
	}
}

// Policy maps the mode to its possession rules.
func (m Mode) Policy() Policy {
	switch m.Kind {
	case ModeBotMatch:
		return PolicyContested
	case ModeOneVOne:
		if m.Contested {
			return PolicyContested
		}
		return PolicyKeeperAssist
	default:
		if m.Level == contestedLevel {
			return PolicyContested
		}
		return PolicySimple
	}
}

// AllowsKeepers reports whether goalkeepers may be switched on for this mode.
func (m Mode) AllowsKeepers() bool {
	return m.Kind == ModeBotMatch || m.Kind == ModeOneVOne
}

// Difficulty is the bot tier.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
	DifficultyImpossible
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	case DifficultyImpossible:
		return "impossible"
	default:
		return "unknown"
	}
}

// ParseDifficulty is case-insensitive.
func ParseDifficulty(s string) (Difficulty, error) {
	for d := DifficultyEasy; d <= DifficultyImpossible; d++ {
		if strings.EqualFold(strings.TrimSpace(s), d.String()) {
			return d, nil
		}
	}
	return DifficultyEasy, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}
