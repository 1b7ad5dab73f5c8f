// Package config loads and saves the TOML match configuration shared by the
// game, the terminal front end and the headless report.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/Garsondee/Pitch-Sense/internal/game"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config mirrors the on-disk file.
type Config struct {
	Match  Match  `toml:"match"`
	Rules  Rules  `toml:"rules"`
	Script Script `toml:"script"`
	Sim    Sim    `toml:"sim"`
}

type Match struct {
	Mode          string  `toml:"mode"`
	Difficulty    string  `toml:"difficulty"`
	HomeBot       string  `toml:"home_bot"` // empty: the player is human
	Goalkeepers   bool    `toml:"goalkeepers"`
	AutoAdvance   bool    `toml:"auto_advance"`
	GoalInset     float64 `toml:"goal_inset"`
	StealCooldown int     `toml:"steal_cooldown_ticks"`
}

type Rules struct {
	Kind    string `toml:"kind"`
	Minutes int    `toml:"minutes"`
	Target  int    `toml:"target"`
}

type Script struct {
	StepDelayTicks int    `toml:"step_delay_ticks"`
	File           string `toml:"file"`
}

type Sim struct {
	Speed float64 `toml:"speed"`
}

const (
	minSpeed = 0.25
	maxSpeed = 8
	// the trigger box must still fit the ball: 120 - 2*inset >= 25
	maxGoalInset = 47.5
)

// Default is a five-minute timed bot match on easy.
func Default() Config {
	r := game.DefaultRules()
	return Config{
		Match: Match{
			Mode:       "bot",
			Difficulty: game.DifficultyEasy.String(),
			GoalInset:  game.DefaultGoalInset,
		},
		Rules: Rules{
			Kind:    r.Kind.String(),
			Minutes: r.Minutes,
			Target:  r.Target,
		},
		Script: Script{StepDelayTicks: 6},
		Sim:    Sim{Speed: 1},
	}
}

// Path returns the default config location under the user config dir.
func Path() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "pitch-sense.toml"
	}
	return filepath.Join(dir, "pitch-sense", "config.toml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, &c)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("%w: %s: unknown key %s", ErrInvalid, path, undec[0])
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Save writes c to path, creating the directory if needed.
func Save(path string, c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Validate checks every field against the ranges the game accepts.
func (c Config) Validate() error {
	if _, err := game.ParseMode(c.Match.Mode); err != nil {
		return fmt.Errorf("%w: match.mode: %w", ErrInvalid, err)
	}
	if _, err := game.ParseDifficulty(c.Match.Difficulty); err != nil {
		return fmt.Errorf("%w: match.difficulty: %w", ErrInvalid, err)
	}
	if c.Match.HomeBot != "" {
		if _, err := game.ParseDifficulty(c.Match.HomeBot); err != nil {
			return fmt.Errorf("%w: match.home_bot: %w", ErrInvalid, err)
		}
	}
	if c.Match.GoalInset <= 0 || c.Match.GoalInset > maxGoalInset {
		return fmt.Errorf("%w: match.goal_inset %v outside (0, %v]", ErrInvalid, c.Match.GoalInset, maxGoalInset)
	}
	if _, err := c.rules(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Script.StepDelayTicks < 0 {
		return fmt.Errorf("%w: script.step_delay_ticks %d is negative", ErrInvalid, c.Script.StepDelayTicks)
	}
	if c.Sim.Speed < minSpeed || c.Sim.Speed > maxSpeed {
		return fmt.Errorf("%w: sim.speed %v outside %v..%v", ErrInvalid, c.Sim.Speed, minSpeed, maxSpeed)
	}
	return nil
}

func (c Config) rules() (game.Rules, error) {
	kind, err := game.ParseRulesKind(c.Rules.Kind)
	if err != nil {
		return game.Rules{}, err
	}
	r := game.Rules{Kind: kind, Minutes: c.Rules.Minutes, Target: c.Rules.Target}
	return r, r.Validate()
}

// Options converts a validated config into engine options.
func (c Config) Options() (game.Options, error) {
	if err := c.Validate(); err != nil {
		return game.Options{}, err
	}
	opts := game.DefaultOptions()
	opts.Mode, _ = game.ParseMode(c.Match.Mode)
	opts.Difficulty, _ = game.ParseDifficulty(c.Match.Difficulty)
	if c.Match.HomeBot != "" {
		opts.HomeBot = true
		opts.HomeDifficulty, _ = game.ParseDifficulty(c.Match.HomeBot)
	}
	opts.Keepers = c.Match.Goalkeepers
	opts.AutoAdvance = c.Match.AutoAdvance
	opts.GoalInset = c.Match.GoalInset
	opts.StealCooldown = c.Match.StealCooldown
	opts.Rules, _ = c.rules()
	opts.StepDelay = c.Script.StepDelayTicks
	return opts, nil
}

// LoadScript reads the configured script file, if any.
func (c Config) LoadScript() (string, error) {
	if c.Script.File == "" {
		return "", nil
	}
	b, err := os.ReadFile(c.Script.File)
	if err != nil {
		return "", fmt.Errorf("script: %w", err)
	}
	return string(b), nil
}
