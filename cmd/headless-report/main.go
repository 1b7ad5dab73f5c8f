package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/Pitch-Sense/internal/game"
)

type runStats struct {
	runIndex int
	home     game.Difficulty
	away     game.Difficulty
	keepers  bool

	report game.MatchReport

	firstShotTick  int
	firstGoalTick  int
	firstStealTick int

	possessionChanges int
	steals            int
	intercepts        int
	clearances        int
	keeperPasses      int
	keeperClears      int
}

func main() {
	var runs int
	var minutes int
	var pairing string
	var keepers bool
	var verbose bool

	flag.IntVar(&runs, "runs", 3, "matches per pairing")
	flag.IntVar(&minutes, "minutes", 2, "timed match length")
	flag.StringVar(&pairing, "pairing", "all", "home:away difficulties (e.g. easy:hard) or all")
	flag.BoolVar(&keepers, "keepers", true, "enable goalkeepers")
	flag.BoolVar(&verbose, "v", false, "print every event")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(2)
	}
	rules := game.Rules{Kind: game.RulesTimed, Minutes: minutes}
	if err := rules.Validate(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(2)
	}
	pairs, err := parsePairings(pairing)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("=== Headless Match Report ===\n")
	fmt.Printf("pairings=%d runs=%d minutes=%d keepers=%v\n\n", len(pairs), runs, minutes, keepers)

	var all []runStats
	idx := 0
	for _, p := range pairs {
		for i := 0; i < runs; i++ {
			idx++
			rs := runMatch(idx, p[0], p[1], keepers, rules, verbose)
			all = append(all, rs)
			printRun(rs)
		}
	}
	printAggregate(all)
}

// parsePairings turns "easy:hard" into one pairing and "all" into every
// combination of tiers.
func parsePairings(s string) ([][2]game.Difficulty, error) {
	tiers := []game.Difficulty{game.DifficultyEasy, game.DifficultyMedium, game.DifficultyHard, game.DifficultyImpossible}
	if strings.EqualFold(s, "all") {
		var out [][2]game.Difficulty
		for _, h := range tiers {
			for _, a := range tiers {
				out = append(out, [2]game.Difficulty{h, a})
			}
		}
		return out, nil
	}
	home, away, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("pairing %q: want home:away", s)
	}
	h, err := game.ParseDifficulty(home)
	if err != nil {
		return nil, err
	}
	a, err := game.ParseDifficulty(away)
	if err != nil {
		return nil, err
	}
	return [][2]game.Difficulty{{h, a}}, nil
}

func runMatch(runIndex int, home, away game.Difficulty, keepers bool, rules game.Rules, verbose bool) runStats {
	ts := game.NewTestSim(
		game.WithMode(game.BotMatchMode()),
		game.WithHomeBot(home),
		game.WithDifficulty(away),
		game.WithKeepers(keepers),
		game.WithRules(rules),
	)
	ts.RunUntil(func(ts *game.TestSim) bool { return ts.State.Over() }, rules.DurationTicks()+1)
	if verbose {
		fmt.Print(ts.SimLog.Format())
	}

	entries := ts.SimLog.Entries()
	return runStats{
		runIndex:          runIndex,
		home:              home,
		away:              away,
		keepers:           keepers,
		report:            ts.State.Report().Report(),
		firstShotTick:     firstTick(entries, "ball", "shot", ""),
		firstGoalTick:     firstTick(entries, "goal", "scored", ""),
		firstStealTick:    firstTick(entries, "possession", "steal", ""),
		possessionChanges: ts.SimLog.CountCategory("possession", ""),
		steals:            ts.SimLog.CountCategory("possession", "steal"),
		intercepts:        ts.SimLog.CountCategory("ball", "intercept"),
		clearances:        ts.SimLog.CountCategory("bot", "clearance"),
		keeperPasses:      ts.SimLog.CountCategory("keeper", "pass"),
		keeperClears:      ts.SimLog.CountCategory("keeper", "clearance"),
	}
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (%s vs %s, keepers=%v) ---\n", rs.runIndex, rs.home, rs.away, rs.keepers)
	fmt.Print(rs.report.Format())
	fmt.Printf("phase_markers: first_shot=%d first_goal=%d first_steal=%d\n",
		rs.firstShotTick, rs.firstGoalTick, rs.firstStealTick)
	fmt.Printf("event_totals: possession_change=%d steal=%d intercept=%d bot_clearance=%d keeper_pass=%d keeper_clearance=%d\n",
		rs.possessionChanges, rs.steals, rs.intercepts, rs.clearances, rs.keeperPasses, rs.keeperClears)
	fmt.Println()
}

// pairingAgg accumulates results for one home:away pairing.
type pairingAgg struct {
	label                     string
	runs                      int
	homeWins, awayWins, draws int
	homeGoals, awayGoals      int
	homePossession            float64
}

func aggregate(all []runStats) []pairingAgg {
	byLabel := map[string]*pairingAgg{}
	for _, rs := range all {
		label := rs.home.String() + ":" + rs.away.String()
		ag, ok := byLabel[label]
		if !ok {
			ag = &pairingAgg{label: label}
			byLabel[label] = ag
		}
		ag.runs++
		ag.homeGoals += rs.report.Home.Goals
		ag.awayGoals += rs.report.Away.Goals
		ag.homePossession += rs.report.PossessionShare(game.SideHome)
		switch rs.report.Outcome.Outcome {
		case game.OutcomeHomeVictory:
			ag.homeWins++
		case game.OutcomeAwayVictory:
			ag.awayWins++
		default:
			ag.draws++
		}
	}
	rows := make([]pairingAgg, 0, len(byLabel))
	for _, ag := range byLabel {
		rows = append(rows, *ag)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].label < rows[j].label })
	return rows
}

func printAggregate(all []runStats) {
	fmt.Println("=== Aggregate ===")
	fmt.Printf("matches=%d\n", len(all))
	for _, r := range aggregate(all) {
		fmt.Printf("  %-22s W-D-L %d-%d-%d  goals %.1f-%.1f  home_possession=%.0f%%\n",
			r.label, r.homeWins, r.draws, r.awayWins,
			avg(r.homeGoals, r.runs), avg(r.awayGoals, r.runs),
			r.homePossession/float64(max(1, r.runs))*100)
	}
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
