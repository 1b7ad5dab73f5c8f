package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Pitch-Sense/internal/game"
)

func TestParsePairings(t *testing.T) {
	all, err := parsePairings("all")
	require.NoError(t, err)
	assert.Len(t, all, 16)

	one, err := parsePairings("easy:Impossible")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, [2]game.Difficulty{game.DifficultyEasy, game.DifficultyImpossible}, one[0])

	_, err = parsePairings("easy")
	assert.Error(t, err)
	_, err = parsePairings("easy:godlike")
	assert.ErrorIs(t, err, game.ErrUnknownDifficulty)
}

func TestFirstTick(t *testing.T) {
	entries := []game.SimLogEntry{
		{Tick: 3, Category: "ball", Key: "pass"},
		{Tick: 5, Category: "ball", Key: "shot", Value: "from (1,2)"},
		{Tick: 9, Category: "ball", Key: "shot", Value: "from (7,8)"},
	}
	assert.Equal(t, 5, firstTick(entries, "ball", "shot", ""))
	assert.Equal(t, 9, firstTick(entries, "ball", "shot", "(7"))
	assert.Equal(t, -1, firstTick(entries, "goal", "scored", ""))
}

func TestAggregate(t *testing.T) {
	home := game.MatchReport{
		Home:    game.SideStats{Goals: 2, PossessionTicks: 75},
		Away:    game.SideStats{Goals: 1, PossessionTicks: 25},
		Outcome: game.MatchOutcomeReason{Outcome: game.OutcomeHomeVictory},
	}
	draw := game.MatchReport{
		Home:    game.SideStats{PossessionTicks: 25},
		Away:    game.SideStats{PossessionTicks: 75},
		Outcome: game.MatchOutcomeReason{Outcome: game.OutcomeDraw},
	}
	rows := aggregate([]runStats{
		{home: game.DifficultyHard, away: game.DifficultyEasy, report: home},
		{home: game.DifficultyHard, away: game.DifficultyEasy, report: draw},
		{home: game.DifficultyEasy, away: game.DifficultyEasy, report: draw},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "easy:easy", rows[0].label)

	hard := rows[1]
	assert.Equal(t, "hard:easy", hard.label)
	assert.Equal(t, 2, hard.runs)
	assert.Equal(t, 1, hard.homeWins)
	assert.Equal(t, 1, hard.draws)
	assert.Equal(t, 0, hard.awayWins)
	assert.InDelta(t, 1.0, avg(hard.homeGoals, hard.runs), 1e-9)
	assert.InDelta(t, 1.0, hard.homePossession, 1e-9)
}

func TestRunMatch_Finishes(t *testing.T) {
	rules := game.Rules{Kind: game.RulesTimed, Minutes: 1}
	rs := runMatch(1, game.DifficultyMedium, game.DifficultyMedium, true, rules, false)
	assert.Equal(t, rules.DurationTicks(), rs.report.Ticks)
	assert.NotEqual(t, game.OutcomeInProgress, rs.report.Outcome.Outcome)
	assert.NotEmpty(t, rs.report.ID)
	assert.Equal(t, rs.report.Home.Steals+rs.report.Away.Steals, rs.steals)
}
