package matchmaking_test

import (
	"fmt"
	"iter"
	"testing"

	"github.com/mauv0809/padel-matchmaker/internal/club"
	"github.com/mauv0809/padel-matchmaker/internal/matchmaking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePlayers(n int) []club.PlayerRating {
	players := make([]club.PlayerRating, n)
	for i := range players {
		players[i] = club.PlayerRating{ID: fmt.Sprintf("p%02d", i), Skill: float64(20 - i)}
	}
	return players
}

func TestCandidatesCount(t *testing.T) {
	for n := 0; n <= 9; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			players := makePlayers(n)
			count := 0
			seen := map[[4]string]bool{}
			for c := range matchmaking.Candidates(players) {
				count++
				ids := [4]string{c.Players[0].ID, c.Players[1].ID, c.Players[2].ID, c.Players[3].ID}
				assert.False(t, seen[ids], "duplicate candidate %v", ids)
				seen[ids] = true

				distinct := map[string]bool{}
				for _, id := range ids {
					distinct[id] = true
				}
				assert.Len(t, distinct, 4)
				assert.Equal(t, c.Players[0:2], c.TeamA())
				assert.Equal(t, c.Players[2:4], c.TeamB())
			}
			assert.Equal(t, matchmaking.CombinationCount(n), count)
		})
	}
	assert.Equal(t, 70, matchmaking.CombinationCount(8))
}

func TestCandidatesLexicographicOrder(t *testing.T) {
	players := makePlayers(5)
	var got [][4]string
	for c := range matchmaking.Candidates(players) {
		got = append(got, [4]string{c.Players[0].ID, c.Players[1].ID, c.Players[2].ID, c.Players[3].ID})
	}
	assert.Equal(t, [][4]string{
		{"p00", "p01", "p02", "p03"},
		{"p00", "p01", "p02", "p04"},
		{"p00", "p01", "p03", "p04"},
		{"p00", "p02", "p03", "p04"},
		{"p01", "p02", "p03", "p04"},
	}, got)
}

func TestCandidatesScenario(t *testing.T) {
	players := []club.PlayerRating{
		{ID: "A", Skill: 15},
		{ID: "B", Skill: 16},
		{ID: "C", Skill: 16.5},
		{ID: "D", Skill: 15.9},
	}
	all := matchmaking.Take(matchmaking.Candidates(players), 10)
	require.Len(t, all, 1)

	c := all[0]
	assert.Equal(t, "A", c.TeamA()[0].ID)
	assert.Equal(t, "B", c.TeamA()[1].ID)
	assert.Equal(t, "C", c.TeamB()[0].ID)
	assert.Equal(t, "D", c.TeamB()[1].ID)
	assert.InDelta(t, 15.5, c.TeamASkill, 1e-9)
	assert.InDelta(t, 16.2, c.TeamBSkill, 1e-9)
	assert.InDelta(t, 0.7, c.SkillGap, 1e-9)
	assert.InDelta(t, 86, c.BalanceScore, 1e-9)
}

func TestTakeStopsEarly(t *testing.T) {
	pulled := 0
	var seq iter.Seq[int] = func(yield func(int) bool) {
		for i := 0; i < 100; i++ {
			pulled++
			if !yield(i) {
				return
			}
		}
	}

	assert.Equal(t, []int{0, 1, 2}, matchmaking.Take(seq, 3))
	assert.Equal(t, 3, pulled)

	pulled = 0
	assert.Nil(t, matchmaking.Take(seq, 0))
	assert.Equal(t, 0, pulled)

	assert.Len(t, matchmaking.Take(seq, 500), 100)
}

func TestCandidatesRestartable(t *testing.T) {
	seq := matchmaking.Candidates(makePlayers(6))
	first := matchmaking.Take(seq, 3)
	second := matchmaking.Take(seq, 3)
	assert.Equal(t, first, second)
}
