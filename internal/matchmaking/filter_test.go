package matchmaking_test

import (
	"testing"

	"github.com/mauv0809/padel-matchmaker/internal/club"
	"github.com/mauv0809/padel-matchmaker/internal/matchmaking"
	"github.com/stretchr/testify/assert"
)

func candidateOf(t *testing.T, players ...club.PlayerRating) matchmaking.MatchCandidate {
	t.Helper()
	all := matchmaking.Take(matchmaking.Candidates(players), 1)
	if len(all) != 1 {
		t.Fatalf("expected one candidate, got %d", len(all))
	}
	return all[0]
}

func TestPermissiveFilterAcceptsAll(t *testing.T) {
	players := makePlayers(8)
	players[0].Skill = 1000
	players[3].PreferredSide = club.SideLeft
	players[5].Gender = club.GenderFemale

	total := 0
	for c := range matchmaking.Candidates(players) {
		total++
		assert.True(t, matchmaking.Passes(c, matchmaking.PermissiveFilter))
	}
	kept := matchmaking.Take(matchmaking.Filter(matchmaking.Candidates(players), matchmaking.PermissiveFilter), 1000)
	assert.Len(t, kept, total)
}

func TestSkillGapBoundsInclusive(t *testing.T) {
	c := candidateOf(t,
		club.PlayerRating{ID: "a", Skill: 4}, club.PlayerRating{ID: "b", Skill: 4},
		club.PlayerRating{ID: "c", Skill: 2}, club.PlayerRating{ID: "d", Skill: 2},
	)
	assert.Equal(t, 2.0, c.SkillGap)

	tests := []struct {
		name     string
		min, max float64
		want     bool
	}{
		{"inside", 1, 3, true},
		{"at min", 2, 3, true},
		{"at max", 0, 2, true},
		{"below min", 2.5, 3, false},
		{"above max", 0, 1.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := matchmaking.FilterConfig{MinSkillGap: tt.min, MaxSkillGap: tt.max}
			assert.Equal(t, tt.want, matchmaking.Passes(c, cfg))
		})
	}
}

func TestSidePredicate(t *testing.T) {
	p := func(id string, side club.Side) club.PlayerRating {
		return club.PlayerRating{ID: id, Skill: 3, PreferredSide: side}
	}
	cfg := matchmaking.PermissiveFilter
	cfg.EnforceSidePreference = true

	tests := []struct {
		name  string
		sides [4]club.Side
		want  bool
	}{
		{"left right both teams", [4]club.Side{club.SideLeft, club.SideRight, club.SideRight, club.SideLeft}, true},
		{"both covers", [4]club.Side{club.SideBoth, club.SideLeft, club.SideLeft, club.SideBoth}, true},
		{"team A two lefts", [4]club.Side{club.SideLeft, club.SideLeft, club.SideLeft, club.SideRight}, false},
		{"team B unset", [4]club.Side{club.SideLeft, club.SideRight, club.SideNone, club.SideRight}, false},
		{"nobody set", [4]club.Side{club.SideNone, club.SideNone, club.SideNone, club.SideNone}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := candidateOf(t, p("a", tt.sides[0]), p("b", tt.sides[1]), p("c", tt.sides[2]), p("d", tt.sides[3]))
			assert.Equal(t, tt.want, matchmaking.Passes(c, cfg))
		})
	}

	c := candidateOf(t, p("a", club.SideLeft), p("b", club.SideLeft), p("c", club.SideLeft), p("d", club.SideLeft))
	assert.True(t, matchmaking.Passes(c, matchmaking.PermissiveFilter), "side predicate applies only when enforced")
}

func TestGenderPredicate(t *testing.T) {
	const m, f = club.GenderMale, club.GenderFemale
	p := func(id string, g club.Gender) club.PlayerRating {
		return club.PlayerRating{ID: id, Skill: 3, Gender: g}
	}
	cfg := matchmaking.PermissiveFilter
	cfg.EnforceGenderBalance = true

	tests := []struct {
		name    string
		genders [4]club.Gender
		want    bool
	}{
		{"men vs men", [4]club.Gender{m, m, m, m}, true},
		{"men vs women", [4]club.Gender{m, m, f, f}, true},
		{"mixed vs mixed", [4]club.Gender{m, f, f, m}, true},
		{"homogeneous vs mixed", [4]club.Gender{m, m, m, f}, false},
		{"mixed vs homogeneous", [4]club.Gender{f, m, f, f}, false},
		{"unknown category pair", [4]club.Gender{m, "other", m, "other"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := candidateOf(t, p("a", tt.genders[0]), p("b", tt.genders[1]), p("c", tt.genders[2]), p("d", tt.genders[3]))
			assert.Equal(t, tt.want, matchmaking.Passes(c, cfg))
		})
	}
}
