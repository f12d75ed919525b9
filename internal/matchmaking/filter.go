package matchmaking

import (
	"math"

	"github.com/mauv0809/padel-matchmaker/internal/club"
)

// PermissiveFilter accepts every candidate.
var PermissiveFilter = FilterConfig{MinSkillGap: 0, MaxSkillGap: math.Inf(1)}

// Passes reports whether c satisfies the skill gap bounds and every enabled
// optional predicate.
func Passes(c MatchCandidate, cfg FilterConfig) bool {
	if c.SkillGap < cfg.MinSkillGap || c.SkillGap > cfg.MaxSkillGap {
		return false
	}
	if cfg.EnforceSidePreference && !(sidesCompatible(c.TeamA()) && sidesCompatible(c.TeamB())) {
		return false
	}
	if cfg.EnforceGenderBalance && !gendersCompatible(c.TeamA(), c.TeamB()) {
		return false
	}
	return true
}

// sidesCompatible holds when the pair covers left and right, or one of them
// plays both sides.
func sidesCompatible(team []club.PlayerRating) bool {
	a, b := team[0].PreferredSide, team[1].PreferredSide
	if a == club.SideBoth || b == club.SideBoth {
		return true
	}
	return (a == club.SideLeft && b == club.SideRight) || (a == club.SideRight && b == club.SideLeft)
}

// gendersCompatible admits homogeneous vs homogeneous and mixed vs mixed.
// Mixed means one male and one female; any other combination of categories
// is neither homogeneous nor mixed.
func gendersCompatible(teamA, teamB []club.PlayerRating) bool {
	homA, homB := homogeneous(teamA), homogeneous(teamB)
	if homA && homB {
		return true
	}
	return mixed(teamA) && mixed(teamB)
}

func homogeneous(team []club.PlayerRating) bool {
	return team[0].Gender == team[1].Gender
}

func mixed(team []club.PlayerRating) bool {
	a, b := team[0].Gender, team[1].Gender
	return (a == club.GenderMale && b == club.GenderFemale) || (a == club.GenderFemale && b == club.GenderMale)
}
