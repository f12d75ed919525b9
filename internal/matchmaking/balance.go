package matchmaking

import (
	"fmt"
	"math"

	"github.com/mauv0809/padel-matchmaker/internal/club"
)

// Rating is a human readable label for a balance score.
type Rating string

const (
	RatingVeryBalanced Rating = "very_balanced"
	RatingBalanced     Rating = "balanced"
	RatingUnbalanced   Rating = "unbalanced"
)

const gapPenalty = 20

// BalanceScore maps a non-negative skill gap to [0,100] with a linear penalty.
// A gap of 5 or more scores 0.
func BalanceScore(gap float64) float64 {
	return math.Max(0, math.Min(100, 100-gap*gapPenalty))
}

// BalanceRating labels a balance score.
func BalanceRating(score float64) Rating {
	switch {
	case score >= 90:
		return RatingVeryBalanced
	case score >= 70:
		return RatingBalanced
	default:
		return RatingUnbalanced
	}
}

// Evaluate scores a manually composed lineup of two players per team.
func Evaluate(teamA, teamB []club.PlayerRating) (BalanceReport, error) {
	if len(teamA) != 2 || len(teamB) != 2 {
		return BalanceReport{}, fmt.Errorf("%w: teams need 2 players each, got %d and %d", ErrInvalidArgument, len(teamA), len(teamB))
	}
	ids := []string{teamA[0].ID, teamA[1].ID, teamB[0].ID, teamB[1].ID}
	if !distinct(ids) {
		return BalanceReport{}, fmt.Errorf("%w: a player cannot appear twice in a lineup", ErrInvalidArgument)
	}
	c := newCandidate(teamA[0], teamA[1], teamB[0], teamB[1])
	return BalanceReport{
		TeamASkill:   c.TeamASkill,
		TeamBSkill:   c.TeamBSkill,
		SkillGap:     c.SkillGap,
		BalanceScore: c.BalanceScore,
		Rating:       BalanceRating(c.BalanceScore),
	}, nil
}
