package matchmaking

import (
	"iter"
	"math"

	"github.com/mauv0809/padel-matchmaker/internal/club"
)

// Candidates yields every 4-combination of players in lexicographic index
// order (i<j<k<l). Players i and j form team A, k and l form team B. The
// sequence is lazy and can be ranged over more than once. Fewer than four
// players yields nothing.
func Candidates(players []club.PlayerRating) iter.Seq[MatchCandidate] {
	return func(yield func(MatchCandidate) bool) {
		n := len(players)
		for i := 0; i < n-3; i++ {
			for j := i + 1; j < n-2; j++ {
				for k := j + 1; k < n-1; k++ {
					for l := k + 1; l < n; l++ {
						if !yield(newCandidate(players[i], players[j], players[k], players[l])) {
							return
						}
					}
				}
			}
		}
	}
}

// Filter yields the candidates of seq that pass cfg.
func Filter(seq iter.Seq[MatchCandidate], cfg FilterConfig) iter.Seq[MatchCandidate] {
	return func(yield func(MatchCandidate) bool) {
		for c := range seq {
			if !Passes(c, cfg) {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Take collects at most limit values of seq, in order. A non-positive limit
// returns nil without pulling anything.
func Take[T any](seq iter.Seq[T], limit int) []T {
	if limit <= 0 {
		return nil
	}
	out := make([]T, 0, min(limit, 16))
	for v := range seq {
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}

// CombinationCount returns C(n,4), the number of candidates Candidates yields.
func CombinationCount(n int) int {
	if n < 4 {
		return 0
	}
	return n * (n - 1) * (n - 2) * (n - 3) / 24
}

func newCandidate(a1, a2, b1, b2 club.PlayerRating) MatchCandidate {
	teamA := (a1.Skill + a2.Skill) / 2
	teamB := (b1.Skill + b2.Skill) / 2
	gap := math.Abs(teamA - teamB)
	return MatchCandidate{
		Players:      [4]club.PlayerRating{a1, a2, b1, b2},
		TeamASkill:   teamA,
		TeamBSkill:   teamB,
		SkillGap:     gap,
		BalanceScore: BalanceScore(gap),
	}
}
