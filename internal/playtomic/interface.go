package playtomic

import "context"

// PlaytomicClient is the subset of the Playtomic API used by the rating sync.
type PlaytomicClient interface {
	GetMatches(ctx context.Context, params *SearchMatchesParams) ([]MatchSummary, error)
	GetSpecificMatch(ctx context.Context, matchID string) (PadelMatch, error)
}
