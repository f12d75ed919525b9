package matchmaking

import (
	"context"
	"time"

	"github.com/mauv0809/padel-matchmaker/internal/club"
)

// MatchmakingService forms balanced matches and owns the lifecycle of
// suggestions and match requests.
type MatchmakingService interface {
	// GenerateSuggestions persists up to the resolved limit of pending suggestions.
	GenerateSuggestions(ctx context.Context, params GenerateParams) ([]Suggestion, error)
	// AcceptSuggestion commits the suggestion's match and returns its id.
	AcceptSuggestion(ctx context.Context, suggestionID string, playedAt time.Time, acceptedBy string) (string, error)
	RejectSuggestion(ctx context.Context, suggestionID string) error
	GetSuggestion(ctx context.Context, suggestionID string) (*Suggestion, error)
	// ListSuggestions returns a club's suggestions, filtered by status unless it is empty.
	ListSuggestions(ctx context.Context, clubID string, status SuggestionStatus) ([]Suggestion, error)

	CreateMatchRequest(ctx context.Context, params CreateRequestParams) (*MatchRequest, error)
	AddRequestPlayer(ctx context.Context, requestID, playerID string, status ParticipantStatus) error
	UpdateRequestParticipant(ctx context.Context, requestID, playerID string, status ParticipantStatus) error
	// CompleteMatchRequest commits the request's match and returns its id.
	CompleteMatchRequest(ctx context.Context, requestID string, playedAt time.Time, clubOverride *string) (string, error)
	GetMatchRequest(ctx context.Context, requestID string) (*MatchRequest, error)

	GetMatch(ctx context.Context, matchID string) (*Match, error)

	GetSettings(ctx context.Context, clubID string) (*Settings, error)
	UpdateSettings(ctx context.Context, settings Settings) (*Settings, error)
}

// RatingStore supplies the player snapshot generation runs over.
// club.ClubStore satisfies it.
type RatingStore interface {
	ListEligible(clubID string, minMatches int) ([]club.PlayerRating, error)
}
