package inngest

import (
	"github.com/inngest/inngestgo"
	"github.com/mauv0809/padel-matchmaker/internal/matchmaking"
	"github.com/mauv0809/padel-matchmaker/internal/pubsub"
	"github.com/mauv0809/padel-matchmaker/internal/ratings"
)

// Event names that trigger workflows.
const (
	EventSuggestionsRequested = "matchmaking/suggestions.requested"
	EventRatingSyncRequested  = "ratings/sync.requested"
)

type client struct {
	inngestClient inngestgo.Client
	workflows     *workflows
}

// workflows holds the dependencies of the step bodies so they can be
// exercised without an Inngest runtime.
type workflows struct {
	matchmaking matchmaking.MatchmakingService
	syncer      ratings.RatingSyncer
	pubsub      pubsub.PubSubClient
}

// GenerateRequest is the payload of EventSuggestionsRequested.
type GenerateRequest struct {
	ClubID string `json:"club_id"`
	Limit  *int   `json:"limit,omitempty"`
}

// GenerateResult is the output of the generate-suggestions workflow.
type GenerateResult struct {
	ClubID        string   `json:"club_id"`
	SuggestionIDs []string `json:"suggestion_ids"`
}
