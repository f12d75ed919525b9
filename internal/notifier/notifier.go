package notifier

import (
	"github.com/mauv0809/padel-matchmaker/internal/matchmaking"
)

// Names maps player ids to display names. Missing ids are shown as is.
type Names map[string]string

// Name returns the display name of playerID.
func (n Names) Name(playerID string) string {
	if name, ok := n[playerID]; ok && name != "" {
		return name
	}
	return playerID
}

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// After a generation run
	SendSuggestions(clubName string, suggestions []matchmaking.Suggestion, names Names, dryRun bool) error
	// After a suggestion is accepted or a request completed
	SendMatchCreated(match *matchmaking.Match, names Names, dryRun bool) error
	// After a player opens a match request
	SendMatchRequest(request *matchmaking.MatchRequest, names Names, dryRun bool) error

	// For formatting responses without posting them
	FormatSuggestionsResponse(clubName string, suggestions []matchmaking.Suggestion, names Names) (any, error)
}
