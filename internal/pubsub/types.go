package pubsub

import (
	"context"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client   *pubsub.Client
	teardown func()
}

// loopback delivers messages to an in-process handler instead of Google Pub/Sub.
type loopback struct {
	deliver Handler
}

// Handler receives an encoded message for a topic.
type Handler func(ctx context.Context, topic EventType, data []byte) error

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventMatchCreated         EventType = "match-created"
	EventSuggestionsGenerated EventType = "suggestions-generated"
)

// MatchCreatedEvent is published after a suggestion is accepted or a match
// request is completed.
type MatchCreatedEvent struct {
	MatchID  string   `msgpack:"match_id"`
	ClubID   string   `msgpack:"club_id"`
	Source   string   `msgpack:"source"`
	SourceID string   `msgpack:"source_id"`
	TeamA    []string `msgpack:"team1"`
	TeamB    []string `msgpack:"team2"`
	PlayedOn int64    `msgpack:"played_on"`
}

// SuggestionsGeneratedEvent is published after a generation run persisted
// at least one suggestion.
type SuggestionsGeneratedEvent struct {
	ClubID        string   `msgpack:"club_id"`
	SuggestionIDs []string `msgpack:"suggestion_ids"`
}
