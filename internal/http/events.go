package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-matchmaker/internal/matchmaking"
	"github.com/mauv0809/padel-matchmaker/internal/pubsub"
)

// HandleEvent delivers an encoded event in process. It backs the loopback
// pubsub client when no GCP project is configured.
func (s *Server) HandleEvent(ctx context.Context, topic pubsub.EventType, data []byte) error {
	switch topic {
	case pubsub.EventMatchCreated:
		return s.handleMatchCreated(data, false)
	case pubsub.EventSuggestionsGenerated:
		return s.handleSuggestionsGenerated(ctx, data, false)
	default:
		log.Warn("Ignoring event with unknown topic", "topic", topic)
		return nil
	}
}

func (s *Server) MatchCreatedEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := readPushData(r)
		if err != nil {
			log.Error("Invalid push message", "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := s.handleMatchCreated(data, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to handle match-created event", "error", err)
			http.Error(w, "Failed to handle event", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) SuggestionsGeneratedEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := readPushData(r)
		if err != nil {
			log.Error("Invalid push message", "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := s.handleSuggestionsGenerated(r.Context(), data, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to handle suggestions-generated event", "error", err)
			http.Error(w, "Failed to handle event", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

func readPushData(r *http.Request) ([]byte, error) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	log.Debug("Received push message", "path", r.URL.Path, "body", string(bodyBytes))

	var msg pushMessage
	if err := json.Unmarshal(bodyBytes, &msg); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	rawData, err := base64.StdEncoding.DecodeString(msg.Message.Data)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 data: %w", err)
	}
	return rawData, nil
}

func (s *Server) handleMatchCreated(data []byte, dryRun bool) error {
	var event pubsub.MatchCreatedEvent
	if err := s.pubsub.ProcessMessage(data, &event); err != nil {
		return fmt.Errorf("failed to decode match-created event: %w", err)
	}
	match := &matchmaking.Match{
		ID:       event.MatchID,
		ClubID:   event.ClubID,
		PlayedOn: time.Unix(event.PlayedOn, 0),
		Source:   matchmaking.MatchSource(event.Source),
		SourceID: event.SourceID,
		TeamA:    event.TeamA,
		TeamB:    event.TeamB,
	}
	return s.Notifier.SendMatchCreated(match, s.playerNames(event.ClubID), dryRun)
}

func (s *Server) handleSuggestionsGenerated(ctx context.Context, data []byte, dryRun bool) error {
	var event pubsub.SuggestionsGeneratedEvent
	if err := s.pubsub.ProcessMessage(data, &event); err != nil {
		return fmt.Errorf("failed to decode suggestions-generated event: %w", err)
	}
	suggestions := make([]matchmaking.Suggestion, 0, len(event.SuggestionIDs))
	for _, id := range event.SuggestionIDs {
		sg, err := s.Matchmaking.GetSuggestion(ctx, id)
		if err != nil {
			log.Warn("Skipping suggestion missing from event", "suggestionID", id, "error", err)
			continue
		}
		if sg.Status != matchmaking.SuggestionPending {
			continue
		}
		suggestions = append(suggestions, *sg)
	}
	if len(suggestions) == 0 {
		log.Debug("No pending suggestions left to announce", "clubID", event.ClubID)
		return nil
	}
	return s.Notifier.SendSuggestions(s.clubName(event.ClubID), suggestions, s.playerNames(event.ClubID), dryRun)
}
