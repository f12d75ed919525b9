package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-matchmaker/internal/inngest"
	"github.com/mauv0809/padel-matchmaker/internal/matchmaking"
	"github.com/mauv0809/padel-matchmaker/internal/metrics"
	"github.com/mauv0809/padel-matchmaker/internal/pubsub"
)

// GenerateSuggestionsHandler runs a generation pass. With async=true and
// workflows configured the run is queued instead.
func (s *Server) GenerateSuggestionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params matchmaking.GenerateParams
		if err := decodeBody(r, &params); err != nil {
			s.writeError(w, err)
			return
		}
		if params.ClubID == "" {
			params.ClubID = r.URL.Query().Get("club_id")
		}
		if err := requireField(params.ClubID, "club_id"); err != nil {
			s.writeError(w, err)
			return
		}

		if r.URL.Query().Get("async") == "true" && s.InngestClient != nil {
			data := map[string]any{"club_id": params.ClubID}
			if params.Limit != nil {
				data["limit"] = *params.Limit
			}
			if err := s.InngestClient.SendEvent(r.Context(), inngest.EventSuggestionsRequested, data); err != nil {
				s.writeError(w, err)
				return
			}
			writeJSON(w, http.StatusAccepted, statusResponse{Status: "queued"})
			return
		}

		start := time.Now()
		suggestions, err := s.Matchmaking.GenerateSuggestions(r.Context(), params)
		s.Metrics.ObserveGenerationDuration(time.Since(start).Seconds())
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.Metrics.AddSuggestionsGenerated(len(suggestions))
		s.MetricsStore.Add(metrics.KeySuggestionsGenerated, len(suggestions))
		log.Info("Generated suggestions", "clubID", params.ClubID, "count", len(suggestions))

		if len(suggestions) > 0 && !isDryRunFromContext(r) {
			ids := make([]string, 0, len(suggestions))
			for _, sg := range suggestions {
				ids = append(ids, sg.ID)
			}
			s.publish(r.Context(), pubsub.EventSuggestionsGenerated, pubsub.SuggestionsGeneratedEvent{ClubID: params.ClubID, SuggestionIDs: ids})
		}
		writeJSON(w, http.StatusCreated, generateResponse{Suggestions: suggestions, Count: len(suggestions)})
	}
}

func (s *Server) ListSuggestionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clubID := r.URL.Query().Get("club_id")
		if err := requireField(clubID, "club_id"); err != nil {
			s.writeError(w, err)
			return
		}
		status := matchmaking.SuggestionStatus(r.URL.Query().Get("status"))
		switch status {
		case "", matchmaking.SuggestionPending, matchmaking.SuggestionAccepted, matchmaking.SuggestionRejected:
		default:
			s.writeError(w, fmt.Errorf("%w: unknown status %q", matchmaking.ErrInvalidArgument, status))
			return
		}
		suggestions, err := s.Matchmaking.ListSuggestions(r.Context(), clubID, status)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, suggestions)
	}
}

func (s *Server) GetSuggestionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		suggestion, err := s.Matchmaking.GetSuggestion(r.Context(), r.PathValue("id"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, suggestion)
	}
}

func (s *Server) AcceptSuggestionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body acceptRequest
		if err := decodeBody(r, &body); err != nil {
			s.writeError(w, err)
			return
		}
		var playedAt time.Time
		if body.PlayedAt != nil {
			playedAt = *body.PlayedAt
		}
		id := r.PathValue("id")
		matchID, err := s.Matchmaking.AcceptSuggestion(r.Context(), id, playedAt, body.AcceptedBy)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.Metrics.IncSuggestionsAccepted()
		s.MetricsStore.Increment(metrics.KeySuggestionsAccepted)
		log.Info("Accepted suggestion", "suggestionID", id, "matchID", matchID)

		if !isDryRunFromContext(r) {
			s.publishMatchCreated(r.Context(), matchID)
		}
		writeJSON(w, http.StatusOK, matchIDResponse{MatchID: matchID})
	}
}

func (s *Server) RejectSuggestionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := s.Matchmaking.RejectSuggestion(r.Context(), id); err != nil {
			s.writeError(w, err)
			return
		}
		s.Metrics.IncSuggestionsRejected()
		s.MetricsStore.Increment(metrics.KeySuggestionsRejected)
		log.Info("Rejected suggestion", "suggestionID", id)
		writeJSON(w, http.StatusOK, statusResponse{Status: string(matchmaking.SuggestionRejected)})
	}
}

// BalanceHandler scores a manually composed lineup without persisting it.
func (s *Server) BalanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body balanceRequest
		if err := decodeBody(r, &body); err != nil {
			s.writeError(w, err)
			return
		}
		if len(body.Team1) != 2 || len(body.Team2) != 2 {
			s.writeError(w, fmt.Errorf("%w: each team needs exactly two players", matchmaking.ErrInvalidArgument))
			return
		}
		teamA, err := s.lookupPlayers(body.Team1)
		if err != nil {
			s.writeError(w, err)
			return
		}
		teamB, err := s.lookupPlayers(body.Team2)
		if err != nil {
			s.writeError(w, err)
			return
		}
		report, err := matchmaking.Evaluate(teamA, teamB)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

// publish sends an event and logs failures; the triggering write has already
// been committed.
func (s *Server) publish(ctx context.Context, topic pubsub.EventType, event any) {
	if err := s.pubsub.SendMessage(ctx, topic, event); err != nil {
		log.Error("Failed to publish event", "topic", topic, "error", err)
	}
}

func (s *Server) publishMatchCreated(ctx context.Context, matchID string) {
	match, err := s.Matchmaking.GetMatch(ctx, matchID)
	if err != nil {
		log.Error("Failed to load committed match", "matchID", matchID, "error", err)
		return
	}
	s.publish(ctx, pubsub.EventMatchCreated, pubsub.MatchCreatedEvent{
		MatchID:  match.ID,
		ClubID:   match.ClubID,
		Source:   string(match.Source),
		SourceID: match.SourceID,
		TeamA:    match.TeamA,
		TeamB:    match.TeamB,
		PlayedOn: match.PlayedOn.Unix(),
	})
}
