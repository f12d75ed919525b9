package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-matchmaker/internal/matchmaking"
	"github.com/mauv0809/padel-matchmaker/internal/metrics"
)

func (s *Server) CreateMatchRequestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params matchmaking.CreateRequestParams
		if err := decodeBody(r, &params); err != nil {
			s.writeError(w, err)
			return
		}
		if err := requireField(params.ClubID, "club_id"); err != nil {
			s.writeError(w, err)
			return
		}
		if err := requireField(params.RequestedByID, "requested_by_id"); err != nil {
			s.writeError(w, err)
			return
		}
		request, err := s.Matchmaking.CreateMatchRequest(r.Context(), params)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.MetricsStore.Increment(metrics.KeyMatchRequestsCreated)
		log.Info("Created match request", "requestID", request.ID, "clubID", request.ClubID, "players", len(request.Participants))

		if err := s.Notifier.SendMatchRequest(request, s.playerNames(request.ClubID), isDryRunFromContext(r)); err != nil {
			log.Error("Failed to notify match request", "requestID", request.ID, "error", err)
		}
		writeJSON(w, http.StatusCreated, request)
	}
}

func (s *Server) GetMatchRequestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		request, err := s.Matchmaking.GetMatchRequest(r.Context(), r.PathValue("id"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, request)
	}
}

func (s *Server) AddRequestPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body addPlayerRequest
		if err := decodeBody(r, &body); err != nil {
			s.writeError(w, err)
			return
		}
		if err := requireField(body.PlayerID, "player_id"); err != nil {
			s.writeError(w, err)
			return
		}
		if body.Status == "" {
			body.Status = matchmaking.ParticipantInvited
		}
		if !body.Status.Valid() {
			s.writeError(w, fmt.Errorf("%w: unknown participant status %q", matchmaking.ErrInvalidArgument, body.Status))
			return
		}
		requestID := r.PathValue("id")
		if err := s.Matchmaking.AddRequestPlayer(r.Context(), requestID, body.PlayerID, body.Status); err != nil {
			s.writeError(w, err)
			return
		}
		s.respondWithRequest(w, r, requestID, http.StatusCreated)
	}
}

func (s *Server) UpdateRequestParticipantHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body updateParticipantRequest
		if err := decodeBody(r, &body); err != nil {
			s.writeError(w, err)
			return
		}
		if !body.Status.Valid() {
			s.writeError(w, fmt.Errorf("%w: unknown participant status %q", matchmaking.ErrInvalidArgument, body.Status))
			return
		}
		requestID := r.PathValue("id")
		if err := s.Matchmaking.UpdateRequestParticipant(r.Context(), requestID, r.PathValue("player_id"), body.Status); err != nil {
			s.writeError(w, err)
			return
		}
		s.respondWithRequest(w, r, requestID, http.StatusOK)
	}
}

func (s *Server) CompleteMatchRequestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body completeRequest
		if err := decodeBody(r, &body); err != nil {
			s.writeError(w, err)
			return
		}
		if err := requireField(body.MatchRequestID, "match_request_id"); err != nil {
			s.writeError(w, err)
			return
		}
		var playedAt time.Time
		if body.PlayedAt != nil {
			playedAt = *body.PlayedAt
		}
		matchID, err := s.Matchmaking.CompleteMatchRequest(r.Context(), body.MatchRequestID, playedAt, body.ClubID)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.Metrics.IncMatchRequestsCompleted()
		s.MetricsStore.Increment(metrics.KeyMatchRequestsCompleted)
		log.Info("Completed match request", "requestID", body.MatchRequestID, "matchID", matchID)

		if !isDryRunFromContext(r) {
			s.publishMatchCreated(r.Context(), matchID)
		}
		writeJSON(w, http.StatusCreated, matchIDResponse{MatchID: matchID})
	}
}

func (s *Server) GetMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		match, err := s.Matchmaking.GetMatch(r.Context(), r.PathValue("id"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, match)
	}
}

func (s *Server) respondWithRequest(w http.ResponseWriter, r *http.Request, requestID string, status int) {
	request, err := s.Matchmaking.GetMatchRequest(r.Context(), requestID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, status, request)
}
