package http

import (
	"net/http"
	"time"

	"github.com/mauv0809/padel-matchmaker/internal/club"
	"github.com/mauv0809/padel-matchmaker/internal/config"
	"github.com/mauv0809/padel-matchmaker/internal/inngest"
	"github.com/mauv0809/padel-matchmaker/internal/matchmaking"
	"github.com/mauv0809/padel-matchmaker/internal/metrics"
	"github.com/mauv0809/padel-matchmaker/internal/notifier"
	"github.com/mauv0809/padel-matchmaker/internal/pubsub"
	"github.com/mauv0809/padel-matchmaker/internal/ratings"
)

type Server struct {
	Store          club.ClubStore
	Matchmaking    matchmaking.MatchmakingService
	Metrics        metrics.Metrics
	MetricsStore   metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Syncer         ratings.RatingSyncer
	// InngestClient is nil when workflows are not configured.
	InngestClient inngest.InngestClient
	Router        *http.ServeMux
	pubsub        pubsub.PubSubClient
	handler       http.Handler
}

// errorResponse is the body of every failed API call.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type generateResponse struct {
	Suggestions []matchmaking.Suggestion `json:"suggestions"`
	Count       int                      `json:"count"`
}

type acceptRequest struct {
	PlayedAt   *time.Time `json:"played_at,omitempty"`
	AcceptedBy string     `json:"accepted_by"`
}

type matchIDResponse struct {
	MatchID string `json:"match_id"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type balanceRequest struct {
	Team1 []string `json:"team1"`
	Team2 []string `json:"team2"`
}

type addPlayerRequest struct {
	PlayerID string                        `json:"player_id"`
	Status   matchmaking.ParticipantStatus `json:"status,omitempty"`
}

type updateParticipantRequest struct {
	Status matchmaking.ParticipantStatus `json:"status"`
}

type completeRequest struct {
	MatchRequestID string     `json:"match_request_id"`
	PlayedAt       *time.Time `json:"played_at,omitempty"`
	ClubID         *string    `json:"club_id,omitempty"`
}

// pushMessage is the envelope Pub/Sub push subscriptions POST.
type pushMessage struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data string `json:"data"`
	} `json:"message"`
}
