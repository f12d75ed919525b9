package http

import (
	"net/http"

	"github.com/mauv0809/padel-matchmaker/internal/club"
	"github.com/mauv0809/padel-matchmaker/internal/config"
	"github.com/mauv0809/padel-matchmaker/internal/inngest"
	"github.com/mauv0809/padel-matchmaker/internal/matchmaking"
	"github.com/mauv0809/padel-matchmaker/internal/metrics"
	"github.com/mauv0809/padel-matchmaker/internal/notifier"
	"github.com/mauv0809/padel-matchmaker/internal/pubsub"
	"github.com/mauv0809/padel-matchmaker/internal/ratings"
	"github.com/rs/cors"
)

func NewServer(
	store club.ClubStore,
	mm matchmaking.MatchmakingService,
	metricsSvc metrics.Metrics,
	metricsStore metrics.MetricsStore,
	metricsHandler http.Handler,
	cfg config.Config,
	notifier notifier.Notifier,
	syncer ratings.RatingSyncer,
	pubsub pubsub.PubSubClient,
	inngestClient inngest.InngestClient,
) *Server {
	server := &Server{
		Store:          store,
		Matchmaking:    mm,
		Metrics:        metricsSvc,
		MetricsStore:   metricsStore,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Syncer:         syncer,
		InngestClient:  inngestClient,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	server.handler = corsMiddleware(cfg.CORSAllowedOrigins)(server.Router)
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /stats", Chain(s.StatsHandler(), paramsMiddleware))

	s.Router.Handle("POST /matchmaking/suggestions", Chain(s.GenerateSuggestionsHandler(), paramsMiddleware))
	s.Router.Handle("GET /matchmaking/suggestions", Chain(s.ListSuggestionsHandler(), paramsMiddleware))
	s.Router.Handle("GET /matchmaking/suggestions/{id}", Chain(s.GetSuggestionHandler(), paramsMiddleware))
	s.Router.Handle("POST /matchmaking/suggestions/{id}/accept", Chain(s.AcceptSuggestionHandler(), paramsMiddleware))
	s.Router.Handle("POST /matchmaking/suggestions/{id}/reject", Chain(s.RejectSuggestionHandler(), paramsMiddleware))
	s.Router.Handle("POST /matchmaking/balance", Chain(s.BalanceHandler(), paramsMiddleware))

	s.Router.Handle("GET /clubs/{id}/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("GET /clubs/{id}/matchmaking-settings", Chain(s.GetSettingsHandler(), paramsMiddleware))
	s.Router.Handle("PUT /clubs/{id}/matchmaking-settings", Chain(s.UpdateSettingsHandler(), paramsMiddleware))

	s.Router.Handle("POST /matches/requests", Chain(s.CreateMatchRequestHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches/requests/{id}", Chain(s.GetMatchRequestHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/requests/{id}/players", Chain(s.AddRequestPlayerHandler(), paramsMiddleware))
	s.Router.Handle("PUT /matches/requests/{id}/players/{player_id}", Chain(s.UpdateRequestParticipantHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/from-request", Chain(s.CompleteMatchRequestHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches/{id}", Chain(s.GetMatchHandler(), paramsMiddleware))

	s.Router.Handle("POST /ratings/sync", Chain(s.RatingSyncHandler(), paramsMiddleware))

	s.Router.Handle("POST /events/match-created", Chain(s.MatchCreatedEventHandler(), paramsMiddleware))
	s.Router.Handle("POST /events/suggestions-generated", Chain(s.SuggestionsGeneratedEventHandler(), paramsMiddleware))

	if s.InngestClient != nil {
		s.Router.Handle("/api/inngest", s.InngestClient.Serve())
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// corsMiddleware allows the admin dashboard to call the API from a browser.
// With no configured origins every origin is allowed.
func corsMiddleware(origins []string) Middleware {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler
}
