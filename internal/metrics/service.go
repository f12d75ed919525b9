package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		SuggestionsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_matchmaking_suggestions_generated_total",
			Help: "The total number of pending suggestions persisted by generation runs.",
		}),
		SuggestionsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_matchmaking_suggestions_accepted_total",
			Help: "The total number of suggestions accepted into matches.",
		}),
		SuggestionsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_matchmaking_suggestions_rejected_total",
			Help: "The total number of suggestions rejected.",
		}),
		MatchRequestsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_match_requests_completed_total",
			Help: "The total number of match requests turned into matches.",
		}),
		MatchmakingErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "padel_matchmaking_errors_total",
			Help: "The total number of failed matchmaking operations by error code.",
		}, []string{"code"}),
		GenerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "padel_matchmaking_generation_duration_seconds",
			Help:    "The duration of suggestion generation runs.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		RatingSyncRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_rating_sync_runs_total",
			Help: "The total number of times the Playtomic rating sync has run.",
		}),
		MatchesSynced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_rating_sync_matches_total",
			Help: "The total number of Playtomic matches applied to player ratings.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "padel_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.SuggestionsGenerated,
		s.SuggestionsAccepted,
		s.SuggestionsRejected,
		s.MatchRequestsCompleted,
		s.MatchmakingErrors,
		s.GenerationDuration,
		s.RatingSyncRuns,
		s.MatchesSynced,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) AddSuggestionsGenerated(n int) {
	s.SuggestionsGenerated.Add(float64(n))
}

func (s *Service) IncSuggestionsAccepted() {
	s.SuggestionsAccepted.Inc()
}

func (s *Service) IncSuggestionsRejected() {
	s.SuggestionsRejected.Inc()
}

func (s *Service) IncMatchRequestsCompleted() {
	s.MatchRequestsCompleted.Inc()
}

func (s *Service) IncMatchmakingErrors(code string) {
	s.MatchmakingErrors.WithLabelValues(code).Inc()
}

func (s *Service) ObserveGenerationDuration(duration float64) {
	s.GenerationDuration.Observe(duration)
}

func (s *Service) IncRatingSyncRuns() {
	s.RatingSyncRuns.Inc()
}

func (s *Service) AddMatchesSynced(n int) {
	s.MatchesSynced.Add(float64(n))
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
