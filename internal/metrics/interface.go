package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	AddSuggestionsGenerated(n int)
	IncSuggestionsAccepted()
	IncSuggestionsRejected()
	IncMatchRequestsCompleted()
	IncMatchmakingErrors(code string)
	ObserveGenerationDuration(duration float64)
	IncRatingSyncRuns()
	AddMatchesSynced(n int)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// MetricsStore keeps counters that survive restarts, served by /stats.
type MetricsStore interface {
	Increment(key string)
	Add(key string, delta int)
	GetAll() (map[string]int, error)
}

// Persistent counter keys.
const (
	KeySuggestionsGenerated   = "suggestions_generated"
	KeySuggestionsAccepted    = "suggestions_accepted"
	KeySuggestionsRejected    = "suggestions_rejected"
	KeyMatchRequestsCreated   = "match_requests_created"
	KeyMatchRequestsCompleted = "match_requests_completed"
	KeyRatingSyncRuns         = "rating_sync_runs"
	KeyMatchesSynced          = "matches_synced"
)
