package metrics

import (
	"database/sql"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	SuggestionsGenerated   prometheus.Counter
	SuggestionsAccepted    prometheus.Counter
	SuggestionsRejected    prometheus.Counter
	MatchRequestsCompleted prometheus.Counter
	MatchmakingErrors      *prometheus.CounterVec
	GenerationDuration     prometheus.Histogram
	RatingSyncRuns         prometheus.Counter
	MatchesSynced          prometheus.Counter
	SlackNotifSent         prometheus.Counter
	SlackNotifFailed       prometheus.Counter
	StartupTimeSeconds     prometheus.Gauge
}

// store handles metric-related database operations.
type store struct {
	db *sql.DB
	mu sync.Mutex
}
