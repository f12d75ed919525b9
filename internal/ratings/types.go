package ratings

import (
	"github.com/mauv0809/padel-matchmaker/internal/metrics"
	"github.com/mauv0809/padel-matchmaker/internal/playtomic"
)

// DefaultLookbackDays is how far back a sync searches when no window is given.
const DefaultLookbackDays = 7

// SyncOptions controls a single sync run.
type SyncOptions struct {
	// Days of history to search, DefaultLookbackDays when zero.
	Days int
	// ClubID limits the run to one club.
	ClubID string
	// DryRun fetches and logs without writing.
	DryRun bool
}

// Result summarizes a sync run.
type Result struct {
	Clubs          int `json:"clubs"`
	MatchesSeen    int `json:"matches_seen"`
	MatchesPlayed  int `json:"matches_played"`
	MatchesApplied int `json:"matches_applied"`
	Skipped        int `json:"skipped"`
}

// Syncer pulls Playtomic matches into the club store.
type Syncer struct {
	store        Store
	client       playtomic.PlaytomicClient
	metrics      metrics.Metrics
	metricsStore metrics.MetricsStore
	workers      int
}
