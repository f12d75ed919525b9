package ratings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-matchmaker/internal/club"
	"github.com/mauv0809/padel-matchmaker/internal/metrics"
	"github.com/mauv0809/padel-matchmaker/internal/playtomic"
)

// doublesSize is the number of players in a match that counts towards ratings.
const doublesSize = 4

// New creates a new Syncer.
func New(store Store, client playtomic.PlaytomicClient, m metrics.Metrics, ms metrics.MetricsStore) *Syncer {
	return &Syncer{
		store:        store,
		client:       client,
		metrics:      m,
		metricsStore: ms,
		workers:      8,
	}
}

var _ RatingSyncer = (*Syncer)(nil)

// Sync searches each linked club's Playtomic tenant for recent matches and
// applies every played doubles match once. Matches already applied are skipped.
func (s *Syncer) Sync(ctx context.Context, opts SyncOptions) (Result, error) {
	log.Info("Starting rating sync...", "days", opts.Days, "clubID", opts.ClubID, "dryRun", opts.DryRun)
	s.metrics.IncRatingSyncRuns()
	s.metricsStore.Increment(metrics.KeyRatingSyncRuns)

	clubs, err := s.store.GetClubs()
	if err != nil {
		return Result{}, fmt.Errorf("failed to get clubs: %w", err)
	}

	days := opts.Days
	if days <= 0 {
		days = DefaultLookbackDays
	}
	from := time.Now().AddDate(0, 0, -days)

	var result Result
	for _, c := range clubs {
		if c.PlaytomicTenantID == "" || (opts.ClubID != "" && c.ID != opts.ClubID) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Clubs++
		if err := s.syncClub(ctx, c, from, opts.DryRun, &result); err != nil {
			return result, fmt.Errorf("failed to sync club %s: %w", c.ID, err)
		}
	}

	if result.MatchesApplied > 0 {
		s.metrics.AddMatchesSynced(result.MatchesApplied)
		s.metricsStore.Add(metrics.KeyMatchesSynced, result.MatchesApplied)
	}
	log.Info("Rating sync finished", "clubs", result.Clubs, "seen", result.MatchesSeen, "played", result.MatchesPlayed, "applied", result.MatchesApplied, "skipped", result.Skipped)
	return result, nil
}

func (s *Syncer) syncClub(ctx context.Context, c club.Club, from time.Time, dryRun bool, result *Result) error {
	params := &playtomic.SearchMatchesParams{
		SportID:       "PADEL",
		HasPlayers:    true,
		Sort:          "start_date,ASC",
		TenantIDs:     []string{c.PlaytomicTenantID},
		FromStartDate: from.Format("2006-01-02") + "T00:00:00",
	}
	summaries, err := s.client.GetMatches(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to fetch matches: %w", err)
	}
	result.MatchesSeen += len(summaries)
	log.Info("Found matches from API", "clubID", c.ID, "count", len(summaries))

	played := s.fetchPlayed(ctx, summaries)
	result.MatchesPlayed += len(played)

	// Apply in search order so matches_played grows chronologically.
	for _, match := range played {
		players := match.Players()
		if len(players) != doublesSize {
			log.Debug("Skipping non-doubles match", "matchID", match.MatchID, "players", len(players))
			result.Skipped++
			continue
		}
		if dryRun {
			log.Info("Dry run: would apply synced match", "clubID", c.ID, "matchID", match.MatchID)
			continue
		}
		synced := make([]club.SyncedPlayer, 0, len(players))
		for _, p := range players {
			synced = append(synced, club.SyncedPlayer{PlaytomicID: p.UserID, Name: p.Name, Level: p.Level})
		}
		applied, err := s.store.ApplySyncedMatch(c.ID, match.MatchID, synced)
		if err != nil {
			return fmt.Errorf("failed to apply match %s: %w", match.MatchID, err)
		}
		if applied {
			result.MatchesApplied++
		} else {
			result.Skipped++
		}
	}
	return nil
}

// fetchPlayed loads match details concurrently and keeps the played ones,
// preserving the order of summaries.
func (s *Syncer) fetchPlayed(ctx context.Context, summaries []playtomic.MatchSummary) []playtomic.PadelMatch {
	details := make([]*playtomic.PadelMatch, len(summaries))
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for i, summary := range summaries {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, matchID string) {
			defer wg.Done()
			defer func() { <-sem }()
			match, err := s.client.GetSpecificMatch(ctx, matchID)
			if err != nil {
				log.Error("Error fetching specific match", "matchID", matchID, "error", err)
				return
			}
			if match.GameStatus != playtomic.GameStatusPlayed {
				log.Debug("Skipping match that has not been played", "matchID", matchID, "status", match.GameStatus)
				return
			}
			details[i] = &match
		}(i, summary.MatchID)
	}
	wg.Wait()

	played := make([]playtomic.PadelMatch, 0, len(details))
	for _, d := range details {
		if d != nil {
			played = append(played, *d)
		}
	}
	return played
}
