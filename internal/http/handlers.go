package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-matchmaker/internal/matchmaking"
	"github.com/mauv0809/padel-matchmaker/internal/ratings"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// StatsHandler serves the persistent counters.
func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.MetricsStore.GetAll()
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

// RatingSyncHandler imports recent Playtomic matches. Query parameters: days
// (lookback window) and club_id.
func (s *Server) RatingSyncHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := ratings.SyncOptions{
			ClubID: r.URL.Query().Get("club_id"),
			DryRun: isDryRunFromContext(r),
		}
		if daysStr := r.URL.Query().Get("days"); daysStr != "" {
			days, err := strconv.Atoi(daysStr)
			if err != nil || days <= 0 {
				s.writeError(w, fmt.Errorf("%w: days must be a positive integer", matchmaking.ErrInvalidArgument))
				return
			}
			opts.Days = days
		}
		result, err := s.Syncer.Sync(r.Context(), opts)
		if err != nil {
			log.Error("Rating sync failed", "error", err)
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
