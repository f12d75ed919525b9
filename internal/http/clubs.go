package http

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-matchmaker/internal/club"
	"github.com/mauv0809/padel-matchmaker/internal/notifier"
)

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clubID := r.PathValue("id")
		if _, err := s.Store.GetClub(clubID); err != nil {
			s.writeError(w, err)
			return
		}
		players, err := s.Store.GetPlayers(clubID)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if players == nil {
			players = []club.PlayerRating{}
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func (s *Server) GetSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := s.Matchmaking.GetSettings(r.Context(), r.PathValue("id"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, settings)
	}
}

// UpdateSettingsHandler replaces the club's settings. Fields missing from the
// body keep their current values.
func (s *Server) UpdateSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clubID := r.PathValue("id")
		current, err := s.Matchmaking.GetSettings(r.Context(), clubID)
		if err != nil {
			s.writeError(w, err)
			return
		}
		next := *current
		if err := decodeBody(r, &next); err != nil {
			s.writeError(w, err)
			return
		}
		next.ClubID = clubID
		updated, err := s.Matchmaking.UpdateSettings(r.Context(), next)
		if err != nil {
			s.writeError(w, err)
			return
		}
		log.Info("Updated matchmaking settings", "clubID", clubID)
		writeJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) lookupPlayers(ids []string) ([]club.PlayerRating, error) {
	players := make([]club.PlayerRating, 0, len(ids))
	for _, id := range ids {
		p, err := s.Store.GetPlayer(id)
		if err != nil {
			return nil, fmt.Errorf("failed to get player %s: %w", id, err)
		}
		players = append(players, *p)
	}
	return players, nil
}

// playerNames resolves display names for notifications. Lookup failures fall
// back to raw ids.
func (s *Server) playerNames(clubID string) notifier.Names {
	names := notifier.Names{}
	players, err := s.Store.GetPlayers(clubID)
	if err != nil {
		log.Warn("Failed to load player names", "clubID", clubID, "error", err)
		return names
	}
	for _, p := range players {
		names[p.ID] = p.Name
	}
	return names
}

func (s *Server) clubName(clubID string) string {
	c, err := s.Store.GetClub(clubID)
	if err != nil || c.Name == "" {
		return clubID
	}
	return c.Name
}

