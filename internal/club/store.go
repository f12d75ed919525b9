package club

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const playerColumns = `id, COALESCE(club_id, ''), name, skill, mu, sigma, preferred_side, gender, matches_played, playtomic_id`

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

// UpsertClub inserts a club or updates its name and tenant.
func (s *store) UpsertClub(club Club) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if club.CreatedAt.IsZero() {
		club.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`
		INSERT INTO clubs (id, name, playtomic_tenant_id, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			playtomic_tenant_id = excluded.playtomic_tenant_id;
	`, club.ID, club.Name, nullString(club.PlaytomicTenantID), club.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to upsert club %s: %w", club.ID, err)
	}
	log.Debug("Upserted club", "clubID", club.ID, "name", club.Name)
	return nil
}

// GetClub retrieves a club by ID.
func (s *store) GetClub(clubID string) (*Club, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	club, err := scanClub(s.db.QueryRow(`SELECT id, name, playtomic_tenant_id, created_at FROM clubs WHERE id = ?`, clubID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrClubNotFound, clubID)
		}
		return nil, fmt.Errorf("failed to get club: %w", err)
	}
	return &club, nil
}

// GetClubs returns all clubs ordered by name.
func (s *store) GetClubs() ([]Club, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name, playtomic_tenant_id, created_at FROM clubs ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query clubs: %w", err)
	}
	defer rows.Close()

	var clubs []Club
	for rows.Next() {
		club, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan club row: %w", err)
		}
		clubs = append(clubs, club)
	}
	return clubs, rows.Err()
}

// UpsertPlayers inserts or updates players in a single transaction.
func (s *store) UpsertPlayers(players []PlayerRating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO players (id, club_id, name, skill, mu, sigma, preferred_side, gender, matches_played, playtomic_id, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			club_id = excluded.club_id,
			name = excluded.name,
			skill = excluded.skill,
			mu = excluded.mu,
			sigma = excluded.sigma,
			preferred_side = excluded.preferred_side,
			gender = excluded.gender,
			matches_played = excluded.matches_played,
			playtomic_id = excluded.playtomic_id,
			updated_at = excluded.updated_at;
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare player upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, p := range players {
		side := p.PreferredSide
		if side == "" {
			side = SideNone
		}
		var playtomicID sql.NullString
		if p.PlaytomicID != nil {
			playtomicID = sql.NullString{String: *p.PlaytomicID, Valid: true}
		}
		_, err := stmt.Exec(p.ID, nullString(p.ClubID), p.Name, p.Skill, p.Mu, p.Sigma, string(side), string(p.Gender), p.MatchesPlayed, playtomicID, now)
		if err != nil {
			return fmt.Errorf("failed to upsert player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit player upsert: %w", err)
	}
	log.Info("Upserted players", "count", len(players))
	return nil
}

// GetPlayer retrieves a single player by ID.
func (s *store) GetPlayer(playerID string) (*PlayerRating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, err := scanPlayer(s.db.QueryRow(`SELECT `+playerColumns+` FROM players WHERE id = ?`, playerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &player, nil
}

// GetPlayers returns every player of a club, strongest first.
func (s *store) GetPlayers(clubID string) ([]PlayerRating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryPlayers(`SELECT `+playerColumns+` FROM players WHERE club_id = ? ORDER BY skill DESC, id ASC`, clubID)
}

// ListEligible returns the players of a club with enough recorded matches for
// their skill to be trusted, ordered by descending skill. Ties are broken by id
// so candidate enumeration is deterministic.
func (s *store) ListEligible(clubID string, minMatches int) ([]PlayerRating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players, err := s.queryPlayers(`
		SELECT `+playerColumns+`
		FROM players
		WHERE club_id = ? AND matches_played >= ?
		ORDER BY skill DESC, id ASC
	`, clubID, minMatches)
	if err != nil {
		return nil, err
	}
	log.Debug("Listed eligible players", "clubID", clubID, "minMatches", minMatches, "count", len(players))
	return players, nil
}

// ApplySyncedMatch marks matchID as synced and bumps matches_played for every
// player in it, creating unknown players under clubID. Players are keyed by
// their Playtomic id and their skill follows the reported Playtomic level.
func (s *store) ApplySyncedMatch(clubID, matchID string, players []SyncedPlayer) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	res, err := tx.Exec(`INSERT INTO synced_matches (match_id, club_id, synced_at) VALUES (?, ?, ?) ON CONFLICT(match_id) DO NOTHING`, matchID, clubID, now)
	if err != nil {
		return false, fmt.Errorf("failed to record synced match: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		log.Debug("Match already synced", "matchID", matchID)
		return false, nil
	}

	for _, p := range players {
		var playerID string
		err := tx.QueryRow(`SELECT id FROM players WHERE playtomic_id = ?`, p.PlaytomicID).Scan(&playerID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			_, err = tx.Exec(`
				INSERT INTO players (id, club_id, name, skill, mu, preferred_side, matches_played, playtomic_id, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, 1, ?, ?)
			`, uuid.New().String(), clubID, p.Name, p.Level, p.Level, string(SideNone), p.PlaytomicID, now)
			if err != nil {
				return false, fmt.Errorf("failed to insert synced player %s: %w", p.PlaytomicID, err)
			}
			log.Info("Discovered and added new player", "playtomicID", p.PlaytomicID, "name", p.Name, "level", p.Level)
		case err != nil:
			return false, fmt.Errorf("failed to look up player %s: %w", p.PlaytomicID, err)
		default:
			_, err = tx.Exec(`
				UPDATE players SET name = ?, skill = ?, matches_played = matches_played + 1, updated_at = ?
				WHERE id = ?
			`, p.Name, p.Level, now, playerID)
			if err != nil {
				return false, fmt.Errorf("failed to update synced player %s: %w", playerID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit synced match: %w", err)
	}
	log.Info("Applied synced match", "matchID", matchID, "clubID", clubID, "players", len(players))
	return true, nil
}

func (s *store) queryPlayers(query string, args ...any) ([]PlayerRating, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var players []PlayerRating
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

// scanPlayer is a helper function to scan a single player row.
func scanPlayer(scanner interface{ Scan(...any) error }) (PlayerRating, error) {
	var p PlayerRating
	var side, gender string
	var playtomicID sql.NullString
	err := scanner.Scan(&p.ID, &p.ClubID, &p.Name, &p.Skill, &p.Mu, &p.Sigma, &side, &gender, &p.MatchesPlayed, &playtomicID)
	if err != nil {
		return PlayerRating{}, err
	}
	p.PreferredSide = ParseSide(side)
	p.Gender = Gender(gender)
	if playtomicID.Valid {
		p.PlaytomicID = &playtomicID.String
	}
	return p, nil
}

func scanClub(scanner interface{ Scan(...any) error }) (Club, error) {
	var c Club
	var tenant sql.NullString
	var createdAt int64
	if err := scanner.Scan(&c.ID, &c.Name, &tenant, &createdAt); err != nil {
		return Club{}, err
	}
	c.PlaytomicTenantID = tenant.String
	c.CreatedAt = time.Unix(createdAt, 0)
	return c, nil
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
