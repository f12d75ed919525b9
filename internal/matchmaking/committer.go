package matchmaking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// checkArity verifies a 2v2 lineup of four distinct players.
func checkArity(teamA, teamB []string) error {
	if len(teamA) != 2 || len(teamB) != 2 {
		return fmt.Errorf("%w: expected 2+2 players, got %d+%d", ErrInvalidArity, len(teamA), len(teamB))
	}
	if !distinct([]string{teamA[0], teamA[1], teamB[0], teamB[1]}) {
		return fmt.Errorf("%w: players must be distinct", ErrInvalidArity)
	}
	return nil
}

// commitMatch writes one match and its four memberships inside tx and
// returns the new match id. Team A is stored as team 1.
func commitMatch(ctx context.Context, tx *sql.Tx, d matchDraft) (string, error) {
	if err := checkArity(d.teamA, d.teamB); err != nil {
		return "", err
	}

	matchID := uuid.New().String()
	_, err := tx.ExecContext(ctx, `
		INSERT INTO matches (id, club_id, created_by_id, played_on, is_result_validated, source, source_id, created_at)
		VALUES (?, ?, ?, ?, 0, ?, ?, ?)
	`, matchID, d.clubID, d.createdBy, d.playedOn.Unix(), string(d.source), d.sourceID, time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("failed to insert match: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO match_players (match_id, player_id, team_id, position) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare match player insert: %w", err)
	}
	defer stmt.Close()

	for teamID, team := range [][]string{d.teamA, d.teamB} {
		for pos, playerID := range team {
			if _, err := stmt.ExecContext(ctx, matchID, playerID, teamID+1, pos+1); err != nil {
				return "", fmt.Errorf("failed to insert match player %s: %w", playerID, err)
			}
		}
	}

	log.Info("Committed match", "matchID", matchID, "source", d.source, "sourceID", d.sourceID, "team1", d.teamA, "team2", d.teamB)
	return matchID, nil
}

// GetMatch retrieves a committed match with its teams.
func (s *store) GetMatch(ctx context.Context, matchID string) (*Match, error) {
	var m Match
	var playedOn, createdAt int64
	var validated int
	var source string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, club_id, created_by_id, played_on, is_result_validated, source, source_id, created_at
		FROM matches
		WHERE id = ?
	`, matchID).Scan(&m.ID, &m.ClubID, &m.CreatedByID, &playedOn, &validated, &source, &m.SourceID, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	m.PlayedOn = time.Unix(playedOn, 0)
	m.CreatedAt = time.Unix(createdAt, 0)
	m.IsResultValidated = validated != 0
	m.Source = MatchSource(source)

	rows, err := s.db.QueryContext(ctx, `
		SELECT player_id, team_id FROM match_players
		WHERE match_id = ?
		ORDER BY team_id ASC, position ASC
	`, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query match players: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var playerID string
		var teamID int
		if err := rows.Scan(&playerID, &teamID); err != nil {
			return nil, fmt.Errorf("failed to scan match player row: %w", err)
		}
		if teamID == 1 {
			m.TeamA = append(m.TeamA, playerID)
		} else {
			m.TeamB = append(m.TeamB, playerID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate match players: %w", err)
	}
	return &m, nil
}
