package matchmaking

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/padel-matchmaker/internal/club"
)

const suggestionColumns = `id, club_id, player1_id, player2_id, player3_id, player4_id,
	team1_skill, team2_skill, balance_score, status, match_id, created_at, updated_at`

// GenerateSuggestions runs generator, filter and scorer over the club's
// eligible players and persists the first candidates that pass as pending
// suggestions. The rating snapshot is not locked, so a player's skill may
// change before a suggestion is accepted.
func (s *store) GenerateSuggestions(ctx context.Context, params GenerateParams) ([]Suggestion, error) {
	settings, err := s.GetSettings(ctx, params.ClubID)
	if err != nil {
		return nil, err
	}
	resolved := settings.Resolve(params)
	if err := resolved.Validate(); err != nil {
		return nil, err
	}

	players, err := s.ratings.ListEligible(params.ClubID, resolved.MinMatches)
	if err != nil {
		return nil, fmt.Errorf("failed to list eligible players: %w", err)
	}
	if len(players) < 4 {
		return nil, fmt.Errorf("%w: club %s has %d eligible players, need at least 4", ErrInsufficientPlayers, params.ClubID, len(players))
	}
	players = sortBySkill(players)

	candidates := Take(Filter(Candidates(players), resolved.Filter()), resolved.SuggestionLimit)
	log.Debug("Generated candidates",
		"clubID", params.ClubID,
		"eligible", len(players),
		"combinations", CombinationCount(len(players)),
		"kept", len(candidates),
	)
	if len(candidates) == 0 {
		return []Suggestion{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO matchmaking_suggestions (
			id, club_id, player1_id, player2_id, player3_id, player4_id,
			team1_skill, team2_skill, balance_score, status, position, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare suggestion insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	suggestions := make([]Suggestion, 0, len(candidates))
	for i, c := range candidates {
		sug := Suggestion{
			ID:           uuid.New().String(),
			ClubID:       params.ClubID,
			PlayerIDs:    [4]string{c.Players[0].ID, c.Players[1].ID, c.Players[2].ID, c.Players[3].ID},
			TeamASkill:   c.TeamASkill,
			TeamBSkill:   c.TeamBSkill,
			BalanceScore: c.BalanceScore,
			Status:       SuggestionPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		_, err := stmt.ExecContext(ctx,
			sug.ID, sug.ClubID,
			sug.PlayerIDs[0], sug.PlayerIDs[1], sug.PlayerIDs[2], sug.PlayerIDs[3],
			sug.TeamASkill, sug.TeamBSkill, sug.BalanceScore, string(sug.Status),
			i, now.Unix(), now.Unix(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert suggestion: %w", err)
		}
		suggestions = append(suggestions, sug)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit suggestions: %w", err)
	}
	log.Info("Generated matchmaking suggestions", "clubID", params.ClubID, "count", len(suggestions))
	return suggestions, nil
}

// AcceptSuggestion commits the suggestion's fixed lineup as a match and marks
// it accepted in the same transaction.
func (s *store) AcceptSuggestion(ctx context.Context, suggestionID string, playedAt time.Time, acceptedBy string) (string, error) {
	if acceptedBy == "" {
		return "", fmt.Errorf("%w: accepting a suggestion requires the accepting user", ErrInvalidArgument)
	}
	if playedAt.IsZero() {
		playedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sug, err := getSuggestion(ctx, tx, suggestionID)
	if err != nil {
		return "", err
	}
	if sug.Status != SuggestionPending {
		return "", fmt.Errorf("%w: suggestion %s is %s", ErrInvalidState, suggestionID, sug.Status)
	}

	matchID, err := commitMatch(ctx, tx, matchDraft{
		clubID:    sug.ClubID,
		createdBy: acceptedBy,
		playedOn:  playedAt,
		source:    SourceSuggestion,
		sourceID:  sug.ID,
		teamA:     sug.TeamA(),
		teamB:     sug.TeamB(),
	})
	if err != nil {
		return "", err
	}

	if err := transitionSuggestion(ctx, tx, suggestionID, SuggestionAccepted, &matchID); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit suggestion acceptance: %w", err)
	}

	log.Info("Accepted suggestion", "suggestionID", suggestionID, "matchID", matchID, "acceptedBy", acceptedBy)
	return matchID, nil
}

// RejectSuggestion marks a pending suggestion rejected.
func (s *store) RejectSuggestion(ctx context.Context, suggestionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sug, err := getSuggestion(ctx, tx, suggestionID)
	if err != nil {
		return err
	}
	if sug.Status != SuggestionPending {
		return fmt.Errorf("%w: suggestion %s is %s", ErrInvalidState, suggestionID, sug.Status)
	}
	if err := transitionSuggestion(ctx, tx, suggestionID, SuggestionRejected, nil); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit suggestion rejection: %w", err)
	}

	log.Info("Rejected suggestion", "suggestionID", suggestionID)
	return nil
}

// GetSuggestion retrieves a suggestion by ID.
func (s *store) GetSuggestion(ctx context.Context, suggestionID string) (*Suggestion, error) {
	return getSuggestion(ctx, s.db, suggestionID)
}

// ListSuggestions returns a club's suggestions, newest run first and in
// generation order within a run.
func (s *store) ListSuggestions(ctx context.Context, clubID string, status SuggestionStatus) ([]Suggestion, error) {
	query := `SELECT ` + suggestionColumns + ` FROM matchmaking_suggestions WHERE club_id = ?`
	args := []any{clubID}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC, position ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer rows.Close()

	suggestions := []Suggestion{}
	for rows.Next() {
		sug, err := scanSuggestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan suggestion row: %w", err)
		}
		suggestions = append(suggestions, sug)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate suggestions: %w", err)
	}
	return suggestions, nil
}

// transitionSuggestion moves a pending suggestion to a terminal status. The
// status check is part of the update so only one caller can win.
func transitionSuggestion(ctx context.Context, tx *sql.Tx, suggestionID string, to SuggestionStatus, matchID *string) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE matchmaking_suggestions
		SET status = ?, match_id = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`, string(to), matchID, time.Now().Unix(), suggestionID, string(SuggestionPending))
	if err != nil {
		return fmt.Errorf("failed to update suggestion status: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: suggestion %s is no longer pending", ErrInvalidState, suggestionID)
	}
	return nil
}

func getSuggestion(ctx context.Context, q querier, suggestionID string) (*Suggestion, error) {
	row := q.QueryRowContext(ctx, `SELECT `+suggestionColumns+` FROM matchmaking_suggestions WHERE id = ?`, suggestionID)
	sug, err := scanSuggestion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: suggestion %s", ErrNotFound, suggestionID)
		}
		return nil, fmt.Errorf("failed to get suggestion: %w", err)
	}
	return &sug, nil
}

func scanSuggestion(scanner interface{ Scan(...any) error }) (Suggestion, error) {
	var sug Suggestion
	var status string
	var matchID sql.NullString
	var createdAt, updatedAt int64
	err := scanner.Scan(
		&sug.ID, &sug.ClubID,
		&sug.PlayerIDs[0], &sug.PlayerIDs[1], &sug.PlayerIDs[2], &sug.PlayerIDs[3],
		&sug.TeamASkill, &sug.TeamBSkill, &sug.BalanceScore,
		&status, &matchID, &createdAt, &updatedAt,
	)
	if err != nil {
		return Suggestion{}, err
	}
	sug.Status = SuggestionStatus(status)
	sug.MatchID = stringFromNull(matchID)
	sug.CreatedAt = time.Unix(createdAt, 0)
	sug.UpdatedAt = time.Unix(updatedAt, 0)
	return sug, nil
}

// sortBySkill returns a copy of players ordered by descending skill, ties by id.
func sortBySkill(players []club.PlayerRating) []club.PlayerRating {
	sorted := slices.Clone(players)
	slices.SortStableFunc(sorted, func(a, b club.PlayerRating) int {
		if c := cmp.Compare(b.Skill, a.Skill); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return sorted
}
