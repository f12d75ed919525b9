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
)

// CreateMatchRequest opens a pending request. The requester is not added as
// a participant; initial players that exist are invited and unknown ids are
// skipped.
func (s *store) CreateMatchRequest(ctx context.Context, params CreateRequestParams) (*MatchRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireClub(ctx, tx, params.ClubID); err != nil {
		return nil, err
	}
	if err := requirePlayer(ctx, tx, params.RequestedByID); err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	requestID := uuid.New().String()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO match_requests (id, club_id, requested_by_id, status, preferred_date, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, requestID, params.ClubID, params.RequestedByID, string(RequestPending), unixOrNil(params.PreferredDate), params.Notes, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create match request: %w", err)
	}

	position := 0
	seen := make(map[string]bool, len(params.InitialPlayerIDs))
	for _, playerID := range params.InitialPlayerIDs {
		if seen[playerID] {
			continue
		}
		seen[playerID] = true
		if err := requirePlayer(ctx, tx, playerID); err != nil {
			if errors.Is(err, ErrNotFound) {
				log.Debug("Skipping unknown initial player", "requestID", requestID, "playerID", playerID)
				continue
			}
			return nil, err
		}
		position++
		_, err := tx.ExecContext(ctx, `
			INSERT INTO match_request_players (match_request_id, player_id, status, position, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, requestID, playerID, string(ParticipantInvited), position, now, now)
		if err != nil {
			return nil, fmt.Errorf("failed to invite player %s: %w", playerID, err)
		}
	}

	request, err := getMatchRequest(ctx, tx, requestID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit match request: %w", err)
	}

	log.Info("Created match request", "requestID", requestID, "clubID", params.ClubID, "requester", params.RequestedByID, "invited", position)
	return request, nil
}

// AddRequestPlayer adds a participant to a pending request. An empty status
// means invited.
func (s *store) AddRequestPlayer(ctx context.Context, requestID, playerID string, status ParticipantStatus) error {
	if status == "" {
		status = ParticipantInvited
	}
	if !status.Valid() {
		return fmt.Errorf("%w: unknown participant status %q", ErrInvalidArgument, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	reqStatus, err := getRequestStatus(ctx, tx, requestID)
	if err != nil {
		return err
	}
	if err := requirePlayer(ctx, tx, playerID); err != nil {
		return err
	}
	if reqStatus != RequestPending {
		return fmt.Errorf("%w: match request %s is %s", ErrInvalidState, requestID, reqStatus)
	}

	var position int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), 0) + 1 FROM match_request_players WHERE match_request_id = ?`, requestID).Scan(&position); err != nil {
		return fmt.Errorf("failed to get next position: %w", err)
	}
	var seq any
	if status == ParticipantConfirmed {
		next, err := nextConfirmedSeq(ctx, tx, requestID)
		if err != nil {
			return err
		}
		seq = next
	}

	now := time.Now().Unix()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO match_request_players (match_request_id, player_id, status, position, confirmed_seq, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(match_request_id, player_id) DO NOTHING
	`, requestID, playerID, string(status), position, seq, now, now)
	if err != nil {
		return fmt.Errorf("failed to add player to match request: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: player %s is already in match request %s", ErrConflict, playerID, requestID)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit request player: %w", err)
	}

	log.Info("Added player to match request", "requestID", requestID, "playerID", playerID, "status", status)
	return nil
}

// UpdateRequestParticipant sets a participant's status. It is not gated by
// the request's status. Moving to confirmed takes the next confirmation
// sequence number; leaving confirmed clears it.
func (s *store) UpdateRequestParticipant(ctx context.Context, requestID, playerID string, status ParticipantStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown participant status %q", ErrInvalidArgument, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current string
	var seq sql.NullInt64
	err = tx.QueryRowContext(ctx, `
		SELECT status, confirmed_seq FROM match_request_players
		WHERE match_request_id = ? AND player_id = ?
	`, requestID, playerID).Scan(&current, &seq)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: player %s in match request %s", ErrNotFound, playerID, requestID)
		}
		return fmt.Errorf("failed to get request player: %w", err)
	}

	switch {
	case status != ParticipantConfirmed:
		seq = sql.NullInt64{}
	case ParticipantStatus(current) != ParticipantConfirmed || !seq.Valid:
		next, err := nextConfirmedSeq(ctx, tx, requestID)
		if err != nil {
			return err
		}
		seq = sql.NullInt64{Int64: int64(next), Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE match_request_players SET status = ?, confirmed_seq = ?, updated_at = ?
		WHERE match_request_id = ? AND player_id = ?
	`, string(status), seq, time.Now().Unix(), requestID, playerID)
	if err != nil {
		return fmt.Errorf("failed to update request player: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit request player update: %w", err)
	}

	log.Info("Updated match request participant", "requestID", requestID, "playerID", playerID, "from", current, "to", status)
	return nil
}

// CompleteMatchRequest turns a request with exactly four confirmed players
// into a match. The first two to confirm form team A.
func (s *store) CompleteMatchRequest(ctx context.Context, requestID string, playedAt time.Time, clubOverride *string) (string, error) {
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

	request, err := getMatchRequest(ctx, tx, requestID)
	if err != nil {
		return "", err
	}
	if request.Status != RequestPending {
		return "", fmt.Errorf("%w: match request %s is %s", ErrInvalidState, requestID, request.Status)
	}

	confirmed := confirmedInOrder(request.Participants)
	if len(confirmed) != 4 {
		return "", fmt.Errorf("%w: match request %s has %d confirmed players, need exactly 4", ErrPreconditionFailed, requestID, len(confirmed))
	}

	clubID := request.ClubID
	if clubOverride != nil && *clubOverride != "" {
		if err := requireClub(ctx, tx, *clubOverride); err != nil {
			return "", err
		}
		clubID = *clubOverride
	}

	matchID, err := commitMatch(ctx, tx, matchDraft{
		clubID:    clubID,
		createdBy: request.RequestedByID,
		playedOn:  playedAt,
		source:    SourceRequest,
		sourceID:  request.ID,
		teamA:     confirmed[0:2],
		teamB:     confirmed[2:4],
	})
	if err != nil {
		return "", err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE match_requests SET status = ?, match_id = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`, string(RequestCompleted), matchID, time.Now().Unix(), requestID, string(RequestPending))
	if err != nil {
		return "", fmt.Errorf("failed to complete match request: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", fmt.Errorf("%w: match request %s is no longer pending", ErrInvalidState, requestID)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit match request completion: %w", err)
	}

	log.Info("Completed match request", "requestID", requestID, "matchID", matchID, "clubID", clubID)
	return matchID, nil
}

// GetMatchRequest retrieves a match request with its participants.
func (s *store) GetMatchRequest(ctx context.Context, requestID string) (*MatchRequest, error) {
	return getMatchRequest(ctx, s.db, requestID)
}

// confirmedInOrder returns the confirmed player ids by confirmation sequence,
// falling back to insertion position.
func confirmedInOrder(participants []Participant) []string {
	confirmed := make([]Participant, 0, len(participants))
	for _, p := range participants {
		if p.Status == ParticipantConfirmed {
			confirmed = append(confirmed, p)
		}
	}
	slices.SortStableFunc(confirmed, func(a, b Participant) int {
		switch {
		case a.ConfirmedSeq != nil && b.ConfirmedSeq != nil:
			if c := cmp.Compare(*a.ConfirmedSeq, *b.ConfirmedSeq); c != 0 {
				return c
			}
		case a.ConfirmedSeq != nil:
			return -1
		case b.ConfirmedSeq != nil:
			return 1
		}
		return cmp.Compare(a.Position, b.Position)
	})
	ids := make([]string, len(confirmed))
	for i, p := range confirmed {
		ids[i] = p.PlayerID
	}
	return ids
}

func nextConfirmedSeq(ctx context.Context, tx *sql.Tx, requestID string) (int, error) {
	var next int
	err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(confirmed_seq), 0) + 1 FROM match_request_players WHERE match_request_id = ?`, requestID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to get next confirmation sequence: %w", err)
	}
	return next, nil
}

func getRequestStatus(ctx context.Context, q querier, requestID string) (RequestStatus, error) {
	var status string
	err := q.QueryRowContext(ctx, `SELECT status FROM match_requests WHERE id = ?`, requestID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: match request %s", ErrNotFound, requestID)
		}
		return "", fmt.Errorf("failed to get match request status: %w", err)
	}
	return RequestStatus(status), nil
}

func getMatchRequest(ctx context.Context, q querier, requestID string) (*MatchRequest, error) {
	var r MatchRequest
	var status string
	var preferredDate sql.NullInt64
	var notes, matchID sql.NullString
	var createdAt, updatedAt int64
	err := q.QueryRowContext(ctx, `
		SELECT id, club_id, requested_by_id, status, preferred_date, notes, match_id, created_at, updated_at
		FROM match_requests
		WHERE id = ?
	`, requestID).Scan(&r.ID, &r.ClubID, &r.RequestedByID, &status, &preferredDate, &notes, &matchID, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: match request %s", ErrNotFound, requestID)
		}
		return nil, fmt.Errorf("failed to get match request: %w", err)
	}
	r.Status = RequestStatus(status)
	r.PreferredDate = timeFromNull(preferredDate)
	r.Notes = stringFromNull(notes)
	r.MatchID = stringFromNull(matchID)
	r.CreatedAt = time.Unix(createdAt, 0)
	r.UpdatedAt = time.Unix(updatedAt, 0)

	rows, err := q.QueryContext(ctx, `
		SELECT player_id, status, position, confirmed_seq
		FROM match_request_players
		WHERE match_request_id = ?
		ORDER BY position ASC
	`, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query request players: %w", err)
	}
	defer rows.Close()

	r.Participants = []Participant{}
	for rows.Next() {
		var p Participant
		var pStatus string
		var seq sql.NullInt64
		if err := rows.Scan(&p.PlayerID, &pStatus, &p.Position, &seq); err != nil {
			return nil, fmt.Errorf("failed to scan request player row: %w", err)
		}
		p.Status = ParticipantStatus(pStatus)
		if seq.Valid {
			v := int(seq.Int64)
			p.ConfirmedSeq = &v
		}
		r.Participants = append(r.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate request players: %w", err)
	}
	return &r, nil
}
