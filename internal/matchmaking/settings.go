package matchmaking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

const (
	defaultMaxSkillGap = 5.0
	defaultMinMatches  = 10
)

// DefaultSettings returns the settings a club has before it stores its own.
func DefaultSettings(clubID string, limit int) Settings {
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}
	return Settings{
		ClubID:          clubID,
		MinSkillGap:     0,
		MaxSkillGap:     defaultMaxSkillGap,
		MinMatches:      defaultMinMatches,
		SuggestionLimit: limit,
	}
}

// Validate checks that the settings describe a usable generation run.
func (s Settings) Validate() error {
	switch {
	case s.MinSkillGap < 0:
		return fmt.Errorf("%w: min skill difference must not be negative", ErrInvalidArgument)
	case s.MaxSkillGap < s.MinSkillGap:
		return fmt.Errorf("%w: max skill difference %.2f is below min %.2f", ErrInvalidArgument, s.MaxSkillGap, s.MinSkillGap)
	case s.MinMatches < 0:
		return fmt.Errorf("%w: min matches must not be negative", ErrInvalidArgument)
	case s.SuggestionLimit <= 0:
		return fmt.Errorf("%w: suggestion limit must be positive", ErrInvalidArgument)
	}
	return nil
}

// Resolve overlays the explicit params on top of the settings.
func (s Settings) Resolve(params GenerateParams) Settings {
	out := s
	if params.MinSkillGap != nil {
		out.MinSkillGap = *params.MinSkillGap
	}
	if params.MaxSkillGap != nil {
		out.MaxSkillGap = *params.MaxSkillGap
	}
	if params.EnforceSidePreference != nil {
		out.EnforceSidePreference = *params.EnforceSidePreference
	}
	if params.EnforceGenderBalance != nil {
		out.EnforceGenderBalance = *params.EnforceGenderBalance
	}
	if params.MinMatches != nil {
		out.MinMatches = *params.MinMatches
	}
	if params.Limit != nil {
		out.SuggestionLimit = *params.Limit
	}
	return out
}

// Filter returns the candidate predicates of the settings.
func (s Settings) Filter() FilterConfig {
	return FilterConfig{
		MinSkillGap:           s.MinSkillGap,
		MaxSkillGap:           s.MaxSkillGap,
		EnforceSidePreference: s.EnforceSidePreference,
		EnforceGenderBalance:  s.EnforceGenderBalance,
	}
}

// GetSettings returns the club's stored settings or the defaults.
func (s *store) GetSettings(ctx context.Context, clubID string) (*Settings, error) {
	if err := requireClub(ctx, s.db, clubID); err != nil {
		return nil, err
	}

	settings := DefaultSettings(clubID, s.defaultLimit)
	var side, gender int
	var updatedAt int64
	err := s.db.QueryRowContext(ctx, `
		SELECT min_skill_difference, max_skill_difference, min_matches_for_trueskill,
			consider_preferred_side, consider_gender, suggestion_limit, updated_at
		FROM matchmaking_settings
		WHERE club_id = ?
	`, clubID).Scan(
		&settings.MinSkillGap,
		&settings.MaxSkillGap,
		&settings.MinMatches,
		&side,
		&gender,
		&settings.SuggestionLimit,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &settings, nil
		}
		return nil, fmt.Errorf("failed to get matchmaking settings: %w", err)
	}
	settings.EnforceSidePreference = side != 0
	settings.EnforceGenderBalance = gender != 0
	settings.UpdatedAt = time.Unix(updatedAt, 0)
	return &settings, nil
}

// UpdateSettings stores the club's settings.
func (s *store) UpdateSettings(ctx context.Context, settings Settings) (*Settings, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := requireClub(ctx, s.db, settings.ClubID); err != nil {
		return nil, err
	}

	settings.UpdatedAt = time.Now()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO matchmaking_settings (
			club_id, min_skill_difference, max_skill_difference, min_matches_for_trueskill,
			consider_preferred_side, consider_gender, suggestion_limit, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(club_id) DO UPDATE SET
			min_skill_difference = excluded.min_skill_difference,
			max_skill_difference = excluded.max_skill_difference,
			min_matches_for_trueskill = excluded.min_matches_for_trueskill,
			consider_preferred_side = excluded.consider_preferred_side,
			consider_gender = excluded.consider_gender,
			suggestion_limit = excluded.suggestion_limit,
			updated_at = excluded.updated_at;
	`,
		settings.ClubID,
		settings.MinSkillGap,
		settings.MaxSkillGap,
		settings.MinMatches,
		boolToInt(settings.EnforceSidePreference),
		boolToInt(settings.EnforceGenderBalance),
		settings.SuggestionLimit,
		settings.UpdatedAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update matchmaking settings: %w", err)
	}
	log.Info("Updated matchmaking settings", "clubID", settings.ClubID, "maxSkillGap", settings.MaxSkillGap, "minMatches", settings.MinMatches)
	return &settings, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
