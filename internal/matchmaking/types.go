package matchmaking

import (
	"database/sql"
	"sync"
	"time"

	"github.com/mauv0809/padel-matchmaker/internal/club"
)

// SuggestionStatus represents the lifecycle state of a generated suggestion.
type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionAccepted SuggestionStatus = "accepted"
	SuggestionRejected SuggestionStatus = "rejected"
)

// RequestStatus represents the lifecycle state of a match request.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestCompleted RequestStatus = "completed"
)

// ParticipantStatus is a player's answer to a match request.
type ParticipantStatus string

const (
	ParticipantInvited   ParticipantStatus = "invited"
	ParticipantConfirmed ParticipantStatus = "confirmed"
	ParticipantDeclined  ParticipantStatus = "declined"
)

// Valid reports whether s is one of the known participant statuses.
func (s ParticipantStatus) Valid() bool {
	switch s {
	case ParticipantInvited, ParticipantConfirmed, ParticipantDeclined:
		return true
	}
	return false
}

// MatchSource records which flow committed a match.
type MatchSource string

const (
	SourceSuggestion MatchSource = "suggestion"
	SourceRequest    MatchSource = "request"
)

// MatchCandidate is an ephemeral 2v2 grouping. Players[0:2] form team A and
// Players[2:4] form team B.
type MatchCandidate struct {
	Players      [4]club.PlayerRating
	TeamASkill   float64
	TeamBSkill   float64
	SkillGap     float64
	BalanceScore float64
}

// TeamA returns the two players of team A.
func (c MatchCandidate) TeamA() []club.PlayerRating { return c.Players[0:2] }

// TeamB returns the two players of team B.
func (c MatchCandidate) TeamB() []club.PlayerRating { return c.Players[2:4] }

// FilterConfig holds the predicates a candidate must satisfy.
type FilterConfig struct {
	MinSkillGap           float64 `json:"min_skill_difference"`
	MaxSkillGap           float64 `json:"max_skill_difference"`
	EnforceSidePreference bool    `json:"consider_preferred_side"`
	EnforceGenderBalance  bool    `json:"consider_gender"`
}

// GenerateParams are the inputs of a generation run. Nil fields fall back to
// the club's stored settings, then to the defaults.
type GenerateParams struct {
	ClubID                string   `json:"club_id"`
	MinSkillGap           *float64 `json:"min_skill_difference,omitempty"`
	MaxSkillGap           *float64 `json:"max_skill_difference,omitempty"`
	EnforceSidePreference *bool    `json:"consider_preferred_side,omitempty"`
	EnforceGenderBalance  *bool    `json:"consider_gender,omitempty"`
	MinMatches            *int     `json:"min_matches,omitempty"`
	Limit                 *int     `json:"limit,omitempty"`
}

// Settings are the per-club generation defaults.
type Settings struct {
	ClubID                string    `json:"club_id"`
	MinSkillGap           float64   `json:"min_skill_difference"`
	MaxSkillGap           float64   `json:"max_skill_difference"`
	MinMatches            int       `json:"min_matches_for_trueskill"`
	EnforceSidePreference bool      `json:"consider_preferred_side"`
	EnforceGenderBalance  bool      `json:"consider_gender"`
	SuggestionLimit       int       `json:"suggestion_limit"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Suggestion is a persisted, system proposed match. PlayerIDs[0:2] are team A
// and PlayerIDs[2:4] are team B.
type Suggestion struct {
	ID           string           `json:"id"`
	ClubID       string           `json:"club_id"`
	PlayerIDs    [4]string        `json:"player_ids"`
	TeamASkill   float64          `json:"team1_skill"`
	TeamBSkill   float64          `json:"team2_skill"`
	BalanceScore float64          `json:"balance_score"`
	Status       SuggestionStatus `json:"status"`
	MatchID      *string          `json:"match_id,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// TeamA returns the ids of team A.
func (s Suggestion) TeamA() []string { return s.PlayerIDs[0:2] }

// TeamB returns the ids of team B.
func (s Suggestion) TeamB() []string { return s.PlayerIDs[2:4] }

// CreateRequestParams are the inputs of CreateMatchRequest.
type CreateRequestParams struct {
	ClubID           string     `json:"club_id"`
	RequestedByID    string     `json:"requested_by_id"`
	PreferredDate    *time.Time `json:"preferred_date,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
	InitialPlayerIDs []string   `json:"initial_players,omitempty"`
}

// MatchRequest is a player initiated call for a match.
type MatchRequest struct {
	ID            string        `json:"id"`
	ClubID        string        `json:"club_id"`
	RequestedByID string        `json:"requested_by_id"`
	Status        RequestStatus `json:"status"`
	PreferredDate *time.Time    `json:"preferred_date,omitempty"`
	Notes         *string       `json:"notes,omitempty"`
	MatchID       *string       `json:"match_id,omitempty"`
	Participants  []Participant `json:"players"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ConfirmedCount returns the number of participants currently confirmed.
func (r MatchRequest) ConfirmedCount() int {
	n := 0
	for _, p := range r.Participants {
		if p.Status == ParticipantConfirmed {
			n++
		}
	}
	return n
}

// Participant is a player's entry in a match request. ConfirmedSeq orders
// confirmations and is nil while the player is not confirmed.
type Participant struct {
	PlayerID     string            `json:"player_id"`
	Status       ParticipantStatus `json:"status"`
	Position     int               `json:"position"`
	ConfirmedSeq *int              `json:"confirmed_seq,omitempty"`
}

// Match is a committed 2v2 match.
type Match struct {
	ID                string      `json:"id"`
	ClubID            string      `json:"club_id"`
	CreatedByID       string      `json:"created_by_id"`
	PlayedOn          time.Time   `json:"played_on"`
	IsResultValidated bool        `json:"is_result_validated"`
	Source            MatchSource `json:"source"`
	SourceID          string      `json:"source_id"`
	TeamA             []string    `json:"team1"`
	TeamB             []string    `json:"team2"`
	CreatedAt         time.Time   `json:"created_at"`
}

// BalanceReport is the evaluation of a manually composed lineup.
type BalanceReport struct {
	TeamASkill   float64 `json:"team1_skill"`
	TeamBSkill   float64 `json:"team2_skill"`
	SkillGap     float64 `json:"skill_difference"`
	BalanceScore float64 `json:"balance_score"`
	Rating       Rating  `json:"rating"`
}

// matchDraft is what the committer turns into a Match.
type matchDraft struct {
	clubID    string
	createdBy string
	playedOn  time.Time
	source    MatchSource
	sourceID  string
	teamA     []string
	teamB     []string
}

// store handles database operations for matchmaking.
type store struct {
	db           *sql.DB
	ratings      RatingStore
	defaultLimit int
	// mu serializes writers inside the process; the conditional updates make
	// the state transitions safe across processes too.
	mu sync.Mutex
}
