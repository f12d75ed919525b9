package club

import (
	"database/sql"
	"errors"
	"sync"
	"time"
)

var (
	// ErrClubNotFound is returned when a club id does not exist.
	ErrClubNotFound = errors.New("club not found")
	// ErrPlayerNotFound is returned when a player id does not exist.
	ErrPlayerNotFound = errors.New("player not found")
)

// store handles all database operations for clubs and their players.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Side is the court side a player prefers to play on.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
	SideBoth  Side = "both"
	SideNone  Side = "none"
)

// ParseSide normalizes a stored or user supplied side. Unknown values map to SideNone.
func ParseSide(value string) Side {
	switch Side(value) {
	case SideLeft, SideRight, SideBoth:
		return Side(value)
	default:
		return SideNone
	}
}

// Gender is an open set of categories; the matchmaking engine only
// recognizes GenderMale and GenderFemale when balancing teams.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Club represents a padel club.
type Club struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	PlaytomicTenantID string    `json:"playtomic_tenant_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// PlayerRating is a snapshot of a player's rating and matchmaking attributes.
// Skill is maintained outside the matchmaking engine; Mu and Sigma are stored
// for reference only.
type PlayerRating struct {
	ID            string  `json:"id"`
	ClubID        string  `json:"club_id"`
	Name          string  `json:"name"`
	Skill         float64 `json:"skill"`
	Mu            float64 `json:"mu"`
	Sigma         float64 `json:"sigma"`
	PreferredSide Side    `json:"preferred_side"`
	Gender        Gender  `json:"gender"`
	MatchesPlayed int     `json:"matches_played"`
	PlaytomicID   *string `json:"playtomic_id,omitempty"`
}

// SyncedPlayer is a player observed in an externally played match.
type SyncedPlayer struct {
	PlaytomicID string
	Name        string
	Level       float64
}
