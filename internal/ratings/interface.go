package ratings

import (
	"context"

	"github.com/mauv0809/padel-matchmaker/internal/club"
)

// Store is the part of the club store the sync writes to.
type Store interface {
	GetClubs() ([]club.Club, error)
	ApplySyncedMatch(clubID, matchID string, players []club.SyncedPlayer) (bool, error)
}

// RatingSyncer imports played matches and player levels from Playtomic.
type RatingSyncer interface {
	Sync(ctx context.Context, opts SyncOptions) (Result, error)
}
