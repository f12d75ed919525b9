package club

// ClubStore defines the interface for interacting with the club's data.
type ClubStore interface {
	UpsertClub(club Club) error
	GetClub(clubID string) (*Club, error)
	GetClubs() ([]Club, error)
	UpsertPlayers(players []PlayerRating) error
	GetPlayer(playerID string) (*PlayerRating, error)
	GetPlayers(clubID string) ([]PlayerRating, error)
	// ListEligible returns the club's players with at least minMatches recorded
	// matches, strongest first.
	ListEligible(clubID string, minMatches int) ([]PlayerRating, error)
	// ApplySyncedMatch records an externally played match once. It returns false
	// when the match was already applied.
	ApplySyncedMatch(clubID, matchID string, players []SyncedPlayer) (bool, error)
}
