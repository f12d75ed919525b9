package playtomic

// SearchMatchesParams defines the parameters for searching for matches.
type SearchMatchesParams struct {
	SportID       string
	HasPlayers    bool
	Sort          string
	TenantIDs     []string
	FromStartDate string
}

// MatchSummary contains the essential details of a match from a search result.
type MatchSummary struct {
	MatchID string
	OwnerID *string
}

// PadelMatch is a played or booked match with the players' levels at the time.
type PadelMatch struct {
	MatchID      string
	OwnerID      string
	Start        int64
	End          int64
	GameStatus   GameStatus
	Teams        []Team
	ResourceName string
	Tenant       Tenant
}

// Players returns every player across both teams in team order.
func (m PadelMatch) Players() []Player {
	var players []Player
	for _, t := range m.Teams {
		players = append(players, t.Players...)
	}
	return players
}

// Tenant is the Playtomic venue a match was booked at.
type Tenant struct {
	ID   string
	Name string
}

// Team is one side of a match.
type Team struct {
	ID      string
	Players []Player
}

// Player is a participant with the Playtomic level shown on their profile.
// Level is zero when the player has not been levelled.
type Player struct {
	UserID string
	Name   string
	Level  float64
}

// GameStatus defines the status of a game.
type GameStatus string

const (
	GameStatusUnknown    GameStatus = "UNKNOWN"
	GameStatusPending    GameStatus = "PENDING"
	GameStatusPlayed     GameStatus = "PLAYED"
	GameStatusCanceled   GameStatus = "CANCELED"
	GameStatusWaitingFor GameStatus = "WAITING_FOR"
	GameStatusExpired    GameStatus = "EXPIRED"
)

func parseGameStatus(value string) GameStatus {
	switch s := GameStatus(value); s {
	case GameStatusPending, GameStatusPlayed, GameStatusCanceled, GameStatusWaitingFor, GameStatusExpired:
		return s
	default:
		return GameStatusUnknown
	}
}

// playtomicMatchResponse mirrors the fields we read from /v1/matches/{id}.
type playtomicMatchResponse struct {
	OwnerID      string `json:"owner_id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	GameStatus   string `json:"game_status"`
	ResourceName string `json:"resource_name"`
	Tenant       struct {
		ID   string `json:"tenant_id"`
		Name string `json:"tenant_name"`
	} `json:"tenant"`
	Teams []struct {
		TeamID  string `json:"team_id"`
		Players []struct {
			UserID     string   `json:"user_id"`
			Name       string   `json:"name"`
			LevelValue *float64 `json:"level_value"`
		} `json:"players"`
	} `json:"teams"`
}
