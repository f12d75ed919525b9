package club

import (
	"sync"
)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertClubFunc       func(club Club) error
	GetClubFunc          func(clubID string) (*Club, error)
	GetClubsFunc         func() ([]Club, error)
	UpsertPlayersFunc    func(players []PlayerRating) error
	GetPlayerFunc        func(playerID string) (*PlayerRating, error)
	GetPlayersFunc       func(clubID string) ([]PlayerRating, error)
	ListEligibleFunc     func(clubID string, minMatches int) ([]PlayerRating, error)
	ApplySyncedMatchFunc func(clubID, matchID string, players []SyncedPlayer) (bool, error)

	// Call records
	UpsertClubCalls    []Club
	UpsertPlayersCalls [][]PlayerRating
	GetPlayersCalls    []string
	ListEligibleCalls  []struct {
		ClubID     string
		MinMatches int
	}
	ApplySyncedMatchCalls []struct {
		ClubID  string
		MatchID string
		Players []SyncedPlayer
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertClubCalls = nil
	m.UpsertPlayersCalls = nil
	m.GetPlayersCalls = nil
	m.ListEligibleCalls = nil
	m.ApplySyncedMatchCalls = nil
}

func (m *MockStore) UpsertClub(club Club) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertClubCalls = append(m.UpsertClubCalls, club)
	if m.UpsertClubFunc != nil {
		return m.UpsertClubFunc(club)
	}
	return nil
}

func (m *MockStore) GetClub(clubID string) (*Club, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetClubFunc != nil {
		return m.GetClubFunc(clubID)
	}
	return &Club{ID: clubID}, nil
}

func (m *MockStore) GetClubs() ([]Club, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetClubsFunc != nil {
		return m.GetClubsFunc()
	}
	return nil, nil
}

func (m *MockStore) UpsertPlayers(players []PlayerRating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPlayersCalls = append(m.UpsertPlayersCalls, players)
	if m.UpsertPlayersFunc != nil {
		return m.UpsertPlayersFunc(players)
	}
	return nil
}

func (m *MockStore) GetPlayer(playerID string) (*PlayerRating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(playerID)
	}
	return nil, ErrPlayerNotFound
}

func (m *MockStore) GetPlayers(clubID string) ([]PlayerRating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetPlayersCalls = append(m.GetPlayersCalls, clubID)
	if m.GetPlayersFunc != nil {
		return m.GetPlayersFunc(clubID)
	}
	return nil, nil
}

func (m *MockStore) ListEligible(clubID string, minMatches int) ([]PlayerRating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListEligibleCalls = append(m.ListEligibleCalls, struct {
		ClubID     string
		MinMatches int
	}{clubID, minMatches})
	if m.ListEligibleFunc != nil {
		return m.ListEligibleFunc(clubID, minMatches)
	}
	return nil, nil
}

func (m *MockStore) ApplySyncedMatch(clubID, matchID string, players []SyncedPlayer) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ApplySyncedMatchCalls = append(m.ApplySyncedMatchCalls, struct {
		ClubID  string
		MatchID string
		Players []SyncedPlayer
	}{clubID, matchID, players})
	if m.ApplySyncedMatchFunc != nil {
		return m.ApplySyncedMatchFunc(clubID, matchID, players)
	}
	return true, nil
}
