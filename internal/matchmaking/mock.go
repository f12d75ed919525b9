package matchmaking

import (
	"context"
	"sync"
	"time"
)

// MockService is a mock implementation of MatchmakingService for testing.
// It is safe for concurrent use.
type MockService struct {
	mu sync.Mutex

	// Spies for method calls
	GenerateSuggestionsFunc      func(ctx context.Context, params GenerateParams) ([]Suggestion, error)
	AcceptSuggestionFunc         func(ctx context.Context, suggestionID string, playedAt time.Time, acceptedBy string) (string, error)
	RejectSuggestionFunc         func(ctx context.Context, suggestionID string) error
	GetSuggestionFunc            func(ctx context.Context, suggestionID string) (*Suggestion, error)
	ListSuggestionsFunc          func(ctx context.Context, clubID string, status SuggestionStatus) ([]Suggestion, error)
	CreateMatchRequestFunc       func(ctx context.Context, params CreateRequestParams) (*MatchRequest, error)
	AddRequestPlayerFunc         func(ctx context.Context, requestID, playerID string, status ParticipantStatus) error
	UpdateRequestParticipantFunc func(ctx context.Context, requestID, playerID string, status ParticipantStatus) error
	CompleteMatchRequestFunc     func(ctx context.Context, requestID string, playedAt time.Time, clubOverride *string) (string, error)
	GetMatchRequestFunc          func(ctx context.Context, requestID string) (*MatchRequest, error)
	GetMatchFunc                 func(ctx context.Context, matchID string) (*Match, error)
	GetSettingsFunc              func(ctx context.Context, clubID string) (*Settings, error)
	UpdateSettingsFunc           func(ctx context.Context, settings Settings) (*Settings, error)

	// Call records
	GenerateSuggestionsCalls []GenerateParams
	AcceptSuggestionCalls    []struct {
		SuggestionID string
		PlayedAt     time.Time
		AcceptedBy   string
	}
	RejectSuggestionCalls   []string
	CreateMatchRequestCalls []CreateRequestParams
	AddRequestPlayerCalls   []struct {
		RequestID string
		PlayerID  string
		Status    ParticipantStatus
	}
	UpdateRequestParticipantCalls []struct {
		RequestID string
		PlayerID  string
		Status    ParticipantStatus
	}
	CompleteMatchRequestCalls []struct {
		RequestID    string
		PlayedAt     time.Time
		ClubOverride *string
	}
	UpdateSettingsCalls []Settings
}

// NewMock creates a new mock instance.
func NewMock() *MockService {
	return &MockService{}
}

// Reset clears all call records.
func (m *MockService) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateSuggestionsCalls = nil
	m.AcceptSuggestionCalls = nil
	m.RejectSuggestionCalls = nil
	m.CreateMatchRequestCalls = nil
	m.AddRequestPlayerCalls = nil
	m.UpdateRequestParticipantCalls = nil
	m.CompleteMatchRequestCalls = nil
	m.UpdateSettingsCalls = nil
}

func (m *MockService) GenerateSuggestions(ctx context.Context, params GenerateParams) ([]Suggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateSuggestionsCalls = append(m.GenerateSuggestionsCalls, params)
	if m.GenerateSuggestionsFunc != nil {
		return m.GenerateSuggestionsFunc(ctx, params)
	}
	return []Suggestion{}, nil
}

func (m *MockService) AcceptSuggestion(ctx context.Context, suggestionID string, playedAt time.Time, acceptedBy string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AcceptSuggestionCalls = append(m.AcceptSuggestionCalls, struct {
		SuggestionID string
		PlayedAt     time.Time
		AcceptedBy   string
	}{suggestionID, playedAt, acceptedBy})
	if m.AcceptSuggestionFunc != nil {
		return m.AcceptSuggestionFunc(ctx, suggestionID, playedAt, acceptedBy)
	}
	return "", nil
}

func (m *MockService) RejectSuggestion(ctx context.Context, suggestionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RejectSuggestionCalls = append(m.RejectSuggestionCalls, suggestionID)
	if m.RejectSuggestionFunc != nil {
		return m.RejectSuggestionFunc(ctx, suggestionID)
	}
	return nil
}

func (m *MockService) GetSuggestion(ctx context.Context, suggestionID string) (*Suggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetSuggestionFunc != nil {
		return m.GetSuggestionFunc(ctx, suggestionID)
	}
	return nil, ErrNotFound
}

func (m *MockService) ListSuggestions(ctx context.Context, clubID string, status SuggestionStatus) ([]Suggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListSuggestionsFunc != nil {
		return m.ListSuggestionsFunc(ctx, clubID, status)
	}
	return []Suggestion{}, nil
}

func (m *MockService) CreateMatchRequest(ctx context.Context, params CreateRequestParams) (*MatchRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateMatchRequestCalls = append(m.CreateMatchRequestCalls, params)
	if m.CreateMatchRequestFunc != nil {
		return m.CreateMatchRequestFunc(ctx, params)
	}
	return &MatchRequest{ClubID: params.ClubID, RequestedByID: params.RequestedByID, Status: RequestPending}, nil
}

func (m *MockService) AddRequestPlayer(ctx context.Context, requestID, playerID string, status ParticipantStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddRequestPlayerCalls = append(m.AddRequestPlayerCalls, struct {
		RequestID string
		PlayerID  string
		Status    ParticipantStatus
	}{requestID, playerID, status})
	if m.AddRequestPlayerFunc != nil {
		return m.AddRequestPlayerFunc(ctx, requestID, playerID, status)
	}
	return nil
}

func (m *MockService) UpdateRequestParticipant(ctx context.Context, requestID, playerID string, status ParticipantStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateRequestParticipantCalls = append(m.UpdateRequestParticipantCalls, struct {
		RequestID string
		PlayerID  string
		Status    ParticipantStatus
	}{requestID, playerID, status})
	if m.UpdateRequestParticipantFunc != nil {
		return m.UpdateRequestParticipantFunc(ctx, requestID, playerID, status)
	}
	return nil
}

func (m *MockService) CompleteMatchRequest(ctx context.Context, requestID string, playedAt time.Time, clubOverride *string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CompleteMatchRequestCalls = append(m.CompleteMatchRequestCalls, struct {
		RequestID    string
		PlayedAt     time.Time
		ClubOverride *string
	}{requestID, playedAt, clubOverride})
	if m.CompleteMatchRequestFunc != nil {
		return m.CompleteMatchRequestFunc(ctx, requestID, playedAt, clubOverride)
	}
	return "", nil
}

func (m *MockService) GetMatchRequest(ctx context.Context, requestID string) (*MatchRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchRequestFunc != nil {
		return m.GetMatchRequestFunc(ctx, requestID)
	}
	return nil, ErrNotFound
}

func (m *MockService) GetMatch(ctx context.Context, matchID string) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(ctx, matchID)
	}
	return nil, ErrNotFound
}

func (m *MockService) GetSettings(ctx context.Context, clubID string) (*Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetSettingsFunc != nil {
		return m.GetSettingsFunc(ctx, clubID)
	}
	settings := DefaultSettings(clubID, 0)
	return &settings, nil
}

func (m *MockService) UpdateSettings(ctx context.Context, settings Settings) (*Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateSettingsCalls = append(m.UpdateSettingsCalls, settings)
	if m.UpdateSettingsFunc != nil {
		return m.UpdateSettingsFunc(ctx, settings)
	}
	return &settings, nil
}
