package notifier

import (
	"sync"

	"github.com/mauv0809/padel-matchmaker/internal/matchmaking"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendSuggestionsFunc  func(clubName string, suggestions []matchmaking.Suggestion, names Names, dryRun bool) error
	SendMatchCreatedFunc func(match *matchmaking.Match, names Names, dryRun bool) error
	SendMatchRequestFunc func(request *matchmaking.MatchRequest, names Names, dryRun bool) error

	// Call records
	SendSuggestionsCalls []struct {
		ClubName    string
		Suggestions []matchmaking.Suggestion
		DryRun      bool
	}
	SendMatchCreatedCalls []struct {
		Match  *matchmaking.Match
		Names  Names
		DryRun bool
	}
	SendMatchRequestCalls []struct {
		Request *matchmaking.MatchRequest
		DryRun  bool
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendSuggestionsCalls = nil
	m.SendMatchCreatedCalls = nil
	m.SendMatchRequestCalls = nil
}

func (m *Mock) SendSuggestions(clubName string, suggestions []matchmaking.Suggestion, names Names, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendSuggestionsCalls = append(m.SendSuggestionsCalls, struct {
		ClubName    string
		Suggestions []matchmaking.Suggestion
		DryRun      bool
	}{clubName, suggestions, dryRun})
	if m.SendSuggestionsFunc != nil {
		return m.SendSuggestionsFunc(clubName, suggestions, names, dryRun)
	}
	return nil
}

func (m *Mock) SendMatchCreated(match *matchmaking.Match, names Names, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchCreatedCalls = append(m.SendMatchCreatedCalls, struct {
		Match  *matchmaking.Match
		Names  Names
		DryRun bool
	}{match, names, dryRun})
	if m.SendMatchCreatedFunc != nil {
		return m.SendMatchCreatedFunc(match, names, dryRun)
	}
	return nil
}

func (m *Mock) SendMatchRequest(request *matchmaking.MatchRequest, names Names, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchRequestCalls = append(m.SendMatchRequestCalls, struct {
		Request *matchmaking.MatchRequest
		DryRun  bool
	}{request, dryRun})
	if m.SendMatchRequestFunc != nil {
		return m.SendMatchRequestFunc(request, names, dryRun)
	}
	return nil
}

func (m *Mock) FormatSuggestionsResponse(clubName string, suggestions []matchmaking.Suggestion, names Names) (any, error) {
	return map[string]any{"club": clubName, "count": len(suggestions)}, nil
}
