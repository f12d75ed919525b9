package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                     sync.Mutex
	suggestionsGenerated   int
	suggestionsAccepted    int
	suggestionsRejected    int
	matchRequestsCompleted int
	errors                 map[string]int
	generationDurations    []float64
	ratingSyncRuns         int
	matchesSynced          int
	slackNotifSent         int
	slackNotifFailed       int
	startupTime            float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		errors:              make(map[string]int),
		generationDurations: make([]float64, 0),
	}
}

func (m *Mock) AddSuggestionsGenerated(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suggestionsGenerated += n
}

func (m *Mock) IncSuggestionsAccepted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suggestionsAccepted++
}

func (m *Mock) IncSuggestionsRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suggestionsRejected++
}

func (m *Mock) IncMatchRequestsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchRequestsCompleted++
}

func (m *Mock) IncMatchmakingErrors(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[code]++
}

func (m *Mock) ObserveGenerationDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generationDurations = append(m.generationDurations, duration)
}

func (m *Mock) IncRatingSyncRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ratingSyncRuns++
}

func (m *Mock) AddMatchesSynced(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesSynced += n
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// SuggestionsGenerated returns the sum passed to AddSuggestionsGenerated.
func (m *Mock) SuggestionsGenerated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.suggestionsGenerated
}

// SuggestionsAccepted returns the number of times IncSuggestionsAccepted was called.
func (m *Mock) SuggestionsAccepted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.suggestionsAccepted
}

// SuggestionsRejected returns the number of times IncSuggestionsRejected was called.
func (m *Mock) SuggestionsRejected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.suggestionsRejected
}

// MatchRequestsCompleted returns the number of times IncMatchRequestsCompleted was called.
func (m *Mock) MatchRequestsCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchRequestsCompleted
}

// Errors returns how often IncMatchmakingErrors was called with code.
func (m *Mock) Errors(code string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[code]
}

// GenerationDurations returns the observed generation durations.
func (m *Mock) GenerationDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.generationDurations...)
}

// RatingSyncRuns returns the number of times IncRatingSyncRuns was called.
func (m *Mock) RatingSyncRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ratingSyncRuns
}

// MatchesSynced returns the sum passed to AddMatchesSynced.
func (m *Mock) MatchesSynced() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesSynced
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// MockStore is an in-memory MetricsStore for testing.
type MockStore struct {
	mu     sync.Mutex
	values map[string]int
}

// NewMockStore creates an empty counter store.
func NewMockStore() *MockStore {
	return &MockStore{values: make(map[string]int)}
}

func (m *MockStore) Increment(key string) {
	m.Add(key, 1)
}

func (m *MockStore) Add(key string, delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] += delta
}

func (m *MockStore) GetAll() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}
