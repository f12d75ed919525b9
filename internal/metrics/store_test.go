package metrics

import (
	"testing"

	"github.com/mauv0809/padel-matchmaker/internal/database"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (MetricsStore, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return New(db), teardown
}

func TestIncrementAndGetAll(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	// 1. Initially, there should be no metrics
	metrics, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, metrics)

	// 2. Increment a new key
	store.Increment(KeySuggestionsAccepted)
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{KeySuggestionsAccepted: 1}, metrics)

	// 3. Increment the same key again
	store.Increment(KeySuggestionsAccepted)
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{KeySuggestionsAccepted: 2}, metrics)

	// 4. Add to a different key
	store.Add(KeySuggestionsGenerated, 10)
	store.Add(KeySuggestionsGenerated, 0)
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		KeySuggestionsAccepted:  2,
		KeySuggestionsGenerated: 10,
	}, metrics)
}

func TestServiceRegistersOnIsolatedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.AddSuggestionsGenerated(3)
	s.IncSuggestionsAccepted()
	s.IncMatchmakingErrors("INVALID_STATE")
	s.IncMatchmakingErrors("INVALID_STATE")
	s.ObserveGenerationDuration(0.02)

	families, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, f := range families {
		for _, m := range f.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[f.GetName()] += m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				values[f.GetName()] += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	assert.Equal(t, 3.0, values["padel_matchmaking_suggestions_generated_total"])
	assert.Equal(t, 1.0, values["padel_matchmaking_suggestions_accepted_total"])
	assert.Equal(t, 2.0, values["padel_matchmaking_errors_total"])
	assert.Equal(t, 1.0, values["padel_matchmaking_generation_duration_seconds"])
}
